package main

import (
	"context"                          // context package is needed for Redis operations
	"lamp_catalog/internal/api"        // Custom package for API handlers
	"lamp_catalog/internal/config"     // Custom package for configuration
	"lamp_catalog/internal/db"         // Database connection
	"lamp_catalog/internal/middleware" // Custom package for middleware
	"lamp_catalog/internal/orders"     // Checkout options
	"lamp_catalog/internal/utils"      // Cache
	"time"                             // Timeouts and CORS max age

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// newCache connects to Redis, returning a disabled cache when Redis is not configured or unreachable
func newCache(cfg *config.Config) *utils.Cache {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, catalog cache disabled")
		return nil
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.WithField("error", err.Error()).Warn("Redis unreachable, catalog cache disabled")
		_ = redisClient.Close()
		return nil
	}
	return utils.NewCache(redisClient, cfg.CacheTTL)
}

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		DB:        gdb,
		Cache:     newCache(cfg),
		JWTSecret: cfg.JWTSecret,
		Orders:    orders.Options{Snapshot: cfg.OrderSnapshot},
		Limiter:   middleware.NewRateLimiter(cfg.RateLimitPerMinute),
	})

	logrus.WithFields(logrus.Fields{
		"port":           cfg.AppPort,
		"order_snapshot": cfg.OrderSnapshot,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
