package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For cache durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort            string        // Application port
	DBUser             string        // Database user
	DBPassword         string        // Database password
	DBHost             string        // Database host
	DBPort             string        // Database port
	DBName             string        // Database name
	JWTSecret          string        // JWT secret key
	RedisAddr          string        // Redis server address, empty disables caching
	RedisPass          string        // Redis password
	RedisDB            int           // Redis database number
	IsProd             bool          // Is production environment
	CORSOrigins        []string      // Allowed CORS origins
	OrderSnapshot      bool          // Store order lines at checkout
	CacheTTL           time.Duration // Catalog cache entry lifetime
	RateLimitPerMinute int           // Login and checkout requests per client IP
}

// envInt reads an integer variable, returning def when unset or malformed
func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// envDefault reads a variable, returning def when unset
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:            envDefault("APP_PORT", "8080"),                                 // Application port
		DBUser:             os.Getenv("DB_USER"),                                           // Database user
		DBPassword:         os.Getenv("DB_PASSWORD"),                                       // Database password
		DBHost:             envDefault("DB_HOST", "127.0.0.1"),                             // Database host
		DBPort:             envDefault("DB_PORT", "3306"),                                  // Database port
		DBName:             os.Getenv("DB_NAME"),                                           // Database name
		JWTSecret:          os.Getenv("JWT_SECRET"),                                        // JWT secret key
		RedisAddr:          os.Getenv("REDIS_ADDR"),                                        // Redis server address
		RedisPass:          os.Getenv("REDIS_PASS"),                                        // Redis password
		RedisDB:            redisDB,                                                        // Redis database number
		IsProd:             os.Getenv("IS_PROD") == "true",                                 // Is production environment
		CORSOrigins:        splitList(envDefault("CORS_ORIGINS", "http://localhost:3000")), // Allowed CORS origins
		OrderSnapshot:      os.Getenv("ORDER_SNAPSHOT") != "false",                         // Snapshot unless explicitly disabled
		CacheTTL:           time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,   // Catalog cache lifetime
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 30),                            // Rate limit
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
