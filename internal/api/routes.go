package api

import (
	"lamp_catalog/internal/access"     // Guarded actions
	"lamp_catalog/internal/middleware" // Auth, permission and rate limit middleware
	"lamp_catalog/internal/orders"     // Checkout options
	"lamp_catalog/internal/utils"      // Cache

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Deps are the shared services the handlers need
type Deps struct {
	DB        *gorm.DB                // Database handle
	Cache     *utils.Cache            // Catalog cache, nil disables caching
	JWTSecret string                  // JWT signing key
	Orders    orders.Options          // Checkout behaviour
	Limiter   *middleware.RateLimiter // Login and checkout limiter, nil disables limiting
}

// limited returns the rate limit middleware, or a pass-through without a limiter
func (d Deps) limited() gin.HandlerFunc {
	if d.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return d.Limiter.Middleware()
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	db := d.DB
	optional := middleware.OptionalAuthMiddleware(d.JWTSecret, db)
	strict := middleware.JWTAuthMiddleware(d.JWTSecret, db)
	can := middleware.RequireAction

	// Catalog routes (public, role resolved when a token is sent)
	r.GET("/", optional, can(access.ViewCatalog), ListLampsHandler(db, d.Cache))
	r.GET("/lamp/:id/", optional, can(access.ViewCatalog), GetLampHandler(db, d.Cache))
	r.GET("/lamp-types/", optional, can(access.ViewCatalog), ListLampTypesHandler(db))
	r.POST("/lamp/:id/edit-description/", strict, can(access.EditLamp), EditDescriptionHandler(db, d.Cache))

	// Auth routes
	r.POST("/user", RegisterHandler(db))                              // Registration endpoint
	r.POST("/user/login", d.limited(), LoginHandler(db, d.JWTSecret)) // Login endpoint

	// Cart routes, a login is required
	cartGroup := r.Group("/cart", optional, can(access.ManageCart))
	cartGroup.GET("/", GetCartHandler(db))
	cartGroup.POST("/add/:lamp_id/", AddToCartHandler(db))
	cartGroup.POST("/update/:item_id/", UpdateCartItemHandler(db))
	cartGroup.POST("/remove/:item_id/", RemoveCartItemHandler(db))
	cartGroup.POST("/create-order/", d.limited(), can(access.CreateOrder), CreateOrderHandler(db, d.Orders))

	// Order routes; visibility of single orders is checked per order
	orderGroup := r.Group("/orders", strict, can(access.ViewOrders))
	orderGroup.GET("/", ListOrdersHandler(db))
	orderGroup.GET("/:id/", GetOrderHandler(db))
	orderGroup.GET("/:id/invoice.pdf", InvoiceHandler(db))

	// Merchandiser routes
	merchGroup := r.Group("/merchandiser/products", strict, can(access.MerchandiserList))
	merchGroup.GET("/", MerchandiserProductsHandler(db))
	merchGroup.POST("/:id/edit/", can(access.EditLamp), MerchandiserEditHandler(db, d.Cache))
	merchGroup.GET("/export", ExportProductsHandler(db))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin", strict)
	adminGroup.GET("/users", can(access.ManageUsers), ListUsersHandler(db))
	adminGroup.PUT("/users/:id/role", can(access.ManageUsers), SetRoleHandler(db))
	adminGroup.POST("/orders/:id/status", can(access.UpdateOrderStatus), UpdateOrderStatusHandler(db))
}
