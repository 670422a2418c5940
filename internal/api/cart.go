package api

import (
	"lamp_catalog/internal/cart"       // Cart operations
	"lamp_catalog/internal/middleware" // Request principal
	"net/http"                         // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// QuantityRequest carries an optional quantity as a form field or JSON
type QuantityRequest struct {
	Quantity *int `form:"quantity" json:"quantity"` // Units, nil when not sent
}

// bindQuantity reads the quantity field; a request without a body yields nil
func bindQuantity(c *gin.Context) (*int, bool) {
	var req QuantityRequest
	if c.Request.ContentLength == 0 {
		return nil, true
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer"})
		return nil, false
	}
	return req.Quantity, true
}

// GetCartHandler returns the caller's cart with line prices and totals
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := cart.Detail(db, middleware.Principal(c).UserID)
		if err != nil {
			respondError(c, err, "Failed to load cart")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// AddToCartHandler adds a lamp to the caller's cart, one unit unless quantity is given
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lampID, ok := idParam(c, "lamp_id")
		if !ok {
			return
		}
		qty, ok := bindQuantity(c)
		if !ok {
			return
		}
		quantity := 1 // Default quantity
		if qty != nil {
			quantity = *qty
		}
		if quantity < 1 {
			respondError(c, cart.ErrInvalidQuantity, "Failed to add to cart")
			return
		}
		userID := middleware.Principal(c).UserID
		item, err := cart.AddItem(db, userID, lampID, uint(quantity))
		if err != nil {
			respondError(c, err, "Failed to add to cart")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"lamp_id":  lampID,
			"added":    quantity,
			"quantity": item.Quantity,
		}).Info("Cart item added")
		c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "item": item})
	}
}

// UpdateCartItemHandler sets the quantity of a cart line; zero or less removes it
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := idParam(c, "item_id")
		if !ok {
			return
		}
		qty, ok := bindQuantity(c)
		if !ok {
			return
		}
		if qty == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}
		removed, err := cart.UpdateItem(db, middleware.Principal(c).UserID, itemID, *qty)
		if err != nil {
			respondError(c, err, "Failed to update cart item")
			return
		}
		if removed {
			c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
	}
}

// RemoveCartItemHandler deletes a line from the caller's cart
func RemoveCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := idParam(c, "item_id")
		if !ok {
			return
		}
		if err := cart.RemoveItem(db, middleware.Principal(c).UserID, itemID); err != nil {
			respondError(c, err, "Failed to remove cart item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
	}
}
