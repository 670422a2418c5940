package api

import (
	"bytes"                            // Invoice buffer
	"lamp_catalog/internal/domain"     // Order statuses
	"lamp_catalog/internal/middleware" // Request principal
	"lamp_catalog/internal/orders"     // Order workflow
	"lamp_catalog/internal/reports"    // Invoice rendering
	"net/http"                         // HTTP status codes
	"strconv"                          // Invoice file name

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// StatusRequest carries the target status of an order
type StatusRequest struct {
	Status domain.OrderStatus `form:"status" json:"status" binding:"required"` // Target status
}

// CreateOrderHandler turns the caller's cart into an order
func CreateOrderHandler(db *gorm.DB, opts orders.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.CreateOrder(db, middleware.Principal(c), opts)
		if err != nil {
			respondError(c, err, "Failed to create order")
			return
		}
		view, err := orders.Price(db, order)
		if err != nil {
			respondError(c, err, "Failed to price order")
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// ListOrdersHandler returns the orders visible to the caller
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(db, middleware.Principal(c))
		if err != nil {
			respondError(c, err, "Failed to list orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list, "total": len(list)})
	}
}

// GetOrderHandler returns one order to its sales manager or an admin
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		view, err := orders.Get(db, middleware.Principal(c), id)
		if err != nil {
			respondError(c, err, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// InvoiceHandler downloads an order as a PDF invoice
func InvoiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		view, err := orders.Get(db, middleware.Principal(c), id)
		if err != nil {
			respondError(c, err, "Failed to fetch order")
			return
		}
		var buf bytes.Buffer
		if err := reports.WriteInvoice(&buf, view); err != nil {
			respondError(c, err, "Failed to generate PDF")
			return
		}
		c.Header("Content-Disposition", "attachment; filename=invoice-"+strconv.FormatUint(uint64(view.ID), 10)+".pdf")
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// UpdateOrderStatusHandler moves an order along its lifecycle
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req StatusRequest
		if err := c.ShouldBind(&req); err != nil || !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		order, err := orders.Transition(db, middleware.Principal(c), id, req.Status)
		if err != nil {
			respondError(c, err, "Failed to update order status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": order.ID, "status": order.Status})
	}
}
