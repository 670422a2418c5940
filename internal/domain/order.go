package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point currency values
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "pending"    // Created at checkout
	OrderStatusProcessing OrderStatus = "processing" // Being assembled
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // Terminal
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`                                        // Primary key
	Reference      string      `gorm:"size:36;uniqueIndex;not null" json:"reference"`               // Public order reference
	CartID         *uint       `gorm:"index" json:"cart_id"`                                        // Originating cart, nulled once the cart is gone
	Cart           *Cart       `gorm:"constraint:OnDelete:SET NULL;" json:"-"`                      // Originating cart
	SalesManagerID uint        `gorm:"index;not null" json:"sales_manager_id"`                      // Account that placed the order
	SalesManager   User        `gorm:"foreignKey:SalesManagerID" json:"-"`                          // Placing account
	Status         OrderStatus `gorm:"size:20;not null;default:pending" json:"status"`              // Lifecycle state
	Lines          []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"` // Snapshot taken at checkout
	CreatedAt      time.Time   `json:"created_at"`                                                  // Creation time
	UpdatedAt      time.Time   `json:"updated_at"`                                                  // Last update time
}

// OrderLine Model, a frozen copy of one cart item
type OrderLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                         // Primary key
	OrderID   uint            `gorm:"index;not null" json:"order_id"`               // Owning order
	LampID    uint            `gorm:"not null" json:"lamp_id"`                      // Lamp at purchase time
	Article   string          `gorm:"size:50;not null" json:"article"`              // Article at purchase time
	Quantity  uint            `gorm:"not null" json:"quantity"`                     // Purchased quantity
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"` // Resolved unit price at purchase time
}
