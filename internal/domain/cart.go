package domain

import "time" // Timestamps

// Cart Model
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                                       // Primary key
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`                        // One active cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete items with the cart
	CreatedAt time.Time  `json:"created_at"`                                                 // Creation time
	UpdatedAt time.Time  `json:"updated_at"`                                                 // Last update time
}

// CartItem Model
type CartItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`                                  // Primary key
	CartID   uint `gorm:"uniqueIndex:idx_cart_lamp;not null" json:"cart_id"`     // Owning cart
	LampID   uint `gorm:"uniqueIndex:idx_cart_lamp;not null" json:"lamp_id"`     // One line per lamp in a cart
	Lamp     Lamp `json:"lamp"`                                                  // Preloaded lamp
	Quantity uint `gorm:"not null" json:"quantity"`                              // Always >= 1
}
