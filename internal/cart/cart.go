// Package cart manages the per-user cart. Every mutation is scoped to the
// caller's own cart.
package cart

import (
	"errors"
	"fmt"

	"lamp_catalog/internal/catalog"
	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/pricing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrItemNotFound is returned for a cart item missing from the caller's cart
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity is returned when adding less than one unit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// View is a cart with its priced lines and totals
type View struct {
	CartID uint           `json:"cart_id"`
	Lines  []pricing.Line `json:"items"`
	pricing.Summary
}

// GetOrCreate returns the user's cart, creating it if needed.
// The unique index on carts.user_id makes concurrent calls converge on one row.
func GetOrCreate(db *gorm.DB, userID uint) (domain.Cart, error) {
	cart := domain.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error; err != nil {
		return cart, fmt.Errorf("create cart for user %d: %w", userID, err)
	}
	var stored domain.Cart
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return stored, fmt.Errorf("load cart for user %d: %w", userID, err)
	}
	return stored, nil
}

// Load returns the user's cart with items and lamps preloaded
func Load(db *gorm.DB, userID uint) (domain.Cart, error) {
	cart, err := GetOrCreate(db, userID)
	if err != nil {
		return cart, err
	}
	if err := db.Preload("Lamp").Where("cart_id = ?", cart.ID).Order("id").Find(&cart.Items).Error; err != nil {
		return cart, fmt.Errorf("load cart items: %w", err)
	}
	return cart, nil
}

// Detail prices the user's cart
func Detail(db *gorm.DB, userID uint) (View, error) {
	cart, err := Load(db, userID)
	if err != nil {
		return View{}, err
	}
	lines := pricing.PriceItems(cart.Items)
	return View{CartID: cart.ID, Lines: lines, Summary: pricing.Summarize(lines)}, nil
}

// AddItem adds quantity units of a lamp, incrementing an existing line.
// The increment is a single upsert so concurrent adds do not lose updates.
func AddItem(db *gorm.DB, userID, lampID, quantity uint) (domain.CartItem, error) {
	var item domain.CartItem
	if quantity < 1 {
		return item, ErrInvalidQuantity
	}
	lamp, err := catalog.Get(db, lampID)
	if err != nil {
		return item, err
	}
	cart, err := GetOrCreate(db, userID)
	if err != nil {
		return item, err
	}
	line := domain.CartItem{CartID: cart.ID, LampID: lamp.ID, Quantity: quantity}
	err = db.Omit("Lamp").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "lamp_id"}},
		DoUpdates: clause.Assignments(map[string]any{"quantity": gorm.Expr("quantity + ?", quantity)}),
	}).Create(&line).Error
	if err != nil {
		return item, fmt.Errorf("add lamp %d to cart %d: %w", lampID, cart.ID, err)
	}
	if err := db.Preload("Lamp").Where("cart_id = ? AND lamp_id = ?", cart.ID, lamp.ID).First(&item).Error; err != nil {
		return item, fmt.Errorf("reload cart item: %w", err)
	}
	return item, nil
}

// ownedItem loads a line only if it belongs to the user's cart
func ownedItem(db *gorm.DB, userID, itemID uint) (domain.CartItem, error) {
	var item domain.CartItem
	err := db.Where("id = ? AND cart_id IN (?)", itemID, userCartIDs(db, userID)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, ErrItemNotFound
	}
	if err != nil {
		return item, fmt.Errorf("load cart item %d: %w", itemID, err)
	}
	return item, nil
}

func userCartIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&domain.Cart{}).Select("id").Where("user_id = ?", userID)
}

// UpdateItem sets the quantity of a line; a quantity of zero or less removes it.
// It reports whether the line was removed.
func UpdateItem(db *gorm.DB, userID, itemID uint, quantity int) (removed bool, err error) {
	if quantity <= 0 {
		return true, RemoveItem(db, userID, itemID)
	}
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return false, err
	}
	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return false, fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return false, nil
}

// RemoveItem deletes a line from the user's cart
func RemoveItem(db *gorm.DB, userID, itemID uint) error {
	res := db.Where("id = ? AND cart_id IN (?)", itemID, userCartIDs(db, userID)).Delete(&domain.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("remove cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
