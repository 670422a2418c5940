// Package orders turns carts into orders and enforces who may see them.
package orders

import (
	"errors"
	"fmt"

	"lamp_catalog/internal/access"
	"lamp_catalog/internal/cart"
	"lamp_catalog/internal/domain"
	"lamp_catalog/internal/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCart is returned by checkout when the cart has no items
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotFound is returned when no order has the requested id
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidTransition is returned for a status change the lifecycle forbids
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Options controls how checkout records an order
type Options struct {
	// Snapshot freezes the priced cart lines into the order. Without it the
	// order only points at its cart, which checkout deletes, so its total
	// reads as zero afterwards.
	Snapshot bool
}

// View is an order with its priced lines and totals
type View struct {
	domain.Order
	Priced []pricing.Line `json:"priced_lines"`
	pricing.Summary
}

// CreateOrder converts the principal's cart into a pending order.
// Creating the order, dropping the consumed cart and opening a fresh empty
// cart happen in one transaction.
func CreateOrder(db *gorm.DB, p access.Principal, opts Options) (domain.Order, error) {
	var order domain.Order
	if !access.Allowed(p, access.CreateOrder) {
		return order, access.ErrPermissionDenied
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := cart.Load(tx, p.UserID)
		if err != nil {
			return err
		}
		if len(current.Items) == 0 {
			return ErrEmptyCart
		}
		cartID := current.ID
		order = domain.Order{
			Reference:      uuid.NewString(),
			CartID:         &cartID,
			SalesManagerID: p.UserID,
			Status:         domain.OrderStatusPending,
		}
		if opts.Snapshot {
			for _, line := range pricing.PriceItems(current.Items) {
				order.Lines = append(order.Lines, domain.OrderLine{
					LampID:    line.LampID,
					Article:   line.Article,
					Quantity:  line.Quantity,
					UnitPrice: line.UnitPrice,
				})
			}
		}
		if err := tx.Omit("Cart", "SalesManager").Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		// the unique index on carts.user_id requires the old cart to go before the new one exists
		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		if err := tx.Model(&domain.Order{}).Where("cart_id = ?", cartID).Update("cart_id", nil).Error; err != nil {
			return fmt.Errorf("detach cart: %w", err)
		}
		if err := tx.Delete(&domain.Cart{}, cartID).Error; err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
		if err := tx.Create(&domain.Cart{UserID: p.UserID}).Error; err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
		order.CartID = nil
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"reference": order.Reference,
		"user_id":   p.UserID,
		"lines":     len(order.Lines),
	}).Info("Order created")
	return order, nil
}

// Price computes the lines and totals of an order. Snapshot lines win; an
// order without them is priced from its cart while the cart still exists.
func Price(db *gorm.DB, order domain.Order) (View, error) {
	view := View{Order: order}
	switch {
	case len(order.Lines) > 0:
		view.Priced = pricing.PriceOrderLines(order.Lines)
	case order.CartID != nil:
		var items []domain.CartItem
		if err := db.Preload("Lamp").Where("cart_id = ?", *order.CartID).Find(&items).Error; err != nil {
			return view, fmt.Errorf("load cart of order %d: %w", order.ID, err)
		}
		view.Priced = pricing.PriceItems(items)
	default:
		view.Priced = []pricing.Line{}
	}
	view.Summary = pricing.Summarize(view.Priced)
	return view, nil
}

// List returns every order for admins and the caller's own orders for sales managers
func List(db *gorm.DB, p access.Principal) ([]View, error) {
	if !access.Allowed(p, access.ViewOrders) {
		return nil, access.ErrPermissionDenied
	}
	query := db.Preload("Lines").Order("created_at desc").Order("id desc")
	if !access.Allowed(p, access.ViewAllOrders) {
		query = query.Where("sales_manager_id = ?", p.UserID)
	}
	var list []domain.Order
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	views := make([]View, 0, len(list))
	for _, o := range list {
		v, err := Price(db, o)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func load(db *gorm.DB, id uint) (domain.Order, error) {
	var order domain.Order
	if err := db.Preload("Lines").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, ErrOrderNotFound
		}
		return order, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

// Get returns one order if the principal is its sales manager or an admin
func Get(db *gorm.DB, p access.Principal, id uint) (View, error) {
	order, err := load(db, id)
	if err != nil {
		return View{}, err
	}
	if !access.CanViewOrder(p, order) {
		return View{}, access.ErrPermissionDenied
	}
	return Price(db, order)
}

// Transition moves an order to a new status following the lifecycle
func Transition(db *gorm.DB, p access.Principal, id uint, to domain.OrderStatus) (domain.Order, error) {
	if !access.Allowed(p, access.UpdateOrderStatus) {
		return domain.Order{}, access.ErrPermissionDenied
	}
	order, err := load(db, id)
	if err != nil {
		return order, err
	}
	if IsTerminal(order.Status) {
		return order, fmt.Errorf("%w: %s orders are final", ErrInvalidTransition, order.Status)
	}
	if !CanTransition(order.Status, to) {
		return order, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, to)
	}
	from := order.Status
	if err := db.Model(&order).Update("status", to).Error; err != nil {
		return order, fmt.Errorf("update order %d status: %w", id, err)
	}
	order.Status = to
	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       to,
		"user_id":  p.UserID,
	}).Info("Order status changed")
	return order, nil
}
