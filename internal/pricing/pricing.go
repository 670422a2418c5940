// Package pricing resolves wholesale unit prices and applies order level discounts.
package pricing

import (
	"lamp_catalog/internal/domain"

	"github.com/shopspring/decimal"
)

// Discount tiers evaluated on the full order subtotal, lower bounds inclusive.
var (
	LargeOrderThreshold  = decimal.NewFromInt(100000)
	LargeOrderFactor     = decimal.RequireFromString("0.90")
	MediumOrderThreshold = decimal.NewFromInt(50000)
	MediumOrderFactor    = decimal.RequireFromString("0.95")
)

// ResolveUnitPrice returns the unit price for buying quantity units of lamp.
// The large wholesale tier wins over the small one; a tier only applies when
// both its price and its quantity are set.
func ResolveUnitPrice(lamp domain.Lamp, quantity uint) decimal.Decimal {
	if lamp.LargeWholesalePrice.Valid && lamp.LargeWholesaleQuantity != nil && quantity >= *lamp.LargeWholesaleQuantity {
		return lamp.LargeWholesalePrice.Decimal
	}
	if lamp.SmallWholesalePrice.Valid && lamp.SmallWholesaleQuantity != nil && quantity >= *lamp.SmallWholesaleQuantity {
		return lamp.SmallWholesalePrice.Decimal
	}
	return lamp.Price
}

// LineTotal is the resolved unit price times the quantity
func LineTotal(item domain.CartItem) decimal.Decimal {
	return ResolveUnitPrice(item.Lamp, item.Quantity).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums the line totals of items
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// TotalWithDiscount applies a single, non stacking discount tier to subtotal.
func TotalWithDiscount(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThanOrEqual(LargeOrderThreshold):
		return subtotal.Mul(LargeOrderFactor)
	case subtotal.GreaterThanOrEqual(MediumOrderThreshold):
		return subtotal.Mul(MediumOrderFactor)
	default:
		return subtotal
	}
}

// Line is a priced cart or order line
type Line struct {
	ItemID    uint            `json:"item_id,omitempty"`
	LampID    uint            `json:"lamp_id"`
	Article   string          `json:"article"`
	Quantity  uint            `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Summary holds the totals shown for a cart or an order
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize computes subtotal, discount and discounted total from line totals.
func Summarize(lines []Line) Summary {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total)
	}
	total := TotalWithDiscount(subtotal)
	return Summary{Subtotal: subtotal, Discount: subtotal.Sub(total), Total: total}
}

// PriceItems prices every cart item at the current catalog prices.
func PriceItems(items []domain.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		unit := ResolveUnitPrice(item.Lamp, item.Quantity)
		lines = append(lines, Line{
			ItemID:    item.ID,
			LampID:    item.LampID,
			Article:   item.Lamp.Article,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Total:     unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return lines
}

// PriceOrderLines prices snapshot lines at the unit price frozen at checkout.
func PriceOrderLines(orderLines []domain.OrderLine) []Line {
	lines := make([]Line, 0, len(orderLines))
	for _, ol := range orderLines {
		lines = append(lines, Line{
			LampID:    ol.LampID,
			Article:   ol.Article,
			Quantity:  ol.Quantity,
			UnitPrice: ol.UnitPrice,
			Total:     ol.UnitPrice.Mul(decimal.NewFromInt(int64(ol.Quantity))),
		})
	}
	return lines
}
