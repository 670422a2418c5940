package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"lamp_catalog/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UpdateDescription replaces the description of one lamp
func UpdateDescription(db *gorm.DB, id uint, description string) (domain.Lamp, error) {
	lamp, err := Get(db, id)
	if err != nil {
		return lamp, err
	}
	lamp.Description = description
	if err := db.Model(&lamp).Update("description", description).Error; err != nil {
		return lamp, fmt.Errorf("update lamp %d description: %w", id, err)
	}
	return lamp, nil
}

func parseUint(raw string) (uint, bool) {
	v, err := strconv.ParseUint(raw, 10, 32)
	return uint(v), err == nil
}

// maxPrice is the first value a decimal(10,2) column cannot hold
var maxPrice = decimal.New(1, 8)

func parsePrice(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() || d.Round(2).GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// ApplyForm copies the lamp fields present in form onto lamp.
// A numeric field that fails to parse keeps its prior value and is
// reported in ignored. Empty optional fields are cleared. A form carrying
// the article is a full edit form, where a missing has_dimmer means false.
func ApplyForm(lamp *domain.Lamp, form url.Values) (ignored []string) {
	text := func(key string, dst *string) {
		if form.Has(key) {
			if v := strings.TrimSpace(form.Get(key)); v != "" {
				*dst = v
			}
		}
	}
	text("article", &lamp.Article)
	text("brand", &lamp.Brand)
	text("color", &lamp.Color)
	if form.Has("description") {
		lamp.Description = form.Get("description")
	}
	switch {
	case form.Has("has_dimmer"):
		raw := form.Get("has_dimmer")
		v, err := strconv.ParseBool(raw)
		lamp.HasDimmer = raw == "on" || (err == nil && v)
	case form.Has("article"):
		// a full edit form omits an unticked checkbox
		lamp.HasDimmer = false
	}
	if form.Has("lamp_type") {
		if kind := domain.LampKind(form.Get("lamp_type")); kind.Valid() {
			lamp.LampType = kind
		} else {
			ignored = append(ignored, "lamp_type")
		}
	}

	if form.Has("power_watts") {
		if v, ok := parseUint(strings.TrimSpace(form.Get("power_watts"))); ok {
			lamp.PowerWatts = v
		} else {
			ignored = append(ignored, "power_watts")
		}
	}
	if form.Has("price") {
		if v, ok := parsePrice(strings.TrimSpace(form.Get("price"))); ok {
			lamp.Price = v
		} else {
			ignored = append(ignored, "price")
		}
	}

	optionalUint := func(key string, dst **uint) {
		if !form.Has(key) {
			return
		}
		raw := strings.TrimSpace(form.Get(key))
		if raw == "" {
			*dst = nil
			return
		}
		if v, ok := parseUint(raw); ok {
			*dst = &v
			return
		}
		ignored = append(ignored, key)
	}
	optionalPrice := func(key string, dst *decimal.NullDecimal) {
		if !form.Has(key) {
			return
		}
		raw := strings.TrimSpace(form.Get(key))
		if raw == "" {
			*dst = decimal.NullDecimal{}
			return
		}
		if v, ok := parsePrice(raw); ok {
			*dst = decimal.NewNullDecimal(v)
			return
		}
		ignored = append(ignored, key)
	}
	optionalUint("height_cm", &lamp.HeightCM)
	optionalPrice("small_wholesale_price", &lamp.SmallWholesalePrice)
	optionalUint("small_wholesale_quantity", &lamp.SmallWholesaleQuantity)
	optionalPrice("large_wholesale_price", &lamp.LargeWholesalePrice)
	optionalUint("large_wholesale_quantity", &lamp.LargeWholesaleQuantity)
	return ignored
}

// Save persists every column of an edited lamp, keeping articles unique
func Save(db *gorm.DB, lamp *domain.Lamp) error {
	var clash int64
	if err := db.Model(&domain.Lamp{}).Where("article = ? AND id <> ?", lamp.Article, lamp.ID).Count(&clash).Error; err != nil {
		return fmt.Errorf("check article: %w", err)
	}
	if clash > 0 {
		return ErrDuplicateArticle
	}
	if err := db.Save(lamp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateArticle
		}
		return fmt.Errorf("save lamp %d: %w", lamp.ID, err)
	}
	return nil
}
