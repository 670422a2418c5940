package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point currency values
)

// LampKind is the category a lamp is sold under
type LampKind string

// Lamp kinds accepted by the catalog
const (
	KindTable   LampKind = "table"
	KindFloor   LampKind = "floor"
	KindWall    LampKind = "wall"
	KindCeiling LampKind = "ceiling"
	KindOther   LampKind = "other"
)

// LampKinds lists every kind in display order
var LampKinds = []LampKind{KindTable, KindFloor, KindWall, KindCeiling, KindOther}

var lampKindLabels = map[LampKind]string{
	KindTable:   "Table lamp",
	KindFloor:   "Floor lamp",
	KindWall:    "Wall lamp",
	KindCeiling: "Ceiling lamp",
	KindOther:   "Other",
}

// Valid reports whether k is one of the known lamp kinds
func (k LampKind) Valid() bool {
	_, ok := lampKindLabels[k]
	return ok
}

// Label returns the human readable name of the kind
func (k LampKind) Label() string {
	if label, ok := lampKindLabels[k]; ok {
		return label
	}
	return string(k)
}

// LampType Model, a lookup table managed by admins
type LampType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name string `gorm:"size:100;not null" json:"name"` // Display name
}

// Lamp Model
type Lamp struct {
	ID                     uint                `gorm:"primaryKey" json:"id"`                                    // Primary key
	Article                string              `gorm:"size:50;uniqueIndex;not null" json:"article"`             // Unique article number
	Brand                  string              `gorm:"size:100;not null" json:"brand"`                          // Manufacturer brand
	HasDimmer              bool                `gorm:"not null;default:false" json:"has_dimmer"`                // Dimmer support
	PowerWatts             uint                `gorm:"not null" json:"power_watts"`                             // Power in watts
	HeightCM               *uint               `json:"height_cm"`                                               // Optional height in centimetres
	Color                  string              `gorm:"size:50;not null" json:"color"`                           // Color
	LampType               LampKind            `gorm:"size:20;not null" json:"lamp_type"`                       // Lamp kind
	Description            string              `gorm:"type:text" json:"description"`                            // Free text description
	Price                  decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`                // Base unit price
	SmallWholesalePrice    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"small_wholesale_price"`         // Small wholesale unit price
	SmallWholesaleQuantity *uint               `json:"small_wholesale_quantity"`                                // Quantity that unlocks small wholesale
	LargeWholesalePrice    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"large_wholesale_price"`         // Large wholesale unit price
	LargeWholesaleQuantity *uint               `json:"large_wholesale_quantity"`                                // Quantity that unlocks large wholesale
	CreatedAt              time.Time           `json:"created_at"`                                              // Creation time
	UpdatedAt              time.Time           `json:"updated_at"`                                              // Last update time
}

// String renders the lamp as "brand - article"
func (l Lamp) String() string {
	return l.Brand + " - " + l.Article
}
