package models

import (
	"strconv"
	"time"
)

// Shoe is a single sneaker in the merged collection. Built-in catalog entries
// never carry InventoryMeta; shoes added through the inventory flow always do.
// JSON field names match the records already persisted by the browser app.
type Shoe struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Brand         string         `json:"brand"`
	RetailPrice   *float64       `json:"retailPrice"`
	LastPrice     *float64       `json:"lastPrice"`
	ReleaseDate   *string        `json:"releaseDate"` // YYYY-MM-DD
	PriceHistory  []PricePoint   `json:"priceHistory"`
	InventoryMeta *InventoryMeta `json:"inventoryMeta,omitempty"`
}

// IsCustom reports whether the shoe was created by the user.
func (s Shoe) IsCustom() bool {
	return s.InventoryMeta != nil
}

// PricePoint is one observed sale price. History is kept in insertion order,
// which is assumed to be chronological.
type PricePoint struct {
	Date   string  `json:"date"`
	Source string  `json:"source"` // free-form provenance, e.g. "StockX", "GOAT", "Retail"
	Price  float64 `json:"price"`
}

// InventoryStatus marks whether a custom shoe is owned or wanted
type InventoryStatus string

const (
	StatusOwned  InventoryStatus = "owned"
	StatusTarget InventoryStatus = "target"
)

// AllInventoryStatuses returns all valid inventory statuses
func AllInventoryStatuses() []InventoryStatus {
	return []InventoryStatus{StatusOwned, StatusTarget}
}

// Valid reports whether s is one of the known statuses.
func (s InventoryStatus) Valid() bool {
	return s == StatusOwned || s == StatusTarget
}

// Label is the human readable status shown on inventory cards.
func (s InventoryStatus) Label() string {
	if s == StatusOwned {
		return "Owned"
	}
	return "Want to buy"
}

// InventoryMeta holds the inventory-only attributes of a custom shoe.
// AddedAt is only used for ordering the inventory list.
type InventoryMeta struct {
	Size    string          `json:"size"`
	Status  InventoryStatus `json:"status"`
	AddedAt time.Time       `json:"addedAt"`
}

// FormatPrice renders an optional price the way the tracker displays it:
// "$900", "$12.5" or "N/A" when no price is known.
func FormatPrice(p *float64) string {
	if p == nil || *p <= 0 {
		return "N/A"
	}
	return "$" + strconv.FormatFloat(*p, 'f', -1, 64)
}

// Float64Ptr is a small helper for building optional prices.
func Float64Ptr(v float64) *float64 {
	return &v
}

// StringPtr is a small helper for building optional strings.
func StringPtr(v string) *string {
	return &v
}

// Clone returns a deep copy of the shoe so callers cannot mutate shared state.
func (s Shoe) Clone() Shoe {
	out := s
	if s.RetailPrice != nil {
		out.RetailPrice = Float64Ptr(*s.RetailPrice)
	}
	if s.LastPrice != nil {
		out.LastPrice = Float64Ptr(*s.LastPrice)
	}
	if s.ReleaseDate != nil {
		out.ReleaseDate = StringPtr(*s.ReleaseDate)
	}
	out.PriceHistory = append([]PricePoint{}, s.PriceHistory...)
	if s.InventoryMeta != nil {
		meta := *s.InventoryMeta
		out.InventoryMeta = &meta
	}
	return out
}
