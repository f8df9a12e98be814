// Package catalog holds the built-in sneakers shipped with the tracker.
package catalog

import (
	"github.com/codyseavey/sneaker-tracker/internal/models"
)

var baseShoes = []models.Shoe{
	{
		ID:          "aj1-chicago-2015",
		Name:        "Air Jordan 1 Retro High OG 'Chicago'",
		Brand:       "Jordan",
		RetailPrice: models.Float64Ptr(160),
		LastPrice:   models.Float64Ptr(900),
		ReleaseDate: models.StringPtr("2015-05-30"),
		PriceHistory: []models.PricePoint{
			{Date: "2024-10-01", Source: "StockX", Price: 850},
			{Date: "2024-11-01", Source: "StockX", Price: 880},
			{Date: "2024-12-01", Source: "GOAT", Price: 900},
		},
	},
	{
		ID:          "nb-550-white-green",
		Name:        "New Balance 550 White Green",
		Brand:       "New Balance",
		RetailPrice: models.Float64Ptr(110),
		LastPrice:   models.Float64Ptr(150),
		ReleaseDate: models.StringPtr("2023-03-10"),
		PriceHistory: []models.PricePoint{
			{Date: "2024-10-01", Source: "StockX", Price: 140},
			{Date: "2024-11-01", Source: "GOAT", Price: 150},
		},
	},
	{
		ID:          "af1-triple-white",
		Name:        "Nike Air Force 1 '07 Triple White",
		Brand:       "Nike",
		RetailPrice: models.Float64Ptr(110),
		LastPrice:   models.Float64Ptr(120),
		ReleaseDate: models.StringPtr("2022-01-01"),
		PriceHistory: []models.PricePoint{
			{Date: "2024-10-01", Source: "Retail", Price: 110},
			{Date: "2024-12-01", Source: "Retail", Price: 120},
		},
	},
}

// BaseShoes returns a fresh copy of the built-in catalog in its fixed order.
// Callers may modify the result without affecting later calls.
func BaseShoes() []models.Shoe {
	out := make([]models.Shoe, len(baseShoes))
	for i, s := range baseShoes {
		out[i] = s.Clone()
	}
	return out
}

// IsBaseID reports whether id belongs to a built-in shoe.
func IsBaseID(id string) bool {
	for _, s := range baseShoes {
		if s.ID == id {
			return true
		}
	}
	return false
}
