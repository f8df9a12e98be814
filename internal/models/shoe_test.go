package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		expected string
	}{
		{"nil is N/A", nil, "N/A"},
		{"zero is N/A", Float64Ptr(0), "N/A"},
		{"whole number", Float64Ptr(900), "$900"},
		{"fractional", Float64Ptr(12.5), "$12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.expected {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInventoryStatus(t *testing.T) {
	tests := []struct {
		status InventoryStatus
		valid  bool
		label  string
	}{
		{StatusOwned, true, "Owned"},
		{StatusTarget, true, "Want to buy"},
		{InventoryStatus("sold"), false, "Want to buy"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.status.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}

	if len(AllInventoryStatuses()) != 2 {
		t.Errorf("AllInventoryStatuses() returned %d statuses, want 2", len(AllInventoryStatuses()))
	}
}

func TestTrendLabel(t *testing.T) {
	tests := []struct {
		trend    Trend
		expected string
	}{
		{TrendUp, "📈 Up"},
		{TrendDown, "📉 Down"},
		{TrendFlat, "➡️ Flat"},
		{TrendInsufficientData, "Not enough data"},
		{Trend(""), "Not enough data"},
	}

	for _, tt := range tests {
		if got := tt.trend.Label(); got != tt.expected {
			t.Errorf("Trend(%q).Label() = %q, want %q", tt.trend, got, tt.expected)
		}
	}
}

func TestViewModeFilterable(t *testing.T) {
	if !ModeAll.Filterable() || !ModeWatchlist.Filterable() {
		t.Error("all and watchlist modes should be filterable")
	}
	if ModeInventory.Filterable() {
		t.Error("inventory mode should not be filterable")
	}
	if ViewMode("grid").Valid() {
		t.Error("unknown mode should not be valid")
	}
	for _, m := range AllViewModes() {
		if !m.Valid() {
			t.Errorf("mode %q should be valid", m)
		}
	}
}

// Custom shoes written by the browser app use camelCase keys and an ISO addedAt.
func TestShoeDecodesBrowserRecord(t *testing.T) {
	raw := `{
		"id": "custom-1733000000000",
		"name": "Dunk Low Panda",
		"brand": "Nike",
		"retailPrice": 110,
		"lastPrice": 110,
		"releaseDate": null,
		"priceHistory": [],
		"inventoryMeta": {"size": "10", "status": "target", "addedAt": "2024-12-01T10:00:00.000Z"}
	}`

	var shoe Shoe
	if err := json.Unmarshal([]byte(raw), &shoe); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !shoe.IsCustom() {
		t.Fatal("shoe with inventoryMeta should be custom")
	}
	if shoe.ReleaseDate != nil {
		t.Errorf("ReleaseDate = %v, want nil", *shoe.ReleaseDate)
	}
	if shoe.RetailPrice == nil || *shoe.RetailPrice != 110 {
		t.Errorf("RetailPrice = %v, want 110", shoe.RetailPrice)
	}
	if shoe.InventoryMeta.Status != StatusTarget {
		t.Errorf("Status = %q, want %q", shoe.InventoryMeta.Status, StatusTarget)
	}
	want := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	if !shoe.InventoryMeta.AddedAt.Equal(want) {
		t.Errorf("AddedAt = %v, want %v", shoe.InventoryMeta.AddedAt, want)
	}
}
