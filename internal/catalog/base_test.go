package catalog

import (
	"testing"
)

func TestBaseShoesOrderAndIDs(t *testing.T) {
	shoes := BaseShoes()
	want := []string{"aj1-chicago-2015", "nb-550-white-green", "af1-triple-white"}

	if len(shoes) != len(want) {
		t.Fatalf("BaseShoes() returned %d shoes, want %d", len(shoes), len(want))
	}
	for i, id := range want {
		if shoes[i].ID != id {
			t.Errorf("BaseShoes()[%d].ID = %q, want %q", i, shoes[i].ID, id)
		}
		if shoes[i].IsCustom() {
			t.Errorf("built-in shoe %q must not carry inventory metadata", id)
		}
		if !IsBaseID(id) {
			t.Errorf("IsBaseID(%q) = false, want true", id)
		}
	}

	if IsBaseID("custom-1") {
		t.Error("IsBaseID(custom-1) = true, want false")
	}
}

func TestBaseShoesReturnsCopies(t *testing.T) {
	first := BaseShoes()
	first[0].Name = "changed"
	first[0].PriceHistory[0].Price = 1
	*first[0].LastPrice = 1

	second := BaseShoes()
	if second[0].Name == "changed" {
		t.Error("mutating a returned shoe changed the catalog name")
	}
	if second[0].PriceHistory[0].Price != 850 {
		t.Errorf("PriceHistory[0].Price = %v, want 850", second[0].PriceHistory[0].Price)
	}
	if *second[0].LastPrice != 900 {
		t.Errorf("LastPrice = %v, want 900", *second[0].LastPrice)
	}
}
