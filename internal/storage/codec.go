package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

const releaseDateLayout = "2006-01-02"

// EncodeWatchlist serializes watched ids in their stored order.
func EncodeWatchlist(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// DecodeWatchlist parses a stored watchlist. A missing payload is an empty
// list; blank ids are dropped and duplicates collapse to their first position.
func DecodeWatchlist(data []byte) ([]string, error) {
	if isAbsent(data) {
		return []string{}, nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, corrupt(KeyWatchlist, "expected a list of shoe ids", err)
	}

	seen := make(map[string]bool, len(raw))
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// EncodeShoes serializes custom shoes, including inventory metadata.
func EncodeShoes(shoes []models.Shoe) ([]byte, error) {
	if shoes == nil {
		shoes = []models.Shoe{}
	}
	return json.Marshal(shoes)
}

// storedShoe mirrors models.Shoe with the optional fields kept raw, so a
// missing or malformed value is defaulted instead of failing the whole list.
type storedShoe struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Brand         string              `json:"brand"`
	RetailPrice   json.RawMessage     `json:"retailPrice"`
	LastPrice     json.RawMessage     `json:"lastPrice"`
	ReleaseDate   json.RawMessage     `json:"releaseDate"`
	PriceHistory  []models.PricePoint `json:"priceHistory"`
	InventoryMeta *storedMeta         `json:"inventoryMeta"`
}

type storedMeta struct {
	Size    json.RawMessage `json:"size"`
	Status  json.RawMessage `json:"status"`
	AddedAt json.RawMessage `json:"addedAt"`
}

// DecodeShoes parses the stored custom shoe list. Required fields (id, name,
// brand), id uniqueness and positive history prices are enforced; reserved
// lists ids that must not appear (the built-in catalog). Optional fields are
// normalized: prices that are not positive numbers (numeric strings are
// accepted) become absent, unparseable release dates become absent, an
// unparseable addedAt becomes the zero time, and missing inventory metadata
// defaults to an owned shoe.
func DecodeShoes(data []byte, reserved func(id string) bool) ([]models.Shoe, error) {
	if isAbsent(data) {
		return []models.Shoe{}, nil
	}

	var raw []storedShoe
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, corrupt(KeyCustomShoes, "expected a list of shoe records", err)
	}

	seen := make(map[string]bool, len(raw))
	shoes := make([]models.Shoe, 0, len(raw))
	for i, r := range raw {
		id := strings.TrimSpace(r.ID)
		name := strings.TrimSpace(r.Name)
		brand := strings.TrimSpace(r.Brand)
		switch {
		case id == "":
			return nil, corrupt(KeyCustomShoes, fmt.Sprintf("record %d has no id", i), nil)
		case name == "":
			return nil, corrupt(KeyCustomShoes, fmt.Sprintf("record %q has no name", id), nil)
		case brand == "":
			return nil, corrupt(KeyCustomShoes, fmt.Sprintf("record %q has no brand", id), nil)
		case seen[id]:
			return nil, corrupt(KeyCustomShoes, fmt.Sprintf("duplicate id %q", id), nil)
		case reserved != nil && reserved(id):
			return nil, corrupt(KeyCustomShoes, fmt.Sprintf("id %q collides with a built-in shoe", id), nil)
		}
		seen[id] = true

		history := make([]models.PricePoint, 0, len(r.PriceHistory))
		for j, p := range r.PriceHistory {
			if p.Price <= 0 {
				return nil, corrupt(KeyCustomShoes, fmt.Sprintf("record %q price point %d is not positive", id, j), nil)
			}
			history = append(history, p)
		}

		shoe := models.Shoe{
			ID:            id,
			Name:          name,
			Brand:         brand,
			RetailPrice:   rawPrice(r.RetailPrice),
			LastPrice:     rawPrice(r.LastPrice),
			ReleaseDate:   releaseDate(r.ReleaseDate),
			PriceHistory:  history,
			InventoryMeta: inventoryMeta(r.InventoryMeta),
		}
		shoes = append(shoes, shoe)
	}
	return shoes, nil
}

func isAbsent(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// rawPrice reads a JSON number or numeric string; anything else is absent.
func rawPrice(raw json.RawMessage) *float64 {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		f, perr := strconv.ParseFloat(strings.TrimSpace(rawString(raw)), 64)
		if perr != nil {
			return nil
		}
		v = f
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return models.Float64Ptr(v)
}

// rawString returns raw as a string, or "" when it is not a JSON string.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func releaseDate(raw json.RawMessage) *string {
	d := strings.TrimSpace(rawString(raw))
	if d == "" {
		return nil
	}
	if _, err := time.Parse(releaseDateLayout, d); err != nil {
		return nil
	}
	return models.StringPtr(d)
}

func inventoryMeta(m *storedMeta) *models.InventoryMeta {
	meta := &models.InventoryMeta{Status: models.StatusOwned}
	if m == nil {
		return meta
	}
	meta.Size = strings.TrimSpace(rawString(m.Size))
	var numericSize float64
	if meta.Size == "" && json.Unmarshal(m.Size, &numericSize) == nil && numericSize > 0 {
		meta.Size = strconv.FormatFloat(numericSize, 'f', -1, 64)
	}
	if status := models.InventoryStatus(rawString(m.Status)); status.Valid() {
		meta.Status = status
	}
	if addedAt, err := time.Parse(time.RFC3339, rawString(m.AddedAt)); err == nil {
		meta.AddedAt = addedAt
	}
	return meta
}
