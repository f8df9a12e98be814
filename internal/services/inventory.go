package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// ValidationError reports user input that aborted an operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InventoryFields is the raw inventory form as submitted by the user.
type InventoryFields struct {
	Name   string                 `json:"name"`
	Brand  string                 `json:"brand"`
	Size   string                 `json:"size"`
	Price  PriceInput             `json:"price"`
	Status models.InventoryStatus `json:"status"`
}

// PriceInput is the raw price text of the inventory form. It decodes from a
// JSON string, number or null, and any other literal is kept as text, so a
// price never fails decoding; ParsePrice decides what it means.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
	default:
		*p = PriceInput(data)
	}
	return nil
}

// InventoryService creates custom shoes and lists them by recency.
type InventoryService struct {
	catalog *CatalogService
	now     func() time.Time
}

// NewInventoryService creates an inventory service. now defaults to time.Now.
func NewInventoryService(catalog *CatalogService, now func() time.Time) *InventoryService {
	if now == nil {
		now = time.Now
	}
	return &InventoryService{catalog: catalog, now: now}
}

// Add validates fields, builds a new custom shoe and persists it through the
// catalog. Name and brand are required; an unparseable price is treated as no
// price. Nothing is written when validation fails.
func (s *InventoryService) Add(ctx context.Context, fields InventoryFields) (models.Shoe, error) {
	name := strings.TrimSpace(fields.Name)
	brand := strings.TrimSpace(fields.Brand)
	if name == "" || brand == "" {
		field := "name"
		if name != "" {
			field = "brand"
		}
		return models.Shoe{}, &ValidationError{Field: field, Message: "Name and brand are required."}
	}

	status := fields.Status
	if status == "" {
		status = models.StatusOwned
	}
	if !status.Valid() {
		return models.Shoe{}, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("Status must be %q or %q.", models.StatusOwned, models.StatusTarget),
		}
	}

	price := ParsePrice(string(fields.Price))
	now := s.now()

	shoe := models.Shoe{
		ID:           fmt.Sprintf("custom-%d", now.UnixMilli()),
		Name:         name,
		Brand:        brand,
		RetailPrice:  price,
		PriceHistory: []models.PricePoint{},
		InventoryMeta: &models.InventoryMeta{
			Size:    strings.TrimSpace(fields.Size),
			Status:  status,
			AddedAt: now,
		},
	}
	if price != nil {
		shoe.LastPrice = models.Float64Ptr(*price)
	}

	if err := s.catalog.AddCustom(ctx, shoe); err != nil {
		return models.Shoe{}, err
	}
	return shoe, nil
}

// ListSortedByRecency returns custom shoes, most recently added first.
// Shoes added at the same instant keep their insertion order.
func (s *InventoryService) ListSortedByRecency() []models.Shoe {
	shoes := s.catalog.Custom()
	sort.SliceStable(shoes, func(i, j int) bool {
		return addedAt(shoes[i]).After(addedAt(shoes[j]))
	})
	return shoes
}

// CountByStatus returns how many custom shoes carry each status.
func (s *InventoryService) CountByStatus() map[models.InventoryStatus]int {
	counts := make(map[models.InventoryStatus]int)
	for _, status := range models.AllInventoryStatuses() {
		counts[status] = 0
	}
	for _, shoe := range s.catalog.Custom() {
		if shoe.InventoryMeta != nil {
			counts[shoe.InventoryMeta.Status]++
		}
	}
	return counts
}

func addedAt(s models.Shoe) time.Time {
	if s.InventoryMeta == nil {
		return time.Time{}
	}
	return s.InventoryMeta.AddedAt
}

// ParsePrice is the permissive price parser used by the inventory form:
// blank, non-numeric, non-finite and non-positive input all mean "no price".
func ParsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}
