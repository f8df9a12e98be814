package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

var (
	// ErrNotFound is returned when no shoe in the merged collection has the id.
	ErrNotFound = errors.New("shoe not found")
	// ErrDuplicateID is returned when a new custom shoe reuses an existing id.
	// Clock-based ids can collide when two shoes are added within the same
	// millisecond; the second add is rejected rather than renamed.
	ErrDuplicateID = errors.New("shoe id already exists")
)

// StateStore is the persistence adapter the services write through.
type StateStore interface {
	LoadWatchlist(ctx context.Context) ([]string, error)
	SaveWatchlist(ctx context.Context, ids []string) error
	LoadCustomShoes(ctx context.Context) ([]models.Shoe, error)
	SaveCustomShoes(ctx context.Context, shoes []models.Shoe) error
}

// CatalogService merges the built-in shoes with the user-added ones.
// Built-in shoes are never mutated; custom shoes are append-only.
type CatalogService struct {
	base   []models.Shoe
	custom []models.Shoe
	store  StateStore
}

// NewCatalogService loads the custom shoes from store once.
func NewCatalogService(ctx context.Context, base []models.Shoe, store StateStore) (*CatalogService, error) {
	custom, err := store.LoadCustomShoes(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogService{base: base, custom: custom, store: store}, nil
}

// GetAll returns built-in shoes in their fixed order followed by custom shoes
// in insertion order.
func (s *CatalogService) GetAll() []models.Shoe {
	out := make([]models.Shoe, 0, len(s.base)+len(s.custom))
	for _, shoe := range s.base {
		out = append(out, shoe.Clone())
	}
	for _, shoe := range s.custom {
		out = append(out, shoe.Clone())
	}
	return out
}

// Custom returns the user-added shoes in insertion order.
func (s *CatalogService) Custom() []models.Shoe {
	out := make([]models.Shoe, len(s.custom))
	for i, shoe := range s.custom {
		out[i] = shoe.Clone()
	}
	return out
}

// FindByID returns the first shoe with the id, or ErrNotFound.
func (s *CatalogService) FindByID(id string) (models.Shoe, error) {
	for _, shoe := range s.base {
		if shoe.ID == id {
			return shoe.Clone(), nil
		}
	}
	for _, shoe := range s.custom {
		if shoe.ID == id {
			return shoe.Clone(), nil
		}
	}
	return models.Shoe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *CatalogService) exists(id string) bool {
	_, err := s.FindByID(id)
	return err == nil
}

// AddCustom appends shoe to the custom list and persists the whole list.
// The in-memory list only changes once the write succeeded.
func (s *CatalogService) AddCustom(ctx context.Context, shoe models.Shoe) error {
	if s.exists(shoe.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, shoe.ID)
	}

	next := make([]models.Shoe, len(s.custom), len(s.custom)+1)
	copy(next, s.custom)
	next = append(next, shoe.Clone())

	if err := s.store.SaveCustomShoes(ctx, next); err != nil {
		return err
	}
	s.custom = next
	return nil
}

// Brands returns the distinct brands of the merged collection, sorted
// case-insensitively. Used to populate the brand filter.
func (s *CatalogService) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, shoe := range s.GetAll() {
		key := strings.ToLower(shoe.Brand)
		if shoe.Brand == "" || seen[key] {
			continue
		}
		seen[key] = true
		brands = append(brands, shoe.Brand)
	}
	sort.Slice(brands, func(i, j int) bool {
		return strings.ToLower(brands[i]) < strings.ToLower(brands[j])
	})
	return brands
}

// Count returns the size of the merged collection.
func (s *CatalogService) Count() int {
	return len(s.base) + len(s.custom)
}
