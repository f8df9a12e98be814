package storage

import (
	"context"
	"fmt"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// Repository is the typed persistence adapter used by the tracker services.
// Each call is one synchronous read or write; there is no caching or retry.
type Repository struct {
	store    Store
	reserved func(id string) bool
}

// NewRepository wraps store. reserved reports ids that custom shoes may not use.
func NewRepository(store Store, reserved func(id string) bool) *Repository {
	return &Repository{store: store, reserved: reserved}
}

// LoadWatchlist reads and decodes the watchlist.
func (r *Repository) LoadWatchlist(ctx context.Context) ([]string, error) {
	data, err := r.store.Load(ctx, KeyWatchlist)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return DecodeWatchlist(data)
}

// SaveWatchlist replaces the stored watchlist.
func (r *Repository) SaveWatchlist(ctx context.Context, ids []string) error {
	data, err := EncodeWatchlist(ids)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := r.store.Save(ctx, KeyWatchlist, data); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	return nil
}

// LoadCustomShoes reads and decodes the user-added shoes.
func (r *Repository) LoadCustomShoes(ctx context.Context) ([]models.Shoe, error) {
	data, err := r.store.Load(ctx, KeyCustomShoes)
	if err != nil {
		return nil, fmt.Errorf("load custom shoes: %w", err)
	}
	return DecodeShoes(data, r.reserved)
}

// SaveCustomShoes replaces the stored user-added shoes.
func (r *Repository) SaveCustomShoes(ctx context.Context, shoes []models.Shoe) error {
	data, err := EncodeShoes(shoes)
	if err != nil {
		return fmt.Errorf("encode custom shoes: %w", err)
	}
	if err := r.store.Save(ctx, KeyCustomShoes, data); err != nil {
		return fmt.Errorf("save custom shoes: %w", err)
	}
	return nil
}

// Driver returns the backing store's driver.
func (r *Repository) Driver() Driver {
	return r.store.Driver()
}
