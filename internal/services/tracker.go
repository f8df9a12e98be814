package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/codyseavey/sneaker-tracker/internal/metrics"
	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// TrackerOptions tunes NewTracker.
type TrackerOptions struct {
	DetailCacheSize int
	Now             func() time.Time
	Logger          *zap.Logger
}

// Tracker owns all tracker state and applies commands one at a time.
// Dispatch holds a mutex for the whole command, so concurrent callers (HTTP
// handlers) observe the same sequential behavior as a single user.
type Tracker struct {
	mu        sync.Mutex
	catalog   *CatalogService
	watchlist *WatchlistService
	inventory *InventoryService
	view      *ViewController
	log       *zap.Logger
}

// NewTracker loads persisted state from store and starts in the "all" view.
func NewTracker(ctx context.Context, base []models.Shoe, store StateStore, opts TrackerOptions) (*Tracker, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	catalog, err := NewCatalogService(ctx, base, store)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	watchlist, err := NewWatchlistService(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	inventory := NewInventoryService(catalog, opts.Now)
	view, err := NewViewController(catalog, watchlist, inventory, opts.DetailCacheSize, log)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		catalog:   catalog,
		watchlist: watchlist,
		inventory: inventory,
		view:      view,
		log:       log,
	}
	t.updateGauges()
	log.Info("Tracker state loaded",
		zap.Int("shoes", catalog.Count()),
		zap.Int("watchlist", watchlist.Len()))
	return t, nil
}

// Dispatch applies cmd and returns the screen rendered afterwards.
// On error the returned screen reflects the unchanged state.
func (t *Tracker) Dispatch(ctx context.Context, cmd Command) (models.Screen, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.apply(ctx, cmd)

	result := "ok"
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		result = "invalid"
		t.log.Info("Command rejected", zap.String("command", cmd.CommandName()), zap.String("reason", vErr.Message))
	case err != nil:
		result = "error"
		t.log.Error("Command failed", zap.String("command", cmd.CommandName()), zap.Error(err))
	}
	metrics.CommandsTotal.WithLabelValues(cmd.CommandName(), result).Inc()

	screen := t.view.Render()
	t.log.Debug("Rendered screen",
		zap.String("kind", string(screen.Kind)),
		zap.String("mode", string(screen.Mode)),
		zap.Int("cards", len(screen.Cards)+len(screen.Inventory)))
	return screen, err
}

func (t *Tracker) apply(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case SelectMode:
		return t.view.SelectMode(c.Mode)
	case SetBrandFilter:
		t.view.SetBrandFilter(c.Brand)
	case OpenDetail:
		t.view.OpenDetail(c.ID)
	case CloseDetail:
		t.view.CloseDetail()
	case ToggleWatch:
		if c.ID == "" {
			return &ValidationError{Field: "id", Message: "shoe id is required"}
		}
		if err := t.watchlist.Toggle(ctx, c.ID); err != nil {
			return err
		}
		t.log.Info("Watchlist toggled", zap.String("id", c.ID), zap.Bool("watched", t.watchlist.IsWatched(c.ID)))
		t.updateGauges()
	case AddInventory:
		shoe, err := t.inventory.Add(ctx, c.Fields)
		if err != nil {
			return err
		}
		t.log.Info("Inventory shoe added",
			zap.String("id", shoe.ID),
			zap.String("brand", shoe.Brand),
			zap.String("status", string(shoe.InventoryMeta.Status)))
		t.updateGauges()
	case ViewInTracker:
		if err := t.view.SelectMode(models.ModeAll); err != nil {
			return err
		}
		t.view.OpenDetail(c.ID)
	default:
		return &ValidationError{Field: "command", Message: fmt.Sprintf("unsupported command %T", cmd)}
	}
	return nil
}

// Render returns the current screen without changing state.
func (t *Tracker) Render() models.Screen {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.Render()
}

// State returns the current view state.
func (t *Tracker) State() ViewState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view.State()
}

// Brands returns the options for the brand filter.
func (t *Tracker) Brands() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Brands()
}

// IsWatched reports whether id is on the watchlist.
func (t *Tracker) IsWatched(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.watchlist.IsWatched(id)
}

// WatchlistIDs returns the watched ids in stored order.
func (t *Tracker) WatchlistIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.watchlist.IDs()
}

func (t *Tracker) updateGauges() {
	metrics.CatalogShoes.Set(float64(t.catalog.Count()))
	metrics.WatchlistSize.Set(float64(t.watchlist.Len()))
	for status, n := range t.inventory.CountByStatus() {
		metrics.InventoryByStatus.WithLabelValues(string(status)).Set(float64(n))
	}
}
