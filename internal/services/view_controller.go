package services

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/codyseavey/sneaker-tracker/internal/metrics"
	"github.com/codyseavey/sneaker-tracker/internal/models"
)

const defaultDetailCacheSize = 64

// ViewState is the per-process view selection. It is never persisted.
// DetailID is empty while the list is showing.
type ViewState struct {
	Mode        models.ViewMode `json:"mode"`
	BrandFilter string          `json:"brand_filter"`
	DetailID    string          `json:"detail_id,omitempty"`
}

// ViewController turns view state plus the catalog, watchlist and inventory
// into a Screen. It is not safe for concurrent use; see Tracker.
type ViewController struct {
	state     ViewState
	catalog   *CatalogService
	watchlist *WatchlistService
	inventory *InventoryService
	details   *lru.Cache[string, models.ShoeDetail] // shoeID -> detail view-model
	log       *zap.Logger
}

// NewViewController starts in the "all" mode with no filter and no detail open.
func NewViewController(catalog *CatalogService, watchlist *WatchlistService, inventory *InventoryService, cacheSize int, log *zap.Logger) (*ViewController, error) {
	if cacheSize <= 0 {
		cacheSize = defaultDetailCacheSize
	}
	details, err := lru.New[string, models.ShoeDetail](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create detail cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewController{
		state:     ViewState{Mode: models.ModeAll},
		catalog:   catalog,
		watchlist: watchlist,
		inventory: inventory,
		details:   details,
		log:       log,
	}, nil
}

// State returns a copy of the current view state.
func (v *ViewController) State() ViewState {
	return v.state
}

// SelectMode switches mode and closes any open detail.
func (v *ViewController) SelectMode(mode models.ViewMode) error {
	if !mode.Valid() {
		return &ValidationError{Field: "mode", Message: fmt.Sprintf("unknown view mode %q", mode)}
	}
	v.state.Mode = mode
	v.state.DetailID = ""
	return nil
}

// SetBrandFilter sets the brand filter. Ignored in the inventory mode, where
// the filter controls are hidden.
func (v *ViewController) SetBrandFilter(brand string) {
	if !v.state.Mode.Filterable() {
		v.log.Debug("Brand filter ignored outside list modes", zap.String("mode", string(v.state.Mode)))
		return
	}
	v.state.BrandFilter = strings.TrimSpace(brand)
}

// OpenDetail shows the detail for id. Unknown ids and the inventory mode
// leave the view untouched.
func (v *ViewController) OpenDetail(id string) {
	if !v.state.Mode.Filterable() {
		return
	}
	if _, err := v.catalog.FindByID(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			v.log.Warn("Detail requested for unknown shoe", zap.String("id", id))
		}
		return
	}
	v.state.DetailID = id
}

// CloseDetail returns to the list of the current mode.
func (v *ViewController) CloseDetail() {
	v.state.DetailID = ""
}

// Render builds the screen for the current state.
func (v *ViewController) Render() models.Screen {
	screen := models.Screen{
		Mode:           v.state.Mode,
		BrandFilter:    v.state.BrandFilter,
		FiltersVisible: v.state.Mode.Filterable(),
	}

	if v.state.Mode == models.ModeInventory {
		screen.Kind = models.ScreenInventory
		for _, shoe := range v.inventory.ListSortedByRecency() {
			screen.Inventory = append(screen.Inventory, inventoryCard(shoe))
		}
		if len(screen.Inventory) == 0 {
			screen.EmptyMessage = models.EmptyInventoryMessage
		}
		return screen
	}

	if v.state.DetailID != "" {
		if detail, ok := v.detail(v.state.DetailID); ok {
			screen.Kind = models.ScreenDetail
			screen.Detail = &detail
			return screen
		}
		v.state.DetailID = ""
	}

	screen.Kind = models.ScreenList
	for _, shoe := range v.visibleShoes() {
		screen.Cards = append(screen.Cards, v.shoeCard(shoe))
	}
	if len(screen.Cards) == 0 {
		screen.EmptyMessage = models.EmptyListMessage
	}
	return screen
}

// visibleShoes applies the brand filter and, in the watchlist mode, the
// watchlist to the merged collection.
func (v *ViewController) visibleShoes() []models.Shoe {
	var out []models.Shoe
	for _, shoe := range v.catalog.GetAll() {
		if v.state.BrandFilter != "" && !strings.EqualFold(shoe.Brand, v.state.BrandFilter) {
			continue
		}
		if v.state.Mode == models.ModeWatchlist && !v.watchlist.IsWatched(shoe.ID) {
			continue
		}
		out = append(out, shoe)
	}
	return out
}

func (v *ViewController) detail(id string) (models.ShoeDetail, bool) {
	if cached, ok := v.details.Get(id); ok {
		metrics.DetailCacheRequests.WithLabelValues("hit").Inc()
		return cached, true
	}
	metrics.DetailCacheRequests.WithLabelValues("miss").Inc()

	shoe, err := v.catalog.FindByID(id)
	if err != nil {
		return models.ShoeDetail{}, false
	}
	detail := shoeDetail(shoe)
	v.details.Add(id, detail)
	return detail, true
}

func (v *ViewController) shoeCard(shoe models.Shoe) models.ShoeCard {
	watched := v.watchlist.IsWatched(shoe.ID)
	label := "☆ Watch"
	if watched {
		label = "★ Watching"
	}
	return models.ShoeCard{
		ID:          shoe.ID,
		Name:        shoe.Name,
		Brand:       brandOrUnknown(shoe.Brand),
		RetailPrice: models.FormatPrice(shoe.RetailPrice),
		LastPrice:   models.FormatPrice(shoe.LastPrice),
		Watched:     watched,
		WatchLabel:  label,
	}
}

func shoeDetail(shoe models.Shoe) models.ShoeDetail {
	trend := ComputeTrend(shoe.PriceHistory)
	detail := models.ShoeDetail{
		ID:          shoe.ID,
		Name:        shoe.Name,
		Brand:       brandOrUnknown(shoe.Brand),
		ReleaseDate: "N/A",
		RetailPrice: models.FormatPrice(shoe.RetailPrice),
		LastPrice:   models.FormatPrice(shoe.LastPrice),
		Trend:       trend,
		TrendLabel:  trend.Label(),
		History:     make([]models.HistoryEntry, 0, len(shoe.PriceHistory)),
	}
	if shoe.ReleaseDate != nil && *shoe.ReleaseDate != "" {
		detail.ReleaseDate = *shoe.ReleaseDate
	}
	for _, p := range shoe.PriceHistory {
		detail.History = append(detail.History, models.HistoryEntry{
			Date:   p.Date,
			Source: p.Source,
			Price:  p.Price,
			Text:   fmt.Sprintf("%s – %s (%s)", p.Date, models.FormatPrice(&p.Price), p.Source),
		})
	}
	if len(detail.History) == 0 {
		detail.EmptyHistory = models.EmptyHistoryMessage
	}
	return detail
}

func inventoryCard(shoe models.Shoe) models.InventoryCard {
	card := models.InventoryCard{
		ID:    shoe.ID,
		Name:  shoe.Name,
		Brand: shoe.Brand,
		Size:  "N/A",
		Price: models.FormatPrice(shoe.LastPrice),
	}
	if meta := shoe.InventoryMeta; meta != nil {
		if meta.Size != "" {
			card.Size = meta.Size
		}
		card.Status = meta.Status
		card.StatusLabel = meta.Status.Label()
	}
	return card
}

func brandOrUnknown(brand string) string {
	if brand == "" {
		return "Unknown"
	}
	return brand
}
