package models

// ViewMode selects which data set the tracker renders
type ViewMode string

const (
	ModeAll       ViewMode = "all"
	ModeWatchlist ViewMode = "watchlist"
	ModeInventory ViewMode = "inventory"
)

// AllViewModes returns all valid view modes
func AllViewModes() []ViewMode {
	return []ViewMode{ModeAll, ModeWatchlist, ModeInventory}
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ModeAll, ModeWatchlist, ModeInventory:
		return true
	}
	return false
}

// Filterable reports whether the brand filter applies in this mode
func (m ViewMode) Filterable() bool {
	return m == ModeAll || m == ModeWatchlist
}

// ScreenKind identifies which panel a Screen describes
type ScreenKind string

const (
	ScreenList      ScreenKind = "list"
	ScreenDetail    ScreenKind = "detail"
	ScreenInventory ScreenKind = "inventory"
)

const (
	EmptyListMessage      = "No shoes found."
	EmptyInventoryMessage = "No shoes in your inventory yet. Add something above."
	EmptyHistoryMessage   = "No price history yet."
)

// ShoeCard is the list view-model for a shoe in the all/watchlist modes
type ShoeCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	RetailPrice string `json:"retail_price"`
	LastPrice   string `json:"last_price"`
	Watched     bool   `json:"watched"`
	WatchLabel  string `json:"watch_label"`
}

// InventoryCard is the view-model for a custom shoe in the inventory mode
type InventoryCard struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Size        string          `json:"size"`
	Price       string          `json:"price"`
	Status      InventoryStatus `json:"status"`
	StatusLabel string          `json:"status_label"`
}

// HistoryEntry is one formatted price-history line
type HistoryEntry struct {
	Date   string  `json:"date"`
	Source string  `json:"source"`
	Price  float64 `json:"price"`
	Text   string  `json:"text"`
}

// ShoeDetail is the detail view-model for a single shoe
type ShoeDetail struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Brand        string         `json:"brand"`
	ReleaseDate  string         `json:"release_date"`
	RetailPrice  string         `json:"retail_price"`
	LastPrice    string         `json:"last_price"`
	Trend        Trend          `json:"trend"`
	TrendLabel   string         `json:"trend_label"`
	History      []HistoryEntry `json:"history"`
	EmptyHistory string         `json:"empty_history,omitempty"`
}

// Screen is everything the presentation layer needs to draw one render.
// Exactly one of Cards, Inventory or Detail is populated according to Kind;
// EmptyMessage is set instead when the selected data set is empty.
type Screen struct {
	Kind           ScreenKind      `json:"kind"`
	Mode           ViewMode        `json:"mode"`
	BrandFilter    string          `json:"brand_filter"`
	FiltersVisible bool            `json:"filters_visible"`
	Cards          []ShoeCard      `json:"cards,omitempty"`
	Inventory      []InventoryCard `json:"inventory,omitempty"`
	Detail         *ShoeDetail     `json:"detail,omitempty"`
	EmptyMessage   string          `json:"empty_message,omitempty"`
}
