package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/codyseavey/sneaker-tracker/internal/catalog"
	"github.com/codyseavey/sneaker-tracker/internal/models"
	"github.com/codyseavey/sneaker-tracker/internal/services"
	"github.com/codyseavey/sneaker-tracker/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, store services.StateStore) *gin.Engine {
	t.Helper()
	if store == nil {
		store = storage.NewRepository(storage.NewMemory(), catalog.IsBaseID)
	}
	now := fixedNow
	tracker, err := services.NewTracker(context.Background(), catalog.BaseShoes(), store, services.TrackerOptions{
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	})
	require.NoError(t, err)

	h := NewViewHandler(tracker, nil)
	r := gin.New()
	r.GET("/api/view", h.GetView)
	r.GET("/api/view/state", h.GetState)
	r.POST("/api/view/mode", h.SelectMode)
	r.POST("/api/view/filter", h.SetBrandFilter)
	r.POST("/api/view/detail/:id", h.OpenDetail)
	r.DELETE("/api/view/detail", h.CloseDetail)
	r.GET("/api/watchlist", h.GetWatchlist)
	r.POST("/api/watchlist/:id/toggle", h.ToggleWatch)
	r.POST("/api/inventory", h.AddInventory)
	r.POST("/api/inventory/:id/view", h.ViewInTracker)
	r.GET("/api/brands", h.GetBrands)
	r.POST("/api/commands", h.RunCommands)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeScreen(t *testing.T, w *httptest.ResponseRecorder) models.Screen {
	t.Helper()
	var screen models.Screen
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &screen))
	return screen
}

type errorBody struct {
	Error   string        `json:"error"`
	Field   string        `json:"field"`
	Applied *int          `json:"applied"`
	Screen  models.Screen `json:"screen"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetView(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/view", "")
	require.Equal(t, http.StatusOK, w.Code)

	screen := decodeScreen(t, w)
	assert.Equal(t, models.ScreenList, screen.Kind)
	assert.Equal(t, models.ModeAll, screen.Mode)
	assert.True(t, screen.FiltersVisible)
	require.Len(t, screen.Cards, 3)
	assert.Equal(t, "$900", screen.Cards[0].LastPrice)
}

func TestSelectMode(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/view/mode", `{"mode":"inventory"}`)
	require.Equal(t, http.StatusOK, w.Code)
	screen := decodeScreen(t, w)
	assert.Equal(t, models.ScreenInventory, screen.Kind)
	assert.False(t, screen.FiltersVisible)
	assert.Equal(t, models.EmptyInventoryMessage, screen.EmptyMessage)

	w = do(r, http.MethodPost, "/api/view/mode", `{"mode":"closet"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "mode", body.Field)
	assert.Equal(t, models.ModeInventory, body.Screen.Mode)

	w = do(r, http.MethodPost, "/api/view/mode", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrandFilterAndDetail(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/view/filter", `{"brand":"nike"}`)
	require.Equal(t, http.StatusOK, w.Code)
	screen := decodeScreen(t, w)
	require.Len(t, screen.Cards, 1)
	assert.Equal(t, "af1-triple-white", screen.Cards[0].ID)

	w = do(r, http.MethodPost, "/api/view/detail/af1-triple-white", "")
	require.Equal(t, http.StatusOK, w.Code)
	screen = decodeScreen(t, w)
	require.Equal(t, models.ScreenDetail, screen.Kind)
	assert.Equal(t, models.TrendUp, screen.Detail.Trend)
	assert.Len(t, screen.Detail.History, 2)

	w = do(r, http.MethodDelete, "/api/view/detail", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ScreenList, decodeScreen(t, w).Kind)

	w = do(r, http.MethodGet, "/api/view/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	var state services.ViewState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, services.ViewState{Mode: models.ModeAll, BrandFilter: "nike"}, state)
}

func TestToggleWatch(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/watchlist/nb-550-white-green/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	screen := decodeScreen(t, w)
	assert.True(t, screen.Cards[1].Watched)
	assert.Equal(t, "★ Watching", screen.Cards[1].WatchLabel)

	ids := do(r, http.MethodGet, "/api/watchlist", "")
	assert.JSONEq(t, `{"ids":["nb-550-white-green"]}`, ids.Body.String())

	do(r, http.MethodPost, "/api/view/mode", `{"mode":"watchlist"}`)
	screen = decodeScreen(t, do(r, http.MethodGet, "/api/view", ""))
	require.Len(t, screen.Cards, 1)
	assert.Equal(t, "nb-550-white-green", screen.Cards[0].ID)
}

func TestAddInventory(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/api/view/mode", `{"mode":"inventory"}`)

	w := do(r, http.MethodPost, "/api/inventory", `{"name":"Samba OG","brand":"Adidas","size":"9.5","price":"100","status":"target"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	screen := decodeScreen(t, w)
	require.Len(t, screen.Inventory, 1)
	card := screen.Inventory[0]
	assert.Equal(t, "Samba OG", card.Name)
	assert.Equal(t, "9.5", card.Size)
	assert.Equal(t, "$100", card.Price)
	assert.Equal(t, "Want to buy", card.StatusLabel)

	w = do(r, http.MethodPost, "/api/inventory/"+card.ID+"/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	screen = decodeScreen(t, w)
	assert.Equal(t, models.ModeAll, screen.Mode)
	require.Equal(t, models.ScreenDetail, screen.Kind)
	assert.Equal(t, models.EmptyHistoryMessage, screen.Detail.EmptyHistory)

	brands := do(r, http.MethodGet, "/api/brands", "")
	assert.JSONEq(t, `{"brands":["Adidas","Jordan","New Balance","Nike"]}`, brands.Body.String())
}

func TestAddInventoryValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/inventory", `{"name":"  ","brand":"Adidas"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Name and brand are required.", body.Error)
	assert.Equal(t, "name", body.Field)
	assert.Len(t, body.Screen.Cards, 3)

	w = do(r, http.MethodPost, "/api/inventory", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingStore struct {
	services.StateStore
}

func (failingStore) SaveWatchlist(context.Context, []string) error { return assert.AnError }

func TestPersistenceFailureIs500(t *testing.T) {
	store := failingStore{storage.NewRepository(storage.NewMemory(), catalog.IsBaseID)}
	r := newTestRouter(t, store)

	w := do(r, http.MethodPost, "/api/watchlist/af1-triple-white/toggle", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "failed to save tracker state", body.Error)
	assert.False(t, body.Screen.Cards[2].Watched)
}

func TestRunCommands(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/commands", `{"type":"select_mode","mode":"watchlist"}`)
	require.Equal(t, http.StatusOK, w.Code)
	screen := decodeScreen(t, w)
	assert.Equal(t, models.ModeWatchlist, screen.Mode)
	assert.Equal(t, models.EmptyListMessage, screen.EmptyMessage)

	w = do(r, http.MethodPost, "/api/commands", `[
		{"type":"toggle_watch","id":"aj1-chicago-2015"},
		{"type":"open_detail","id":"aj1-chicago-2015"}
	]`)
	require.Equal(t, http.StatusOK, w.Code)
	screen = decodeScreen(t, w)
	require.Equal(t, models.ScreenDetail, screen.Kind)
	assert.Equal(t, "Air Jordan 1 Retro High OG 'Chicago'", screen.Detail.Name)
}

func TestRunCommandsStopsAtFirstFailure(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/commands", `[
		{"type":"toggle_watch","id":"aj1-chicago-2015"},
		{"type":"select_mode","mode":"nope"},
		{"type":"toggle_watch","id":"af1-triple-white"}
	]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	require.NotNil(t, body.Applied)
	assert.Equal(t, 1, *body.Applied)
	assert.True(t, body.Screen.Cards[0].Watched)
	assert.False(t, body.Screen.Cards[2].Watched)
}

func TestRunCommandsRejectsUnknownType(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/commands", `{"type":"sell"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/commands", `[{"type":"close_detail"},{"type":"sell"}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddInventoryAcceptsNumericPrice(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/api/view/mode", `{"mode":"inventory"}`)

	w := do(r, http.MethodPost, "/api/inventory", `{"name":"Samba","brand":"Adidas","price":150}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	screen := decodeScreen(t, w)
	require.Len(t, screen.Inventory, 1)
	assert.Equal(t, "$150", screen.Inventory[0].Price)

	w = do(r, http.MethodPost, "/api/commands",
		`{"type":"add_inventory","fields":{"name":"Gazelle","brand":"Adidas","price":95.5,"status":"target"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	screen = decodeScreen(t, w)
	require.Len(t, screen.Inventory, 2)
	assert.Equal(t, "Gazelle", screen.Inventory[0].Name)
	assert.Equal(t, "$95.5", screen.Inventory[0].Price)

	w = do(r, http.MethodPost, "/api/inventory", `{"name":"Campus","brand":"Adidas","price":null}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "N/A", decodeScreen(t, w).Inventory[0].Price)
}
