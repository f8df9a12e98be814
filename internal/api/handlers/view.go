package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codyseavey/sneaker-tracker/internal/models"
	"github.com/codyseavey/sneaker-tracker/internal/services"
)

// maxCommandBody caps POST /api/commands payloads.
const maxCommandBody = 1 << 20

type ViewHandler struct {
	tracker *services.Tracker
	log     *zap.Logger
}

func NewViewHandler(tracker *services.Tracker, log *zap.Logger) *ViewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewHandler{tracker: tracker, log: log}
}

func (h *ViewHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Render())
}

func (h *ViewHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.State())
}

func (h *ViewHandler) GetBrands(c *gin.Context) {
	brands := h.tracker.Brands()
	if brands == nil {
		brands = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *ViewHandler) GetWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.tracker.WatchlistIDs()})
}

type selectModeRequest struct {
	Mode models.ViewMode `json:"mode" binding:"required"`
}

func (h *ViewHandler) SelectMode(c *gin.Context) {
	var req selectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, services.SelectMode{Mode: req.Mode})
}

type brandFilterRequest struct {
	Brand string `json:"brand"`
}

func (h *ViewHandler) SetBrandFilter(c *gin.Context) {
	var req brandFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, services.SetBrandFilter{Brand: req.Brand})
}

func (h *ViewHandler) OpenDetail(c *gin.Context) {
	h.dispatch(c, services.OpenDetail{ID: c.Param("id")})
}

func (h *ViewHandler) CloseDetail(c *gin.Context) {
	h.dispatch(c, services.CloseDetail{})
}

func (h *ViewHandler) ToggleWatch(c *gin.Context) {
	h.dispatch(c, services.ToggleWatch{ID: c.Param("id")})
}

func (h *ViewHandler) AddInventory(c *gin.Context) {
	var fields services.InventoryFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatchWithStatus(c, services.AddInventory{Fields: fields}, http.StatusCreated)
}

func (h *ViewHandler) ViewInTracker(c *gin.Context) {
	h.dispatch(c, services.ViewInTracker{ID: c.Param("id")})
}

// RunCommands accepts either one JSON command or an array of them. An array
// is applied in order and stops at the first failure.
func (h *ViewHandler) RunCommands(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCommandBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var cmds []services.Command
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		cmds, err = services.DecodeCommands(trimmed)
	} else {
		var cmd services.Command
		cmd, err = services.DecodeCommand(body)
		cmds = []services.Command{cmd}
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	screen := h.tracker.Render()
	for i, cmd := range cmds {
		screen, err = h.tracker.Dispatch(c.Request.Context(), cmd)
		if err != nil {
			h.fail(c, err, screen, gin.H{"applied": i})
			return
		}
	}
	c.JSON(http.StatusOK, screen)
}

func (h *ViewHandler) dispatch(c *gin.Context, cmd services.Command) {
	h.dispatchWithStatus(c, cmd, http.StatusOK)
}

func (h *ViewHandler) dispatchWithStatus(c *gin.Context, cmd services.Command, status int) {
	screen, err := h.tracker.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err, screen, nil)
		return
	}
	c.JSON(status, screen)
}

// fail maps validation problems to 400, id collisions to 409 and everything
// else (persistence) to 500.
// The unchanged screen is returned alongside the error so clients can redraw.
func (h *ViewHandler) fail(c *gin.Context, err error, screen models.Screen, extra gin.H) {
	body := gin.H{"error": err.Error(), "screen": screen}
	for k, v := range extra {
		body[k] = v
	}

	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		body["field"] = vErr.Field
		c.JSON(http.StatusBadRequest, body)
		return
	}
	if errors.Is(err, services.ErrDuplicateID) {
		c.JSON(http.StatusConflict, body)
		return
	}

	h.log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	body["error"] = "failed to save tracker state"
	c.JSON(http.StatusInternalServerError, body)
}
