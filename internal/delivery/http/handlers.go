package http

import (
	"context"
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	log "github.com/sirupsen/logrus"

	"github.com/smartcity/lowemission/internal/domain"
	"github.com/smartcity/lowemission/internal/service"
)

// HealthChecker reports the health of the feature backend
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	engine  *service.Engine
	surface *service.LayerSet
	board   *service.Board
	backend HealthChecker
}

// NewHandler creates a new handler
func NewHandler(engine *service.Engine, surface *service.LayerSet, board *service.Board, backend HealthChecker) *Handler {
	return &Handler{
		engine:  engine,
		surface: surface,
		board:   board,
		backend: backend,
	}
}

// TimeRequest is the body of PUT /time
type TimeRequest struct {
	Hour *float64 `json:"hour"`
}

// LayerRequest is the body of PUT /layers/:name
type LayerRequest struct {
	Visible *bool `json:"visible"`
}

// LayerStatus describes one map layer
type LayerStatus struct {
	Name     string `json:"name"`
	Visible  bool   `json:"visible"`
	Features int    `json:"features"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if h.backend != nil {
		if err := h.backend.Health(c.Context()); err != nil {
			log.WithError(err).Warn("Feature backend unhealthy")
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":  status,
		"service": "lowemission-backend",
		"version": "1.0.0",
		"loaded":  h.engine.Snapshot().Loaded,
	})
}

// GetState returns the current derived state
func (h *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(domain.SnapshotResponse{
		Data:    h.engine.Snapshot(),
		Success: true,
	})
}

// SetTime moves the simulated clock. The hour is not range checked.
func (h *Handler) SetTime(c *fiber.Ctx) error {
	var req TimeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Hour == nil {
		return fiber.NewError(fiber.StatusBadRequest, "hour is required")
	}

	snapshot := h.engine.SetHour(*req.Hour)

	return c.JSON(domain.SnapshotResponse{
		Data:    snapshot,
		Success: true,
	})
}

// GetFeatures returns the visible layers as styled GeoJSON
func (h *Handler) GetFeatures(c *fiber.Ctx) error {
	layer := c.Query("layer")
	if layer != "" && !knownLayer(layer) {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown layer")
	}

	return c.JSON(h.surface.FeatureCollection(layer))
}

// GetFeature returns the popup content of one feature
func (h *Handler) GetFeature(c *fiber.Ctx) error {
	f, err := h.engine.Feature(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrFeatureNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Feature not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch feature")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    service.DescribeFeature(f),
	})
}

// GetLayers lists every layer with its visibility
func (h *Handler) GetLayers(c *fiber.Ctx) error {
	visibility := h.engine.LayerVisibility()

	layers := make([]LayerStatus, 0, len(domain.Layers))
	active := 0
	for _, name := range domain.Layers {
		if visibility[name] {
			active++
		}
		layers = append(layers, LayerStatus{
			Name:     name,
			Visible:  visibility[name],
			Features: h.surface.LayerSize(name),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    layers,
		"active":  active,
	})
}

// SetLayer shows or hides one layer
func (h *Handler) SetLayer(c *fiber.Ctx) error {
	var req LayerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Visible == nil {
		return fiber.NewError(fiber.StatusBadRequest, "visible is required")
	}

	// the engine keeps the name as a map key; fiber reuses the param buffer
	layer := utils.CopyString(c.Params("name"))

	snapshot, err := h.engine.SetLayerVisible(layer, *req.Visible)
	if err != nil {
		if errors.Is(err, service.ErrUnknownLayer) {
			return fiber.NewError(fiber.StatusNotFound, "Unknown layer")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update layer")
	}

	return c.JSON(domain.SnapshotResponse{
		Data:    snapshot,
		Success: true,
	})
}

// GetDisplay returns the rendered display slots
func (h *Handler) GetDisplay(c *fiber.Ctx) error {
	slots := h.board.Slots()

	names := make([]string, 0, len(slots))
	for name := range slots {
		names = append(names, name)
	}
	sort.Strings(names)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    slots,
		"slots":   names,
	})
}

// GetGeoJSON returns the low emission collection exactly as loaded
func (h *Handler) GetGeoJSON(c *fiber.Ctx) error {
	raw := h.engine.Raw()
	if raw == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Features not loaded yet")
	}
	return c.JSON(raw)
}

func knownLayer(name string) bool {
	for _, l := range domain.Layers {
		if l == name {
			return true
		}
	}
	return false
}
