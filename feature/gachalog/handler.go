package gachalog

import (
	"context"
	"errors"
	"time"

	"wish-archive/core/logger"
	"wish-archive/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the gacha log.
type Handler struct {
	service *Service
	timeout time.Duration
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. timeout bounds a refresh request.
func NewHandler(service *Service, timeout time.Duration, logger *zap.Logger) *Handler {
	return &Handler{service: service, timeout: timeout, logger: logger}
}

// RegisterRoutes registers the gacha log routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/gachalog")
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/archives", h.HandleListArchives)
	group.Get("/archives/:uid/statistics", h.HandleStatistics)
}

type refreshRequest struct {
	Query    string `json:"query"`
	Strategy string `json:"strategy"`
}

// HandleRefresh fetches the gacha log and merges it into the archive.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}
	if req.Strategy == "" {
		req.Strategy = string(reconcile.StrategyLazy)
	}

	strategy, err := reconcile.ParseStrategy(req.Strategy)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	l.Info("Starting refresh", zap.String("strategy", string(strategy)))
	result, err := h.service.Refresh(ctx, req.Query, strategy, nil)
	if err != nil {
		if errors.Is(err, ErrRefreshInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// HandleListArchives lists the archives.
func (h *Handler) HandleListArchives(c *fiber.Ctx) error {
	archives, err := h.service.Archives(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing archives failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"archives": archives,
		"current":  h.service.Current(),
	})
}

// HandleStatistics computes the statistics of one archive.
func (h *Handler) HandleStatistics(c *fiber.Ctx) error {
	uid := c.Params("uid")
	l := logger.WithArchive(logger.WithRayID(h.logger, c), uid)

	report, err := h.service.Statistics(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, ErrArchiveNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Statistics failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
