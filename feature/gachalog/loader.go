package gachalog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new gacha log feature.
func NewFeature(service *Service, refreshTimeout time.Duration, logger *zap.Logger) *Feature {
	return &Feature{
		service: service,
		handler: NewHandler(service, refreshTimeout, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "gachalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
