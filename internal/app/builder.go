package app

import "go.trai.ch/smoke/internal/core/ports"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, telemetry ports.Telemetry) *Components {
	return &Components{
		App:       app,
		Logger:    logger,
		Telemetry: telemetry,
	}
}
