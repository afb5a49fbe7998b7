package ports

import "go.trai.ch/smoke/internal/core/domain"

// ConfigLoader defines the interface for loading the harness configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, falling back to built-in
	// defaults when the file does not exist.
	Load(path string) (*domain.Config, error)
}
