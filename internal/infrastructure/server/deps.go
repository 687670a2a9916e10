package server

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/domain/launcher"
	"github.com/GriffinCanCode/launcher/internal/domain/records"
	"github.com/GriffinCanCode/launcher/internal/domain/registry"
	"github.com/GriffinCanCode/launcher/internal/infrastructure/config"
	"github.com/GriffinCanCode/launcher/internal/shared/assets"
)

// Deps are the host collaborators the launcher reads from
type Deps struct {
	BenchPath string
	Bench     *registry.Bench
	Store     *records.Store
	Assets    *assets.Locator
}

// OpenDeps opens the bench directory and its record database
func OpenDeps(cfg config.BenchConfig) (*Deps, error) {
	bench, err := registry.Open(cfg.Path)
	if err != nil {
		return nil, err
	}

	store, err := records.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	return &Deps{
		BenchPath: cfg.Path,
		Bench:     bench,
		Store:     store,
		Assets:    assets.NewOsLocator(cfg.Path),
	}, nil
}

// Resolver builds a launcher resolver over the deps. Record reads go
// through a circuit breaker.
func (d *Deps) Resolver(logger *zap.Logger) *launcher.Resolver {
	guarded := records.NewGuarded(d.Store, records.DefaultBreaker(logger))
	return launcher.NewResolver(d.Bench, guarded, d.Assets, logger)
}

// Close releases the record store
func (d *Deps) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}
