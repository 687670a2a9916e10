package records

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/shared/types"
)

// Fixtures is the on-disk shape of a seed file
type Fixtures struct {
	Workspaces []types.Workspace `yaml:"workspaces"`
	Pages      []types.Page      `yaml:"pages"`
}

// SeedResult counts records written and rejected by a seed run
type SeedResult struct {
	Loaded int
	Failed int
}

// Seeder loads Workspace and Page fixtures into a store
type Seeder struct {
	store  *Store
	logger *zap.Logger
}

// NewSeeder creates a new fixture seeder
func NewSeeder(store *Store, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		store:  store,
		logger: logger,
	}
}

// SeedFile loads every record in a YAML fixture file. Invalid records are
// counted and skipped; only unreadable files are errors.
func (s *Seeder) SeedFile(ctx context.Context, path string) (SeedResult, error) {
	var result SeedResult

	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return result, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}

	s.logger.Info("Seeding records",
		zap.String("file", path),
		zap.Int("workspaces", len(fixtures.Workspaces)),
		zap.Int("pages", len(fixtures.Pages)),
	)

	for _, ws := range fixtures.Workspaces {
		if err := s.store.UpsertWorkspace(ctx, ws); err != nil {
			s.logger.Warn("Failed to seed workspace", zap.String("name", ws.Name), zap.Error(err))
			result.Failed++
			continue
		}
		result.Loaded++
	}

	for _, page := range fixtures.Pages {
		if err := s.store.UpsertPage(ctx, page); err != nil {
			s.logger.Warn("Failed to seed page", zap.String("name", page.Name), zap.Error(err))
			result.Failed++
			continue
		}
		result.Loaded++
	}

	s.logger.Info("Seeding complete",
		zap.Int("loaded", result.Loaded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
