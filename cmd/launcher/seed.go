package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/launcher/internal/domain/records"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>...",
	Short: "Load Workspace and Page fixtures into the record database",
	Long: `Load YAML fixture files into the record database, creating it if needed.

Fixture files hold "workspaces" and "pages" lists. Records are upserted by
name, so seeding the same file twice is harmless.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	logger, err := cliLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := records.Open(cfg.Bench.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	seeder := records.NewSeeder(store, logger.Logger)

	var total records.SeedResult
	for _, path := range args {
		result, err := seeder.SeedFile(cmd.Context(), path)
		if err != nil {
			logger.Error("Failed to seed fixtures", zap.String("path", path), zap.Error(err))
			return err
		}
		total.Loaded += result.Loaded
		total.Failed += result.Failed
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records (%d failed) into %s\n",
		total.Loaded, total.Failed, cfg.Bench.DatabasePath())
	if total.Failed > 0 {
		return fmt.Errorf("%d records failed to load", total.Failed)
	}
	return nil
}
