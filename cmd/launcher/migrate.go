package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/launcher/internal/domain/records"
)

var migrateList bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the record database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "List bundled migrations without applying them")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if migrateList {
		migrations, err := records.LoadMigrations()
		if err != nil {
			return err
		}
		for _, m := range migrations {
			fmt.Fprintf(out, "%03d %s\n", m.Version, m.Description)
		}
		return nil
	}

	store, err := records.Open(cfg.Bench.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintf(out, "Schema at version %d (%s)\n", store.SchemaVersion(), cfg.Bench.DatabasePath())
	return nil
}
