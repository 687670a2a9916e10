package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/launcher/internal/domain/registry"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the bench for apps that cannot get a tile",
	Long: `Compare sites/apps.txt with the app directories on disk and check that
every installed app's hook file parses.

Exits non-zero when a problem is found.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	bench, err := registry.Open(cfg.Bench.Path)
	if err != nil {
		return err
	}

	discovered, err := registry.DiscoverApps(cmd.Context(), cfg.Bench.Path)
	if err != nil {
		return err
	}

	report, err := bench.Diagnose(cmd.Context(), discovered)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d installed, %d on disk\n", len(report.Installed), len(discovered))
	for _, app := range report.Missing {
		fmt.Fprintf(out, "missing      %s (listed in apps.txt, no app directory)\n", app)
	}
	for _, app := range report.Uninstalled {
		fmt.Fprintf(out, "uninstalled  %s (app directory not listed in apps.txt)\n", app)
	}

	apps := make([]string, 0, len(report.HookErrors))
	for app := range report.HookErrors {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	for _, app := range apps {
		fmt.Fprintf(out, "hooks        %s: %s\n", app, report.HookErrors[app])
	}

	if !report.Healthy() {
		return fmt.Errorf("bench has problems")
	}
	fmt.Fprintln(out, "ok")
	return nil
}
