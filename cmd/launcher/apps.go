package main

import (
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/launcher/internal/infrastructure/server"
)

var appsEnvelope bool

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Print the launcher tiles as JSON",
	Long: `Resolve the launcher tiles once and print them to stdout.

With --envelope the output matches the HTTP response body exactly.`,
	Args: cobra.NoArgs,
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)

	appsCmd.Flags().BoolVar(&appsEnvelope, "envelope", false, `Wrap the tiles in {"message": ...}`)
}

func runApps(cmd *cobra.Command, args []string) error {
	logger, err := cliLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	deps, err := server.OpenDeps(cfg.Bench)
	if err != nil {
		return err
	}
	defer deps.Close()

	tiles := deps.Resolver(logger.Logger).Resolve(cmd.Context())

	var out interface{} = tiles
	if appsEnvelope {
		out = map[string]interface{}{"message": tiles}
	}

	data, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
