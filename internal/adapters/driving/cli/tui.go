package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/adapters/driven/provider/ollama"
	"github.com/cortex-kb/cortex/internal/adapters/driven/storage/sqlite"
	"github.com/cortex-kb/cortex/internal/adapters/driving/tui"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/services"
	"github.com/cortex-kb/cortex/internal/version"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal status dashboard",
	Long: `Launch a terminal dashboard showing backend health, provider models,
and database contents, refreshed on an interval.

Controls:
  r - Refresh now
  q - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := ollama.NewClient(providerConfig(settings))

	inspector, err := sqlite.NewInspector(settings.DBPath)
	if err != nil {
		return err
	}

	health := services.NewHealthService(version.Version)
	health.Register("ollama", services.ProviderCheck(client))

	// Ping an existing database, but never create one from a read-only
	// dashboard. A missing file shows up in the database panel instead.
	if _, err := os.Stat(settings.DBPath); err == nil {
		store, err := sqlite.NewStore(settings.DBPath)
		if err == nil {
			defer store.Close()
			health.Register("database", services.DatabaseCheck(store))
		}
	}

	ports := tui.NewPorts(
		health,
		services.NewStatusService(inspector),
		services.NewProviderService(client),
	)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	app.WithContext(cmd.Context())

	return app.Run()
}
