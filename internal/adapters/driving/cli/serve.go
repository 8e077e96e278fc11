package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/cortex-kb/cortex/internal/adapters/driven/config/file"
	"github.com/cortex-kb/cortex/internal/adapters/driven/provider/ollama"
	"github.com/cortex-kb/cortex/internal/adapters/driven/storage/sqlite"
	"github.com/cortex-kb/cortex/internal/adapters/driving/httpapi"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/services"
	"github.com/cortex-kb/cortex/internal/logger"
	"github.com/cortex-kb/cortex/internal/version"
)

var (
	serveHost string
	servePort int
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP backend",
	Long: `Run the HTTP backend the desktop app talks to.

The server binds a local address, opens (creating if needed) the SQLite
database, and serves the items, health, and status endpoints under /api.
While it runs, edits to ~/.cortex/config.toml are picked up and applied
to the Ollama provider settings without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "bind port (default from config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "database file (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settings, err := config.LoadFrom(configStore)
	if err != nil {
		return err
	}
	applyServeFlags(settings)

	store, err := sqlite.NewStore(settings.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	inspector, err := sqlite.NewInspector(settings.DBPath)
	if err != nil {
		return err
	}

	provider := ollama.NewClient(providerConfig(settings))

	items := services.NewItemService(store.ItemStore(), store.ChunkStore())
	providerSvc := services.NewProviderService(provider)
	status := services.NewStatusService(inspector)

	health := services.NewHealthService(version.Version)
	// The api check reports on the process answering the request itself.
	health.Register("api", func(context.Context) domain.ComponentCheck {
		return domain.ComponentCheck{Status: domain.HealthHealthy}
	})
	health.Register("database", services.DatabaseCheck(store))
	health.Register("ollama", services.ProviderCheck(provider))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := configfile.NewWatcher(configStore, func() {
		reloaded, err := config.LoadFrom(configStore)
		if err != nil {
			logger.Warn("config reload: %v", err)
			return
		}
		provider.Reconfigure(providerConfig(reloaded))
		logger.Info("provider settings reloaded")
	})
	if err != nil {
		logger.Warn("config watch unavailable: %v", err)
	} else {
		watcher.Start(ctx)
		defer watcher.Close()
	}

	handler := httpapi.NewHandler(items, health, providerSvc, status)
	server := httpapi.NewServer(settings.Addr(), httpapi.NewRouter(handler))

	logger.Info("database at %s", store.Path())
	logger.Info("listening on http://%s", settings.Addr())
	return server.Run(ctx)
}

// applyServeFlags overlays explicit command-line flags onto the settings.
func applyServeFlags(s *config.Settings) {
	if serveHost != "" {
		s.Host = serveHost
	}
	if servePort != 0 {
		s.Port = servePort
	}
	if serveDB != "" {
		s.DBPath = serveDB
	}
}

// providerConfig maps process settings onto the Ollama client config.
func providerConfig(s *config.Settings) ollama.Config {
	return ollama.Config{
		BaseURL:      s.OllamaHost,
		EmbedModel:   s.EmbeddingModel,
		ChatModel:    s.ChatModel,
		Timeout:      s.OllamaTimeout,
		EmbedTimeout: s.OllamaEmbedTimeout,
		ProbeTimeout: s.OllamaProbeTimeout,
	}
}
