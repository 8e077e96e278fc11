package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/adapters/driven/storage/sqlite"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/services"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status",
	Long:  `Inspect the database file and report its version, tables, and row counts.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	inspector, err := sqlite.NewInspector(settings.DBPath)
	if err != nil {
		return err
	}

	status, err := services.NewStatusService(inspector).Status(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return fmt.Errorf("database not initialized at %s (run 'cortex init')", settings.DBPath)
		}
		return fmt.Errorf("inspecting database: %w", err)
	}

	if statusJSON {
		return outputStatusJSON(cmd, status)
	}
	outputStatus(cmd, status)
	return nil
}

func outputStatusJSON(cmd *cobra.Command, status *domain.StoreStatus) error {
	payload := struct {
		SQLiteVersion string   `json:"sqlite_version"`
		VecVersion    string   `json:"vec_version"`
		Tables        []string `json:"tables"`
		ItemCount     int      `json:"item_count"`
		ChunkCount    int      `json:"chunk_count"`
	}{
		SQLiteVersion: status.SQLiteVersion,
		VecVersion:    status.VecVersion,
		Tables:        status.Tables,
		ItemCount:     status.ItemCount,
		ChunkCount:    status.ChunkCount,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputStatus(cmd *cobra.Command, status *domain.StoreStatus) {
	cmd.Printf("SQLite:  %s\n", status.SQLiteVersion)
	if status.VecVersion != "" {
		cmd.Printf("Vec:     %s\n", status.VecVersion)
	}
	cmd.Printf("Tables:  %s\n", strings.Join(status.Tables, ", "))
	cmd.Printf("Items:   %d\n", status.ItemCount)
	cmd.Printf("Chunks:  %d\n", status.ChunkCount)
}
