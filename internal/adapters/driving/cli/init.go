package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/adapters/driven/storage/sqlite"
	"github.com/cortex-kb/cortex/internal/config"
)

var initDB string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and run migrations",
	Long: `Create the SQLite database file and bring its schema up to date.

Running init on an existing database only applies missing migrations;
stored items are untouched. The serve command does the same implicitly.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDB, "db", "", "database file (default from config)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if initDB != "" {
		settings.DBPath = initDB
	}

	store, err := sqlite.NewStore(settings.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer store.Close()

	cmd.Printf("Database ready at %s\n", store.Path())
	return nil
}
