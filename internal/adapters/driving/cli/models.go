package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/adapters/driven/provider/ollama"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/services"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models pulled into the inference provider",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := ollama.NewClient(providerConfig(settings))
	models, err := services.NewProviderService(client).Models(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing models: %w", err)
	}

	outputModels(cmd, models)
	return nil
}

func outputModels(cmd *cobra.Command, models []domain.ModelInfo) {
	if len(models) == 0 {
		cmd.Println("No models pulled.")
		return
	}

	for _, m := range models {
		if m.Size != nil {
			cmd.Printf("%s  (%s)\n", m.Name, formatBytes(*m.Size))
		} else {
			cmd.Println(m.Name)
		}
	}
}

// formatBytes renders a byte count the way Ollama's own CLI does,
// with one decimal and a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
