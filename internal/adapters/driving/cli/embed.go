package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cortex-kb/cortex/internal/adapters/driven/provider/ollama"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/services"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text]",
	Short: "Generate an embedding for one text",
	Long: `Embed one text with the configured embedding model and print the
vector's dimensions and first values. Useful for checking that the
model is pulled and answering.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := ollama.NewClient(providerConfig(settings))
	vector, err := services.NewProviderService(client).Embed(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	cmd.Printf("Model:      %s\n", client.EmbedModel())
	cmd.Printf("Dimensions: %d\n", len(vector))
	cmd.Printf("Preview:    %s\n", formatVectorPreview(vector, 8))
	return nil
}

// formatVectorPreview renders the first max values of a vector.
func formatVectorPreview(vector []float32, max int) string {
	truncated := len(vector) > max
	if truncated {
		vector = vector[:max]
	}

	parts := make([]string, 0, len(vector))
	for _, v := range vector {
		parts = append(parts, fmt.Sprintf("%.4f", v))
	}

	if truncated {
		return "[" + strings.Join(parts, ", ") + ", ...]"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
