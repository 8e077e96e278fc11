package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cortex-kb/cortex/internal/adapters/driven/provider/ollama"
	"github.com/cortex-kb/cortex/internal/config"
	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/services"
)

var chatSystem string

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Send one prompt to the chat model",
	Long: `Send a single prompt to the configured chat model and print the reply.

When stdout is a terminal the reply streams token by token; when piped
it is printed whole.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "system prompt")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := ollama.NewClient(providerConfig(settings))
	service := services.NewProviderService(client)
	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: args[0]}}

	if stdout, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(stdout.Fd())) {
		return streamChat(cmd, service, messages)
	}

	reply, err := service.Chat(cmd.Context(), messages, chatSystem)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	cmd.Println(reply)
	return nil
}

func streamChat(cmd *cobra.Command, service *services.ProviderService, messages []domain.ChatMessage) error {
	content, errs := service.StreamChat(cmd.Context(), messages, chatSystem)
	for fragment := range content {
		cmd.Print(fragment)
	}
	cmd.Println()

	// Any stream error is sent before the content channel closes.
	select {
	case err := <-errs:
		return fmt.Errorf("chat failed: %w", err)
	default:
		return nil
	}
}
