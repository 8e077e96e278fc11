package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// maxStreamLineSize bounds a single NDJSON line from the chat stream.
const maxStreamLineSize = 1024 * 1024

// StreamChat opens a streaming chat completion. Content fragments arrive on
// the first channel, which closes when the stream ends. At most one error is
// sent on the second channel. Cancelling ctx closes the underlying
// connection and ends the stream.
//
// Malformed stream lines are skipped, matching the tolerant read of the
// rest of the client.
func (c *Client) StreamChat(ctx context.Context, messages []domain.ChatMessage, system string) (<-chan string, <-chan error) {
	content := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(content)

		cfg := c.config()
		jsonBody, err := json.Marshal(chatRequest{
			Model:    cfg.ChatModel,
			Messages: toChatMessages(messages),
			System:   system,
			Stream:   true,
		})
		if err != nil {
			errs <- fmt.Errorf("marshal request: %w", err)
			return
		}

		// No per-request deadline: a streaming completion runs as long as
		// the model keeps talking. The caller's ctx is the only bound.
		req, err := http.NewRequestWithContext(
			ctx,
			http.MethodPost,
			cfg.BaseURL+"/api/chat",
			bytes.NewReader(jsonBody),
		)
		if err != nil {
			errs <- fmt.Errorf("create request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			errs <- classifyRequestError("stream_chat", cfg.BaseURL, cfg.Timeout, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			errs <- &domain.ModelNotFoundError{Model: cfg.ChatModel}
			return
		}
		if resp.StatusCode != http.StatusOK {
			errs <- statusError(resp)
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineSize)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var chunk chatResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				continue // Skip malformed lines
			}

			if chunk.Message != nil && chunk.Message.Content != nil && *chunk.Message.Content != "" {
				select {
				case content <- *chunk.Message.Content:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}

			if chunk.Done {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errs <- classifyRequestError("stream_chat", cfg.BaseURL, cfg.Timeout, err)
		}
	}()

	return content, errs
}
