// Package ollama provides an inference provider adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.InferenceProvider = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL      = "http://localhost:11434"
	DefaultEmbedModel   = "nomic-embed-text"
	DefaultChatModel    = "llama3.2:3b"
	DefaultTimeout      = 30 * time.Second
	DefaultEmbedTimeout = 60 * time.Second // longer: embedding may load the model
	DefaultProbeTimeout = 5 * time.Second
)

// Config holds configuration for the Ollama client.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// EmbedModel is the embedding model to use (default: nomic-embed-text).
	EmbedModel string

	// ChatModel is the chat model to use (default: llama3.2:3b).
	ChatModel string

	// Timeout is the general request timeout (default: 30s).
	Timeout time.Duration

	// EmbedTimeout is the embedding request timeout (default: 60s).
	EmbedTimeout time.Duration

	// ProbeTimeout is the availability check timeout (default: 5s).
	ProbeTimeout time.Duration
}

// withDefaults fills the zero-valued fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.EmbedModel == "" {
		c.EmbedModel = DefaultEmbedModel
	}
	if c.ChatModel == "" {
		c.ChatModel = DefaultChatModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.EmbedTimeout == 0 {
		c.EmbedTimeout = DefaultEmbedTimeout
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	return c
}

// Client talks to an Ollama server. Requests carry no retry policy;
// failures surface immediately. Configuration can be swapped at runtime
// via Reconfigure, so all reads go through the mutex.
type Client struct {
	client *http.Client

	mu  sync.RWMutex
	cfg Config
}

// tagsResponse is the Ollama /api/tags response format.
type tagsResponse struct {
	Models []tagModel `json:"models"`
}

// tagModel is one model entry in the /api/tags response.
type tagModel struct {
	Name       string  `json:"name"`
	Size       *int64  `json:"size"`
	ModifiedAt *string `json:"modified_at"`
	Digest     *string `json:"digest"`
}

// embedRequest is the Ollama /api/embeddings request format.
type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embedResponse is the Ollama /api/embeddings response format.
type embedResponse struct {
	Embedding *[]float64 `json:"embedding"`
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	System   string        `json:"system,omitempty"`
	Stream   bool          `json:"stream"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// NewClient creates a new Ollama client.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// Timeouts are set per request class, not on the shared client.
	return &Client{
		client: &http.Client{},
		cfg:    cfg,
	}
}

// Reconfigure swaps the endpoint and model configuration. In-flight
// requests finish with the settings they started with.
func (c *Client) Reconfigure(cfg Config) {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// config returns a consistent snapshot of the configuration.
func (c *Client) config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// BaseURL returns the provider endpoint.
func (c *Client) BaseURL() string {
	return c.config().BaseURL
}

// EmbedModel returns the configured embedding model name.
func (c *Client) EmbedModel() string {
	return c.config().EmbedModel
}

// ChatModel returns the configured chat model name.
func (c *Client) ChatModel() string {
	return c.config().ChatModel
}

// IsAvailable checks if the Ollama server is accessible. Connection
// failures and timeouts yield false; it never returns an error.
func (c *Client) IsAvailable(ctx context.Context) bool {
	cfg := c.config()
	ctx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// ListModels returns the models the server has pulled. A malformed
// modified_at timestamp leaves the field nil rather than failing the call.
func (c *Client) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	cfg := c.config()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.requestError("list_models", cfg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]domain.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		info := domain.ModelInfo{
			Name:   m.Name,
			Size:   m.Size,
			Digest: m.Digest,
		}
		if m.ModifiedAt != nil {
			if ts, err := time.Parse(time.RFC3339Nano, *m.ModifiedAt); err == nil {
				info.ModifiedAt = &ts
			}
		}
		models = append(models, info)
	}
	return models, nil
}

// Embed generates a vector embedding for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	cfg := c.config()
	ctx, cancel := context.WithTimeout(ctx, cfg.EmbedTimeout)
	defer cancel()

	jsonBody, err := json.Marshal(embedRequest{Model: cfg.EmbedModel, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		cfg.BaseURL+"/api/embeddings",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.embedRequestError(cfg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.ModelNotFoundError{Model: cfg.EmbedModel}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var embedResp embedResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if embedResp.Embedding == nil {
		return nil, &domain.MalformedResponseError{
			Op:    "embed",
			Model: cfg.EmbedModel,
			Body:  string(body),
		}
	}

	// Convert float64 to float32
	embedding := make([]float32, len(*embedResp.Embedding))
	for i, v := range *embedResp.Embedding {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// EmbedBatch generates embeddings for multiple texts. Ollama has no native
// batch API, so texts are embedded one at a time in order; the first
// failure aborts the batch.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := c.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Chat generates a completion for the conversation. A non-empty system
// prompt rides along as the top-level system field.
func (c *Client) Chat(ctx context.Context, messages []domain.ChatMessage, system string) (string, error) {
	cfg := c.config()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	jsonBody, err := json.Marshal(chatRequest{
		Model:    cfg.ChatModel,
		Messages: toChatMessages(messages),
		System:   system,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		cfg.BaseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", c.requestError("chat", cfg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &domain.ModelNotFoundError{Model: cfg.ChatModel}
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Message == nil || chatResp.Message.Content == nil {
		return "", &domain.MalformedResponseError{
			Op:    "chat",
			Model: cfg.ChatModel,
			Body:  string(body),
		}
	}
	return *chatResp.Message.Content, nil
}

// ==================== Helper Functions ====================

// toChatMessages converts domain messages to the wire format.
func toChatMessages(messages []domain.ChatMessage) []chatMessage {
	converted := make([]chatMessage, len(messages))
	for i, msg := range messages {
		converted[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}
	return converted
}

// requestError classifies a transport failure for operations under the
// general timeout: deadline expiry becomes a TimeoutError, everything else
// means the server is unreachable. Caller cancellation passes through.
func (c *Client) requestError(op string, cfg Config, err error) error {
	return classifyRequestError(op, cfg.BaseURL, cfg.Timeout, err)
}

// embedRequestError is requestError under the embedding timeout.
func (c *Client) embedRequestError(cfg Config, err error) error {
	return classifyRequestError("embed", cfg.BaseURL, cfg.EmbedTimeout, err)
}

func classifyRequestError(op, baseURL string, timeout time.Duration, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Op: op, Timeout: timeout}
	}
	return fmt.Errorf("%w at %s: %v", domain.ErrProviderUnreachable, baseURL, err)
}

// statusError reports an unexpected non-200 response.
func statusError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
	}
	return fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
}
