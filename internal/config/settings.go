// Package config builds the process settings for the Cortex backend.
//
// Precedence, lowest to highest: built-in defaults, the TOML config file
// (~/.cortex/config.toml), then CORTEX_* environment variables. A .env
// file in the working directory is folded into the environment first and
// never overrides variables already set.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/cortex-kb/cortex/internal/adapters/driven/config/file"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Defaults mirror what the desktop app assumes when nothing is configured.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8742
	DefaultAIProvider     = "ollama"
	DefaultOllamaHost     = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultChatModel      = "llama3.2:3b"

	DefaultOllamaTimeout      = 30 * time.Second
	DefaultOllamaEmbedTimeout = 60 * time.Second
	DefaultOllamaProbeTimeout = 5 * time.Second

	DefaultMaxConcurrentProcessing = 2
	DefaultChunkSize               = 500
	DefaultChunkOverlap            = 50
)

// Settings is the process configuration, built once at startup and passed
// into constructors.
type Settings struct {
	// DBPath is the SQLite database file location.
	DBPath string

	// Host and Port bind the HTTP server.
	Host string
	Port int

	// AIProvider names the inference backend. Only "ollama" is wired.
	AIProvider string

	// OllamaHost is the provider base URL.
	OllamaHost string

	// EmbeddingModel and ChatModel select the provider models.
	EmbeddingModel string
	ChatModel      string

	// OllamaTimeout bounds general provider calls, OllamaEmbedTimeout
	// embedding calls (model loads are slow), OllamaProbeTimeout the
	// availability probe. The external keys are ollama_timeout,
	// ollama_embed_timeout, and ollama_availability_timeout, in seconds.
	OllamaTimeout      time.Duration
	OllamaEmbedTimeout time.Duration
	OllamaProbeTimeout time.Duration

	// Processing hints surfaced to clients. No worker or chunker in this
	// backend consumes them.
	MaxConcurrentProcessing int
	ChunkSize               int
	ChunkOverlap            int
}

// Addr returns the host:port the HTTP server binds.
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load builds settings from the default config location.
func Load() (*Settings, error) {
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	return LoadFrom(store)
}

// LoadFrom builds settings over an already-open config store. It is also
// used by the config watcher to recompute settings after a reload.
func LoadFrom(store driven.ConfigStore) (*Settings, error) {
	// Fold a .env file into the environment; missing is fine.
	_ = godotenv.Load()

	s := defaults()
	applyFile(&s, store)
	if err := applyEnv(&s); err != nil {
		return nil, err
	}

	if s.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		s.DBPath = filepath.Join(home, ".cortex", "cortex.db")
	}

	return &s, nil
}

func defaults() Settings {
	return Settings{
		Host:                    DefaultHost,
		Port:                    DefaultPort,
		AIProvider:              DefaultAIProvider,
		OllamaHost:              DefaultOllamaHost,
		EmbeddingModel:          DefaultEmbeddingModel,
		ChatModel:               DefaultChatModel,
		OllamaTimeout:           DefaultOllamaTimeout,
		OllamaEmbedTimeout:      DefaultOllamaEmbedTimeout,
		OllamaProbeTimeout:      DefaultOllamaProbeTimeout,
		MaxConcurrentProcessing: DefaultMaxConcurrentProcessing,
		ChunkSize:               DefaultChunkSize,
		ChunkOverlap:            DefaultChunkOverlap,
	}
}

func applyFile(s *Settings, store driven.ConfigStore) {
	if v := store.GetString("db_path"); v != "" {
		s.DBPath = v
	}
	if v := store.GetString("host"); v != "" {
		s.Host = v
	}
	s.Port = intFromFile(store, "port", s.Port)
	if v := store.GetString("ai_provider"); v != "" {
		s.AIProvider = v
	}
	if v := store.GetString("ollama_host"); v != "" {
		s.OllamaHost = v
	}
	if v := store.GetString("embedding_model"); v != "" {
		s.EmbeddingModel = v
	}
	if v := store.GetString("chat_model"); v != "" {
		s.ChatModel = v
	}
	s.OllamaTimeout = timeoutFromFile(store, "ollama_timeout", s.OllamaTimeout)
	s.OllamaEmbedTimeout = timeoutFromFile(store, "ollama_embed_timeout", s.OllamaEmbedTimeout)
	s.OllamaProbeTimeout = timeoutFromFile(store, "ollama_availability_timeout", s.OllamaProbeTimeout)
	s.MaxConcurrentProcessing = intFromFile(store, "max_concurrent_processing", s.MaxConcurrentProcessing)
	s.ChunkSize = intFromFile(store, "chunk_size", s.ChunkSize)
	s.ChunkOverlap = intFromFile(store, "chunk_overlap", s.ChunkOverlap)
}

func applyEnv(s *Settings) error {
	if v := os.Getenv("CORTEX_DB_PATH"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("CORTEX_HOST"); v != "" {
		s.Host = v
	}
	if v := os.Getenv("CORTEX_AI_PROVIDER"); v != "" {
		s.AIProvider = v
	}
	if v := os.Getenv("CORTEX_OLLAMA_HOST"); v != "" {
		s.OllamaHost = v
	}
	if v := os.Getenv("CORTEX_EMBEDDING_MODEL"); v != "" {
		s.EmbeddingModel = v
	}
	if v := os.Getenv("CORTEX_CHAT_MODEL"); v != "" {
		s.ChatModel = v
	}

	var err error
	if s.Port, err = intFromEnv("CORTEX_PORT", s.Port); err != nil {
		return err
	}
	if s.OllamaTimeout, err = timeoutFromEnv("CORTEX_OLLAMA_TIMEOUT", s.OllamaTimeout); err != nil {
		return err
	}
	if s.OllamaEmbedTimeout, err = timeoutFromEnv("CORTEX_OLLAMA_EMBED_TIMEOUT", s.OllamaEmbedTimeout); err != nil {
		return err
	}
	if s.OllamaProbeTimeout, err = timeoutFromEnv("CORTEX_OLLAMA_AVAILABILITY_TIMEOUT", s.OllamaProbeTimeout); err != nil {
		return err
	}
	if s.MaxConcurrentProcessing, err = intFromEnv("CORTEX_MAX_CONCURRENT_PROCESSING", s.MaxConcurrentProcessing); err != nil {
		return err
	}
	if s.ChunkSize, err = intFromEnv("CORTEX_CHUNK_SIZE", s.ChunkSize); err != nil {
		return err
	}
	if s.ChunkOverlap, err = intFromEnv("CORTEX_CHUNK_OVERLAP", s.ChunkOverlap); err != nil {
		return err
	}
	return nil
}

func intFromFile(store driven.ConfigStore, key string, current int) int {
	val, ok := store.Get(key)
	if !ok {
		return current
	}
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return current
}

// timeoutFromFile reads a duration setting. Bare numbers are seconds,
// matching what the desktop app writes; duration strings also work.
func timeoutFromFile(store driven.ConfigStore, key string, current time.Duration) time.Duration {
	val, ok := store.Get(key)
	if !ok {
		return current
	}
	switch v := val.(type) {
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		if d, err := parseTimeout(v); err == nil {
			return d
		}
	}
	return current
}

func intFromEnv(name string, current int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return current, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return parsed, nil
}

func timeoutFromEnv(name string, current time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return current, nil
	}
	parsed, err := parseTimeout(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return parsed, nil
}

// parseTimeout accepts Go duration strings ("30s") and bare seconds
// ("30", "30.0").
func parseTimeout(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
