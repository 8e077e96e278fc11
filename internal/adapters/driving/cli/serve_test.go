package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cortex-kb/cortex/internal/config"
)

func TestServeCmd_FlagDefaults(t *testing.T) {
	assert.Equal(t, "", serveCmd.Flags().Lookup("host").DefValue)
	assert.Equal(t, "0", serveCmd.Flags().Lookup("port").DefValue)
	assert.Equal(t, "", serveCmd.Flags().Lookup("db").DefValue)
}

func TestApplyServeFlags_Overrides(t *testing.T) {
	serveHost = "0.0.0.0"
	servePort = 9000
	serveDB = "/tmp/override.db"
	defer func() { serveHost, servePort, serveDB = "", 0, "" }()

	settings := &config.Settings{Host: "127.0.0.1", Port: 8742, DBPath: "/home/u/.cortex/cortex.db"}
	applyServeFlags(settings)

	assert.Equal(t, "0.0.0.0", settings.Host)
	assert.Equal(t, 9000, settings.Port)
	assert.Equal(t, "/tmp/override.db", settings.DBPath)
}

func TestApplyServeFlags_UnsetFlagsKeepSettings(t *testing.T) {
	serveHost, servePort, serveDB = "", 0, ""

	settings := &config.Settings{Host: "127.0.0.1", Port: 8742, DBPath: "/home/u/.cortex/cortex.db"}
	applyServeFlags(settings)

	assert.Equal(t, "127.0.0.1", settings.Host)
	assert.Equal(t, 8742, settings.Port)
	assert.Equal(t, "/home/u/.cortex/cortex.db", settings.DBPath)
}

func TestProviderConfig_MapsSettings(t *testing.T) {
	settings := &config.Settings{
		OllamaHost:         "http://localhost:11435",
		EmbeddingModel:     "mxbai-embed-large",
		ChatModel:          "llama3.2:3b",
		OllamaTimeout:      20 * time.Second,
		OllamaEmbedTimeout: 90 * time.Second,
		OllamaProbeTimeout: 2 * time.Second,
	}

	cfg := providerConfig(settings)

	assert.Equal(t, "http://localhost:11435", cfg.BaseURL)
	assert.Equal(t, "mxbai-embed-large", cfg.EmbedModel)
	assert.Equal(t, "llama3.2:3b", cfg.ChatModel)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 90*time.Second, cfg.EmbedTimeout)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
}
