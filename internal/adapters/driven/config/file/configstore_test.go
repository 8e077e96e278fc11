package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600)
	require.NoError(t, err)
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".cortex", "config.toml"), store.Path())
}

func TestNewConfigStore_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_MalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "= this is not toml =")

	store, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `ollama_host = "http://localhost:11434"`)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("ollama_host")

	assert.True(t, ok)
	assert.Equal(t, "http://localhost:11434", val)

	_, ok = store.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "chat_model = \"llama3.2:3b\"\nport = 8742\n")
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "llama3.2:3b", store.GetString("chat_model"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	assert.Equal(t, "", store.GetString("port"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "port = 8742\nhost = \"127.0.0.1\"\n")
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 8742, store.GetInt("port"))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	assert.Equal(t, 0, store.GetInt("host"))
}

func TestConfigStore_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "[ollama]\nhost = \"http://localhost:11434\"\ntimeout = 30\n")
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Nested tables flatten to dot-notation keys
	assert.Equal(t, "http://localhost:11434", store.GetString("ollama.host"))
	assert.Equal(t, 30, store.GetInt("ollama.timeout"))
}

func TestConfigStore_Load_PicksUpChanges(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `chat_model = "llama3.2:3b"`)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	writeConfig(t, tmpDir, `chat_model = "qwen2.5:7b"`)
	require.NoError(t, store.Load())

	assert.Equal(t, "qwen2.5:7b", store.GetString("chat_model"))
}

func TestConfigStore_Load_MalformedKeepsError(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `chat_model = "llama3.2:3b"`)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	writeConfig(t, tmpDir, "not [valid")
	err = store.Load()

	require.Error(t, err)
	// Prior view survives a failed reload
	assert.Equal(t, "llama3.2:3b", store.GetString("chat_model"))
}

func TestConfigStore_Load_FileRemoved(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `chat_model = "llama3.2:3b"`)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, store.Load())

	// Removal resets to empty, not an error
	_, ok := store.Get("chat_model")
	assert.False(t, ok)
}
