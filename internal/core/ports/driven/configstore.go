package driven

// ConfigStore provides read access to file-backed configuration.
// Implementations handle persistence (e.g., TOML files) and type
// conversion. Keys use dot notation for nested tables.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Load re-reads configuration from storage, replacing the in-memory
	// view. Used at startup and by the change watcher.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
