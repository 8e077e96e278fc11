package domain

// StoreStatus describes an initialized database file.
type StoreStatus struct {
	// SQLiteVersion is the library version string.
	SQLiteVersion string

	// VecVersion is the sqlite-vec extension version, empty when the
	// extension is not compiled into the driver.
	VecVersion string

	// Tables lists the table names present, sorted.
	Tables []string

	// ItemCount and ChunkCount are row counts, 0 when a table is absent.
	ItemCount  int
	ChunkCount int
}
