// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ItemStore: Item persistence and pagination
//   - ChunkStore: Chunk batch persistence
//   - StorageHealth: Connection liveness probe
//   - StoreInspector: Read-only status report on an existing database file
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. The vec_chunks virtual table sits outside the
// migrations because the vec0 module is only present when the sqlite-vec
// extension is compiled in; its creation is attempted at open and failure
// is tolerated.
//
// # Data Location
//
// By default, the database is stored at ~/.cortex/cortex.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
