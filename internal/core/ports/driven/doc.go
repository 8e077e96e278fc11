// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ItemStore: Item persistence
//   - ChunkStore: Chunk persistence
//   - StorageHealth / StoreInspector: Storage probes and verification
//   - ConfigStore: File-backed configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - InferenceProvider: Embedding and chat against the local Ollama
//     instance. Without it, provider endpoints report unavailable and the
//     health aggregate degrades.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
