// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
//
// Key Implementations:
//   - [GameRepository] : The shelf itself; the store the import pipeline reconciles into, plus tier and played mutations
//   - [ImportRunRepository] : Import history, one row per completed run
//
// Sequence numbers provide stable, human-readable ordering (e.g., game #42, run #7) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
