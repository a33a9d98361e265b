// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [PackRepository] : Pack persistence with name-based get-or-create
//   - [SongRepository] : Song persistence with all-or-nothing batch creation and batched title cleanup
//   - [SeriesRepository] : Album series provisioning plus per-entry resolution flag upserts
//   - [SettingsRepository] : Nullable user preferences (absent means default)
//
// Sequence numbers provide stable, human-readable ordering (e.g., pack #42) independent of UUIDs and
// creation timestamps, and serve as the assigned series number for album series.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
