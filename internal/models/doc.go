// Package models defines domain entities and persistence interfaces for the packsmith authoring service.
//
// The package contains two categories of types:
//
// 1. Persistent entities, backed by the store:
//   - [Pack] : A named collection of songs authored together
//   - [Song] : A work item owned by exactly one pack
//   - [AlbumSeries] : A curated mapping of a pack onto a canonical album
//   - [EntryFlags] : Per-series resolution flags keyed by tracklist entry
//
// 2. Ephemeral projections, recomputed on every reconciliation load:
//   - [TracklistEntry] : One canonical track position annotated with local resolution state
//
// TracklistEntry objects are never the source of truth. Song and AlbumSeries records are;
// entries are rebuilt from the catalog plus current pack state on each load.
//
// All persistent entities carry UUID identity, a store-assigned sequence number,
// timestamps, and soft delete support. The Repository[T] interface defines standard
// CRUD operations for database access.
package models
