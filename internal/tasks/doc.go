// Package tasks implements the multi-phase pack creation pipeline.
//
// The core abstraction is CreationEngine, which turns raw entry lines into
// persisted songs, optionally provisions an album series, enriches each song
// from the external catalog, and cleans transient title tags. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks
