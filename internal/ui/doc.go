// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for album series curation:
//  1. [EntryListView] : Browse the canonical tracklist with per-entry status and coverage
//  2. [LinkPickerView] : Choose an existing pack song to satisfy an entry
//  3. [ConfirmDeleteView] : Confirm deletion of an in-progress song
//  4. [ResultView] : Display the saved series after a create-mode session
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Flag toggles apply optimistically through [reconcile.Session], so the list
// reflects changes immediately and reverts if persistence fails.
//
// Keyboard navigation uses vim-style bindings (j/k, p/i for flags, a to add,
// l to link, m/M for disc bulk actions, q to quit) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
