package models

import (
	"fmt"
	"strings"
)

// Song authoring statuses.
const (
	StatusFuturePlans = "future_plans"
	StatusInProgress  = "in_progress"
	StatusReleased    = "released"
)

// Pack represents a named collection of songs authored together.
// Packs are created implicitly by the creation pipeline when the first song names a new pack.
type Pack struct {
	ID       string
	Sequence int
	Name     string
	Priority *int
	Timestamps
}

// Validate checks that the pack has a non-blank name.
func (p *Pack) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("pack name is required")
	}
	return nil
}

// Song represents a single work item. A song belongs to exactly one pack at a time;
// pack reassignment is a field mutation, not a re-creation.
type Song struct {
	ID           string
	Sequence     int
	Title        string
	Artist       string
	Album        string
	PackID       string
	Status       string
	SeriesID     string
	SeriesNumber *int
	Year         *int
	CoverURL     string
	Progress     string // authoring-progress JSON, opaque to this core
	Timestamps
}

// Validate checks required song fields and the status enum.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("song title is required")
	}
	if strings.TrimSpace(s.Artist) == "" {
		return fmt.Errorf("song artist is required")
	}
	if s.PackID == "" {
		return fmt.Errorf("song pack reference is required")
	}
	switch s.Status {
	case StatusFuturePlans, StatusInProgress, StatusReleased:
		return nil
	default:
		return fmt.Errorf("invalid song status: %s", s.Status)
	}
}

// DisplayStatus returns the human-readable status mirrored into tracklist entries.
func (s *Song) DisplayStatus() string {
	switch s.Status {
	case StatusFuturePlans:
		return "Future Plans"
	case StatusInProgress:
		return "In Progress"
	case StatusReleased:
		return "Released"
	default:
		return s.Status
	}
}

// AlbumSeries maps a pack's songs onto a canonical album tracklist.
// The sequence number is assigned by the store on creation.
type AlbumSeries struct {
	ID          string
	Sequence    int
	ArtistName  string
	AlbumName   string
	PackID      string
	Year        *int
	CoverURL    string
	Description string
	Timestamps
}

// Validate checks required series fields.
func (a *AlbumSeries) Validate() error {
	if strings.TrimSpace(a.ArtistName) == "" {
		return fmt.Errorf("series artist name is required")
	}
	if strings.TrimSpace(a.AlbumName) == "" {
		return fmt.Errorf("series album name is required")
	}
	if a.PackID == "" {
		return fmt.Errorf("series pack reference is required")
	}
	return nil
}

// EntryFlags holds the persisted resolution flags for one tracklist entry of a series,
// keyed by the entry's identity key.
type EntryFlags struct {
	PreExisting bool
	Irrelevant  bool
	SongID      string // link override; empty when no explicit link exists
}
