// package services defines interface Catalog for interacting with external
// music catalog APIs over HTTP.
package services

import (
	"context"
)

// Catalog defines the interface for external music catalog providers that can
// resolve album tracklists and per-song metadata.
type Catalog interface {
	// GetAlbumTracklist retrieves the canonical tracklist for an album.
	// Returns an error wrapping [shared.ErrAlbumNotFound] when the catalog
	// has no such album.
	GetAlbumTracklist(ctx context.Context, artist, album string) ([]CatalogTrack, error)

	// GetEnrichmentCandidates searches the catalog for metadata matching a
	// song by title and artist. The first candidate is the best match.
	GetEnrichmentCandidates(ctx context.Context, title, artist string) ([]EnrichmentCandidate, error)

	// Name returns the name of the catalog provider
	Name() string
}

// CatalogTrack represents one track position in a catalog album listing
type CatalogTrack struct {
	ExternalID  string `json:"id"`
	Title       string `json:"title"`
	DiscNumber  int    `json:"disc_number"`
	TrackNumber int    `json:"track_number"`
	Official    bool   `json:"official"`
	PreExisting bool   `json:"pre_existing"`
}

// EnrichmentCandidate represents catalog metadata for a single song
type EnrichmentCandidate struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Year     int    `json:"year"`
	CoverURL string `json:"cover_url"`
}
