// package mocks contains test doubles that depend on internal packages
package mocks

import (
	"context"

	"github.com/desertthunder/packsmith/internal/services"
)

// MockCatalog is a test double for [services.Catalog]. Tracks and Candidates
// are returned verbatim; the error fields take precedence when set.
type MockCatalog struct {
	Tracks        []services.CatalogTrack
	Candidates    []services.EnrichmentCandidate
	TracklistErr  error
	CandidatesErr error

	TracklistCalls  int
	CandidatesCalls int
}

func (m *MockCatalog) GetAlbumTracklist(ctx context.Context, artist, album string) ([]services.CatalogTrack, error) {
	m.TracklistCalls++
	if m.TracklistErr != nil {
		return nil, m.TracklistErr
	}
	return m.Tracks, nil
}

func (m *MockCatalog) GetEnrichmentCandidates(ctx context.Context, title, artist string) ([]services.EnrichmentCandidate, error) {
	m.CandidatesCalls++
	if m.CandidatesErr != nil {
		return nil, m.CandidatesErr
	}
	return m.Candidates, nil
}

func (m *MockCatalog) Name() string { return "mock" }
