package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/packsmith/internal/shared"
)

func newTestCatalog(baseURL string) *CatalogService {
	return NewCatalogService(shared.CatalogConfig{BaseURL: baseURL, RateLimit: 1000})
}

func TestCatalogService(t *testing.T) {
	t.Run("GetAlbumTracklist", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/albums/tracklist" {
					t.Errorf("expected path '/albums/tracklist', got %s", r.URL.Path)
				}
				if r.URL.Query().Get("artist") != "Pink Floyd" {
					t.Errorf("expected artist query, got %s", r.URL.Query().Get("artist"))
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"tracks": []CatalogTrack{
						{ExternalID: "t1", Title: "Speak to Me", DiscNumber: 1, TrackNumber: 1},
						{ExternalID: "t2", Title: "Breathe", DiscNumber: 1, TrackNumber: 2, Official: true},
					},
				})
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			tracks, err := catalog.GetAlbumTracklist(context.Background(), "Pink Floyd", "The Dark Side of the Moon")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks) != 2 {
				t.Fatalf("expected 2 tracks, got %d", len(tracks))
			}
			if !tracks[1].Official {
				t.Error("expected second track to be official")
			}
		})

		t.Run("AlbumNotFound", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			_, err := catalog.GetAlbumTracklist(context.Background(), "Nobody", "Nothing")

			if !errors.Is(err, shared.ErrAlbumNotFound) {
				t.Errorf("expected ErrAlbumNotFound, got %v", err)
			}
		})

		t.Run("ServerError", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			_, err := catalog.GetAlbumTracklist(context.Background(), "Artist", "Album")

			if !errors.Is(err, shared.ErrCatalogFailure) {
				t.Errorf("expected ErrCatalogFailure, got %v", err)
			}
		})

		t.Run("Unauthorized", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			_, err := catalog.GetAlbumTracklist(context.Background(), "Artist", "Album")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("InvalidJSON", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			_, err := catalog.GetAlbumTracklist(context.Background(), "Artist", "Album")

			if !errors.Is(err, shared.ErrCatalogFailure) {
				t.Errorf("expected ErrCatalogFailure for bad payload, got %v", err)
			}
		})
	})

	t.Run("GetEnrichmentCandidates", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/songs/search" {
					t.Errorf("expected path '/songs/search', got %s", r.URL.Path)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"results": []EnrichmentCandidate{
						{ID: "c1", Title: "Time", Artist: "Pink Floyd", Album: "The Dark Side of the Moon", Year: 1973},
					},
				})
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			candidates, err := catalog.GetEnrichmentCandidates(context.Background(), "Time", "Pink Floyd")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(candidates) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(candidates))
			}
			if candidates[0].Year != 1973 {
				t.Errorf("expected year 1973, got %d", candidates[0].Year)
			}
		})

		t.Run("NoMatch", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			catalog := newTestCatalog(server.URL)
			_, err := catalog.GetEnrichmentCandidates(context.Background(), "Unknown", "Nobody")

			if !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("CanceledContext", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		catalog := newTestCatalog(server.URL)
		if _, err := catalog.GetAlbumTracklist(ctx, "Artist", "Album"); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}
