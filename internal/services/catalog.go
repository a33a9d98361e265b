// Catalog API implementation of [Catalog] backed by the configured HTTP backend.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/desertthunder/packsmith/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// CatalogService implements the Catalog interface against an HTTP catalog
// backend. Uses OAuth2 client credentials when configured and rate limits
// outgoing requests.
type CatalogService struct {
	api     *APIService
	limiter *rate.Limiter
	name    string
}

// NewCatalogService creates a catalog client from configuration. When a client
// id and secret are present, requests carry a client-credentials token.
func NewCatalogService(cfg shared.CatalogConfig) *CatalogService {
	httpClient := http.DefaultClient

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(context.Background())
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 5
	}

	return &CatalogService{
		api:     NewAPIService(cfg.BaseURL, httpClient),
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		name:    "catalog",
	}
}

func (c *CatalogService) Name() string {
	return c.name
}

// GetAlbumTracklist retrieves the canonical tracklist for an album.
func (c *CatalogService) GetAlbumTracklist(ctx context.Context, artist, album string) ([]CatalogTrack, error) {
	path := fmt.Sprintf("/albums/tracklist?artist=%s&album=%s",
		url.QueryEscape(artist), url.QueryEscape(album))

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrAlbumNotFound, artist, album)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Tracks []CatalogTrack `json:"tracks"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tracklist: %v", shared.ErrCatalogFailure, err)
	}

	return payload.Tracks, nil
}

// GetEnrichmentCandidates searches the catalog for song metadata.
func (c *CatalogService) GetEnrichmentCandidates(ctx context.Context, title, artist string) ([]EnrichmentCandidate, error) {
	path := fmt.Sprintf("/songs/search?title=%s&artist=%s",
		url.QueryEscape(title), url.QueryEscape(artist))

	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: no catalog match for %s - %s", shared.ErrNotFound, artist, title)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Results []EnrichmentCandidate `json:"results"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search results: %v", shared.ErrCatalogFailure, err)
	}

	return payload.Results, nil
}

// get waits for a rate limiter slot, then performs the request. Transport
// failures and deadline expiry map onto the shared sentinels so callers can
// categorize without inspecting transport internals.
func (c *CatalogService) get(ctx context.Context, path string) (*APIResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", shared.ErrTimeout, err)
	}

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return resp, nil
}

func checkStatus(resp *APIResponse) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: catalog returned unauthorized", shared.ErrAPIRequest)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: catalog returned forbidden", shared.ErrAPIRequest)
	case resp.StatusCode == http.StatusRequestTimeout:
		return fmt.Errorf("%w: catalog request timed out", shared.ErrTimeout)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: catalog returned status %d", shared.ErrCatalogFailure, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: catalog returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	return nil
}
