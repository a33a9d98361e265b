package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/repositories"
	"github.com/desertthunder/packsmith/internal/services"
	"github.com/desertthunder/packsmith/internal/shared"
)

// SeriesRequest asks the pipeline to provision an album series for the pack.
type SeriesRequest struct {
	Artist       string
	Album        string
	Year         *int
	CoverURL     string
	Description  string
	OpenCuration bool // cache a handoff for the reconciliation view after creation
}

// CreatePackRequest carries the raw user input for one pipeline run.
type CreatePackRequest struct {
	Lines         []string // one song per non-blank line
	PackName      string
	Priority      *int
	Artist        string // applied to every line unless PerLineArtist is set
	Album         string // optional default album for every song
	PerLineArtist bool   // lines are "Artist - Title"
	Series        *SeriesRequest
}

// EnrichmentOutcome records the per-song result of the enrichment phase.
type EnrichmentOutcome struct {
	Song     *models.Song
	Enriched bool
	Err      error
}

// CurationHandoff caches the identifiers the reconciliation view needs when
// the caller opted to open curation after series provisioning.
type CurationHandoff struct {
	SeriesID     string
	SeriesNumber int
	AlbumName    string
	PackID       string
}

// CreatePackResult contains all data from a full pipeline run.
type CreatePackResult struct {
	Pack          *models.Pack
	Songs         []*models.Song
	Series        *models.AlbumSeries // nil when not requested or provisioning failed
	SeriesErr     error               // non-fatal provisioning failure
	Enrichment    []EnrichmentOutcome // empty when the enrichment phase was skipped
	EnrichedCount int
	CleanupErr    error // non-fatal cleanup failure
	Handoff       *CurationHandoff
	Message       string // user-facing success summary
}

// CreationEngine defines the pack creation pipeline.
type CreationEngine interface {
	// Run executes the five pipeline phases: validate, batch-create songs,
	// provision series, enrich, clean titles. Only batch creation is fatal;
	// later phases degrade to warnings in the result.
	Run(ctx context.Context, req CreatePackRequest, progress chan<- ProgressUpdate) (*CreatePackResult, error)
}

// PackEngine implements CreationEngine over the sqlite repositories and the
// external catalog.
type PackEngine struct {
	songs    *repositories.SongRepository
	series   *repositories.SeriesRepository
	settings *repositories.SettingsRepository
	catalog  services.Catalog
	logger   *log.Logger
}

// NewPackEngine creates a new PackEngine with the provided collaborators.
// The catalog may be nil, which disables the enrichment phase.
func NewPackEngine(songs *repositories.SongRepository, series *repositories.SeriesRepository, settings *repositories.SettingsRepository, catalog services.Catalog, logger *log.Logger) *PackEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PackEngine{
		songs:    songs,
		series:   series,
		settings: settings,
		catalog:  catalog,
		logger:   logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PackEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run executes the pipeline. Validation failures and batch-creation failures
// abort the run; series provisioning, per-song enrichment, and title cleanup
// failures are absorbed into the result.
func (e *PackEngine) Run(ctx context.Context, req CreatePackRequest, progress chan<- ProgressUpdate) (*CreatePackResult, error) {
	if e.songs == nil {
		return nil, fmt.Errorf("%w: song repository not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, validateUpdate())

	entries, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	result := &CreatePackResult{}

	e.sendProgress(progress, createSongsUpdate(len(entries)))

	pack, err := e.songs.CreateBatch(req.PackName, req.Priority, entries)
	if err != nil {
		return nil, err
	}
	result.Pack = pack
	result.Songs = entries

	if req.Series != nil {
		e.provisionSeries(progress, req, result)
	}

	if e.shouldEnrich() {
		e.enrich(ctx, progress, result)
	}

	e.cleanup(progress, result)

	result.Message = successMessage(result)
	e.sendProgress(progress, doneUpdate(result.Message))
	return result, nil
}

// validate checks the request and expands its lines into unsaved songs.
// Every non-blank line yields exactly one song, in input order.
func (e *PackEngine) validate(req CreatePackRequest) ([]*models.Song, error) {
	if strings.TrimSpace(req.PackName) == "" {
		return nil, fmt.Errorf("%w: pack name is required", shared.ErrInvalidInput)
	}
	if !req.PerLineArtist && strings.TrimSpace(req.Artist) == "" {
		return nil, fmt.Errorf("%w: artist is required", shared.ErrInvalidInput)
	}
	if req.Series != nil {
		if strings.TrimSpace(req.Series.Artist) == "" || strings.TrimSpace(req.Series.Album) == "" {
			return nil, fmt.Errorf("%w: album series requires artist and album", shared.ErrInvalidInput)
		}
	}

	var entries []*models.Song
	for _, line := range req.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		title := line
		artist := strings.TrimSpace(req.Artist)
		if req.PerLineArtist {
			if name, rest, found := strings.Cut(line, " - "); found {
				artist = strings.TrimSpace(name)
				title = strings.TrimSpace(rest)
			}
		}
		if artist == "" {
			return nil, fmt.Errorf("%w: no artist for line %q", shared.ErrInvalidInput, line)
		}

		entries = append(entries, &models.Song{Title: title, Artist: artist, Album: req.Album})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no song entries provided", shared.ErrInvalidInput)
	}

	return entries, nil
}

// provisionSeries creates the album series and links the pack's songs to it.
// Failure leaves the created songs untouched and is reported via SeriesErr.
func (e *PackEngine) provisionSeries(progress chan<- ProgressUpdate, req CreatePackRequest, result *CreatePackResult) {
	e.sendProgress(progress, seriesUpdate(req.Series.Artist, req.Series.Album))

	if e.series == nil {
		result.SeriesErr = fmt.Errorf("%w: series repository not initialized", shared.ErrServiceUnavailable)
		e.logger.Warn("album series provisioning skipped", "error", result.SeriesErr)
		return
	}

	series := &models.AlbumSeries{
		ArtistName:  req.Series.Artist,
		AlbumName:   req.Series.Album,
		PackID:      result.Pack.ID,
		Year:        req.Series.Year,
		CoverURL:    req.Series.CoverURL,
		Description: req.Series.Description,
	}

	if err := e.series.Create(series); err != nil {
		result.SeriesErr = err
		e.logger.Warn("album series provisioning failed", "error", err)
		e.sendProgress(progress, seriesFailedUpdate(err))
		return
	}

	if err := e.songs.AssignSeries(result.Pack.ID, series.ID, series.Sequence); err != nil {
		result.SeriesErr = err
		e.logger.Warn("failed to link songs to series", "error", err)
		return
	}

	result.Series = series
	if req.Series.OpenCuration {
		result.Handoff = &CurationHandoff{
			SeriesID:     series.ID,
			SeriesNumber: series.Sequence,
			AlbumName:    series.AlbumName,
			PackID:       result.Pack.ID,
		}
	}
}

// shouldEnrich reads the auto-enrichment preference. An unset preference
// counts as enabled; only an explicit false disables the phase.
func (e *PackEngine) shouldEnrich() bool {
	if e.catalog == nil {
		return false
	}
	if e.settings == nil {
		return true
	}

	enabled, err := e.settings.AutoEnrich()
	if err != nil {
		e.logger.Warn("failed to read enrichment setting", "error", err)
		return true
	}
	return enabled == nil || *enabled
}

// enrich applies the best catalog candidate to each song in creation order.
// Each song's failure is contained: it is logged, recorded, and does not stop
// enrichment of the remaining songs.
func (e *PackEngine) enrich(ctx context.Context, progress chan<- ProgressUpdate, result *CreatePackResult) {
	total := len(result.Songs)
	result.Enrichment = make([]EnrichmentOutcome, total)

	for i, song := range result.Songs {
		e.sendProgress(progress, enrichUpdate(i+1, total, song))
		result.Enrichment[i] = EnrichmentOutcome{Song: song}

		candidates, err := e.catalog.GetEnrichmentCandidates(ctx, song.Title, song.Artist)
		if err != nil {
			result.Enrichment[i].Err = err
			e.logger.Warn("enrichment lookup failed", "song", song.Title, "error", err)
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		applyCandidate(song, candidates[0])
		if err := e.songs.Update(song); err != nil {
			result.Enrichment[i].Err = err
			e.logger.Warn("enrichment update failed", "song", song.Title, "error", err)
			continue
		}

		result.Enrichment[i].Enriched = true
		result.EnrichedCount++
	}
}

// applyCandidate copies non-empty candidate fields onto the song.
func applyCandidate(song *models.Song, c services.EnrichmentCandidate) {
	if c.Title != "" {
		song.Title = c.Title
	}
	if c.Artist != "" {
		song.Artist = c.Artist
	}
	if c.Album != "" {
		song.Album = c.Album
	}
	if c.Year != 0 {
		year := c.Year
		song.Year = &year
	}
	if c.CoverURL != "" {
		song.CoverURL = c.CoverURL
	}
}

// cleanup strips remaster/edition tags from every created song in one batch.
func (e *PackEngine) cleanup(progress chan<- ProgressUpdate, result *CreatePackResult) {
	e.sendProgress(progress, cleanupUpdate(len(result.Songs)))

	ids := make([]string, 0, len(result.Songs))
	for _, song := range result.Songs {
		ids = append(ids, song.ID)
	}

	if err := e.songs.CleanTitles(ids); err != nil {
		result.CleanupErr = err
		e.logger.Warn("title cleanup failed", "error", err)
	}
}

// successMessage phrases the outcome based on which optional phases ran.
func successMessage(result *CreatePackResult) string {
	msg := fmt.Sprintf("Created %d songs in pack %q", len(result.Songs), result.Pack.Name)
	if result.Series != nil {
		msg += fmt.Sprintf(", provisioned album series #%d", result.Series.Sequence)
	}
	if result.EnrichedCount > 0 {
		msg += fmt.Sprintf(", enhanced %d from the catalog", result.EnrichedCount)
	}
	if result.CleanupErr == nil {
		msg += ", and cleaned titles"
	}
	return msg
}
