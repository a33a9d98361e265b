package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/packsmith/internal/formatter"
	"github.com/desertthunder/packsmith/internal/reconcile"
	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/urfave/cli/v3"
)

// SeriesList lists album series.
func (r *Runner) SeriesList(ctx context.Context, cmd *cli.Command) error {
	st, err := r.store()
	if err != nil {
		return err
	}

	series, err := st.series.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list series: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(series, cmd.Bool("pretty"))
	}

	if len(series) == 0 {
		return r.writePlain("No album series found.\n")
	}

	for _, s := range series {
		r.writePlain("%-36s  #%-3d %s - %s\n", s.ID, s.Sequence, s.ArtistName, s.AlbumName)
	}

	return nil
}

// SeriesStatus prints the tracklist coverage report for a series.
func (r *Runner) SeriesStatus(ctx context.Context, cmd *cli.Command) error {
	report, err := r.loadReport(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	text, err := formatter.ExportToText(report)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return r.writePlain("%s", string(text))
}

// SeriesExport writes a series coverage report to disk in the requested format.
func (r *Runner) SeriesExport(ctx context.Context, cmd *cli.Command) error {
	report, err := r.loadReport(ctx, cmd.String("id"))
	if err != nil {
		return err
	}

	output := cmd.String("output")

	switch cmd.String("format") {
	case "csv":
		result, err := formatter.WriteCSVExport(report, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %s and %s\n", result.EntriesFile, result.MetadataFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(report, output, cmd.String("cover"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %s\n", result.Directory)
	case "text", "txt":
		written, err := formatter.WriteTextExport(report, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %s\n", written)
	default:
		return fmt.Errorf("%w: unknown format '%s' (must be csv, markdown, or text)", shared.ErrInvalidFlag, cmd.String("format"))
	}

	return nil
}

// SeriesEdit opens the curation TUI for an existing series.
func (r *Runner) SeriesEdit(ctx context.Context, cmd *cli.Command) error {
	return r.curateSeries(ctx, cmd.String("id"))
}

// SeriesCreate opens the curation TUI over a catalog tracklist. Selections are
// held in memory until saved as a new pack plus series.
func (r *Runner) SeriesCreate(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not configured", shared.ErrServiceUnavailable)
	}

	st, err := r.store()
	if err != nil {
		return err
	}

	artist := cmd.String("artist")
	album := cmd.String("album")

	port := reconcile.NewCreatePort(artist, album, r.catalog, st.songs, st.series)
	title := fmt.Sprintf("%s - %s (new series)", artist, album)

	return r.runCuration(ctx, port, nil, title)
}

// loadReport rebuilds the entry projection for a series and wraps it for export.
func (r *Runner) loadReport(ctx context.Context, seriesID string) (*formatter.Report, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not configured", shared.ErrServiceUnavailable)
	}

	st, err := r.store()
	if err != nil {
		return nil, err
	}

	series, err := st.series.Get(seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	port := reconcile.NewEditPort(series, st.songs, st.series, r.catalog)
	entries, err := port.LoadTracklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracklist: %w", err)
	}

	return &formatter.Report{Series: series, Entries: entries}, nil
}

// curateSeries opens the curation TUI in edit mode for the given series.
func (r *Runner) curateSeries(ctx context.Context, seriesID string) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not configured", shared.ErrServiceUnavailable)
	}

	st, err := r.store()
	if err != nil {
		return err
	}

	series, err := st.series.Get(seriesID)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}

	port := reconcile.NewEditPort(series, st.songs, st.series, r.catalog)
	title := fmt.Sprintf("%s - %s (#%d)", series.ArtistName, series.AlbumName, series.Sequence)

	return r.runCuration(ctx, port, port, title)
}
