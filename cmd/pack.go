package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/desertthunder/packsmith/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PackCreate runs the five-phase creation pipeline from a tracklist.
func (r *Runner) PackCreate(ctx context.Context, cmd *cli.Command) error {
	lines, err := r.readLines(cmd.String("file"))
	if err != nil {
		return err
	}

	req := tasks.CreatePackRequest{
		Lines:         lines,
		PackName:      cmd.String("name"),
		Artist:        cmd.String("artist"),
		Album:         cmd.String("album"),
		PerLineArtist: cmd.Bool("per-line-artist"),
	}

	if cmd.IsSet("priority") {
		priority := int(cmd.Int("priority"))
		req.Priority = &priority
	}

	if cmd.Bool("series") {
		series := &tasks.SeriesRequest{
			Artist:       cmd.String("artist"),
			Album:        cmd.String("album"),
			CoverURL:     cmd.String("cover"),
			Description:  cmd.String("description"),
			OpenCuration: cmd.Bool("curate"),
		}
		if cmd.IsSet("year") {
			year := int(cmd.Int("year"))
			series.Year = &year
		}
		req.Series = series
	}

	engine, err := r.engine()
	if err != nil {
		return err
	}

	r.logger.Info("creating pack", "name", req.PackName, "songs", len(lines))
	r.writePlain("Creating pack '%s'...\n\n", req.PackName)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.Validate:
				r.writePlain("🔎 %s\n", update.Message)
			case tasks.CreateSongs:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.ProvisionSeries:
				r.writePlain("📀 %s\n", update.Message)
			case tasks.Enrich:
				if update.Step == 0 {
					r.writePlain("\n✨ %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.Cleanup:
				r.writePlain("\n🧹 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, req, progressCh)
	close(progressCh)

	if err != nil {
		category, message := tasks.Categorize(err)
		r.writePlainln("✗ %s", message)
		r.logger.Error("pack creation failed", "category", category)
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Pack Created!")
	r.writePlain("Pack: %s (%d songs)\n", result.Pack.Name, len(result.Songs))

	if result.Series != nil {
		r.writePlain("Series: %s - %s (#%d)\n", result.Series.ArtistName, result.Series.AlbumName, result.Series.Sequence)
	} else if result.SeriesErr != nil {
		_, message := tasks.Categorize(result.SeriesErr)
		r.writePlain("Series provisioning failed: %s\n", message)
	}

	if len(result.Enrichment) > 0 {
		r.writePlain("Enhanced: %d/%d songs\n", result.EnrichedCount, len(result.Enrichment))
	}
	if result.CleanupErr != nil {
		r.writePlain("Title cleanup failed: %v\n", result.CleanupErr)
	}

	r.writePlain("\n%s\n", result.Message)

	if result.Handoff != nil {
		return r.curateSeries(ctx, result.Handoff.SeriesID)
	}

	return nil
}

// PackList lists packs ordered by priority.
func (r *Runner) PackList(ctx context.Context, cmd *cli.Command) error {
	st, err := r.store()
	if err != nil {
		return err
	}

	packs, err := st.packs.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list packs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(packs, cmd.Bool("pretty"))
	}

	if len(packs) == 0 {
		return r.writePlain("No packs found. Create one with 'packsmith pack create'.\n")
	}

	for _, pack := range packs {
		priority := "-"
		if pack.Priority != nil {
			priority = fmt.Sprintf("%d", *pack.Priority)
		}
		r.writePlain("%-36s  %-30s  priority: %s\n", pack.ID, pack.Name, priority)
	}

	return nil
}

// PackSongs lists the songs in a pack, by ID or by name.
func (r *Runner) PackSongs(ctx context.Context, cmd *cli.Command) error {
	st, err := r.store()
	if err != nil {
		return err
	}

	packID := cmd.String("id")
	if packID == "" {
		name := cmd.String("name")
		if name == "" {
			return fmt.Errorf("%w: either --id or --name must be provided", shared.ErrMissingArgument)
		}
		pack, err := st.packs.GetByName(name)
		if err != nil {
			return fmt.Errorf("failed to find pack '%s': %w", name, err)
		}
		packID = pack.ID
	}

	songs, err := st.songs.ListPackSongs(packID)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	for _, song := range songs {
		r.writePlain("%-36s  %s - %s [%s]\n", song.ID, song.Artist, song.Title, song.DisplayStatus())
	}
	r.writePlain("\n%d songs\n", len(songs))

	return nil
}

// readLines reads song lines from a file or stdin, preserving blank-line
// filtering for the pipeline's validator.
func (r *Runner) readLines(path string) ([]string, error) {
	var lines []string

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tracklist file: %w", err)
		}
		lines = strings.Split(string(data), "\n")
		return lines, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return lines, nil
}
