// Package reconcile merges a canonical album tracklist against a pack's songs.
//
// The core abstraction is Session, which holds an ephemeral projection of
// tracklist entries and exposes the user-resolvable actions (toggle flags,
// link, add, delete, disc bulk actions). Persistence goes through a Port so
// the same session logic serves both editing an existing series and
// assembling a new one in memory.
package reconcile

import (
	"math"
	"strings"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/services"
)

// BuildEntries projects catalog tracks, pack songs, and stored curation flags
// into display entries. Explicit link overrides win over normalized-title
// matches, and a song claimed by one entry is never matched to a second
// (claims resolve in entry order).
func BuildEntries(tracks []services.CatalogTrack, songs []*models.Song, flags map[string]models.EntryFlags) []models.TracklistEntry {
	entries := make([]models.TracklistEntry, 0, len(tracks))
	for _, t := range tracks {
		entries = append(entries, models.TracklistEntry{
			DiscNumber:  t.DiscNumber,
			TrackNumber: t.TrackNumber,
			TitleClean:  models.CleanTitle(t.Title),
			ExternalID:  t.ExternalID,
			Official:    t.Official,
			PreExisting: t.PreExisting,
		})
	}
	models.SortEntries(entries)

	byID := make(map[string]*models.Song, len(songs))
	byTitle := make(map[string]*models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
		byTitle[models.NormalizeTitle(s.Title)] = s
	}

	claimed := make(map[string]bool)

	for i := range entries {
		e := &entries[i]
		f, ok := flags[e.Key()]
		if !ok {
			continue
		}

		if f.PreExisting {
			e.PreExisting = true
		}
		e.Irrelevant = f.Irrelevant

		if f.SongID != "" {
			if s, found := byID[f.SongID]; found && !claimed[s.ID] {
				linkSong(e, s)
				claimed[s.ID] = true
			}
		}
	}

	for i := range entries {
		e := &entries[i]
		if e.InPack {
			continue
		}
		if s, found := byTitle[models.NormalizeTitle(e.TitleClean)]; found && !claimed[s.ID] {
			linkSong(e, s)
			claimed[s.ID] = true
		}
	}

	return entries
}

func linkSong(e *models.TracklistEntry, s *models.Song) {
	e.InPack = true
	e.SongID = s.ID
	e.Status = s.Status
}

// Classify derives an entry's display status. Evaluated in fixed priority
// order so an official entry always reads "Official DLC" even when a linked
// song carries its own status.
func Classify(e models.TracklistEntry) string {
	status := strings.ToLower(strings.TrimSpace(e.Status))
	switch {
	case e.Official:
		return "Official DLC"
	case e.PreExisting:
		return "Already Done"
	case strings.Contains(status, "released"):
		return "Released"
	case strings.Contains(status, "progress"):
		return "In Progress"
	case strings.Contains(status, "wip"):
		return "WIP"
	case strings.Contains(status, "future"):
		return "Future Plans"
	case e.InPack && e.Status != "":
		return e.Status
	case e.InPack:
		return "In Pack"
	default:
		return "Missing"
	}
}

// Coverage computes the satisfied percentage over entries not marked
// irrelevant. An entry counts as covered when it is in the pack, official,
// pre-existing, or mirrors a non-"missing" status. Returns 0 when every
// entry is irrelevant.
func Coverage(entries []models.TracklistEntry) int {
	relevant, covered := 0, 0
	for _, e := range entries {
		if e.Irrelevant {
			continue
		}
		relevant++

		status := strings.ToLower(strings.TrimSpace(e.Status))
		if e.InPack || e.Official || e.PreExisting || (status != "" && status != "missing") {
			covered++
		}
	}

	if relevant == 0 {
		return 0
	}
	return int(math.Round(100 * float64(covered) / float64(relevant)))
}

// LinkCandidates filters pack songs down to those eligible to satisfy a
// canonical track: same album (case-insensitive, trimmed), not released, not
// already in a series, and not claimed by any in-pack entry.
func LinkCandidates(songs []*models.Song, album string, claimed map[string]bool) []*models.Song {
	want := strings.ToLower(strings.TrimSpace(album))

	var candidates []*models.Song
	for _, s := range songs {
		if strings.ToLower(strings.TrimSpace(s.Album)) != want {
			continue
		}
		if s.Status == models.StatusReleased {
			continue
		}
		if s.SeriesID != "" {
			continue
		}
		if claimed[s.ID] {
			continue
		}
		candidates = append(candidates, s)
	}

	return candidates
}
