package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/shared"
)

// Session holds the live entry projection for one reconciliation view and
// mediates every user action against a Port. Flag toggles apply optimistically
// and revert on persistence failure; actions with cross-entry effects (add,
// link, delete) reload the projection instead.
type Session struct {
	mu        sync.Mutex
	port      Port
	entries   []models.TracklistEntry
	busy      map[string]bool
	observers []func()
	logger    *log.Logger
}

// NewSession creates a session over the given port. Call Load before reading
// entries.
func NewSession(port Port, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{
		port:   port,
		busy:   make(map[string]bool),
		logger: logger,
	}
}

// Load clears any displayed entries, then rebuilds the projection from the
// port. Clearing first avoids showing stale entries from a different series
// while the new one loads.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	entries, err := s.port.LoadTracklist(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Entries returns a copy of the current projection in display order.
func (s *Session) Entries() []models.TracklistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TracklistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Coverage returns the current coverage percentage.
func (s *Session) Coverage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Coverage(s.entries)
}

// OnMutation registers a callback invoked after any persisted mutation, so
// other views can refetch their own song lists.
func (s *Session) OnMutation(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// ClaimedSongIDs returns the songs currently bound to in-pack entries. Used
// to exclude them from link candidates.
func (s *Session) ClaimedSongIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	claimed := make(map[string]bool)
	for _, e := range s.entries {
		if e.InPack && e.SongID != "" {
			claimed[e.SongID] = true
		}
	}
	return claimed
}

// Candidates filters the given pack songs to those eligible for linking
// against the current claimed set.
func (s *Session) Candidates(songs []*models.Song, album string) []*models.Song {
	return LinkCandidates(songs, album, s.ClaimedSongIDs())
}

// TogglePreExisting flips an entry's pre-existing flag optimistically and
// persists it. Official entries and entries already released are rejected.
func (s *Session) TogglePreExisting(ctx context.Context, entryKey string) error {
	return s.toggle(ctx, entryKey, FlagPreExisting)
}

// ToggleIrrelevant flips an entry's irrelevant flag optimistically and
// persists it. Official entries are rejected.
func (s *Session) ToggleIrrelevant(ctx context.Context, entryKey string) error {
	return s.toggle(ctx, entryKey, FlagIrrelevant)
}

func (s *Session) toggle(ctx context.Context, entryKey string, flag Flag) error {
	s.mu.Lock()
	i := s.indexLocked(entryKey)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, entryKey)
	}

	e := &s.entries[i]
	if e.Official {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrOfficialEntry, entryKey)
	}
	if flag == FlagPreExisting && strings.Contains(strings.ToLower(e.Status), "released") {
		s.mu.Unlock()
		return fmt.Errorf("%w: entry already released: %s", shared.ErrInvalidInput, entryKey)
	}
	if s.busy[entryKey] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryBusy, entryKey)
	}
	s.busy[entryKey] = true

	// Optimistic flip; the pre-image is the revert target.
	var value bool
	if flag == FlagPreExisting {
		e.PreExisting = !e.PreExisting
		value = e.PreExisting
	} else {
		e.Irrelevant = !e.Irrelevant
		value = e.Irrelevant
	}
	s.mu.Unlock()

	err := s.port.PersistFlag(ctx, entryKey, flag, value)

	s.mu.Lock()
	delete(s.busy, entryKey)
	if err != nil {
		if j := s.indexLocked(entryKey); j >= 0 {
			if flag == FlagPreExisting {
				s.entries[j].PreExisting = !value
			} else {
				s.entries[j].Irrelevant = !value
			}
		}
		s.mu.Unlock()
		s.logger.Error("flag persistence failed, reverted", "key", entryKey, "flag", flag, "error", err)
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// AddMissing creates a song from the entry's clean title and reloads the
// projection to pick up the new link.
func (s *Session) AddMissing(ctx context.Context, entryKey string) error {
	s.mu.Lock()
	i := s.indexLocked(entryKey)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, entryKey)
	}
	if s.busy[entryKey] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryBusy, entryKey)
	}
	s.busy[entryKey] = true
	entry := s.entries[i]
	s.mu.Unlock()

	err := s.port.AddMissing(ctx, entry)

	s.mu.Lock()
	delete(s.busy, entryKey)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// LinkExisting binds an entry to a chosen candidate song and reloads.
func (s *Session) LinkExisting(ctx context.Context, entryKey, songID string) error {
	s.mu.Lock()
	if s.indexLocked(entryKey) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, entryKey)
	}
	if s.busy[entryKey] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryBusy, entryKey)
	}
	for _, e := range s.entries {
		if e.InPack && e.SongID == songID {
			s.mu.Unlock()
			return fmt.Errorf("%w: song already claimed by another entry", shared.ErrAlreadyExists)
		}
	}
	s.busy[entryKey] = true
	s.mu.Unlock()

	err := s.port.LinkExisting(ctx, entryKey, songID)

	s.mu.Lock()
	delete(s.busy, entryKey)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// MarkDisc sets irrelevant for every entry on a disc in one call. Local state
// updates in place without a full reload.
func (s *Session) MarkDisc(ctx context.Context, disc int, irrelevant bool) error {
	s.mu.Lock()
	var keys []string
	for _, e := range s.entries {
		if e.Disc() == disc && !e.Official {
			keys = append(keys, e.Key())
		}
	}
	s.mu.Unlock()

	if len(keys) == 0 {
		return fmt.Errorf("%w: no entries on disc %d", shared.ErrEntryNotFound, disc)
	}

	if err := s.port.DiscBulkAction(ctx, keys, irrelevant); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].Disc() == disc && !s.entries[i].Official {
			s.entries[i].Irrelevant = irrelevant
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteLinkedSong removes the song linked to an entry. Songs classified as
// in progress require confirmed=true; the first call returns
// [shared.ErrConfirmRequired] so the caller can prompt.
func (s *Session) DeleteLinkedSong(ctx context.Context, entryKey string, confirmed bool) error {
	deleter, ok := s.port.(SongDeleter)
	if !ok {
		return fmt.Errorf("%w: deletion not supported in this mode", shared.ErrNotImplemented)
	}

	s.mu.Lock()
	i := s.indexLocked(entryKey)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryNotFound, entryKey)
	}
	e := s.entries[i]
	if !e.InPack || e.SongID == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: entry has no linked song", shared.ErrNotFound)
	}
	if strings.Contains(strings.ToLower(e.Status), "progress") && !confirmed {
		s.mu.Unlock()
		return fmt.Errorf("%w: song is in progress", shared.ErrConfirmRequired)
	}
	if s.busy[entryKey] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrEntryBusy, entryKey)
	}
	s.busy[entryKey] = true
	s.mu.Unlock()

	err := deleter.DeleteSong(ctx, e.SongID)

	s.mu.Lock()
	delete(s.busy, entryKey)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Save commits an in-memory curation (create mode only). Requires at least
// one selected, relevant entry.
func (s *Session) Save(ctx context.Context) (*models.AlbumSeries, error) {
	saver, ok := s.port.(SeriesSaver)
	if !ok {
		return nil, fmt.Errorf("%w: save only applies when creating a series", shared.ErrNotImplemented)
	}

	series, err := saver.SaveSeries(ctx)
	if err != nil {
		return nil, err
	}

	s.notify()
	return series, nil
}

// indexLocked finds an entry by key. Callers hold s.mu.
func (s *Session) indexLocked(entryKey string) int {
	for i := range s.entries {
		if s.entries[i].Key() == entryKey {
			return i
		}
	}
	return -1
}
