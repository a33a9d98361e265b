package reconcile

import (
	"context"
	"fmt"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/repositories"
	"github.com/desertthunder/packsmith/internal/services"
	"github.com/desertthunder/packsmith/internal/shared"
)

// Flag identifies which curation boolean a toggle targets.
type Flag int

const (
	FlagPreExisting Flag = iota
	FlagIrrelevant
)

func (f Flag) String() string {
	if f == FlagPreExisting {
		return "pre_existing"
	}
	return "irrelevant"
}

// Port is the persistence boundary for a reconciliation session. EditPort
// writes through to the store; CreatePort mutates in memory until Save.
type Port interface {
	// LoadTracklist rebuilds the entry projection from current state.
	LoadTracklist(ctx context.Context) ([]models.TracklistEntry, error)

	// PersistFlag records a flag value for the entry key.
	PersistFlag(ctx context.Context, entryKey string, flag Flag, value bool) error

	// LinkExisting binds an entry to an existing song.
	LinkExisting(ctx context.Context, entryKey, songID string) error

	// AddMissing satisfies an entry with a new song built from its clean title.
	AddMissing(ctx context.Context, entry models.TracklistEntry) error

	// DiscBulkAction sets the irrelevant flag for every given entry key.
	DiscBulkAction(ctx context.Context, entryKeys []string, irrelevant bool) error
}

// SongDeleter is an optional Port capability for deleting a linked song.
type SongDeleter interface {
	DeleteSong(ctx context.Context, songID string) error
}

// SeriesSaver is an optional Port capability for committing an in-memory
// curation as a real pack plus album series.
type SeriesSaver interface {
	SaveSeries(ctx context.Context) (*models.AlbumSeries, error)
}

// EditPort backs a session with the store and catalog for an existing series.
type EditPort struct {
	series   *models.AlbumSeries
	songs    *repositories.SongRepository
	seriesDB *repositories.SeriesRepository
	catalog  services.Catalog
}

// NewEditPort creates a Port for editing an existing album series.
func NewEditPort(series *models.AlbumSeries, songs *repositories.SongRepository, seriesDB *repositories.SeriesRepository, catalog services.Catalog) *EditPort {
	return &EditPort{series: series, songs: songs, seriesDB: seriesDB, catalog: catalog}
}

func (p *EditPort) LoadTracklist(ctx context.Context) ([]models.TracklistEntry, error) {
	tracks, err := p.catalog.GetAlbumTracklist(ctx, p.series.ArtistName, p.series.AlbumName)
	if err != nil {
		return nil, err
	}

	songs, err := p.songs.ListPackSongs(p.series.PackID)
	if err != nil {
		return nil, err
	}

	flags, err := p.seriesDB.ListFlags(p.series.ID)
	if err != nil {
		return nil, err
	}

	return BuildEntries(tracks, songs, flags), nil
}

func (p *EditPort) PersistFlag(ctx context.Context, entryKey string, flag Flag, value bool) error {
	if flag == FlagPreExisting {
		return p.seriesDB.SetPreExisting(p.series.ID, entryKey, value)
	}
	return p.seriesDB.SetIrrelevant(p.series.ID, entryKey, value)
}

func (p *EditPort) LinkExisting(ctx context.Context, entryKey, songID string) error {
	return p.seriesDB.SetLink(p.series.ID, entryKey, songID)
}

func (p *EditPort) AddMissing(ctx context.Context, entry models.TracklistEntry) error {
	number := p.series.Sequence
	song := &models.Song{
		Title:        entry.TitleClean,
		Artist:       p.series.ArtistName,
		Album:        p.series.AlbumName,
		PackID:       p.series.PackID,
		SeriesID:     p.series.ID,
		SeriesNumber: &number,
	}

	if err := p.songs.Create(song); err != nil {
		return err
	}

	return p.seriesDB.SetLink(p.series.ID, entry.Key(), song.ID)
}

func (p *EditPort) DiscBulkAction(ctx context.Context, entryKeys []string, irrelevant bool) error {
	return p.seriesDB.BulkSetIrrelevant(p.series.ID, entryKeys, irrelevant)
}

func (p *EditPort) DeleteSong(ctx context.Context, songID string) error {
	return p.songs.Delete(songID)
}

// PackSongs lists the songs available as link candidates.
func (p *EditPort) PackSongs() ([]*models.Song, error) {
	return p.songs.ListPackSongs(p.series.PackID)
}

// Album returns the series album name, for candidate filtering.
func (p *EditPort) Album() string {
	return p.series.AlbumName
}

// CreatePort assembles a series in memory before it exists. Selections and
// flags live only in the port until SaveSeries commits them.
type CreatePort struct {
	artist   string
	album    string
	catalog  services.Catalog
	songs    *repositories.SongRepository
	seriesDB *repositories.SeriesRepository

	tracks   []services.CatalogTrack
	flags    map[string]models.EntryFlags
	selected map[string]bool
}

// NewCreatePort creates a Port for curating a series that does not exist yet.
func NewCreatePort(artist, album string, catalog services.Catalog, songs *repositories.SongRepository, seriesDB *repositories.SeriesRepository) *CreatePort {
	return &CreatePort{
		artist:   artist,
		album:    album,
		catalog:  catalog,
		songs:    songs,
		seriesDB: seriesDB,
		flags:    make(map[string]models.EntryFlags),
		selected: make(map[string]bool),
	}
}

func (p *CreatePort) LoadTracklist(ctx context.Context) ([]models.TracklistEntry, error) {
	if p.tracks == nil {
		tracks, err := p.catalog.GetAlbumTracklist(ctx, p.artist, p.album)
		if err != nil {
			return nil, err
		}
		p.tracks = tracks
	}

	entries := BuildEntries(p.tracks, nil, p.flags)
	for i := range entries {
		if p.selected[entries[i].Key()] {
			entries[i].InPack = true
		}
	}
	return entries, nil
}

func (p *CreatePort) PersistFlag(ctx context.Context, entryKey string, flag Flag, value bool) error {
	f := p.flags[entryKey]
	if flag == FlagPreExisting {
		f.PreExisting = value
	} else {
		f.Irrelevant = value
	}
	p.flags[entryKey] = f
	return nil
}

func (p *CreatePort) LinkExisting(ctx context.Context, entryKey, songID string) error {
	return fmt.Errorf("%w: linking requires an existing series", shared.ErrNotImplemented)
}

func (p *CreatePort) AddMissing(ctx context.Context, entry models.TracklistEntry) error {
	p.selected[entry.Key()] = true
	return nil
}

func (p *CreatePort) DiscBulkAction(ctx context.Context, entryKeys []string, irrelevant bool) error {
	for _, key := range entryKeys {
		f := p.flags[key]
		f.Irrelevant = irrelevant
		p.flags[key] = f
	}
	return nil
}

// SaveSeries batch-creates the selected entries as songs under a synthesized
// "{album} Album Series" pack, then provisions the album series from it.
// Refuses when nothing is selected.
func (p *CreatePort) SaveSeries(ctx context.Context) (*models.AlbumSeries, error) {
	entries, err := p.LoadTracklist(ctx)
	if err != nil {
		return nil, err
	}

	var picks []*models.Song
	var keys []string
	for _, e := range entries {
		if e.InPack && !e.Irrelevant {
			picks = append(picks, &models.Song{
				Title:  e.TitleClean,
				Artist: p.artist,
				Album:  p.album,
			})
			keys = append(keys, e.Key())
		}
	}
	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: select at least one track before saving", shared.ErrNothingSelected)
	}

	packName := fmt.Sprintf("%s Album Series", p.album)
	pack, err := p.songs.CreateBatch(packName, nil, picks)
	if err != nil {
		return nil, err
	}

	series := &models.AlbumSeries{
		ArtistName: p.artist,
		AlbumName:  p.album,
		PackID:     pack.ID,
	}
	if err := p.seriesDB.Create(series); err != nil {
		return nil, err
	}

	if err := p.songs.AssignSeries(pack.ID, series.ID, series.Sequence); err != nil {
		return nil, err
	}

	for i, pick := range picks {
		if err := p.seriesDB.SetLink(series.ID, keys[i], pick.ID); err != nil {
			return nil, err
		}
	}

	for key, f := range p.flags {
		if f.PreExisting {
			if err := p.seriesDB.SetPreExisting(series.ID, key, true); err != nil {
				return nil, err
			}
		}
		if f.Irrelevant {
			if err := p.seriesDB.SetIrrelevant(series.ID, key, true); err != nil {
				return nil, err
			}
		}
	}

	return series, nil
}
