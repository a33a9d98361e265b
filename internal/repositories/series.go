package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/shared"
)

// SeriesRepository manages album series records and their per-entry curation
// flags. A series' sequence doubles as its public series number.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new SeriesRepository with the given database connection
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

const seriesColumns = `
	id, sequence, artist_name, album_name, pack_id, year, cover_url, description,
	created_at, updated_at, deleted_at
`

// Create inserts a new album series. Artist and album names are stored in
// display form. Duplicate (artist, album) pairs map to [shared.ErrAlreadyExists].
func (r *SeriesRepository) Create(series *models.AlbumSeries) error {
	sequence, err := NextSequence(r.db, "album_series")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	series.ID = shared.GenerateID()
	series.Sequence = sequence
	series.ArtistName = models.Capitalize(series.ArtistName)
	series.AlbumName = models.Capitalize(series.AlbumName)

	if err := series.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	series.CreatedAt = now
	series.UpdatedAt = now

	query := `
		INSERT INTO album_series (
			id, sequence, artist_name, album_name, pack_id, year, cover_url,
			description, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		series.ID, series.Sequence, series.ArtistName, series.AlbumName,
		series.PackID, series.Year, series.CoverURL, series.Description, now, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: album series already exists: %s - %s",
				shared.ErrAlreadyExists, series.ArtistName, series.AlbumName)
		}
		return fmt.Errorf("failed to insert album series: %w", err)
	}

	return nil
}

// Get retrieves a series by ID, excluding soft-deleted series
func (r *SeriesRepository) Get(id string) (*models.AlbumSeries, error) {
	query := "SELECT " + seriesColumns + " FROM album_series WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByPack retrieves the series provisioned for a pack, if any
func (r *SeriesRepository) GetByPack(packID string) (*models.AlbumSeries, error) {
	query := "SELECT " + seriesColumns + " FROM album_series WHERE pack_id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, packID))
}

// GetByAlbum retrieves a series by its display artist and album names
func (r *SeriesRepository) GetByAlbum(artist, album string) (*models.AlbumSeries, error) {
	query := "SELECT " + seriesColumns + " FROM album_series WHERE artist_name = ? AND album_name = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, models.Capitalize(artist), models.Capitalize(album)))
}

// Update modifies an existing series in the database
func (r *SeriesRepository) Update(series *models.AlbumSeries) error {
	if err := series.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	series.UpdatedAt = now

	query := `
		UPDATE album_series
		SET artist_name = ?, album_name = ?, pack_id = ?, year = ?, cover_url = ?,
			description = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		series.ArtistName, series.AlbumName, series.PackID, series.Year,
		series.CoverURL, series.Description, now, series.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update album series: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: album series %s", shared.ErrNotFound, series.ID)
	}

	return nil
}

// Delete soft-deletes a series by ID
func (r *SeriesRepository) Delete(id string) error {
	now := time.Now()

	result, err := r.db.Exec(
		"UPDATE album_series SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete album series: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: album series %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all series, excluding soft-deleted ones, in sequence order
func (r *SeriesRepository) List(criteria map[string]any) ([]*models.AlbumSeries, error) {
	query := "SELECT " + seriesColumns + " FROM album_series WHERE deleted_at IS NULL"

	args := []any{}

	if artist, ok := criteria["artist_name"].(string); ok && artist != "" {
		query += " AND artist_name = ?"
		args = append(args, artist)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query album series: %w", err)
	}
	defer rows.Close()

	var all []*models.AlbumSeries
	for rows.Next() {
		series, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, series)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return all, nil
}

// ListFlags returns the curation flags for a series keyed by entry key.
func (r *SeriesRepository) ListFlags(seriesID string) (map[string]models.EntryFlags, error) {
	rows, err := r.db.Query(
		"SELECT entry_key, pre_existing, irrelevant, song_id FROM series_flags WHERE series_id = ?",
		seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query series flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]models.EntryFlags)
	for rows.Next() {
		var (
			key    string
			f      models.EntryFlags
			songID sql.NullString
		)
		if err := rows.Scan(&key, &f.PreExisting, &f.Irrelevant, &songID); err != nil {
			return nil, fmt.Errorf("failed to scan series flag: %w", err)
		}
		if songID.Valid {
			f.SongID = songID.String
		}
		flags[key] = f
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return flags, nil
}

// SetPreExisting upserts the pre-existing flag for an entry key.
func (r *SeriesRepository) SetPreExisting(seriesID, entryKey string, value bool) error {
	return r.upsertFlag(seriesID, entryKey, "pre_existing", value)
}

// SetIrrelevant upserts the irrelevant flag for an entry key.
func (r *SeriesRepository) SetIrrelevant(seriesID, entryKey string, value bool) error {
	return r.upsertFlag(seriesID, entryKey, "irrelevant", value)
}

func (r *SeriesRepository) upsertFlag(seriesID, entryKey, column string, value bool) error {
	query := fmt.Sprintf(`
		INSERT INTO series_flags (series_id, entry_key, %s, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(series_id, entry_key) DO UPDATE SET %s = excluded.%s, updated_at = excluded.updated_at
	`, column, column, column)

	if _, err := r.db.Exec(query, seriesID, entryKey, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set %s flag: %w", column, err)
	}

	return nil
}

// SetLink upserts the song link for an entry key. An empty songID clears the link.
func (r *SeriesRepository) SetLink(seriesID, entryKey, songID string) error {
	var link any = songID
	if songID == "" {
		link = nil
	}

	query := `
		INSERT INTO series_flags (series_id, entry_key, song_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(series_id, entry_key) DO UPDATE SET song_id = excluded.song_id, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, seriesID, entryKey, link, time.Now()); err != nil {
		return fmt.Errorf("failed to set song link: %w", err)
	}

	return nil
}

// BulkSetIrrelevant sets the irrelevant flag for many entry keys in one transaction.
func (r *SeriesRepository) BulkSetIrrelevant(seriesID string, entryKeys []string, value bool) error {
	if len(entryKeys) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO series_flags (series_id, entry_key, irrelevant, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(series_id, entry_key) DO UPDATE SET irrelevant = excluded.irrelevant, updated_at = excluded.updated_at
	`

	now := time.Now()
	for _, key := range entryKeys {
		if _, err := tx.Exec(query, seriesID, key, value, now); err != nil {
			return fmt.Errorf("failed to set irrelevant flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flag batch: %w", err)
	}

	return nil
}

// scanOne scans a single row into a [models.AlbumSeries]
func (r *SeriesRepository) scanOne(row *sql.Row) (*models.AlbumSeries, error) {
	var (
		series    models.AlbumSeries
		packID    sql.NullString
		year      sql.NullInt64
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&series.ID, &series.Sequence, &series.ArtistName, &series.AlbumName,
		&packID, &year, &series.CoverURL, &series.Description,
		&series.CreatedAt, &series.UpdatedAt, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: album series", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan album series: %w", err)
	}

	applySeriesNullables(&series, packID, year, deletedAt)
	return &series, nil
}

// scanRow scans a row from [sql.Rows] into a [models.AlbumSeries]
func (r *SeriesRepository) scanRow(rows *sql.Rows) (*models.AlbumSeries, error) {
	var (
		series    models.AlbumSeries
		packID    sql.NullString
		year      sql.NullInt64
		deletedAt sql.NullTime
	)

	err := rows.Scan(
		&series.ID, &series.Sequence, &series.ArtistName, &series.AlbumName,
		&packID, &year, &series.CoverURL, &series.Description,
		&series.CreatedAt, &series.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan album series: %w", err)
	}

	applySeriesNullables(&series, packID, year, deletedAt)
	return &series, nil
}

func applySeriesNullables(series *models.AlbumSeries, packID sql.NullString, year sql.NullInt64, deletedAt sql.NullTime) {
	if packID.Valid {
		series.PackID = packID.String
	}
	if year.Valid {
		y := int(year.Int64)
		series.Year = &y
	}
	if deletedAt.Valid {
		series.DeletedAt = &deletedAt.Time
	}
}
