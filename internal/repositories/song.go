package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/shared"
)

// SongRepository implements models.Repository[*models.Song].
//
// Handles song CRUD operations with soft delete support, all-or-nothing batch
// creation (including implicit pack creation), and batched title cleanup.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

const songColumns = `
	id, sequence, title, artist, album, pack_id, status, series_id,
	series_number, year, cover_url, progress, created_at, updated_at, deleted_at
`

// Create inserts a new song into the database with generated ID and sequence
func (r *SongRepository) Create(song *models.Song) error {
	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	song.ID = shared.GenerateID()
	song.Sequence = sequence
	if song.Status == "" {
		song.Status = models.StatusFuturePlans
	}
	if song.Progress == "" {
		song.Progress = "{}"
	}

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.CreatedAt = now
	song.UpdatedAt = now

	if err := insertSong(r.db, song); err != nil {
		return err
	}

	return nil
}

// CreateBatch creates every song in one transaction under the named pack,
// creating the pack first when it does not exist. The operation is
// all-or-nothing: any failure rolls back both the songs and an implicitly
// created pack, so no partial batch is ever visible.
func (r *SongRepository) CreateBatch(packName string, priority *int, songs []*models.Song) (*models.Pack, error) {
	if len(songs) == 0 {
		return nil, fmt.Errorf("%w: no songs to create", shared.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pack, err := getOrCreatePackTx(tx, packName, priority)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, song := range songs {
		sequence, err := nextSequenceTx(tx, "songs")
		if err != nil {
			return nil, err
		}

		song.ID = shared.GenerateID()
		song.Sequence = sequence
		song.PackID = pack.ID
		if song.Status == "" {
			song.Status = models.StatusFuturePlans
		}
		if song.Progress == "" {
			song.Progress = "{}"
		}
		song.CreatedAt = now
		song.UpdatedAt = now

		if err := song.Validate(); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		if err := insertSong(tx, song); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit song batch: %w", err)
	}

	return pack, nil
}

// execer abstracts *sql.DB and *sql.Tx for shared insert/lookup helpers.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func insertSong(e execer, song *models.Song) error {
	query := `
		INSERT INTO songs (
			id, sequence, title, artist, album, pack_id, status, series_id,
			series_number, year, cover_url, progress, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var seriesID any = song.SeriesID
	if song.SeriesID == "" {
		seriesID = nil
	}

	_, err := e.Exec(query,
		song.ID,
		song.Sequence,
		song.Title,
		song.Artist,
		song.Album,
		song.PackID,
		song.Status,
		seriesID,
		song.SeriesNumber,
		song.Year,
		song.CoverURL,
		song.Progress,
		song.CreatedAt,
		song.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: song already exists in pack: %s - %s", shared.ErrAlreadyExists, song.Artist, song.Title)
		}
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

func getOrCreatePackTx(tx *sql.Tx, name string, priority *int) (*models.Pack, error) {
	var pack models.Pack
	var prio sql.NullInt64

	err := tx.QueryRow(
		"SELECT id, sequence, name, priority FROM packs WHERE name = ? AND deleted_at IS NULL", name,
	).Scan(&pack.ID, &pack.Sequence, &pack.Name, &prio)
	if err == nil {
		if prio.Valid {
			p := int(prio.Int64)
			pack.Priority = &p
		}
		return &pack, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up pack: %w", err)
	}

	sequence, err := nextSequenceTx(tx, "packs")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pack = models.Pack{ID: shared.GenerateID(), Sequence: sequence, Name: name, Priority: priority}
	pack.CreatedAt = now
	pack.UpdatedAt = now

	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO packs (id, sequence, name, priority, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		pack.ID, pack.Sequence, pack.Name, pack.Priority, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pack: %w", err)
	}

	return &pack, nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing song in the database
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.UpdatedAt = now

	query := `
		UPDATE songs
		SET title = ?, artist = ?, album = ?, pack_id = ?, status = ?, series_id = ?,
			series_number = ?, year = ?, cover_url = ?, progress = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var seriesID any = song.SeriesID
	if song.SeriesID == "" {
		seriesID = nil
	}

	result, err := r.db.Exec(query,
		song.Title,
		song.Artist,
		song.Album,
		song.PackID,
		song.Status,
		seriesID,
		song.SeriesNumber,
		song.Year,
		song.CoverURL,
		song.Progress,
		now,
		song.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: song %s", shared.ErrNotFound, song.ID)
	}

	return nil
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: song %s", shared.ErrNotFound, id)
	}

	return nil
}

// ListPackSongs retrieves all songs belonging to a pack in creation order.
func (r *SongRepository) ListPackSongs(packID string) ([]*models.Song, error) {
	return r.List(map[string]any{"pack_id": packID})
}

// List retrieves all songs matching the given criteria, excluding soft-deleted songs
func (r *SongRepository) List(criteria map[string]any) ([]*models.Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE deleted_at IS NULL"

	args := []any{}

	if packID, ok := criteria["pack_id"].(string); ok && packID != "" {
		query += " AND pack_id = ?"
		args = append(args, packID)
	}

	if seriesID, ok := criteria["series_id"].(string); ok && seriesID != "" {
		query += " AND series_id = ?"
		args = append(args, seriesID)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// CleanTitles strips remaster/edition tags from the titles of the given songs
// in a single transaction.
func (r *SongRepository) CleanTitles(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, id := range ids {
		var title string
		err := tx.QueryRow("SELECT title FROM songs WHERE id = ? AND deleted_at IS NULL", id).Scan(&title)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: song %s", shared.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to read song title: %w", err)
		}

		cleaned := models.CleanTitle(title)
		if cleaned == title {
			continue
		}

		if _, err := tx.Exec("UPDATE songs SET title = ?, updated_at = ? WHERE id = ?", cleaned, now, id); err != nil {
			return fmt.Errorf("failed to clean song title: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit title cleanup: %w", err)
	}

	return nil
}

// AssignSeries links every song of a pack to the given series and number.
func (r *SongRepository) AssignSeries(packID, seriesID string, seriesNumber int) error {
	query := `
		UPDATE songs
		SET series_id = ?, series_number = ?, updated_at = ?
		WHERE pack_id = ? AND deleted_at IS NULL
	`

	if _, err := r.db.Exec(query, seriesID, seriesNumber, time.Now(), packID); err != nil {
		return fmt.Errorf("failed to assign series: %w", err)
	}

	return nil
}

// scanOne scans a single row into a [models.Song]
func (r *SongRepository) scanOne(row *sql.Row) (*models.Song, error) {
	var (
		song         models.Song
		seriesID     sql.NullString
		seriesNumber sql.NullInt64
		year         sql.NullInt64
		deletedAt    sql.NullTime
	)

	err := row.Scan(
		&song.ID, &song.Sequence, &song.Title, &song.Artist, &song.Album,
		&song.PackID, &song.Status, &seriesID, &seriesNumber, &year,
		&song.CoverURL, &song.Progress, &song.CreatedAt, &song.UpdatedAt, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: song", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	applySongNullables(&song, seriesID, seriesNumber, year, deletedAt)
	return &song, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Song]
func (r *SongRepository) scanRow(rows *sql.Rows) (*models.Song, error) {
	var (
		song         models.Song
		seriesID     sql.NullString
		seriesNumber sql.NullInt64
		year         sql.NullInt64
		deletedAt    sql.NullTime
	)

	err := rows.Scan(
		&song.ID, &song.Sequence, &song.Title, &song.Artist, &song.Album,
		&song.PackID, &song.Status, &seriesID, &seriesNumber, &year,
		&song.CoverURL, &song.Progress, &song.CreatedAt, &song.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	applySongNullables(&song, seriesID, seriesNumber, year, deletedAt)
	return &song, nil
}

func applySongNullables(song *models.Song, seriesID sql.NullString, seriesNumber, year sql.NullInt64, deletedAt sql.NullTime) {
	if seriesID.Valid {
		song.SeriesID = seriesID.String
	}
	if seriesNumber.Valid {
		n := int(seriesNumber.Int64)
		song.SeriesNumber = &n
	}
	if year.Valid {
		y := int(year.Int64)
		song.Year = &y
	}
	if deletedAt.Valid {
		song.DeletedAt = &deletedAt.Time
	}
}
