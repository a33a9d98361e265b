package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/shared"
)

// PackRepository implements models.Repository[*models.Pack].
//
// Handles pack CRUD operations with soft delete support and name-based lookups.
type PackRepository struct {
	db *sql.DB
}

// NewPackRepository creates a new PackRepository with the given database connection
func NewPackRepository(db *sql.DB) *PackRepository {
	return &PackRepository{db: db}
}

// Create inserts a new pack into the database with generated ID and sequence
func (r *PackRepository) Create(pack *models.Pack) error {
	sequence, err := NextSequence(r.db, "packs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	pack.ID = shared.GenerateID()
	pack.Sequence = sequence

	if err := pack.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	pack.CreatedAt = now
	pack.UpdatedAt = now

	query := `
		INSERT INTO packs (id, sequence, name, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, pack.ID, pack.Sequence, pack.Name, pack.Priority, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: pack %q already exists", shared.ErrAlreadyExists, pack.Name)
		}
		return fmt.Errorf("failed to insert pack: %w", err)
	}

	return nil
}

// Get retrieves a pack by ID, excluding soft-deleted packs
func (r *PackRepository) Get(id string) (*models.Pack, error) {
	query := `
		SELECT id, sequence, name, priority, created_at, updated_at, deleted_at
		FROM packs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByName retrieves a pack by its exact name, excluding soft-deleted packs
func (r *PackRepository) GetByName(name string) (*models.Pack, error) {
	query := `
		SELECT id, sequence, name, priority, created_at, updated_at, deleted_at
		FROM packs
		WHERE name = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, name))
}

// Update modifies an existing pack in the database
func (r *PackRepository) Update(pack *models.Pack) error {
	if err := pack.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	pack.UpdatedAt = now

	query := `
		UPDATE packs
		SET name = ?, priority = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, pack.Name, pack.Priority, now, pack.ID)
	if err != nil {
		return fmt.Errorf("failed to update pack: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: pack %s", shared.ErrNotFound, pack.ID)
	}

	return nil
}

// Delete soft-deletes a pack by ID
func (r *PackRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE packs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete pack: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: pack %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all packs matching the given criteria, excluding soft-deleted packs.
// Packs with a priority sort before those without, then by sequence.
func (r *PackRepository) List(criteria map[string]any) ([]*models.Pack, error) {
	query := `
		SELECT id, sequence, name, priority, created_at, updated_at, deleted_at
		FROM packs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY priority IS NULL, priority ASC, sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query packs: %w", err)
	}
	defer rows.Close()

	var packs []*models.Pack
	for rows.Next() {
		pack, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return packs, nil
}

// scanOne scans a single row into a [models.Pack]
func (r *PackRepository) scanOne(row *sql.Row) (*models.Pack, error) {
	var (
		pack      models.Pack
		priority  sql.NullInt64
		deletedAt sql.NullTime
	)

	err := row.Scan(&pack.ID, &pack.Sequence, &pack.Name, &priority, &pack.CreatedAt, &pack.UpdatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: pack", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan pack: %w", err)
	}

	if priority.Valid {
		p := int(priority.Int64)
		pack.Priority = &p
	}
	if deletedAt.Valid {
		pack.DeletedAt = &deletedAt.Time
	}

	return &pack, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Pack]
func (r *PackRepository) scanRow(rows *sql.Rows) (*models.Pack, error) {
	var (
		pack      models.Pack
		priority  sql.NullInt64
		deletedAt sql.NullTime
	)

	err := rows.Scan(&pack.ID, &pack.Sequence, &pack.Name, &priority, &pack.CreatedAt, &pack.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pack: %w", err)
	}

	if priority.Valid {
		p := int(priority.Int64)
		pack.Priority = &p
	}
	if deletedAt.Valid {
		pack.DeletedAt = &deletedAt.Time
	}

	return &pack, nil
}
