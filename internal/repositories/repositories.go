// package repositories provides persistence layer implementations for all model types.
//
// Each repository handles CRUD operations, soft deletes, and sequence generation
// for a specific entity type (packs, songs, album series, settings).
package repositories

import (
	"database/sql"
	"fmt"
)

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers provide human-readable ordering for entities (e.g., pack #42) and
// double as the server-assigned series number for album series.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := nextSequenceTx(tx, table)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// nextSequenceTx increments a sequence inside an existing transaction.
func nextSequenceTx(tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	_, err := tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
