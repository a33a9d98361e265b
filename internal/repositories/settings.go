package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Keys for user-level settings stored in the settings table.
const (
	SettingAutoEnrich = "auto_enrich"
)

// SettingsRepository stores per-user key/value settings. Values are nullable:
// a missing or NULL value means the setting was never chosen, which callers
// treat differently from an explicit false.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the given database connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the raw value for a key, or nil when the key is absent or NULL.
func (r *SettingsRepository) Get(key string) (*string, error) {
	var value sql.NullString

	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	if !value.Valid {
		return nil, nil
	}
	return &value.String, nil
}

// Set upserts the value for a key.
func (r *SettingsRepository) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}

	return nil
}

// AutoEnrich returns the catalog auto-enrichment preference. A nil result
// means the user never chose, which enrichment treats as enabled.
func (r *SettingsRepository) AutoEnrich() (*bool, error) {
	value, err := r.Get(SettingAutoEnrich)
	if err != nil || value == nil {
		return nil, err
	}

	enabled := *value == "true" || *value == "1"
	return &enabled, nil
}

// SetAutoEnrich records an explicit auto-enrichment choice.
func (r *SettingsRepository) SetAutoEnrich(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return r.Set(SettingAutoEnrich, value)
}
