package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/zjrosen/tint/internal/override"
)

// OverrideRepository persists override layers. The user layer is the
// usual tenant; the schema carries the layer column so application
// overrides can be persisted by hosts that want that.
type OverrideRepository struct {
	db *sql.DB
}

// NewOverrideRepository creates a repository over an open database.
func NewOverrideRepository(db *sql.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// Load returns every persisted override for a layer.
func (r *OverrideRepository) Load(layer override.Layer) (map[string]string, error) {
	rows, err := r.db.Query(`SELECT token, value FROM overrides WHERE layer = ?`, string(layer))
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var token, value string
		if err := rows.Scan(&token, &value); err != nil {
			return nil, fmt.Errorf("scanning override row: %w", err)
		}
		out[token] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating override rows: %w", err)
	}
	return out, nil
}

// Set upserts one override.
func (r *OverrideRepository) Set(layer override.Layer, token, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO overrides (layer, token, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (layer, token) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		string(layer), token, value,
	)
	if err != nil {
		return fmt.Errorf("saving override: %w", err)
	}
	return nil
}

// Delete removes one override. Deleting an absent token is not an error.
func (r *OverrideRepository) Delete(layer override.Layer, token string) error {
	if _, err := r.db.Exec(`DELETE FROM overrides WHERE layer = ? AND token = ?`, string(layer), token); err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}
	return nil
}

// Clear removes every override in a layer.
func (r *OverrideRepository) Clear(layer override.Layer) error {
	if _, err := r.db.Exec(`DELETE FROM overrides WHERE layer = ?`, string(layer)); err != nil {
		return fmt.Errorf("clearing overrides: %w", err)
	}
	return nil
}

// SaveSnapshot replaces a layer's persisted state with the given
// mapping in one transaction, so a crash never leaves half a snapshot.
func (r *OverrideRepository) SaveSnapshot(layer override.Layer, values map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM overrides WHERE layer = ?`, string(layer)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing layer for snapshot: %w", err)
	}
	for token, value := range values {
		if _, err := tx.Exec(
			`INSERT INTO overrides (layer, token, value) VALUES (?, ?, ?)`,
			string(layer), token, value,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting snapshot row %s: %w", token, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// SaveSetting upserts one settings key, used for the persisted theme
// selection.
func (r *OverrideRepository) SaveSetting(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	return nil
}

// LoadSetting returns a settings value, with found=false for absent keys.
func (r *OverrideRepository) LoadSetting(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading setting: %w", err)
	}
	return value, true, nil
}
