package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			language_code TEXT,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session_tracks (
			position INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS volume_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			level REAL NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: add loop column if missing
	_, _ = db.Exec(`ALTER TABLE session_config ADD COLUMN loop INTEGER NOT NULL DEFAULT 0`)

	return nil
}
