package state

import (
	"database/sql"
	"errors"
	"time"
)

// SavedSession is the last playlist configuration the host set.
// Playback position is never stored.
type SavedSession struct {
	Tracks          []string
	DurationSeconds int
	LanguageCode    string
	Loop            bool
	SavedAt         time.Time
}

// LastSession returns the saved session, or nil if none was saved.
func (m *Manager) LastSession() (*SavedSession, error) {
	return getSession(m.db)
}

// SaveSession replaces the saved session.
func (m *Manager) SaveSession(s SavedSession) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	return saveSession(m.db, s)
}

func getSession(db *sql.DB) (*SavedSession, error) {
	var s SavedSession
	var lang sql.NullString
	var savedAt int64

	row := db.QueryRow(`SELECT duration_seconds, language_code, loop, saved_at FROM session_config WHERE id = 1`)
	err := row.Scan(&s.DurationSeconds, &lang, &s.Loop, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	s.LanguageCode = lang.String
	s.SavedAt = time.Unix(savedAt, 0)

	rows, err := db.Query(`SELECT path FROM session_tracks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		s.Tracks = append(s.Tracks, path)
	}

	return &s, rows.Err()
}

func saveSession(db *sql.DB, s SavedSession) error {
	return withTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM session_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO session_config (id, duration_seconds, language_code, loop, saved_at)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				duration_seconds = excluded.duration_seconds,
				language_code = excluded.language_code,
				loop = excluded.loop,
				saved_at = excluded.saved_at
		`, s.DurationSeconds, nullString(s.LanguageCode), s.Loop, s.SavedAt.Unix())
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO session_tracks (position, path) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, path := range s.Tracks {
			if _, err := stmt.Exec(i, path); err != nil {
				return err
			}
		}
		return nil
	})
}
