package state

import (
	"database/sql"
	"errors"
	"time"
)

// GetVolume returns the saved output level. ok is false if none was saved.
func (m *Manager) GetVolume() (level float64, ok bool, err error) {
	m.saveMu.Lock()
	pending := m.pendingVolume
	m.saveMu.Unlock()
	if pending != nil {
		return *pending, true, nil
	}
	return getVolume(m.db)
}

// SaveVolume persists the output level. Writes are debounced so that a burst
// of volume key presses results in one write; Close flushes a pending write.
func (m *Manager) SaveVolume(level float64) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingVolume = &level

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pendingVolume
		m.pendingVolume = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func getVolume(db *sql.DB) (float64, bool, error) {
	var level float64
	err := db.QueryRow(`SELECT level FROM volume_state WHERE id = 1`).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return level, true, nil
}

func saveVolume(db *sql.DB, level float64) error {
	_, err := db.Exec(`
		INSERT INTO volume_state (id, level) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET level = excluded.level
	`, level)
	return err
}
