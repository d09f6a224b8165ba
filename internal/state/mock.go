// internal/state/mock.go
package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu      sync.Mutex
	session *SavedSession
	volume  *float64
	saves   int
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) LastSession() (*SavedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveSession(s SavedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	m.saves++
	return nil
}

func (m *Mock) GetVolume() (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.volume == nil {
		return 0, false, nil
	}
	return *m.volume, true, nil
}

func (m *Mock) SaveVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = &level
}

func (m *Mock) Close() error {
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *SavedSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
}

func (m *Mock) SessionSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
