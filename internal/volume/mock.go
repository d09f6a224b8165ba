package volume

import "sync"

// Mock is a test double for Monitor that records SetLevel calls.
type Mock struct {
	mu       sync.Mutex
	level    float64
	setCalls []float64
}

// NewMock creates a mock monitor reporting the given level.
func NewMock(level float64) *Mock {
	return &Mock{level: level}
}

func (m *Mock) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Mock) SetLevel(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	m.setCalls = append(m.setCalls, level)
}

// Test helpers

// Raise simulates the user changing the level without recording a SetLevel call.
func (m *Mock) Raise(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
}

// SetCalls returns a copy of the levels passed to SetLevel.
func (m *Mock) SetCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.setCalls))
	copy(out, m.setCalls)
	return out
}

// Verify Mock implements Monitor at compile time.
var _ Monitor = (*Mock)(nil)
