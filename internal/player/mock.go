// internal/player/mock.go
package player

import (
	"errors"
	"sync"
)

// ErrMockSeek is returned by MockHandle.SeekToStart when seek failure is enabled.
var ErrMockSeek = errors.New("mock: seek failed")

// Mock is a test double for Engine. Handles it returns are *MockHandle.
type Mock struct {
	mu        sync.Mutex
	loadErrs  map[string]error
	seekFails bool
	loads     []string
	handles   []*MockHandle
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{loadErrs: make(map[string]error)}
}

func (m *Mock) Load(path string) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loads = append(m.loads, path)
	if err := m.loadErrs[path]; err != nil {
		return nil, err
	}
	h := &MockHandle{
		path:      path,
		state:     Loaded,
		done:      make(chan Completion, 1),
		seekFails: m.seekFails,
	}
	m.handles = append(m.handles, h)
	return h, nil
}

// Test helpers

// FailLoad makes every Load of path return err.
func (m *Mock) FailLoad(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErrs[path] = err
}

// FailSeeks makes SeekToStart fail on handles loaded afterwards.
func (m *Mock) FailSeeks(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekFails = fail
}

// Loads returns the paths passed to Load, in order.
func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loads))
	copy(out, m.loads)
	return out
}

// Handles returns every handle created so far, in order.
func (m *Mock) Handles() []*MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockHandle, len(m.handles))
	copy(out, m.handles)
	return out
}

// Current returns the most recently created handle, or nil.
func (m *Mock) Current() *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.handles) == 0 {
		return nil
	}
	return m.handles[len(m.handles)-1]
}

// MockHandle is a test double for Handle.
type MockHandle struct {
	mu         sync.Mutex
	path       string
	state      State
	done       chan Completion
	seekFails  bool
	playCalls  int
	pauseCalls int
	stopCalls  int
	seekCalls  int
}

func (h *MockHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playCalls++
	if h.state.CanPlay() {
		h.state = Playing
	}
}

func (h *MockHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pauseCalls++
	if h.state.CanPause() {
		h.state = Paused
	}
}

func (h *MockHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopCalls++
	h.state = Released
}

func (h *MockHandle) SeekToStart() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seekCalls++
	if h.seekFails {
		return ErrMockSeek
	}
	return nil
}

func (h *MockHandle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == Playing
}

func (h *MockHandle) Done() <-chan Completion {
	return h.done
}

// Test helpers

// Path returns the locator the handle was loaded from.
func (h *MockHandle) Path() string { return h.path }

// State returns the handle's lifecycle state.
func (h *MockHandle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Finish simulates the track ending. A nil err means it played to the end.
func (h *MockHandle) Finish(err error) {
	select {
	case h.done <- Completion{Path: h.path, Err: err}:
	default:
	}
}

func (h *MockHandle) PlayCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playCalls
}

func (h *MockHandle) PauseCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pauseCalls
}

func (h *MockHandle) StopCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopCalls
}

func (h *MockHandle) SeekCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seekCalls
}

// Verify mocks implement the interfaces at compile time.
var (
	_ Engine = (*Mock)(nil)
	_ Handle = (*MockHandle)(nil)
)
