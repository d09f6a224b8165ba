// internal/state/interface.go
package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	LastSession() (*SavedSession, error)
	SaveSession(s SavedSession) error
	GetVolume() (level float64, ok bool, err error)
	SaveVolume(level float64)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
