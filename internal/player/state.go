// internal/player/state.go
package player

// State is the lifecycle of a single track handle.
//
//	┌──────────┐   Play    ┌──────────┐
//	│  Loaded  │ ─────────▶│  Playing │◀──┐
//	└──────────┘           └──────────┘   │ Play
//	     │                      │ Pause   │
//	     │                      ▼         │
//	     │                 ┌──────────┐   │
//	     │                 │  Paused  │───┘
//	     │                 └──────────┘
//	     │ Stop                 │ Stop
//	     ▼                      ▼
//	┌──────────────────────────────────┐
//	│             Released             │
//	└──────────────────────────────────┘
//
// A handle never leaves Released. Play on a Loaded or Paused handle starts
// or resumes output; Pause on anything but Playing is ignored.
type State int

const (
	Loaded State = iota
	Playing
	Paused
	Released
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// CanPlay returns true if the state allows starting or resuming output.
func (s State) CanPlay() bool {
	return s == Loaded || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}
