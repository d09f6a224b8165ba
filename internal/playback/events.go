package playback

// StateChange is emitted when the controller phase changes.
type StateChange struct {
	Previous State
	Current  State
	Reason   StopReason // set when Current is StateStopped
}

// StopReason tells why a session ended.
type StopReason int

const (
	StopNone          StopReason = iota
	StopRequested                // Stop or Close
	StopSessionLength            // session length reached with loop off
	StopEndOfPlaylist            // last track finished under AdvanceStopAtEnd
	StopUnplayable               // no track of the playlist could be loaded
)

// String returns the reason name for logs.
func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopRequested:
		return "requested"
	case StopSessionLength:
		return "session_length"
	case StopEndOfPlaylist:
		return "end_of_playlist"
	case StopUnplayable:
		return "unplayable"
	default:
		return "unknown"
	}
}

// TrackChange is emitted when a session starts on a track or moves to another one.
//
// Emitted by:
//   - Play: when the session starts (PreviousIndex is -1)
//   - track completion and decode errors: when the ring advances
//   - loop restart after a failed seek: when the current track is reloaded
//
// NOT emitted by pause, resume, loop toggles or stop.
type TrackChange struct {
	SessionID     string
	PreviousIndex int
	Index         int
	Path          string
}

// Operation names used in ErrorEvent.
const (
	OpLoad   = "load"
	OpDecode = "decode"
	OpSeek   = "seek"
	OpPlay   = "play"
)

// ErrorEvent reports a non-fatal playback failure. Failures never fail the
// command that triggered them; this is the only place they surface.
type ErrorEvent struct {
	Operation string // one of the Op constants
	Path      string // track locator if applicable
	Err       error
}
