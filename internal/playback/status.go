package playback

import "time"

// SessionConfig is the host-provided description of the next session.
// A running session keeps its own copy; changes apply on the next Play.
type SessionConfig struct {
	Tracks          []string
	DurationSeconds int    // 0 disables the session-length stop
	LanguageCode    string // passed through untouched
}

// Status is an immutable snapshot of the controller, published on every
// state change and every status tick.
type Status struct {
	SessionID       string `json:"sessionId,omitempty"`
	State           State  `json:"state"`
	Playing         bool   `json:"isPlaying"`
	TrackIndex      int    `json:"currentTrackIndex"`
	Track           string `json:"track,omitempty"`
	TrackCount      int    `json:"trackCount"`
	DurationSeconds int    `json:"durationSeconds"`
	ElapsedSeconds  int    `json:"elapsedSeconds"`
	Loop            bool   `json:"loopEnabled"`
}

// Remaining returns the time left before the session-length boundary,
// or 0 when the session has no length limit.
func (s Status) Remaining() time.Duration {
	if s.DurationSeconds <= 0 {
		return 0
	}
	left := max(s.DurationSeconds-s.ElapsedSeconds, 0)
	return time.Duration(left) * time.Second
}

// StatusSink receives every published snapshot.
// Publish is called from the controller goroutine and must not block or call
// back into the controller synchronously.
type StatusSink interface {
	Publish(Status)
}

// StatusSinkFunc adapts a function to StatusSink.
type StatusSinkFunc func(Status)

// Publish calls f(s).
func (f StatusSinkFunc) Publish(s Status) { f(s) }
