// internal/playback/state.go
package playback

import "strings"

// State represents the controller phase.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a session is running (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// MarshalText encodes the state as its lowercase name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// AdvancePolicy decides what happens after the last track completes.
type AdvancePolicy int

const (
	// AdvanceWrap treats the playlist as a ring: the last track is followed
	// by the first one. Only the session length ends a session.
	AdvanceWrap AdvancePolicy = iota
	// AdvanceStopAtEnd stops the session after the last track unless loop
	// is enabled, in which case it wraps like AdvanceWrap.
	AdvanceStopAtEnd
)

// String returns the policy name as used in configuration files.
func (p AdvancePolicy) String() string {
	switch p {
	case AdvanceWrap:
		return "wrap"
	case AdvanceStopAtEnd:
		return "stop_at_end"
	default:
		return "unknown"
	}
}

// ParseAdvancePolicy converts a configuration string to a policy.
// Unknown values fall back to AdvanceWrap.
func ParseAdvancePolicy(s string) AdvancePolicy {
	if strings.EqualFold(strings.TrimSpace(s), AdvanceStopAtEnd.String()) {
		return AdvanceStopAtEnd
	}
	return AdvanceWrap
}
