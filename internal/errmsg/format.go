// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpSessionStart   Op = "start session"
	OpSessionStop    Op = "stop session"
	OpSessionRestore Op = "restore last session"
	OpSessionSave    Op = "save session"

	// Playback operations
	OpTrackLoad   Op = "load track"
	OpTrackDecode Op = "decode track"
	OpTrackSeek   Op = "restart track"
	OpTrackProbe  Op = "probe track"

	// Volume operations
	OpVolumeRestore Op = "restore volume"

	// Integrations
	OpMPRISStart Op = "start media key integration"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open state database"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// ForPlayback maps a playback error event operation to an Op.
func ForPlayback(operation string) Op {
	switch operation {
	case "load":
		return OpTrackLoad
	case "decode":
		return OpTrackDecode
	case "seek":
		return OpTrackSeek
	default:
		return OpSessionStart
	}
}
