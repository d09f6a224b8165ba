// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Session actions
	ActionPlay         Action = "play"        // start a fresh session
	ActionPlayPause    Action = "play_pause"  // pause/resume, or start when idle
	ActionStop         Action = "stop"        // end the session
	ActionToggleLoop   Action = "toggle_loop" // loop at session length
	ActionVolumeUp     Action = "volume_up"   // capped by the volume ceiling
	ActionVolumeDown   Action = "volume_down"
	ActionShowPlaylist Action = "show_playlist"
)
