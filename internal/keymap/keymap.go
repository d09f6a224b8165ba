// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "playback"
}

// All contains all key bindings, in help display order.
var All = []Binding{
	// Playback
	{ActionPlayPause, []string{" "}, "Pause/resume", "playback"},
	{ActionPlay, []string{"p", "enter"}, "Restart session", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionToggleLoop, []string{"l"}, "Toggle loop", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},

	// Global
	{ActionShowPlaylist, []string{"t"}, "Show playlist", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
