// Package stderr captures output that the audio backend writes directly to
// file descriptor 2, bypassing os.Stderr, so it cannot corrupt the TUI.
package stderr

// lineBuffer is how many captured lines are kept before new ones are dropped.
const lineBuffer = 100

// Capture holds a redirection of file descriptor 2.
type Capture struct {
	// Lines receives each non-empty captured line. It is closed by Stop.
	Lines <-chan string

	lines chan string
	state platformState
}
