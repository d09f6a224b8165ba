//go:build unix

package stderr

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

type platformState struct {
	orig int
	r, w *os.File
	read chan struct{}
}

// Start redirects file descriptor 2 into a pipe. Call it before the audio
// backend is initialized. When it fails, nothing is redirected and the
// program can go on without capture.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	lines := make(chan string, lineBuffer)
	c := &Capture{
		Lines: lines,
		lines: lines,
		state: platformState{orig: orig, r: r, w: w, read: make(chan struct{})},
	}
	go c.forward()
	return c, nil
}

func (c *Capture) forward() {
	defer close(c.state.read)
	scanner := bufio.NewScanner(c.state.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
		}
	}
}

// Stop restores file descriptor 2 and closes Lines.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.state.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.state.orig)

	// Closing the last write end lets the reader drain and see EOF
	c.state.w.Close()
	<-c.state.read
	c.state.r.Close()
	close(c.lines)
}
