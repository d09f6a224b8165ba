// Package app contains the terminal UI hosting the playback controller.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ambience/internal/playback"
)

// PlaybackMessage is implemented by messages related to audio playback.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// TickMsg is sent periodically to refresh values not covered by events (volume).
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// ServiceStatusMsg carries a published controller snapshot.
type ServiceStatusMsg playback.Status

func (ServiceStatusMsg) playbackMessage() {}

// ServiceStateChangedMsg is sent when the controller phase changes.
type ServiceStateChangedMsg struct {
	Previous, Current playback.State
	Reason            playback.StopReason
}

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg is sent when the session moves to another track.
type ServiceTrackChangedMsg struct {
	PreviousIndex int
	CurrentIndex  int
}

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServiceErrorMsg is sent when a track fails to load or decode.
type ServiceErrorMsg struct {
	Operation string
	Path      string
	Err       error
}

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the controller is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// StderrMsg carries a line the audio backend wrote to stderr.
type StderrMsg struct {
	Line string
}
