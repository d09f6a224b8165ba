package mpris

import "github.com/llehouerou/ambience/internal/playback"

// Controller is the subset of the playback controller driven by media keys.
type Controller interface {
	Pause() error
	Resume() error
	PlayPause() error
	ToggleLoop() error
	Stop() error
	Status() playback.Status
}

var _ Controller = (*playback.Controller)(nil)
