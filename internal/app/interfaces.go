package app

import "github.com/llehouerou/ambience/internal/playback"

// Controller is the playback controller as seen by the UI.
type Controller interface {
	Play() error
	TogglePause() error
	ToggleLoop() error
	Stop() error
	Status() playback.Status
	Playlist() (tracks []string, durationSeconds int)
	LanguageCode() string
	Subscribe() *playback.Subscription
}

var _ Controller = (*playback.Controller)(nil)
