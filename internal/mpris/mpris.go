//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/player"
	"github.com/llehouerou/ambience/internal/volume"
)

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. vol may be nil, in which case
// volume changes from the desktop are ignored.
func New(ctrl Controller, vol volume.Monitor) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("ambience", &rootAdapter{}, &playerAdapter{ctrl: ctrl, vol: vol}),
	}

	log := logger.Component("mpris")
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Ambience", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and LoopStatus.
type playerAdapter struct {
	ctrl Controller
	vol  volume.Monitor
}

// Next is not supported: sessions advance on track completion only.
func (p *playerAdapter) Next() error {
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil // Not supported
}

func (p *playerAdapter) Pause() error {
	return p.ctrl.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.ctrl.PlayPause()
}

func (p *playerAdapter) Stop() error {
	return p.ctrl.Stop()
}

func (p *playerAdapter) Play() error {
	return p.ctrl.Resume()
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctrl.Status().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateIdle, playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.ctrl.Status()
	if !st.State.IsActive() || st.Track == "" {
		return types.Metadata{}, nil
	}

	tags := player.ReadTags(st.Track)
	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(st.SessionID, st.Track)),
		Title:       tags.Title,
		Album:       tags.Album,
		TrackNumber: st.TrackIndex + 1,
	}
	if tags.Artist != "" {
		meta.Artist = []string{tags.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.vol == nil {
		return 1.0, nil
	}
	return p.vol.Level(), nil
}

// SetVolume forwards the level; the controller's guard pulls it back under
// the ceiling on its next check.
func (p *playerAdapter) SetVolume(level float64) error {
	if p.vol == nil {
		return nil
	}
	p.vol.SetLevel(min(max(level, 0), 1))
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil // Track position is not tracked
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctrl.Status().TrackCount > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctrl.Status().State.IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.ctrl.Status().Loop {
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Track and Playlist both enable the session loop.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	want := status != types.LoopStatusNone
	if p.ctrl.Status().Loop == want {
		return nil
	}
	return p.ctrl.ToggleLoop()
}

func formatTrackID(sessionID, path string) string {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
