package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ambience/internal/config"
	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/player"
	"github.com/llehouerou/ambience/internal/state"
)

func durationFlag(d time.Duration) *time.Duration { return &d }

func TestResolveSession_Precedence(t *testing.T) {
	saved := &state.SavedSession{
		Tracks:          []string{"/saved/wind.mp3"},
		DurationSeconds: 600,
		LanguageCode:    "ca",
		Loop:            true,
	}

	t.Run("arguments win over everything", func(t *testing.T) {
		cfg := &config.Config{Session: config.SessionConfig{
			Tracks:          []string{"/config/rain.mp3"},
			DurationSeconds: 300,
			LanguageCode:    "fr",
		}}

		sess, loop := resolveSession(cfg, saved, []string{"/args/sea.flac"}, sessionFlags{})
		assert.Equal(t, []string{"/args/sea.flac"}, sess.Tracks)
		assert.Equal(t, 300, sess.DurationSeconds)
		assert.Equal(t, "fr", sess.LanguageCode)
		assert.False(t, loop)
	})

	t.Run("configured session over saved one", func(t *testing.T) {
		cfg := &config.Config{Session: config.SessionConfig{
			Tracks: []string{"/config/rain.mp3"},
			Loop:   true,
		}}

		sess, loop := resolveSession(cfg, saved, nil, sessionFlags{})
		assert.Equal(t, []string{"/config/rain.mp3"}, sess.Tracks)
		assert.Equal(t, "en", sess.LanguageCode)
		assert.True(t, loop)
	})

	t.Run("saved session restored", func(t *testing.T) {
		sess, loop := resolveSession(&config.Config{}, saved, nil, sessionFlags{})
		assert.Equal(t, playback.SessionConfig{
			Tracks:          []string{"/saved/wind.mp3"},
			DurationSeconds: 600,
			LanguageCode:    "ca",
		}, sess)
		assert.True(t, loop)
	})

	t.Run("nothing to play", func(t *testing.T) {
		sess, loop := resolveSession(&config.Config{}, nil, nil, sessionFlags{})
		assert.Empty(t, sess.Tracks)
		assert.Equal(t, "en", sess.LanguageCode)
		assert.False(t, loop)
	})
}

func TestResolveSession_FlagOverrides(t *testing.T) {
	saved := &state.SavedSession{
		Tracks:          []string{"/saved/wind.mp3"},
		DurationSeconds: 600,
		LanguageCode:    "ca",
	}

	sess, loop := resolveSession(&config.Config{}, saved, nil, sessionFlags{
		duration: durationFlag(90*time.Second + 500*time.Millisecond),
		lang:     "es-MX",
		loop:     true,
	})
	assert.Equal(t, 90, sess.DurationSeconds)
	assert.Equal(t, "es", sess.LanguageCode)
	assert.True(t, loop)

	sess, _ = resolveSession(&config.Config{}, saved, nil, sessionFlags{duration: durationFlag(0)})
	assert.Zero(t, sess.DurationSeconds, "an explicit zero clears the saved length")
}

func TestControllerOptions(t *testing.T) {
	cfg := &config.Config{
		Playback: config.PlaybackConfig{Advance: "stop_at_end", StatusIntervalMS: 250},
		Volume:   config.VolumeConfig{Ceiling: 0.4, CheckIntervalMS: 100},
	}

	opts := controllerOptions(cfg, sessionFlags{}, true)
	assert.Equal(t, playback.Options{
		ElapsedInterval: time.Second,
		StatusInterval:  250 * time.Millisecond,
		VolumeInterval:  100 * time.Millisecond,
		Ceiling:         0.4,
		Advance:         playback.AdvanceStopAtEnd,
		Loop:            true,
	}, opts)

	opts = controllerOptions(cfg, sessionFlags{advance: "wrap"}, false)
	assert.Equal(t, playback.AdvanceWrap, opts.Advance)
	assert.False(t, opts.Loop)
}

func TestInitialLevel(t *testing.T) {
	vc := config.VolumeConfig{Ceiling: 0.6, Initial: 0.3}

	assert.InDelta(t, 0.3, initialLevel(nil, vc), 1e-9)

	store := state.NewMock()
	assert.InDelta(t, 0.3, initialLevel(store, vc), 1e-9, "nothing saved yet")

	store.SaveVolume(0.45)
	assert.InDelta(t, 0.45, initialLevel(store, vc), 1e-9)

	store.SaveVolume(0.9)
	assert.InDelta(t, 0.6, initialLevel(store, vc), 1e-9, "saved level above the ceiling is capped")
}

func TestSavedSession(t *testing.T) {
	store := state.NewMock()
	stored := &state.SavedSession{Tracks: []string{"/saved/wind.mp3"}, DurationSeconds: 600}
	store.SetSession(stored)

	assert.Equal(t, stored, savedSession(&config.Config{}, store, nil))
	assert.Nil(t, savedSession(&config.Config{}, nil, nil))
	assert.Nil(t, savedSession(&config.Config{}, store, []string{"/args/sea.flac"}))

	withDefault := &config.Config{Session: config.SessionConfig{Tracks: []string{"/config/rain.mp3"}}}
	assert.Nil(t, savedSession(withDefault, store, nil))

	disabled := false
	noRestore := &config.Config{State: config.StateConfig{Restore: &disabled}}
	assert.Nil(t, savedSession(noRestore, store, nil))
}

func TestPersistSession(t *testing.T) {
	store := state.NewMock()

	persistSession(store, playback.SessionConfig{}, false)
	assert.Equal(t, 0, store.SessionSaves(), "empty playlists are not stored")

	persistSession(nil, playback.SessionConfig{Tracks: []string{"/a.mp3"}}, false)

	persistSession(store, playback.SessionConfig{
		Tracks:          []string{"/a.mp3", "/b.flac"},
		DurationSeconds: 900,
		LanguageCode:    "es",
	}, true)
	require.Equal(t, 1, store.SessionSaves())

	got, err := store.LastSession()
	require.NoError(t, err)
	assert.Equal(t, &state.SavedSession{
		Tracks:          []string{"/a.mp3", "/b.flac"},
		DurationSeconds: 900,
		LanguageCode:    "es",
		Loop:            true,
	}, got)
}

// brokenStore fails every read and write.
type brokenStore struct{ err error }

func (b brokenStore) LastSession() (*state.SavedSession, error) { return nil, b.err }
func (b brokenStore) SaveSession(state.SavedSession) error { return b.err }
func (b brokenStore) GetVolume() (float64, bool, error) { return 0.9, true, b.err }
func (b brokenStore) SaveVolume(float64) {}
func (b brokenStore) Close() error { return b.err }

func TestStoreFailuresAreLoggedNotFatal(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	var buf bytes.Buffer
	logger.Init("warn", false, &buf)
	t.Cleanup(func() {
		logger.Log = zerolog.Nop()
		zerolog.SetGlobalLevel(prevLevel)
	})

	store := brokenStore{err: errors.New("database is locked")}
	vc := config.VolumeConfig{Ceiling: 0.6, Initial: 0.3}

	assert.Nil(t, savedSession(&config.Config{}, store, nil))
	persistSession(store, playback.SessionConfig{Tracks: []string{"/a.mp3"}}, false)
	assert.InDelta(t, 0.3, initialLevel(store, vc), 1e-9, "a failed read keeps the configured level")

	out := buf.String()
	assert.Contains(t, out, "restore last session")
	assert.Contains(t, out, "save session")
	assert.Contains(t, out, "restore volume")
	assert.Equal(t, 3, strings.Count(out, `"component":"cli"`))
}

func TestJSONLinesSink(t *testing.T) {
	var buf bytes.Buffer
	sink := jsonLinesSink(&buf)

	sink.Publish(playback.Status{State: playback.StatePlaying, Playing: true, TrackIndex: 1, TrackCount: 3})
	sink.Publish(playback.Status{State: playback.StateStopped, TrackCount: 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "playing", first["state"])
	assert.Equal(t, true, first["isPlaying"])
	assert.InDelta(t, 1, first["currentTrackIndex"], 0)
	assert.Contains(t, lines[1], `"state":"stopped"`)
}

func TestReportPlaybackError(t *testing.T) {
	err := reportPlaybackError(playback.ErrorEvent{
		Operation: playback.OpDecode,
		Path:      "/sounds/broken.mp3",
		Err:       errors.New("bad frame"),
	})
	assert.NoError(t, err, "track failures do not end a headless run")

	err = reportPlaybackError(playback.ErrorEvent{
		Operation: playback.OpPlay,
		Err:       playback.ErrNoPlayableTrack,
	})
	require.Error(t, err)
}

func TestRunHeadless_NoPlayableTrackExitsWithError(t *testing.T) {
	engine := player.NewMock()
	tracks := make([]string, 40)
	for i := range tracks {
		tracks[i] = fmt.Sprintf("/sounds/missing-%02d.mp3", i)
		engine.FailLoad(tracks[i], player.ErrUnsupportedFormat)
	}
	ctrl := playback.New(engine, nil, nil, playback.Options{})
	t.Cleanup(func() { _ = ctrl.Close() })
	require.NoError(t, ctrl.SetPlaylist(tracks, 0, "en"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runHeadless(ctx, ctrl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), playback.ErrNoPlayableTrack.Error())
	assert.NoError(t, ctx.Err(), "returned before the deadline")
}

func TestDrainPlaybackErrors(t *testing.T) {
	engine := player.NewMock()
	engine.FailLoad("/sounds/a.mp3", player.ErrUnsupportedFormat)
	ctrl := playback.New(engine, nil, nil, playback.Options{})
	t.Cleanup(func() { _ = ctrl.Close() })
	require.NoError(t, ctrl.SetPlaylist([]string{"/sounds/a.mp3"}, 0, "en"))

	sub := ctrl.Subscribe()
	assert.NoError(t, drainPlaybackErrors(sub), "nothing queued yet")

	require.NoError(t, ctrl.Play())
	require.Eventually(t, func() bool { return len(sub.Error) == 2 }, time.Second, time.Millisecond)
	require.Error(t, drainPlaybackErrors(sub))
}

func TestFormatProbe(t *testing.T) {
	info := &player.Info{
		Path:       "/sounds/rain.flac",
		Format:     "FLAC",
		SampleRate: 48000,
		Duration:   3*time.Minute + 25*time.Second + 400*time.Millisecond,
	}

	got := formatProbe(info, player.Tags{Title: "Rain", Artist: "Field Recordings"})
	assert.Contains(t, got, "FLAC")
	assert.Contains(t, got, "48,000 Hz")
	assert.Contains(t, got, "3m25s")
	assert.Contains(t, got, "Field Recordings - Rain")
	assert.Contains(t, got, "(/sounds/rain.flac)")
}
