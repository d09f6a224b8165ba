package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/ambience/internal/icons"
	"github.com/llehouerou/ambience/internal/playback"
)

func TestNewState(t *testing.T) {
	st := playback.Status{
		SessionID:       "s1",
		State:           playback.StatePaused,
		TrackIndex:      1,
		Track:           "/sounds/nature/waves.flac",
		TrackCount:      3,
		DurationSeconds: 600,
		ElapsedSeconds:  90,
		Loop:            true,
	}

	s := NewState(st, 0.4, 0.6)

	assert.Equal(t, playback.StatePaused, s.Phase)
	assert.Equal(t, "waves", s.Title)
	assert.Equal(t, 2, s.Track)
	assert.Equal(t, 3, s.TotalTracks)
	assert.Equal(t, 90*time.Second, s.Elapsed)
	assert.Equal(t, 10*time.Minute, s.Duration)
	assert.True(t, s.Loop)
}

func TestNewState_Stopped(t *testing.T) {
	s := NewState(playback.Status{State: playback.StateStopped, TrackCount: 2}, 0.5, 0.6)

	assert.Empty(t, s.Title)
	assert.Equal(t, 0, s.Track)
}

func TestRender_ContainsSessionInfo(t *testing.T) {
	s := State{
		Phase:       playback.StatePlaying,
		Title:       "rain",
		Track:       1,
		TotalTracks: 3,
		Elapsed:     75 * time.Second,
		Duration:    30 * time.Minute,
		Loop:        true,
		Volume:      0.45,
		Ceiling:     0.6,
	}

	out := ansi.Strip(Render(s, 120))

	assert.Contains(t, out, icons.Play())
	assert.Contains(t, out, "rain")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "1:15 / 30:00")
	assert.Contains(t, out, "loop")
	assert.Contains(t, out, "vol  45%")
	assert.Len(t, strings.Split(out, "\n"), Height)
}

func TestRender_IdleWithoutLength(t *testing.T) {
	out := ansi.Strip(Render(State{Phase: playback.StateIdle, Volume: 0.6, Ceiling: 0.6}, 80))

	assert.Contains(t, out, icons.Stop())
	assert.Contains(t, out, "No active session")
	assert.Contains(t, out, "0:00 / ∞")
	assert.Contains(t, out, "max")
}

func TestRender_TruncatesLongTitle(t *testing.T) {
	s := State{
		Phase: playback.StatePlaying,
		Title: strings.Repeat("very long ambient track name ", 10),
	}

	out := ansi.Strip(Render(s, 80))

	assert.Contains(t, out, "…")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 80)
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want string
	}{
		{"no length", State{Phase: playback.StatePlaying}, ""},
		{"stopped", State{Phase: playback.StateStopped, Duration: time.Hour}, ""},
		{
			"minutes",
			State{Phase: playback.StatePlaying, Duration: 30 * time.Minute, Elapsed: 12 * time.Minute},
			"18 minutes left",
		},
		{
			"one minute",
			State{Phase: playback.StatePaused, Duration: 2 * time.Minute, Elapsed: 30 * time.Second},
			"1 minute left",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.s))
		})
	}
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		duration   time.Duration
		wantFilled int
	}{
		{"half", 30 * time.Second, time.Minute, 5},
		{"no length", 30 * time.Second, 0, 0},
		{"past end clamps", 2 * time.Minute, time.Minute, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(RenderProgress(tt.elapsed, tt.duration, 10))
			assert.Equal(t, tt.wantFilled, strings.Count(out, "━"))
			assert.Equal(t, 10-tt.wantFilled, strings.Count(out, "─"))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:05", formatDuration(65*time.Second))
	assert.Equal(t, "90:00", formatDuration(90*time.Minute))
}
