package playback

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Remaining(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		elapsed  int
		want     time.Duration
	}{
		{"no limit", 0, 40, 0},
		{"halfway", 60, 30, 30 * time.Second},
		{"past end", 60, 75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Status{DurationSeconds: tt.duration, ElapsedSeconds: tt.elapsed}
			assert.Equal(t, tt.want, st.Remaining())
		})
	}
}

func TestStatus_JSONFieldNames(t *testing.T) {
	st := Status{
		SessionID:       "s1",
		State:           StatePlaying,
		Playing:         true,
		TrackIndex:      1,
		Track:           "/b.mp3",
		TrackCount:      3,
		DurationSeconds: 60,
		ElapsedSeconds:  12,
		Loop:            true,
	}
	b, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sessionId": "s1",
		"state": "playing",
		"isPlaying": true,
		"currentTrackIndex": 1,
		"track": "/b.mp3",
		"trackCount": 3,
		"durationSeconds": 60,
		"elapsedSeconds": 12,
		"loopEnabled": true
	}`, string(b))
}

func TestStatusSinkFunc(t *testing.T) {
	var got Status
	var sink StatusSink = StatusSinkFunc(func(s Status) { got = s })
	sink.Publish(Status{ElapsedSeconds: 7})
	assert.Equal(t, 7, got.ElapsedSeconds)
}
