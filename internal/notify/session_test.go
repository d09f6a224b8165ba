package notify

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/player"
)

// mockNotifier records notifications for testing.
type mockNotifier struct {
	mu            sync.Mutex
	notifications []Notification
	dismissed     []uint32
	lastID        uint32
}

func (m *mockNotifier) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Dismiss(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed = append(m.dismissed, id)
	return nil
}

func (m *mockNotifier) dismissedIDs() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint32(nil), m.dismissed...)
}

func (m *mockNotifier) sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.notifications...)
}

func TestForStop(t *testing.T) {
	tests := []struct {
		name    string
		reason  playback.StopReason
		lang    string
		want    string
		urgency Urgency
		ok      bool
	}{
		{"session length", playback.StopSessionLength, "en", "Session finished", UrgencyLow, true},
		{"session length in french", playback.StopSessionLength, "fr-CA", "Séance terminée", UrgencyLow, true},
		{"end of playlist in catalan", playback.StopEndOfPlaylist, "ca", "Llista de reproducció acabada", UrgencyLow, true},
		{"unplayable", playback.StopUnplayable, "es", "Reproducción detenida", UrgencyCritical, true},
		{"unknown language falls back to english", playback.StopSessionLength, "de", "Session finished", UrgencyLow, true},
		{"user stop is silent", playback.StopRequested, "en", "", UrgencyLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ForStop(tt.reason, tt.lang)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n.Title)
			assert.Equal(t, tt.urgency, n.Urgency)
		})
	}
}

func TestWatch_NotifiesWhenSessionLengthReached(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		engine := player.NewMock()
		ctrl := playback.New(engine, nil, nil, playback.Options{})
		require.NoError(t, ctrl.SetPlaylist([]string{"/sounds/rain.mp3"}, 3, "fr"))

		n := &mockNotifier{}
		done := make(chan struct{})
		go func() {
			Watch(ctrl.Subscribe(), n, ctrl)
			close(done)
		}()
		synctest.Wait()

		require.NoError(t, ctrl.Play())
		synctest.Wait()
		require.NoError(t, ctrl.Stop())
		synctest.Wait()
		assert.Empty(t, n.sent(), "user stop does not notify")

		require.NoError(t, ctrl.Play())
		time.Sleep(3500 * time.Millisecond)
		sent := n.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "Séance terminée", sent[0].Title)
		assert.Empty(t, n.dismissedIDs())

		require.NoError(t, ctrl.Play())
		synctest.Wait()
		assert.Equal(t, []uint32{1}, n.dismissedIDs(), "a new session clears the last notice")

		time.Sleep(3500 * time.Millisecond)
		sent = n.sent()
		require.Len(t, sent, 2)
		assert.Zero(t, sent[1].ReplacesID)

		require.NoError(t, ctrl.Close())
		<-done
	})
}
