package playerbar

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/ambience/internal/icons"
	"github.com/llehouerou/ambience/internal/playback"
	"github.com/llehouerou/ambience/internal/ui/render"
	"github.com/llehouerou/ambience/internal/ui/styles"
)

// Height is the total height of the player bar.
const Height = 3 // top border + content + bottom border

// State holds everything needed to render the player bar.
type State struct {
	Phase       playback.State
	Title       string
	Track       int // 1-based
	TotalTracks int
	Elapsed     time.Duration
	Duration    time.Duration // 0 = no session length
	Loop        bool
	Volume      float64
	Ceiling     float64
}

// NewState constructs a State from a controller snapshot.
func NewState(st playback.Status, volume, ceiling float64) State {
	s := State{
		Phase:       st.State,
		TotalTracks: st.TrackCount,
		Elapsed:     time.Duration(st.ElapsedSeconds) * time.Second,
		Duration:    time.Duration(st.DurationSeconds) * time.Second,
		Loop:        st.Loop,
		Volume:      volume,
		Ceiling:     ceiling,
	}
	if st.State.IsActive() {
		s.Title = trackTitle(st.Track)
		s.Track = st.TrackIndex + 1
	}
	return s
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding

	t := styles.T().S()
	separator := "   "
	sepWidth := lipgloss.Width(separator)

	status := t.Muted.Render(icons.Stop())
	switch s.Phase {
	case playback.StatePlaying:
		status = t.Playing.Render(icons.Play())
	case playback.StatePaused:
		status = t.Playing.Render(icons.Pause())
	}

	title := s.Title
	if title == "" {
		title = "No active session"
	}

	var trackNum string
	if s.Track > 0 && s.TotalTracks > 0 {
		trackNum = fmt.Sprintf("%d/%d", s.Track, s.TotalTracks)
	}

	timeStr := formatDuration(s.Elapsed) + " / " + formatSessionLength(s.Duration)
	right := RenderVolumeCompact(s.Volume, s.Ceiling)
	if s.Loop {
		right = t.Loop.Render(icons.Loop()+" loop") + separator + right
	}

	fixed := lipgloss.Width(status+"  ") + lipgloss.Width(timeStr) + lipgloss.Width(right) + sepWidth*3
	if trackNum != "" {
		fixed += lipgloss.Width(trackNum) + sepWidth
	}

	// Title takes what it needs, up to half of the remaining space; the bar gets the rest
	avail := max(innerWidth-fixed, 0)
	titleWidth := min(runewidth.StringWidth(title), max(avail/2, 10))
	barWidth := max(avail-titleWidth, 5)

	var content strings.Builder
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(t.Title.Render(render.Truncate(title, titleWidth)))
	if trackNum != "" {
		content.WriteString(separator)
		content.WriteString(t.Muted.Render(trackNum))
	}
	content.WriteString(separator)
	content.WriteString(RenderProgress(s.Elapsed, s.Duration, barWidth))
	content.WriteString(separator)
	content.WriteString(t.Muted.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(right)

	return t.Bar.Padding(0, 2).Width(max(width-2, 0)).Render(content.String())
}

// Remaining returns a human label for the time left in the session, or ""
// when the session has no length.
func Remaining(s State) string {
	if s.Duration <= 0 || !s.Phase.IsActive() {
		return ""
	}
	left := max(s.Duration-s.Elapsed, 0)
	epoch := time.Unix(0, 0)
	return humanize.RelTime(epoch, epoch.Add(left), "left", "left")
}

func trackTitle(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatSessionLength(d time.Duration) string {
	if d <= 0 {
		return "∞"
	}
	return formatDuration(d)
}
