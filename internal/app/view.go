package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/llehouerou/ambience/internal/icons"
	"github.com/llehouerou/ambience/internal/ui/headerbar"
	"github.com/llehouerou/ambience/internal/ui/playerbar"
	"github.com/llehouerou/ambience/internal/ui/render"
	"github.com/llehouerou/ambience/internal/ui/styles"
)

const defaultWidth = 80

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	t := styles.T().S()
	bar := playerbar.NewState(m.status, m.volumeLevel(), m.Ceiling)

	var b strings.Builder

	b.WriteString(headerbar.Render("ambience", []string{m.Ctrl.LanguageCode(), playerbar.Remaining(bar)}, width))
	b.WriteString("\n")

	if m.showPlaylist {
		b.WriteString(m.renderPlaylist(width))
	}

	if m.Notice != "" {
		b.WriteString(t.Success.Render(m.Notice))
		b.WriteString("\n")
	}

	if m.ErrorMsg != "" {
		b.WriteString(t.Error.Render(m.ErrorMsg))
		b.WriteString("\n")
	}

	b.WriteString(playerbar.Render(bar, width))
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))

	return b.String()
}

func (m Model) renderPlaylist(width int) string {
	t := styles.T().S()
	tracks, _ := m.Ctrl.Playlist()
	if len(tracks) == 0 {
		return t.Subtle.Render("  (empty playlist)") + "\n"
	}

	var b strings.Builder
	for i, path := range tracks {
		line := fmt.Sprintf("%2d. %s", i+1, icons.FormatTrack(render.Truncate(filepath.Base(path), max(width-8, 10))))
		if m.status.State.IsActive() && i == m.status.TrackIndex {
			b.WriteString(t.Playing.Render(icons.Play() + " " + line))
		} else {
			b.WriteString(t.Muted.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
