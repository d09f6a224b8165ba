// Package headerbar renders the one-line header above the player bar.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ambience/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Render returns the header for the given width: the application name
// followed by the non-empty segments, centered. It returns "" when the
// terminal is too narrow.
func Render(name string, segments []string, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T().S()
	separator := t.Subtle.Render(" │ ")

	parts := []string{t.Playing.Render(name)}
	for _, s := range segments {
		if s != "" {
			parts = append(parts, t.Muted.Render(s))
		}
	}

	content := strings.Join(parts, separator)
	for lipgloss.Width(content) > width && len(parts) > 1 {
		parts = parts[:len(parts)-1]
		content = strings.Join(parts, separator)
	}

	// Center the content
	contentWidth := lipgloss.Width(content)
	if contentWidth < width {
		content = strings.Repeat(" ", (width-contentWidth)/2) + content
	}

	return content
}
