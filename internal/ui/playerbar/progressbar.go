package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/ambience/internal/ui/styles"
)

// RenderProgress renders the session progress bar. Sessions without a length
// render an empty track.
func RenderProgress(elapsed, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = min(float64(elapsed)/float64(duration), 1)
	}
	filled := min(int(float64(width)*ratio), width)

	t := styles.T().S()
	return t.Playing.Render(strings.Repeat("━", filled)) +
		t.Subtle.Render(strings.Repeat("─", width-filled))
}
