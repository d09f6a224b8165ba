package playerbar

import (
	"fmt"

	"github.com/llehouerou/ambience/internal/icons"
	"github.com/llehouerou/ambience/internal/ui/styles"
)

// RenderVolumeCompact renders the volume indicator.
// Format: "vol  45%", highlighted when the level sits at the ceiling.
func RenderVolumeCompact(volume, ceiling float64) string {
	pct := int(volume*100 + 0.5)
	t := styles.T().S()
	label := fmt.Sprintf("%s %3d%%", icons.Volume(), pct)
	if ceiling > 0 && volume >= ceiling {
		return t.Warning.Render(label + " max")
	}
	return t.Muted.Render(label)
}
