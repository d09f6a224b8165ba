// Package volume enforces a maximum output level.
package volume

// DefaultCeiling is the maximum permitted output fraction.
const DefaultCeiling = 0.6

// Monitor reads and writes the output level as a fraction in [0, 1].
type Monitor interface {
	Level() float64
	SetLevel(level float64)
}

// Guard pulls the output level back down to Ceiling whenever it is exceeded.
// It never raises the level.
type Guard struct {
	Ceiling float64
}

// NewGuard returns a guard for the given ceiling.
// Values outside (0, 1] fall back to DefaultCeiling.
func NewGuard(ceiling float64) Guard {
	if ceiling <= 0 || ceiling > 1 {
		ceiling = DefaultCeiling
	}
	return Guard{Ceiling: ceiling}
}

// Check reads the current level and clamps it if it is above the ceiling.
// It returns whether a clamp happened and the level observed before clamping.
func (g Guard) Check(m Monitor) (clamped bool, observed float64) {
	observed = m.Level()
	if observed <= g.Ceiling {
		return false, observed
	}
	m.SetLevel(g.Ceiling)
	return true, observed
}

// Limit returns level clamped to [0, Ceiling].
func (g Guard) Limit(level float64) float64 {
	return min(max(level, 0), g.Ceiling)
}
