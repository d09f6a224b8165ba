package volume

import "testing"

func TestNewGuard_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		ceiling float64
		want    float64
	}{
		{"valid", 0.4, 0.4},
		{"one", 1, 1},
		{"zero", 0, DefaultCeiling},
		{"negative", -0.2, DefaultCeiling},
		{"above one", 1.5, DefaultCeiling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewGuard(tt.ceiling).Ceiling; got != tt.want {
				t.Errorf("NewGuard(%v).Ceiling = %v, want %v", tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestGuard_Check_ClampsAboveCeiling(t *testing.T) {
	m := NewMock(0.9)
	g := NewGuard(0.6)

	clamped, observed := g.Check(m)

	if !clamped {
		t.Fatal("Check() clamped = false, want true")
	}
	if observed != 0.9 {
		t.Errorf("observed = %v, want 0.9", observed)
	}
	calls := m.SetCalls()
	if len(calls) != 1 || calls[0] != 0.6 {
		t.Errorf("SetCalls() = %v, want [0.6]", calls)
	}
}

func TestGuard_Check_LeavesLevelAtOrBelowCeiling(t *testing.T) {
	for _, level := range []float64{0, 0.5, 0.6} {
		m := NewMock(level)
		clamped, _ := NewGuard(0.6).Check(m)
		if clamped {
			t.Errorf("Check() at %v clamped, want no-op", level)
		}
		if n := len(m.SetCalls()); n != 0 {
			t.Errorf("Check() at %v made %d SetLevel calls, want 0", level, n)
		}
	}
}

func TestGuard_Check_ContinuousEnforcement(t *testing.T) {
	m := NewMock(0.5)
	g := NewGuard(0.6)

	g.Check(m)
	m.Raise(1.0)
	g.Check(m)
	g.Check(m)
	m.Raise(0.8)
	g.Check(m)

	calls := m.SetCalls()
	if len(calls) != 2 {
		t.Fatalf("SetCalls() = %v, want two clamps", calls)
	}
	if m.Level() != 0.6 {
		t.Errorf("Level() = %v, want 0.6", m.Level())
	}
}

func TestGuard_Limit(t *testing.T) {
	g := NewGuard(0.6)
	tests := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.45, 0.45},
		{0.6, 0.6},
		{0.9, 0.6},
	}
	for _, tt := range tests {
		if got := g.Limit(tt.in); got != tt.want {
			t.Errorf("Limit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
