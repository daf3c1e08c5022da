package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Disabled(t *testing.T) {
	t.Parallel()

	tests := []Profiler{
		{},
		{Mode: "", Path: t.TempDir()},
		{Mode: "bogus", Path: t.TempDir(), Quiet: true},
	}

	for _, p := range tests {
		s := p.Start()
		if _, ok := s.(nop); !ok {
			t.Errorf("Start(%+v) = %T, want no-op", p, s)
		}

		s.Stop()
	}
}

func TestModes_Sorted(t *testing.T) {
	t.Parallel()

	got := slices.Collect(Modes())
	if !slices.IsSorted(got) {
		t.Errorf("Modes() not sorted: %v", got)
	}
}
