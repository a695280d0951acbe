package globeengine

import (
	"testing"

	"github.com/mvarley/anomaly-globe/pkg/compute"
)

func TestEngineActivation(t *testing.T) {
	e := NewEngine(1280, 720, 0, testCollection())

	e.ActivateDecade("1910")
	if got := len(e.View().Markers()); got != 2 {
		t.Errorf("marker count = %d, want 2", got)
	}

	e.ActivateDecade("1920")
	if got := len(e.View().Markers()); got != 1 {
		t.Errorf("marker count = %d, want 1", got)
	}
}

func TestEngineStats(t *testing.T) {
	e := NewEngine(1280, 720, 0, testCollection())

	if _, ok := e.statsFor("1910"); ok {
		t.Error("statsFor reported a hit before any stats were set")
	}

	want := compute.Stats{Count: 3, NonZeroCount: 2, MinDelta: -0.3, MaxDelta: 0.5}
	e.SetStats("1910", want)
	got, ok := e.statsFor("1910")
	if !ok || got != want {
		t.Errorf("statsFor = (%+v, %v), want (%+v, true)", got, ok, want)
	}
}
