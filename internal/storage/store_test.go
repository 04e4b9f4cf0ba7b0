package storage

import (
	"testing"

	"github.com/arvela/binsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times:       []float64{0.1, 0.2, 0.3},
		Separations: []float64{2.0, 1.9, 1.8},
		Orbit1:      [][2]float64{{-1, 0}, {-0.9, 0.1}, {-0.8, 0.2}},
		Orbit2:      [][2]float64{{1, 0}, {0.9, -0.1}, {0.8, -0.2}},
		MergerStep:  -1,
		Metrics:     map[string]float64{"separation": 1.8},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	meta := RunMetadata{
		Seed:      42,
		NStar1:    100,
		NStar2:    50,
		StopRatio: 0.01,
		Dt:        0.001,
		Steps:     3,
	}

	runID, err := store.Save(meta, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.NStar1 != 100 || back.NStar2 != 50 {
		t.Errorf("partition mismatch: %d, %d", back.NStar1, back.NStar2)
	}
	if back.StopRatio != 0.01 {
		t.Errorf("expected stop_ratio 0.01, got %g", back.StopRatio)
	}
	if back.MergerStep != -1 {
		t.Errorf("expected merger step -1, got %d", back.MergerStep)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("expected a single run %q, got %v", runID, runs)
	}
}

func TestLoadHistory(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := store.Save(RunMetadata{}, testResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	h, err := store.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(h.Times) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(h.Times))
	}
	if h.Separations[2] != 1.8 {
		t.Errorf("expected separation 1.8, got %g", h.Separations[2])
	}
	if h.Orbit1[1] != [2]float64{-0.9, 0.1} {
		t.Errorf("orbit row mismatch: %v", h.Orbit1[1])
	}
}

func TestListEmptyDir(t *testing.T) {
	store := New(t.TempDir() + "/missing")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
