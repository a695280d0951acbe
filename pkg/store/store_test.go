package store

import (
	"path/filepath"
	"testing"

	"github.com/mvarley/anomaly-globe/pkg/compute"
)

func TestStatsRoundTrip(t *testing.T) {
	cache, err := Open(filepath.Join(t.TempDir(), "stats"))
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			t.Errorf("Failed to close cache: %v", err)
		}
	}()

	want := compute.Stats{Count: 42, MinDelta: -1.2, MaxDelta: 2.4, AvgDelta: 0.3, NonZeroCount: 40}
	if err := cache.PutStats("1910", want); err != nil {
		t.Fatalf("PutStats failed: %v", err)
	}

	got, ok, err := cache.GetStats("1910")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if !ok {
		t.Fatal("GetStats found nothing for a stored label")
	}
	if got != want {
		t.Errorf("GetStats = %+v, want %+v", got, want)
	}
}

func TestGetStatsMissingLabel(t *testing.T) {
	cache, err := Open(filepath.Join(t.TempDir(), "stats"))
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	defer cache.Close()

	_, ok, err := cache.GetStats("2010")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if ok {
		t.Error("GetStats reported a hit for a label never stored")
	}
}

func TestPutAllStats(t *testing.T) {
	cache, err := Open(filepath.Join(t.TempDir(), "stats"))
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	defer cache.Close()

	batch := map[string]compute.Stats{
		"1910": {Count: 1},
		"1920": {Count: 2, NonZeroCount: 2},
	}
	if err := cache.PutAllStats(batch); err != nil {
		t.Fatalf("PutAllStats failed: %v", err)
	}

	for label, want := range batch {
		got, ok, err := cache.GetStats(label)
		if err != nil || !ok {
			t.Fatalf("GetStats(%s) = ok=%v err=%v", label, ok, err)
		}
		if got != want {
			t.Errorf("GetStats(%s) = %+v, want %+v", label, got, want)
		}
	}
}
