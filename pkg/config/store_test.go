package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestOpenStoreMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if got := store.Snapshot().Scoring.ConfidenceThreshold; got != 0.7 {
		t.Errorf("confidence threshold = %v, want 0.7", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("store created a file before any merge")
	}
}

func TestMergeAndPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	agentic := true
	next, err := store.MergeAndPersist(&Patch{Overrides: &OverridesPatch{AgenticMode: &agentic}})
	if err != nil {
		t.Fatalf("MergeAndPersist: %v", err)
	}
	if !next.Overrides.AgenticMode {
		t.Error("merged snapshot missing override")
	}
	if store.Snapshot() != next {
		t.Error("snapshot not swapped to merged config")
	}

	// A fresh store must see the persisted state.
	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Snapshot().Overrides.AgenticMode {
		t.Error("persisted override lost after reload")
	}
	if got := reopened.Snapshot().Scoring.DimensionWeights[DimTokenCount]; got != 0.08 {
		t.Errorf("reloaded tokenCount weight = %v, want 0.08", got)
	}
}

func TestMergeAndPersistRejectsInvalidPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	before := store.Snapshot()

	_, err = store.MergeAndPersist(&Patch{
		Scoring: &ScoringPatch{DimensionWeights: map[string]float64{"bogus": 1}},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error %q does not name offending key", err)
	}
	if store.Snapshot() != before {
		t.Error("snapshot changed despite rejected patch")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rejected patch was persisted")
	}
}

func TestMergeAndPersistRejectsInvalidMergedResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	// Individually plausible boundary that breaks ascending order.
	bad := -5.0
	_, err = store.MergeAndPersist(&Patch{
		Scoring: &ScoringPatch{TierBoundaries: &TierBoundariesPatch{MediumComplex: &bad}},
	})
	if err == nil {
		t.Fatal("expected merged-config validation error")
	}
}

func TestConcurrentSnapshotDuringMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			cfg := store.Snapshot()
			// Boundaries must always be internally consistent.
			b := cfg.Scoring.TierBoundaries
			if !(b.SimpleMedium < b.MediumComplex && b.MediumComplex < b.ComplexReasoning) {
				t.Error("observed half-merged boundaries")
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		sm, mc, cr := float64(i)*0.01, float64(i)*0.01+0.2, float64(i)*0.01+0.5
		_, err := store.MergeAndPersist(&Patch{
			Scoring: &ScoringPatch{TierBoundaries: &TierBoundariesPatch{
				SimpleMedium: &sm, MediumComplex: &mc, ComplexReasoning: &cr,
			}},
		})
		if err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
	}
	close(stop)
	wg.Wait()
}
