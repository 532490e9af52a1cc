package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Scoring.DimensionWeights) != 14 {
		t.Fatalf("expected 14 dimension weights, got %d", len(cfg.Scoring.DimensionWeights))
	}
	for _, name := range DimensionNames() {
		if _, ok := cfg.Scoring.DimensionWeights[name]; !ok {
			t.Errorf("missing default weight for %s", name)
		}
	}
	for _, tier := range TierNames() {
		if _, ok := cfg.TierPreferences[tier]; !ok {
			t.Errorf("missing tier preference for %s", tier)
		}
		if _, ok := cfg.AgenticPreferences[tier]; !ok {
			t.Errorf("missing agentic preference for %s", tier)
		}
	}
}

func TestMergePartialWeightKeepsOtherDefaults(t *testing.T) {
	base := DefaultConfig()
	weight := 0.25
	merged := base.Merge(&Patch{
		Scoring: &ScoringPatch{
			DimensionWeights: map[string]float64{DimReasoningMarkers: weight},
		},
	})

	if got := merged.Scoring.DimensionWeights[DimReasoningMarkers]; got != weight {
		t.Errorf("reasoningMarkers weight = %v, want %v", got, weight)
	}
	if got := merged.Scoring.DimensionWeights[DimTokenCount]; got != 0.08 {
		t.Errorf("tokenCount weight = %v, want default 0.08", got)
	}
	if len(merged.Scoring.Keywords.Code) == 0 {
		t.Error("code keywords lost during merge")
	}
	// base untouched
	if got := base.Scoring.DimensionWeights[DimReasoningMarkers]; got != 0.18 {
		t.Errorf("merge mutated base: reasoningMarkers = %v", got)
	}
}

func TestMergeOverrideLeafOnly(t *testing.T) {
	base := DefaultConfig()
	agentic := true
	merged := base.Merge(&Patch{Overrides: &OverridesPatch{AgenticMode: &agentic}})

	if !merged.Overrides.AgenticMode {
		t.Error("agenticMode not flipped")
	}
	if merged.Overrides.AmbiguousDefaultTier != TierMedium {
		t.Errorf("ambiguousDefaultTier = %q, want %q", merged.Overrides.AmbiguousDefaultTier, TierMedium)
	}
	if len(merged.Scoring.DimensionWeights) != len(base.Scoring.DimensionWeights) {
		t.Error("dimension weights disturbed by overrides patch")
	}
}

func TestMergeIdempotent(t *testing.T) {
	threshold := 0.65
	patch := &Patch{
		Scoring: &ScoringPatch{
			ConfidenceThreshold: &threshold,
			DimensionWeights:    map[string]float64{DimCodePresence: 0.2},
		},
		TierPreferences: map[string]TierPreferencePatch{
			TierSimple: {PreferredModels: []string{"deepseek-chat"}},
		},
	}

	once := DefaultConfig().Merge(patch)
	twice := once.Merge(patch)

	if once.Scoring.ConfidenceThreshold != twice.Scoring.ConfidenceThreshold {
		t.Error("confidence threshold differs after double merge")
	}
	if once.Scoring.DimensionWeights[DimCodePresence] != twice.Scoring.DimensionWeights[DimCodePresence] {
		t.Error("weights differ after double merge")
	}
	if strings.Join(once.TierPreferences[TierSimple].PreferredModels, ",") !=
		strings.Join(twice.TierPreferences[TierSimple].PreferredModels, ",") {
		t.Error("preferences differ after double merge")
	}
}

func TestMergeListReplacesWholesale(t *testing.T) {
	merged := DefaultConfig().Merge(&Patch{
		Scoring: &ScoringPatch{
			Keywords: &KeywordSetsPatch{Simple: []string{"howdy"}},
		},
	})

	if len(merged.Scoring.Keywords.Simple) != 1 || merged.Scoring.Keywords.Simple[0] != "howdy" {
		t.Errorf("simple keywords = %v, want wholesale replacement", merged.Scoring.Keywords.Simple)
	}
	if len(merged.Scoring.Keywords.Reasoning) == 0 {
		t.Error("untouched keyword list lost")
	}
}

func TestPatchValidation(t *testing.T) {
	badTier := "EXTREME"
	tests := []struct {
		name    string
		patch   *Patch
		wantKey string
	}{
		{
			name: "unknown dimension",
			patch: &Patch{Scoring: &ScoringPatch{
				DimensionWeights: map[string]float64{"promptVibes": 1},
			}},
			wantKey: "scoring.dimension_weights.promptVibes",
		},
		{
			name:    "unknown tier in preferences",
			patch:   &Patch{TierPreferences: map[string]TierPreferencePatch{"EXTREME": {}}},
			wantKey: "tier_preferences.EXTREME",
		},
		{
			name:    "unknown tier in override",
			patch:   &Patch{Overrides: &OverridesPatch{AmbiguousDefaultTier: &badTier}},
			wantKey: "overrides.ambiguous_default_tier",
		},
		{
			name:    "unknown tier in cost thresholds",
			patch:   &Patch{CostThresholds: map[string]float64{"EXTREME": 2}},
			wantKey: "cost_thresholds.EXTREME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name key %q", err, tt.wantKey)
			}
		})
	}
}

func TestConfigValidateBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.TierBoundaries.MediumComplex = -1
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "tier_boundaries") {
		t.Fatalf("expected boundary validation error, got %v", err)
	}
}
