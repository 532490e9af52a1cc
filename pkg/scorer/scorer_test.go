package scorer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zen-systems/tiergate/pkg/config"
)

func TestScoreSimpleQuestion(t *testing.T) {
	cfg := config.DefaultConfig()
	res := Score("What is Python?", "", cfg)

	if res.Tier != TierSimple {
		t.Fatalf("tier = %s, want %s", res.Tier, TierSimple)
	}
	if res.Score >= 0 {
		t.Errorf("score = %.3f, want < 0", res.Score)
	}
	if res.Ambiguous {
		t.Errorf("ambiguous = true, want false (confidence %.3f)", res.Confidence)
	}
	found := false
	for _, s := range res.Signals {
		if strings.HasPrefix(s, "simple") {
			found = true
		}
	}
	if !found {
		t.Errorf("signals = %v, want a simple-indicator signal", res.Signals)
	}
}

func TestScoreReasoningOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	res := Score("Prove that sqrt(2) is irrational step by step", "", cfg)

	if res.Tier != TierReasoning {
		t.Fatalf("tier = %s, want %s", res.Tier, TierReasoning)
	}
	if res.Confidence < 0.85 {
		t.Errorf("confidence = %.3f, want >= 0.85", res.Confidence)
	}
}

func TestScoreStructuredOutputOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	res := Score("What is Python?", "Always output as JSON.", cfg)

	if res.Tier.Rank() < TierMedium.Rank() {
		t.Fatalf("tier = %s, want at least %s", res.Tier, TierMedium)
	}
}

func TestScoreLargeInputForcesComplex(t *testing.T) {
	cfg := config.DefaultConfig()
	huge := strings.Repeat("describe this record ", 25000)
	res := Score(huge, "", cfg)

	if res.EstimatedTokens <= cfg.Overrides.MaxTokensForceComplex {
		t.Fatalf("estimated tokens = %d, test input too small", res.EstimatedTokens)
	}
	if res.Tier.Rank() < TierComplex.Rank() {
		t.Errorf("tier = %s, want at least %s", res.Tier, TierComplex)
	}
	if res.Ambiguous {
		t.Errorf("ambiguous = true, token override must keep the floor")
	}
}

func TestScoreTokenFloorSurvivesAmbiguity(t *testing.T) {
	cfg := config.DefaultConfig().Clone()
	// A threshold above the token override's 0.95 confidence makes the
	// result ambiguous, but the COMPLEX floor must hold regardless.
	cfg.Scoring.ConfidenceThreshold = 0.99
	huge := strings.Repeat("describe this record ", 25000)
	res := Score(huge, "", cfg)

	if res.EstimatedTokens <= cfg.Overrides.MaxTokensForceComplex {
		t.Fatalf("estimated tokens = %d, test input too small", res.EstimatedTokens)
	}
	if !res.Ambiguous {
		t.Fatalf("ambiguous = false, confidence %.3f", res.Confidence)
	}
	if res.Tier.Rank() < TierComplex.Rank() {
		t.Errorf("tier = %s, want at least %s", res.Tier, TierComplex)
	}
}

func TestScoreEmptyPrompt(t *testing.T) {
	cfg := config.DefaultConfig()
	res := Score("", "", cfg)

	if res.Tier != TierSimple {
		t.Errorf("tier = %s, want %s", res.Tier, TierSimple)
	}
	if res.Score >= 0 {
		t.Errorf("score = %.3f, want < 0", res.Score)
	}
}

func TestScoreMoreSignalsNeverLower(t *testing.T) {
	cfg := config.DefaultConfig()
	base := Score("Explain how caching works", "", cfg)
	richer := Score("Explain how caching works in a distributed database architecture algorithm", "", cfg)

	if richer.Score <= base.Score {
		t.Errorf("richer score = %.3f, base = %.3f, want richer > base", richer.Score, base.Score)
	}
	if richer.Tier.Rank() < base.Tier.Rank() {
		t.Errorf("richer tier = %s below base tier %s", richer.Tier, base.Tier)
	}
}

func TestScoreDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	prompt := "First analyze the algorithm, then optimize the database queries. Output as JSON."
	a := Score(prompt, "You are a helpful assistant.", cfg)
	b := Score(prompt, "You are a helpful assistant.", cfg)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n a = %+v\n b = %+v", a, b)
	}
}

func TestScoreAgenticDetection(t *testing.T) {
	cfg := config.DefaultConfig()
	res := Score("Read the file main.go, fix the failing import, and verify the build", "", cfg)

	if res.AgenticScore < 0.6 {
		t.Errorf("agentic score = %.2f, want >= 0.6", res.AgenticScore)
	}

	plain := Score("What is the capital of France?", "", cfg)
	if plain.AgenticScore != 0 {
		t.Errorf("agentic score = %.2f for plain question, want 0", plain.AgenticScore)
	}
}

func TestScoreResultInvariants(t *testing.T) {
	cfg := config.DefaultConfig()
	prompts := []struct {
		name, user, system string
	}{
		{"empty", "", ""},
		{"simple", "hello", ""},
		{"code", "Write a function that parses JSON with a class hierarchy", ""},
		{"reasoning", "Prove the theorem formally, step by step", ""},
		{"constrained", "Build a service. Must not exceed 100ms latency, at least three replicas, except on weekends.", "Respond in YAML."},
		{"multilingual", "证明 这个 定理 逐步", ""},
	}

	for _, tt := range prompts {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.user, tt.system, cfg)
			if !res.Tier.Valid() {
				t.Errorf("invalid tier %q", res.Tier)
			}
			if res.Confidence <= 0 || res.Confidence > 1 {
				t.Errorf("confidence = %.3f outside (0, 1]", res.Confidence)
			}
			if res.EstimatedTokens < 0 {
				t.Errorf("estimated tokens = %d", res.EstimatedTokens)
			}
			if res.Ambiguous && res.Confidence >= cfg.Scoring.ConfidenceThreshold {
				t.Errorf("ambiguous with confidence %.3f >= threshold", res.Confidence)
			}
		})
	}
}

func TestScoreAmbiguousDefaultsToMedium(t *testing.T) {
	cfg := config.DefaultConfig().Clone()
	// Force ambiguity by requiring near-certain confidence.
	cfg.Scoring.ConfidenceThreshold = 0.999
	res := Score("Summarize the attached report briefly", "", cfg)

	if !res.Ambiguous {
		t.Fatalf("ambiguous = false, confidence %.3f", res.Confidence)
	}
	if string(res.Tier) != cfg.Overrides.AmbiguousDefaultTier {
		t.Errorf("tier = %s, want ambiguous default %s", res.Tier, cfg.Overrides.AmbiguousDefaultTier)
	}
}
