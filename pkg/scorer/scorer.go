// Package scorer classifies prompt text into complexity tiers using a
// weighted multi-dimension score. Scoring is a pure function of its inputs
// and a config snapshot: no I/O, no shared state, safe to run concurrently.
package scorer

import (
	"math"
	"strings"

	"github.com/zen-systems/tiergate/pkg/config"
)

// Result is the outcome of scoring one request.
type Result struct {
	Score           float64  `json:"score"`
	Tier            Tier     `json:"tier"`
	Confidence      float64  `json:"confidence"`
	Signals         []string `json:"signals,omitempty"`
	Ambiguous       bool     `json:"ambiguous"`
	AgenticScore    float64  `json:"agentic_score"`
	EstimatedTokens int      `json:"estimated_tokens"`
}

// EstimateTokens approximates the token count of text. A ~4 chars/token
// heuristic is deliberate: classification needs magnitude, not exactness.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// Score classifies userText (with optional systemText) against the given
// configuration snapshot.
func Score(userText, systemText string, cfg *config.Config) Result {
	full := systemText + " " + userText
	in := detectorInput{
		text:       strings.ToLower(full),
		userText:   strings.ToLower(userText),
		systemText: strings.ToLower(systemText),
		rawUser:    userText,
		estTokens:  EstimateTokens(full),
	}
	sc := &cfg.Scoring

	var (
		raw     float64
		signals []string
	)
	for _, dim := range dimensions {
		contribution, signal := dim.detect(in, sc)
		raw += contribution * sc.DimensionWeights[dim.name]
		if signal != "" {
			signals = append(signals, signal)
		}
	}

	agenticScore, agenticSignal := detectAgenticTask(in, sc)
	raw += agenticScore * sc.AgenticWeight
	if agenticSignal != "" {
		signals = append(signals, agenticSignal)
	}

	tier, distance := classify(raw, sc.TierBoundaries)
	confidence := calibrate(distance, sc.ConfidenceSteepness)

	res := Result{
		Score:           raw,
		Tier:            tier,
		Confidence:      confidence,
		Signals:         signals,
		AgenticScore:    agenticScore,
		EstimatedTokens: in.estTokens,
	}
	applyOverrides(&res, in, cfg)
	return res
}

// classify maps a raw score onto the tier line and returns the distance to
// the nearest boundary, which drives confidence.
func classify(score float64, b config.TierBoundaries) (Tier, float64) {
	switch {
	case score < b.SimpleMedium:
		return TierSimple, b.SimpleMedium - score
	case score < b.MediumComplex:
		return TierMedium, math.Min(score-b.SimpleMedium, b.MediumComplex-score)
	case score < b.ComplexReasoning:
		return TierComplex, math.Min(score-b.MediumComplex, b.ComplexReasoning-score)
	default:
		return TierReasoning, score - b.ComplexReasoning
	}
}

// calibrate maps boundary distance to a confidence in [0.5, 1): deep inside
// a tier approaches 1, a score sitting on a boundary yields 0.5.
func calibrate(distance, steepness float64) float64 {
	return 1.0 / (1.0 + math.Exp(-steepness*distance))
}

// applyOverrides runs the fixed override ladder. Order matters: the
// reasoning-keyword override wins outright; the token and structured-output
// overrides only ever raise the tier; the ambiguity default runs last.
func applyOverrides(res *Result, in detectorInput, cfg *config.Config) {
	// Two or more reasoning markers in the user prompt alone force the
	// reasoning tier regardless of the weighted score.
	if len(matchKeywords(in.userText, cfg.Scoring.Keywords.Reasoning)) >= 2 {
		res.Tier = TierReasoning
		res.Confidence = math.Max(res.Confidence, 0.85)
		return
	}

	tokenForced := in.estTokens > cfg.Overrides.MaxTokensForceComplex
	if tokenForced {
		res.Tier = maxTier(res.Tier, TierComplex)
		res.Confidence = math.Max(res.Confidence, 0.95)
	}

	if minTier, ok := ParseTier(cfg.Overrides.StructuredOutputMinTier); ok && wantsStructuredOutput(in, &cfg.Scoring.Keywords) {
		res.Tier = maxTier(res.Tier, minTier)
	}

	if res.Confidence < cfg.Scoring.ConfidenceThreshold {
		res.Ambiguous = true
		// The ambiguity default never undoes the token-forced floor, even
		// with a confidence threshold configured above 0.95.
		if tier, ok := ParseTier(cfg.Overrides.AmbiguousDefaultTier); ok && !tokenForced {
			res.Tier = tier
		}
	}
}

// wantsStructuredOutput reports whether the system text asks for a
// structured response format (json, yaml, table, and equivalents).
func wantsStructuredOutput(in detectorInput, kw *config.KeywordSets) bool {
	if strings.TrimSpace(in.systemText) == "" {
		return false
	}
	return len(matchKeywords(in.systemText, kw.OutputFormat)) > 0
}
