package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tier names used by scoring boundaries, preference tables, and stats.
const (
	TierSimple    = "SIMPLE"
	TierMedium    = "MEDIUM"
	TierComplex   = "COMPLEX"
	TierReasoning = "REASONING"
)

// TierNames returns the four tiers in ascending complexity order.
func TierNames() []string {
	return []string{TierSimple, TierMedium, TierComplex, TierReasoning}
}

// TierRank returns the ordinal of a tier name, or -1 if unknown.
func TierRank(name string) int {
	switch name {
	case TierSimple:
		return 0
	case TierMedium:
		return 1
	case TierComplex:
		return 2
	case TierReasoning:
		return 3
	default:
		return -1
	}
}

// Scoring dimension names. The weights map is keyed by these and only these.
const (
	DimTokenCount          = "tokenCount"
	DimCodePresence        = "codePresence"
	DimReasoningMarkers    = "reasoningMarkers"
	DimTechnicalTerms      = "technicalTerms"
	DimCreativeMarkers     = "creativeMarkers"
	DimSimpleIndicators    = "simpleIndicators"
	DimMultiStepPatterns   = "multiStepPatterns"
	DimQuestionComplexity  = "questionComplexity"
	DimImperativeVerbs     = "imperativeVerbs"
	DimConstraintCount     = "constraintCount"
	DimOutputFormat        = "outputFormat"
	DimReferenceComplexity = "referenceComplexity"
	DimNegationComplexity  = "negationComplexity"
	DimDomainSpecificity   = "domainSpecificity"
)

// DimensionNames returns the 14 dimension names in evaluation order.
func DimensionNames() []string {
	return []string{
		DimTokenCount,
		DimCodePresence,
		DimReasoningMarkers,
		DimTechnicalTerms,
		DimCreativeMarkers,
		DimSimpleIndicators,
		DimMultiStepPatterns,
		DimQuestionComplexity,
		DimImperativeVerbs,
		DimConstraintCount,
		DimOutputFormat,
		DimReferenceComplexity,
		DimNegationComplexity,
		DimDomainSpecificity,
	}
}

// Config is the full routing configuration. A *Config is treated as an
// immutable snapshot once published; updates go through Store.MergeAndPersist.
type Config struct {
	Scoring            ScoringConfig             `yaml:"scoring" json:"scoring"`
	Overrides          Overrides                 `yaml:"overrides" json:"overrides"`
	TierPreferences    map[string]TierPreference `yaml:"tier_preferences" json:"tierPreferences"`
	AgenticPreferences map[string]TierPreference `yaml:"agentic_preferences" json:"agenticPreferences"`
	CostThresholds     map[string]float64        `yaml:"cost_thresholds" json:"costThresholds"`
}

// ScoringConfig holds the weighted-scoring parameters.
type ScoringConfig struct {
	DimensionWeights    map[string]float64 `yaml:"dimension_weights" json:"dimensionWeights"`
	TierBoundaries      TierBoundaries     `yaml:"tier_boundaries" json:"tierBoundaries"`
	TokenThresholds     TokenThresholds    `yaml:"token_thresholds" json:"tokenThresholds"`
	ConfidenceSteepness float64            `yaml:"confidence_steepness" json:"confidenceSteepness"`
	ConfidenceThreshold float64            `yaml:"confidence_threshold" json:"confidenceThreshold"`
	AgenticWeight       float64            `yaml:"agentic_weight" json:"agenticWeight"`
	Keywords            KeywordSets        `yaml:"keywords" json:"keywords"`
}

// TierBoundaries are the three ascending cut points on the score line.
type TierBoundaries struct {
	SimpleMedium     float64 `yaml:"simple_medium" json:"simpleMedium"`
	MediumComplex    float64 `yaml:"medium_complex" json:"mediumComplex"`
	ComplexReasoning float64 `yaml:"complex_reasoning" json:"complexReasoning"`
}

// TokenThresholds bound the token-count dimension in estimated tokens.
type TokenThresholds struct {
	Simple  int `yaml:"simple" json:"simple"`
	Complex int `yaml:"complex" json:"complex"`
}

// KeywordSets holds the multilingual keyword lists, one per keyword dimension.
type KeywordSets struct {
	Code           []string `yaml:"code" json:"code"`
	Reasoning      []string `yaml:"reasoning" json:"reasoning"`
	Simple         []string `yaml:"simple" json:"simple"`
	Technical      []string `yaml:"technical" json:"technical"`
	Creative       []string `yaml:"creative" json:"creative"`
	Imperative     []string `yaml:"imperative" json:"imperative"`
	Constraint     []string `yaml:"constraint" json:"constraint"`
	OutputFormat   []string `yaml:"output_format" json:"outputFormat"`
	Reference      []string `yaml:"reference" json:"reference"`
	Negation       []string `yaml:"negation" json:"negation"`
	DomainSpecific []string `yaml:"domain_specific" json:"domainSpecific"`
	AgenticTask    []string `yaml:"agentic_task" json:"agenticTask"`
}

// Overrides adjust the classified tier after scoring.
type Overrides struct {
	MaxTokensForceComplex   int    `yaml:"max_tokens_force_complex" json:"maxTokensForceComplex"`
	StructuredOutputMinTier string `yaml:"structured_output_min_tier" json:"structuredOutputMinTier"`
	AmbiguousDefaultTier    string `yaml:"ambiguous_default_tier" json:"ambiguousDefaultTier"`
	AgenticMode             bool   `yaml:"agentic_mode" json:"agenticMode"`
}

// TierPreference is an ordered preferred-model list plus the capabilities a
// candidate must advertise to serve the tier.
type TierPreference struct {
	PreferredModels []string `yaml:"preferred_models" json:"preferredModels"`
	Capabilities    []string `yaml:"capabilities" json:"capabilities"`
}

// LoadConfig reads a routing configuration overlay from a YAML file and
// merges it onto the defaults, so keys absent from the file keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patch Patch
	if err := yaml.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("parse routing config %s: %w", path, err)
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("routing config %s: %w", path, err)
	}

	cfg := DefaultConfig().Merge(&patch)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("routing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the structural invariants of a merged configuration.
func (c *Config) Validate() error {
	for name, w := range c.Scoring.DimensionWeights {
		if !knownDimension(name) {
			return fmt.Errorf("scoring.dimension_weights.%s: unknown dimension", name)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("scoring.dimension_weights.%s: weight must be finite", name)
		}
	}

	b := c.Scoring.TierBoundaries
	if !(b.SimpleMedium < b.MediumComplex && b.MediumComplex < b.ComplexReasoning) {
		return fmt.Errorf("scoring.tier_boundaries: boundaries must be strictly ascending")
	}
	if c.Scoring.TokenThresholds.Simple <= 0 || c.Scoring.TokenThresholds.Complex <= c.Scoring.TokenThresholds.Simple {
		return fmt.Errorf("scoring.token_thresholds: simple must be positive and below complex")
	}
	if c.Scoring.ConfidenceSteepness <= 0 {
		return fmt.Errorf("scoring.confidence_steepness: must be positive")
	}
	if c.Scoring.ConfidenceThreshold <= 0 || c.Scoring.ConfidenceThreshold > 1 {
		return fmt.Errorf("scoring.confidence_threshold: must be in (0, 1]")
	}

	if c.Overrides.MaxTokensForceComplex <= 0 {
		return fmt.Errorf("overrides.max_tokens_force_complex: must be positive")
	}
	if TierRank(c.Overrides.StructuredOutputMinTier) < 0 {
		return fmt.Errorf("overrides.structured_output_min_tier: unknown tier %q", c.Overrides.StructuredOutputMinTier)
	}
	if TierRank(c.Overrides.AmbiguousDefaultTier) < 0 {
		return fmt.Errorf("overrides.ambiguous_default_tier: unknown tier %q", c.Overrides.AmbiguousDefaultTier)
	}

	for _, table := range []struct {
		key   string
		prefs map[string]TierPreference
	}{
		{"tier_preferences", c.TierPreferences},
		{"agentic_preferences", c.AgenticPreferences},
	} {
		for tier := range table.prefs {
			if TierRank(tier) < 0 {
				return fmt.Errorf("%s.%s: unknown tier", table.key, tier)
			}
		}
	}

	for tier, threshold := range c.CostThresholds {
		if TierRank(tier) < 0 {
			return fmt.Errorf("cost_thresholds.%s: unknown tier", tier)
		}
		if threshold <= 0 {
			return fmt.Errorf("cost_thresholds.%s: must be positive", tier)
		}
	}

	return nil
}

// Preferences returns the preference table entry for a tier, honoring the
// agentic flag. The bool reports whether the tier has an entry at all.
func (c *Config) Preferences(tier string, agentic bool) (TierPreference, bool) {
	table := c.TierPreferences
	if agentic {
		table = c.AgenticPreferences
	}
	pref, ok := table[tier]
	return pref, ok
}

// CostThreshold returns the fallback cost ceiling for a tier.
func (c *Config) CostThreshold(tier string) float64 {
	if t, ok := c.CostThresholds[tier]; ok {
		return t
	}
	// A tier without an explicit ceiling gets the most permissive one.
	max := 50.0
	for _, t := range c.CostThresholds {
		if t > max {
			max = t
		}
	}
	return max
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		Scoring: ScoringConfig{
			DimensionWeights:    copyFloatMap(c.Scoring.DimensionWeights),
			TierBoundaries:      c.Scoring.TierBoundaries,
			TokenThresholds:     c.Scoring.TokenThresholds,
			ConfidenceSteepness: c.Scoring.ConfidenceSteepness,
			ConfidenceThreshold: c.Scoring.ConfidenceThreshold,
			AgenticWeight:       c.Scoring.AgenticWeight,
			Keywords: KeywordSets{
				Code:           copyStrings(c.Scoring.Keywords.Code),
				Reasoning:      copyStrings(c.Scoring.Keywords.Reasoning),
				Simple:         copyStrings(c.Scoring.Keywords.Simple),
				Technical:      copyStrings(c.Scoring.Keywords.Technical),
				Creative:       copyStrings(c.Scoring.Keywords.Creative),
				Imperative:     copyStrings(c.Scoring.Keywords.Imperative),
				Constraint:     copyStrings(c.Scoring.Keywords.Constraint),
				OutputFormat:   copyStrings(c.Scoring.Keywords.OutputFormat),
				Reference:      copyStrings(c.Scoring.Keywords.Reference),
				Negation:       copyStrings(c.Scoring.Keywords.Negation),
				DomainSpecific: copyStrings(c.Scoring.Keywords.DomainSpecific),
				AgenticTask:    copyStrings(c.Scoring.Keywords.AgenticTask),
			},
		},
		Overrides:          c.Overrides,
		TierPreferences:    copyPreferences(c.TierPreferences),
		AgenticPreferences: copyPreferences(c.AgenticPreferences),
		CostThresholds:     copyFloatMap(c.CostThresholds),
	}
}

// SortedTiers returns the tiers present in a preference table, in rank order.
func SortedTiers(prefs map[string]TierPreference) []string {
	tiers := make([]string, 0, len(prefs))
	for tier := range prefs {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return TierRank(tiers[i]) < TierRank(tiers[j]) })
	return tiers
}

func knownDimension(name string) bool {
	for _, d := range DimensionNames() {
		if d == name {
			return true
		}
	}
	return false
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyFloatMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyPreferences(in map[string]TierPreference) map[string]TierPreference {
	out := make(map[string]TierPreference, len(in))
	for k, v := range in {
		out[k] = TierPreference{
			PreferredModels: copyStrings(v.PreferredModels),
			Capabilities:    copyStrings(v.Capabilities),
		}
	}
	return out
}
