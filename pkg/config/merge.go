package config

import (
	"fmt"
	"math"
)

// Patch is a partial configuration. Nil fields are left untouched by Merge;
// scalar and list fields replace their counterparts wholesale, nested
// structures merge field by field.
type Patch struct {
	Scoring            *ScoringPatch                  `yaml:"scoring,omitempty" json:"scoring,omitempty"`
	Overrides          *OverridesPatch                `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	TierPreferences    map[string]TierPreferencePatch `yaml:"tier_preferences,omitempty" json:"tierPreferences,omitempty"`
	AgenticPreferences map[string]TierPreferencePatch `yaml:"agentic_preferences,omitempty" json:"agenticPreferences,omitempty"`
	CostThresholds     map[string]float64             `yaml:"cost_thresholds,omitempty" json:"costThresholds,omitempty"`
}

// ScoringPatch is the partial form of ScoringConfig.
type ScoringPatch struct {
	DimensionWeights    map[string]float64    `yaml:"dimension_weights,omitempty" json:"dimensionWeights,omitempty"`
	TierBoundaries      *TierBoundariesPatch  `yaml:"tier_boundaries,omitempty" json:"tierBoundaries,omitempty"`
	TokenThresholds     *TokenThresholdsPatch `yaml:"token_thresholds,omitempty" json:"tokenThresholds,omitempty"`
	ConfidenceSteepness *float64              `yaml:"confidence_steepness,omitempty" json:"confidenceSteepness,omitempty"`
	ConfidenceThreshold *float64              `yaml:"confidence_threshold,omitempty" json:"confidenceThreshold,omitempty"`
	AgenticWeight       *float64              `yaml:"agentic_weight,omitempty" json:"agenticWeight,omitempty"`
	Keywords            *KeywordSetsPatch     `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// TierBoundariesPatch is the partial form of TierBoundaries.
type TierBoundariesPatch struct {
	SimpleMedium     *float64 `yaml:"simple_medium,omitempty" json:"simpleMedium,omitempty"`
	MediumComplex    *float64 `yaml:"medium_complex,omitempty" json:"mediumComplex,omitempty"`
	ComplexReasoning *float64 `yaml:"complex_reasoning,omitempty" json:"complexReasoning,omitempty"`
}

// TokenThresholdsPatch is the partial form of TokenThresholds.
type TokenThresholdsPatch struct {
	Simple  *int `yaml:"simple,omitempty" json:"simple,omitempty"`
	Complex *int `yaml:"complex,omitempty" json:"complex,omitempty"`
}

// KeywordSetsPatch replaces keyword lists wholesale; nil lists keep defaults.
type KeywordSetsPatch struct {
	Code           []string `yaml:"code,omitempty" json:"code,omitempty"`
	Reasoning      []string `yaml:"reasoning,omitempty" json:"reasoning,omitempty"`
	Simple         []string `yaml:"simple,omitempty" json:"simple,omitempty"`
	Technical      []string `yaml:"technical,omitempty" json:"technical,omitempty"`
	Creative       []string `yaml:"creative,omitempty" json:"creative,omitempty"`
	Imperative     []string `yaml:"imperative,omitempty" json:"imperative,omitempty"`
	Constraint     []string `yaml:"constraint,omitempty" json:"constraint,omitempty"`
	OutputFormat   []string `yaml:"output_format,omitempty" json:"outputFormat,omitempty"`
	Reference      []string `yaml:"reference,omitempty" json:"reference,omitempty"`
	Negation       []string `yaml:"negation,omitempty" json:"negation,omitempty"`
	DomainSpecific []string `yaml:"domain_specific,omitempty" json:"domainSpecific,omitempty"`
	AgenticTask    []string `yaml:"agentic_task,omitempty" json:"agenticTask,omitempty"`
}

// OverridesPatch is the partial form of Overrides.
type OverridesPatch struct {
	MaxTokensForceComplex   *int    `yaml:"max_tokens_force_complex,omitempty" json:"maxTokensForceComplex,omitempty"`
	StructuredOutputMinTier *string `yaml:"structured_output_min_tier,omitempty" json:"structuredOutputMinTier,omitempty"`
	AmbiguousDefaultTier    *string `yaml:"ambiguous_default_tier,omitempty" json:"ambiguousDefaultTier,omitempty"`
	AgenticMode             *bool   `yaml:"agentic_mode,omitempty" json:"agenticMode,omitempty"`
}

// TierPreferencePatch is the partial form of TierPreference.
type TierPreferencePatch struct {
	PreferredModels []string `yaml:"preferred_models,omitempty" json:"preferredModels,omitempty"`
	Capabilities    []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

// Validate rejects patches whose keys cannot belong to any configuration,
// naming the offending key. Structural invariants of the merged result are
// checked separately by Config.Validate.
func (p *Patch) Validate() error {
	if p == nil {
		return nil
	}
	if p.Scoring != nil {
		for name, w := range p.Scoring.DimensionWeights {
			if !knownDimension(name) {
				return fmt.Errorf("scoring.dimension_weights.%s: unknown dimension", name)
			}
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("scoring.dimension_weights.%s: weight must be finite", name)
			}
		}
	}
	if p.Overrides != nil {
		if t := p.Overrides.StructuredOutputMinTier; t != nil && TierRank(*t) < 0 {
			return fmt.Errorf("overrides.structured_output_min_tier: unknown tier %q", *t)
		}
		if t := p.Overrides.AmbiguousDefaultTier; t != nil && TierRank(*t) < 0 {
			return fmt.Errorf("overrides.ambiguous_default_tier: unknown tier %q", *t)
		}
	}
	for tier := range p.TierPreferences {
		if TierRank(tier) < 0 {
			return fmt.Errorf("tier_preferences.%s: unknown tier", tier)
		}
	}
	for tier := range p.AgenticPreferences {
		if TierRank(tier) < 0 {
			return fmt.Errorf("agentic_preferences.%s: unknown tier", tier)
		}
	}
	for tier := range p.CostThresholds {
		if TierRank(tier) < 0 {
			return fmt.Errorf("cost_thresholds.%s: unknown tier", tier)
		}
	}
	return nil
}

// Merge applies a patch to the configuration and returns the merged copy.
// The receiver is never modified.
func (c *Config) Merge(p *Patch) *Config {
	out := c.Clone()
	if p == nil {
		return out
	}

	if p.Scoring != nil {
		mergeScoring(&out.Scoring, p.Scoring)
	}
	if p.Overrides != nil {
		o := p.Overrides
		if o.MaxTokensForceComplex != nil {
			out.Overrides.MaxTokensForceComplex = *o.MaxTokensForceComplex
		}
		if o.StructuredOutputMinTier != nil {
			out.Overrides.StructuredOutputMinTier = *o.StructuredOutputMinTier
		}
		if o.AmbiguousDefaultTier != nil {
			out.Overrides.AmbiguousDefaultTier = *o.AmbiguousDefaultTier
		}
		if o.AgenticMode != nil {
			out.Overrides.AgenticMode = *o.AgenticMode
		}
	}
	mergePreferences(out.TierPreferences, p.TierPreferences)
	mergePreferences(out.AgenticPreferences, p.AgenticPreferences)
	for tier, threshold := range p.CostThresholds {
		out.CostThresholds[tier] = threshold
	}

	return out
}

func mergeScoring(dst *ScoringConfig, p *ScoringPatch) {
	for name, w := range p.DimensionWeights {
		dst.DimensionWeights[name] = w
	}
	if p.TierBoundaries != nil {
		if v := p.TierBoundaries.SimpleMedium; v != nil {
			dst.TierBoundaries.SimpleMedium = *v
		}
		if v := p.TierBoundaries.MediumComplex; v != nil {
			dst.TierBoundaries.MediumComplex = *v
		}
		if v := p.TierBoundaries.ComplexReasoning; v != nil {
			dst.TierBoundaries.ComplexReasoning = *v
		}
	}
	if p.TokenThresholds != nil {
		if v := p.TokenThresholds.Simple; v != nil {
			dst.TokenThresholds.Simple = *v
		}
		if v := p.TokenThresholds.Complex; v != nil {
			dst.TokenThresholds.Complex = *v
		}
	}
	if p.ConfidenceSteepness != nil {
		dst.ConfidenceSteepness = *p.ConfidenceSteepness
	}
	if p.ConfidenceThreshold != nil {
		dst.ConfidenceThreshold = *p.ConfidenceThreshold
	}
	if p.AgenticWeight != nil {
		dst.AgenticWeight = *p.AgenticWeight
	}
	if p.Keywords != nil {
		mergeKeywords(&dst.Keywords, p.Keywords)
	}
}

func mergeKeywords(dst *KeywordSets, p *KeywordSetsPatch) {
	if p.Code != nil {
		dst.Code = copyStrings(p.Code)
	}
	if p.Reasoning != nil {
		dst.Reasoning = copyStrings(p.Reasoning)
	}
	if p.Simple != nil {
		dst.Simple = copyStrings(p.Simple)
	}
	if p.Technical != nil {
		dst.Technical = copyStrings(p.Technical)
	}
	if p.Creative != nil {
		dst.Creative = copyStrings(p.Creative)
	}
	if p.Imperative != nil {
		dst.Imperative = copyStrings(p.Imperative)
	}
	if p.Constraint != nil {
		dst.Constraint = copyStrings(p.Constraint)
	}
	if p.OutputFormat != nil {
		dst.OutputFormat = copyStrings(p.OutputFormat)
	}
	if p.Reference != nil {
		dst.Reference = copyStrings(p.Reference)
	}
	if p.Negation != nil {
		dst.Negation = copyStrings(p.Negation)
	}
	if p.DomainSpecific != nil {
		dst.DomainSpecific = copyStrings(p.DomainSpecific)
	}
	if p.AgenticTask != nil {
		dst.AgenticTask = copyStrings(p.AgenticTask)
	}
}

func mergePreferences(dst map[string]TierPreference, patches map[string]TierPreferencePatch) {
	for tier, p := range patches {
		pref := dst[tier]
		if p.PreferredModels != nil {
			pref.PreferredModels = copyStrings(p.PreferredModels)
		}
		if p.Capabilities != nil {
			pref.Capabilities = copyStrings(p.Capabilities)
		}
		dst[tier] = pref
	}
}
