package scorer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zen-systems/tiergate/pkg/config"
)

// detectorInput carries the pre-normalized views of a request that the
// dimension detectors read from.
type detectorInput struct {
	// text is the lowercased system + user text.
	text string
	// userText is the lowercased user text only.
	userText string
	// systemText is the lowercased system text only.
	systemText string
	// rawUser is the user text as received (question counting).
	rawUser string
	// estTokens is the estimated token count of the full text.
	estTokens int
}

// dimension pairs a weight key with its detector. The detector returns a
// bounded contribution and, when the dimension fired, a short signal.
type dimension struct {
	name   string
	detect func(in detectorInput, sc *config.ScoringConfig) (float64, string)
}

// dimensions is the fixed evaluation order of the 14 scoring dimensions.
// Signals are emitted in this order, which keeps results byte-stable.
var dimensions = []dimension{
	{config.DimTokenCount, detectTokenCount},
	{config.DimCodePresence, keywordDetector("code", func(k *config.KeywordSets) []string { return k.Code }, 1, 2, 0.5, 1.0, false)},
	{config.DimReasoningMarkers, keywordDetector("reasoning", func(k *config.KeywordSets) []string { return k.Reasoning }, 1, 2, 0.7, 1.0, true)},
	{config.DimTechnicalTerms, keywordDetector("technical", func(k *config.KeywordSets) []string { return k.Technical }, 2, 4, 0.5, 1.0, false)},
	{config.DimCreativeMarkers, keywordDetector("creative", func(k *config.KeywordSets) []string { return k.Creative }, 1, 2, 0.5, 0.7, false)},
	{config.DimSimpleIndicators, keywordDetector("simple", func(k *config.KeywordSets) []string { return k.Simple }, 1, 2, -1.0, -1.0, false)},
	{config.DimMultiStepPatterns, detectMultiStep},
	{config.DimQuestionComplexity, detectQuestionComplexity},
	{config.DimImperativeVerbs, keywordDetector("imperative", func(k *config.KeywordSets) []string { return k.Imperative }, 1, 2, 0.3, 0.5, false)},
	{config.DimConstraintCount, keywordDetector("constraints", func(k *config.KeywordSets) []string { return k.Constraint }, 1, 3, 0.3, 0.7, false)},
	{config.DimOutputFormat, keywordDetector("format", func(k *config.KeywordSets) []string { return k.OutputFormat }, 1, 2, 0.4, 0.7, false)},
	{config.DimReferenceComplexity, keywordDetector("references", func(k *config.KeywordSets) []string { return k.Reference }, 1, 2, 0.3, 0.5, false)},
	{config.DimNegationComplexity, keywordDetector("negation", func(k *config.KeywordSets) []string { return k.Negation }, 2, 3, 0.3, 0.5, false)},
	{config.DimDomainSpecificity, keywordDetector("domain-specific", func(k *config.KeywordSets) []string { return k.DomainSpecific }, 1, 2, 0.5, 0.8, false)},
}

var multiStepPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)first.*then`),
	regexp.MustCompile(`(?i)step \d`),
	regexp.MustCompile(`\d\.\s`),
}

func detectTokenCount(in detectorInput, sc *config.ScoringConfig) (float64, string) {
	switch {
	case in.estTokens < sc.TokenThresholds.Simple:
		return -1.0, fmt.Sprintf("short (%d tokens)", in.estTokens)
	case in.estTokens > sc.TokenThresholds.Complex:
		return 1.0, fmt.Sprintf("long (%d tokens)", in.estTokens)
	default:
		return 0, ""
	}
}

func detectMultiStep(in detectorInput, _ *config.ScoringConfig) (float64, string) {
	for _, p := range multiStepPatterns {
		if p.MatchString(in.text) {
			return 0.5, "multi-step"
		}
	}
	return 0, ""
}

func detectQuestionComplexity(in detectorInput, _ *config.ScoringConfig) (float64, string) {
	count := strings.Count(in.rawUser, "?")
	if count > 3 {
		return 0.5, fmt.Sprintf("%d questions", count)
	}
	return 0, ""
}

// keywordDetector builds a detector that scores by keyword match count:
// lowCount matches yield lowScore, highCount matches yield highScore.
// userOnly restricts matching to the user text (reasoning markers).
func keywordDetector(label string, list func(*config.KeywordSets) []string, lowCount, highCount int, lowScore, highScore float64, userOnly bool) func(detectorInput, *config.ScoringConfig) (float64, string) {
	return func(in detectorInput, sc *config.ScoringConfig) (float64, string) {
		text := in.text
		if userOnly {
			text = in.userText
		}
		matches := matchKeywords(text, list(&sc.Keywords))
		switch {
		case len(matches) >= highCount:
			return highScore, signalWithMatches(label, matches)
		case len(matches) >= lowCount:
			return lowScore, signalWithMatches(label, matches)
		default:
			return 0, ""
		}
	}
}

// matchKeywords returns the keywords present in text, preserving list order.
// Matching is case-insensitive substring containment.
func matchKeywords(text string, keywords []string) []string {
	var matches []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			matches = append(matches, kw)
		}
	}
	return matches
}

func signalWithMatches(label string, matches []string) string {
	if len(matches) > 3 {
		matches = matches[:3]
	}
	return fmt.Sprintf("%s (%s)", label, strings.Join(matches, ", "))
}

// detectAgenticTask scores agentic-workflow indicators on the full text.
// It drives the auto-agentic mode decision and contributes to the raw score
// under its own weight, outside the 14-dimension table.
func detectAgenticTask(in detectorInput, sc *config.ScoringConfig) (float64, string) {
	matches := matchKeywords(in.text, sc.Keywords.AgenticTask)
	switch {
	case len(matches) >= 4:
		return 1.0, signalWithMatches("agentic", matches)
	case len(matches) >= 3:
		return 0.6, signalWithMatches("agentic", matches)
	case len(matches) >= 1:
		return 0.2, signalWithMatches("agentic-light", matches)
	default:
		return 0, ""
	}
}
