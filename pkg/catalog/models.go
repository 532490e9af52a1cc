package catalog

import "github.com/zen-systems/tiergate/pkg/adapter"

// modelSpec holds the routing metadata for a known model. CostScore is a
// relative price signal (roughly USD per million output tokens, scaled),
// not a billing figure.
type modelSpec struct {
	costScore    float64
	capabilities []string
}

const (
	// CapToolCall marks models that support tool/function calling.
	CapToolCall = "tool_call"
	// CapReasoning marks models with an extended reasoning mode.
	CapReasoning = "reasoning"
)

// defaultCostScore is assumed for models an adapter advertises but the
// registry does not know about.
const defaultCostScore = 1.0

var modelSpecs = map[string]modelSpec{
	"gemini-2.0-flash": {costScore: 0.1, capabilities: []string{CapToolCall}},
	"gemini-2.0-pro":   {costScore: 2.5, capabilities: []string{CapToolCall, CapReasoning}},

	"deepseek-chat":     {costScore: 0.27, capabilities: []string{CapToolCall}},
	"deepseek-coder":    {costScore: 0.27, capabilities: []string{CapToolCall}},
	"deepseek-reasoner": {costScore: 0.55, capabilities: []string{CapReasoning}},

	"gpt-5.2-instant":  {costScore: 0.15, capabilities: []string{CapToolCall}},
	"gpt-5.2-codex":    {costScore: 1.5, capabilities: []string{CapToolCall}},
	"gpt-5.2-thinking": {costScore: 2.0, capabilities: []string{CapToolCall, CapReasoning}},
	"gpt-5.2-pro":      {costScore: 15.0, capabilities: []string{CapToolCall, CapReasoning}},

	"claude-haiku-4-20250514":  {costScore: 0.8, capabilities: []string{CapToolCall}},
	"claude-sonnet-4-20250514": {costScore: 3.0, capabilities: []string{CapToolCall, CapReasoning}},
	"claude-opus-4-20250514":   {costScore: 15.0, capabilities: []string{CapToolCall, CapReasoning}},
}

// FromAdapters builds a catalog from the configured adapters. Every model
// an adapter advertises becomes an available candidate; metadata comes
// from the registry, with a neutral cost score for unknown models.
func FromAdapters(adapters map[string]adapter.Adapter) *Static {
	var candidates []Candidate
	for name, a := range adapters {
		for _, model := range a.Models() {
			spec := modelSpecs[model]
			cost := spec.costScore
			if cost == 0 {
				cost = defaultCostScore
			}
			candidates = append(candidates, Candidate{
				Provider:     name,
				Model:        model,
				Capabilities: append([]string(nil), spec.capabilities...),
				CostScore:    cost,
				Available:    true,
			})
		}
	}
	return NewStatic(candidates)
}
