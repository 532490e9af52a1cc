package router

import (
	"fmt"
	"strings"

	"github.com/zen-systems/tiergate/pkg/scorer"
)

// Decision captures one routing outcome: the classified tier plus the
// provider/model the selection walk landed on.
type Decision struct {
	Tier         scorer.Tier `json:"tier"`
	Confidence   float64     `json:"confidence"`
	Score        float64     `json:"score"`
	Provider     string      `json:"provider"`
	Model        string      `json:"model"`
	Agentic      bool        `json:"agentic"`
	Ambiguous    bool        `json:"ambiguous"`
	Signals      []string    `json:"signals,omitempty"`
	Reasoning    string      `json:"reasoning"`
	UsedFallback bool        `json:"used_fallback"`
	Pinned       bool        `json:"pinned,omitempty"`
}

// Key returns the selected candidate's provider/model identifier.
func (d *Decision) Key() string {
	return d.Provider + "/" + d.Model
}

// reasoningLine renders the human-readable trace attached to a decision.
func reasoningLine(score float64, signals []string) string {
	if len(signals) == 0 {
		return fmt.Sprintf("score=%.2f", score)
	}
	return fmt.Sprintf("score=%.2f | %s", score, strings.Join(signals, ", "))
}
