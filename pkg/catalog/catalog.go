// Package catalog tracks the models that routing can choose between,
// with the provider, cost score, and capability metadata the selection
// walk needs.
package catalog

import "sort"

// Candidate is one routable model.
type Candidate struct {
	Provider     string   `json:"provider"`
	Model        string   `json:"model"`
	Capabilities []string `json:"capabilities,omitempty"`
	CostScore    float64  `json:"cost_score"`
	Available    bool     `json:"available"`
}

// Key returns the canonical provider/model identifier.
func (c Candidate) Key() string {
	return c.Provider + "/" + c.Model
}

// HasCapabilities reports whether the candidate offers every capability
// in required. An empty requirement always passes.
func (c Candidate) HasCapabilities(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range c.Capabilities {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Catalog enumerates routable candidates.
type Catalog interface {
	Candidates() []Candidate
}

// Static is a fixed candidate set, used directly in tests and as the
// backing store for adapter-derived catalogs.
type Static struct {
	candidates []Candidate
}

// NewStatic copies the given candidates into a Static catalog, ordered
// by key so enumeration is deterministic.
func NewStatic(candidates []Candidate) *Static {
	cs := make([]Candidate, len(candidates))
	copy(cs, candidates)
	sort.Slice(cs, func(i, j int) bool { return cs[i].Key() < cs[j].Key() })
	return &Static{candidates: cs}
}

// Candidates returns a copy of the candidate set.
func (s *Static) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}
