// Package router selects a provider and model for a request: it scores
// the prompt into a tier, walks the tier's preferred models in priority
// order, and falls back by cost when none of them is usable.
package router

import (
	"errors"
	"log"

	"github.com/zen-systems/tiergate/pkg/catalog"
	"github.com/zen-systems/tiergate/pkg/config"
	"github.com/zen-systems/tiergate/pkg/scorer"
)

// ErrNoCandidate is returned when no available candidate can serve the
// classified tier, even ignoring cost ceilings.
var ErrNoCandidate = errors.New("router: no candidate available for tier")

// agenticAutoThreshold is the agentic score at which routing switches to
// the agentic preference table on its own.
const agenticAutoThreshold = 0.75

// Request is one routing query.
type Request struct {
	UserText   string
	SystemText string

	// ForceAgentic selects the agentic preference table regardless of the
	// detected agentic score. Callers set it when tools are attached.
	ForceAgentic bool

	// Exclude lists candidate keys (provider/model) that must not be
	// selected, typically candidates that already failed to dispatch.
	Exclude map[string]bool
}

// Router routes requests against a live config snapshot and a candidate
// catalog. Safe for concurrent use.
type Router struct {
	store   *config.Store
	catalog catalog.Catalog
	stats   *Stats
	debug   bool
}

// Option configures a Router.
type Option func(*Router)

// WithDebug enables decision logging.
func WithDebug(debug bool) Option {
	return func(r *Router) {
		r.debug = debug
	}
}

// New creates a router over the given config store and catalog.
func New(store *config.Store, cat catalog.Catalog, opts ...Option) *Router {
	r := &Router{
		store:   store,
		catalog: cat,
		stats:   NewStats(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats exposes the router's counters.
func (r *Router) Stats() *Stats {
	return r.stats
}

// Route scores the request and selects a candidate for it.
func (r *Router) Route(req Request) (*Decision, error) {
	cfg := r.store.Snapshot()
	res := scorer.Score(req.UserText, req.SystemText, cfg)

	agentic := req.ForceAgentic || cfg.Overrides.AgenticMode || res.AgenticScore >= agenticAutoThreshold

	dec := &Decision{
		Tier:       res.Tier,
		Confidence: res.Confidence,
		Score:      res.Score,
		Agentic:    agentic,
		Ambiguous:  res.Ambiguous,
		Signals:    res.Signals,
		Reasoning:  reasoningLine(res.Score, res.Signals),
	}

	selected, usedFallback, err := r.pick(cfg, string(res.Tier), agentic, req.Exclude)
	if err != nil {
		r.stats.observeFailure(string(res.Tier), res.Ambiguous)
		return nil, err
	}
	dec.Provider = selected.Provider
	dec.Model = selected.Model
	dec.UsedFallback = usedFallback
	r.stats.observe(dec)

	if r.debug {
		log.Printf("[router] tier=%s conf=%.2f agentic=%v -> %s (fallback=%v)",
			dec.Tier, dec.Confidence, dec.Agentic, dec.Key(), dec.UsedFallback)
	}
	return dec, nil
}

// pick runs the selection walk for a tier: preferred models in priority
// order, then the cheapest capable candidate under the tier's cost ceiling,
// then the cheapest capable candidate outright.
func (r *Router) pick(cfg *config.Config, tier string, agentic bool, exclude map[string]bool) (catalog.Candidate, bool, error) {
	pref, _ := cfg.Preferences(tier, agentic)
	candidates := r.catalog.Candidates()

	usable := func(c catalog.Candidate) bool {
		return c.Available && !exclude[c.Key()] && c.HasCapabilities(pref.Capabilities)
	}

	for _, model := range pref.PreferredModels {
		for _, c := range candidates {
			if c.Model == model && usable(c) {
				return c, false, nil
			}
		}
	}

	// None of the preferred models is usable; fall back by cost.
	ceiling := cfg.CostThreshold(tier)
	var best catalog.Candidate
	var underCeiling, found bool
	for _, c := range candidates {
		if !usable(c) {
			continue
		}
		within := c.CostScore <= ceiling
		switch {
		case !found:
			best, underCeiling, found = c, within, true
		case within && !underCeiling:
			best, underCeiling = c, true
		case within == underCeiling && c.CostScore < best.CostScore:
			best = c
		}
	}
	if !found {
		return catalog.Candidate{}, false, ErrNoCandidate
	}
	if r.debug && !underCeiling {
		log.Printf("[router] tier=%s cost ceiling %.2f exceeded, using %s (%.2f)",
			tier, ceiling, best.Key(), best.CostScore)
	}
	return best, true, nil
}
