package router

import "sync"

// Stats accumulates routing counters. All methods are safe for
// concurrent use.
type Stats struct {
	mu                sync.Mutex
	totalRouted       uint64
	tiers             map[string]uint64
	providers         map[string]uint64
	ambiguous         uint64
	fallbackAttempts  uint64
	candidateFailures uint64
}

// StatsSnapshot is a point-in-time copy of the routing counters.
type StatsSnapshot struct {
	TotalRouted       uint64            `json:"total_routed"`
	Tiers             map[string]uint64 `json:"tiers"`
	Providers         map[string]uint64 `json:"providers"`
	Ambiguous         uint64            `json:"ambiguous"`
	FallbackAttempts  uint64            `json:"fallback_attempts"`
	CandidateFailures uint64            `json:"candidate_failures"`
}

// NewStats returns an empty counter set.
func NewStats() *Stats {
	return &Stats{
		tiers:     make(map[string]uint64),
		providers: make(map[string]uint64),
	}
}

// observe records one routing decision.
func (s *Stats) observe(dec *Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalRouted++
	s.tiers[string(dec.Tier)]++
	s.providers[dec.Provider]++
	if dec.Ambiguous {
		s.ambiguous++
	}
	if dec.UsedFallback {
		s.fallbackAttempts++
	}
}

// observeFailure records a Route call that found no candidate.
func (s *Stats) observeFailure(tier string, ambiguous bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalRouted++
	s.tiers[tier]++
	if ambiguous {
		s.ambiguous++
	}
}

// RecordCandidateFailure counts a dispatch failure against a previously
// selected candidate, typically right before a re-route.
func (s *Stats) RecordCandidateFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidateFailures++
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatsSnapshot{
		TotalRouted:       s.totalRouted,
		Tiers:             make(map[string]uint64, len(s.tiers)),
		Providers:         make(map[string]uint64, len(s.providers)),
		Ambiguous:         s.ambiguous,
		FallbackAttempts:  s.fallbackAttempts,
		CandidateFailures: s.candidateFailures,
	}
	for k, v := range s.tiers {
		snap.Tiers[k] = v
	}
	for k, v := range s.providers {
		snap.Providers[k] = v
	}
	return snap
}
