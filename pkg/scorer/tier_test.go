package scorer

import "testing"

func TestTierOrdering(t *testing.T) {
	tiers := Tiers()
	if len(tiers) != 4 {
		t.Fatalf("tiers = %d, want 4", len(tiers))
	}
	for i, tier := range tiers {
		if !tier.Valid() {
			t.Errorf("%s should be valid", tier)
		}
		if got := tier.Rank(); got != i {
			t.Errorf("%s rank = %d, want %d", tier, got, i)
		}
	}
}

func TestParseTier(t *testing.T) {
	if tier, ok := ParseTier("REASONING"); !ok || tier != TierReasoning {
		t.Errorf("ParseTier(REASONING) = %v, %v", tier, ok)
	}
	if _, ok := ParseTier("EXTREME"); ok {
		t.Errorf("unknown tier should not parse")
	}
}

func TestMaxTier(t *testing.T) {
	if got := maxTier(TierSimple, TierComplex); got != TierComplex {
		t.Errorf("maxTier = %s, want %s", got, TierComplex)
	}
	if got := maxTier(TierReasoning, TierMedium); got != TierReasoning {
		t.Errorf("maxTier = %s, want %s", got, TierReasoning)
	}
}
