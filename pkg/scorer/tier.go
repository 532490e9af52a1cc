package scorer

import "github.com/zen-systems/tiergate/pkg/config"

// Tier is an ordered complexity class for a prompt.
type Tier string

const (
	TierSimple    Tier = config.TierSimple
	TierMedium    Tier = config.TierMedium
	TierComplex   Tier = config.TierComplex
	TierReasoning Tier = config.TierReasoning
)

// Tiers returns all tiers in ascending complexity order.
func Tiers() []Tier {
	return []Tier{TierSimple, TierMedium, TierComplex, TierReasoning}
}

// Rank returns the tier's ordinal, or -1 for an unknown tier.
func (t Tier) Rank() int {
	return config.TierRank(string(t))
}

// Valid reports whether the tier is one of the four known tiers.
func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// ParseTier converts a tier name to a Tier. The bool reports success.
func ParseTier(name string) (Tier, bool) {
	t := Tier(name)
	return t, t.Valid()
}

// maxTier returns the higher-ranked of two tiers.
func maxTier(a, b Tier) Tier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
