package engine

import (
	"math"

	"stay_match/internal/domain"
)

// affordScore maps price against budget into [0,1]: price at budget scores 0,
// price 0 approaches 1 (capped). The epsilon floor guards a zero budget.
func affordScore(budget, price float64) float64 {
	return clamp01((budget - price) / math.Max(budget, budgetEpsilon))
}

// envScore is the fraction of the property's tags that match the user's
// preferred environments, rounded to 2 decimals. A property with no tags
// scores 0.
func envScore(preferred, tags domain.TokenSet) float64 {
	if tags.Len() == 0 {
		return 0
	}
	return round2(float64(tags.IntersectCount(preferred)) / float64(tags.Len()))
}

// featScore is the fraction of the property's features that match the user's
// must-haves, rounded to 2 decimals. A property listing no features scores 0.
func featScore(mustHave, features domain.TokenSet) float64 {
	if features.Len() == 0 {
		return 0
	}
	return round2(float64(features.IntersectCount(mustHave)) / float64(features.Len()))
}

// partyScore rewards spare capacity beyond the group size, normalized to
// [0,1]. The feasibility filter guarantees capacity >= groupSize here, so the
// headroom x is never negative.
func partyScore(capacity, groupSize int, opts Options) float64 {
	gs := groupSize
	if gs < 1 {
		gs = 1
	}
	r := float64(capacity) / float64(gs)
	x := math.Max(r-1, 0)

	var s float64
	if opts.PartyShape == PartyLinear {
		s = x / (opts.partyRSat() - 1)
	} else {
		s = 1 - math.Exp(-opts.partyK()*x)
	}
	return clamp01(s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
