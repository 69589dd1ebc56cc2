// Package engine ranks catalog properties for a user profile. The whole
// pipeline is a single pure pass: hard feasibility filter, four independent
// factor scores per surviving property, weighted aggregation, stable sort,
// top-N truncation. It performs no I/O and never mutates its inputs.
package engine

import (
	"math/rand"
	"sort"

	"stay_match/internal/domain"
)

// Rank returns the topN best-matching properties for the user, each annotated
// with its factor and final scores. topN <= 0 means DefaultTopN. An empty
// result is a normal outcome meaning "no suitable property".
func Rank(user domain.User, catalog []domain.Property, topN int, opts Options) []domain.Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	w := opts.Weights.normalized()

	var rng *rand.Rand
	if opts.TieNoise {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	out := make([]domain.Recommendation, 0, len(catalog))
	for _, p := range catalog {
		if !feasible(user, p) {
			continue
		}
		rec := scoreOne(user, p, w, opts)
		// Zero-match veto: a user who declared must-have features never sees
		// a property matching none of them, whatever its other factors say.
		if user.MustHaveFeatures.Len() > 0 && p.Features.IntersectCount(user.MustHaveFeatures) == 0 {
			continue
		}
		if rng != nil {
			rec.MatchScore += rng.Float64() * 1e-9
		}
		out = append(out, rec)
	}

	// Score descending, property id ascending on ties. The stable sort plus
	// the id key makes the ordering fully reproducible.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].Property.ID < out[j].Property.ID
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// feasible applies the hard eliminations: over budget or under capacity.
// Infeasible properties receive no score at all.
func feasible(u domain.User, p domain.Property) bool {
	return p.PricePerNight <= u.Budget && p.Capacity >= u.GroupSize
}

func scoreOne(u domain.User, p domain.Property, w Weights, opts Options) domain.Recommendation {
	rec := domain.Recommendation{
		Property:    p,
		AffordScore: affordScore(u.Budget, p.PricePerNight),
		EnvScore:    envScore(u.PreferredEnvironment, p.Tags),
		FeatScore:   featScore(u.MustHaveFeatures, p.Features),
		PartyScore:  partyScore(p.Capacity, u.GroupSize, opts),
	}
	rec.MatchScore = w.Afford*rec.AffordScore +
		w.Env*rec.EnvScore +
		w.Feat*rec.FeatScore +
		w.Party*rec.PartyScore
	return rec
}
