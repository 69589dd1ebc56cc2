package engine_test

import (
	"math"
	"testing"

	"stay_match/internal/domain"
	"stay_match/internal/engine"
)

func beachUser() domain.User {
	return domain.User{
		ID:                   1,
		Name:                 "Ana",
		GroupSize:            4,
		PreferredEnvironment: domain.NewTokenSet("beach"),
		MustHaveFeatures:     domain.NewTokenSet("wifi"),
		Budget:               150,
	}
}

func prop(id int64, price float64, capacity int, tags, features []string) domain.Property {
	return domain.Property{
		ID:            id,
		Name:          "p",
		PricePerNight: price,
		Capacity:      capacity,
		Tags:          domain.NewTokenSet(tags...),
		Features:      domain.NewTokenSet(features...),
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRank_ScoreComposition(t *testing.T) {
	u := beachUser()
	a := prop(1, 100, 4, []string{"beach"}, []string{"wifi", "pool"})
	b := prop(2, 200, 6, []string{"beach"}, []string{"wifi"}) // over budget

	got := engine.Rank(u, []domain.Property{a, b}, 5, engine.DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("expected only property A, got %d results", len(got))
	}
	r := got[0]
	if r.Property.ID != 1 {
		t.Fatalf("expected property 1, got %d", r.Property.ID)
	}
	if !almostEqual(r.AffordScore, 50.0/150.0) {
		t.Fatalf("afford score: got %v", r.AffordScore)
	}
	if r.EnvScore != 1.0 {
		t.Fatalf("env score: got %v", r.EnvScore)
	}
	if r.FeatScore != 0.5 {
		t.Fatalf("feat score: got %v (1 of 2 features matched)", r.FeatScore)
	}
	if r.PartyScore != 0 {
		t.Fatalf("party score: got %v (capacity == group size)", r.PartyScore)
	}
	want := 0.45*(50.0/150.0) + 0.20*1.0 + 0.15*0.5 + 0.20*0
	if !almostEqual(r.MatchScore, want) {
		t.Fatalf("match score: got %v want %v", r.MatchScore, want)
	}
}

func TestRank_FeasibilityIsHard(t *testing.T) {
	u := beachUser()
	catalog := []domain.Property{
		prop(1, 151, 10, []string{"beach"}, []string{"wifi"}),   // over budget by 1
		prop(2, 50, 3, []string{"beach"}, []string{"wifi"}),     // capacity under group
		prop(3, 149.99, 4, []string{"beach"}, []string{"wifi"}), // feasible
	}
	got := engine.Rank(u, catalog, 10, engine.DefaultOptions())
	if len(got) != 1 || got[0].Property.ID != 3 {
		t.Fatalf("expected only property 3, got %+v", ids(got))
	}
}

func TestRank_CapacityExcludedRegardlessOfOtherFactors(t *testing.T) {
	u := beachUser()
	u.GroupSize = 5
	// Free, perfect tags and features, but capacity 4 < group 5.
	p := prop(1, 0, 4, []string{"beach"}, []string{"wifi"})
	if got := engine.Rank(u, []domain.Property{p}, 5, engine.DefaultOptions()); len(got) != 0 {
		t.Fatalf("capacity-infeasible property must never appear, got %+v", ids(got))
	}
}

func TestRank_ZeroFeatureMatchVeto(t *testing.T) {
	u := beachUser() // must have wifi
	catalog := []domain.Property{
		prop(1, 50, 6, []string{"beach"}, []string{"pool", "parking"}), // feasible, no wifi
		prop(2, 120, 4, []string{"beach"}, []string{"wifi"}),
	}
	got := engine.Rank(u, catalog, 5, engine.DefaultOptions())
	if len(got) != 1 || got[0].Property.ID != 2 {
		t.Fatalf("zero feature match must be vetoed, got %+v", ids(got))
	}

	// No declared must-haves: the veto does not apply.
	u.MustHaveFeatures = nil
	got = engine.Rank(u, catalog, 5, engine.DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("without must-haves both properties qualify, got %+v", ids(got))
	}
}

func TestRank_ScoreBounds(t *testing.T) {
	u := beachUser()
	catalog := []domain.Property{
		prop(1, 0, 400, []string{"beach", "sea", "sand"}, []string{"wifi"}),
		prop(2, 150, 4, nil, []string{"wifi", "pool", "gym", "spa"}),
		prop(3, 75, 8, []string{"mountain"}, []string{"wifi"}),
	}
	for _, r := range engine.Rank(u, catalog, 10, engine.DefaultOptions()) {
		for name, s := range map[string]float64{
			"afford": r.AffordScore, "env": r.EnvScore,
			"feat": r.FeatScore, "party": r.PartyScore, "match": r.MatchScore,
		} {
			if s < 0 || s > 1 {
				t.Fatalf("%s score out of [0,1] for property %d: %v", name, r.Property.ID, s)
			}
		}
	}
}

func TestRank_WeightNormalizationInvariance(t *testing.T) {
	u := beachUser()
	catalog := []domain.Property{
		prop(1, 100, 6, []string{"beach"}, []string{"wifi", "pool"}),
		prop(2, 80, 4, []string{"beach", "quiet"}, []string{"wifi"}),
		prop(3, 140, 8, []string{"lake"}, []string{"wifi", "sauna"}),
	}
	ones := engine.DefaultOptions()
	ones.Weights = engine.Weights{Afford: 1, Env: 1, Feat: 1, Party: 1}
	tens := engine.DefaultOptions()
	tens.Weights = engine.Weights{Afford: 10, Env: 10, Feat: 10, Party: 10}

	a := engine.Rank(u, catalog, 10, ones)
	b := engine.Rank(u, catalog, 10, tens)
	if len(a) != len(b) {
		t.Fatalf("result sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Property.ID != b[i].Property.ID {
			t.Fatalf("ordering differs at %d: %d vs %d", i, a[i].Property.ID, b[i].Property.ID)
		}
		if !almostEqual(a[i].MatchScore, b[i].MatchScore) {
			t.Fatalf("scores differ at %d: %v vs %v", i, a[i].MatchScore, b[i].MatchScore)
		}
	}
}

func TestRank_ZeroWeightsFallBackToDefaults(t *testing.T) {
	u := beachUser()
	p := prop(1, 100, 4, []string{"beach"}, []string{"wifi", "pool"})

	zero := engine.DefaultOptions()
	zero.Weights = engine.Weights{}
	got := engine.Rank(u, []domain.Property{p}, 5, zero)
	want := engine.Rank(u, []domain.Property{p}, 5, engine.DefaultOptions())
	if len(got) != 1 || !almostEqual(got[0].MatchScore, want[0].MatchScore) {
		t.Fatalf("zero weights should score like defaults: %+v vs %+v", got, want)
	}
}

func TestRank_Idempotent(t *testing.T) {
	u := beachUser()
	catalog := []domain.Property{
		prop(1, 100, 6, []string{"beach"}, []string{"wifi"}),
		prop(2, 80, 5, []string{"beach"}, []string{"wifi", "pool"}),
		prop(3, 120, 8, []string{"beach", "sea"}, []string{"wifi"}),
	}
	opts := engine.DefaultOptions()
	opts.TieNoise = true
	opts.Seed = 42

	a := engine.Rank(u, catalog, 10, opts)
	b := engine.Rank(u, catalog, 10, opts)
	if len(a) != len(b) {
		t.Fatalf("sizes differ")
	}
	for i := range a {
		if a[i].Property.ID != b[i].Property.ID || !almostEqual(a[i].MatchScore, b[i].MatchScore) {
			t.Fatalf("rank not reproducible at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRank_TopNTruncationAndPrefixStability(t *testing.T) {
	u := beachUser()
	var catalog []domain.Property
	for i := int64(1); i <= 8; i++ {
		catalog = append(catalog, prop(i, float64(50+i*10), 4+int(i), []string{"beach"}, []string{"wifi"}))
	}
	full := engine.Rank(u, catalog, len(catalog), engine.DefaultOptions())
	for n := 1; n <= len(catalog); n++ {
		got := engine.Rank(u, catalog, n, engine.DefaultOptions())
		if len(got) > n {
			t.Fatalf("top-%d returned %d items", n, len(got))
		}
		for i := range got {
			if got[i].Property.ID != full[i].Property.ID {
				t.Fatalf("top-%d is not a prefix of the full ranking at %d", n, i)
			}
		}
	}
}

func TestRank_TieBreakByAscendingID(t *testing.T) {
	u := beachUser()
	// Identical in every scored dimension; only ids differ.
	twin := func(id int64) domain.Property {
		return prop(id, 100, 4, []string{"beach"}, []string{"wifi"})
	}
	catalog := []domain.Property{twin(9), twin(3), twin(7), twin(1)}
	got := engine.Rank(u, catalog, 10, engine.DefaultOptions())
	want := []int64{1, 3, 7, 9}
	for i, id := range want {
		if got[i].Property.ID != id {
			t.Fatalf("tie-break order: got %v want %v", ids(got), want)
		}
	}
}

func TestRank_EmptyCatalogAndEmptyResult(t *testing.T) {
	u := beachUser()
	if got := engine.Rank(u, nil, 5, engine.DefaultOptions()); len(got) != 0 {
		t.Fatalf("empty catalog must yield empty result")
	}
	over := prop(1, 1000, 10, []string{"beach"}, []string{"wifi"})
	if got := engine.Rank(u, []domain.Property{over}, 5, engine.DefaultOptions()); len(got) != 0 {
		t.Fatalf("nothing feasible must yield empty result, got %+v", ids(got))
	}
}

func TestRank_DoesNotMutateInputs(t *testing.T) {
	u := beachUser()
	catalog := []domain.Property{
		prop(2, 80, 5, []string{"beach"}, []string{"wifi"}),
		prop(1, 100, 6, []string{"beach"}, []string{"wifi"}),
	}
	engine.Rank(u, catalog, 5, engine.DefaultOptions())
	if catalog[0].ID != 2 || catalog[1].ID != 1 {
		t.Fatalf("input catalog order mutated: %d, %d", catalog[0].ID, catalog[1].ID)
	}
}

func ids(recs []domain.Recommendation) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Property.ID)
	}
	return out
}
