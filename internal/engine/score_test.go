package engine

import (
	"math"
	"testing"

	"stay_match/internal/domain"
)

func TestAffordScore(t *testing.T) {
	cases := []struct {
		budget, price, want float64
	}{
		{150, 100, 50.0 / 150.0},
		{150, 150, 0}, // price at budget
		{150, 0, 1},   // free, capped at 1
		{0, 0, 0},     // zero budget guarded by epsilon
		{100, 100, 0}, // exact boundary
		{100, 99.5, 0.005},
	}
	for _, c := range cases {
		got := affordScore(c.budget, c.price)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("affordScore(%v, %v) = %v, want %v", c.budget, c.price, got, c.want)
		}
	}
}

func TestEnvAndFeatScores_EmptySetsAndFractions(t *testing.T) {
	pref := domain.NewTokenSet("beach", "lake")

	if got := envScore(pref, nil); got != 0 {
		t.Errorf("no tags should score 0, got %v", got)
	}
	// 2 of 3 tags match -> 0.67 after rounding.
	tags := domain.NewTokenSet("beach", "lake", "busy")
	if got := envScore(pref, tags); got != 0.67 {
		t.Errorf("envScore = %v, want 0.67", got)
	}
	// Normalization: case and whitespace differences still intersect.
	if got := envScore(domain.NewTokenSet(" Beach "), domain.NewTokenSet("BEACH")); got != 1 {
		t.Errorf("normalized tokens should match, got %v", got)
	}

	must := domain.NewTokenSet("wifi")
	if got := featScore(must, nil); got != 0 {
		t.Errorf("no features should score 0, got %v", got)
	}
	if got := featScore(must, domain.NewTokenSet("wifi", "pool")); got != 0.5 {
		t.Errorf("featScore = %v, want 0.5", got)
	}
}

func TestPartyScore_Shapes(t *testing.T) {
	opts := DefaultOptions()

	// No headroom: capacity == group size.
	if got := partyScore(4, 4, opts); got != 0 {
		t.Errorf("no headroom should score 0, got %v", got)
	}

	// Expo: monotonically increasing, saturating below 1.
	prev := 0.0
	for c := 4; c <= 40; c += 4 {
		s := partyScore(c, 4, opts)
		if s < prev {
			t.Fatalf("expo party score not monotone at capacity %d: %v < %v", c, s, prev)
		}
		if s < 0 || s > 1 {
			t.Fatalf("expo party score out of bounds: %v", s)
		}
		prev = s
	}
	// x=1 (capacity double the group) with k=1.2.
	want := 1 - math.Exp(-1.2)
	if got := partyScore(8, 4, opts); math.Abs(got-want) > 1e-9 {
		t.Errorf("expo partyScore(8,4) = %v, want %v", got, want)
	}

	// Linear: hits exactly 1 at the saturation ratio.
	opts.PartyShape = PartyLinear
	if got := partyScore(12, 4, opts); got != 1 { // r=3 == rSat
		t.Errorf("linear partyScore at rSat = %v, want 1", got)
	}
	if got := partyScore(8, 4, opts); math.Abs(got-0.5) > 1e-9 { // x=1, rSat-1=2
		t.Errorf("linear partyScore(8,4) = %v, want 0.5", got)
	}
	if got := partyScore(40, 4, opts); got != 1 {
		t.Errorf("linear party score must cap at 1, got %v", got)
	}
}

func TestWeightsNormalized(t *testing.T) {
	w := Weights{Afford: 2, Env: 2, Feat: 2, Party: 2}.normalized()
	for _, v := range []float64{w.Afford, w.Env, w.Feat, w.Party} {
		if math.Abs(v-0.25) > 1e-9 {
			t.Fatalf("expected 0.25 per weight, got %+v", w)
		}
	}
	if got := (Weights{}).normalized(); got != DefaultWeights().normalized() {
		t.Fatalf("zero-sum weights must fall back to defaults, got %+v", got)
	}
}
