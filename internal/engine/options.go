package engine

// PartyShape selects the headroom shaping curve.
type PartyShape string

const (
	PartyExpo   PartyShape = "expo"
	PartyLinear PartyShape = "linear"
)

const (
	// DefaultTopN is the result size when the caller passes no limit.
	DefaultTopN = 5

	// budgetEpsilon floors the affordability divisor so a zero budget never
	// divides by zero.
	budgetEpsilon = 0.001

	defaultPartyK    = 1.2
	defaultPartyRSat = 3.0
)

// Weights are the aggregation coefficients for the four factor scores. They
// are normalized to sum to 1 before use; a zero-sum vector falls back to
// DefaultWeights.
type Weights struct {
	Afford float64 `json:"afford"`
	Env    float64 `json:"env"`
	Feat   float64 `json:"feat"`
	Party  float64 `json:"party"`
}

func DefaultWeights() Weights {
	return Weights{Afford: 0.45, Env: 0.20, Feat: 0.15, Party: 0.20}
}

// normalized returns the weight vector scaled to sum 1, falling back to the
// defaults when the supplied vector sums to zero.
func (w Weights) normalized() Weights {
	total := w.Afford + w.Env + w.Feat + w.Party
	if total == 0 {
		w = DefaultWeights()
		total = w.Afford + w.Env + w.Feat + w.Party
	}
	return Weights{
		Afford: w.Afford / total,
		Env:    w.Env / total,
		Feat:   w.Feat / total,
		Party:  w.Party / total,
	}
}

// Options carries all engine tuning for a single Rank call. Passing it by
// value keeps concurrent requests with different tuning independent; there is
// no package-level mutable state.
type Options struct {
	Weights Weights

	// Party headroom shaping.
	PartyShape PartyShape // PartyExpo (default) or PartyLinear
	PartyK     float64    // expo growth rate; <=0 means default 1.2
	PartyRSat  float64    // linear saturation ratio; <=1 means default 3.0

	// TieNoise enables a microscopic (< 1e-9) seeded perturbation on exact
	// score ties. Off by default; results are fully deterministic either way
	// given the same seed.
	TieNoise bool
	Seed     int64
}

func DefaultOptions() Options {
	return Options{
		Weights:    DefaultWeights(),
		PartyShape: PartyExpo,
		PartyK:     defaultPartyK,
		PartyRSat:  defaultPartyRSat,
	}
}

func (o Options) partyK() float64 {
	if o.PartyK <= 0 {
		return defaultPartyK
	}
	return o.PartyK
}

func (o Options) partyRSat() float64 {
	if o.PartyRSat <= 1 {
		return defaultPartyRSat
	}
	return o.PartyRSat
}
