package domain

// Property is a catalog entry. Read-only from the engine's perspective; the
// persisted capacity column is allowed_number_check_in.
type Property struct {
	ID            int64
	Name          string
	Location      string
	Type          string
	PricePerNight float64 // >= 0
	Capacity      int     // max occupants allowed, >= 1
	Features      TokenSet
	Tags          TokenSet
}

// Recommendation is a property annotated with its per-user factor scores and
// final match score. Ephemeral: computed per request, never persisted.
type Recommendation struct {
	Property    Property `json:"property"`
	AffordScore float64  `json:"afford_score"`
	EnvScore    float64  `json:"env_score"`
	FeatScore   float64  `json:"feat_score"`
	PartyScore  float64  `json:"party_score"`
	MatchScore  float64  `json:"match_score"`
}
