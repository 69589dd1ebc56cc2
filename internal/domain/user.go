package domain

// User is a guest profile: who is travelling and what they are looking for.
// Mutated only by full replace-on-id; deletes are idempotent.
type User struct {
	ID                   int64
	Name                 string
	GroupSize            int // occupants to accommodate, >= 1
	PreferredEnvironment TokenSet
	MustHaveFeatures     TokenSet
	Budget               float64 // max acceptable price per night, >= 0
}
