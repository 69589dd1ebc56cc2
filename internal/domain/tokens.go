package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// TokenSet is a normalized set of string tokens derived from a multi-valued
// field (amenities, environment tags). Tokens are trimmed, lower-cased and
// deduplicated; the backing slice is kept sorted so two sets with the same
// members compare and serialize identically regardless of input order.
type TokenSet []string

// NewTokenSet normalizes the given tokens into a canonical set.
func NewTokenSet(tokens ...string) TokenSet {
	seen := make(map[string]struct{}, len(tokens))
	out := make(TokenSet, 0, len(tokens))
	for _, t := range tokens {
		n := strings.ToLower(strings.TrimSpace(t))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ParseTokenSet reconciles the legacy persisted encodings into one canonical
// set: a JSON array of strings, a comma-delimited string, or a bare token.
func ParseTokenSet(raw string) TokenSet {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return NewTokenSet(items...)
		}
	}
	return NewTokenSet(strings.Split(s, ",")...)
}

func (ts TokenSet) Len() int { return len(ts) }

func (ts TokenSet) Has(token string) bool {
	n := strings.ToLower(strings.TrimSpace(token))
	for _, t := range ts {
		if t == n {
			return true
		}
	}
	return false
}

// IntersectCount returns the number of tokens present in both sets.
func (ts TokenSet) IntersectCount(other TokenSet) int {
	if len(ts) == 0 || len(other) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(other))
	for _, t := range other {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range ts {
		if _, ok := set[t]; ok {
			n++
		}
	}
	return n
}

// MarshalJSON always emits the canonical array form, never the legacy
// delimited string.
func (ts TokenSet) MarshalJSON() ([]byte, error) {
	if ts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ts))
}

// UnmarshalJSON accepts both the array form and the legacy comma-delimited
// string form, normalizing either.
func (ts *TokenSet) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err == nil {
		*ts = NewTokenSet(items...)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*ts = ParseTokenSet(s)
	return nil
}
