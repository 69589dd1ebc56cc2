package app

import (
	"strconv"
	"strings"

	"stay_match/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Seed documents have drifted across revisions: ids under different names,
// multi-valued fields as arrays or comma-delimited strings, singular vs
// plural keys. The registries reconcile every shape seen so far into the one
// canonical record.

var userAliases = map[string][]string{
	"id":          {"user_id", "id"},
	"name":        {"name", "user_name"},
	"group_size":  {"group_size", "groupSize", "party_size"},
	"environment": {"preferred_environment", "preferred_environments", "environment"},
	"must_have":   {"must_have_feature", "must_have_features", "required_features"},
	"budget":      {"budget", "budget_max", "max_budget"},
}

var propertyAliases = map[string][]string{
	"id":       {"property_id", "id"},
	"name":     {"name", "title"},
	"location": {"location", "city"},
	"type":     {"type", "property_type"},
	"price":    {"price_per_night", "price", "nightly_price"},
	"capacity": {"allowed_number_check_in", "capacity", "max_guests"},
	"features": {"features", "amenities"},
	"tags":     {"tags", "environment_tags"},
}

/********** tiny helpers **********/

func firstString(doc map[string]any, aliases map[string][]string, key string) string {
	for _, k := range aliases[key] {
		if s, ok := doc[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// firstInt64 accepts float64 (JSON numbers), int and numeric strings.
func firstInt64(doc map[string]any, aliases map[string][]string, key string) int64 {
	for _, k := range aliases[key] {
		switch v := doc[k].(type) {
		case float64:
			return int64(v)
		case int:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func firstFloat(doc map[string]any, aliases map[string][]string, key string) float64 {
	for _, k := range aliases[key] {
		switch v := doc[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// firstTokenSet accepts []any of strings, a single string (comma-delimited or
// bare token) and normalizes either to the canonical set.
func firstTokenSet(doc map[string]any, aliases map[string][]string, key string) domain.TokenSet {
	for _, k := range aliases[key] {
		switch v := doc[k].(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, it := range v {
				if s, ok := it.(string); ok {
					items = append(items, s)
				}
			}
			if len(items) > 0 {
				return domain.NewTokenSet(items...)
			}
		case string:
			if ts := domain.ParseTokenSet(v); ts.Len() > 0 {
				return ts
			}
		}
	}
	return nil
}

/********** mappers **********/

func mapUser(doc map[string]any) domain.User {
	u := domain.User{
		ID:                   firstInt64(doc, userAliases, "id"),
		Name:                 firstString(doc, userAliases, "name"),
		GroupSize:            int(firstInt64(doc, userAliases, "group_size")),
		PreferredEnvironment: firstTokenSet(doc, userAliases, "environment"),
		MustHaveFeatures:     firstTokenSet(doc, userAliases, "must_have"),
		Budget:               firstFloat(doc, userAliases, "budget"),
	}
	if u.GroupSize < 1 {
		u.GroupSize = 1
	}
	if u.Budget < 0 {
		u.Budget = 0
	}
	return u
}

func mapProperty(doc map[string]any) domain.Property {
	p := domain.Property{
		ID:            firstInt64(doc, propertyAliases, "id"),
		Name:          firstString(doc, propertyAliases, "name"),
		Location:      firstString(doc, propertyAliases, "location"),
		Type:          firstString(doc, propertyAliases, "type"),
		PricePerNight: firstFloat(doc, propertyAliases, "price"),
		Capacity:      int(firstInt64(doc, propertyAliases, "capacity")),
		Features:      firstTokenSet(doc, propertyAliases, "features"),
		Tags:          firstTokenSet(doc, propertyAliases, "tags"),
	}
	if p.Capacity < 1 {
		p.Capacity = 1
	}
	if p.PricePerNight < 0 {
		p.PricePerNight = 0
	}
	return p
}
