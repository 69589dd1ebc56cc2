package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stay_match/internal/adapters/observability"
	"stay_match/internal/app"
	"stay_match/internal/domain"
)

type Handlers struct {
	Rec      *app.RecommendationService
	Profiles *app.ProfileService
	Catalog  *app.CatalogService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/users", h.listUsers)
	s.mux.Post("/v1/users", h.saveUser)
	s.mux.Get("/v1/users/{id}", h.getUser)
	s.mux.Delete("/v1/users/{id}", h.deleteUser)
	s.mux.Get("/v1/users/{id}/recommendations", h.recommend)

	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Post("/v1/properties", h.saveProperty)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Delete("/v1/properties/{id}", h.deleteProperty)
}

// ---- wire shapes (field names match the seed documents) ----

type userDoc struct {
	ID                   int64           `json:"user_id"`
	Name                 string          `json:"name"`
	GroupSize            int             `json:"group_size"`
	PreferredEnvironment domain.TokenSet `json:"preferred_environment"`
	MustHaveFeatures     domain.TokenSet `json:"must_have_feature"`
	Budget               float64         `json:"budget"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID: d.ID, Name: d.Name, GroupSize: d.GroupSize,
		PreferredEnvironment: d.PreferredEnvironment,
		MustHaveFeatures:     d.MustHaveFeatures,
		Budget:               d.Budget,
	}
}

func userToDoc(u domain.User) userDoc {
	return userDoc{
		ID: u.ID, Name: u.Name, GroupSize: u.GroupSize,
		PreferredEnvironment: u.PreferredEnvironment,
		MustHaveFeatures:     u.MustHaveFeatures,
		Budget:               u.Budget,
	}
}

type propertyDoc struct {
	ID            int64           `json:"property_id"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Type          string          `json:"type"`
	PricePerNight float64         `json:"price_per_night"`
	Capacity      int             `json:"allowed_number_check_in"`
	Features      domain.TokenSet `json:"features"`
	Tags          domain.TokenSet `json:"tags"`
}

func (d propertyDoc) toDomain() domain.Property {
	return domain.Property{
		ID: d.ID, Name: d.Name, Location: d.Location, Type: d.Type,
		PricePerNight: d.PricePerNight, Capacity: d.Capacity,
		Features: d.Features, Tags: d.Tags,
	}
}

func propertyToDoc(p domain.Property) propertyDoc {
	return propertyDoc{
		ID: p.ID, Name: p.Name, Location: p.Location, Type: p.Type,
		PricePerNight: p.PricePerNight, Capacity: p.Capacity,
		Features: p.Features, Tags: p.Tags,
	}
}

type recommendationDoc struct {
	propertyDoc
	AffordScore float64 `json:"afford_score"`
	EnvScore    float64 `json:"env_score"`
	FeatScore   float64 `json:"feat_score"`
	PartyScore  float64 `json:"party_score"`
	MatchScore  float64 `json:"match_score"`
}

// ---- helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ---- recommendations ----

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}

	limit := 0 // engine default
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	recs, err := h.Rec.Recommend(r.Context(), id, limit)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveRecommendation("not_found", -1)
		writeProblem(w, http.StatusNotFound, "Not Found", "no such user")
		return
	case err != nil:
		observability.ObserveRecommendation("error", -1)
		log.Error().Err(err).Int64("user", id).Msg("recommendation failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "recommendation failed")
		return
	}

	out := make([]recommendationDoc, 0, len(recs))
	for _, rec := range recs {
		out = append(out, recommendationDoc{
			propertyDoc: propertyToDoc(rec.Property),
			AffordScore: rec.AffordScore,
			EnvScore:    rec.EnvScore,
			FeatScore:   rec.FeatScore,
			PartyScore:  rec.PartyScore,
			MatchScore:  rec.MatchScore,
		})
	}
	if len(out) == 0 {
		observability.ObserveRecommendation("empty", 0)
	} else {
		observability.ObserveRecommendation("ok", len(out))
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write recommendations body")
	}
}

// ---- users ----

func (h *Handlers) saveUser(w http.ResponseWriter, r *http.Request) {
	var doc userDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if doc.ID <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid user_id", "user_id must be a positive integer")
		return
	}
	if doc.GroupSize < 1 {
		writeProblem(w, http.StatusBadRequest, "Invalid group_size", "group_size must be >= 1")
		return
	}
	if doc.Budget < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid budget", "budget must be >= 0")
		return
	}
	if err := h.Profiles.Save(r.Context(), doc.toDomain()); err != nil {
		log.Error().Err(err).Msg("save user failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "save failed")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}
	u, err := h.Profiles.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no such user")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get user failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, userToDoc(u))
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Profiles.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list users failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "list failed")
		return
	}
	out := make([]userDoc, 0, len(users))
	for _, u := range users {
		out = append(out, userToDoc(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}
	if err := h.Profiles.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete user failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- properties ----

func (h *Handlers) saveProperty(w http.ResponseWriter, r *http.Request) {
	var doc propertyDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if doc.ID <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid property_id", "property_id must be a positive integer")
		return
	}
	if doc.Capacity < 1 {
		writeProblem(w, http.StatusBadRequest, "Invalid capacity", "allowed_number_check_in must be >= 1")
		return
	}
	if doc.PricePerNight < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid price", "price_per_night must be >= 0")
		return
	}
	if err := h.Catalog.Save(r.Context(), doc.toDomain()); err != nil {
		log.Error().Err(err).Msg("save property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "save failed")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}
	p, err := h.Catalog.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no such property")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, propertyToDoc(p))
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list properties failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "list failed")
		return
	}
	out := make([]propertyDoc, 0, len(props))
	for _, p := range props {
		out = append(out, propertyToDoc(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
