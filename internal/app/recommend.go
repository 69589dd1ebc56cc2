package app

import (
	"context"
	"fmt"
	"time"

	"stay_match/internal/domain"
	"stay_match/internal/engine"
)

// RecommendationCachePrefix namespaces cached recommendation pages. Catalog
// mutations drop the whole namespace; user mutations drop only that user's
// keys.
const RecommendationCachePrefix = "rec:"

type RecommendationService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
	opts     engine.Options
}

func NewRecommendationService(s domain.Store, c domain.Cache, ttl time.Duration, opts engine.Options) *RecommendationService {
	return &RecommendationService{store: s, cache: c, cacheTTL: ttl, opts: opts}
}

// Recommend resolves the user, snapshots the catalog and ranks it. The ranked
// page is cached per (user, limit); scores themselves are never persisted.
// domain.ErrNotFound means "no such user"; an empty page is a normal outcome.
func (s *RecommendationService) Recommend(ctx context.Context, userID int64, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = engine.DefaultTopN
	}

	key := recKey(userID, limit)
	var cached []domain.Recommendation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	recs := engine.Rank(user, catalog, limit, s.opts)

	// copy before caching so callers can't mutate the cached value
	page := make([]domain.Recommendation, len(recs))
	copy(page, recs)
	_ = s.cache.Set(ctx, key, page, int(s.cacheTTL.Seconds()))

	return recs, nil
}

func recKey(userID int64, limit int) string {
	return fmt.Sprintf("%s%d:%d", RecommendationCachePrefix, userID, limit)
}
