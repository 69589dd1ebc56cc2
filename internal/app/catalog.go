package app

import (
	"context"
	"fmt"

	"stay_match/internal/domain"
)

// CatalogService owns the property CRUD path. A catalog mutation can change
// any user's ranking, so it evicts the entire recommendation cache namespace.
type CatalogService struct {
	store domain.Store
	cache domain.Cache
}

func NewCatalogService(s domain.Store, c domain.Cache) *CatalogService {
	return &CatalogService{store: s, cache: c}
}

func (s *CatalogService) Save(ctx context.Context, p domain.Property) error {
	if err := s.store.UpsertProperty(ctx, p); err != nil {
		return fmt.Errorf("upsert property %d: %w", p.ID, err)
	}
	s.evictAll(ctx)
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	s.evictAll(ctx)
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *CatalogService) evictAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DelPrefix(ctx, RecommendationCachePrefix)
}
