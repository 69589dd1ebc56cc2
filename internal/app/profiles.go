package app

import (
	"context"
	"fmt"

	"stay_match/internal/domain"
)

// ProfileService owns the user CRUD path. Any mutation evicts that user's
// cached recommendation pages so the next request re-ranks.
type ProfileService struct {
	store domain.Store
	cache domain.Cache
}

func NewProfileService(s domain.Store, c domain.Cache) *ProfileService {
	return &ProfileService{store: s, cache: c}
}

// Save upserts the profile (full replace-on-id).
func (s *ProfileService) Save(ctx context.Context, u domain.User) error {
	if err := s.store.UpsertUser(ctx, u); err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	s.evict(ctx, u.ID)
	return nil
}

// Delete is idempotent: deleting an absent user is not an error.
func (s *ProfileService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.evict(ctx, id)
	return nil
}

func (s *ProfileService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *ProfileService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *ProfileService) evict(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DelPrefix(ctx, fmt.Sprintf("%s%d:", RecommendationCachePrefix, userID))
}
