package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"stay_match/internal/domain"
)

// Bootstrapper seeds the store from externally-owned JSON documents exactly
// once: each table is loaded only while it is empty, so re-running is a no-op.
type Bootstrapper struct {
	store domain.Store
}

func NewBootstrapper(s domain.Store) *Bootstrapper {
	return &Bootstrapper{store: s}
}

// Seed loads properties and users from the given files, gated per table on
// emptiness. A missing file is skipped, not an error.
func (b *Bootstrapper) Seed(ctx context.Context, propertiesPath, usersPath string) error {
	if err := b.seedProperties(ctx, propertiesPath); err != nil {
		return err
	}
	return b.seedUsers(ctx, usersPath)
}

func (b *Bootstrapper) seedProperties(ctx context.Context, path string) error {
	props, err := ReadProperties(path)
	if err != nil || props == nil {
		return err
	}
	n, err := b.store.CountProperties(ctx)
	if err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, p := range props {
		if err := b.store.UpsertProperty(ctx, p); err != nil {
			return fmt.Errorf("seed property: %w", err)
		}
	}
	log.Info().Int("count", len(props)).Str("file", path).Msg("seeded properties")
	return nil
}

func (b *Bootstrapper) seedUsers(ctx context.Context, path string) error {
	users, err := ReadUsers(path)
	if err != nil || users == nil {
		return err
	}
	n, err := b.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, u := range users {
		if err := b.store.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	log.Info().Int("count", len(users)).Str("file", path).Msg("seeded users")
	return nil
}

// ReadProperties parses a seed document into canonical records, reconciling
// the legacy field encodings. A missing file yields (nil, nil).
func ReadProperties(path string) ([]domain.Property, error) {
	docs, ok, err := readDocs(path)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]domain.Property, 0, len(docs))
	for _, doc := range docs {
		out = append(out, mapProperty(doc))
	}
	return out, nil
}

// ReadUsers is the user-side counterpart of ReadProperties.
func ReadUsers(path string) ([]domain.User, error) {
	docs, ok, err := readDocs(path)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		out = append(out, mapUser(doc))
	}
	return out, nil
}

// readDocs returns (docs, fileExists, err).
func readDocs(path string) ([]map[string]any, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return docs, true, nil
}
