package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store is the relational record store backing users and properties. Inserts
// have upsert semantics; deletes are idempotent. Counts gate the one-time
// JSON bootstrap.
type Store interface {
	// Users
	UpsertUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int, error)

	// Properties
	UpsertProperty(ctx context.Context, p Property) error
	GetProperty(ctx context.Context, id int64) (Property, error)
	ListProperties(ctx context.Context) ([]Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	CountProperties(ctx context.Context) (int, error)
}

// Cache is a read-through cache for computed recommendation pages.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// DelPrefix drops every key under the given prefix; used when a catalog
	// mutation invalidates recommendations for all users at once.
	DelPrefix(ctx context.Context, prefix string) error
}
