package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"stay_match/internal/domain"
)

// Repo implements domain.Store on MySQL. Multi-valued fields are stored as
// JSON arrays of normalized tokens; legacy rows holding comma-delimited
// strings still decode via domain.ParseTokenSet on the way out.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func tokensJSON(ts domain.TokenSet) string {
	b, _ := json.Marshal(ts)
	return string(b)
}

// ---- users ----

func (r *Repo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, upsertUserSQL,
		u.ID,
		u.Name,
		u.GroupSize,
		tokensJSON(u.PreferredEnvironment),
		tokensJSON(u.MustHaveFeatures),
		u.Budget,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var name sql.NullString
	var env, must sql.NullString
	if err := row.Scan(&u.ID, &name, &u.GroupSize, &env, &must, &u.Budget); err != nil {
		return domain.User{}, err
	}
	u.Name = name.String
	u.PreferredEnvironment = domain.ParseTokenSet(env.String)
	u.MustHaveFeatures = domain.ParseTokenSet(must.String)
	return u, nil
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	// No-op when the row is absent; deletes are idempotent.
	_, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	return err
}

func (r *Repo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countUsersSQL).Scan(&n)
	return n, err
}

// ---- properties ----

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	_, err := r.db.ExecContext(ctx, upsertPropertySQL,
		p.ID,
		p.Name,
		p.Location,
		p.Type,
		p.PricePerNight,
		p.Capacity,
		tokensJSON(p.Features),
		tokensJSON(p.Tags),
	)
	if err != nil {
		return fmt.Errorf("upsert property: %w", err)
	}
	return nil
}

func scanProperty(row interface{ Scan(...any) error }) (domain.Property, error) {
	var p domain.Property
	var name, location, typ sql.NullString
	var features, tags sql.NullString
	if err := row.Scan(&p.ID, &name, &location, &typ, &p.PricePerNight, &p.Capacity, &features, &tags); err != nil {
		return domain.Property{}, err
	}
	p.Name = name.String
	p.Location = location.String
	p.Type = typ.String
	p.Features = domain.ParseTokenSet(features.String)
	p.Tags = domain.ParseTokenSet(tags.String)
	return p, nil
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertySQL, id))
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (r *Repo) ListProperties(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DeleteProperty(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, deletePropertySQL, id)
	return err
}

func (r *Repo) CountProperties(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countPropertiesSQL).Scan(&n)
	return n, err
}
