// The seeder force-loads the JSON seed documents into MySQL, upserting every
// record regardless of table state. The API binary's bootstrap only fills
// empty tables; this tool refreshes an existing catalog in bulk.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stay_match/internal/adapters/observability"
	redisad "stay_match/internal/adapters/redis"
	"stay_match/internal/app"
	"stay_match/internal/shared"
	mysqlrepo "stay_match/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("properties", cfg.PropertiesJSON).
		Str("users", cfg.UsersJSON).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	props, err := app.ReadProperties(cfg.PropertiesJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("read properties seed failed")
	}
	users, err := app.ReadUsers(cfg.UsersJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("read users seed failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, p := range props {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertProperty(ctx, p); err != nil {
				log.Warn().Int64("id", p.ID).Err(err).Msg("property upsert failed")
				return
			}
			log.Info().Int64("id", p.ID).Msg("property upserted")
		}()
	}

	for _, u := range users {
		u := u

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertUser(ctx, u); err != nil {
				log.Warn().Int64("id", u.ID).Err(err).Msg("user upsert failed")
				return
			}
			log.Info().Int64("id", u.ID).Msg("user upserted")
		}()
	}

	wg.Wait()

	// Forced reload stales every cached recommendation page.
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.DelPrefix(ctx, app.RecommendationCachePrefix); err != nil {
		log.Warn().Err(err).Msg("recommendation cache flush failed")
	}

	log.Info().Int("properties", len(props)).Int("users", len(users)).Msg("seeding completed")
}
