package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "stay_match/internal/adapters/http_server"
	"stay_match/internal/adapters/observability"
	redisad "stay_match/internal/adapters/redis"
	"stay_match/internal/app"
	"stay_match/internal/engine"
	"stay_match/internal/shared"
	mysqlrepo "stay_match/internal/storage/mysql"
)

func engineOptions(cfg shared.Config) engine.Options {
	opts := engine.DefaultOptions()
	if cfg.WeightAfford+cfg.WeightEnv+cfg.WeightFeat+cfg.WeightParty > 0 {
		opts.Weights = engine.Weights{
			Afford: cfg.WeightAfford,
			Env:    cfg.WeightEnv,
			Feat:   cfg.WeightFeat,
			Party:  cfg.WeightParty,
		}
	}
	if cfg.PartyShape == string(engine.PartyLinear) {
		opts.PartyShape = engine.PartyLinear
	}
	if cfg.TieNoiseSeed != 0 {
		opts.TieNoise = true
		opts.Seed = cfg.TieNoiseSeed
	}
	return opts
}

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// one-time JSON bootstrap, gated on empty tables
	if err := app.NewBootstrapper(repo).Seed(context.Background(), cfg.PropertiesJSON, cfg.UsersJSON); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seed failed")
	}

	rec := app.NewRecommendationService(repo, cache, cfg.CacheTTL, engineOptions(cfg))
	profiles := app.NewProfileService(repo, cache)
	catalog := app.NewCatalogService(repo, cache)

	// http
	srv := server.New(cfg.ThrottleRPS, cfg.ThrottleBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Rec: rec, Profiles: profiles, Catalog: catalog})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
