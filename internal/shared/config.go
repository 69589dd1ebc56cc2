package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	PropertiesJSON string
	UsersJSON      string
	SeedWorkers    int

	CacheTTL time.Duration

	// Engine tuning overrides; zero values mean engine defaults.
	WeightAfford float64
	WeightEnv    float64
	WeightFeat   float64
	WeightParty  float64
	PartyShape   string // expo|linear
	TieNoiseSeed int64  // 0 disables tie noise

	ThrottleRPS   float64
	ThrottleBurst int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staymatch?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		PropertiesJSON: env("PROPERTIES_JSON", "properties.json"),
		UsersJSON:      env("USERS_JSON", "users.json"),
		SeedWorkers:    atoi("SEED_WORKERS", 8),

		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		WeightAfford: atof("WEIGHT_AFFORD", 0),
		WeightEnv:    atof("WEIGHT_ENV", 0),
		WeightFeat:   atof("WEIGHT_FEAT", 0),
		WeightParty:  atof("WEIGHT_PARTY", 0),
		PartyShape:   env("PARTY_SHAPE", "expo"),
		TieNoiseSeed: int64(atoi("TIE_NOISE_SEED", 0)),

		ThrottleRPS:   atof("THROTTLE_RPS", 50),
		ThrottleBurst: atoi("THROTTLE_BURST", 100),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
