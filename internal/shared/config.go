package shared

import (
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/rs/zerolog/log"
)

// Config is read once at startup and treated as read-only afterwards.
// Base URLs carry no trailing slash; endpoint paths are appended verbatim.
type Config struct {
	AppEnv      string        `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8000"`
	MetricsAddr string        `env:"METRICS_ADDR"`
	MySQLDSN    string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/dealerhub?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	RedisDB     int           `env:"REDIS_DB"`
	BackendURL  string        `env:"BACKEND_URL" envDefault:"http://localhost:3030"`
	AnalyzerURL string        `env:"SENTIMENT_ANALYZER_URL" envDefault:"http://localhost:5050/analyze"`
	SearchURL   string        `env:"SEARCHCARS_URL" envDefault:"http://localhost:3050"`
	Timeout     time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Enrichers   int           `env:"SENTIMENT_WORKERS" envDefault:"4"`
}

func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal().Err(err).Msg("config parse failed")
	}
	if c.Enrichers <= 0 {
		c.Enrichers = 1
	}
	return c
}
