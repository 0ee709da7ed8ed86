package main

import (
	"errors"
	"strings"
	"time"

	"discount-service/discount/infra"
	pkgredis "discount-service/pkg/redis"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// config é lida de variáveis de ambiente (e de .env em execução local).
type config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`

	Precision int32 `envconfig:"DISCOUNT_PRECISION" default:"2"`

	// IMPORTANTE: THROTTLE_RPS=0 desliga o throttle.
	ThrottleRPS        float64       `envconfig:"THROTTLE_RPS" default:"0"`
	ThrottleBurst      int           `envconfig:"THROTTLE_BURST" default:"20"`
	ThrottleKeyHeader  string        `envconfig:"THROTTLE_KEY_HEADER"`
	TrustXFF           bool          `envconfig:"TRUST_XFF" default:"false"`
	RetryAfter         time.Duration `envconfig:"RETRY_AFTER" default:"1s"`
	ThrottlePruneEvery time.Duration `envconfig:"THROTTLE_PRUNE_EVERY" default:"2m"`

	StatsEnabled       bool          `envconfig:"STATS_ENABLED" default:"false"`
	StatsPrefix        string        `envconfig:"STATS_PREFIX" default:"discount:stats"`
	StatsTTL           time.Duration `envconfig:"STATS_TTL" default:"24h"`
	StatsBucket        string        `envconfig:"STATS_BUCKET" default:"minute"`
	StatsTrackCurrency bool          `envconfig:"STATS_TRACK_CURRENCY" default:"false"`

	Redis pkgredis.Config
}

func readConfig(dotenv string) (config, error) {
	// .env é opcional; variáveis já exportadas têm precedência
	_ = godotenv.Load(dotenv)

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return config{}, err
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Precision < 0 {
		return errors.New("DISCOUNT_PRECISION must be >= 0")
	}
	if c.ThrottleRPS < 0 {
		return errors.New("THROTTLE_RPS must be >= 0")
	}
	if c.ThrottleRPS > 0 && c.ThrottleBurst <= 0 {
		return errors.New("THROTTLE_BURST must be > 0 when THROTTLE_RPS > 0")
	}
	if c.StatsEnabled && strings.TrimSpace(c.Redis.URL) == "" {
		return errors.New("REDIS_URL is required when STATS_ENABLED=true")
	}
	switch c.StatsBucket {
	case infra.BucketMinute, infra.BucketNone:
	default:
		return errors.New("STATS_BUCKET must be \"minute\" or \"none\"")
	}
	return nil
}
