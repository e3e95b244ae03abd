package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	APIBase     string
	APITimeout  time.Duration
	APIRPS      int
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SessionKey  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":3000"),
		MetricsAddr: env("METRICS_ADDR", ""),
		APIBase:     env("API_BASE_URL", "http://localhost:8000"),
		APITimeout:  time.Duration(atoi("API_TIMEOUT_SECONDS", 10)) * time.Second,
		APIRPS:      atoi("API_RPS", 10),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		SessionKey:  env("SESSION_KEY", "hoteldesk:access_token"),
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
