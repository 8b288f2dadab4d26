package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port             string
	Env              string
	DatabaseDSN      string
	JWTSecret        string
	JWTRefreshSecret string
	AccessExpiry     time.Duration
	RefreshExpiry    time.Duration
	UpstreamBaseURL  string
	UpstreamTimeout  time.Duration
	CacheTTL         time.Duration
	FrontendURL      string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/countryexplorer?parseTime=true"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret-change-in-production"),
		AccessExpiry:     getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		RefreshExpiry:    getDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		UpstreamBaseURL:  getEnv("UPSTREAM_BASE_URL", "https://restcountries.com/v3.1"),
		UpstreamTimeout:  getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		CacheTTL:         getDuration("CACHE_TTL", time.Hour),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.Env == "production" {
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			slog.Error("JWT_SECRET must be set in production environment")
			os.Exit(1)
		}
		if cfg.JWTRefreshSecret == "dev-refresh-secret-change-in-production" {
			slog.Error("JWT_REFRESH_SECRET must be set in production environment")
			os.Exit(1)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
