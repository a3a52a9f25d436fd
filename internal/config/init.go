package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Settings holds everything read from the environment.
type Settings struct {
	Env           string
	AppPort       string
	DBDriver      string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	HomeCacheTTL  time.Duration
	MediaRoot     string
}

// App is populated by Init.
var App *Settings

var errMissing = errors.New("required setting is not set")

// Load reads .env (when present) and the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	s := &Settings{
		Env:           getenv("APP_ENV", "development"),
		AppPort:       getenv("APP_PORT", "8000"),
		DBDriver:      getenv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MediaRoot:     getenv("MEDIA_ROOT", "media"),
		HomeCacheTTL:  20 * time.Second,
	}

	for name, v := range map[string]string{
		"DB_DSN":     s.DBDSN,
		"REDIS_ADDR": s.RedisAddr,
		"JWT_SECRET": s.JWTSecret,
	} {
		if v == "" {
			return nil, fmt.Errorf("%s: %w", name, errMissing)
		}
	}

	switch s.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		s.RedisDB = db
	}

	if raw := os.Getenv("HOME_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid HOME_CACHE_TTL %q", raw)
		}
		s.HomeCacheTTL = ttl
	}

	return s, nil
}

// Init loads settings into App and stops the process when they are incomplete.
func Init() {
	s, err := Load()
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	App = s
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
