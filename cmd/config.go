package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	RedisURL               string
	IdempotencyTTL         time.Duration
	RequestTimeout         time.Duration
	LogLevel               string
	ShortageDigestSchedule string
}

// LoadConfig reads the configuration from the environment. The given .env
// files are loaded first when present; variables already set in the
// environment win.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	idempotencyTTL, err := durationVariable("IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := durationVariable("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:               variable("HTTP_PORT", "8080"),
		DBHost:                 variable("DB_HOST", "localhost"),
		DBPort:                 variable("DB_PORT", "5432"),
		DBUser:                 variable("DB_USER", "postgres"),
		DBPassword:             variable("DB_PASSWORD", ""),
		DBName:                 variable("DB_NAME", "supply"),
		DBSslMode:              variable("DB_SSLMODE", "disable"),
		RedisURL:               variable("REDIS_URL", ""),
		IdempotencyTTL:         idempotencyTTL,
		RequestTimeout:         requestTimeout,
		LogLevel:               variable("LOG_LEVEL", "info"),
		ShortageDigestSchedule: variable("SHORTAGE_DIGEST_SCHEDULE", "0 0 7 * * *"),
	}, nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func variable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
