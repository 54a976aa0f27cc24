package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "4000"
	DefaultTokenTTL    = 7 * 24 * time.Hour
	DefaultRateRPS     = 5.0
	DefaultRateBurst   = 30
	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	SecretKey      string
	Port           string
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	TokenTTL       time.Duration
	CORSOrigins    string
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsUser    string
	MetricsPass    string
}

// LoadDotEnv reads a .env file when present; variables already in the
// environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the full server configuration from the environment.
func Load() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	tokenTTL, err := resolveTokenTTL()
	if err != nil {
		return Config{}, err
	}
	rps, burst, err := resolveRateLimit()
	if err != nil {
		return Config{}, err
	}

	storage := LoadStorage()
	if storage.DBDriver == "postgres" && storage.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
	}

	return Config{
		SecretKey:      secretKey,
		Port:           port,
		DBDriver:       storage.DBDriver,
		DBPath:         storage.DBPath,
		DatabaseURL:    storage.DatabaseURL,
		TokenTTL:       tokenTTL,
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		MetricsUser:    strings.TrimSpace(os.Getenv("METRICS_USER")),
		MetricsPass:    os.Getenv("METRICS_PASS"),
	}, nil
}

// LoadStorage is the subset needed by commands that only touch the database.
func LoadStorage() Config {
	return Config{
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "movewell.db")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
	}
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveTokenTTL() (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv("TOKEN_TTL"))
	if raw == "" {
		return DefaultTokenTTL, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return 0, fmt.Errorf("TOKEN_TTL must be a positive duration, got %q", raw)
	}
	return ttl, nil
}

func resolveRateLimit() (float64, int, error) {
	rps := DefaultRateRPS
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return 0, 0, fmt.Errorf("RATE_LIMIT_RPS must be a positive number, got %q", raw)
		}
		rps = parsed
	}

	burst := DefaultRateBurst
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer, got %q", raw)
		}
		burst = parsed
	}
	return rps, burst, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
