package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"skintone-studio/capture"
	"skintone-studio/db"
)

const (
	defaultPort           = "8080"
	defaultSessionTTL     = 24 * time.Hour
	defaultMaxCaptureSize = 10 << 20
	defaultMaxBodySize    = 16 << 20
)

// Config holds the environment configuration
type Config struct {
	Port                 string
	DatabaseURL          string
	Migrate              bool
	RedisAddr            string
	SessionTTL           time.Duration
	GoogleCredentials    string
	ModelCacheDir        string
	ModelWarmup          bool
	AvatarModelURL       string
	ChromePath           string
	LogMode              string
	MaxAnalysisDimension int
	MaxCaptureBytes      int
	MaxBodyBytes         int
	CaptureIdleTimeout   time.Duration
}

// LoadConfig reads the configuration from environment variables
func LoadConfig() (*Config, error) {
	connStr, err := db.ConnString()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              strings.TrimPrefix(envOr("PORT", defaultPort), ":"),
		DatabaseURL:       connStr,
		Migrate:           os.Getenv("DB_MIGRATE") == "true",
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ModelCacheDir:     os.Getenv("MODEL_CACHE_DIR"),
		ModelWarmup:       os.Getenv("MODEL_WARMUP") == "true",
		AvatarModelURL:    os.Getenv("AVATAR_MODEL_URL"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		LogMode:           envOr("LOG_MODE", "development"),
	}

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.MaxAnalysisDimension, err = intEnv("MAX_ANALYSIS_DIMENSION", 0); err != nil {
		return nil, err
	}
	if cfg.MaxCaptureBytes, err = intEnv("MAX_CAPTURE_BYTES", defaultMaxCaptureSize); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes, err = intEnv("MAX_BODY_BYTES", defaultMaxBodySize); err != nil {
		return nil, err
	}
	if cfg.CaptureIdleTimeout, err = durationEnv("CAPTURE_IDLE_TIMEOUT", capture.DefaultIdleTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}
