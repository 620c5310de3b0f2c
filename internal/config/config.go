package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB        DatabaseConfig
	Redis     RedisConfig
	Media     MediaConfig
	Seed      SeedConfig
	Worker    WorkerConfig
	CORS      CORSConfig
	Bootstrap BootstrapConfig
}

// BootstrapConfig provisions the super-admin singleton on first boot so the
// platform can be administered before any data exists.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MediaConfig contains the chunked upload proxy endpoint and credentials.
type MediaConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// SeedConfig controls the demo data seeder. A fixed RandomSeed makes repeated
// seeding reproduce the exact same dataset.
type SeedConfig struct {
	RandomSeed int64
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	StatsInterval time.Duration
}

// CORSConfig lists additional allowed origin hosts beyond the defaults.
type CORSConfig struct {
	ExtraHosts []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Media upload proxy
	cfg.Media = MediaConfig{
		BaseURL: getEnv("MEDIA_UPLOAD_URL", ""),
		Token:   getEnv("MEDIA_UPLOAD_TOKEN", ""),
	}
	var err error
	if cfg.Media.Timeout, err = parseDurationEnv("MEDIA_UPLOAD_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid MEDIA_UPLOAD_TIMEOUT: %w", err)
	}

	// Seeder
	cfg.Seed = SeedConfig{
		RandomSeed: int64(getEnvInt("SEED_RANDOM_SEED", 1)),
	}

	// Workers (durations)
	if cfg.Worker.StatsInterval, err = parseDurationEnv("STATS_REFRESH_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid STATS_REFRESH_INTERVAL: %w", err)
	}

	// Bootstrap super-admin
	cfg.Bootstrap = BootstrapConfig{
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@strands.app"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	// CORS
	if raw := getEnv("CORS_EXTRA_HOSTS", ""); raw != "" {
		for _, h := range strings.Split(raw, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.CORS.ExtraHosts = append(cfg.CORS.ExtraHosts, strings.ToLower(h))
			}
		}
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
