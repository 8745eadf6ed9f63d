package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	BaseURL         string        `json:"base_url"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Datastore (Supabase REST) configuration
	SupabaseURL        string        `json:"supabase_url"`
	SupabaseServiceKey string        `json:"-"`
	StoreTimeout       time.Duration `json:"store_timeout"`

	// Redis configuration (optional; empty URL selects the in-memory cache)
	RedisURL         string        `json:"redis_url"`
	CategoryCacheTTL time.Duration `json:"category_cache_ttl"`

	// View counting
	ViewDedupeTTL time.Duration `json:"view_dedupe_ttl"`

	// Logging
	LogLevel string `json:"log_level"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables and validates it.
// Missing datastore credentials abort startup; a half-configured server
// that answers with empty results is worse than one that refuses to boot.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		BaseURL:         getEnv("BASE_URL", "https://the-claw-news.vercel.app"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		StoreTimeout:       getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),

		RedisURL:         getEnv("REDIS_URL", ""),
		CategoryCacheTTL: getEnvAsDuration("CATEGORY_CACHE_TTL", time.Hour),

		ViewDedupeTTL: getEnvAsDuration("VIEW_DEDUPE_TTL", 10*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate checks that required settings are present before anything is constructed
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("missing SUPABASE_URL environment variable: set it in your .env file or deployment environment")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("missing SUPABASE_SERVICE_ROLE_KEY environment variable: set it in your .env file or deployment environment")
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
