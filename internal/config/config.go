// internal/config/config.go
// Centralized configuration management.
// Loads from environment variables with sensible defaults.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string
	RedisURL    string

	// Security
	JWTSecret          string
	BCryptCost         int
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Candidate cache
	CandidateSetTTL  time.Duration // full candidate set entry
	CandidateItemTTL time.Duration // single-user entries

	// Recommendations
	RecommendationLimit int

	// Email verification
	EmailProvider    string // "sendgrid" or "mock"
	EmailFrom        string
	SendGridAPIKey   string
	VerifyCodeExpiry     time.Duration
	VerifyMaxTries       int
	VerifyResendCooldown time.Duration

	// Best-effort side effects (chat provisioning, notifications)
	SideEffectTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		BCryptCost:         getEnvInt("BCRYPT_COST", 10),
		AccessTokenExpiry:  getEnvDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getEnvDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),

		CandidateSetTTL:  getEnvDuration("CANDIDATE_SET_TTL", 5*time.Minute),
		CandidateItemTTL: getEnvDuration("CANDIDATE_ITEM_TTL", time.Hour),

		RecommendationLimit: getEnvInt("RECOMMENDATION_LIMIT", 10),

		EmailProvider:    getEnv("EMAIL_PROVIDER", "mock"),
		EmailFrom:        getEnv("EMAIL_FROM", "noreply@unimate.app"),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		VerifyCodeExpiry:     getEnvDuration("VERIFY_CODE_EXPIRY", 10*time.Minute),
		VerifyMaxTries:       getEnvInt("VERIFY_MAX_TRIES", 5),
		VerifyResendCooldown: getEnvDuration("VERIFY_RESEND_COOLDOWN", time.Minute),

		SideEffectTimeout: getEnvDuration("SIDE_EFFECT_TIMEOUT", 3*time.Second),
	}
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.EmailProvider == "sendgrid" && c.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER=sendgrid")
	}
	if c.RecommendationLimit <= 0 {
		return fmt.Errorf("RECOMMENDATION_LIMIT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
