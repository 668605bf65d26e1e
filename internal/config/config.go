package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	SessionDuration time.Duration
	APITokenSecret  string
	APITokenTTL     time.Duration

	// Base URL used when building verification and OAuth callback links
	AppBaseURL string

	// Directory for generated pronunciation audio files
	AudioDir string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	GoogleClientID     string
	GoogleClientSecret string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./lingualearn.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration: 24 * time.Hour,
		APITokenSecret:  getEnv("API_TOKEN_SECRET", ""),
		APITokenTTL:     24 * time.Hour,

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		AudioDir: getEnv("AUDIO_DIR", "./audio"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "LinguaLearn"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
