package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Store struct {
		Path string
	}

	Verify struct {
		CameraAvailable     bool
		FingerprintEnrolled bool
	}

	Log struct {
		Level string
	}

	Stub struct {
		Port             string
		GinMode          string
		DBPath           string
		AdminUsername    string
		AdminPassword    string
		JWTSecret        string
		TokenTTL         time.Duration
		CORSAllowOrigins string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.API.BaseURL = getEnv("BIOVOTE_API_URL", "https://bio-mobile-server.vercel.app")
	config.API.Timeout = getEnvAsDuration("BIOVOTE_API_TIMEOUT", 15*time.Second)

	config.Store.Path = getEnv("BIOVOTE_STORE_PATH", "./biovote.db")

	config.Verify.CameraAvailable = getEnvAsBool("BIOVOTE_CAMERA_AVAILABLE", true)
	config.Verify.FingerprintEnrolled = getEnvAsBool("BIOVOTE_FINGERPRINT_ENROLLED", true)

	config.Log.Level = getEnv("BIOVOTE_LOG_LEVEL", "info")

	config.Stub.Port = getEnv("PORT", "8080")
	config.Stub.GinMode = getEnv("GIN_MODE", "debug")
	config.Stub.DBPath = getEnv("STUB_DB_PATH", "./stubserver.sqlite")
	config.Stub.AdminUsername = getEnv("STUB_ADMIN_USERNAME", "admin")
	config.Stub.AdminPassword = getEnv("STUB_ADMIN_PASSWORD", "admin123")
	config.Stub.JWTSecret = getEnv("STUB_JWT_SECRET", "dev-only-secret")
	config.Stub.TokenTTL = getEnvAsDuration("STUB_TOKEN_TTL", time.Hour)
	config.Stub.CORSAllowOrigins = getEnv("STUB_CORS_ALLOW_ORIGINS", "*")

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
