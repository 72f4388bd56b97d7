package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppConfig holds process-level configuration. It is built once at startup
// and passed into the components that need it; there are no ambient globals.
type AppConfig struct {
	ServerPort string
	JWTSecret  string
	TokenTTL   time.Duration
}

// LoadAppConfig loads application configuration from environment variables.
// A missing signing secret or TTL is a fatal misconfiguration, not something
// to default around.
func LoadAppConfig() (*AppConfig, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	ttlStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if ttlStr == "" {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS not set in environment")
	}
	ttlHours, err := strconv.ParseInt(ttlStr, 10, 64)
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q", ttlStr)
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080" // Default port
	}

	return &AppConfig{
		ServerPort: port,
		JWTSecret:  secret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
	}, nil
}
