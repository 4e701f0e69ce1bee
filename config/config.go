// Package config loads and validates application configuration from
// environment variables. Loading collects every problem it finds and reports
// them together, so a misconfigured deployment fails once with a full list
// instead of one variable at a time.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// MongoConfig holds connection settings for the document store.
type MongoConfig struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping.
	Timeout time.Duration
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret            string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Mongo  *MongoConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// defaultJWTSecret is used when JWT_SECRET is not set. Deployments are
// expected to override it; the fallback keeps local development working.
const defaultJWTSecret = "default_secret"

func getOptionalEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return value
}

// LoadConfig reads the environment and returns a populated AppConfig. All
// validation errors are aggregated into a single error.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	mongoURI := getOptionalEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getOptionalEnv("MONGO_DB", "todolist")
	mongoTimeout := getOptionalEnvDuration("MONGO_TIMEOUT", 10*time.Second, &errs)
	if mongoURI == "" {
		errs = append(errs, "MONGO_URI must not be empty")
	}

	jwtSecret := getOptionalEnv("JWT_SECRET", defaultJWTSecret)
	accessTokenDuration := getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute, &errs)
	refreshTokenDuration := getOptionalEnvDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour, &errs)

	serverPort := getOptionalEnv("PORT", "8080")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Mongo: &MongoConfig{
			URI:      mongoURI,
			Database: mongoDB,
			Timeout:  mongoTimeout,
		},
		Auth: &AuthConfig{
			JWTSecret:            jwtSecret,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
		},
		Server: &ServerConfig{
			Port: serverPort,
		},
	}, nil
}
