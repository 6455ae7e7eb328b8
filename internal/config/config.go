package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               int
	LogLevel           string
	LogPretty          bool
	ProfileRegistryURL string // optional remote source of risk profiles
	Workers            int    // goroutines per simulation run
	MaxTrajectories    int
	MaxHorizonYears    int
}

// Load reads configuration from a .env file, if present, and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 8080),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", false),
		ProfileRegistryURL: getEnv("PROFILE_REGISTRY_URL", ""),
		Workers:            getEnvAsInt("SIM_WORKERS", 1),
		MaxTrajectories:    getEnvAsInt("MAX_TRAJECTORIES", 1000),
		MaxHorizonYears:    getEnvAsInt("MAX_HORIZON_YEARS", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the limits are usable.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be within 1-65535, got %d", c.Port)
	}
	if c.Workers < 1 {
		return fmt.Errorf("SIM_WORKERS must be positive, got %d", c.Workers)
	}
	if c.MaxTrajectories < 1 {
		return fmt.Errorf("MAX_TRAJECTORIES must be positive, got %d", c.MaxTrajectories)
	}
	if c.MaxHorizonYears < 1 {
		return fmt.Errorf("MAX_HORIZON_YEARS must be positive, got %d", c.MaxHorizonYears)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
