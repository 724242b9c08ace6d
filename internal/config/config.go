package config

import (
	"os"
	"strconv"

	"godrv/internal/family"
)

// Config represents the complete application configuration
type Config struct {
	Family   FamilyConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// FamilyConfig tunes truncation of unbounded family supports
type FamilyConfig struct {
	Completeness float64
	MaxOutcomes  int
}

// ServerConfig holds snapshot server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables, applying the
// documented defaults where unset
func Load() (*Config, error) {
	cfg := &Config{
		Family: FamilyConfig{
			Completeness: family.DefaultCompleteness,
			MaxOutcomes:  family.DefaultMaxOutcomes,
		},
		Server:   ServerConfig{Port: getEnv("DRV_SERVER_PORT", "8080")},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
	}

	if raw := os.Getenv("DRV_FAMILY_COMPLETENESS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		cfg.Family.Completeness = v
	}
	if raw := os.Getenv("DRV_FAMILY_MAX_OUTCOMES"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		cfg.Family.MaxOutcomes = v
	}
	return cfg, nil
}

// FamilyOptions converts the family section into build options
func (c *Config) FamilyOptions() family.Options {
	return family.Options{
		Completeness: c.Family.Completeness,
		MaxOutcomes:  c.Family.MaxOutcomes,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
