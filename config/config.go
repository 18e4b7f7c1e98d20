package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings. Deployments either ship an
// advisor.yaml next to the binary or set everything through the
// environment; env values win over file values.
type Config struct {
	// Addr is the HTTP listen address (default ":8080").
	Addr string `yaml:"addr"`

	// DatabaseConnectionString is the Postgres DSN for the catalog store.
	DatabaseConnectionString string `yaml:"database_connection_string"`

	// Mode selects logger configuration: "dev" (default) or "prod".
	Mode string `yaml:"mode"`

	// MajorId selects which major's catalog to load (default "CS").
	MajorId string `yaml:"major_id"`

	// ModelProvider names an external model provider. Empty means none
	// is configured and the deterministic fallback extractor is the only
	// question-parsing path.
	ModelProvider string `yaml:"model_provider"`
}

func defaults() Config {
	return Config{
		Addr:    ":8080",
		Mode:    "dev",
		MajorId: "CS",
	}
}

// Load reads the optional YAML file at path, then applies environment
// overrides. A missing file is fine; an unreadable one is not.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %v: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %v: %w", path, err)
			}
		}
	}

	applyEnv(&cfg.Addr, "ADVISOR_ADDR")
	applyEnv(&cfg.DatabaseConnectionString, "DATABASE_CONNECTION_STRING")
	applyEnv(&cfg.Mode, "ADVISOR_MODE")
	applyEnv(&cfg.MajorId, "ADVISOR_MAJOR")
	applyEnv(&cfg.ModelProvider, "MODEL_PROVIDER")

	if cfg.DatabaseConnectionString == "" {
		return Config{}, fmt.Errorf("database connection string is not configured")
	}

	return cfg, nil
}

func applyEnv(target *string, name string) {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		*target = value
	}
}
