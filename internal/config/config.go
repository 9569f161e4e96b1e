package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port             string `koanf:"port"`
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	UploadMaxRows    int    `koanf:"upload_max_rows"`
}

// ProcessEnvironmentVariables loads configuration in layers: built-in
// defaults, then the optional YAML file named by LEDGER_CONFIG_FILE, then
// LEDGER_-prefixed environment variables.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	// In all cases the default behavior should be for the docker compose setup
	err := k.Load(confmap.Provider(map[string]interface{}{
		"port":              "9446",
		"postgres_address":  "localhost",
		"postgres_port":     "5433",
		"postgres_db":       "postgres",
		"postgres_username": "postgres",
		"postgres_password": "testpassword",
		"upload_max_rows":   5000,
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if path := os.Getenv("LEDGER_CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	err = k.Load(env.Provider("LEDGER_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LEDGER_"))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	return cfg, nil
}

// PostgresURL builds the connection string used by lib/pq and golang-migrate.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword +
		"@" + c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB +
		"?sslmode=disable"
}
