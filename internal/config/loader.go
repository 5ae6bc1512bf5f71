package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "YATSTATS_"
	configPathEnv = "YATSTATS_CONFIG"
)

// listKeys are decoded from comma-separated env values.
var listKeys = map[string]bool{
	"reserved_subdomains": true,
}

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. a YAML or TOML file named by YATSTATS_CONFIG
//  3. YATSTATS_* environment variables
//
// A .env file in the working directory is loaded into the environment first.
// DATABASE_URL is used when database_url is still empty.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if path := os.Getenv(configPathEnv); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// YATSTATS_DB_MAX_CONNS -> db_max_conns
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList splits "www, app," into ["www" "app"].
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlParser{}
	}
	return yaml.Parser()
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DatabaseURL == "" {
		return errors.New("database_url must not be empty (set YATSTATS_DATABASE_URL or DATABASE_URL)")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("db_min_conns (%d) exceeds db_max_conns (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.PrimarySiteURL == "" {
		return errors.New("primary_site_url must not be empty")
	}
	return nil
}
