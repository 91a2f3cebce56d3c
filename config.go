package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// VerifyConfig holds the TOML-driven verification configuration.
type VerifyConfig struct {
	Database    DatabaseConfig `toml:"database"`
	QueriesFile string         `toml:"queries_file"`
	Hooks       HooksConfig    `toml:"hooks"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
}

// DatabaseConfig identifies the database engine and connection string.
type DatabaseConfig struct {
	Type    string `toml:"type"` // "mysql", "sqlite" or "postgres"
	DSN     string `toml:"dsn"`
	Charset string `toml:"charset"` // character set for MySQL connection (default: "utf8mb4")
}

type HooksConfig struct {
	BeforeChecks []string `toml:"before_checks"`
}

// envOverrides are applied on top of the TOML file so credentials can stay
// out of it.
type envOverrides struct {
	DSN         string `env:"DBVERIFY_DSN"`
	QueriesFile string `env:"DBVERIFY_QUERIES_FILE"`
}

// loadConfig reads a TOML config file and returns a VerifyConfig with
// defaults and environment overrides applied.
func loadConfig(path string) (*VerifyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := VerifyConfig{
		Database:    DatabaseConfig{Type: "mysql"},
		QueriesFile: "queries.sql",
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	cfg.Database.Type = strings.ToLower(strings.TrimSpace(cfg.Database.Type))
	if _, err := newDialect(cfg.Database.Type); err != nil {
		return nil, fmt.Errorf("database.type: %w", err)
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Database.Type != "mysql" && cfg.Database.Charset != "utf8mb4" {
		return nil, fmt.Errorf("database.charset is a MySQL-only option")
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (or set DBVERIFY_DSN)")
	}
	if strings.TrimSpace(cfg.QueriesFile) == "" {
		return nil, fmt.Errorf("queries_file must not be empty")
	}

	return &cfg, nil
}

// applyEnvOverrides loads a .env file next to the config when present and
// then applies DBVERIFY_* variables.
func applyEnvOverrides(cfg *VerifyConfig) error {
	dotenv := filepath.Join(cfg.configDir, ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenv, err)
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if ov.DSN != "" {
		cfg.Database.DSN = ov.DSN
	}
	if ov.QueriesFile != "" {
		cfg.QueriesFile = ov.QueriesFile
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *VerifyConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}
