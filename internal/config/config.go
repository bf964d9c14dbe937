// Package config loads server configuration by layering defaults, an
// optional YAML file, and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/engine"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BACKRANQ_"

type Config struct {
	Server   ServerConfig        `koanf:"server"`
	Storage  StorageConfig       `koanf:"storage"`
	Engine   EngineConfig        `koanf:"engine"`
	Analysis core.AnalysisConfig `koanf:"analysis"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Dev  bool   `koanf:"dev"`
}

type StorageConfig struct {
	// Path to the SQLite database file. Empty disables persistence.
	Path string `koanf:"path"`
}

type EngineConfig struct {
	Path    string `koanf:"path"`
	Workers int    `koanf:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Engine: EngineConfig{
			Path:    engine.DefaultEnginePath,
			Workers: 2,
		},
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) given by path or BACKRANQ_CONFIG
//  3. env (prefix BACKRANQ_)
func Load(path string) (*Config, error) {
	cfg := *Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// BACKRANQ_SERVER_PORT -> server.port. Only the first underscore
	// separates the section; the rest stay, matching the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Engine.Workers < 1 {
		return nil, fmt.Errorf("engine workers must be at least 1")
	}

	return &cfg, nil
}
