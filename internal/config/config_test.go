package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.False(t, cfg.Server.Dev)
	require.Equal(t, 2, cfg.Engine.Workers)
	require.Empty(t, cfg.Storage.Path)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 9090
storage:
  path: /var/lib/backranq/backranq.db
engine:
  workers: 4
analysis:
  blunder_swing_cp: 250
  opening_skip_plies: 10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/var/lib/backranq/backranq.db", cfg.Storage.Path)
	require.Equal(t, 4, cfg.Engine.Workers)
	require.Equal(t, 250, cfg.Analysis.BlunderSwingCp)
	require.Equal(t, 10, cfg.Analysis.OpeningSkipPlies)

	// File values not set keep their defaults
	require.Equal(t, "stockfish", cfg.Engine.Path)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("BACKRANQ_SERVER_PORT", "7070")
	t.Setenv("BACKRANQ_STORAGE_PATH", "/tmp/env.db")
	t.Setenv("BACKRANQ_ANALYSIS_MOVETIME_MS", "800")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "/tmp/env.db", cfg.Storage.Path)
	require.Equal(t, 800, cfg.Analysis.MovetimeMs)
}

func TestLoadFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 6060\n"), 0o644))
	t.Setenv("BACKRANQ_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 6060, cfg.Server.Port)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("BACKRANQ_SERVER_PORT", "-1")
	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid server port")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
