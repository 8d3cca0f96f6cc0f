package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Parallel.Enabled)
	assert.Equal(t, 1, cfg.Parallel.Workers)

	tfCfg := cfg.tf(nil)
	assert.False(t, tfCfg.Backend.Parallel.Enabled)
}

func TestLoadConfigEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tfnp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\nparallel:\n  enabled: true\n  workers: 4\n"), 0o600))
	t.Setenv("TFNP_PARALLEL_WORKERS", "8")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Parallel.Enabled)
	assert.Equal(t, 8, cfg.Parallel.Workers, "environment wins over the file")
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("TFNP_LOG_LEVEL", "loud")
	_, err := loadConfig("")
	assert.ErrorContains(t, err, "log.level")

	t.Setenv("TFNP_LOG_LEVEL", "info")
	t.Setenv("TFNP_PARALLEL_WORKERS", "0")
	_, err = loadConfig("")
	assert.ErrorContains(t, err, "parallel.workers")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestOpsCommand(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(run(t, "ops", "linalg.")), "\n")
	assert.Len(t, lines, 13)
	assert.Equal(t, "linalg.band_part", lines[0])
	assert.Equal(t, "linalg.triangular_solve", lines[len(lines)-1])

	typed := run(t, "ops", "--types", "math.")
	assert.Contains(t, typed, "PATH")
	assert.Regexp(t, `math\.log\s+func\(`, typed)
}

func TestVersionAndConfigCommands(t *testing.T) {
	assert.Equal(t, "tfnp "+version+"\n", run(t, "version"))
	assert.Regexp(t, `parallel\.workers\s+1\b`, run(t, "config"))
}
