package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Coach.Enabled())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "qf.yml", `
db_path: /tmp/quests.db
log:
  level: debug
  debug: true
coach:
  endpoint: http://localhost:8080/v1/chat/completions
  timeout: 15s
`)
	cfg, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/quests.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Debug)
	assert.True(t, cfg.Coach.Enabled())
	assert.Equal(t, 15*time.Second, cfg.Coach.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.Coach.Model, "unset keys keep their default")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yml", "log: [unterminated")
	_, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "qf.yml", "db_path: /from/file.db\n")
	t.Setenv("QF_DB", "/from/env.db")
	t.Setenv("QF_DEBUG", "true")
	t.Setenv("QF_COACH_TIMEOUT", "not-a-duration")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, 60*time.Second, cfg.Coach.Timeout)
}

func TestDotEnvFile(t *testing.T) {
	_, had := os.LookupEnv("QF_COACH_MODEL")
	require.False(t, had, "QF_COACH_MODEL must be unset for this test")
	t.Cleanup(func() { _ = os.Unsetenv("QF_COACH_MODEL") })

	env := writeFile(t, ".env", "QF_COACH_MODEL=llama3\n")
	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "llama3", cfg.Coach.Model)
}
