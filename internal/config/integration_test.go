package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points PORTALGUN_HOME at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	for _, key := range []string{EnvProjectDir, EnvBaseURL, EnvLogLevel, EnvLogFormat, EnvCacheEnabled, EnvCacheTTL} {
		t.Setenv(key, "")
	}
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	return home
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestConfigGetters(t *testing.T) {
	isolate(t)

	cfg := GetGlobalConfig()
	cfg.Output.DefaultFormat = FormatJSON
	cfg.Logging.Level = "debug"

	assert.Equal(t, FormatJSON, GetDefaultOutputFormat())
	assert.Equal(t, "debug", GetLoggingConfig().Level)
}

func TestGetConfigDir(t *testing.T) {
	home := isolate(t)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	t.Setenv(EnvHome, "")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	dir, err = GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".portalgun"), dir)

	require.NoError(t, EnsureConfigDir())
	stat, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	cfg := GetGlobalConfig()
	cfg.Logging.File = filepath.Join(tmpDir, "logs", "subdir", "portalgun.log")
	require.NoError(t, EnsureLogDir())

	stat, err := os.Stat(filepath.Join(tmpDir, "logs", "subdir"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.Logging.File = filepath.Join(blocker, "subdir", "portalgun.log")
	assert.Error(t, EnsureLogDir())
}

func TestInitGlobalConfigWithProject(t *testing.T) {
	home := isolate(t)

	global := "output:\n  default_format: yaml\nquery:\n  default_page_size: 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(global), 0o600))

	projectDir := filepath.Join(t.TempDir(), ProjectDirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	project := "query:\n  default_page_size: 50\n  default_kind: episode\n"
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(project), 0o600))

	InitGlobalConfigWithProject(context.Background(), projectDir)
	cfg := GetGlobalConfig()

	assert.Equal(t, 50, cfg.Query.DefaultPageSize, "project overrides global")
	assert.Equal(t, "episode", cfg.Query.DefaultKind)
	assert.Equal(t, FormatYAML, cfg.Output.DefaultFormat, "untouched sections inherit global")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout, "defaults survive both files")
}
