package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/config"
)

func clearProjectEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	clearProjectEnv(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")
	assert.Equal(t, filepath.Join(flagDir, config.ProjectDirName), got)
}

func TestResolveProjectDir_EnvVar(t *testing.T) {
	clearProjectEnv(t)
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")
	assert.Equal(t, filepath.Join(envDir, config.ProjectDirName), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolveProjectDir_NoDoubleAppend(t *testing.T) {
	clearProjectEnv(t)
	dir := filepath.Join(t.TempDir(), config.ProjectDirName)

	got := config.ResolveProjectDir(context.Background(), dir, "")
	assert.Equal(t, dir, got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	clearProjectEnv(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, config.ProjectDirName), 0o750))
	sub := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	got := config.ResolveProjectDir(context.Background(), "", sub)
	assert.Equal(t, filepath.Join(root, config.ProjectDirName), got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	clearProjectEnv(t)
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	clearProjectEnv(t)
	projectDir := filepath.Join(t.TempDir(), config.ProjectDirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))

	t.Run("missing overlay uses global", func(t *testing.T) {
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	})

	t.Run("overlay merges", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
			[]byte("output:\n  default_format: ndjson\n"), 0o600))
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, config.FormatNDJSON, cfg.Output.DefaultFormat)
	})

	t.Run("env beats overlay", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
			[]byte("api:\n  base_url: http://project.invalid\n  timeout: 1s\n"), 0o600))
		t.Setenv(config.EnvBaseURL, "http://env.invalid")
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "http://env.invalid", cfg.API.BaseURL)
	})

	t.Run("broken overlay falls back", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("output: [x"), 0o600))
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	})
}
