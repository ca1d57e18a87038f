package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/portalgun/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave them intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL: "https://example.com/api",
			Timeout: 10 * time.Second,
		},
		Query: config.QueryConfig{
			DefaultPageSize: 20,
			DefaultKind:     "character",
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
			Directory:  "/var/cache/portalgun",
		},
		Output: config.OutputConfig{
			DefaultFormat: "table",
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, "info", target.Logging.Level)
	assert.True(t, target.Cache.Enabled)
	assert.Equal(t, 20, target.Query.DefaultPageSize)
}

func TestShallowMergeYAML_SectionIsReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
cache:
  enabled: false
query:
  default_page_size: 50
api:
  base_url: http://localhost:8080/api
  timeout: 5s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.False(t, target.Cache.Enabled)
	assert.Zero(t, target.Cache.TTLSeconds, "keys missing from an overlay section are not inherited")
	assert.Empty(t, target.Cache.Directory)
	assert.Equal(t, 50, target.Query.DefaultPageSize)
	assert.Empty(t, target.Query.DefaultKind)
	assert.Equal(t, "http://localhost:8080/api", target.API.BaseURL)
	assert.Equal(t, 5*time.Second, target.API.Timeout)
}

func TestShallowMergeYAML_EmptyAndUnknown(t *testing.T) {
	for name, content := range map[string]string{
		"empty file":   "",
		"comment only": "# nothing here\n",
		"unknown keys": "theme:\n  foo: bar\nportal:\n  fluid: {}\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			original := *target

			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, original, *target)
		})
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	assert.Error(t, config.ShallowMergeYAML(nil, "whatever.yaml"))
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output: [unclosed")))
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "query:\n  default_page_size: many\n")))
}
