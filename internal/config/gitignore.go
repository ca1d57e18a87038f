package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignoredProjectPaths are the generated entries of a project .portalgun/
// directory. config.yaml is deliberately absent so it can be committed.
//
//nolint:gochecknoglobals // Fixed list.
var ignoredProjectPaths = []string{"cache/", "*.log", "exports/"}

// GitignoreContent returns the .gitignore body written by EnsureGitignore.
func GitignoreContent() string {
	var b strings.Builder
	b.WriteString("# Generated by portalgun config init.\n")
	for _, p := range ignoredProjectPaths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// EnsureGitignore writes dir/.gitignore unless it already exists, creating
// dir as needed. It reports whether a file was written.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	switch _, err := os.Stat(path); {
	case err == nil:
		return false, nil
	case !os.IsNotExist(err):
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore is meant to be world-readable.
	if err := os.WriteFile(path, []byte(GitignoreContent()), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
