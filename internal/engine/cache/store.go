package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const entryFileExtension = ".json"

// Cache errors.
var (
	ErrNotFound    = errors.New("cache entry not found")
	ErrExpired     = errors.New("cache entry expired")
	ErrInvalidURL  = errors.New("cache URL cannot be empty")
	ErrDisabled    = errors.New("cache is disabled")
	ErrInvalidBody = errors.New("cache body is not valid JSON")
)

// FileStore keeps page bodies as JSON files in one directory. It is safe for
// concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// NewFileStore opens (creating if needed) a store in directory. A disabled
// store accepts no writes and answers every read with ErrDisabled.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// Get returns the fresh entry for url. Expired entries are removed and
// reported as ErrExpired.
func (s *FileStore) Get(url string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if url == "" {
		return nil, ErrInvalidURL
	}

	path := s.pathFor(url)

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set writes body for url, replacing any existing entry.
func (s *FileStore) Set(url string, body json.RawMessage) error {
	if !s.enabled {
		return ErrDisabled
	}
	if url == "" {
		return ErrInvalidURL
	}
	if !json.Valid(body) {
		return ErrInvalidBody
	}

	entryData, err := json.Marshal(NewEntry(url, body, s.ttlSeconds))
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(url)
	tempPath := path + ".tmp"
	if err = os.WriteFile(tempPath, entryData, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for url. Missing entries are not an error.
func (s *FileStore) Delete(url string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if url == "" {
		return ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(url)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	return s.sweep(func(*Entry) bool { return true })
}

// CleanupExpired removes expired entries and leaves fresh ones alone.
func (s *FileStore) CleanupExpired() error {
	return s.sweep(func(e *Entry) bool { return e == nil || e.IsExpired() })
}

// sweep deletes every entry file for which remove returns true. remove gets
// nil for files that cannot be parsed.
func (s *FileStore) sweep(remove func(*Entry) bool) error {
	if !s.enabled {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		var entry *Entry
		if data, readErr := os.ReadFile(path); readErr == nil {
			var e Entry
			if json.Unmarshal(data, &e) == nil {
				entry = &e
			}
		}
		if !remove(entry) {
			continue
		}
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(path), rmErr)
		}
	}
	return nil
}

// Stats summarises the store contents.
type Stats struct {
	Entries int   `json:"entries" yaml:"entries"`
	Bytes   int64 `json:"bytes"   yaml:"bytes"`
}

// Stats counts entries (expired included) and their total size.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFiles()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, path := range files {
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		st.Entries++
		st.Bytes += info.Size()
	}
	return st, nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the entry lifetime in seconds.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

func (s *FileStore) entryFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	var files []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), entryFileExtension) {
			continue
		}
		files = append(files, filepath.Join(s.directory, de.Name()))
	}
	return files, nil
}

func (s *FileStore) pathFor(url string) string {
	return filepath.Join(s.directory, KeyForURL(url)+entryFileExtension)
}
