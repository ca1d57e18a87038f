package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://rickandmortyapi.com/api/character?page=2"

func TestEntry(t *testing.T) {
	body := json.RawMessage(`{"results":[],"info":{"next":null}}`)
	entry := NewEntry(pageURL, body, 60)

	assert.Equal(t, KeyForURL(pageURL), entry.Key)
	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), time.Duration(0))
	assert.LessOrEqual(t, entry.Age(), time.Second)

	t.Run("JSON", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)

		var decoded Entry
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, entry.URL, decoded.URL)
		assert.JSONEq(t, string(body), string(decoded.Body))
		assert.Equal(t, entry.CreatedAt.Format(time.RFC3339), decoded.CreatedAt.Format(time.RFC3339))
	})

	t.Run("Expiration", func(t *testing.T) {
		entry.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, entry.IsExpired())
		assert.Equal(t, time.Duration(0), entry.TimeUntilExpiration())
	})
}

func TestKeyForURL(t *testing.T) {
	assert.Equal(t, KeyForURL(pageURL), KeyForURL(" "+pageURL+"/"))
	assert.NotEqual(t, KeyForURL(pageURL), KeyForURL(pageURL+"3"))
	assert.Len(t, KeyForURL(pageURL), 64)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), true, 60)
	require.NoError(t, err)
	assert.True(t, store.IsEnabled())
	assert.Equal(t, 60, store.TTL())

	body := json.RawMessage(`{"results":[{"id":1}]}`)

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set(pageURL, body))

		entry, getErr := store.Get(pageURL)
		require.NoError(t, getErr)
		assert.JSONEq(t, string(body), string(entry.Body))

		st, statErr := store.Stats()
		require.NoError(t, statErr)
		assert.Equal(t, 1, st.Entries)
		assert.Positive(t, st.Bytes)
	})

	t.Run("RejectsInvalidBody", func(t *testing.T) {
		assert.ErrorIs(t, store.Set(pageURL, json.RawMessage(`{not json`)), ErrInvalidBody)
		assert.ErrorIs(t, store.Set("", body), ErrInvalidURL)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(pageURL))
		_, getErr := store.Get(pageURL)
		assert.ErrorIs(t, getErr, ErrNotFound)
		assert.NoError(t, store.Delete(pageURL), "delete is idempotent")
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set(pageURL, body))
		require.NoError(t, store.Set(pageURL+"1", body))
		require.NoError(t, store.Clear())
		st, _ := store.Stats()
		assert.Equal(t, 0, st.Entries)
	})

	t.Run("Expired", func(t *testing.T) {
		short, shortErr := NewFileStore(store.Directory(), true, -1)
		require.NoError(t, shortErr)
		require.NoError(t, short.Set(pageURL, body))

		_, getErr := short.Get(pageURL)
		assert.ErrorIs(t, getErr, ErrExpired)
		_, getErr = store.Get(pageURL)
		assert.ErrorIs(t, getErr, ErrNotFound, "expired entry is removed on read")
	})

	t.Run("CleanupExpired", func(t *testing.T) {
		short, _ := NewFileStore(store.Directory(), true, -1)
		require.NoError(t, short.Set(pageURL, body))
		require.NoError(t, store.Set(pageURL+"fresh", body))

		require.NoError(t, store.CleanupExpired())
		st, _ := store.Stats()
		assert.Equal(t, 1, st.Entries)
	})

	t.Run("Disabled", func(t *testing.T) {
		disabled, _ := NewFileStore("", false, 60)
		assert.False(t, disabled.IsEnabled())
		assert.ErrorIs(t, disabled.Set(pageURL, body), ErrDisabled)
		_, getErr := disabled.Get(pageURL)
		assert.ErrorIs(t, getErr, ErrDisabled)
	})
}

func TestTTL(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, ValidateTTL(120))
		assert.ErrorIs(t, ValidateTTL(10), ErrInvalidTTL)
	})

	t.Run("ParseTTL", func(t *testing.T) {
		ttl, err := ParseTTL("3600")
		require.NoError(t, err)
		assert.Equal(t, 3600, ttl)

		ttl, err = ParseTTL("1h")
		require.NoError(t, err)
		assert.Equal(t, 3600, ttl)

		_, err = ParseTTL("invalid")
		assert.Error(t, err)
		_, err = ParseTTL("5s")
		assert.ErrorIs(t, err, ErrInvalidTTL)
	})

	t.Run("FormatDuration", func(t *testing.T) {
		assert.Equal(t, "30s", FormatDuration(30*time.Second))
		assert.Equal(t, "5m", FormatDuration(5*time.Minute))
		assert.Equal(t, "2h", FormatDuration(2*time.Hour))
		assert.Equal(t, "2h30m", FormatDuration(2*time.Hour+30*time.Minute))
		assert.Equal(t, "3d", FormatDuration(72*time.Hour))
		assert.Equal(t, "3d2h", FormatDuration(74*time.Hour))
	})
}
