package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCacheRoundTrip(t *testing.T) {
	cache := NewSessionCache(t.TempDir(), 24*time.Hour)

	state := json.RawMessage(`[{"name": "auth_token", "value": "secret"}]`)
	require.NoError(t, cache.Save("twitter", state))

	loaded, ok := cache.Load("twitter")
	require.True(t, ok)
	assert.JSONEq(t, string(state), string(loaded))

	// Platforms are isolated.
	_, ok = cache.Load("reddit")
	assert.False(t, ok)
}

func TestSessionCacheExpiryDeletesFile(t *testing.T) {
	dir := t.TempDir()
	cache := NewSessionCache(dir, 24*time.Hour)

	stale, err := json.Marshal(cachedSession{
		Timestamp:    time.Now().Add(-25 * time.Hour).Format(time.RFC3339),
		StorageState: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "twitter_session.json")
	require.NoError(t, os.WriteFile(path, stale, 0o600))

	_, ok := cache.Load("twitter")
	assert.False(t, ok)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSessionCacheCorruptFileDeleted(t *testing.T) {
	dir := t.TempDir()
	cache := NewSessionCache(dir, 24*time.Hour)

	path := filepath.Join(dir, "twitter_session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := cache.Load("twitter")
	assert.False(t, ok)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSessionCacheClear(t *testing.T) {
	cache := NewSessionCache(t.TempDir(), 24*time.Hour)

	require.NoError(t, cache.Save("twitter", json.RawMessage(`{}`)))
	require.NoError(t, cache.Clear("twitter"))
	require.NoError(t, cache.Clear("twitter"))

	_, ok := cache.Load("twitter")
	assert.False(t, ok)
}
