package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	Logger "github.com/moodfeed/tslamood/utils/log"
)

// SessionCache persists one browser session state per platform so repeat runs
// skip the login flow. Files are plain JSON on local disk; the cache is not
// safe for concurrent writers, which is fine for a single-process pipeline.
type SessionCache struct {
	dir    string
	maxAge time.Duration
}

type cachedSession struct {
	Timestamp    string          `json:"timestamp"`
	StorageState json.RawMessage `json:"storage_state"`
}

func NewSessionCache(dir string, maxAge time.Duration) *SessionCache {
	return &SessionCache{dir: dir, maxAge: maxAge}
}

func (c *SessionCache) path(platform string) string {
	return filepath.Join(c.dir, platform+"_session.json")
}

// Load returns the cached state for the platform, or ok=false if the cache
// is missing, expired, or corrupt. Expired and corrupt files are deleted so
// the next Save starts clean.
func (c *SessionCache) Load(platform string) (json.RawMessage, bool) {
	path := c.path(platform)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var session cachedSession
	if err := json.Unmarshal(raw, &session); err != nil {
		Logger.Log.WithField("platform", platform).Warn("session cache is corrupt, deleting")
		os.Remove(path)
		return nil, false
	}

	savedAt, err := time.Parse(time.RFC3339, session.Timestamp)
	if err != nil || time.Since(savedAt) > c.maxAge {
		Logger.Log.WithField("platform", platform).Info("session cache expired, deleting")
		os.Remove(path)
		return nil, false
	}
	return session.StorageState, true
}

// Save writes the platform's session state, stamping it with the current
// local time.
func (c *SessionCache) Save(platform string, state json.RawMessage) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cachedSession{
		Timestamp:    time.Now().Format(time.RFC3339),
		StorageState: state,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(platform), raw, 0o600)
}

// Clear removes the platform's cached session.
func (c *SessionCache) Clear(platform string) error {
	err := os.Remove(c.path(platform))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
