package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	cacheFileName = "update-check.json"
	// DefaultCacheMaxAge is the default maximum age for the version cache.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds cached version check results.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the version cache from dir.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(fsys afero.Fs, dir string) (*VersionCache, error) {
	path := filepath.Join(dir, cacheFileName)

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache to dir.
func SaveCache(fsys afero.Fs, dir string, cache *VersionCache) error {
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	path := filepath.Join(dir, cacheFileName)
	if err := afero.WriteFile(fsys, path, data, 0o600); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge at now, or nil.
// A cache recorded for a different running version is stale too.
func IsCacheStale(cache *VersionCache, currentVersion string, maxAge time.Duration, now time.Time) bool {
	if cache == nil || cache.CurrentVersion != currentVersion {
		return true
	}
	return now.Sub(cache.CheckedAt) > maxAge
}
