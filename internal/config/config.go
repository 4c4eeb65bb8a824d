package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/boil-labs/boil/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known setting keys.
const (
	KeyAnalytics        = "analytics"
	KeyUpdateCheck      = "update-check"
	KeyDefaultFramework = "default-framework"
)

var defaults = map[string]any{
	KeyAnalytics:   true,
	KeyUpdateCheck: true,
}

// KnownKeys returns the documented setting keys in sorted order.
func KnownKeys() []string {
	return []string{KeyAnalytics, KeyDefaultFramework, KeyUpdateCheck}
}

// IsKnownKey reports whether key is a documented setting.
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// FilePath returns the config file under root.
func FilePath(root string) string {
	return filepath.Join(root, fileName+"."+fileType)
}

// Settings are the user's general settings, read from <root>/config.yaml with
// BOIL_* environment overrides (BOIL_UPDATE_CHECK for update-check).
type Settings struct {
	v    *viper.Viper
	fs   afero.Fs
	path string
}

// Load reads the settings file under root. A missing file yields defaults.
func Load(fsys afero.Fs, root string) (*Settings, error) {
	s := &Settings{fs: fsys, path: FilePath(root)}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) init() error {
	v, err := s.readFile()
	if err != nil {
		return err
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	s.v = v
	return nil
}

// readFile returns a viper holding only what the config file contains.
func (s *Settings) readFile() (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType(fileType)

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("checking config file %s: %w", s.path, err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", s.path, err)
		}
	}
	return v, nil
}

// Path returns the backing file.
func (s *Settings) Path() string { return s.path }

// Get returns the effective value of key and whether it has one, counting
// defaults and environment overrides.
func (s *Settings) Get(key string) (any, bool) {
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// Set stores value under key and writes the config file. The strings "true"
// and "false" are stored as booleans. Only keys already in the file and key
// itself are written; defaults and environment overrides stay out of it.
func (s *Settings) Set(key, value string) error {
	file, err := s.readFile()
	if err != nil {
		return err
	}
	file.Set(key, parseValue(value))

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	if err := file.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return s.init()
}

// List returns every effective setting by key.
func (s *Settings) List() map[string]any {
	return s.v.AllSettings()
}

// Keys returns the keys of List in sorted order.
func (s *Settings) Keys() []string {
	keys := s.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Clear deletes the config file, restoring defaults.
func (s *Settings) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing config file %s: %w", s.path, err)
	}
	return s.init()
}

// AnalyticsEnabled reports whether local usage tracking is on.
func (s *Settings) AnalyticsEnabled() bool { return s.v.GetBool(KeyAnalytics) }

// UpdateCheckEnabled reports whether the update notifier may run.
func (s *Settings) UpdateCheckEnabled() bool { return s.v.GetBool(KeyUpdateCheck) }

// DefaultFramework returns the framework used when new gets no --framework.
func (s *Settings) DefaultFramework() string { return s.v.GetString(KeyDefaultFramework) }

func parseValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}
