package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/boil-labs/boil/internal/branding"
)

// Namespaces of the per-user stores. Each is persisted as <root>/<ns>.yaml.
const (
	HistoryNamespace   = "history"
	PresetsNamespace   = "presets"
	AnalyticsNamespace = "analytics"
	ConfigNamespace    = "config"
)

const fileExt = ".yaml"

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// GetDataRoot returns the directory holding boil's per-user state.
// It checks the BOIL_HOME environment variable first,
// then falls back to ~/.boil.
func GetDataRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// NamespacePath returns the file backing namespace under root.
func NamespacePath(root, namespace string) string {
	return filepath.Join(root, namespace+fileExt)
}
