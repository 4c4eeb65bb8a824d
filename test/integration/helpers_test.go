//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/boil-labs/boil/internal/config"
	"github.com/boil-labs/boil/internal/userdata"
)

// testEnv holds paths to isolated test directories and the stores opened on them.
type testEnv struct {
	DataDir    string // BOIL_HOME: namespace files and config.yaml
	ProjectDir string // where projects, pages and components are generated

	FS        afero.Fs
	Settings  *config.Settings
	History   *userdata.History
	Presets   *userdata.Presets
	Analytics *userdata.Analytics
}

// setupTestEnv creates isolated temp directories, points BOIL_HOME at one of
// them and opens every store on the real filesystem.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupTestEnvAt(t, t.TempDir())
}

// setupTestEnvAt opens the stores under an existing data directory, as a new
// invocation would.
func setupTestEnvAt(t *testing.T, dataDir string) *testEnv {
	t.Helper()

	env := &testEnv{
		DataDir:    dataDir,
		ProjectDir: t.TempDir(),
		FS:         afero.NewOsFs(),
	}
	t.Setenv("BOIL_HOME", env.DataDir)

	root, err := userdata.GetDataRoot()
	if err != nil {
		t.Fatalf("GetDataRoot: %v", err)
	}
	if root != env.DataDir {
		t.Fatalf("data root = %q, want %q", root, env.DataDir)
	}

	env.Settings, err = config.Load(env.FS, root)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	env.History = userdata.NewHistory(openStore(t, env, userdata.HistoryNamespace))
	env.Presets = userdata.NewPresets(openStore(t, env, userdata.PresetsNamespace))
	env.Analytics = userdata.NewAnalytics(openStore(t, env, userdata.AnalyticsNamespace), env.Settings.AnalyticsEnabled)
	return env
}

func openStore(t *testing.T, env *testEnv, ns string) *userdata.Store {
	t.Helper()
	s, err := userdata.Open(env.FS, env.DataDir, ns)
	if err != nil {
		t.Fatalf("opening %s store: %v", ns, err)
	}
	return s
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
