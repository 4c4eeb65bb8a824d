//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/runtime"
	"github.com/boil-labs/boil/internal/scaffold"
	"github.com/boil-labs/boil/internal/undo"
	"github.com/boil-labs/boil/internal/userdata"
)

// TestFullFlowGenerateAndUndo covers the whole lifecycle:
// save preset -> create project from it -> add a page -> undo twice -> verify state.
func TestFullFlowGenerateAndUndo(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	gen := scaffold.NewGenerator(env.FS, nil, scaffold.NewRenderer(2026))

	// Step 1: Save a preset and read it back.
	preset := userdata.Preset{Framework: "bootstrap", WithJS: true, Theme: "dark", Icons: "fontawesome"}
	if err := env.Presets.Save("starter", preset); err != nil {
		t.Fatalf("Save preset: %v", err)
	}
	loaded, err := env.Presets.Load("starter")
	if err != nil {
		t.Fatalf("Load preset: %v", err)
	}
	if loaded != preset {
		t.Fatalf("preset round trip = %+v, want %+v", loaded, preset)
	}

	// Step 2: Create a project from the preset.
	opts, err := scaffold.NewOptions(scaffold.Choices{
		ProjectName: "shop",
		Framework:   loaded.Framework,
		Theme:       loaded.Theme,
		Icons:       loaded.Icons,
		WithJS:      loaded.WithJS,
		WithGit:     loaded.WithGit,
	})
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	projectDir := filepath.Join(env.ProjectDir, "shop")
	if _, err := gen.Project(ctx, opts, projectDir); err != nil {
		t.Fatalf("Project: %v", err)
	}
	if _, err := env.History.Add(userdata.HistoryEntry{Type: userdata.EntryProject, Path: projectDir, Framework: "bootstrap", Name: "shop"}); err != nil {
		t.Fatalf("History.Add: %v", err)
	}

	assertFileContains(t, filepath.Join(projectDir, "index.html"), "bootstrap")
	assertFileContains(t, filepath.Join(projectDir, "index.html"), "font-awesome")
	assertFileContains(t, filepath.Join(projectDir, "assets", "css", "main.css"), "prefers-color-scheme: dark")
	assertFileExists(t, filepath.Join(projectDir, "package.json"))
	assertFileNotExists(t, filepath.Join(projectDir, ".gitignore"))
	assertDirExists(t, filepath.Join(projectDir, "assets", "images"))

	// Step 3: Add a page inside the project.
	pagePath := filepath.Join(projectDir, "pricing.html")
	if _, err := gen.Page(catalog.PagePricing, catalog.Bootstrap, pagePath); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if _, err := env.History.Add(userdata.HistoryEntry{Type: userdata.EntryPage, Path: pagePath, Framework: "bootstrap", Name: "pricing"}); err != nil {
		t.Fatalf("History.Add: %v", err)
	}
	assertFileContains(t, pagePath, "<title>Pricing</title>")

	// Step 4: Undo removes the page first, then the project.
	res, err := undo.Run(env.History, env.FS)
	if err != nil {
		t.Fatalf("undo page: %v", err)
	}
	if res.Outcome != undo.Deleted || res.Entry.Path != pagePath {
		t.Fatalf("undo page = %v %s", res.Outcome, res.Entry.Path)
	}
	assertFileNotExists(t, pagePath)
	assertFileExists(t, filepath.Join(projectDir, "index.html"))

	res, err = undo.Run(env.History, env.FS)
	if err != nil {
		t.Fatalf("undo project: %v", err)
	}
	if res.Outcome != undo.Deleted {
		t.Fatalf("undo project outcome = %v", res.Outcome)
	}
	assertFileNotExists(t, projectDir)

	res, err = undo.Run(env.History, env.FS)
	if err != nil {
		t.Fatalf("undo empty: %v", err)
	}
	if res.Outcome != undo.NoHistory {
		t.Errorf("third undo outcome = %v, want no-history", res.Outcome)
	}
}

// TestStoresSurviveReopen checks that every namespace file is re-read by a
// fresh process.
func TestStoresSurviveReopen(t *testing.T) {
	env := setupTestEnv(t)

	if err := env.Settings.Set("default-framework", "tailwind"); err != nil {
		t.Fatalf("Settings.Set: %v", err)
	}
	if err := env.Presets.Save("p", userdata.Preset{Framework: "vanilla"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := env.Analytics.TrackGeneration("vanilla"); err != nil {
		t.Fatalf("TrackGeneration: %v", err)
	}
	if _, err := env.History.Add(userdata.HistoryEntry{Type: userdata.EntryComponent, Path: "/x/navbar.html", Name: "navbar"}); err != nil {
		t.Fatalf("History.Add: %v", err)
	}

	for _, ns := range []string{userdata.HistoryNamespace, userdata.PresetsNamespace, userdata.AnalyticsNamespace} {
		info, err := os.Stat(userdata.NamespacePath(env.DataDir, ns))
		if err != nil {
			t.Fatalf("stat %s: %v", ns, err)
		}
		if perm := info.Mode().Perm(); perm != userdata.FilePermSecure {
			t.Errorf("%s permissions = %o, want %o", ns, perm, userdata.FilePermSecure)
		}
	}

	fresh := setupTestEnvAt(t, env.DataDir)
	if got := fresh.Settings.DefaultFramework(); got != "tailwind" {
		t.Errorf("default-framework = %q, want tailwind", got)
	}
	if !fresh.Presets.Exists("p") {
		t.Error("preset lost on reopen")
	}
	st, err := fresh.Analytics.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalGenerations != 1 {
		t.Errorf("TotalGenerations = %d, want 1", st.TotalGenerations)
	}
	entry, ok, err := fresh.History.MostRecent()
	if err != nil || !ok || entry.Name != "navbar" {
		t.Errorf("MostRecent = %+v, %v, %v", entry, ok, err)
	}
}

// TestCorruptStoreIsRejected checks that a hand-edited file breaking the
// schema is reported instead of silently discarded.
func TestCorruptStoreIsRejected(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, userdata.NamespacePath(env.DataDir, userdata.PresetsNamespace), "presets:\n  bad:\n    withJs: true\n")

	if _, err := userdata.Open(env.FS, env.DataDir, userdata.PresetsNamespace); err == nil {
		t.Fatal("expected an error for a preset without a framework")
	}
}

// TestGitInitWithRealGit runs the project generator against the real git
// binary when one is installed.
func TestGitInitWithRealGit(t *testing.T) {
	env := setupTestEnv(t)
	runner := &runtime.ExecRunner{}
	if _, err := runner.Run(context.Background(), runtime.Command{Name: "git", Args: []string{"--version"}, Quiet: true}); err != nil {
		t.Skipf("git not available: %v", err)
	}

	opts, err := scaffold.NewOptions(scaffold.Choices{ProjectName: "repo", Framework: "vanilla", WithGit: true})
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	dir := filepath.Join(env.ProjectDir, "repo")
	res, err := scaffold.NewGenerator(env.FS, runner, scaffold.NewRenderer(2026)).Project(context.Background(), opts, dir)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	assertDirExists(t, filepath.Join(dir, ".git"))
	assertFileContains(t, filepath.Join(dir, ".gitignore"), "node_modules")
}
