package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/runtime"
)

// ErrTargetExists is returned when a project's destination already exists.
var ErrTargetExists = errors.New("target already exists")

// Result holds the outcome of a generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Generator writes rendered content to a filesystem.
type Generator struct {
	FS       afero.Fs
	Runner   runtime.Runner
	Renderer *Renderer
}

// NewGenerator returns a Generator writing to fsys. runner may be nil, in
// which case git initialisation is skipped with a warning.
func NewGenerator(fsys afero.Fs, runner runtime.Runner, r *Renderer) *Generator {
	return &Generator{FS: fsys, Runner: runner, Renderer: r}
}

// Project creates a new project in dir. The directory must not exist. Files
// already written are left in place if a later write fails.
func (g *Generator) Project(ctx context.Context, opts Options, dir string) (*Result, error) {
	exists, err := afero.Exists(g.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", dir, err)
	}
	if exists {
		return nil, fmt.Errorf("directory %s: %w", dir, ErrTargetExists)
	}

	plan, err := g.Renderer.Project(opts)
	if err != nil {
		return nil, err
	}

	if err := g.FS.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, d := range plan.Dirs {
		p := filepath.Join(dir, filepath.FromSlash(d))
		if err := g.FS.MkdirAll(p, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", p, err)
		}
	}

	result := &Result{OutputDir: dir}
	for _, f := range plan.Files {
		p := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := afero.WriteFile(g.FS, p, f.Content, 0o644); err != nil {
			return result, fmt.Errorf("writing %s: %w", p, err)
		}
		result.Files = append(result.Files, f.Path)
	}

	if opts.WithGit() {
		if w := g.initGit(ctx, dir); w != "" {
			result.Warnings = append(result.Warnings, w)
		}
	}

	return result, nil
}

// initGit runs git init in dir and returns a warning instead of failing.
func (g *Generator) initGit(ctx context.Context, dir string) string {
	if g.Runner == nil {
		return "Skipped git init: no process runner available"
	}
	_, err := g.Runner.Run(ctx, runtime.Command{Dir: dir, Name: "git", Args: []string{"init"}, Quiet: true})
	if err != nil {
		return fmt.Sprintf("Could not initialize git repository: %v", err)
	}
	return ""
}

// Page writes a page of the given type to path, replacing any existing file.
func (g *Generator) Page(pageType catalog.PageType, fw catalog.Framework, path string) (*Result, error) {
	content, err := g.Renderer.Page(pageType, fw)
	if err != nil {
		return nil, err
	}
	return g.writeSingle(path, content)
}

// Component writes a component of the given type to path, replacing any
// existing file.
func (g *Generator) Component(componentType catalog.ComponentType, fw catalog.Framework, path string) (*Result, error) {
	content, err := g.Renderer.Component(componentType, fw)
	if err != nil {
		return nil, err
	}
	return g.writeSingle(path, content)
}

func (g *Generator) writeSingle(path, content string) (*Result, error) {
	dir := filepath.Dir(path)
	if err := g.FS.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := afero.WriteFile(g.FS, path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return &Result{OutputDir: dir, Files: []string{filepath.Base(path)}}, nil
}
