package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/boil-labs/boil/internal/runtime"
)

// DefaultBranch is the hosting branch used when none is given.
const DefaultBranch = "gh-pages"

// CommitMessage is used when uncommitted changes are committed before deploy.
const CommitMessage = "Deploy to GitHub Pages"

// Options configures a deploy.
type Options struct {
	// Dir is the repository working tree; empty means the current directory.
	Dir string
	// Branch receives the published site; empty means DefaultBranch.
	Branch string
}

// Step names a stage of the deploy, reported through Deployer.OnStep.
type Step string

const (
	StepCheckRepo   Step = "check-repo"
	StepInitRepo    Step = "init-repo"
	StepCommit      Step = "commit"
	StepPublish     Step = "publish"
	StepPublished   Step = "published"
	StepNothingToDo Step = "clean"
)

// Report summarises a finished deploy.
type Report struct {
	Branch      string
	Initialized bool
	Committed   bool
}

// Deployer publishes a directory to a hosting branch with git and the
// gh-pages helper.
type Deployer struct {
	Runner runtime.Runner
	// OnStep, if set, is called as each stage starts.
	OnStep func(Step)
}

// New returns a Deployer running commands through r.
func New(r runtime.Runner) *Deployer {
	return &Deployer{Runner: r}
}

// Deploy ensures dir is a git repository, commits pending changes and pushes
// the tree to the hosting branch. Nothing is retried.
func (d *Deployer) Deploy(ctx context.Context, opts Options) (*Report, error) {
	branch := opts.Branch
	if branch == "" {
		branch = DefaultBranch
	}
	report := &Report{Branch: branch}

	d.step(StepCheckRepo)
	if _, err := d.git(ctx, opts.Dir, "status"); err != nil {
		d.step(StepInitRepo)
		if _, err := d.git(ctx, opts.Dir, "init"); err != nil {
			return report, fmt.Errorf("initializing git repository: %w", err)
		}
		report.Initialized = true
	}

	status, err := d.git(ctx, opts.Dir, "status", "--porcelain")
	if err != nil {
		return report, fmt.Errorf("checking working tree: %w", err)
	}
	if strings.TrimSpace(status.Stdout) != "" {
		d.step(StepCommit)
		if _, err := d.git(ctx, opts.Dir, "add", "."); err != nil {
			return report, fmt.Errorf("staging changes: %w", err)
		}
		if _, err := d.git(ctx, opts.Dir, "commit", "-m", CommitMessage); err != nil {
			return report, fmt.Errorf("committing changes: %w", err)
		}
		report.Committed = true
	} else {
		d.step(StepNothingToDo)
	}

	d.step(StepPublish)
	_, err = d.Runner.Run(ctx, runtime.Command{
		Dir:  opts.Dir,
		Name: "npx",
		Args: []string{"gh-pages", "-d", ".", "-b", branch},
	})
	if err != nil {
		return report, fmt.Errorf("publishing to %s: %w", branch, err)
	}
	d.step(StepPublished)
	return report, nil
}

func (d *Deployer) git(ctx context.Context, dir string, args ...string) (*runtime.Output, error) {
	return d.Runner.Run(ctx, runtime.Command{Dir: dir, Name: "git", Args: args, Quiet: true})
}

func (d *Deployer) step(s Step) {
	if d.OnStep != nil {
		d.OnStep(s)
	}
}
