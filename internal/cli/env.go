package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/config"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/prompt"
	"github.com/boil-labs/boil/internal/runtime"
	"github.com/boil-labs/boil/internal/userdata"
)

// env carries everything a command needs. Commands receive it explicitly so
// they can be exercised against an in-memory filesystem.
type env struct {
	fs   afero.Fs
	root string // data root holding the namespace files
	cwd  string // base for relative output paths

	settings *config.Settings

	// Opened lazily; use historyStore, presetStore and analyticsStore.
	history   *userdata.History
	presets   *userdata.Presets
	analytics *userdata.Analytics

	runner      runtime.Runner
	prompter    prompt.Prompter
	interactive bool
	now         func() time.Time
}

// openEnv prepares the environment for the data root on fsys.
func openEnv(fsys afero.Fs) (*env, error) {
	root, err := userdata.GetDataRoot()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	e, err := newEnv(fsys, root, cwd)
	if err != nil {
		return nil, err
	}
	e.runner = &runtime.ExecRunner{}
	e.prompter = &prompt.Forms{Accessible: os.Getenv("ACCESSIBLE") != ""}
	e.interactive = output.IsInteractive()
	return e, nil
}

// newEnv loads the settings under root. The namespace stores are opened on
// first use so a corrupt file only breaks the commands that read it. The
// runner and prompter are left for the caller to set.
func newEnv(fsys afero.Fs, root, cwd string) (*env, error) {
	settings, err := config.Load(fsys, root)
	if err != nil {
		return nil, err
	}
	return &env{
		fs:       fsys,
		root:     root,
		cwd:      cwd,
		settings: settings,
		now:      time.Now,
	}, nil
}

// recoveryHint tells the user how to get past a corrupt namespace file.
func recoveryHint(ns string) string {
	switch ns {
	case userdata.HistoryNamespace:
		return fmt.Sprintf("run '%s history --clear' to start over", branding.CLIName())
	case userdata.AnalyticsNamespace:
		return fmt.Sprintf("run '%s stats --reset' to start over", branding.CLIName())
	}
	return "fix or delete the file to start over"
}

func (e *env) openStore(ns string) (*userdata.Store, error) {
	s, err := userdata.Open(e.fs, e.root, ns)
	switch {
	case errors.Is(err, userdata.ErrCorrupt):
		return nil, fmt.Errorf("opening %s store: %w (%s)", ns, err, recoveryHint(ns))
	case err != nil:
		return nil, fmt.Errorf("opening %s store: %w", ns, err)
	}
	return s, nil
}

func (e *env) historyStore() (*userdata.History, error) {
	if e.history == nil {
		s, err := e.openStore(userdata.HistoryNamespace)
		if err != nil {
			return nil, err
		}
		e.history = userdata.NewHistory(s)
	}
	return e.history, nil
}

func (e *env) presetStore() (*userdata.Presets, error) {
	if e.presets == nil {
		s, err := e.openStore(userdata.PresetsNamespace)
		if err != nil {
			return nil, err
		}
		e.presets = userdata.NewPresets(s)
	}
	return e.presets, nil
}

func (e *env) analyticsStore() (*userdata.Analytics, error) {
	if e.analytics == nil {
		s, err := e.openStore(userdata.AnalyticsNamespace)
		if err != nil {
			return nil, err
		}
		e.analytics = userdata.NewAnalytics(s, e.settings.AnalyticsEnabled)
	}
	return e.analytics, nil
}

// resetStore empties the namespace file without parsing it and drops the
// cached wrapper so the next access reopens it.
func (e *env) resetStore(ns string) error {
	if _, err := userdata.Reset(e.fs, e.root, ns); err != nil {
		return err
	}
	switch ns {
	case userdata.HistoryNamespace:
		e.history = nil
	case userdata.PresetsNamespace:
		e.presets = nil
	case userdata.AnalyticsNamespace:
		e.analytics = nil
	}
	return nil
}

// abs resolves p against the working directory.
func (e *env) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(e.cwd, p)
}

// record logs a finished generation in history and analytics. Failures here
// never fail the command; the files are already on disk.
func (e *env) record(entry userdata.HistoryEntry) {
	h, err := e.historyStore()
	if err == nil {
		_, err = h.Add(entry)
	}
	if err != nil {
		output.Warn("could not record history", "err", err)
	}

	a, err := e.analyticsStore()
	if err == nil {
		err = a.TrackGeneration(entry.Framework)
	}
	if err != nil {
		output.Debug("tracking generation failed", "err", err)
	}
}

// framework resolves a --framework value: the flag, then the
// default-framework setting, then a prompt when one is possible.
func (e *env) framework(flag string) (catalog.Framework, error) {
	if flag != "" {
		return catalog.ParseFramework(flag)
	}
	if def := e.settings.DefaultFramework(); def != "" {
		return catalog.ParseFramework(def)
	}
	if e.interactive && e.prompter != nil {
		return e.prompter.Framework("Choose a CSS framework", catalog.Bootstrap)
	}
	return "", fmt.Errorf("%w: --framework is required (valid: %s)", catalog.ErrInvalid, frameworkList())
}

// confirm asks title unless yes is set. Without a terminal an unconfirmed
// destructive action fails with hint.
func (e *env) confirm(title string, yes bool, hint string) (bool, error) {
	if yes {
		return true, nil
	}
	if !e.interactive || e.prompter == nil {
		return false, fmt.Errorf("confirmation required: %s", hint)
	}
	return e.prompter.Confirm(title, false)
}

func frameworkList() string {
	var s string
	for i, fw := range catalog.Frameworks() {
		if i > 0 {
			s += ", "
		}
		s += string(fw)
	}
	return s
}
