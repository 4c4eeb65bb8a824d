package cli

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/prompt"
	"github.com/boil-labs/boil/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool

	// app is opened once per invocation by the root pre-run hook.
	app *env
	// pendingRefresh tracks the background update check, if one started.
	pendingRefresh *sync.WaitGroup
)

// refreshGrace bounds how long a finished command waits for the update check.
const refreshGrace = 2 * time.Second

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates static HTML/CSS/JS boilerplate for Bootstrap, Tailwind,
Materialize, Skeleton, DaisyUI or plain CSS, along with pages, components,
reusable presets, a local preview server and a GitHub Pages deploy helper.

Run without arguments to create a project interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output.SetupLogging(verbose)

		if skipsEnvironment(cmd) {
			return nil
		}
		e, err := openEnv(afero.NewOsFs())
		if err != nil {
			return err
		}
		app = e

		a, err := e.analyticsStore()
		if err == nil {
			err = a.TrackCommand(commandName(cmd))
		}
		if err != nil {
			output.Debug("tracking command failed", "err", err)
		}
		if updateCheckAllowed(cmd, e) {
			n := updater.New(buildVersion, e.fs, e.root)
			pendingRefresh = n.CheckAndPrintBanner(cmd.Context(), cmd.ErrOrStderr())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), app, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
}

// commandName is cmd's path below the root, e.g. "config set". The root
// itself is named after the binary.
func commandName(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return cmd.Name()
	}
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

// topLevel returns the name of the root's child that cmd belongs to.
func topLevel(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// skipsEnvironment reports whether cmd runs without the user data stores.
func skipsEnvironment(cmd *cobra.Command) bool {
	switch topLevel(cmd) {
	case "version", "help", "completion":
		return true
	}
	return false
}

// updateCheckAllowed gates the update banner on a release build, the
// update-check setting and the BOIL_NO_UPDATE_CHECK opt-out.
func updateCheckAllowed(cmd *cobra.Command, e *env) bool {
	if os.Getenv(branding.EnvVar("NO_UPDATE_CHECK")) != "" {
		return false
	}
	if !updater.IsRelease(buildVersion) || !e.settings.UpdateCheckEnabled() {
		return false
	}
	// Keep machine-readable output clean.
	return topLevel(cmd) != "config"
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	waitForRefresh()

	switch {
	case err == nil:
	case errors.Is(err, prompt.ErrCancelled):
		output.Warn("Operation cancelled")
	default:
		output.Error(err.Error())
	}
	return err
}

func waitForRefresh() {
	if pendingRefresh == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		pendingRefresh.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(refreshGrace):
	}
}
