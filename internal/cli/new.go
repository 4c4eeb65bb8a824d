package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/scaffold"
	"github.com/boil-labs/boil/internal/userdata"
)

// newFlags are the project flags shared by new and save-preset.
type newFlags struct {
	framework string
	withJS    bool
	withGit   bool
	theme     string
	icons     string
	preset    string
}

var newOpts newFlags

func init() {
	newCmd.Flags().StringVarP(&newOpts.framework, "framework", "f", "", "CSS framework ("+frameworkList()+")")
	newCmd.Flags().BoolVar(&newOpts.withJS, "with-js", false, "Include assets/js/main.js and package.json")
	newCmd.Flags().BoolVar(&newOpts.withGit, "git", false, "Initialize a git repository")
	newCmd.Flags().StringVar(&newOpts.theme, "theme", string(catalog.ThemeAuto), "Color theme (auto, light, dark)")
	newCmd.Flags().StringVar(&newOpts.icons, "icons", string(catalog.IconsNone), "Icon library (none, heroicons, fontawesome)")
	newCmd.Flags().StringVar(&newOpts.preset, "preset", "", "Start from a saved preset; explicit flags still win")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(generateCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <project-name>",
	Short: "Create a new project",
	Long: `Create a new project directory with index.html, a stylesheet and optional
JavaScript, package.json, .gitignore and git repository.

Examples:
  boil new my-site --framework tailwind --with-js --git
  boil new landing -f bootstrap --theme dark --icons fontawesome
  boil new blog --preset starter`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd.Context(), app, cmd.OutOrStdout(), args[0], newOpts, cmd.Flags().Changed)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new project interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), app, cmd.OutOrStdout())
	},
}

// runNew resolves choices from flags, an optional preset and the
// default-framework setting, then creates the project. changed reports
// whether a flag was given explicitly.
func runNew(ctx context.Context, e *env, w io.Writer, name string, f newFlags, changed func(string) bool) error {
	if err := catalog.ValidateProjectName(name); err != nil {
		return err
	}

	c := scaffold.Choices{
		ProjectName: name,
		Framework:   f.framework,
		Theme:       f.theme,
		Icons:       f.icons,
		WithJS:      f.withJS,
		WithGit:     f.withGit,
	}

	if f.preset != "" {
		presets, err := e.presetStore()
		if err != nil {
			return err
		}
		p, err := presets.Load(f.preset)
		if err != nil {
			return err
		}
		applyPreset(&c, p, changed)
		output.Debug("applied preset", "name", f.preset)
	}

	fw, err := e.framework(c.Framework)
	if err != nil {
		return err
	}
	c.Framework = string(fw)

	opts, err := scaffold.NewOptions(c)
	if err != nil {
		return err
	}
	return createProject(ctx, e, w, opts)
}

// applyPreset copies preset fields into c for every flag not set explicitly.
func applyPreset(c *scaffold.Choices, p userdata.Preset, changed func(string) bool) {
	if !changed("framework") {
		c.Framework = p.Framework
	}
	if !changed("with-js") {
		c.WithJS = p.WithJS
	}
	if !changed("git") {
		c.WithGit = p.WithGit
	}
	if !changed("theme") && p.Theme != "" {
		c.Theme = p.Theme
	}
	if !changed("icons") && p.Icons != "" {
		c.Icons = p.Icons
	}
}

// runGenerate asks for every choice and creates the project.
func runGenerate(ctx context.Context, e *env, w io.Writer) error {
	if !e.interactive || e.prompter == nil {
		return fmt.Errorf("interactive mode needs a terminal; use '%s new <project-name> --framework <name>'", branding.CLIName())
	}

	c, err := e.prompter.Project(scaffold.Choices{Framework: e.settings.DefaultFramework()})
	if err != nil {
		return err
	}
	opts, err := scaffold.NewOptions(c)
	if err != nil {
		return err
	}
	return createProject(ctx, e, w, opts)
}

// createProject writes the project under the working directory, records it
// and prints next steps.
func createProject(ctx context.Context, e *env, w io.Writer, opts scaffold.Options) error {
	dir := e.abs(opts.ProjectName())
	gen := generator(e)

	var res *scaffold.Result
	err := output.RunWithSpinner(ctx, "Creating "+opts.ProjectName()+"...", func() error {
		var genErr error
		res, genErr = gen.Project(ctx, opts, dir)
		return genErr
	})
	if err != nil {
		if errors.Is(err, scaffold.ErrTargetExists) {
			return fmt.Errorf("directory %s already exists; choose another project name", opts.ProjectName())
		}
		return err
	}
	for _, warn := range res.Warnings {
		output.Warn(warn)
	}

	e.record(userdata.HistoryEntry{
		Type:      userdata.EntryProject,
		Path:      dir,
		Framework: string(opts.Framework()),
		Name:      opts.ProjectName(),
	})

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created %s with %s",
		output.StyleNoun.Render(opts.ProjectName()), opts.Framework().DisplayName())))
	fmt.Fprintf(w, "  %d files in %s\n", len(res.Files), res.OutputDir)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  cd %s\n", opts.ProjectName())
	if opts.WithJS() {
		fmt.Fprintln(w, "  npm install")
	}
	fmt.Fprintf(w, "  %s preview\n", branding.CLIName())
	return nil
}
