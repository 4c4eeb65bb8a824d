package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/output"
	"github.com/boil-labs/boil/internal/scaffold"
	"github.com/boil-labs/boil/internal/userdata"
)

var (
	savePresetOpts  newFlags
	savePresetYes   bool
	deletePresetYes bool
)

func init() {
	f := savePresetCmd.Flags()
	f.StringVarP(&savePresetOpts.framework, "framework", "f", "", "CSS framework")
	f.BoolVar(&savePresetOpts.withJS, "with-js", false, "Include JavaScript")
	f.BoolVar(&savePresetOpts.withGit, "git", false, "Initialize git")
	f.StringVar(&savePresetOpts.theme, "theme", string(catalog.ThemeAuto), "Color theme")
	f.StringVar(&savePresetOpts.icons, "icons", string(catalog.IconsNone), "Icon library")
	f.BoolVarP(&savePresetYes, "yes", "y", false, "Overwrite an existing preset without asking")
	deletePresetCmd.Flags().BoolVarP(&deletePresetYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(savePresetCmd)
	rootCmd.AddCommand(usePresetCmd)
	rootCmd.AddCommand(listPresetsCmd)
	rootCmd.AddCommand(deletePresetCmd)
}

var savePresetCmd = &cobra.Command{
	Use:   "save-preset <name>",
	Short: "Save generation choices as a named preset",
	Long: `Save a framework, theme, icon library and JS/git choice under a name.
Without flags the choices are asked interactively.

Example:
  boil save-preset starter --framework tailwind --with-js --git`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interactive := !choiceFlagsGiven(cmd.Flags().Changed)
		return runSavePreset(app, cmd.OutOrStdout(), args[0], savePresetOpts, interactive, savePresetYes)
	},
}

// presetChoiceFlags are the save-preset flags that describe the preset.
var presetChoiceFlags = []string{"framework", "with-js", "git", "theme", "icons"}

// choiceFlagsGiven reports whether any preset choice was passed on the
// command line. --yes and global flags such as --verbose do not count.
func choiceFlagsGiven(changed func(string) bool) bool {
	for _, name := range presetChoiceFlags {
		if changed(name) {
			return true
		}
	}
	return false
}

var usePresetCmd = &cobra.Command{
	Use:   "use-preset <name> [project-name]",
	Short: "Create a project from a saved preset",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var project string
		if len(args) == 2 {
			project = args[1]
		}
		return runUsePreset(cmd.Context(), app, cmd.OutOrStdout(), args[0], project)
	},
}

var listPresetsCmd = &cobra.Command{
	Use:   "list-presets",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListPresets(app, cmd.OutOrStdout())
	},
}

var deletePresetCmd = &cobra.Command{
	Use:   "delete-preset <name>",
	Short: "Delete a saved preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeletePreset(app, cmd.OutOrStdout(), args[0], deletePresetYes)
	},
}

func runSavePreset(e *env, w io.Writer, name string, f newFlags, interactive, yes bool) error {
	var (
		p   userdata.Preset
		err error
	)
	if interactive && e.interactive && e.prompter != nil {
		p, err = e.prompter.Preset(userdata.Preset{Framework: e.settings.DefaultFramework()})
		if err != nil {
			return err
		}
	} else {
		p = userdata.Preset{Framework: f.framework, WithJS: f.withJS, WithGit: f.withGit, Theme: f.theme, Icons: f.icons}
		if p.Framework == "" {
			p.Framework = e.settings.DefaultFramework()
		}
	}
	if err := validatePreset(p); err != nil {
		return err
	}

	presets, err := e.presetStore()
	if err != nil {
		return err
	}
	if presets.Exists(name) {
		ok, err := e.confirm(fmt.Sprintf("Preset %q already exists. Overwrite it?", name), yes,
			fmt.Sprintf("preset %q already exists (pass --yes to overwrite)", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Preset not saved.")
			return nil
		}
	}

	if err := presets.Save(name, p); err != nil {
		return fmt.Errorf("saving preset %q: %w", name, err)
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Saved preset %s", output.StyleNoun.Render(name))))
	fmt.Fprintf(w, "  Use it with: %s new <project-name> --preset %s\n", branding.CLIName(), name)
	return nil
}

// validatePreset checks every enum field by building throwaway options.
func validatePreset(p userdata.Preset) error {
	if p.Framework == "" {
		return fmt.Errorf("%w: --framework is required (valid: %s)", catalog.ErrInvalid, frameworkList())
	}
	_, err := scaffold.NewOptions(presetChoices("preset", p))
	return err
}

func presetChoices(project string, p userdata.Preset) scaffold.Choices {
	return scaffold.Choices{
		ProjectName: project,
		Framework:   p.Framework,
		Theme:       p.Theme,
		Icons:       p.Icons,
		WithJS:      p.WithJS,
		WithGit:     p.WithGit,
	}
}

func runUsePreset(ctx context.Context, e *env, w io.Writer, name, project string) error {
	presets, err := e.presetStore()
	if err != nil {
		return err
	}
	p, err := presets.Load(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Using preset %s\n", output.StyleNoun.Render(name))
	printPreset(w, p)
	fmt.Fprintln(w)

	if project == "" {
		if !e.interactive || e.prompter == nil {
			return fmt.Errorf("%w: project name is required", catalog.ErrInvalid)
		}
		if project, err = e.prompter.ProjectName(); err != nil {
			return err
		}
	}

	opts, err := scaffold.NewOptions(presetChoices(project, p))
	if err != nil {
		return err
	}
	return createProject(ctx, e, w, opts)
}

func runListPresets(e *env, w io.Writer) error {
	presets, err := e.presetStore()
	if err != nil {
		return err
	}
	all, err := presets.All()
	if err != nil {
		return err
	}
	names, err := presets.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(w, "No presets saved yet. Create one with '%s save-preset <name>'.\n", branding.CLIName())
		return nil
	}

	t := output.NewTable("NAME", "FRAMEWORK", "JS", "GIT", "THEME", "ICONS")
	for _, n := range names {
		p := all[n]
		t.Row(n, p.Framework, yesNo(p.WithJS), yesNo(p.WithGit), orDash(p.Theme), orDash(p.Icons))
	}
	fmt.Fprintln(w, t.String())
	return nil
}

func runDeletePreset(e *env, w io.Writer, name string, yes bool) error {
	presets, err := e.presetStore()
	if err != nil {
		return err
	}
	if !presets.Exists(name) {
		return fmt.Errorf("%q: %w", name, userdata.ErrPresetNotFound)
	}
	ok, err := e.confirm(fmt.Sprintf("Delete preset %q?", name), yes,
		fmt.Sprintf("pass --yes to delete preset %q", name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Preset kept.")
		return nil
	}
	if _, err := presets.Delete(name); err != nil {
		return fmt.Errorf("deleting preset %q: %w", name, err)
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Deleted preset %s", output.StyleNoun.Render(name))))
	return nil
}

func printPreset(w io.Writer, p userdata.Preset) {
	fw := catalog.Framework(p.Framework)
	fmt.Fprintln(w, output.FormatField("Framework", fw.DisplayName()))
	fmt.Fprintln(w, output.FormatField("JavaScript", yesNo(p.WithJS)))
	fmt.Fprintln(w, output.FormatField("Git", yesNo(p.WithGit)))
	if p.Theme != "" {
		fmt.Fprintln(w, output.FormatField("Theme", p.Theme))
	}
	if p.Icons != "" {
		fmt.Fprintln(w, output.FormatField("Icons", p.Icons))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
