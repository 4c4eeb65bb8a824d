package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/scaffold"
	"github.com/boil-labs/boil/internal/userdata"
)

// ErrCancelled is returned when the user aborts a form (Ctrl+C / Esc).
var ErrCancelled = errors.New("cancelled by user")

// Prompter supplies choices the user did not give on the command line.
type Prompter interface {
	// Project asks for every project choice, starting from defaults.
	Project(defaults scaffold.Choices) (scaffold.Choices, error)
	// ProjectName asks only for a project name.
	ProjectName() (string, error)
	// Framework asks for a framework, preselecting def when it is valid.
	Framework(title string, def catalog.Framework) (catalog.Framework, error)
	// Preset asks for the contents of a preset.
	Preset(defaults userdata.Preset) (userdata.Preset, error)
	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)
}

// Forms is the huh-backed Prompter.
type Forms struct {
	// Accessible switches huh to plain line prompts for screen readers.
	Accessible bool
}

var _ Prompter = (*Forms)(nil)

// Project implements Prompter.
func (f *Forms) Project(defaults scaffold.Choices) (scaffold.Choices, error) {
	c := defaults
	if c.Framework == "" {
		c.Framework = string(catalog.Bootstrap)
	}
	if c.Theme == "" {
		c.Theme = string(catalog.ThemeAuto)
	}
	if c.Icons == "" {
		c.Icons = string(catalog.IconsNone)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("my-site").
				Value(&c.ProjectName).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("CSS framework").
				Options(frameworkOptions()...).
				Value(&c.Framework),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Include a JavaScript entry point and package.json?").
				Value(&c.WithJS),
			huh.NewConfirm().
				Title("Initialize a git repository?").
				Value(&c.WithGit),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&c.Theme),
			huh.NewSelect[string]().
				Title("Icon library").
				Options(iconOptions()...).
				Value(&c.Icons),
		),
	)
	if err := f.run(form); err != nil {
		return scaffold.Choices{}, err
	}
	c.ProjectName = strings.TrimSpace(c.ProjectName)
	return c, nil
}

// ProjectName implements Prompter.
func (f *Forms) ProjectName() (string, error) {
	var name string
	in := huh.NewInput().
		Title("Project name").
		Placeholder("my-site").
		Value(&name).
		Validate(validateName)
	if err := f.run(huh.NewForm(huh.NewGroup(in))); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// Framework implements Prompter.
func (f *Forms) Framework(title string, def catalog.Framework) (catalog.Framework, error) {
	selected := string(catalog.Bootstrap)
	if catalog.IsFramework(string(def)) {
		selected = string(def)
	}
	sel := huh.NewSelect[string]().
		Title(title).
		Options(frameworkOptions()...).
		Value(&selected)
	if err := f.run(huh.NewForm(huh.NewGroup(sel))); err != nil {
		return "", err
	}
	return catalog.ParseFramework(selected)
}

// Preset implements Prompter.
func (f *Forms) Preset(defaults userdata.Preset) (userdata.Preset, error) {
	p := defaults
	if p.Framework == "" {
		p.Framework = string(catalog.Bootstrap)
	}
	if p.Theme == "" {
		p.Theme = string(catalog.ThemeAuto)
	}
	if p.Icons == "" {
		p.Icons = string(catalog.IconsNone)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("CSS framework").Options(frameworkOptions()...).Value(&p.Framework),
		huh.NewConfirm().Title("Include JavaScript?").Value(&p.WithJS),
		huh.NewConfirm().Title("Initialize git?").Value(&p.WithGit),
		huh.NewSelect[string]().Title("Color theme").Options(themeOptions()...).Value(&p.Theme),
		huh.NewSelect[string]().Title("Icon library").Options(iconOptions()...).Value(&p.Icons),
	))
	if err := f.run(form); err != nil {
		return userdata.Preset{}, err
	}
	return p, nil
}

// Confirm implements Prompter.
func (f *Forms) Confirm(title string, def bool) (bool, error) {
	answer := def
	c := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&answer)
	if err := f.run(huh.NewForm(huh.NewGroup(c))); err != nil {
		return false, err
	}
	return answer, nil
}

func (f *Forms) run(form *huh.Form) error {
	return mapErr(form.WithAccessible(f.Accessible).Run())
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("prompt: %w", err)
}

// validateName strips the catalog.ErrInvalid prefix so the form shows only
// the reason.
func validateName(name string) error {
	if err := catalog.ValidateProjectName(strings.TrimSpace(name)); err != nil {
		return errors.New(strings.TrimPrefix(err.Error(), catalog.ErrInvalid.Error()+": "))
	}
	return nil
}

func frameworkOptions() []huh.Option[string] {
	fws := catalog.Frameworks()
	opts := make([]huh.Option[string], len(fws))
	for i, fw := range fws {
		opts[i] = huh.NewOption(fw.DisplayName(), string(fw))
	}
	return opts
}

func themeOptions() []huh.Option[string] {
	themes := catalog.Themes()
	opts := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		opts[i] = huh.NewOption(t.Title(), string(t))
	}
	return opts
}

func iconOptions() []huh.Option[string] {
	libs := catalog.IconLibraries()
	opts := make([]huh.Option[string], len(libs))
	for i, l := range libs {
		opts[i] = huh.NewOption(l.DisplayName(), string(l))
	}
	return opts
}
