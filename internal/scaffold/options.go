package scaffold

import (
	"github.com/boil-labs/boil/internal/catalog"
)

// Choices is the raw, unvalidated input to NewOptions, typically straight
// from command-line flags, a preset or an interactive form.
type Choices struct {
	ProjectName string
	Framework   string
	Theme       string // empty means auto
	Icons       string // empty means none
	WithJS      bool
	WithGit     bool
}

// Options is a validated set of project generation choices. The zero value is
// not usable; build one with NewOptions. Options has no setters, so a value
// handed to a generator cannot change underneath it.
type Options struct {
	projectName string
	framework   catalog.Framework
	theme       catalog.Theme
	icons       catalog.IconLibrary
	withJS      bool
	withGit     bool
}

// NewOptions validates every field of c and returns the resulting Options.
// All failures wrap catalog.ErrInvalid.
func NewOptions(c Choices) (Options, error) {
	if err := catalog.ValidateProjectName(c.ProjectName); err != nil {
		return Options{}, err
	}
	fw, err := catalog.ParseFramework(c.Framework)
	if err != nil {
		return Options{}, err
	}
	theme, err := catalog.ParseTheme(c.Theme)
	if err != nil {
		return Options{}, err
	}
	icons, err := catalog.ParseIconLibrary(c.Icons)
	if err != nil {
		return Options{}, err
	}

	return Options{
		projectName: c.ProjectName,
		framework:   fw,
		theme:       theme,
		icons:       icons,
		withJS:      c.WithJS,
		withGit:     c.WithGit,
	}, nil
}

func (o Options) ProjectName() string { return o.projectName }
func (o Options) Framework() catalog.Framework { return o.framework }
func (o Options) Theme() catalog.Theme { return o.theme }
func (o Options) Icons() catalog.IconLibrary { return o.icons }
func (o Options) WithJS() bool { return o.withJS }
func (o Options) WithGit() bool { return o.withGit }
func (o Options) Description() string { return o.projectName + " - Built with Boil CLI" }
func (o Options) Keywords() []string { return []string{string(o.framework), "frontend", "boilerplate"} }
