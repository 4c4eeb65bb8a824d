// Package catalog defines the closed sets boil generates for: CSS frameworks,
// page types, component types, theme modes and icon libraries. It also owns the
// project-name rule. Nothing in this package touches the filesystem.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalid is wrapped by every validation failure in this package.
var ErrInvalid = errors.New("invalid input")

// Framework identifies the CSS framework generated markup targets.
type Framework string

// Supported frameworks, in menu order.
const (
	Bootstrap   Framework = "bootstrap"
	Tailwind    Framework = "tailwind"
	Materialize Framework = "materialize"
	Skeleton    Framework = "skeleton"
	DaisyUI     Framework = "daisyui"
	Vanilla     Framework = "vanilla"
	HTML5       Framework = "html5"
)

// PageType names a page template.
type PageType string

// Supported page types. PageAbout is the fallback for unknown identifiers.
const (
	PageAbout     PageType = "about"
	PageContact   PageType = "contact"
	PageLanding   PageType = "landing"
	PagePricing   PageType = "pricing"
	PagePortfolio PageType = "portfolio"
	PageLogin     PageType = "login"
	PageRegister  PageType = "register"
	PageDashboard PageType = "dashboard"
)

// ComponentType names a component template.
type ComponentType string

// Supported component types. ComponentNavbar is the fallback for unknown identifiers.
const (
	ComponentNavbar  ComponentType = "navbar"
	ComponentHero    ComponentType = "hero"
	ComponentCard    ComponentType = "card"
	ComponentFooter  ComponentType = "footer"
	ComponentSidebar ComponentType = "sidebar"
	ComponentModal   ComponentType = "modal"
	ComponentForm    ComponentType = "form"
)

// Theme is the colour-scheme mode of a generated project.
type Theme string

// Theme modes. ThemeAuto follows the system preference.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// IconLibrary is the optional icon set linked from a generated project.
type IconLibrary string

// Icon libraries.
const (
	IconsNone        IconLibrary = "none"
	IconsHeroicons   IconLibrary = "heroicons"
	IconsFontAwesome IconLibrary = "fontawesome"
)

var (
	frameworks     = []Framework{Bootstrap, Tailwind, Materialize, Skeleton, DaisyUI, Vanilla, HTML5}
	pageTypes      = []PageType{PageAbout, PageContact, PageLanding, PagePricing, PagePortfolio, PageLogin, PageRegister, PageDashboard}
	componentTypes = []ComponentType{ComponentNavbar, ComponentHero, ComponentCard, ComponentFooter, ComponentSidebar, ComponentModal, ComponentForm}
	themes         = []Theme{ThemeAuto, ThemeLight, ThemeDark}
	iconLibraries  = []IconLibrary{IconsNone, IconsHeroicons, IconsFontAwesome}

	frameworkLabels = map[Framework]string{
		Bootstrap:   "Bootstrap 5",
		Tailwind:    "Tailwind CSS",
		Materialize: "Materialize CSS",
		Skeleton:    "Skeleton",
		DaisyUI:     "DaisyUI",
		Vanilla:     "Vanilla CSS",
		HTML5:       "HTML5 Boilerplate",
	}
)

// Frameworks returns the supported frameworks in menu order.
func Frameworks() []Framework { return slices.Clone(frameworks) }

// PageTypes returns the supported page types.
func PageTypes() []PageType { return slices.Clone(pageTypes) }

// ComponentTypes returns the supported component types.
func ComponentTypes() []ComponentType { return slices.Clone(componentTypes) }

// Themes returns the supported theme modes, default first.
func Themes() []Theme { return slices.Clone(themes) }

// IconLibraries returns the supported icon libraries, default first.
func IconLibraries() []IconLibrary { return slices.Clone(iconLibraries) }

// IsFramework reports whether s names a supported framework.
func IsFramework(s string) bool { return slices.Contains(frameworks, Framework(s)) }

// IsPageType reports whether s names a supported page type.
func IsPageType(s string) bool { return slices.Contains(pageTypes, PageType(s)) }

// IsComponentType reports whether s names a supported component type.
func IsComponentType(s string) bool { return slices.Contains(componentTypes, ComponentType(s)) }

// IsTheme reports whether s names a supported theme mode.
func IsTheme(s string) bool { return slices.Contains(themes, Theme(s)) }

// IsIconLibrary reports whether s names a supported icon library.
func IsIconLibrary(s string) bool { return slices.Contains(iconLibraries, IconLibrary(s)) }

// UsesLocalStylesheet reports whether fw ships no CDN assets and relies on the
// generated assets/css/main.css alone.
func (fw Framework) UsesLocalStylesheet() bool {
	return fw == Vanilla || fw == HTML5
}

// Title returns the identifier with its first letter upper-cased, as used in
// generated comments and headings ("bootstrap" → "Bootstrap").
func (fw Framework) Title() string {
	return title(string(fw))
}

// DisplayName returns the menu label for fw, falling back to Title.
func (fw Framework) DisplayName() string {
	if label, ok := frameworkLabels[fw]; ok {
		return label
	}
	return fw.Title()
}

// Title returns the display form of a theme mode.
func (t Theme) Title() string { return title(string(t)) }

// DisplayName returns the menu label for an icon library.
func (l IconLibrary) DisplayName() string {
	switch l {
	case IconsHeroicons:
		return "HeroIcons"
	case IconsFontAwesome:
		return "Font Awesome"
	default:
		return "None"
	}
}

var (
	projectNameChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	startsWithLetter = regexp.MustCompile(`^[A-Za-z]`)
)

// ValidateProjectName checks name against the project naming rule
// `[A-Za-z][A-Za-z0-9_-]*`. It returns nil for a valid name; otherwise the
// error message is the reason shown to the user.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: project name cannot be empty", ErrInvalid)
	case !projectNameChars.MatchString(name):
		return fmt.Errorf("%w: project name can only contain letters, numbers, hyphens, and underscores", ErrInvalid)
	case !startsWithLetter.MatchString(name):
		return fmt.Errorf("%w: project name must start with a letter", ErrInvalid)
	}
	return nil
}

// IsValidProjectName reports whether name satisfies ValidateProjectName.
func IsValidProjectName(name string) bool {
	return ValidateProjectName(name) == nil
}

// ParseFramework validates s and returns it as a Framework.
func ParseFramework(s string) (Framework, error) {
	if !IsFramework(s) {
		return "", fmt.Errorf("%w: unknown framework %q (valid: %s)", ErrInvalid, s, join(frameworks))
	}
	return Framework(s), nil
}

// ParsePageType validates s and returns it as a PageType.
func ParsePageType(s string) (PageType, error) {
	if !IsPageType(s) {
		return "", fmt.Errorf("%w: unknown page type %q (valid: %s)", ErrInvalid, s, join(pageTypes))
	}
	return PageType(s), nil
}

// ParseComponentType validates s and returns it as a ComponentType.
func ParseComponentType(s string) (ComponentType, error) {
	if !IsComponentType(s) {
		return "", fmt.Errorf("%w: unknown component type %q (valid: %s)", ErrInvalid, s, join(componentTypes))
	}
	return ComponentType(s), nil
}

// ParseTheme validates s and returns it as a Theme. An empty string yields ThemeAuto.
func ParseTheme(s string) (Theme, error) {
	if s == "" {
		return ThemeAuto, nil
	}
	if !IsTheme(s) {
		return "", fmt.Errorf("%w: unknown theme %q (valid: %s)", ErrInvalid, s, join(themes))
	}
	return Theme(s), nil
}

// ParseIconLibrary validates s and returns it as an IconLibrary. An empty
// string yields IconsNone.
func ParseIconLibrary(s string) (IconLibrary, error) {
	if s == "" {
		return IconsNone, nil
	}
	if !IsIconLibrary(s) {
		return "", fmt.Errorf("%w: unknown icon library %q (valid: %s)", ErrInvalid, s, join(iconLibraries))
	}
	return IconLibrary(s), nil
}

// title upper-cases the first letter. A Caser keeps state, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
