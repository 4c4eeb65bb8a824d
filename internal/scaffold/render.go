package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/boil-labs/boil/internal/branding"
	"github.com/boil-labs/boil/internal/catalog"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const (
	pagesDir      = "scaffolds/pages"
	componentsDir = "scaffolds/components"
	projectDir    = "scaffolds/project"
	tmplExt       = ".tmpl"
)

// embed skips dot files, so templates whose output starts with a dot are
// stored without it.
var dotNames = map[string]string{
	"gitignore": ".gitignore",
}

var (
	pageTemplates      = template.Must(template.ParseFS(scaffoldFS, pagesDir+"/*"+tmplExt))
	componentTemplates = template.Must(template.ParseFS(scaffoldFS, componentsDir+"/*"+tmplExt))
)

// File is one generated file, Path being slash-separated and relative to the
// project root.
type File struct {
	Path    string
	Content []byte
}

// Plan is the complete, ordered set of directories and files of a project.
type Plan struct {
	Dirs  []string
	Files []File
}

// Renderer turns archetypes and options into file content. It does no I/O;
// the year stamped into footers and scripts is its only ambient input.
type Renderer struct {
	year int
}

// NewRenderer returns a Renderer stamping year into generated content.
func NewRenderer(year int) *Renderer {
	return &Renderer{year: year}
}

type pageData struct {
	Title     string
	Links     string
	Framework string
	Body      string
}

// pageArchetype maps a page type to its template name and document title.
// Anything unrecognised renders as the about page.
func pageArchetype(p catalog.PageType) (name, title string) {
	switch p {
	case catalog.PageContact:
		return "contact", "Contact"
	case catalog.PageLanding:
		return "landing", "Welcome"
	case catalog.PagePricing:
		return "pricing", "Pricing"
	case catalog.PagePortfolio:
		return "portfolio", "Portfolio"
	case catalog.PageLogin:
		return "login", "Login"
	case catalog.PageRegister:
		return "register", "Register"
	case catalog.PageDashboard:
		return "dashboard", "Dashboard"
	default:
		return "about", "About Us"
	}
}

// Page renders a standalone HTML page of the given type for fw.
func (r *Renderer) Page(pageType catalog.PageType, fw catalog.Framework) (string, error) {
	name, title := pageArchetype(pageType)
	data := pageData{
		Title:     title,
		Links:     FrameworkLinks(fw),
		Framework: string(fw),
	}

	body, err := execute(pageTemplates, name+".html"+tmplExt, data)
	if err != nil {
		return "", err
	}
	data.Body = body
	return execute(pageTemplates, "layout.html"+tmplExt, data)
}

// componentArchetype maps a component type to its template name. Anything
// unrecognised renders as the navbar.
func componentArchetype(c catalog.ComponentType) string {
	switch c {
	case catalog.ComponentHero:
		return "hero"
	case catalog.ComponentCard:
		return "card"
	case catalog.ComponentFooter:
		return "footer"
	case catalog.ComponentSidebar:
		return "sidebar"
	case catalog.ComponentModal:
		return "modal"
	case catalog.ComponentForm:
		return "form"
	default:
		return "navbar"
	}
}

type componentData struct {
	Framework string
	Year      int
}

// Component renders an HTML fragment of the given type for fw.
func (r *Renderer) Component(componentType catalog.ComponentType, fw catalog.Framework) (string, error) {
	name := componentArchetype(componentType)
	return execute(componentTemplates, name+".html"+tmplExt, componentData{
		Framework: string(fw),
		Year:      r.year,
	})
}

type projectData struct {
	Name              string
	Description       string
	Framework         string
	FrameworkTitle    string
	ProjectURL        string
	Stylesheet        string
	Year              int
	WithJS            bool
	WithGit           bool
	LocalStylesheet   bool
	MetaTags          string
	FaviconLinks      string
	FrameworkCDN      string
	IconCDN           string
	IconsComment      string
	IconExample       string
	ThemeCSS          string
	ThemeToggleScript string
}

// Project renders every file of a new project for opts. Files are ordered as
// they should be written; optional files (main.js and package.json without
// JS, .gitignore without git) are left out of the plan entirely.
func (r *Renderer) Project(opts Options) (*Plan, error) {
	fw := opts.Framework()
	data := projectData{
		Name:            opts.ProjectName(),
		Description:     opts.Description(),
		Framework:       string(fw),
		FrameworkTitle:  fw.Title(),
		ProjectURL:      branding.ProjectURL(),
		Stylesheet:      LocalStylesheet,
		Year:            r.year,
		WithJS:          opts.WithJS(),
		WithGit:         opts.WithGit(),
		LocalStylesheet: fw.UsesLocalStylesheet(),
		MetaTags: MetaTags(MetaOptions{
			Title:       opts.ProjectName(),
			Description: opts.Description(),
			Keywords:    opts.Keywords(),
		}),
		FaviconLinks:      FaviconLinks(),
		FrameworkCDN:      FrameworkCDN(fw),
		IconCDN:           IconCDN(opts.Icons()),
		IconsComment:      IconsComment(opts.Icons()),
		IconExample:       IconExample(opts.Icons()),
		ThemeCSS:          ThemeCSS(opts.Theme()),
		ThemeToggleScript: ThemeToggleScript(),
	}

	plan := &Plan{
		Dirs: []string{"assets", "assets/css", "assets/js", "assets/images"},
	}

	err := fs.WalkDir(scaffoldFS, projectDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, projectDir+"/"), tmplExt)
		if dot, ok := dotNames[path.Base(rel)]; ok {
			rel = path.Join(path.Dir(rel), dot)
		}
		if !includeFile(rel, opts) {
			return nil
		}

		raw, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", p, err)
		}

		plan.Files = append(plan.Files, File{Path: rel, Content: buf.Bytes()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func includeFile(rel string, opts Options) bool {
	switch rel {
	case "assets/js/main.js", "package.json":
		return opts.WithJS()
	case ".gitignore":
		return opts.WithGit()
	default:
		return true
	}
}

func execute(set *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
