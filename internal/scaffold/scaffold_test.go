package scaffold

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boil-labs/boil/internal/catalog"
	"github.com/boil-labs/boil/internal/runtime"
)

func mustOptions(t *testing.T, c Choices) Options {
	t.Helper()
	opts, err := NewOptions(c)
	require.NoError(t, err)
	return opts
}

func fileMap(plan *Plan) map[string]string {
	m := make(map[string]string, len(plan.Files))
	for _, f := range plan.Files {
		m[f.Path] = string(f.Content)
	}
	return m
}

func TestFrameworkLinks(t *testing.T) {
	for _, fw := range catalog.Frameworks() {
		links := FrameworkLinks(fw)
		assert.NotEmpty(t, links, fw)
		assert.Equal(t, links, FrameworkLinks(fw), "deterministic for %s", fw)
	}

	for _, fw := range []catalog.Framework{catalog.Vanilla, catalog.HTML5, "bulma"} {
		assert.Contains(t, FrameworkLinks(fw), `href="assets/css/main.css"`, fw)
	}
	assert.Contains(t, FrameworkLinks(catalog.DaisyUI), "cdn.tailwindcss.com")
}

func TestFrameworkCDN(t *testing.T) {
	assert.Empty(t, FrameworkCDN(catalog.Vanilla))
	assert.Empty(t, FrameworkCDN(catalog.HTML5))
	assert.Contains(t, FrameworkCDN(catalog.Bootstrap), "bootstrap.bundle.min.js")
	assert.Contains(t, FrameworkCDN(catalog.Materialize), "materialize.min.js")
}

func TestIcons(t *testing.T) {
	assert.Empty(t, IconCDN(catalog.IconsNone))
	assert.Empty(t, IconsComment(catalog.IconsNone))
	assert.Contains(t, IconCDN(catalog.IconsHeroicons), "heroicons@2.0.18")
	assert.Contains(t, IconCDN(catalog.IconsFontAwesome), "font-awesome/6.5.1")
	assert.Equal(t, "<!-- Font Awesome: https://fontawesome.com/icons -->", IconsComment(catalog.IconsFontAwesome))
	assert.Contains(t, IconExample(catalog.IconsFontAwesome), "fa-home")
}

func TestMetaTags(t *testing.T) {
	tags := MetaTags(MetaOptions{Title: "site", Description: "desc", Keywords: []string{"a", "b"}})
	assert.Contains(t, tags, "<title>site</title>")
	assert.Contains(t, tags, `<meta name="keywords" content="a, b">`)
	assert.Contains(t, tags, `<meta property="og:type" content="website">`)
	assert.Contains(t, tags, `<meta name="theme-color" content="#3b82f6">`)
	assert.NotContains(t, tags, "og:image")
	assert.NotContains(t, tags, `name="author"`)
}

func TestThemeCSS(t *testing.T) {
	assert.NotContains(t, ThemeCSS(catalog.ThemeLight), "prefers-color-scheme")
	assert.Contains(t, ThemeCSS(catalog.ThemeDark), "@media (prefers-color-scheme: dark)")
	assert.Contains(t, ThemeCSS(catalog.ThemeAuto), "@media (prefers-color-scheme: dark)")

	for _, theme := range catalog.Themes() {
		css := ThemeCSS(theme)
		assert.Contains(t, css, `[data-theme="dark"]`)
		assert.Contains(t, css, `[data-theme="light"]`)
	}
}

func TestComponentFallsBackToNavbar(t *testing.T) {
	r := NewRenderer(2025)
	for _, fw := range catalog.Frameworks() {
		navbar, err := r.Component(catalog.ComponentNavbar, fw)
		require.NoError(t, err)
		widget, err := r.Component("widget", fw)
		require.NoError(t, err)
		assert.Equal(t, navbar, widget, fw)
	}
}

func TestComponentFrameworkVariants(t *testing.T) {
	r := NewRenderer(2025)

	for _, c := range []catalog.ComponentType{catalog.ComponentNavbar, catalog.ComponentCard, catalog.ComponentModal} {
		out, err := r.Component(c, catalog.Bootstrap)
		require.NoError(t, err)
		assert.NotContains(t, out, "Component for", c)
		assert.True(t, strings.HasSuffix(out, ">\n"), c)
	}

	out, err := r.Component(catalog.ComponentNavbar, catalog.Tailwind)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!-- Navbar Component for tailwind -->\n<nav>"), out)

	out, err = r.Component(catalog.ComponentHero, catalog.Bootstrap)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!-- Hero Component for bootstrap -->"))

	out, err = r.Component(catalog.ComponentFooter, catalog.Skeleton)
	require.NoError(t, err)
	assert.Contains(t, out, "&copy; 2025 Your Company.")
}

func TestPage(t *testing.T) {
	r := NewRenderer(2025)

	about, err := r.Page(catalog.PageAbout, catalog.Tailwind)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(about, "<!DOCTYPE html>\n"))
	assert.Contains(t, about, "<title>About Us</title>")
	assert.Contains(t, about, "This is an about page template for tailwind.")
	assert.Contains(t, about, "cdn.tailwindcss.com")
	assert.True(t, strings.HasSuffix(about, "    </div>\n</body>\n</html>\n"))

	blog, err := r.Page("blog", catalog.Tailwind)
	require.NoError(t, err)
	assert.Equal(t, about, blog)

	tests := []struct {
		page  catalog.PageType
		title string
		body  string
	}{
		{catalog.PageContact, "Contact", "<h1>Contact Us</h1>"},
		{catalog.PageLanding, "Welcome", "Welcome to Our Product"},
		{catalog.PagePricing, "Pricing", "Pricing Plans"},
		{catalog.PagePortfolio, "Portfolio", "Our Portfolio"},
		{catalog.PageLogin, "Login", `type="password"`},
		{catalog.PageRegister, "Register", "Create Account"},
		{catalog.PageDashboard, "Dashboard", `<aside class="sidebar">`},
	}
	for _, tt := range tests {
		t.Run(string(tt.page), func(t *testing.T) {
			out, err := r.Page(tt.page, catalog.Vanilla)
			require.NoError(t, err)
			assert.Contains(t, out, "<title>"+tt.title+"</title>")
			assert.Contains(t, out, tt.body)
			assert.Contains(t, out, `href="assets/css/main.css"`)
		})
	}
}

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(Choices{ProjectName: "site", Framework: "bootstrap", WithJS: true})
	require.NoError(t, err)
	assert.Equal(t, "site", opts.ProjectName())
	assert.Equal(t, catalog.Bootstrap, opts.Framework())
	assert.Equal(t, catalog.ThemeAuto, opts.Theme())
	assert.Equal(t, catalog.IconsNone, opts.Icons())
	assert.True(t, opts.WithJS())
	assert.False(t, opts.WithGit())
	assert.Equal(t, "site - Built with Boil CLI", opts.Description())

	for _, c := range []Choices{
		{ProjectName: "1site", Framework: "bootstrap"},
		{ProjectName: "site", Framework: "bulma"},
		{ProjectName: "site", Framework: "bootstrap", Theme: "sepia"},
		{ProjectName: "site", Framework: "bootstrap", Icons: "material"},
	} {
		_, err := NewOptions(c)
		assert.ErrorIs(t, err, catalog.ErrInvalid, "%+v", c)
	}
}

func TestRendererProject(t *testing.T) {
	r := NewRenderer(2025)

	t.Run("minimal framework project", func(t *testing.T) {
		plan, err := r.Project(mustOptions(t, Choices{ProjectName: "site", Framework: "tailwind", Theme: "light"}))
		require.NoError(t, err)

		files := fileMap(plan)
		assert.ElementsMatch(t, []string{"index.html", "assets/css/main.css", "README.md"}, keys(files))
		assert.Equal(t, []string{"assets", "assets/css", "assets/js", "assets/images"}, plan.Dirs)

		assert.Contains(t, files["index.html"], "<h1>Welcome to site</h1>")
		assert.Contains(t, files["index.html"], "Built with Tailwind")
		assert.Contains(t, files["index.html"], "cdn.tailwindcss.com")
		assert.NotContains(t, files["index.html"], "main.js")
		assert.True(t, strings.HasPrefix(files["assets/css/main.css"], "/* Tailwind Custom Styles */"))
		assert.NotContains(t, files["assets/css/main.css"], "prefers-color-scheme")
		assert.Contains(t, files["README.md"], "1. Preview: `boil preview`")
		assert.NotContains(t, files["README.md"], "## Icons")
	})

	t.Run("vanilla with everything", func(t *testing.T) {
		plan, err := r.Project(mustOptions(t, Choices{
			ProjectName: "site", Framework: "vanilla", Theme: "dark", Icons: "fontawesome", WithJS: true, WithGit: true,
		}))
		require.NoError(t, err)

		files := fileMap(plan)
		assert.ElementsMatch(t, []string{
			"index.html", "assets/css/main.css", "assets/js/main.js", "package.json", ".gitignore", "README.md",
		}, keys(files))

		assert.True(t, strings.HasPrefix(files["assets/css/main.css"], "/* Reset */"))
		assert.Contains(t, files["assets/css/main.css"], "prefers-color-scheme: dark")
		assert.True(t, strings.HasPrefix(files["assets/js/main.js"], "// 2025 - Generated with Boil CLI"))
		assert.Contains(t, files["index.html"], `<script src="assets/js/main.js"></script>`)
		assert.Contains(t, files["index.html"], "font-awesome/6.5.1")
		assert.Contains(t, files["index.html"], `id="theme-toggle"`)
		assert.Contains(t, files["package.json"], `"name": "site"`)
		assert.Contains(t, files["package.json"], `"dev": "boil preview"`)
		assert.Equal(t, "node_modules/\n.DS_Store\n*.log\n.env\ndist/\n", files[".gitignore"])
		assert.Contains(t, files["README.md"], "│   │   └── main.js")
		assert.Contains(t, files["README.md"], "## Icons\n\n```html\n<!-- Font Awesome Example -->")
		assert.Contains(t, files["README.md"], "```\n\n## Project Structure")
	})

	t.Run("heroicons usage in readme", func(t *testing.T) {
		plan, err := r.Project(mustOptions(t, Choices{ProjectName: "site", Framework: "bootstrap", Icons: "heroicons"}))
		require.NoError(t, err)

		readme := fileMap(plan)["README.md"]
		assert.Contains(t, readme, "<!-- HeroIcons Example -->")
		assert.Contains(t, readme, `stroke="currentColor"`)
	})
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

type recordingRunner struct {
	calls []runtime.Command
	err   error
}

func (r *recordingRunner) Run(_ context.Context, c runtime.Command) (*runtime.Output, error) {
	r.calls = append(r.calls, c)
	return &runtime.Output{}, r.err
}

func TestGeneratorProject(t *testing.T) {
	fsys := afero.NewMemMapFs()
	runner := &recordingRunner{}
	g := NewGenerator(fsys, runner, NewRenderer(2025))

	opts := mustOptions(t, Choices{ProjectName: "site", Framework: "bootstrap", WithJS: true, WithGit: true})
	dir := filepath.Join("work", "site")

	result, err := g.Project(context.Background(), opts, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, result.OutputDir)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.Files, "index.html")

	for _, p := range []string{"index.html", "assets/css/main.css", "assets/js/main.js", "package.json", ".gitignore", "README.md"} {
		ok, err := afero.Exists(fsys, filepath.Join(dir, filepath.FromSlash(p)))
		require.NoError(t, err)
		assert.True(t, ok, p)
	}
	isDir, err := afero.IsDir(fsys, filepath.Join(dir, "assets", "images"))
	require.NoError(t, err)
	assert.True(t, isDir)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "git init", runner.calls[0].String())
	assert.Equal(t, dir, runner.calls[0].Dir)

	_, err = g.Project(context.Background(), opts, dir)
	assert.ErrorIs(t, err, ErrTargetExists)
	assert.Len(t, runner.calls, 1, "nothing runs when the target exists")
}

func TestGeneratorProjectGitFailureIsWarning(t *testing.T) {
	runner := &recordingRunner{err: errors.New("git is required")}
	g := NewGenerator(afero.NewMemMapFs(), runner, NewRenderer(2025))

	opts := mustOptions(t, Choices{ProjectName: "site", Framework: "vanilla", WithGit: true})
	result, err := g.Project(context.Background(), opts, "site")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "git is required")
}

func TestGeneratorProjectWithoutGitSkipsRunner(t *testing.T) {
	runner := &recordingRunner{}
	g := NewGenerator(afero.NewMemMapFs(), runner, NewRenderer(2025))

	_, err := g.Project(context.Background(), mustOptions(t, Choices{ProjectName: "site", Framework: "vanilla"}), "site")
	require.NoError(t, err)
	assert.Empty(t, runner.calls)
}

func TestGeneratorProjectWriteFailure(t *testing.T) {
	g := NewGenerator(afero.NewReadOnlyFs(afero.NewMemMapFs()), nil, NewRenderer(2025))

	_, err := g.Project(context.Background(), mustOptions(t, Choices{ProjectName: "site", Framework: "vanilla"}), "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site")
}

func TestGeneratorPageAndComponent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	g := NewGenerator(fsys, nil, NewRenderer(2025))

	result, err := g.Page(catalog.PageLogin, catalog.Bootstrap, filepath.Join("out", "login.html"))
	require.NoError(t, err)
	assert.Equal(t, []string{"login.html"}, result.Files)

	content, err := afero.ReadFile(fsys, filepath.Join("out", "login.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<title>Login</title>")

	path := filepath.Join("components", "card.html")
	_, err = g.Component(catalog.ComponentCard, catalog.Bootstrap, path)
	require.NoError(t, err)
	content, err = afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `class="card-body"`)

	// an existing file is replaced
	_, err = g.Component(catalog.ComponentHero, catalog.Tailwind, path)
	require.NoError(t, err)
	content, err = afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Hero Component for tailwind")
}
