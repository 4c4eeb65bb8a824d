package scaffold

import (
	"fmt"
	"strings"

	"github.com/boil-labs/boil/internal/catalog"
)

const (
	bootstrapCSS   = `<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">`
	bootstrapJS    = `<script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/js/bootstrap.bundle.min.js"></script>`
	tailwindJS     = `<script src="https://cdn.tailwindcss.com"></script>`
	materializeCSS = `<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/materialize/1.0.0/css/materialize.min.css">`
	materializeJS  = `<script src="https://cdnjs.cloudflare.com/ajax/libs/materialize/1.0.0/js/materialize.min.js"></script>`
	skeletonCSS    = `<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/skeleton/2.0.4/skeleton.min.css">`
	daisyCSS       = `<link href="https://cdn.jsdelivr.net/npm/daisyui@4.4.19/dist/full.min.css" rel="stylesheet" type="text/css">`

	// LocalStylesheet is the path of the stylesheet every generated project carries.
	LocalStylesheet = "assets/css/main.css"

	headIndent = "\n    "
)

// FrameworkCDN returns the CDN tags placed in a project's index.html. The
// vanilla and html5 frameworks have no CDN assets and yield "".
func FrameworkCDN(fw catalog.Framework) string {
	switch fw {
	case catalog.Bootstrap:
		return bootstrapCSS + headIndent + bootstrapJS
	case catalog.Tailwind:
		return tailwindJS
	case catalog.Materialize:
		return materializeCSS + headIndent + materializeJS
	case catalog.Skeleton:
		return skeletonCSS
	case catalog.DaisyUI:
		return daisyCSS + headIndent + tailwindJS
	default:
		return ""
	}
}

// FrameworkLinks returns the stylesheet markup for a standalone page. Every
// framework yields non-empty markup; vanilla, html5 and anything unknown link
// the locally generated stylesheet.
func FrameworkLinks(fw catalog.Framework) string {
	switch fw {
	case catalog.Bootstrap:
		return bootstrapCSS
	case catalog.Tailwind:
		return tailwindJS
	case catalog.Materialize:
		return materializeCSS
	case catalog.Skeleton:
		return skeletonCSS
	case catalog.DaisyUI:
		return daisyCSS + headIndent + tailwindJS
	default:
		return fmt.Sprintf(`<link rel="stylesheet" href="%s">`, LocalStylesheet)
	}
}

// IconCDN returns the tag loading the chosen icon library, or "" for none.
func IconCDN(lib catalog.IconLibrary) string {
	switch lib {
	case catalog.IconsHeroicons:
		return `<script src="https://cdn.jsdelivr.net/npm/heroicons@2.0.18/24/outline/index.js"></script>`
	case catalog.IconsFontAwesome:
		return `<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css" crossorigin="anonymous" referrerpolicy="no-referrer">`
	default:
		return ""
	}
}

// IconsComment returns an HTML comment pointing at the icon library's catalogue.
func IconsComment(lib catalog.IconLibrary) string {
	switch lib {
	case catalog.IconsHeroicons:
		return "<!-- HeroIcons: https://heroicons.com/ -->"
	case catalog.IconsFontAwesome:
		return "<!-- Font Awesome: https://fontawesome.com/icons -->"
	default:
		return ""
	}
}

// IconExample returns a small usage snippet for the icon library.
func IconExample(lib catalog.IconLibrary) string {
	switch lib {
	case catalog.IconsHeroicons:
		return `<!-- HeroIcons Example -->
<svg class="h-6 w-6" fill="none" viewBox="0 0 24 24" stroke="currentColor">
  <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 6h16M4 12h16M4 18h16" />
</svg>`
	case catalog.IconsFontAwesome:
		return `<!-- Font Awesome Example -->
<i class="fas fa-home"></i>
<i class="fas fa-user"></i>
<i class="fas fa-bars"></i>`
	default:
		return ""
	}
}

// MetaOptions feeds MetaTags. Zero values pick the defaults noted per field.
type MetaOptions struct {
	Title       string
	Description string
	Keywords    []string
	Author      string
	OGType      string // default "website"
	OGImage     string
	TwitterCard string // default "summary_large_image"
	ThemeColor  string // default "#3b82f6"
}

// MetaTags renders the charset, viewport, SEO, Open Graph and Twitter tags
// for a page head, one tag per line.
func MetaTags(o MetaOptions) string {
	if o.OGType == "" {
		o.OGType = "website"
	}
	if o.TwitterCard == "" {
		o.TwitterCard = "summary_large_image"
	}
	if o.ThemeColor == "" {
		o.ThemeColor = "#3b82f6"
	}

	tags := []string{
		`<meta charset="UTF-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
		`<meta http-equiv="X-UA-Compatible" content="IE=edge">`,
		fmt.Sprintf(`<title>%s</title>`, o.Title),
		fmt.Sprintf(`<meta name="description" content="%s">`, o.Description),
	}
	if len(o.Keywords) > 0 {
		tags = append(tags, fmt.Sprintf(`<meta name="keywords" content="%s">`, strings.Join(o.Keywords, ", ")))
	}
	if o.Author != "" {
		tags = append(tags, fmt.Sprintf(`<meta name="author" content="%s">`, o.Author))
	}
	tags = append(tags,
		fmt.Sprintf(`<meta name="theme-color" content="%s">`, o.ThemeColor),
		fmt.Sprintf(`<meta property="og:title" content="%s">`, o.Title),
		fmt.Sprintf(`<meta property="og:description" content="%s">`, o.Description),
		fmt.Sprintf(`<meta property="og:type" content="%s">`, o.OGType),
	)
	if o.OGImage != "" {
		tags = append(tags, fmt.Sprintf(`<meta property="og:image" content="%s">`, o.OGImage))
	}
	tags = append(tags,
		fmt.Sprintf(`<meta name="twitter:card" content="%s">`, o.TwitterCard),
		fmt.Sprintf(`<meta name="twitter:title" content="%s">`, o.Title),
		fmt.Sprintf(`<meta name="twitter:description" content="%s">`, o.Description),
	)
	if o.OGImage != "" {
		tags = append(tags, fmt.Sprintf(`<meta name="twitter:image" content="%s">`, o.OGImage))
	}
	return strings.Join(tags, headIndent)
}

// FaviconLinks returns the favicon and touch-icon links.
func FaviconLinks() string {
	return strings.Join([]string{
		`<link rel="icon" type="image/x-icon" href="/favicon.ico">`,
		`<link rel="icon" type="image/png" sizes="32x32" href="/favicon-32x32.png">`,
		`<link rel="icon" type="image/png" sizes="16x16" href="/favicon-16x16.png">`,
		`<link rel="apple-touch-icon" sizes="180x180" href="/apple-touch-icon.png">`,
	}, headIndent)
}

const lightPalette = `  --bg-primary: #ffffff;
  --bg-secondary: #f3f4f6;
  --text-primary: #111827;
  --text-secondary: #6b7280;
  --border-color: #e5e7eb;
  --accent-color: #3b82f6;
  --accent-hover: #2563eb;`

const darkPalette = `  --bg-primary: #111827;
  --bg-secondary: #1f2937;
  --text-primary: #f9fafb;
  --text-secondary: #9ca3af;
  --border-color: #374151;
  --accent-color: #60a5fa;
  --accent-hover: #3b82f6;`

// ThemeCSS returns the colour custom properties for the theme mode. The
// prefers-color-scheme dark block is emitted for dark and auto; explicit
// [data-theme] overrides are always present so the toggle script works.
func ThemeCSS(theme catalog.Theme) string {
	var b strings.Builder
	b.WriteString(":root {\n  /* Light mode colors */\n" + lightPalette + "\n}\n")

	if theme == catalog.ThemeDark || theme == catalog.ThemeAuto {
		b.WriteString("\n@media (prefers-color-scheme: dark) {\n  :root {\n    /* Dark mode colors */\n")
		for _, line := range strings.Split(darkPalette, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("  }\n}\n")
	}

	b.WriteString("\n[data-theme=\"dark\"] {\n" + darkPalette + "\n}\n")
	b.WriteString("\n[data-theme=\"light\"] {\n" + lightPalette + "\n}\n")
	b.WriteString(`
body {
  background-color: var(--bg-primary);
  color: var(--text-primary);
  transition: background-color 0.3s ease, color 0.3s ease;
}`)
	return b.String()
}

// ThemeToggleScript returns the client-side theme switcher. It persists the
// choice in localStorage and reacts to system scheme changes in auto mode.
func ThemeToggleScript() string {
	return `// Theme toggle functionality
const themeToggle = document.getElementById('theme-toggle');
const html = document.documentElement;

// Get saved theme or default to 'auto'
const savedTheme = localStorage.getItem('theme') || 'auto';

function setTheme(theme) {
  if (theme === 'auto') {
    html.removeAttribute('data-theme');
  } else {
    html.setAttribute('data-theme', theme);
  }
  localStorage.setItem('theme', theme);
}

setTheme(savedTheme);

if (themeToggle) {
  themeToggle.addEventListener('click', () => {
    const currentTheme = localStorage.getItem('theme') || 'auto';
    const newTheme = currentTheme === 'light' ? 'dark' : 'light';
    setTheme(newTheme);
  });
}

// Follow system changes while in auto mode
window.matchMedia('(prefers-color-scheme: dark)').addEventListener('change', () => {
  if ((localStorage.getItem('theme') || 'auto') === 'auto') {
    html.removeAttribute('data-theme');
  }
});`
}
