// Package theme resolves the page and syntax themes a request asks for and
// builds the chroma CSS for them.
package theme

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/config"
)

// Preference is the theme pair carried in a request's cookies. Syntax falls
// back to the default for Theme unless the user picked one.
type Preference struct {
	Theme  string
	Syntax string

	syntaxChosen bool
}

func FromRequest(r *http.Request) Preference {
	p := Preference{Theme: config.AppConfig.Theme.Default}
	if cookie, err := r.Cookie(config.CookieTheme); err == nil && config.IsKnownTheme(cookie.Value) {
		p.Theme = cookie.Value
	}

	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && IsSyntaxTheme(cookie.Value) {
		p.Syntax = cookie.Value
		p.syntaxChosen = true
	} else {
		p.Syntax = DefaultSyntax(p.Theme)
	}
	return p
}

// Toggled switches between light and dark. A chosen syntax theme survives
// the switch; a default one follows the new theme.
func (p Preference) Toggled() Preference {
	next := config.DarkTheme
	if p.Theme == config.DarkTheme {
		next = config.LightTheme
	}

	p.Theme = next
	if !p.syntaxChosen {
		p.Syntax = DefaultSyntax(next)
	}
	return p
}

// ToggleIcon is shown on the toggle button: the icon of the other theme.
func (p Preference) ToggleIcon() string {
	if p.Theme == config.LightTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}

func DefaultSyntax(theme string) string {
	if theme == config.LightTheme {
		return config.AppConfig.Theme.SyntaxHighlighting.DefaultLight
	}
	return config.AppConfig.Theme.SyntaxHighlighting.DefaultDark
}

func SyntaxThemes() []string {
	names := styles.Names()
	slices.Sort(names)
	return names
}

func IsSyntaxTheme(name string) bool {
	return name != "" && slices.Contains(styles.Names(), name)
}

// Formatter is shared by the CSS generator and the code highlighters so
// class names line up.
func Formatter() *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WithLineNumbers(true),
		html.WrapLongLines(true),
	)
}

// SyntaxCSS returns the stylesheet for a chroma style. Unknown names get
// chroma's fallback style.
func SyntaxCSS(name string) template.CSS {
	if css, ok := cache.GetSyntaxCSS(name); ok {
		return css
	}

	var buf strings.Builder
	style := styles.Get(name)

	// Light backgrounds without a text colour would inherit the page's.
	if bg := style.Get(chroma.Background); !bg.Colour.IsSet() {
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	Formatter().WriteCSS(&buf, style)
	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(name, css)
	return css
}
