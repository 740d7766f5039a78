package theme

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/config"
)

func requestWith(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestSyntaxCSS(t *testing.T) {
	testCases := []struct {
		name  string
		theme string
	}{
		{"Monokai", "monokai"},
		{"Gruvbox", "gruvbox"},
		{"Light theme", "catppuccin-latte"},
		{"Non-existent theme falls back", "nonexistent-theme-12345"},
		{"Empty theme name", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cache.ClearSyntaxCSS()

			css := SyntaxCSS(tc.theme)
			if !strings.Contains(string(css), ".chroma") {
				t.Errorf("Expected CSS to contain '.chroma' class")
			}

			cached, found := cache.GetSyntaxCSS(tc.theme)
			if !found {
				t.Fatal("Expected CSS to be cached")
			}
			if cached != css {
				t.Error("Expected cached CSS to match generated CSS")
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	light := &http.Cookie{Name: config.CookieTheme, Value: config.LightTheme}
	dark := &http.Cookie{Name: config.CookieTheme, Value: config.DarkTheme}
	defaults := config.AppConfig.Theme.SyntaxHighlighting

	testCases := []struct {
		name     string
		cookies  []*http.Cookie
		expected Preference
	}{
		{"No cookies", nil, Preference{Theme: config.AppConfig.Theme.Default, Syntax: DefaultSyntax(config.AppConfig.Theme.Default)}},
		{"Light", []*http.Cookie{light}, Preference{Theme: config.LightTheme, Syntax: defaults.DefaultLight}},
		{"Dark", []*http.Cookie{dark}, Preference{Theme: config.DarkTheme, Syntax: defaults.DefaultDark}},
		{"Unknown theme", []*http.Cookie{{Name: config.CookieTheme, Value: "neon"}}, Preference{Theme: config.AppConfig.Theme.Default, Syntax: DefaultSyntax(config.AppConfig.Theme.Default)}},
		{"Chosen syntax", []*http.Cookie{light, {Name: config.CookieSyntaxTheme, Value: "monokai"}}, Preference{Theme: config.LightTheme, Syntax: "monokai", syntaxChosen: true}},
		{"Unknown syntax", []*http.Cookie{light, {Name: config.CookieSyntaxTheme, Value: "nope"}}, Preference{Theme: config.LightTheme, Syntax: defaults.DefaultLight}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromRequest(requestWith(tc.cookies...)); got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestToggled(t *testing.T) {
	defaults := config.AppConfig.Theme.SyntaxHighlighting

	p := FromRequest(requestWith(&http.Cookie{Name: config.CookieTheme, Value: config.DarkTheme})).Toggled()
	if p.Theme != config.LightTheme || p.Syntax != defaults.DefaultLight {
		t.Errorf("Expected light theme with default syntax, got %+v", p)
	}
	if p.ToggleIcon() != config.DarkThemeIcon {
		t.Error("Expected light theme to show the dark icon")
	}

	p = FromRequest(requestWith(
		&http.Cookie{Name: config.CookieTheme, Value: config.LightTheme},
		&http.Cookie{Name: config.CookieSyntaxTheme, Value: "monokai"},
	)).Toggled()
	if p.Theme != config.DarkTheme || p.Syntax != "monokai" {
		t.Errorf("Expected dark theme keeping monokai, got %+v", p)
	}
	if p.ToggleIcon() != config.LightThemeIcon {
		t.Error("Expected dark theme to show the light icon")
	}
}

func TestSyntaxThemes(t *testing.T) {
	names := SyntaxThemes()
	if !slices.IsSorted(names) {
		t.Error("Expected syntax themes to be sorted")
	}
	if !slices.Contains(names, "gruvbox") {
		t.Error("Expected gruvbox to be available")
	}
	if !IsSyntaxTheme("gruvbox") || IsSyntaxTheme("") || IsSyntaxTheme("nope") {
		t.Error("Expected IsSyntaxTheme to match registered styles only")
	}
}
