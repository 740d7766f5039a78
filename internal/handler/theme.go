package handler

import (
	"fmt"
	"net/http"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/theme"
	"github.com/debemdeboas/chronicler/internal/util"
)

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nDisallow: /"))
}

func serveThemeOppositeIcon(w http.ResponseWriter, r *http.Request) {
	current := r.URL.Query().Get("theme")
	if !config.IsKnownTheme(current) {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(theme.Preference{Theme: current}.ToggleIcon()))
}

func serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	pref := theme.FromRequest(r).Toggled()

	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieTheme,
		Value: pref.Theme,
		Path:  "/",
	})

	w.Header().Set(config.HHxTrigger, fmt.Sprintf(`{"themeChanged":{"value":"%s","syntaxTheme":"%s"}}`, pref.Theme, pref.Syntax))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(pref.ToggleIcon()))
}

func serveSyntaxThemeSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	name := r.FormValue("syntax-theme-select")
	if !theme.IsSyntaxTheme(name) {
		http.Error(w, "unknown syntax theme", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSyntaxTheme,
		Value:    name,
		Path:     "/",
		HttpOnly: true,
	})

	writeSyntaxCSS(w, name)
}

func serveSyntaxThemeGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	writeSyntaxCSS(w, r.PathValue("theme"))
}

// writeSyntaxCSS serves the stylesheet with its content hash as ETag.
func writeSyntaxCSS(w http.ResponseWriter, name string) {
	css := []byte(theme.SyntaxCSS(name))
	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(css))
	w.WriteHeader(http.StatusOK)
	w.Write(css)
}
