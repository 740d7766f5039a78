package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/theme"
)

type PageData struct {
	SiteName string
	Tagline  string

	PageURL string

	Theme string

	SyntaxCSS    template.CSS
	SyntaxTheme  string
	SyntaxThemes []string

	LibraryEnabled bool
}

func NewPageData(r *http.Request) *PageData {
	pref := theme.FromRequest(r)
	return &PageData{
		SiteName:       config.AppConfig.Site.Name,
		Tagline:        config.AppConfig.Site.Tagline,
		PageURL:        r.URL.Path,
		Theme:          pref.Theme,
		SyntaxTheme:    pref.Syntax,
		SyntaxThemes:   theme.SyntaxThemes(),
		SyntaxCSS:      theme.SyntaxCSS(pref.Syntax),
		LibraryEnabled: config.AppConfig.Archive.LibraryDir != "",
	}
}

func (pd *PageData) IsLibrary() bool {
	return strings.HasPrefix(pd.PageURL, strings.TrimSuffix(config.ArchiveUrlPath, "/"))
}
