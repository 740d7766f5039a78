package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
	"github.com/debemdeboas/chronicler/internal/render"
	"github.com/debemdeboas/chronicler/internal/routes"
	"github.com/debemdeboas/chronicler/internal/theme"
	"github.com/debemdeboas/chronicler/internal/util"
)

const previewPlaceholder = "Start typing to see a preview here."

func serveSlugPreview(w http.ResponseWriter, r *http.Request) {
	slug := util.Slugify(r.URL.Query().Get(fieldTitle))

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<code class="slug">%s</code>`, template.HTMLEscapeString(slug))
}

func servePreview(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	content := r.FormValue(fieldContent)
	if content == "" {
		content = previewPlaceholder
	}

	htmlContent := render.Markdown([]byte(content), theme.FromRequest(r).Syntax)

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write(htmlContent)
}

// copyLabel is the text of a copy button. After a copy it reads "Copied!"
// and asks for the original label back once the indicator delay has passed.
func copyLabel(label string, copied bool) string {
	if !copied {
		return fmt.Sprintf(`<span class="copy-label">%s</span>`, template.HTMLEscapeString(label))
	}

	reset := routes.PartialsCopyLabel + "?" + url.Values{"label": {label}}.Encode()
	return fmt.Sprintf(
		`<span class="copy-label" hx-get="%s" hx-trigger="load delay:%dms" hx-swap="outerHTML">Copied!</span>`,
		template.HTMLEscapeString(reset), config.CopiedIndicatorDelay.Milliseconds(),
	)
}

func serveCopyLabel(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	if label == "" {
		label = "Copy"
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(copyLabel(label, false)))
}

// servePastedName names an image pasted into the form, from its ?type= media type.
func servePastedName(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(model.PastedImageName(r.URL.Query().Get("type"), time.Now())))
}
