package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/archive"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
	"github.com/debemdeboas/chronicler/internal/render"
	"github.com/debemdeboas/chronicler/internal/sse"
	"github.com/debemdeboas/chronicler/internal/theme"
)

type libraryPage struct {
	*model.PageData
	ArchivePath string
	Posts       []archive.ArchivedPost
}

type archivedPostPage struct {
	*model.PageData
	ArchivePath string
	Post        *archive.ArchivedPost
	Content     template.HTML
	Source      bool
	BundleName  string
}

// archivedPost resolves the {folder} path value, writing the error response when it fails.
func (h *Handler) archivedPost(w http.ResponseWriter, r *http.Request) (*archive.ArchivedPost, bool) {
	if h.library == nil {
		http.Error(w, config.ErrLibraryDisabled, http.StatusNotFound)
		return nil, false
	}

	post, err := h.library.Get(r.PathValue("folder"))
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return post, true
}

func (h *Handler) ServeLibrary(w http.ResponseWriter, r *http.Request) {
	if h.library == nil {
		http.Error(w, config.ErrLibraryDisabled, http.StatusNotFound)
		return
	}

	tmpl, err := h.parseTemplates(config.TemplateLibrary)
	if err != nil {
		http.Error(w, fmt.Sprintf(config.ErrLoadTemplateFmt, err), http.StatusInternalServerError)
		return
	}

	data := libraryPage{
		PageData:    model.NewPageData(r),
		ArchivePath: config.ArchiveUrlPath,
		Posts:       h.library.List(),
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) redirectToPost(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, config.ArchiveUrlPath+r.PathValue("folder")+"/", http.StatusMovedPermanently)
}

func (h *Handler) serveArchivedPage(w http.ResponseWriter, r *http.Request, source bool) {
	post, ok := h.archivedPost(w, r)
	if !ok {
		return
	}

	syntaxTheme := theme.FromRequest(r).Syntax
	data := archivedPostPage{
		PageData:    model.NewPageData(r),
		ArchivePath: config.ArchiveUrlPath,
		Post:        post,
		Source:      source,
		BundleName:  archive.BundleName(post.Folder, h.compressor),
	}

	if source {
		highlighted, err := render.Source(string(post.Source), syntaxTheme)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("folder", post.Folder).Msg("Failed to highlight source")
			highlighted = "<pre>" + template.HTMLEscapeString(string(post.Source)) + "</pre>"
		}
		data.Content = template.HTML(highlighted)
	} else {
		data.Content = template.HTML(render.MarkdownCached(post.Body, post.ContentHash, syntaxTheme))
	}

	tmpl, err := h.parseTemplates(config.TemplateArchivePost)
	if err != nil {
		http.Error(w, fmt.Sprintf(config.ErrLoadTemplateFmt, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ServeArchivedPost(w http.ResponseWriter, r *http.Request) {
	h.serveArchivedPage(w, r, false)
}

func (h *Handler) ServeArchivedSource(w http.ResponseWriter, r *http.Request) {
	h.serveArchivedPage(w, r, true)
}

// ServeArchivedFile serves an attachment stored next to post.md, so relative
// image links in the rendered post resolve.
func (h *Handler) ServeArchivedFile(w http.ResponseWriter, r *http.Request) {
	post, ok := h.archivedPost(w, r)
	if !ok {
		return
	}

	name := r.PathValue("file")
	if name != config.PostFileName && !slices.Contains(post.Files, name) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.library.Root(), post.Folder, name))
}

func (h *Handler) ServeBundle(w http.ResponseWriter, r *http.Request) {
	post, ok := h.archivedPost(w, r)
	if !ok {
		return
	}

	w.Header().Set(config.HCType, h.compressor.ContentType())
	w.Header().Set(config.HDisposition, fmt.Sprintf(`attachment; filename="%s"`, archive.BundleName(post.Folder, h.compressor)))

	if err := h.library.WriteBundle(w, post.Folder, h.compressor); err != nil {
		// Headers are already out; the truncated body is all the client gets.
		zerolog.Ctx(r.Context()).Error().Err(err).Str("folder", post.Folder).Msg("Failed to write bundle")
	}
}

// Events streams reload notices for the library index (?topic=library) or a
// single post (?post={folder}).
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("post")
	if topic == "" {
		topic = r.URL.Query().Get("topic")
	}
	if topic == "" {
		http.Error(w, "Post or topic parameter required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, "text/event-stream")
	w.Header().Set(config.HCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Del("X-Content-Type-Options")

	fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
	flusher.Flush()

	client := sse.NewClient(topic)
	h.clients.Add(client)

	log := zerolog.Ctx(r.Context())
	log.Debug().Str("topic", topic).Msg("New SSE client connected")

	defer func() {
		h.clients.Delete(client)
		log.Debug().Str("topic", topic).Msg("SSE client disconnected")
	}()

	notify := r.Context().Done()
	for {
		select {
		case msg := <-client.Msg:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-notify:
			return
		}
	}
}
