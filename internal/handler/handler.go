// Package handler serves the wizard, its form helpers and the archive library over HTTP.
package handler

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/archive"
	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/clipboard"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/repository/session"
	"github.com/debemdeboas/chronicler/internal/routes"
	"github.com/debemdeboas/chronicler/internal/sse"
	"github.com/debemdeboas/chronicler/internal/util/compression"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

var handlerLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	handlerLogger = l
}

type Handler struct {
	fs fs.FS

	sessions  session.Repository
	picker    archive.Picker
	clipboard clipboard.Clipboard

	// library is nil when no local archive directory is configured.
	library    *archive.Library
	clients    *sse.SSEClients
	compressor compression.Compressor
}

type Options struct {
	FS         fs.FS
	Sessions   session.Repository
	Picker     archive.Picker
	Clipboard  clipboard.Clipboard
	Library    *archive.Library
	Clients    *sse.SSEClients
	Compressor compression.Compressor
}

func New(opts Options) *Handler {
	h := &Handler{
		fs:         opts.FS,
		sessions:   opts.Sessions,
		picker:     opts.Picker,
		clipboard:  opts.Clipboard,
		library:    opts.Library,
		clients:    opts.Clients,
		compressor: opts.Compressor,
	}
	if h.clients == nil {
		h.clients = sse.NewSSEClients()
	}
	if h.compressor == nil {
		h.compressor = compression.ZstdCompressor{}
	}
	if h.library != nil {
		h.library.SetReloadNotifier(h.notifyReload)
	}
	return h
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(routes.RobotsPath, serveRobots)
	mux.HandleFunc("GET "+routes.ThemeOppositeIcon, serveThemeOppositeIcon)
	mux.HandleFunc("POST "+routes.ThemeToggle, serveThemeToggle)
	mux.HandleFunc(routes.SyntaxThemeSet, serveSyntaxThemeSet)
	mux.HandleFunc(routes.SyntaxThemeGet, serveSyntaxThemeGet)

	mux.HandleFunc("GET "+routes.RootPath, h.ServeWizard)
	mux.HandleFunc("POST "+routes.WizardFolder, h.SelectFolder)
	mux.HandleFunc("POST "+routes.WizardSkip, h.Skip)
	mux.HandleFunc("POST "+routes.WizardPublish, h.Publish)
	mux.HandleFunc("POST "+routes.WizardLinks, h.SubmitLinks)
	mux.HandleFunc("POST "+routes.WizardAnother, h.CreateAnother)

	mux.HandleFunc("GET "+routes.PartialsSlug, serveSlugPreview)
	mux.HandleFunc("POST "+routes.PartialsPreview, servePreview)
	mux.HandleFunc("GET "+routes.PartialsCopyLabel, serveCopyLabel)
	mux.HandleFunc("GET "+routes.PartialsPastedName, servePastedName)
	mux.HandleFunc("POST "+routes.ClipboardContent, h.CopyContent)
	mux.HandleFunc("POST "+routes.ClipboardFiles, h.CopyAttachments)

	mux.HandleFunc("GET "+routes.Library, h.ServeLibrary)
	mux.HandleFunc("GET "+routes.LibraryPostBare, h.redirectToPost)
	mux.HandleFunc("GET "+routes.LibraryPost, h.ServeArchivedPost)
	mux.HandleFunc("GET "+routes.LibrarySource, h.ServeArchivedSource)
	mux.HandleFunc("GET "+routes.LibraryBundle, h.ServeBundle)
	mux.HandleFunc("GET "+routes.LibraryFile, h.ServeArchivedFile)
	mux.HandleFunc("GET "+routes.SSEPath, h.Events)
}

func (h *Handler) parseTemplates(page string) (*template.Template, error) {
	return template.ParseFS(h.fs,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+page,
	)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get(config.HHxRequest) == "true"
}

// session returns the caller's wizard session, starting a new one when the
// cookie is missing or expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if cookie, err := r.Cookie(config.CookieSession); err == nil {
		s, err := h.sessions.Get(session.ID(cookie.Value))
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
	}

	s, err := h.sessions.Create()
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSession,
		Value:    string(s.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	zerolog.Ctx(r.Context()).Debug().Str("session", string(s.ID)).Msg("Started wizard session")
	return s, nil
}

// noticeFor maps a wizard error to the message shown to the user. Errors it
// does not know are returned as-is.
func noticeFor(err error) (*wizard.Notice, error) {
	var vErr *wizard.ValidationError
	var aErr *wizard.ArchiveError
	switch {
	case errors.As(err, &vErr):
		return &wizard.Notice{Kind: wizard.NoticeError, Message: vErr.Message}, nil
	case errors.As(err, &aErr):
		return &wizard.Notice{Kind: wizard.NoticeError, Message: aErr.Message}, nil
	case errors.Is(err, wizard.ErrBusy):
		return &wizard.Notice{Kind: wizard.NoticeWarning, Message: config.MsgSubmissionPending}, nil
	case errors.Is(err, wizard.ErrInvalidTransition):
		return &wizard.Notice{Kind: wizard.NoticeWarning, Message: config.MsgInvalidStep}, nil
	default:
		return nil, err
	}
}

// notifyReload tells open library pages that folder changed. Renders keyed
// by stale content hashes are dropped.
func (h *Handler) notifyReload(folder string) {
	cache.ClearRenderedMarkdownCache()
	go h.clients.Broadcast(folder, "reload")
	go h.clients.Broadcast(sse.TopicLibrary, "reload")
}
