package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
	"github.com/debemdeboas/chronicler/internal/util"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

var stepTemplates = map[wizard.Step]string{
	wizard.StepWelcome: config.TemplateWelcome,
	wizard.StepForm:    config.TemplateForm,
	wizard.StepLinks:   config.TemplateLinks,
	wizard.StepSuccess: config.TemplateSuccess,
}

type platformOption struct {
	Key     string
	Label   string
	Checked bool
}

type linkField struct {
	Key   string
	Label string
	Value string
}

// formValues refills the form when a full page is re-rendered after a rejected submission.
type formValues struct {
	Title      string
	Content    string
	Categories string
	Platforms  []model.Platform
	Links      map[model.Platform]string
}

type wizardPage struct {
	*model.PageData

	Step   wizard.Step
	Notice *wizard.Notice

	DefaultLocation string
	Target          string
	Archiving       bool

	Title      string
	Content    string
	Categories string
	Slug       string
	Platforms  []platformOption

	Attachments []string
	Links       []linkField

	Folder   string
	PostFile string
}

func (h *Handler) newWizardPage(r *http.Request, m *wizard.Machine, notice *wizard.Notice, values *formValues) *wizardPage {
	state := m.State()
	target := m.Target()
	_, archiving := target.Directory()

	page := &wizardPage{
		PageData:        model.NewPageData(r),
		Step:            state.Step(),
		Notice:          notice,
		DefaultLocation: config.AppConfig.Archive.DefaultLocation,
		Target:          target.String(),
		Archiving:       archiving,
	}

	if values == nil {
		values = &formValues{}
	}

	page.Title = values.Title
	page.Content = values.Content
	page.Categories = values.Categories
	page.Slug = util.Slugify(values.Title)
	for _, p := range model.Platforms() {
		page.Platforms = append(page.Platforms, platformOption{
			Key:     p.String(),
			Label:   p.Label(),
			Checked: slices.Contains(values.Platforms, p),
		})
	}

	switch s := state.(type) {
	case wizard.Links:
		page.Title = s.Data.Title
		page.Slug = util.Slugify(s.Data.Title)
		for _, a := range s.Data.Attachments {
			page.Attachments = append(page.Attachments, a.Name)
		}
		for _, p := range s.Data.Platforms {
			page.Links = append(page.Links, linkField{Key: p.String(), Label: p.Label(), Value: values.Links[p]})
		}
	case wizard.Success:
		page.Folder = s.Folder
		page.PostFile = s.Folder + "/" + config.PostFileName
	}

	return page
}

// renderStep renders the current step: the whole page, or only the step
// content for HTMX requests.
func (h *Handler) renderStep(w http.ResponseWriter, r *http.Request, m *wizard.Machine, notice *wizard.Notice, values *formValues) {
	page := h.newWizardPage(r, m, notice, values)

	tmpl, err := h.parseTemplates(stepTemplates[page.Step])
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("step", string(page.Step)).Msg("Failed to load template")
		http.Error(w, fmt.Sprintf(config.ErrLoadTemplateFmt, err), http.StatusInternalServerError)
		return
	}

	name := config.TemplateLayout
	if isHTMX(r) {
		name = "content"
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, name, page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render step")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
	}
}

// renderNotice shows notice without replacing the step, so the browser keeps
// what the user typed and attached. Plain form posts get the full page back.
func (h *Handler) renderNotice(w http.ResponseWriter, r *http.Request, m *wizard.Machine, notice *wizard.Notice, values *formValues) {
	if !isHTMX(r) {
		h.renderStep(w, r, m, notice, values)
		return
	}

	tmpl, err := template.ParseFS(h.fs, config.TemplatesLocalDir+"/"+config.TemplateLayout)
	if err != nil {
		http.Error(w, fmt.Sprintf(config.ErrLoadTemplateFmt, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Header().Set(config.HHxRetarget, "#notices")
	w.Header().Set(config.HHxReswap, "innerHTML")
	if err := tmpl.ExecuteTemplate(w, "notice", struct{ Notice *wizard.Notice }{notice}); err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
	}
}

// fail reports err from a transition. A request for the wrong step re-renders
// the current step so the page catches up with the session.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, m *wizard.Machine, err error, values *formValues) {
	notice, err := noticeFor(err)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Wizard transition failed")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if notice.Message == config.MsgInvalidStep {
		h.renderStep(w, r, m, notice, nil)
		return
	}
	h.renderNotice(w, r, m, notice, values)
}

func (h *Handler) ServeWizard(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	h.renderStep(w, r, s.Machine, nil, nil)
}

func (h *Handler) SelectFolder(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	notice, err := s.Machine.SelectFolder(r.Context(), h.picker, r.FormValue(fieldLocation))
	if err != nil {
		h.fail(w, r, s.Machine, err, nil)
		return
	}
	h.renderStep(w, r, s.Machine, notice, nil)
}

func (h *Handler) Skip(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := s.Machine.Skip(); err != nil {
		h.fail(w, r, s.Machine, err, nil)
		return
	}
	h.renderStep(w, r, s.Machine, nil, nil)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := parseRequestForm(r); err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	data, err := parsePostForm(r)
	if err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	if err := s.Machine.Publish(data); err != nil {
		h.fail(w, r, s.Machine, err, &formValues{
			Title:      data.Title,
			Content:    data.Content,
			Categories: strings.Join(data.Categories, ", "),
			Platforms:  data.Platforms,
		})
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("slug", util.Slugify(data.Title)).
		Int("attachments", len(data.Attachments)).
		Int("platforms", len(data.Platforms)).
		Msg("Post published")
	h.renderStep(w, r, s.Machine, nil, nil)
}

func (h *Handler) SubmitLinks(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := parseRequestForm(r); err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	links := parseLinks(r)
	notice, err := s.Machine.SubmitLinks(r.Context(), links)
	if err != nil {
		h.fail(w, r, s.Machine, err, &formValues{Links: links})
		return
	}
	h.renderStep(w, r, s.Machine, notice, nil)
}

func (h *Handler) CreateAnother(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(w, r)
	if err != nil {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if err := s.Machine.CreateAnother(); err != nil {
		h.fail(w, r, s.Machine, err, nil)
		return
	}
	h.renderStep(w, r, s.Machine, nil, nil)
}
