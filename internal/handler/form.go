package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
)

const (
	fieldTitle       = "title"
	fieldContent     = "content"
	fieldCategories  = "categories"
	fieldPlatforms   = "platforms"
	fieldAttachments = "attachments"
	fieldLocation    = "location"
	fieldLinkPrefix  = "link-"
)

func parseRequestForm(r *http.Request) error {
	err := r.ParseMultipartForm(config.MaxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// parsePostForm reads the form step. Platforms keep submission order and
// unknown platforms are rejected.
func parsePostForm(r *http.Request) (model.PostFormData, error) {
	data := model.PostFormData{
		Title:      r.FormValue(fieldTitle),
		Content:    r.FormValue(fieldContent),
		Categories: model.ParseCategories(r.FormValue(fieldCategories)),
	}

	for _, key := range r.Form[fieldPlatforms] {
		p, err := model.ParsePlatform(key)
		if err != nil {
			return data, err
		}
		if !slices.Contains(data.Platforms, p) {
			data.Platforms = append(data.Platforms, p)
		}
	}

	attachments, err := parseAttachments(r)
	if err != nil {
		return data, err
	}
	data.Attachments = attachments

	return data, nil
}

func parseAttachments(r *http.Request) ([]model.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var attachments []model.Attachment
	for _, fh := range r.MultipartForm.File[fieldAttachments] {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening attachment %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading attachment %s: %w", fh.Filename, err)
		}

		attachments = append(attachments, model.NewAttachment(fh.Filename, fh.Header.Get(config.HCType), data))
	}
	return attachments, nil
}

// parseLinks reads one link-{platform} field per known platform.
func parseLinks(r *http.Request) map[model.Platform]string {
	links := make(map[model.Platform]string)
	for _, p := range model.Platforms() {
		if v, ok := r.Form[fieldLinkPrefix+p.String()]; ok && len(v) > 0 {
			links[p] = v[0]
		}
	}
	return links
}
