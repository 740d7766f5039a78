package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/debemdeboas/chronicler/internal/clipboard"
	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/wizard"
)

const (
	labelCopyContent     = "Copy Content"
	labelCopyAttachments = "Copy Attachments"

	eventCopyImages = "copyImages"
)

// CopyContent copies the form's content field. It does not touch the wizard.
func (h *Handler) CopyContent(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	if err := clipboard.CopyContent(r.Context(), h.clipboard, r.FormValue(fieldContent)); err != nil {
		h.copyFailed(w, r, config.MsgCopyContentFailed)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Write([]byte(copyLabel(labelCopyContent, true)))
}

// CopyAttachments copies the form's attachments. Image copies are finished
// by the page on the copyImages event. It does not touch the wizard.
func (h *Handler) CopyAttachments(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	attachments, err := parseAttachments(r)
	if err != nil {
		http.Error(w, fmt.Sprintf(config.ErrParseFormFmt, err), http.StatusBadRequest)
		return
	}

	// Images are copied by the browser from the form's file input.
	cb := clipboard.NewDeferred(h.clipboard)
	if err := clipboard.CopyAttachments(r.Context(), cb, attachments); err != nil {
		h.copyFailed(w, r, config.MsgCopyAttachmentsFailed)
		return
	}

	if types := cb.MediaTypes(); len(types) > 0 {
		if !isHTMX(r) {
			h.copyFailed(w, r, config.MsgCopyAttachmentsFailed)
			return
		}
		trigger, err := json.Marshal(map[string]any{eventCopyImages: map[string][]string{"types": types}})
		if err != nil {
			h.copyFailed(w, r, config.MsgCopyAttachmentsFailed)
			return
		}
		w.Header().Set(config.HHxTrigger, string(trigger))
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Write([]byte(copyLabel(labelCopyAttachments, true)))
}

func (h *Handler) copyFailed(w http.ResponseWriter, r *http.Request, msg string) {
	notice := &wizard.Notice{Kind: wizard.NoticeError, Message: msg}
	if !isHTMX(r) {
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}
	h.renderNotice(w, r, nil, notice, nil)
}
