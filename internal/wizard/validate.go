package wizard

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/debemdeboas/chronicler/internal/config"
	"github.com/debemdeboas/chronicler/internal/model"
)

type fieldRule struct {
	field string
	value any
	msg   string
}

// validateForm checks title, content and platforms, in that order, and
// reports the first failure.
func validateForm(data model.PostFormData) error {
	return firstFailure([]fieldRule{
		{"title", strings.TrimSpace(data.Title), config.MsgTitleRequired},
		{"content", strings.TrimSpace(data.Content), config.MsgContentRequired},
		{"platforms", data.Platforms, config.MsgPlatformRequired},
	})
}

// validateLinks requires a non-blank link for every selected platform, in selection order.
func validateLinks(platforms []model.Platform, links map[model.Platform]string) error {
	rules := make([]fieldRule, 0, len(platforms))
	for _, p := range platforms {
		rules = append(rules, fieldRule{
			field: p.String(),
			value: strings.TrimSpace(links[p]),
			msg:   fmt.Sprintf(config.MsgLinkRequiredFmt, p.Label()),
		})
	}
	return firstFailure(rules)
}

func firstFailure(rules []fieldRule) error {
	for _, r := range rules {
		if err := validation.Validate(r.value, validation.Required.Error(r.msg)); err != nil {
			return &ValidationError{Field: r.field, Message: err.Error()}
		}
	}
	return nil
}
