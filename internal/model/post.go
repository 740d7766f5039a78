// Package model defines the post data carried through the wizard.
package model

import (
	"bytes"
	"slices"

	"github.com/debemdeboas/chronicler/internal/util"
)

// PostFormData is what the form step collects. It is not modified once the
// form step hands it over.
type PostFormData struct {
	Title       string
	Content     string
	Attachments []Attachment
	Categories  Categories
	Platforms   []Platform
}

// Clone returns a copy that shares no memory with d.
func (d PostFormData) Clone() PostFormData {
	c := d
	c.Categories = slices.Clone(d.Categories)
	c.Platforms = slices.Clone(d.Platforms)
	if d.Attachments != nil {
		c.Attachments = make([]Attachment, len(d.Attachments))
		for i, a := range d.Attachments {
			a.Data = bytes.Clone(a.Data)
			c.Attachments[i] = a
		}
	}
	return c
}

// Post is a finalized post ready to be archived.
type Post struct {
	PostFormData

	Slug  string
	Links map[Platform]string
}

// NewPost derives the slug and keeps exactly one link per selected platform.
func NewPost(data PostFormData, links map[Platform]string) *Post {
	kept := make(map[Platform]string, len(data.Platforms))
	for _, p := range data.Platforms {
		kept[p] = links[p]
	}

	return &Post{
		PostFormData: data,
		Slug:         util.Slugify(data.Title),
		Links:        kept,
	}
}

// TogglePlatform adds p if absent and removes it otherwise, preserving order.
func TogglePlatform(platforms []Platform, p Platform) []Platform {
	for i, existing := range platforms {
		if existing == p {
			return append(platforms[:i:i], platforms[i+1:]...)
		}
	}
	return append(platforms, p)
}
