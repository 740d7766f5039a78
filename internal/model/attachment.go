package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

type Attachment struct {
	Name      string
	MediaType string
	Data      []byte
}

// NewAttachment fills in the media type by sniffing the data when the caller
// could not supply a meaningful one.
func NewAttachment(name, mediaType string, data []byte) Attachment {
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(data).String()
	}
	return Attachment{
		Name:      name,
		MediaType: mediaType,
		Data:      data,
	}
}

func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MediaType, "image/")
}

// PastedImageName names an image pasted from the clipboard, which arrives without a file name.
func PastedImageName(mediaType string, now time.Time) string {
	ext := "png"
	if _, sub, ok := strings.Cut(mediaType, "/"); ok && sub != "" {
		ext, _, _ = strings.Cut(sub, ";")
	}
	return fmt.Sprintf("pasted-image-%d.%s", now.UnixMilli(), ext)
}
