package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/debemdeboas/chronicler/internal/model"
)

// DateFormat is the ISO-8601 UTC timestamp with milliseconds written to front matter.
const DateFormat = "2006-01-02T15:04:05.000Z07:00"

// GenerateMarkdown renders the post.md document: YAML front matter with the
// date, categories and one entry per platform link, then the raw content and
// an attachments section when there are attachments. The title is carried by
// the folder name only.
func GenerateMarkdown(post *model.Post, now time.Time) string {
	platforms := make([]string, 0, len(post.Platforms))
	for _, p := range post.Platforms {
		platforms = append(platforms, fmt.Sprintf("  - name: %s\n    url: %s", p.Label(), post.Links[p]))
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", now.UTC().Format(DateFormat))
	fmt.Fprintf(&b, "categories: [%s]\n", strings.Join(post.Categories, ", "))
	fmt.Fprintf(&b, "platforms:\n%s\n", strings.Join(platforms, "\n"))
	b.WriteString("---\n\n")
	b.WriteString(post.Content)

	if len(post.Attachments) > 0 {
		b.WriteString("\n\n## Attachments\n")
		for _, a := range post.Attachments {
			if a.IsImage() {
				fmt.Fprintf(&b, "![%s](%s)\n", a.Name, a.Name)
			} else {
				fmt.Fprintf(&b, "- %s\n", a.Name)
			}
		}
	}

	return b.String()
}

// FolderName is the per-post folder: the UTC date followed by the slug.
func FolderName(now time.Time, slug string) string {
	return now.UTC().Format("2006-01-02") + "-" + slug
}
