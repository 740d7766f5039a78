// Package util provides utility functions for content hashing, slugs and front matter parsing.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/gomarkdown/markdown"
)

// slugSpace is whitespace as browsers see it: ASCII spaces, vertical tab,
// every Unicode separator and the byte order mark.
const slugSpace = `\s\v\p{Z}\x{FEFF}`

var (
	slugStrip    = regexp.MustCompile(`[^\w` + slugSpace + `-]`)
	slugCollapse = regexp.MustCompile(`[` + slugSpace + `_-]+`)
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Slugify derives a URL-safe identifier from a title. Only ASCII word
// characters survive; an empty title yields an empty slug.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ParseFrontMatter decodes a leading "---" YAML block into v and returns the
// remaining body.
func ParseFrontMatter(md []byte, v any) ([]byte, error) {
	md = markdown.NormalizeNewlines(md)

	if !bytes.HasPrefix(md, []byte("---")) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	body, err := frontmatter.MustParse(bytes.NewReader(md), v)
	if err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	return bytes.TrimLeft(body, "\n"), nil
}
