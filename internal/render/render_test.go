package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/config"
)

func setupTest() {
	SetLogger(zerolog.Nop())
	cache.ClearRenderedMarkdownCache()
}

func withRenderer(t *testing.T, renderer string) {
	t.Helper()
	original := config.AppConfig.Markdown.Renderer
	config.AppConfig.Markdown.Renderer = renderer
	t.Cleanup(func() { config.AppConfig.Markdown.Renderer = original })
}

func TestMarkdownRenderers(t *testing.T) {
	md := []byte("# Heading\r\n\r\nSome *emphasis* and a list:\r\n\r\n- one\r\n- two\r\n")

	for _, renderer := range []string{config.RendererMmark, config.RendererClassic, "unknown"} {
		t.Run(renderer, func(t *testing.T) {
			withRenderer(t, renderer)
			out := string(Markdown(md, "github"))

			if !strings.Contains(out, "<h1") {
				t.Errorf("Expected a heading, got %s", out)
			}
			if !strings.Contains(out, "<em>emphasis</em>") {
				t.Errorf("Expected emphasis, got %s", out)
			}
			if !strings.Contains(out, "<li>") {
				t.Errorf("Expected list items, got %s", out)
			}
		})
	}
}

func TestMarkdownHighlightsCode(t *testing.T) {
	md := []byte("```go\nfunc main() {}\n```\n")

	for _, renderer := range []string{config.RendererMmark, config.RendererClassic} {
		t.Run(renderer, func(t *testing.T) {
			withRenderer(t, renderer)
			out := string(Markdown(md, "monokai"))
			if !strings.Contains(out, `class="highlight"`) {
				t.Errorf("Expected highlighted code block, got %s", out)
			}
		})
	}
}

func TestMarkdownEscapesCode(t *testing.T) {
	withRenderer(t, config.RendererClassic)
	out := string(Markdown([]byte("```html\n<script>alert(1)</script>\n```\n"), "github"))

	if strings.Contains(out, "<script>") {
		t.Errorf("Expected code to stay escaped, got %s", out)
	}
}

func TestMarkdownImages(t *testing.T) {
	withRenderer(t, config.RendererClassic)
	out := string(Markdown([]byte("## Attachments\n![cat.png](cat.png)\n- notes.txt\n"), "github"))

	if !strings.Contains(out, `src="cat.png"`) {
		t.Errorf("Expected image reference, got %s", out)
	}
	if !strings.Contains(out, "notes.txt") {
		t.Errorf("Expected list item, got %s", out)
	}
}

func TestMarkdownCached(t *testing.T) {
	setupTest()

	md := []byte("# Cached\n\nBody with `code`")

	first := MarkdownCached(md, "hash-1", "github")
	if len(first) == 0 {
		t.Fatal("Expected rendered HTML")
	}

	cached, found := cache.GetRenderedMarkdown("hash-1", "github")
	if !found {
		t.Fatal("Expected content to be cached")
	}
	if !bytes.Equal(cached, first) {
		t.Error("Cached HTML should match rendered HTML")
	}

	// Same hash returns cached output even for different input.
	second := MarkdownCached([]byte("# Something else"), "hash-1", "github")
	if !bytes.Equal(first, second) {
		t.Error("Expected cache hit to return the first rendering")
	}

	if _, found := cache.GetRenderedMarkdown("hash-1", "monokai"); found {
		t.Error("Expected different theme to be a separate entry")
	}
}

func TestMarkdownCachedEmptyHash(t *testing.T) {
	setupTest()

	out := MarkdownCached([]byte("# No hash"), "", "github")
	if len(out) == 0 {
		t.Error("Expected rendered HTML without a hash")
	}
	if _, found := cache.GetRenderedMarkdown("", "github"); found {
		t.Error("Expected nothing cached for an empty hash")
	}
}

func TestMarkdownCachedConcurrency(t *testing.T) {
	setupTest()

	const numGoroutines = 50
	md := []byte("# Concurrent\n\nContent")

	var wg sync.WaitGroup
	results := make(chan []byte, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- MarkdownCached(md, "concurrent-hash", "github")
		}()
	}
	wg.Wait()
	close(results)

	var first []byte
	for result := range results {
		if first == nil {
			first = result
			continue
		}
		if !bytes.Equal(result, first) {
			t.Fatal("Expected identical results from concurrent renders")
		}
	}
}

func TestSource(t *testing.T) {
	source := "---\ndate: 2025-01-01T00:00:00.000Z\n---\n\n# Hello <b>\n"

	out, err := Source(source, "github")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(out, `<div class="markdown-source">`) {
		t.Errorf("Expected wrapper div, got %s", out)
	}
	if !strings.Contains(out, "Hello") {
		t.Errorf("Expected source text in output, got %s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("Expected source to be escaped, got %s", out)
	}

	if _, err := Source(source, "no-such-style"); err != nil {
		t.Errorf("Expected fallback style, got error %v", err)
	}
}
