// Package render turns post Markdown into HTML for the form preview and the
// archive library.
package render

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mmarkdown/mmark/v2/lang"
	"github.com/mmarkdown/mmark/v2/mparser"
	"github.com/mmarkdown/mmark/v2/render/mhtml"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/chronicler/internal/cache"
	"github.com/debemdeboas/chronicler/internal/config"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

var renderers = map[string]func(md []byte, syntaxTheme string) []byte{
	config.RendererMmark:   renderMmark,
	config.RendererClassic: renderClassic,
}

// Markdown renders md with the configured renderer. Code blocks are
// highlighted with syntaxTheme.
func Markdown(md []byte, syntaxTheme string) []byte {
	r, ok := renderers[config.AppConfig.Markdown.Renderer]
	if !ok {
		r = renderMmark
	}
	return r(markdown.NormalizeNewlines(md), syntaxTheme)
}

// MarkdownCached is Markdown memoized by content hash and syntax theme. An
// empty hash is never cached.
func MarkdownCached(md []byte, contentHash, syntaxTheme string) []byte {
	if contentHash == "" {
		return Markdown(md, syntaxTheme)
	}

	if out, ok := cache.GetRenderedMarkdown(contentHash, syntaxTheme); ok {
		return out
	}

	out := Markdown(md, syntaxTheme)
	cache.SetRenderedMarkdown(contentHash, syntaxTheme, out)
	renderLogger.Debug().Str("content_hash", contentHash).Str("syntax_theme", syntaxTheme).Msg("Rendered markdown cached")
	return out
}

// codeBlockHook replaces fenced code with highlighted HTML.
func codeBlockHook(syntaxTheme string) md_html.RenderNodeFunc {
	return func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
		code, ok := node.(*ast.CodeBlock)
		if !ok || !entering {
			return ast.GoToNext, false
		}
		writeCodeBlock(w, code, syntaxTheme)
		return ast.GoToNext, true
	}
}

func renderClassic(md []byte, syntaxTheme string) []byte {
	doc := parser.NewWithExtensions(
		parser.CommonExtensions | parser.AutoHeadingIDs | parser.Footnotes | parser.NoEmptyLineBeforeBlock,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(md_html.RendererOptions{
		Flags:          md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		RenderNodeHook: codeBlockHook(syntaxTheme),
	}))
}

// renderMmark parses with the mmark extensions. Includes stay disabled since
// no ReadIncludeFn is set.
func renderMmark(md []byte, syntaxTheme string) []byte {
	p := parser.NewWithExtensions(mparser.Extensions | parser.NoIntraEmphasis)
	p.Opts = parser.Options{ParserHook: mparser.Hook, Flags: parser.FlagsNone}

	doc := markdown.Parse(md, p)
	mparser.AddIndex(doc)

	mhtmlOpts := mhtml.RendererOptions{Language: lang.New("en")}
	codeHook := codeBlockHook(syntaxTheme)

	return markdown.Render(doc, md_html.NewRenderer(md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.FootnoteNoHRTag | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if status, handled := codeHook(w, node, entering); handled {
				return status, handled
			}
			return mhtmlOpts.RenderHook(w, node, entering)
		},
	}))
}
