package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown/ast"

	"github.com/debemdeboas/chronicler/internal/theme"
)

// highlight formats code as escaped, class-annotated HTML. Unknown languages
// and styles fall back to chroma's defaults.
func highlight(code, language, syntaxTheme string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := theme.Formatter().Format(&buf, styles.Get(syntaxTheme), iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCodeBlock(w io.Writer, code *ast.CodeBlock, syntaxTheme string) {
	out, err := highlight(string(code.Literal), string(code.Info), syntaxTheme)
	if err != nil {
		renderLogger.Warn().Err(err).Str("language", string(code.Info)).Msg("Failed to highlight code block")
		out = "<pre><code>" + html.EscapeString(string(code.Literal)) + "</code></pre>"
	}
	fmt.Fprintf(w, `<div class="highlight">%s</div>`, out)
}

// Source renders a raw post.md, front matter included, as highlighted Markdown.
func Source(source, syntaxTheme string) (string, error) {
	out, err := highlight(source, "markdown", syntaxTheme)
	if err != nil {
		return "", err
	}
	return `<div class="markdown-source">` + out + `</div>`, nil
}
