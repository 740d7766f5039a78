package cache

// Rendered Markdown is keyed by content hash and syntax theme.
var renderedMarkdownCache = NewCache[string, []byte]()

func renderedKey(contentHash, syntaxTheme string) string {
	return contentHash + ":" + syntaxTheme
}

func GetRenderedMarkdown(contentHash, syntaxTheme string) ([]byte, bool) {
	return renderedMarkdownCache.Get(renderedKey(contentHash, syntaxTheme))
}

func SetRenderedMarkdown(contentHash, syntaxTheme string, html []byte) {
	renderedMarkdownCache.Set(renderedKey(contentHash, syntaxTheme), html)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
