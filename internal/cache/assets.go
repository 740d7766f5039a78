package cache

import "html/template"

var (
	staticCache = NewCache[string, string]()
	syntaxCache = NewCache[string, template.CSS]()
)

func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticCache.Set(path, hash)
}

func GetSyntaxCSS(theme string) (template.CSS, bool) {
	return syntaxCache.Get(theme)
}

func SetSyntaxCSS(theme string, css template.CSS) {
	syntaxCache.Set(theme, css)
}

func ClearSyntaxCSS() {
	syntaxCache.Clear()
}
