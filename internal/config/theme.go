package config

const (
	LightTheme string = "light-theme"
	DarkTheme  string = "dark-theme"

	LightThemeIcon string = `<span class="icon">☀</span>`
	DarkThemeIcon  string = `<span class="icon">☾</span>`
)

func IsKnownTheme(theme string) bool {
	return theme == LightTheme || theme == DarkTheme
}
