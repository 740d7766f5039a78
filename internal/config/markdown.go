package config

// Values for markdown.renderer.
const (
	RendererMmark   = "mmark"
	RendererClassic = "classic"
)
