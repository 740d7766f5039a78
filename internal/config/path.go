package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	ArchiveUrlPath = "/archive/"

	TemplatesLocalDir = "templates"

	TemplateLayout      = "layout.html"
	TemplateWelcome     = "welcome.html"
	TemplateForm        = "form.html"
	TemplateLinks       = "links.html"
	TemplateSuccess     = "success.html"
	TemplateLibrary     = "library.html"
	TemplateArchivePost = "archive_post.html"
)

const (
	// File written inside every archived post folder.
	PostFileName = "post.md"
)
