package config

import "time"

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"
	HDisposition  = "Content-Disposition"

	HHxRequest  = "Hx-Request"
	HHxTrigger  = "Hx-Trigger"
	HHxRetarget = "Hx-Retarget"
	HHxReswap   = "Hx-Reswap"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
	CTypeText = "text/plain"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	CookieTheme       = "theme"
	CookieSyntaxTheme = "syntax-theme"
	CookieSession     = "wizard-session"
)

const (
	// Upper bound for a single multipart form, attachments included.
	MaxFormMemory = 64 << 20

	// How long the "Copied!" label stays before reverting.
	CopiedIndicatorDelay = 2 * time.Second
)
