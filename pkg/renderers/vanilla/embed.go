package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// RuntimeScriptName is the asset the rendered page loads for blur/change
// validation round-trips and field state tracking.
const RuntimeScriptName = "formbench-vanilla.js"

// StylesheetName is the shared stylesheet both variants load.
const StylesheetName = "formbench.css"

// TemplatesFS exposes the embedded template bundle for consumers that want
// the built-in page rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime asset bundle (CSS/JS) so callers can
// serve it over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
