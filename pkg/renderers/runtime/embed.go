package runtime

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// RuntimeScriptName is the client application that hydrates the form
// container from the boot payload.
const RuntimeScriptName = "formbench-runtime.js"

// StylesheetName matches the shared stylesheet served by the vanilla bundle;
// themes may override it through the runtime.stylesheet asset key.
const StylesheetName = "formbench.css"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime script bundle.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
