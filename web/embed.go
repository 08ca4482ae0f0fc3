// Package web holds the embedded control panel page and its assets.
package web

import (
	"embed"
	"io/fs"
	"strconv"

	"github.com/valyala/fasttemplate"
)

//go:embed static
var staticFS embed.FS

//go:embed index.html
var indexHTML string

// PageConfig carries the runtime values injected into the panel page.
type PageConfig struct {
	Title string
	// AnalyzerEnabled toggles the analyze button.
	AnalyzerEnabled bool
}

// RenderIndex fills the page template with the runtime configuration.
func RenderIndex(cfg PageConfig) string {
	if cfg.Title == "" {
		cfg.Title = "adbpanel"
	}
	t := fasttemplate.New(indexHTML, "{{", "}}")
	return t.ExecuteString(map[string]any{
		"title":            cfg.Title,
		"analyzer_enabled": strconv.FormatBool(cfg.AnalyzerEnabled),
	})
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
