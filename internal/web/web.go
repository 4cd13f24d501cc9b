// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFolder embed.FS

//go:embed static
var staticFolder embed.FS

// Templates parses every page template together with the shared partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templatesFolder, "templates/*.html")
}

func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFolder, "static")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return http.FS(sub)
}
