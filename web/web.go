// Package web embeds the HTML pages served by the voyage service.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}

// MustTemplates is like Templates but panics on error.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
