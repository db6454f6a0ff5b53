package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load faz o parse dos templates embutidos (form.html, success.html)
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
