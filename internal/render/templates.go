package render

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page template names
const (
	HomeTemplate  = "home.tmpl"
	EventTemplate = "event.tmpl"
)

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.New("site").Funcs(template.FuncMap{
		"price": formatPrice,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

func formatPrice(p string) string {
	if p == "" {
		return "TBA"
	}
	return p
}
