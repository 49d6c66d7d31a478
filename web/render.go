// Package web holds the embedded templates for server-rendered pages
// and the HTMX partials, plus a small renderer over html/template.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

type Renderer struct {
	t *template.Template
}

func NewRenderer(appName string) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"truncate": func(s string, n int) string {
			if len(s) <= n {
				return s
			}
			cut := s[:n]
			if i := strings.LastIndex(cut, " "); i > 0 {
				cut = cut[:i]
			}
			return cut + "..."
		},
		"appName": func() string { return appName },
	}

	t, err := template.New("").Funcs(funcs).ParseFS(templatesFS,
		"templates/pages/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render executes the named template into a buffer so a template error
// never produces a half-written response.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
