package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*.css static/*.js
var staticFiles embed.FS

// staticFS serves the files under static/ at the root.
var staticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

var pageFuncs = template.FuncMap{
	"join": strings.Join,
	"score": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
}

// pageSet holds one template set per page so each can define its own "content" block.
type pageSet struct {
	pages map[string]*template.Template
}

func loadPages() (*pageSet, error) {
	set := &pageSet{pages: make(map[string]*template.Template)}
	for _, name := range []string{"dashboard.html", "bridge.html", "destination.html"} {
		tmpl, err := template.New(name).Funcs(pageFuncs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		set.pages[name] = tmpl
	}
	return set, nil
}

// render executes the page into a buffer before anything is written.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.pages.pages[name]
	if !ok {
		s.errorResponse(w, http.StatusInternalServerError, "unknown page: "+name)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing %s: %v", name, err)
	}
}
