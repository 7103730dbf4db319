package server

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html.tmpl
var indexFS embed.FS

var indexTmpl = template.Must(template.ParseFS(indexFS, "templates/index.html.tmpl"))

type indexData struct {
	HasResumeCached bool
	CachedFileName  string
	MaxUploadBytes  int64
}

// indexHandler serves the upload form
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := indexData{MaxUploadBytes: s.MaxUploadBytes}
	if entry, ok := s.sessionEntry(r); ok {
		data.HasResumeCached = true
		data.CachedFileName = entry.FileName
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.Logger.LogError(err, "Failed to render index page")
	}
}
