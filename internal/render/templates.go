package render

import (
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	resumeHTMLTmpl = htmltemplate.Must(
		htmltemplate.ParseFS(templateFS, "templates/resume.html.tmpl"))
	coverLetterHTMLTmpl = htmltemplate.Must(
		htmltemplate.ParseFS(templateFS, "templates/cover_letter.html.tmpl"))

	texFuncs = texttemplate.FuncMap{"esc": EscapeLaTeX}

	resumeTexTmpl = texttemplate.Must(
		texttemplate.New("resume.tex.tmpl").Funcs(texFuncs).
			ParseFS(templateFS, "templates/resume.tex.tmpl"))
	coverLetterTexTmpl = texttemplate.Must(
		texttemplate.New("cover_letter.tex.tmpl").Funcs(texFuncs).
			ParseFS(templateFS, "templates/cover_letter.tex.tmpl"))
)
