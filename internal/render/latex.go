package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

const defaultLatexTimeout = 60 * time.Second

// LaTeXRenderer produces PDFs by compiling generated LaTeX source
type LaTeXRenderer struct {
	cfg    config.RenderConfig
	logger *errors.Logger
}

// NewLaTeXRenderer creates a LaTeX-backed renderer
func NewLaTeXRenderer(cfg config.RenderConfig, logger *errors.Logger) *LaTeXRenderer {
	return &LaTeXRenderer{
		cfg:    cfg,
		logger: logger,
	}
}

type texResumeData struct {
	Doc   *types.ResumeDocument
	Paper string
}

type texCoverLetterData struct {
	Letter *types.CoverLetterDocument
	Paper  string
}

// RenderResume renders a parsed resume document to a PDF file
func (r *LaTeXRenderer) RenderResume(ctx context.Context, doc *types.ResumeDocument, outPath string) error {
	var buf bytes.Buffer
	data := texResumeData{Doc: doc, Paper: paperName(r.cfg.PageSize)}
	if err := resumeTexTmpl.Execute(&buf, data); err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build resume document", err)
	}
	return r.compile(ctx, buf.Bytes(), outPath)
}

// RenderCoverLetter renders a cover letter to a PDF file
func (r *LaTeXRenderer) RenderCoverLetter(ctx context.Context, letter *types.CoverLetterDocument, outPath string) error {
	var buf bytes.Buffer
	data := texCoverLetterData{Letter: letter, Paper: paperName(r.cfg.PageSize)}
	if err := coverLetterTexTmpl.Execute(&buf, data); err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build cover letter document", err)
	}
	return r.compile(ctx, buf.Bytes(), outPath)
}

// compile writes source to a temp build dir, runs the LaTeX compiler and
// moves the resulting PDF to outPath
func (r *LaTeXRenderer) compile(ctx context.Context, source []byte, outPath string) error {
	start := time.Now()

	buildDir, err := os.MkdirTemp("", "resumeforge-latex-*")
	if err != nil {
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to create LaTeX build directory", err)
	}
	defer os.RemoveAll(buildDir)

	texPath := filepath.Join(buildDir, "document.tex")
	if err := os.WriteFile(texPath, source, 0o600); err != nil {
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to write LaTeX source", err)
	}

	timeout := r.cfg.LatexTimeout
	if timeout <= 0 {
		timeout = defaultLatexTimeout
	}
	compileCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(compileCtx, r.cfg.LatexCommand,
		"-interaction=nonstopmode", "-halt-on-error", "document.tex")
	cmd.Dir = buildDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		// Compiler output stays in the server log; clients get the code only
		r.logger.Warn("LaTeX compilation failed",
			"command", r.cfg.LatexCommand,
			"compiler_output", string(output),
			"error", err)
		return errors.NewRenderError(errors.ErrCodeLatexCompileFailed,
			"LaTeX compilation failed", err)
	}

	pdfPath := filepath.Join(buildDir, "document.pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return errors.NewRenderError(errors.ErrCodeOutputFileNotFound,
			"LaTeX compiler produced no PDF output", err)
	}

	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to read compiled PDF", err)
	}

	if err := writeFileAtomic(outPath, pdfData); err != nil {
		return err
	}

	r.logger.Debug("PDF rendered",
		"backend", "latex",
		"output_path", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
		"pdf_size_bytes", len(pdfData))

	return nil
}

// paperName maps a page size to its LaTeX geometry paper option
func paperName(pageSize string) string {
	if pageSize == "a4" {
		return "a4paper"
	}
	return "letterpaper"
}

// EscapeLaTeX escapes LaTeX special characters in user-supplied text.
// The bullet glyph is mapped as well since adapted resumes use it for
// list entries.
func EscapeLaTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{':
			b.WriteString(`\{`)
		case '}':
			b.WriteString(`\}`)
		case '$':
			b.WriteString(`\$`)
		case '&':
			b.WriteString(`\&`)
		case '#':
			b.WriteString(`\#`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '_':
			b.WriteString(`\_`)
		case '%':
			b.WriteString(`\%`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '•':
			b.WriteString(`\textbullet{}`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
