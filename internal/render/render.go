package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/google/uuid"
)

// Renderer produces PDF documents from parsed resume content
type Renderer interface {
	RenderResume(ctx context.Context, doc *types.ResumeDocument, outPath string) error
	RenderCoverLetter(ctx context.Context, letter *types.CoverLetterDocument, outPath string) error
}

// New creates a renderer for the configured backend
func New(cfg config.RenderConfig, logger *errors.Logger) (Renderer, error) {
	switch cfg.Backend {
	case "chromium":
		return NewChromiumRenderer(cfg, logger), nil
	case "latex":
		return NewLaTeXRenderer(cfg, logger), nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported render backend: %s", cfg.Backend), nil)
	}
}

// ResumeFileName returns a unique output name for a rendered resume
func ResumeFileName() string {
	return fmt.Sprintf("resume_%s.pdf", uuid.New().String())
}

// CoverLetterFileName returns a unique output name for a rendered cover letter
func CoverLetterFileName() string {
	return fmt.Sprintf("cover_letter_%s.pdf", uuid.New().String())
}

// pageDimensions returns paper width and height in inches for a page size
func pageDimensions(pageSize string) (width, height float64) {
	if pageSize == "a4" {
		return 8.27, 11.69
	}
	return 8.5, 11.0
}

// writeFileAtomic writes data to path via a temp file in the same directory
// so readers never observe a partially written PDF.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".render-*.tmp")
	if err != nil {
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to create temporary output file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to write output file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to close output file", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError(errors.ErrCodeRenderFailed,
			"Failed to move output file into place", err)
	}

	return nil
}
