package render

import (
	"bytes"
	"context"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromiumRenderer produces PDFs by printing HTML in headless Chromium
type ChromiumRenderer struct {
	cfg    config.RenderConfig
	logger *errors.Logger
}

// NewChromiumRenderer creates a Chromium-backed renderer
func NewChromiumRenderer(cfg config.RenderConfig, logger *errors.Logger) *ChromiumRenderer {
	return &ChromiumRenderer{
		cfg:    cfg,
		logger: logger,
	}
}

// RenderResume renders a parsed resume document to a PDF file
func (r *ChromiumRenderer) RenderResume(ctx context.Context, doc *types.ResumeDocument, outPath string) error {
	var buf bytes.Buffer
	if err := resumeHTMLTmpl.Execute(&buf, doc); err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build resume document", err)
	}
	return r.printToFile(ctx, buf.String(), outPath)
}

// RenderCoverLetter renders a cover letter to a PDF file
func (r *ChromiumRenderer) RenderCoverLetter(ctx context.Context, letter *types.CoverLetterDocument, outPath string) error {
	var buf bytes.Buffer
	if err := coverLetterHTMLTmpl.Execute(&buf, letter); err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed,
			"Failed to build cover letter document", err)
	}
	return r.printToFile(ctx, buf.String(), outPath)
}

// printToFile loads html into a headless browser and prints it to outPath
func (r *ChromiumRenderer) printToFile(ctx context.Context, html, outPath string) error {
	start := time.Now()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	if r.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 60*time.Second)
	defer cancel()

	width, height := pageDimensions(r.cfg.PageSize)

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}

			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		// Wait for content to render
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return errors.NewRenderError(errors.ErrCodeRenderFailed,
			"PDF generation failed", err)
	}

	if err := writeFileAtomic(outPath, pdfBuf); err != nil {
		return err
	}

	r.logger.Debug("PDF rendered",
		"backend", "chromium",
		"output_path", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
		"pdf_size_bytes", len(pdfBuf))

	return nil
}
