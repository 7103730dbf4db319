package extract

import (
	"fmt"
	"strings"

	"resumeforge/internal/errors"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts the plain text content of a PDF document held in memory.
// Pages that fail text extraction are skipped so a single bad page does not
// lose the rest of the document.
func PDFText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.NewParseError(errors.ErrCodeExtractionFailed,
				"Failed to parse PDF document", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(strings.NewReader(string(data)), int64(len(data)))
	if err != nil {
		return "", errors.NewParseError(errors.ErrCodeExtractionFailed,
			"Failed to open PDF document", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", errors.NewParseError(errors.ErrCodeEmptyDocument,
			"PDF contains no extractable text", nil)
	}

	return result, nil
}
