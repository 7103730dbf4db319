package extract

import (
	"errors"
	"testing"

	forgeErrors "resumeforge/internal/errors"
)

func TestPDFTextInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty input",
			data: []byte{},
		},
		{
			name: "not a PDF",
			data: []byte("plain text pretending to be a PDF"),
		},
		{
			name: "truncated header",
			data: []byte("%PDF-1.4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PDFText(tt.data)
			if err == nil {
				t.Fatal("Expected error for invalid PDF data")
			}

			var appErr *forgeErrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected *AppError, got %T", err)
			}
			if appErr.Code != forgeErrors.ErrCodeExtractionFailed {
				t.Errorf("Expected error code %s, got %s", forgeErrors.ErrCodeExtractionFailed, appErr.Code)
			}
		})
	}
}
