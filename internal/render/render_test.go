package render

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

func TestNewRendererBackendSelection(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	tests := []struct {
		name      string
		backend   string
		expectErr bool
	}{
		{name: "chromium backend", backend: "chromium"},
		{name: "latex backend", backend: "latex"},
		{name: "unknown backend", backend: "wkhtmltopdf", expectErr: true},
		{name: "empty backend", backend: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := New(config.RenderConfig{Backend: tt.backend}, logger)

			if tt.expectErr {
				if err == nil {
					t.Fatal("Expected error for unsupported backend")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if renderer == nil {
				t.Fatal("Expected a renderer instance")
			}
		})
	}
}

func TestOutputFileNames(t *testing.T) {
	resumeRe := regexp.MustCompile(`^resume_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.pdf$`)
	coverRe := regexp.MustCompile(`^cover_letter_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.pdf$`)

	resumeName := ResumeFileName()
	if !resumeRe.MatchString(resumeName) {
		t.Errorf("Unexpected resume file name: %s", resumeName)
	}

	coverName := CoverLetterFileName()
	if !coverRe.MatchString(coverName) {
		t.Errorf("Unexpected cover letter file name: %s", coverName)
	}

	if ResumeFileName() == resumeName {
		t.Error("Expected unique file names across calls")
	}
}

func TestPageDimensions(t *testing.T) {
	tests := []struct {
		pageSize   string
		wantWidth  float64
		wantHeight float64
	}{
		{pageSize: "letter", wantWidth: 8.5, wantHeight: 11.0},
		{pageSize: "a4", wantWidth: 8.27, wantHeight: 11.69},
		{pageSize: "", wantWidth: 8.5, wantHeight: 11.0},
	}

	for _, tt := range tests {
		width, height := pageDimensions(tt.pageSize)
		if width != tt.wantWidth || height != tt.wantHeight {
			t.Errorf("pageDimensions(%q) = (%v, %v), want (%v, %v)",
				tt.pageSize, width, height, tt.wantWidth, tt.wantHeight)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output.pdf")
	data := []byte("%PDF-1.4 test content")

	if err := writeFileAtomic(outPath, data); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Output file content does not match written data")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list output directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output.pdf")

	if err := writeFileAtomic(outPath, []byte("first")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := writeFileAtomic(outPath, []byte("second")); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Expected overwritten content 'second', got '%s'", got)
	}
}

func TestResumeHTMLTemplate(t *testing.T) {
	doc := &types.ResumeDocument{
		Name:    "Jane Smith",
		Contact: []string{"555-0100 | jane@example.com"},
		Sections: []types.ResumeSection{
			{
				Title: "EXPERIENCE",
				Lines: []string{"• Built <internal> tools"},
			},
		},
	}

	var buf bytes.Buffer
	if err := resumeHTMLTmpl.Execute(&buf, doc); err != nil {
		t.Fatalf("Template execution failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Jane Smith") {
		t.Error("Expected name in output")
	}
	if !strings.Contains(output, "EXPERIENCE") {
		t.Error("Expected section title in output")
	}
	if strings.Contains(output, "<internal>") {
		t.Error("Expected HTML-unsafe content to be escaped")
	}
	if !strings.Contains(output, "&lt;internal&gt;") {
		t.Error("Expected escaped angle brackets in output")
	}
}

func TestCoverLetterHTMLTemplate(t *testing.T) {
	letter := &types.CoverLetterDocument{
		Body:       "[DATE]\n\nDear Hiring Team,",
		Paragraphs: []string{"[DATE]", "Dear Hiring Team,"},
	}

	var buf bytes.Buffer
	if err := coverLetterHTMLTmpl.Execute(&buf, letter); err != nil {
		t.Fatalf("Template execution failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Dear Hiring Team,") {
		t.Error("Expected salutation in output")
	}
	if strings.Count(output, "<p>") != 2 {
		t.Errorf("Expected 2 paragraphs, output: %s", output)
	}
}
