package render

import (
	"bytes"
	goerrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Software Engineer at Acme",
			expected: "Software Engineer at Acme",
		},
		{
			name:     "backslash",
			input:    `C:\Users`,
			expected: `C:\textbackslash{}Users`,
		},
		{
			name:     "braces",
			input:    "{json}",
			expected: `\{json\}`,
		},
		{
			name:     "dollar and percent",
			input:    "saved $2M, up 40%",
			expected: `saved \$2M, up 40\%`,
		},
		{
			name:     "ampersand and hash",
			input:    "R&D team #1",
			expected: `R\&D team \#1`,
		},
		{
			name:     "caret underscore tilde",
			input:    "x^2 snake_case ~user",
			expected: `x\textasciicircum{}2 snake\_case \textasciitilde{}user`,
		},
		{
			name:     "bullet",
			input:    "• Built internal tools",
			expected: `\textbullet{} Built internal tools`,
		},
		{
			name:     "already escaped input is escaped again",
			input:    `\&`,
			expected: `\textbackslash{}\&`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeLaTeX(tt.input)
			if got != tt.expected {
				t.Errorf("EscapeLaTeX(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResumeTexTemplate(t *testing.T) {
	doc := &types.ResumeDocument{
		Name:    "Jane Smith",
		Contact: []string{"555-0100 | jane@example.com"},
		Sections: []types.ResumeSection{
			{
				Title: "EXPERIENCE",
				Lines: []string{
					"Software Engineer - 2023-Present",
					"• Cut costs by 40% & improved R&D velocity",
				},
			},
		},
	}

	var buf bytes.Buffer
	err := resumeTexTmpl.Execute(&buf, texResumeData{Doc: doc, Paper: "letterpaper"})
	if err != nil {
		t.Fatalf("Template execution failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, `\usepackage[letterpaper,margin=0.75in]{geometry}`) {
		t.Error("Expected letterpaper geometry option")
	}
	if !strings.Contains(output, "Jane Smith") {
		t.Error("Expected name in output")
	}
	if !strings.Contains(output, `40\%`) {
		t.Error("Expected escaped percent sign")
	}
	if !strings.Contains(output, `R\&D`) {
		t.Error("Expected escaped ampersand")
	}
	if !strings.Contains(output, `\textbullet{}`) {
		t.Error("Expected bullet glyph mapped to \\textbullet")
	}
	if strings.Contains(output, "•") {
		t.Error("Raw bullet glyph should not appear in LaTeX source")
	}
	if !strings.Contains(output, `\begin{document}`) || !strings.Contains(output, `\end{document}`) {
		t.Error("Expected complete LaTeX document")
	}
}

func TestCoverLetterTexTemplate(t *testing.T) {
	letter := &types.CoverLetterDocument{
		Body:       "[DATE]\n\nDear [HIRING MANAGER NAME],\n\nI am excited to apply.",
		Paragraphs: []string{"[DATE]", "Dear [HIRING MANAGER NAME],", "I am excited to apply."},
	}

	var buf bytes.Buffer
	err := coverLetterTexTmpl.Execute(&buf, texCoverLetterData{Letter: letter, Paper: "a4paper"})
	if err != nil {
		t.Fatalf("Template execution failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, `\usepackage[a4paper,margin=1in]{geometry}`) {
		t.Error("Expected a4paper geometry option")
	}
	if !strings.Contains(output, "Dear [HIRING MANAGER NAME],") {
		t.Error("Expected salutation paragraph in output")
	}
	if !strings.Contains(output, "I am excited to apply.") {
		t.Error("Expected body paragraph in output")
	}
}

func TestCompileFailureDoesNotExposeCompilerOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a shell script as the compiler command")
	}

	// Stand-in compiler that prints diagnostics and fails
	marker := "l.42 Undefined control sequence"
	script := filepath.Join(t.TempDir(), "failing-latex")
	content := "#!/bin/sh\necho '" + marker + "'\nexit 1\n"
	if err := os.WriteFile(script, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write compiler script: %v", err)
	}

	r := NewLaTeXRenderer(config.RenderConfig{
		Backend:      "latex",
		LatexCommand: script,
	}, errors.NewLogger(slog.LevelError))

	doc := &types.ResumeDocument{Name: "Jane Smith"}
	err := r.RenderResume(t.Context(), doc, filepath.Join(t.TempDir(), "out.pdf"))
	if err == nil {
		t.Fatal("expected compile error")
	}

	var appErr *errors.AppError
	if !goerrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeLatexCompileFailed {
		t.Errorf("expected code %s, got %s", errors.ErrCodeLatexCompileFailed, appErr.Code)
	}
	if strings.Contains(appErr.Message, marker) {
		t.Error("compiler output must not appear in the client-facing message")
	}
}

func TestPaperName(t *testing.T) {
	if got := paperName("a4"); got != "a4paper" {
		t.Errorf("Expected a4paper, got %s", got)
	}
	if got := paperName("letter"); got != "letterpaper" {
		t.Errorf("Expected letterpaper, got %s", got)
	}
	if got := paperName(""); got != "letterpaper" {
		t.Errorf("Expected letterpaper default, got %s", got)
	}
}
