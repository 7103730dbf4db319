package resume

import (
	"reflect"
	"testing"
)

const sampleAdaptedResume = `CONTACT INFO:
Jane Smith
555-0100 | jane@example.com | linkedin.com/in/janesmith | github.com/janesmith

EDUCATION:
State University - Springfield
BS Computer Science - 2019-2023

EXPERIENCE:
Software Engineer - 2023-Present
Acme Corp - Springfield
• Built internal tools
• Reduced deploy time by 40%

PROJECTS:
Homelab | Go, Docker - 2022
• Self-hosted services

TECHNICAL SKILLS:
Languages: Go, Python
Frameworks: Flask
Tools: Docker, Git`

func TestParse(t *testing.T) {
	doc := Parse(sampleAdaptedResume)

	if doc.Name != "Jane Smith" {
		t.Errorf("Expected name 'Jane Smith', got '%s'", doc.Name)
	}

	expectedContact := []string{"555-0100 | jane@example.com | linkedin.com/in/janesmith | github.com/janesmith"}
	if !reflect.DeepEqual(doc.Contact, expectedContact) {
		t.Errorf("Expected contact %v, got %v", expectedContact, doc.Contact)
	}

	expectedTitles := []string{"EDUCATION", "EXPERIENCE", "PROJECTS", "TECHNICAL SKILLS"}
	if len(doc.Sections) != len(expectedTitles) {
		t.Fatalf("Expected %d sections, got %d", len(expectedTitles), len(doc.Sections))
	}
	for i, title := range expectedTitles {
		if doc.Sections[i].Title != title {
			t.Errorf("Section %d: expected title '%s', got '%s'", i, title, doc.Sections[i].Title)
		}
	}

	experience := doc.Sections[1]
	if len(experience.Lines) != 4 {
		t.Fatalf("Expected 4 experience lines, got %d: %v", len(experience.Lines), experience.Lines)
	}
	if experience.Lines[0] != "Software Engineer - 2023-Present" {
		t.Errorf("Unexpected first experience line: '%s'", experience.Lines[0])
	}
	if experience.Lines[3] != "• Reduced deploy time by 40%" {
		t.Errorf("Unexpected last experience line: '%s'", experience.Lines[3])
	}
}

func TestParseWithoutHeaders(t *testing.T) {
	text := "Just some text\nwithout any section headers\n\nat all"

	doc := Parse(text)

	if doc.Name != "" {
		t.Errorf("Expected empty name, got '%s'", doc.Name)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("Expected a single fallback section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "" {
		t.Errorf("Expected untitled fallback section, got title '%s'", doc.Sections[0].Title)
	}

	expected := []string{"Just some text", "without any section headers", "at all"}
	if !reflect.DeepEqual(doc.Sections[0].Lines, expected) {
		t.Errorf("Expected lines %v, got %v", expected, doc.Sections[0].Lines)
	}
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantName     string
		wantSections int
	}{
		{
			name:         "empty input",
			input:        "",
			wantName:     "",
			wantSections: 0,
		},
		{
			name:         "whitespace only",
			input:        "   \n\n  \t\n",
			wantName:     "",
			wantSections: 0,
		},
		{
			name:         "contact only",
			input:        "CONTACT INFO:\nJohn Doe\njohn@example.com",
			wantName:     "John Doe",
			wantSections: 0,
		},
		{
			name:         "header with no content",
			input:        "EDUCATION:\nEXPERIENCE:\nSome job",
			wantName:     "",
			wantSections: 2,
		},
		{
			name:         "content before first header",
			input:        "stray line\nEDUCATION:\nState University",
			wantName:     "",
			wantSections: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)

			if doc.Name != tt.wantName {
				t.Errorf("Expected name '%s', got '%s'", tt.wantName, doc.Name)
			}
			if len(doc.Sections) != tt.wantSections {
				t.Errorf("Expected %d sections, got %d", tt.wantSections, len(doc.Sections))
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "three paragraphs",
			input:    "First paragraph.\n\nSecond paragraph\nwith a line break.\n\nThird.",
			expected: []string{"First paragraph.", "Second paragraph\nwith a line break.", "Third."},
		},
		{
			name:     "single paragraph",
			input:    "Only one.",
			expected: []string{"Only one."},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "extra blank lines",
			input:    "A.\n\n\n\nB.",
			expected: []string{"A.", "B."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBuildCoverLetterDocument(t *testing.T) {
	text := "  [DATE]\n\nDear [HIRING MANAGER NAME],\n\nBody text here.  "

	doc := BuildCoverLetterDocument(text)

	if doc.Body != "[DATE]\n\nDear [HIRING MANAGER NAME],\n\nBody text here." {
		t.Errorf("Unexpected body: '%s'", doc.Body)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("Expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}
	if doc.Paragraphs[1] != "Dear [HIRING MANAGER NAME]," {
		t.Errorf("Unexpected second paragraph: '%s'", doc.Paragraphs[1])
	}
}
