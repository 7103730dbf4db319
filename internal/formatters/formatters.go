package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AdaptResumeOutput", &AdaptTextFormatter{})
	registry.RegisterFormatter("markdown", "AdaptResumeOutput", &AdaptMarkdownFormatter{})
	registry.RegisterFormatter("text", "CoverLetterOutput", &CoverLetterTextFormatter{})
	registry.RegisterFormatter("markdown", "CoverLetterOutput", &CoverLetterMarkdownFormatter{})
	registry.RegisterFormatter("text", "FormTextOutput", &FormTextTextFormatter{})
	registry.RegisterFormatter("markdown", "FormTextOutput", &FormTextMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AdaptResumeOutput:
		return "AdaptResumeOutput"
	case types.CoverLetterOutput:
		return "CoverLetterOutput"
	case types.FormTextOutput:
		return "FormTextOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AdaptTextFormatter handles text formatting for adapted resumes
type AdaptTextFormatter struct{}

func (atf *AdaptTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AdaptResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AdaptResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ADAPTED RESUME ===\n\n")
	output.WriteString(result.AdaptedResume)
	output.WriteString("\n")

	return output.String(), nil
}

func (atf *AdaptTextFormatter) SupportedType() string {
	return "AdaptResumeOutput"
}

// AdaptMarkdownFormatter handles markdown formatting for adapted resumes
type AdaptMarkdownFormatter struct{}

func (amf *AdaptMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AdaptResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AdaptResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Adapted Resume\n\n")
	output.WriteString("```\n")
	output.WriteString(result.AdaptedResume)
	output.WriteString("\n```\n")

	return output.String(), nil
}

func (amf *AdaptMarkdownFormatter) SupportedType() string {
	return "AdaptResumeOutput"
}

// CoverLetterTextFormatter handles text formatting for cover letters
type CoverLetterTextFormatter struct{}

func (ctf *CoverLetterTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterOutput)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COVER LETTER ===\n\n")
	output.WriteString(result.CoverLetter)
	output.WriteString("\n")

	return output.String(), nil
}

func (ctf *CoverLetterTextFormatter) SupportedType() string {
	return "CoverLetterOutput"
}

// CoverLetterMarkdownFormatter handles markdown formatting for cover letters
type CoverLetterMarkdownFormatter struct{}

func (cmf *CoverLetterMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterOutput)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Cover Letter\n\n")
	output.WriteString(result.CoverLetter)
	output.WriteString("\n")

	return output.String(), nil
}

func (cmf *CoverLetterMarkdownFormatter) SupportedType() string {
	return "CoverLetterOutput"
}

// FormTextTextFormatter handles text formatting for application form text
type FormTextTextFormatter struct{}

func (ftf *FormTextTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FormTextOutput)
	if !ok {
		return "", fmt.Errorf("expected FormTextOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== APPLICATION FORM TEXT ===\n\n")
	output.WriteString(result.FormText)
	output.WriteString("\n")

	return output.String(), nil
}

func (ftf *FormTextTextFormatter) SupportedType() string {
	return "FormTextOutput"
}

// FormTextMarkdownFormatter handles markdown formatting for application form text
type FormTextMarkdownFormatter struct{}

func (fmf *FormTextMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FormTextOutput)
	if !ok {
		return "", fmt.Errorf("expected FormTextOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Application Form Text\n\n")
	output.WriteString("```\n")
	output.WriteString(result.FormText)
	output.WriteString("\n```\n")

	return output.String(), nil
}

func (fmf *FormTextMarkdownFormatter) SupportedType() string {
	return "FormTextOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
