package resume

import (
	"strings"

	"resumeforge/internal/types"
)

// Section headers emitted by the adapt operation. Matching is prefix-based
// so trailing content on the header line is tolerated.
const (
	headerContact    = "CONTACT INFO:"
	headerEducation  = "EDUCATION:"
	headerExperience = "EXPERIENCE:"
	headerProjects   = "PROJECTS:"
	headerSkills     = "TECHNICAL SKILLS:"
)

// sectionHeaders maps line prefixes to the section titles used in rendered output
var sectionHeaders = []struct {
	prefix string
	title  string
}{
	{headerEducation, "EDUCATION"},
	{headerExperience, "EXPERIENCE"},
	{headerProjects, "PROJECTS"},
	{headerSkills, "TECHNICAL SKILLS"},
}

// Parse converts adapted resume text into a structured document.
// The first line of the CONTACT INFO section is treated as the person's name,
// the remaining lines as contact details. Text without any recognized header
// is collected into a single untitled section so rendering never drops content.
func Parse(text string) types.ResumeDocument {
	doc := types.ResumeDocument{}

	var current *types.ResumeSection
	inContact := false

	for _, rawLine := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, headerContact) {
			inContact = true
			current = nil
			continue
		}

		if title, ok := matchSectionHeader(line); ok {
			doc.Sections = append(doc.Sections, types.ResumeSection{Title: title})
			current = &doc.Sections[len(doc.Sections)-1]
			inContact = false
			continue
		}

		switch {
		case inContact:
			if doc.Name == "" {
				doc.Name = line
			} else {
				doc.Contact = append(doc.Contact, line)
			}
		case current != nil:
			current.Lines = append(current.Lines, line)
		default:
			// Content before any header: start an untitled section
			doc.Sections = append(doc.Sections, types.ResumeSection{})
			current = &doc.Sections[len(doc.Sections)-1]
			current.Lines = append(current.Lines, line)
		}
	}

	return doc
}

func matchSectionHeader(line string) (string, bool) {
	for _, h := range sectionHeaders {
		if strings.HasPrefix(line, h.prefix) {
			return h.title, true
		}
	}
	return "", false
}

// SplitParagraphs splits cover letter text into paragraphs on blank lines,
// dropping empty entries.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(strings.TrimSpace(text), "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// BuildCoverLetterDocument converts raw cover letter text into its renderer-ready form
func BuildCoverLetterDocument(text string) types.CoverLetterDocument {
	return types.CoverLetterDocument{
		Body:       strings.TrimSpace(text),
		Paragraphs: SplitParagraphs(text),
	}
}
