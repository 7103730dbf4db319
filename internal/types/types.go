package types

// AdaptResumeInput represents the input for adapting a resume to a job posting
type AdaptResumeInput struct {
	BaseResume     string `json:"baseResume"`
	JobDescription string `json:"jobDescription"`
}

// AdaptResumeOutput represents the output from adapting a resume.
// AdaptedResume is plain text using the fixed section headers
// (CONTACT INFO:, EDUCATION:, EXPERIENCE:, PROJECTS:, TECHNICAL SKILLS:)
// so it can be fed directly to the section parser.
type AdaptResumeOutput struct {
	AdaptedResume string `json:"adaptedResume"`
}

// CoverLetterInput represents the input for generating a cover letter
type CoverLetterInput struct {
	BaseResume     string `json:"baseResume"`
	JobDescription string `json:"jobDescription"`
}

// CoverLetterOutput represents the generated cover letter body.
// Placeholders like [DATE], [HIRING MANAGER NAME] and [COMPANY NAME] are
// left in the text for the applicant to fill in.
type CoverLetterOutput struct {
	CoverLetter string `json:"coverLetter"`
}

// FormTextInput represents the input for generating application form text
type FormTextInput struct {
	BaseResume     string `json:"baseResume"`
	JobDescription string `json:"jobDescription"`
}

// FormTextOutput represents plain text suitable for pasting into
// web application forms (no markdown, no special formatting).
type FormTextOutput struct {
	FormText string `json:"formText"`
}

// ResumeSection is one titled block of a parsed resume
type ResumeSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// ResumeDocument is the structured form of an adapted resume,
// produced by the section parser and consumed by the PDF renderers
type ResumeDocument struct {
	Name     string          `json:"name"`
	Contact  []string        `json:"contact"`
	Sections []ResumeSection `json:"sections"`
}

// CoverLetterDocument is the renderer-ready form of a cover letter
type CoverLetterDocument struct {
	Body       string   `json:"body"`
	Paragraphs []string `json:"paragraphs"`
}

// ProcessResult aggregates everything produced for one resume/job pair
type ProcessResult struct {
	AdaptedResume   string          `json:"adaptedResume"`
	Document        *ResumeDocument `json:"document"`
	CoverLetter     string          `json:"coverLetter"`
	FormText        string          `json:"formText"`
	ResumeFile      string          `json:"resumeFile"`
	CoverLetterFile string          `json:"coverLetterFile"`
}
