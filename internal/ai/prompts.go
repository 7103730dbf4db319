package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AdaptResume string
	CoverLetter string
	FormText    string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AdaptResume string
	CoverLetter string
	FormText    string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AdaptResume: `You are an expert resume writer helping adapt a resume for a specific job. Your core principles are:

- Keep the person's actual experience - don't fabricate anything
- Emphasize experience and skills relevant to the target job
- Use keywords from the job description where appropriate
- Keep bullet points concise and impact-focused
- Make the output ATS-friendly (simple formatting, no tables, clear sections)`,

	CoverLetter: `You are an experienced career coach writing cover letters for job applications. Your letters:

- Sound human and authentic, not generic or robotic
- Highlight relevant experience from the candidate's resume
- Show genuine interest in the role
- Avoid cliches like "I am writing to express my interest"
- Get straight to the point`,

	FormText: `You are helping format resume content for job application forms that make candidates manually re-enter everything.

- Produce plain text only, no markdown or special formatting
- Keep content concise and relevant to the target job
- Preserve the candidate's actual experience without embellishment`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AdaptResume: `Here is the original resume content:
-----
%s
-----

Here is the job description:
-----
%s
-----

Please reformat this resume to be optimized for this job. Follow these rules:
1. Keep the same basic structure (Education, Experience, Projects, Skills)
2. Emphasize experience and skills relevant to the job description
3. Use keywords from the job description where appropriate
4. Keep bullet points concise and impact-focused
5. Ensure it fits on ONE page worth of content
6. Make it ATS-friendly (simple formatting, no tables, clear sections)
7. Keep the person's actual experience - don't fabricate anything

Return ONLY the adapted resume content in this exact format:

CONTACT INFO:
[Name]
[Phone] | [Email] | [LinkedIn] | [GitHub]

EDUCATION:
[School Name] - [Location]
[Degree and Major] - [Dates]

EXPERIENCE:
[Job Title] - [Dates]
[Company] - [Location]
• [Bullet point]
• [Bullet point]

PROJECTS:
[Project Name] | [Technologies] - [Dates]
• [Bullet point]

TECHNICAL SKILLS:
Languages: [list]
Frameworks: [list]
Tools: [list]

Do not include any explanations or commentary, just the formatted resume.`,

	CoverLetter: `Here is the candidate's resume:
-----
%s
-----

Here is the job description:
-----
%s
-----

Write a cover letter that:
1. Sounds human and authentic, not generic or robotic
2. Is 3 paragraphs maximum
3. Highlights relevant experience from the resume
4. Shows genuine interest in the role
5. Doesn't use cliches like "I am writing to express my interest"
6. Gets straight to the point

Format it as a proper cover letter with:
- Date (use [DATE])
- Hiring Manager section (use [HIRING MANAGER NAME] and [COMPANY NAME])
- Body paragraphs
- Professional closing

Return ONLY the cover letter text, no explanations.`,

	FormText: `Here is the resume:
-----
%s
-----

Here is the job description:
-----
%s
-----

Create a plaintext version optimized for copy-pasting into web forms. Format it like this:

WORK EXPERIENCE:

[Job Title] at [Company Name]
[Start Date] - [End Date]
• [Achievement/responsibility]
• [Achievement/responsibility]
• [Achievement/responsibility]

EDUCATION:

[Degree] in [Major]
[University Name]
[Graduation Date]
GPA: [if mentioned]

SKILLS:

[Comma-separated list of relevant technical skills from the job description]

PROJECTS (if applicable):

[Project Name]
[Brief description]
Technologies: [list]

Keep it concise and relevant to the job. Focus on what matters for this specific role.
Return ONLY the formatted text, no explanations.`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
