package ai

import (
	"context"

	"resumeforge/internal/types"
)

// AIProvider interface for different AI implementations
// All methods now return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AdaptResume(ctx context.Context, input types.AdaptResumeInput) (types.AdaptResumeOutput, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *TokenUsage, error)
	GenerateFormText(ctx context.Context, input types.FormTextInput) (types.FormTextOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildAdaptPrompt(baseResume, jobDescription string) string
	BuildCoverLetterPrompt(baseResume, jobDescription string) string
	BuildFormTextPrompt(baseResume, jobDescription string) string
}
