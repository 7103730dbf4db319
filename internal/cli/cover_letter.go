package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter [resume-file] [job-description-file]",
	Short: "Write a cover letter for a specific job description",
	Long: `Generate a cover letter matching your resume to a specific job
description using AI. Placeholders like [COMPANY NAME] are left in the
text for you to fill in. Accepts PDF or plain text resumes.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if coverLetterConfig.OutputFormat == "" {
			coverLetterConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(coverLetterConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCoverLetter,
}

var coverLetterConfig common.CommandConfig

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	coverLetterCmd.Flags().StringVar(&coverLetterConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = coverLetterCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	coverLetterAIConfig := cfg.GetCoverLetterConfig()
	aiService, err := ai.NewService(&coverLetterAIConfig, "coverLetter", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.CoverLetterInput, error) {
		if len(contents) != 2 {
			return types.CoverLetterInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.CoverLetterInput{
			BaseResume:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.CoverLetterInput, cfg common.CommandConfig) {
		logger.Info("Starting cover letter generation",
			"resume_chars", len(input.BaseResume),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	coverLetterOperation := func(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *ai.TokenUsage, error) {
		return aiService.Provider.GenerateCoverLetter(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		coverLetterConfig,
		args,
		createInput,
		coverLetterOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}
