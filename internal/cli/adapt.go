package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var adaptCmd = &cobra.Command{
	Use:   "adapt [resume-file] [job-description-file]",
	Short: "Adapt a resume to a specific job description",
	Long: `Adapt your resume to a specific job description using AI.
The command takes two arguments: the path to your resume (PDF or plain text)
and the path to the job description file. PDF resumes have their text
extracted before processing.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if adaptConfig.OutputFormat == "" {
			adaptConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(adaptConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAdapt,
}

var adaptConfig common.CommandConfig

func init() {
	adaptCmd.Flags().StringVarP(&adaptConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	adaptCmd.Flags().StringVar(&adaptConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = adaptCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAdapt(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for adapt operation
	adaptAIConfig := cfg.GetAdaptConfig()
	aiService, err := ai.NewService(&adaptAIConfig, "adapt", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.AdaptResumeInput, error) {
		if len(contents) != 2 {
			return types.AdaptResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.AdaptResumeInput{
			BaseResume:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.AdaptResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume adaptation",
			"resume_chars", len(input.BaseResume),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	adaptOperation := func(ctx context.Context, input types.AdaptResumeInput) (types.AdaptResumeOutput, *ai.TokenUsage, error) {
		return aiService.Provider.AdaptResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		adaptConfig,
		args,
		createInput,
		adaptOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to adapt resume: %w", err)
	}
	logger.Info("Resume adaptation completed successfully")
	return nil
}
