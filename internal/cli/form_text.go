package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var formTextCmd = &cobra.Command{
	Use:   "form-text [resume-file] [job-description-file]",
	Short: "Generate plain text for web application forms",
	Long: `Generate plain text suitable for pasting into web application forms.
The output carries no markdown or special formatting. Accepts PDF or
plain text resumes.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if formTextConfig.OutputFormat == "" {
			formTextConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(formTextConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runFormText,
}

var formTextConfig common.CommandConfig

func init() {
	formTextCmd.Flags().StringVarP(&formTextConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	formTextCmd.Flags().StringVar(&formTextConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = formTextCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runFormText(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	formTextAIConfig := cfg.GetFormTextConfig()
	aiService, err := ai.NewService(&formTextAIConfig, "formText", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.FormTextInput, error) {
		if len(contents) != 2 {
			return types.FormTextInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.FormTextInput{
			BaseResume:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.FormTextInput, cfg common.CommandConfig) {
		logger.Info("Starting form text generation",
			"resume_chars", len(input.BaseResume),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	formTextOperation := func(ctx context.Context, input types.FormTextInput) (types.FormTextOutput, *ai.TokenUsage, error) {
		return aiService.Provider.GenerateFormText(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		formTextConfig,
		args,
		createInput,
		formTextOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate form text: %w", err)
	}
	logger.Info("Form text generation completed successfully")
	return nil
}
