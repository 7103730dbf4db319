package cli

import (
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/render"
	"resumeforge/internal/resume"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render a resume file as a PDF document",
	Long: `Parse a resume in the fixed section format and render it as a PDF
without calling any AI service. Accepts PDF or plain text input; PDF
input has its text extracted first. Use this to preview how an adapted
resume will look.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutputFile string

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "resume.pdf", "Output PDF file path")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	text, err := fileProcessor.ReadDocumentFile(args[0])
	if err != nil {
		return err
	}

	doc := resume.Parse(text)
	logger.Info("Resume parsed",
		"name", doc.Name,
		"sections", len(doc.Sections))

	renderer, err := render.New(cfg.Render, logger)
	if err != nil {
		return err
	}

	if err := fileProcessor.ValidateOutputFile(renderOutputFile); err != nil {
		return err
	}

	if err := renderer.RenderResume(cmd.Context(), &doc, renderOutputFile); err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	logger.Info("Resume rendered", "output", renderOutputFile)
	return nil
}
