package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *forgeErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *forgeErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		// Log the error for debugging
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	// Log successful check
	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Log retry attempt
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeTextOperation runs a plain-text AI operation with common tracing, circuit breaker, and retry logic.
// All three operations return free-form text rather than structured JSON, so the response text is
// returned as-is after trimming.
func (g *GeminiProvider) executeTextOperation(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	tracer := otel.Tracer("resumeforge.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	genaiConfig := g.buildTextConfig()
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		err := fmt.Errorf("model returned an empty response")
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, forgeErrors.NewAIError("AI_EMPTY_RESPONSE", "Empty AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return text, tokenUsage, nil
}

// AdaptResume implements AIProvider interface for adapting a resume to a job posting
func (g *GeminiProvider) AdaptResume(ctx context.Context, input types.AdaptResumeInput) (types.AdaptResumeOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForAdapt(input.BaseResume, input.JobDescription)

	text, tokenUsage, err := g.executeTextOperation(
		ctx,
		"adapt_resume",
		userPrompt,
		systemPrompt,
		attribute.Int("input.resume_length", len(input.BaseResume)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return types.AdaptResumeOutput{}, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.adapted_length", len(text)),
		)
	}

	return types.AdaptResumeOutput{AdaptedResume: text}, tokenUsage, nil
}

// GenerateCoverLetter implements AIProvider interface for cover letter generation
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForCoverLetter(input.BaseResume, input.JobDescription)

	text, tokenUsage, err := g.executeTextOperation(
		ctx,
		"cover_letter",
		userPrompt,
		systemPrompt,
		attribute.Int("input.resume_length", len(input.BaseResume)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return types.CoverLetterOutput{}, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.letter_length", len(text)),
		)
	}

	return types.CoverLetterOutput{CoverLetter: text}, tokenUsage, nil
}

// GenerateFormText implements AIProvider interface for application form text generation
func (g *GeminiProvider) GenerateFormText(ctx context.Context, input types.FormTextInput) (types.FormTextOutput, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForFormText(input.BaseResume, input.JobDescription)

	text, tokenUsage, err := g.executeTextOperation(
		ctx,
		"form_text",
		userPrompt,
		systemPrompt,
		attribute.Int("input.resume_length", len(input.BaseResume)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return types.FormTextOutput{}, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.form_text_length", len(text)),
		)
	}

	return types.FormTextOutput{FormText: text}, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// buildTextConfig creates the generation config for plain-text responses
func (g *GeminiProvider) buildTextConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// getPromptsForAdapt returns system and user prompts for resume adaptation
func (g *GeminiProvider) getPromptsForAdapt(baseResume, jobDescription string) (string, string) {
	// Get prompts from config or use defaults
	systemPrompt := g.getSystemPrompt("adapt")
	userPrompt := g.getUserPrompt("adapt")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, baseResume, jobDescription)

	return systemPrompt, formattedUserPrompt
}

// getPromptsForCoverLetter returns system and user prompts for cover letter generation
func (g *GeminiProvider) getPromptsForCoverLetter(baseResume, jobDescription string) (string, string) {
	// Get prompts from config or use defaults
	systemPrompt := g.getSystemPrompt("coverLetter")
	userPrompt := g.getUserPrompt("coverLetter")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, baseResume, jobDescription)

	return systemPrompt, formattedUserPrompt
}

// getPromptsForFormText returns system and user prompts for form text generation
func (g *GeminiProvider) getPromptsForFormText(baseResume, jobDescription string) (string, string) {
	// Get prompts from config or use defaults
	systemPrompt := g.getSystemPrompt("formText")
	userPrompt := g.getUserPrompt("formText")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, baseResume, jobDescription)

	return systemPrompt, formattedUserPrompt
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configSystemPrompts *config.SystemPrompts
	if configPrompts != nil {
		configSystemPrompts = &configPrompts.SystemPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configSystemPrompts = &config.SystemPrompts{}
	}

	switch promptType {
	case "adapt":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.AdaptResume,
			configSystemPrompts.AdaptResume,
			DefaultSystemPrompts.AdaptResume,
		)
	case "coverLetter":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.CoverLetter,
			configSystemPrompts.CoverLetter,
			DefaultSystemPrompts.CoverLetter,
		)
	case "formText":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.FormText,
			configSystemPrompts.FormText,
			DefaultSystemPrompts.FormText,
		)
	default:
		// Fallback for any unknown prompt type, perhaps returning an empty string or a default
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configUserPrompts *config.UserPrompts
	if configPrompts != nil {
		configUserPrompts = &configPrompts.UserPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configUserPrompts = &config.UserPrompts{}
	}

	switch promptType {
	case "adapt":
		return resolvePrompt(
			loadedPrompts.UserPrompts.AdaptResume,
			configUserPrompts.AdaptResume,
			DefaultUserPrompts.AdaptResume,
		)
	case "coverLetter":
		return resolvePrompt(
			loadedPrompts.UserPrompts.CoverLetter,
			configUserPrompts.CoverLetter,
			DefaultUserPrompts.CoverLetter,
		)
	case "formText":
		return resolvePrompt(
			loadedPrompts.UserPrompts.FormText,
			configUserPrompts.FormText,
			DefaultUserPrompts.FormText,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	// Use default timeout since we don't have access to config here
	// This function should be refactored to accept timeout as parameter
	// Fallback to default
	return 10 * time.Second
}

// getPrompts returns the appropriate prompts for the operation, prioritizing loaded content over config
func (g *GeminiProvider) getPrompts(operationType string) (config.OperationLoadedPrompts, *config.PromptConfig) {
	// Get loaded prompts (returns a copy)
	loadedPrompts := config.GetPromptsForOperation(operationType)
	configPrompts := &g.config.CustomPrompts
	return loadedPrompts, configPrompts
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
// This helper function centralizes the decision logic, making it DRY and easy to maintain.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
