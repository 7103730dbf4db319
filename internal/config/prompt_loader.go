package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// PromptSource represents where a prompt was loaded from
type PromptSource struct {
	Source    string // "file", "operation-config", "global-config", or "default"
	FilePath  string // Set if Source is "file"
	Operation string // The operation this prompt is for
	Type      string // "system" or "user"
}

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// trackPromptSource tracks the source of a prompt for debugging
func (c *Config) trackPromptSource(source PromptSource) {
	// Prompt source tracking can be implemented when new logging is hooked up
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Adapt.CustomPrompts.SystemPrompts, &loadedPrompts.Adapt.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load adapt system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Adapt.CustomPrompts.UserPrompts, &loadedPrompts.Adapt.UserPrompts); err != nil {
		return fmt.Errorf("failed to load adapt user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.CoverLetter.CustomPrompts.SystemPrompts, &loadedPrompts.CoverLetter.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load cover letter system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CoverLetter.CustomPrompts.UserPrompts, &loadedPrompts.CoverLetter.UserPrompts); err != nil {
		return fmt.Errorf("failed to load cover letter user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.FormText.CustomPrompts.SystemPrompts, &loadedPrompts.FormText.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load form text system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.FormText.CustomPrompts.UserPrompts, &loadedPrompts.FormText.UserPrompts); err != nil {
		return fmt.Errorf("failed to load form text user prompts: %w", err)
	}

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	// Load AdaptResume prompt from file if specified
	if prompts.AdaptResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.AdaptResumeFile, "system", "adaptResume")
		if err != nil {
			return err
		}
		target.AdaptResume = content
	}

	// Load CoverLetter prompt from file if specified
	if prompts.CoverLetterFile != "" {
		content, err := c.loadPromptFromFile(prompts.CoverLetterFile, "system", "coverLetter")
		if err != nil {
			return err
		}
		target.CoverLetter = content
	}

	// Load FormText prompt from file if specified
	if prompts.FormTextFile != "" {
		content, err := c.loadPromptFromFile(prompts.FormTextFile, "system", "formText")
		if err != nil {
			return err
		}
		target.FormText = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	// Load AdaptResume prompt from file if specified
	if prompts.AdaptResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.AdaptResumeFile, "user", "adaptResume")
		if err != nil {
			return err
		}
		target.AdaptResume = content
	}

	// Load CoverLetter prompt from file if specified
	if prompts.CoverLetterFile != "" {
		content, err := c.loadPromptFromFile(prompts.CoverLetterFile, "user", "coverLetter")
		if err != nil {
			return err
		}
		target.CoverLetter = content
	}

	// Load FormText prompt from file if specified
	if prompts.FormTextFile != "" {
		content, err := c.loadPromptFromFile(prompts.FormTextFile, "user", "formText")
		if err != nil {
			return err
		}
		target.FormText = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Track prompt source
	c.trackPromptSource(PromptSource{
		Source:    "file",
		FilePath:  filePath,
		Operation: operation,
		Type:      promptType,
	})

	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.AdaptResumeFile, "system", "adaptResume")
	validateFile(c.AI.CustomPrompts.SystemPrompts.CoverLetterFile, "system", "coverLetter")
	validateFile(c.AI.CustomPrompts.SystemPrompts.FormTextFile, "system", "formText")
	validateFile(c.AI.CustomPrompts.UserPrompts.AdaptResumeFile, "user", "adaptResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.CoverLetterFile, "user", "coverLetter")
	validateFile(c.AI.CustomPrompts.UserPrompts.FormTextFile, "user", "formText")

	// Validate operation-specific prompt files
	validateFile(c.AI.Adapt.CustomPrompts.SystemPrompts.AdaptResumeFile, "adapt system", "adaptResume")
	validateFile(c.AI.Adapt.CustomPrompts.UserPrompts.AdaptResumeFile, "adapt user", "adaptResume")
	validateFile(c.AI.CoverLetter.CustomPrompts.SystemPrompts.CoverLetterFile, "coverLetter system", "coverLetter")
	validateFile(c.AI.CoverLetter.CustomPrompts.UserPrompts.CoverLetterFile, "coverLetter user", "coverLetter")
	validateFile(c.AI.FormText.CustomPrompts.SystemPrompts.FormTextFile, "formText system", "formText")
	validateFile(c.AI.FormText.CustomPrompts.UserPrompts.FormTextFile, "formText user", "formText")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := c.countAndLogLoadedPrompts()

	c.logPromptSummaryFooter(promptCount)
}

// countAndLogLoadedPrompts counts and logs all loaded prompts, returning the total count
func (c *Config) countAndLogLoadedPrompts() int {
	promptCount := 0

	// Check global prompts
	promptCount += c.logGlobalPrompts()

	// Check operation-specific prompts
	promptCount += c.logOperationSpecificPrompts()

	return promptCount
}

// logGlobalPrompts logs global prompt status and returns count
func (c *Config) logGlobalPrompts() int {
	count := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.AdaptResume, "[CONFIG] Global system adapt prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.CoverLetter, "[CONFIG] Global system cover letter prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.FormText, "[CONFIG] Global system form text prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.AdaptResume, "[CONFIG] Global user adapt prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.CoverLetter, "[CONFIG] Global user cover letter prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.FormText, "[CONFIG] Global user form text prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			count++
		}
	}

	return count
}

// logOperationSpecificPrompts logs operation-specific prompt status and returns count
func (c *Config) logOperationSpecificPrompts() int {
	count := 0

	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Adapt.SystemPrompts.AdaptResume, "[CONFIG] Adapt-specific system prompt: loaded from config/file"},
		{loadedPrompts.Adapt.UserPrompts.AdaptResume, "[CONFIG] Adapt-specific user prompt: loaded from config/file"},
		{loadedPrompts.CoverLetter.SystemPrompts.CoverLetter, "[CONFIG] Cover-letter-specific system prompt: loaded from config/file"},
		{loadedPrompts.CoverLetter.UserPrompts.CoverLetter, "[CONFIG] Cover-letter-specific user prompt: loaded from config/file"},
		{loadedPrompts.FormText.SystemPrompts.FormText, "[CONFIG] Form-text-specific system prompt: loaded from config/file"},
		{loadedPrompts.FormText.UserPrompts.FormText, "[CONFIG] Form-text-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			count++
		}
	}

	return count
}

// logPromptSummaryFooter logs the summary footer with total count
func (c *Config) logPromptSummaryFooter(promptCount int) {
	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
