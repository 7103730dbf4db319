package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAdaptConfig returns the AI configuration for adapt operations with fallback to global config
func (c *Config) GetAdaptConfig() OperationAIConfig {
	config := c.AI.Adapt

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply adapt-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.AdaptResume == "" {
		config.CustomPrompts.SystemPrompts.AdaptResume = c.AI.CustomPrompts.SystemPrompts.AdaptResume
	}
	if config.CustomPrompts.UserPrompts.AdaptResume == "" {
		config.CustomPrompts.UserPrompts.AdaptResume = c.AI.CustomPrompts.UserPrompts.AdaptResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.AdaptResumeFile == "" {
		config.CustomPrompts.SystemPrompts.AdaptResumeFile = c.AI.CustomPrompts.SystemPrompts.AdaptResumeFile
	}
	if config.CustomPrompts.UserPrompts.AdaptResumeFile == "" {
		config.CustomPrompts.UserPrompts.AdaptResumeFile = c.AI.CustomPrompts.UserPrompts.AdaptResumeFile
	}

	return config
}

// GetCoverLetterConfig returns the AI configuration for cover letter operations with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	config := c.AI.CoverLetter

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply cover-letter-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.CoverLetter == "" {
		config.CustomPrompts.SystemPrompts.CoverLetter = c.AI.CustomPrompts.SystemPrompts.CoverLetter
	}
	if config.CustomPrompts.UserPrompts.CoverLetter == "" {
		config.CustomPrompts.UserPrompts.CoverLetter = c.AI.CustomPrompts.UserPrompts.CoverLetter
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.CoverLetterFile == "" {
		config.CustomPrompts.SystemPrompts.CoverLetterFile = c.AI.CustomPrompts.SystemPrompts.CoverLetterFile
	}
	if config.CustomPrompts.UserPrompts.CoverLetterFile == "" {
		config.CustomPrompts.UserPrompts.CoverLetterFile = c.AI.CustomPrompts.UserPrompts.CoverLetterFile
	}

	return config
}

// GetFormTextConfig returns the AI configuration for form text operations with fallback to global config
func (c *Config) GetFormTextConfig() OperationAIConfig {
	config := c.AI.FormText

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply form-text-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.FormText == "" {
		config.CustomPrompts.SystemPrompts.FormText = c.AI.CustomPrompts.SystemPrompts.FormText
	}
	if config.CustomPrompts.UserPrompts.FormText == "" {
		config.CustomPrompts.UserPrompts.FormText = c.AI.CustomPrompts.UserPrompts.FormText
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.FormTextFile == "" {
		config.CustomPrompts.SystemPrompts.FormTextFile = c.AI.CustomPrompts.SystemPrompts.FormTextFile
	}
	if config.CustomPrompts.UserPrompts.FormTextFile == "" {
		config.CustomPrompts.UserPrompts.FormTextFile = c.AI.CustomPrompts.UserPrompts.FormTextFile
	}

	return config
}

// GetLoadedAdaptPrompts returns a copy of the loaded prompts for the adapt operation
func (c *Config) GetLoadedAdaptPrompts() OperationLoadedPrompts {
	return loadedPrompts.Adapt
}

// GetLoadedCoverLetterPrompts returns a copy of the loaded prompts for the cover letter operation
func (c *Config) GetLoadedCoverLetterPrompts() OperationLoadedPrompts {
	return loadedPrompts.CoverLetter
}

// GetLoadedFormTextPrompts returns a copy of the loaded prompts for the form text operation
func (c *Config) GetLoadedFormTextPrompts() OperationLoadedPrompts {
	return loadedPrompts.FormText
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
