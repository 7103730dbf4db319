package config

import (
	"sync"
)

var (
	loadedPrompts     AllLoadedPrompts
	loadedPromptsOnce sync.Once
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	AdaptResume string
	CoverLetter string
	FormText    string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	AdaptResume string
	CoverLetter string
	FormText    string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global      LoadedPrompts
	Adapt       OperationLoadedPrompts
	CoverLetter OperationLoadedPrompts
	FormText    OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	var result OperationLoadedPrompts

	switch operationType {
	case "adapt":
		result = loadedPrompts.Adapt
	case "coverLetter":
		result = loadedPrompts.CoverLetter
	case "formText":
		result = loadedPrompts.FormText
	default:
		result = OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}

	return result
}
