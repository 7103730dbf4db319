package ai

import (
	"testing"
	"time"

	"resumeforge/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Test that each operation gets its own circuit breaker configuration
	// as specified in config.example.yaml

	// Create different configurations for each operation (matching config.example.yaml)
	adaptConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	coverLetterConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,                // Different from adapt
			Interval:         30 * time.Second, // Different from adapt
			Timeout:          45 * time.Second, // Different from adapt
			MinRequests:      2,                // Different from adapt
			FailureThreshold: 0.7,              // Different from adapt
		},
	}

	formTextConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-1.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      4,                // Different from others
			Interval:         90 * time.Second, // Different from others
			Timeout:          75 * time.Second, // Different from others
			MinRequests:      5,                // Different from others
			FailureThreshold: 0.5,              // Different from others
		},
	}

	// Create circuit breakers for each operation
	adaptCB := NewAICircuitBreaker("Adapt", adaptConfig, nil)
	coverLetterCB := NewAICircuitBreaker("CoverLetter", coverLetterConfig, nil)
	formTextCB := NewAICircuitBreaker("FormText", formTextConfig, nil)

	// Verify that each circuit breaker has independent configuration
	t.Run("AdaptCircuitBreaker", func(t *testing.T) {
		stats := adaptCB.GetStats()

		// Check that adapt circuit breaker exists and has correct name
		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-Adapt"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}

		// Verify it's in closed state initially
		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		// Verify it's enabled
		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("CoverLetterCircuitBreaker", func(t *testing.T) {
		stats := coverLetterCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-CoverLetter"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	t.Run("FormTextCircuitBreaker", func(t *testing.T) {
		stats := formTextCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-FormText"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	// Verify that circuit breakers are independent (different instances)
	t.Run("IndependentInstances", func(t *testing.T) {
		if adaptCB == coverLetterCB {
			t.Error("Adapt and cover letter circuit breakers should be different instances")
		}
		if adaptCB == formTextCB {
			t.Error("Adapt and form text circuit breakers should be different instances")
		}
		if coverLetterCB == formTextCB {
			t.Error("Cover letter and form text circuit breakers should be different instances")
		}
	})

	// Verify that health states are independent
	t.Run("IndependentHealthStates", func(t *testing.T) {
		adaptHealthy := adaptCB.IsHealthy()
		coverLetterHealthy := coverLetterCB.IsHealthy()
		formTextHealthy := formTextCB.IsHealthy()

		// All should be healthy initially
		if !adaptHealthy {
			t.Error("Adapt circuit breaker should be healthy initially")
		}
		if !coverLetterHealthy {
			t.Error("Cover letter circuit breaker should be healthy initially")
		}
		if !formTextHealthy {
			t.Error("Form text circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	// Test that configuration values are properly applied to circuit breakers

	customConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewAICircuitBreaker("Test", customConfig, nil)

	// Verify circuit breaker was created with custom configuration
	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	// Check that the circuit breaker has the expected operation type in its name
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "AI-Test"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	// Test that circuit breaker returns nil when disabled

	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false, // Disabled
		},
	}

	cb := NewAICircuitBreaker("Disabled", disabledConfig, nil)

	// Should return nil when disabled
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}
}
