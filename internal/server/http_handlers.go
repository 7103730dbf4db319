package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"resumeforge/internal/ai"
	forgeErrors "resumeforge/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumeforge",
		"version": s.Version,
	}

	// Check AI model availability for all operations
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Check circuit breaker status
	circuitBreakerStatus := s.checkCircuitBreakerHealth()
	response["circuit_breakers"] = circuitBreakerStatus

	// Check certificate status if certificate manager is available
	certStatus := s.checkCertificateHealth()
	if certStatus != nil {
		response["certificates"] = certStatus
	}

	// Determine overall health status
	overallHealthy := true
	for _, modelStatus := range aiStatus {
		if modelInfo, ok := modelStatus.(map[string]any); ok {
			if available, exists := modelInfo["available"]; exists {
				if avail, ok := available.(bool); ok && !avail {
					overallHealthy = false
					break
				}
			}
		}
	}

	// Check certificate health
	if certStatus != nil {
		if healthy, exists := certStatus["healthy"]; exists {
			if certHealthy, ok := healthy.(bool); ok && !certHealthy {
				overallHealthy = false
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// readyHandler reports readiness based on circuit breaker state
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "ready",
		"service": "resumeforge",
	}

	circuitBreakerStatus := s.checkCircuitBreakerHealth()
	response["circuit_breakers"] = circuitBreakerStatus

	ready := true
	for _, status := range circuitBreakerStatus {
		if info, ok := status.(map[string]any); ok {
			if available, exists := info["available"]; exists {
				if avail, ok := available.(bool); ok && !avail {
					ready = false
					break
				}
			}
		}
	}

	if !ready {
		response["status"] = "not_ready"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode readiness response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelsHealth checks the health of all AI models used by different operations
func (s *Server) checkAIModelsHealth() map[string]any {
	// Use configurable health check timeout
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	// Check adapt service model
	adaptConfig := s.AppConfig.GetAdaptConfig()
	if adaptService, err := ai.NewService(&adaptConfig, "adapt", s.Logger); err == nil {
		modelInfo := adaptService.GetModelInfo(ctx)
		aiStatus["adapt"] = modelInfo
	} else {
		aiStatus["adapt"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create adapt service: %v", err),
		}
	}

	// Check cover letter service model
	coverLetterConfig := s.AppConfig.GetCoverLetterConfig()
	if coverLetterService, err := ai.NewService(&coverLetterConfig, "coverLetter", s.Logger); err == nil {
		modelInfo := coverLetterService.GetModelInfo(ctx)
		aiStatus["coverLetter"] = modelInfo
	} else {
		aiStatus["coverLetter"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create cover letter service: %v", err),
		}
	}

	// Check form text service model
	formTextConfig := s.AppConfig.GetFormTextConfig()
	if formTextService, err := ai.NewService(&formTextConfig, "formText", s.Logger); err == nil {
		modelInfo := formTextService.GetModelInfo(ctx)
		aiStatus["formText"] = modelInfo
	} else {
		aiStatus["formText"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create form text service: %v", err),
		}
	}

	return aiStatus
}

// checkCircuitBreakerHealth checks the health of circuit breakers for all AI operations
func (s *Server) checkCircuitBreakerHealth() map[string]any {
	circuitBreakerStatus := make(map[string]any)

	// Check adapt service circuit breaker
	adaptConfig := s.AppConfig.GetAdaptConfig()
	if _, err := ai.NewService(&adaptConfig, "adapt", s.Logger); err == nil {
		circuitBreakerStatus["adapt"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with adapt service",
		}
	} else {
		circuitBreakerStatus["adapt"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create adapt service: %v", err),
		}
	}

	// Check cover letter service circuit breaker
	coverLetterConfig := s.AppConfig.GetCoverLetterConfig()
	if _, err := ai.NewService(&coverLetterConfig, "coverLetter", s.Logger); err == nil {
		circuitBreakerStatus["coverLetter"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with cover letter service",
		}
	} else {
		circuitBreakerStatus["coverLetter"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create cover letter service: %v", err),
		}
	}

	// Check form text service circuit breaker
	formTextConfig := s.AppConfig.GetFormTextConfig()
	if _, err := ai.NewService(&formTextConfig, "formText", s.Logger); err == nil {
		circuitBreakerStatus["formText"] = map[string]any{
			"available": true,
			"message":   "Circuit breaker integrated with form text service",
		}
	} else {
		circuitBreakerStatus["formText"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create form text service: %v", err),
		}
	}

	return circuitBreakerStatus
}

// checkCertificateHealth checks the health of TLS certificates
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}

	certStatus := make(map[string]any)

	// Check certificate expiry
	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	// Consider certificates unhealthy if they expire within 24 hours
	criticalThreshold := 24 * time.Hour
	warningThreshold := 7 * 24 * time.Hour // 7 days

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())
	certStatus["time_to_expiry"] = timeToExpiry.String()

	if timeToExpiry <= 0 {
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
		certStatus["message"] = "Certificate has expired"
	} else if timeToExpiry <= criticalThreshold {
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
		certStatus["message"] = "Certificate expires within 24 hours"
	} else if timeToExpiry <= warningThreshold {
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
		certStatus["message"] = "Certificate expires within 7 days"
	} else {
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
		certStatus["message"] = "Certificate is valid"
	}

	// Add auto-reload status
	if s.TLSConfig.AutoReload.Enabled {
		certStatus["auto_reload"] = map[string]any{
			"enabled":               true,
			"file_watcher_enabled":  s.TLSConfig.AutoReload.FileWatcher.Enabled,
			"vault_watcher_enabled": s.TLSConfig.AutoReload.VaultWatcher.Enabled,
		}

		// Add file watcher status
		if s.CertificateManager.fileWatcher != nil {
			certStatus["auto_reload"].(map[string]any)["file_watcher_running"] = s.CertificateManager.fileWatcher.IsRunning()
			certStatus["auto_reload"].(map[string]any)["watched_files"] = s.CertificateManager.fileWatcher.GetWatchedFiles()
		}

		// Add vault watcher status
		if s.CertificateManager.vaultWatcher != nil {
			certStatus["auto_reload"].(map[string]any)["vault_watcher_status"] = s.CertificateManager.vaultWatcher.Status()
		}
	} else {
		certStatus["auto_reload"] = map[string]any{
			"enabled": false,
		}
	}

	// Add certificate metrics
	metrics := s.CertificateManager.GetMetrics()
	if metrics != nil {
		certStatus["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return certStatus
}

// statsHandler provides server statistics including rate limiting and session info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "resumeforge",
		"version": s.Version,
		"server": map[string]any{
			"max_upload_bytes": s.MaxUploadBytes,
			"output_dir":       s.OutputDir,
			"render_backend":   s.AppConfig.Render.Backend,
		},
	}

	// Add session store stats
	if s.SessionStore != nil {
		response["sessions"] = s.SessionStore.GetStats()
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeAppError maps an application error to an HTTP error response
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *forgeErrors.AppError
	if !errors.As(err, &appErr) {
		writeErrorResponse(w, "Internal error", err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case forgeErrors.ErrorTypeValidation, forgeErrors.ErrorTypeParse, forgeErrors.ErrorTypeSession:
		status = http.StatusBadRequest
	case forgeErrors.ErrorTypeAI, forgeErrors.ErrorTypeRender:
		status = http.StatusBadGateway
	}

	writeErrorResponse(w, appErr.Code, appErr.Message, status)
}
