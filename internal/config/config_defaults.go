package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Adapt operation defaults
	v.SetDefault("ai.adapt.provider", "gemini")
	v.SetDefault("ai.adapt.model", "")
	v.SetDefault("ai.adapt.timeout", 90*time.Second) // Longer timeout for full resume rewrites
	v.SetDefault("ai.adapt.apiKey", "")
	v.SetDefault("ai.adapt.maxRetries", 2)
	v.SetDefault("ai.adapt.temperature", 0.3) // Lower temperature for consistency
	v.SetDefault("ai.adapt.useSystemPrompts", true)

	// AI Configuration - Cover letter operation defaults
	v.SetDefault("ai.coverLetter.provider", "gemini")
	v.SetDefault("ai.coverLetter.model", "")
	v.SetDefault("ai.coverLetter.timeout", 60*time.Second) // Standard timeout
	v.SetDefault("ai.coverLetter.apiKey", "")
	v.SetDefault("ai.coverLetter.maxRetries", 3)
	v.SetDefault("ai.coverLetter.temperature", 0.7) // Higher temperature for natural prose
	v.SetDefault("ai.coverLetter.useSystemPrompts", true)

	// AI Configuration - Form text operation defaults
	v.SetDefault("ai.formText.provider", "gemini")
	v.SetDefault("ai.formText.model", "")
	v.SetDefault("ai.formText.timeout", 60*time.Second)
	v.SetDefault("ai.formText.apiKey", "")
	v.SetDefault("ai.formText.maxRetries", 2)
	v.SetDefault("ai.formText.temperature", 0.2) // Low temperature for plain factual output
	v.SetDefault("ai.formText.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.adapt.circuitBreaker.enabled", true)
	v.SetDefault("ai.adapt.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.adapt.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.adapt.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.adapt.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.adapt.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.coverLetter.circuitBreaker.enabled", true)
	v.SetDefault("ai.coverLetter.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.coverLetter.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.coverLetter.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.coverLetter.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.coverLetter.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.formText.circuitBreaker.enabled", true)
	v.SetDefault("ai.formText.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.formText.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.formText.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.formText.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.formText.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.maxUploadBytes", 10*1024*1024) // 10MB multipart limit
	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify
	v.SetDefault("server.tls.insecureSkipVerify", false)
	v.SetDefault("server.tls.serverName", "")

	// Auto-reload configuration defaults
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.checkInterval", 30*time.Second)
	v.SetDefault("server.tls.autoReload.preemptiveRenewal", 72*time.Hour) // 72 hours before expiry
	v.SetDefault("server.tls.autoReload.maxRetries", 3)
	v.SetDefault("server.tls.autoReload.retryDelay", 10*time.Second)

	// File watcher defaults
	v.SetDefault("server.tls.autoReload.fileWatcher.enabled", true)
	v.SetDefault("server.tls.autoReload.fileWatcher.debounceDelay", time.Second)

	// Vault watcher defaults
	v.SetDefault("server.tls.autoReload.vaultWatcher.enabled", false)
	v.SetDefault("server.tls.autoReload.vaultWatcher.pollInterval", 5*time.Minute)
	v.SetDefault("server.tls.autoReload.vaultWatcher.autoRenew", true)
	v.SetDefault("server.tls.autoReload.vaultWatcher.renewThreshold", 24*time.Hour)
	v.SetDefault("server.tls.autoReload.vaultWatcher.secretPath", "")
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	// Basic auth defaults (disabled unless both are set)
	v.SetDefault("server.basicAuth.username", "")
	v.SetDefault("server.basicAuth.password", "")
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Storage Configuration
	v.SetDefault("storage.outputDir", "outputs")
	v.SetDefault("storage.retention.maxAge", 24*time.Hour)
	v.SetDefault("storage.retention.cleanupInterval", time.Hour)
	v.SetDefault("storage.session.ttl", 30*time.Minute)
	v.SetDefault("storage.session.cleanupInterval", 5*time.Minute)

	// Render Configuration
	v.SetDefault("render.backend", "chromium") // chromium, latex
	v.SetDefault("render.chromePath", "")
	v.SetDefault("render.latexCommand", "pdflatex")
	v.SetDefault("render.latexTimeout", 60*time.Second)
	v.SetDefault("render.pageSize", "letter") // letter, a4

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB, matches the upload limit

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.basicAuth", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumeforge")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCertExpiry", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
