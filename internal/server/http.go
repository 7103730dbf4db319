package server

import (
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/render"
	"resumeforge/internal/session"
)

// ProcessResponse is the JSON response for the process endpoint
type ProcessResponse struct {
	Message                string `json:"message"`
	ResumeDownloadURL      string `json:"resume_download_url"`
	CoverLetterDownloadURL string `json:"cover_letter_download_url"`
	FormText               string `json:"form_text"`
	HasResumeCached        bool   `json:"has_resume_cached"`
}

// ClearResumeResponse is the JSON acknowledgement for the clear-resume endpoint
type ClearResumeResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Basic authentication for browser routes
	BasicAuth config.BasicAuthConfig

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Upload size limit for the process endpoint
	MaxUploadBytes int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Session-backed resume cache
	SessionStore *session.Store

	// PDF rendering
	Renderer  render.Renderer
	OutputDir string

	// Output retention janitor
	retention *retentionJanitor

	// Logger
	Logger *forgeErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	BasicAuth      config.BasicAuthConfig
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxUploadBytes int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *forgeErrors.Logger) (*Server, error) {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	renderer, err := render.New(appCfg.Render, logger)
	if err != nil {
		return nil, err
	}

	sessionStore := session.NewStore(
		appCfg.Storage.Session.TTL,
		appCfg.Storage.Session.CleanupInterval,
		logger,
	)

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		BasicAuth:      cfg.BasicAuth,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		SessionStore:   sessionStore,
		Renderer:       renderer,
		OutputDir:      appCfg.Storage.OutputDir,
		retention:      newRetentionJanitor(appCfg.Storage.OutputDir, appCfg.Storage.Retention, logger),
		Logger:         logger,
	}, nil
}
