package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"resumeforge/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	basicAuthHandler := s.basicAuthMiddleware()
	uploadLimitHandler := s.uploadSizeLimitMiddleware()

	mux.HandleFunc("GET /healthz", s.healthHandler)
	mux.HandleFunc("GET /readyz", s.readyHandler)
	mux.HandleFunc("GET /stats", s.authMiddleware(s.statsHandler))

	// Browser routes: basic auth when configured, session cookie for caching
	mux.HandleFunc("GET /{$}",
		basicAuthHandler(s.indexHandler),
	)
	mux.HandleFunc("POST /process",
		rateLimitHandler(
			basicAuthHandler(uploadLimitHandler(s.createProcessHandler(om))),
		),
	)
	mux.HandleFunc("GET /download/resume/{filename}",
		rateLimitHandler(
			basicAuthHandler(s.downloadResumeHandler),
		),
	)
	mux.HandleFunc("GET /download/cover-letter/{filename}",
		rateLimitHandler(
			basicAuthHandler(s.downloadCoverLetterHandler),
		),
	)
	mux.HandleFunc("POST /clear-resume",
		rateLimitHandler(
			basicAuthHandler(s.clearResumeHandler),
		),
	)

	return mux
}

// basicAuthMiddleware protects browser routes with HTTP basic auth when configured
func (s *Server) basicAuthMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if !s.BasicAuth.Enabled() {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()

			usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.BasicAuth.Username)) == 1
			passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.BasicAuth.Password)) == 1

			if !ok || !usernameMatch || !passwordMatch {
				s.Logger.Info("Basic authentication failed",
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				w.Header().Set("WWW-Authenticate", `Basic realm="resumeforge"`)
				writeErrorResponse(w, "Unauthorized", "Valid credentials required", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		// Log successful authentication
		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// uploadSizeLimitMiddleware limits the size of incoming upload requests
func (s *Server) uploadSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxUploadBytes > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
