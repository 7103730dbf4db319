package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayUploadLimitInfo()
	s.displayRateLimitInfo()
	s.displayStorageInfo()
}

// displayEndpoints shows available endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /                            - Upload form")
	fmt.Println("  POST /process                     - Process resume and job description")
	fmt.Println("  GET  /download/resume/{file}      - Download adapted resume PDF")
	fmt.Println("  GET  /download/cover-letter/{file} - Download cover letter PDF")
	fmt.Println("  POST /clear-resume                - Clear cached resume")
	fmt.Println("  GET  /healthz                     - Health check")
	fmt.Println("  GET  /readyz                      - Readiness check")
	fmt.Println("  GET  /stats                       - Server statistics (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if s.BasicAuth.Enabled() {
		fmt.Println("Basic authentication: ENABLED for browser routes")
	} else {
		fmt.Println("Basic authentication: DISABLED")
		fmt.Println("WARNING: Browser routes are publicly accessible!")
	}

	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /stats")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
	}
}

// displayUploadLimitInfo shows upload size limit configuration
func (s *Server) displayUploadLimitInfo() {
	if s.MaxUploadBytes > 0 {
		fmt.Printf("Upload size limit: %d bytes (%.1f MB)\n", s.MaxUploadBytes, float64(s.MaxUploadBytes)/(1024*1024))
	} else {
		fmt.Println("Upload size limit: DISABLED")
		fmt.Println("WARNING: No upload size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}

// displayStorageInfo shows output storage configuration
func (s *Server) displayStorageInfo() {
	fmt.Printf("Output directory: %s\n", s.OutputDir)
	fmt.Printf("Render backend: %s\n", s.AppConfig.Render.Backend)
}
