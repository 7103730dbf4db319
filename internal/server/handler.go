package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"resumeforge/internal/ai"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/observability"
	"resumeforge/internal/render"
	"resumeforge/internal/resume"
	"resumeforge/internal/session"
	"resumeforge/internal/types"
	"resumeforge/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

const sessionCookieName = "resumeforge_session"

// createProcessHandler wraps the resume processing pipeline with observability
func (s *Server) createProcessHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.process")
		defer span.End()

		if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeAppError(w, forgeErrors.NewValidationError(forgeErrors.ErrCodeUploadTooLarge,
					"Upload exceeds the configured size limit", err))
				return
			}
			writeAppError(w, forgeErrors.NewValidationError(forgeErrors.ErrCodeInvalidRequest,
				"Request must be a multipart form", err))
			return
		}

		jobDescription := strings.TrimSpace(r.FormValue("job_description"))
		if jobDescription == "" {
			err := forgeErrors.NewValidationError(forgeErrors.ErrCodeMissingJobText,
				"job_description field is required", nil)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeAppError(w, err)
			return
		}

		resumeText, resumeCached, err := s.resolveResumeText(w, r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeAppError(w, err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(jobDescription)),
			attribute.String("operation", "process"),
		)

		result, err := s.runProcessPipeline(ctx, om, resumeText, jobDescription)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.adapted_length", len(result.AdaptedResume)),
			attribute.Int("response.form_text_length", len(result.FormText)),
		)

		response := ProcessResponse{
			Message:                "Documents generated successfully",
			ResumeDownloadURL:      "/download/resume/" + result.ResumeFile,
			CoverLetterDownloadURL: "/download/cover-letter/" + result.CoverLetterFile,
			FormText:               result.FormText,
			HasResumeCached:        resumeCached,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// resolveResumeText returns the resume text for this request, either from an
// uploaded PDF or from the session cache, plus whether the text is held in
// the session afterwards. A successful extraction always updates the session
// before the AI pipeline runs.
func (s *Server) resolveResumeText(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	file, header, err := r.FormFile("resume")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			return "", false, forgeErrors.NewValidationError(forgeErrors.ErrCodeInvalidRequest,
				"Failed to read resume upload", err)
		}

		// No upload: fall back to the session cache
		entry, ok := s.sessionEntry(r)
		if !ok {
			return "", false, forgeErrors.NewValidationError(forgeErrors.ErrCodeMissingResume,
				"Upload a resume PDF or process one first", nil)
		}
		return entry.ResumeText, true, nil
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err)
		}
	}()

	if !utils.IsPDFFile(header.Filename) {
		return "", false, forgeErrors.NewValidationError(forgeErrors.ErrCodeInvalidFileType,
			"Only PDF resumes are accepted", nil)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", false, forgeErrors.NewValidationError(forgeErrors.ErrCodeUploadTooLarge,
				"Upload exceeds the configured size limit", err)
		}
		return "", false, forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to read uploaded resume", err)
	}

	text, err := extract.PDFText(data)
	if err != nil {
		return "", false, err // Already a typed extraction error
	}

	cached := s.cacheResume(w, r, session.Entry{
		ResumeText: text,
		FileName:   utils.SanitizeFilename(header.Filename),
	})

	return text, cached, nil
}

// runProcessPipeline runs the three AI operations in order, parses the
// adapted resume and renders both PDF documents. A failure at any step
// aborts the pipeline.
func (s *Server) runProcessPipeline(ctx context.Context, om *observability.ObservabilityManager, resumeText, jobDescription string) (*types.ProcessResult, error) {
	metrics := om.GetMetrics()

	adapted, err := s.runAdapt(ctx, om, resumeText, jobDescription)
	if err != nil {
		metrics.RecordBusinessMetric(ctx, "resume_processed", false, om,
			attribute.String("failed_step", "adapt"))
		return nil, err
	}

	coverLetter, err := s.runCoverLetter(ctx, om, resumeText, jobDescription)
	if err != nil {
		metrics.RecordBusinessMetric(ctx, "resume_processed", false, om,
			attribute.String("failed_step", "cover_letter"))
		return nil, err
	}

	formText, err := s.runFormText(ctx, om, resumeText, jobDescription)
	if err != nil {
		metrics.RecordBusinessMetric(ctx, "resume_processed", false, om,
			attribute.String("failed_step", "form_text"))
		return nil, err
	}

	doc := resume.Parse(adapted)
	letter := resume.BuildCoverLetterDocument(coverLetter)

	if err := utils.EnsureDir(s.OutputDir); err != nil {
		return nil, forgeErrors.NewIOError(forgeErrors.ErrCodeRenderFailed,
			"Failed to create output directory", err)
	}

	resumeFile := render.ResumeFileName()
	if err := s.Renderer.RenderResume(ctx, &doc, filepath.Join(s.OutputDir, resumeFile)); err != nil {
		metrics.RecordBusinessMetric(ctx, "render_completed", false, om,
			attribute.String("document", "resume"))
		return nil, err
	}
	metrics.RecordBusinessMetric(ctx, "render_completed", true, om,
		attribute.String("document", "resume"))

	coverLetterFile := render.CoverLetterFileName()
	if err := s.Renderer.RenderCoverLetter(ctx, &letter, filepath.Join(s.OutputDir, coverLetterFile)); err != nil {
		metrics.RecordBusinessMetric(ctx, "render_completed", false, om,
			attribute.String("document", "cover_letter"))
		return nil, err
	}
	metrics.RecordBusinessMetric(ctx, "render_completed", true, om,
		attribute.String("document", "cover_letter"))

	metrics.RecordBusinessMetric(ctx, "resume_processed", true, om)

	return &types.ProcessResult{
		AdaptedResume:   adapted,
		Document:        &doc,
		CoverLetter:     coverLetter,
		FormText:        formText,
		ResumeFile:      resumeFile,
		CoverLetterFile: coverLetterFile,
	}, nil
}

// runAdapt runs the adapt operation with observability tracking
func (s *Server) runAdapt(ctx context.Context, om *observability.ObservabilityManager, resumeText, jobDescription string) (string, error) {
	adaptConfig := s.AppConfig.GetAdaptConfig()
	aiService, err := ai.NewService(&adaptConfig, "adapt", s.Logger)
	if err != nil {
		return "", forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed,
			"Failed to create adapt service", err)
	}

	metrics := om.GetMetrics()
	var result types.AdaptResumeOutput
	err = metrics.TrackAIOperationWithTokens(ctx, "adapt", func(ctx context.Context) *observability.AIOperationResult {
		output, tokenUsage, aiErr := aiService.Provider.AdaptResume(ctx, types.AdaptResumeInput{
			BaseResume:     resumeText,
			JobDescription: jobDescription,
		})
		result = output
		return &observability.AIOperationResult{
			Error:      aiErr,
			TokenUsage: (*observability.TokenUsage)(tokenUsage),
		}
	}, om)
	if err != nil {
		return "", err
	}

	return result.AdaptedResume, nil
}

// runCoverLetter runs the cover letter operation with observability tracking
func (s *Server) runCoverLetter(ctx context.Context, om *observability.ObservabilityManager, resumeText, jobDescription string) (string, error) {
	coverLetterConfig := s.AppConfig.GetCoverLetterConfig()
	aiService, err := ai.NewService(&coverLetterConfig, "coverLetter", s.Logger)
	if err != nil {
		return "", forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed,
			"Failed to create cover letter service", err)
	}

	metrics := om.GetMetrics()
	var result types.CoverLetterOutput
	err = metrics.TrackAIOperationWithTokens(ctx, "cover_letter", func(ctx context.Context) *observability.AIOperationResult {
		output, tokenUsage, aiErr := aiService.Provider.GenerateCoverLetter(ctx, types.CoverLetterInput{
			BaseResume:     resumeText,
			JobDescription: jobDescription,
		})
		result = output
		return &observability.AIOperationResult{
			Error:      aiErr,
			TokenUsage: (*observability.TokenUsage)(tokenUsage),
		}
	}, om)
	if err != nil {
		return "", err
	}

	metrics.RecordBusinessMetric(ctx, "cover_letter_written", true, om,
		attribute.Int("output.length", len(result.CoverLetter)))

	return result.CoverLetter, nil
}

// runFormText runs the form text operation with observability tracking
func (s *Server) runFormText(ctx context.Context, om *observability.ObservabilityManager, resumeText, jobDescription string) (string, error) {
	formTextConfig := s.AppConfig.GetFormTextConfig()
	aiService, err := ai.NewService(&formTextConfig, "formText", s.Logger)
	if err != nil {
		return "", forgeErrors.NewAIError(forgeErrors.ErrCodeAIServiceFailed,
			"Failed to create form text service", err)
	}

	metrics := om.GetMetrics()
	var result types.FormTextOutput
	err = metrics.TrackAIOperationWithTokens(ctx, "form_text", func(ctx context.Context) *observability.AIOperationResult {
		output, tokenUsage, aiErr := aiService.Provider.GenerateFormText(ctx, types.FormTextInput{
			BaseResume:     resumeText,
			JobDescription: jobDescription,
		})
		result = output
		return &observability.AIOperationResult{
			Error:      aiErr,
			TokenUsage: (*observability.TokenUsage)(tokenUsage),
		}
	}, om)
	if err != nil {
		return "", err
	}

	metrics.RecordBusinessMetric(ctx, "form_text_generated", true, om,
		attribute.Int("output.length", len(result.FormText)))

	return result.FormText, nil
}

// downloadResumeHandler serves rendered resume PDFs
func (s *Server) downloadResumeHandler(w http.ResponseWriter, r *http.Request) {
	s.serveOutputFile(w, r, r.PathValue("filename"), "resume_")
}

// downloadCoverLetterHandler serves rendered cover letter PDFs
func (s *Server) downloadCoverLetterHandler(w http.ResponseWriter, r *http.Request) {
	s.serveOutputFile(w, r, r.PathValue("filename"), "cover_letter_")
}

// serveOutputFile serves a generated PDF from the output directory.
// Filenames are restricted to the generated naming pattern so the
// handler can never reach outside the output directory.
func (s *Server) serveOutputFile(w http.ResponseWriter, r *http.Request, filename, requiredPrefix string) {
	if filename != utils.SanitizeFilename(filename) ||
		!strings.HasPrefix(filename, requiredPrefix) ||
		!strings.HasSuffix(filename, ".pdf") {
		writeAppError(w, forgeErrors.NewValidationError(forgeErrors.ErrCodeFileOutsideBase,
			"Invalid download file name", nil))
		return
	}

	path := filepath.Join(s.OutputDir, filename)

	absOutputDir, err := filepath.Abs(s.OutputDir)
	if err != nil {
		writeAppError(w, forgeErrors.NewIOError(forgeErrors.ErrCodeOutputFileNotFound,
			"Failed to resolve output directory", err))
		return
	}
	absPath, err := filepath.Abs(path)
	if err != nil || !strings.HasPrefix(absPath, absOutputDir+string(os.PathSeparator)) {
		writeAppError(w, forgeErrors.NewValidationError(forgeErrors.ErrCodeFileOutsideBase,
			"Invalid download file name", err))
		return
	}

	if _, err := os.Stat(absPath); err != nil {
		s.Logger.Info("Download requested for missing file",
			"filename", filename,
			"client_ip", getClientIP(r))
		writeErrorResponse(w, forgeErrors.ErrCodeOutputFileNotFound,
			"File not found or expired", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, absPath)
}

// clearResumeHandler drops the cached resume for the current session
func (s *Server) clearResumeHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.SessionStore.Delete(cookie.Value)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ClearResumeResponse{Message: "Cached resume cleared"}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sessionEntry returns the cached session entry for a request, if any
func (s *Server) sessionEntry(r *http.Request) (session.Entry, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return session.Entry{}, false
	}
	return s.SessionStore.Get(cookie.Value)
}

// cacheResume stores extracted resume text in the session, issuing a
// session cookie when the request does not carry one. It reports whether
// the entry was stored.
func (s *Server) cacheResume(w http.ResponseWriter, r *http.Request, entry session.Entry) bool {
	token := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	if token == "" {
		newToken, err := s.SessionStore.NewToken()
		if err != nil {
			s.Logger.LogError(err, "Failed to create session token, resume will not be cached")
			return false
		}
		token = newToken

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   s.TLSConfig.Mode != "" && s.TLSConfig.Mode != "disabled",
		})
	}

	s.SessionStore.Put(token, entry)
	return true
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
