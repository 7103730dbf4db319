package server

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
)

const (
	defaultRetentionMaxAge   = 1 * time.Hour
	defaultRetentionInterval = 10 * time.Minute
)

// retentionJanitor periodically removes rendered PDFs that are older
// than the configured retention age. Download URLs for removed files
// return 404 afterwards.
type retentionJanitor struct {
	outputDir string
	maxAge    time.Duration
	interval  time.Duration
	done      chan struct{}
	logger    *forgeErrors.Logger
}

func newRetentionJanitor(outputDir string, cfg config.RetentionConfig, logger *forgeErrors.Logger) *retentionJanitor {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultRetentionMaxAge
	}
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = defaultRetentionInterval
	}

	return &retentionJanitor{
		outputDir: outputDir,
		maxAge:    maxAge,
		interval:  interval,
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// Start launches the background cleanup loop
func (j *retentionJanitor) Start() {
	go j.cleanupRoutine()
}

func (j *retentionJanitor) cleanupRoutine() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanup()
		case <-j.done:
			return
		}
	}
}

// cleanup removes expired PDFs from the output directory
func (j *retentionJanitor) cleanup() {
	entries, err := os.ReadDir(j.outputDir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Warn("Failed to read output directory for cleanup",
				"output_dir", j.outputDir,
				"error", err)
		}
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(j.outputDir, entry.Name())
			if err := os.Remove(path); err != nil {
				j.logger.Warn("Failed to remove expired output file",
					"path", path,
					"error", err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		j.logger.Debug("Output retention cleanup completed",
			"removed_files", removed,
			"max_age", j.maxAge)
	}
}

// Stop terminates the cleanup routine
func (j *retentionJanitor) Stop() {
	close(j.done)
}
