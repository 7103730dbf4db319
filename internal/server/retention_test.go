package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
)

func TestRetentionCleanupRemovesExpiredPDFs(t *testing.T) {
	dir := t.TempDir()
	logger := forgeErrors.NewLogger(slog.LevelError)

	oldFile := filepath.Join(dir, "resume_old.pdf")
	newFile := filepath.Join(dir, "resume_new.pdf")
	otherFile := filepath.Join(dir, "notes.txt")

	for _, path := range []string{oldFile, newFile, otherFile} {
		if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	// Age the old file and the non-PDF past the retention window
	past := time.Now().Add(-2 * time.Hour)
	for _, path := range []string{oldFile, otherFile} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("failed to set mtime on %s: %v", path, err)
		}
	}

	j := newRetentionJanitor(dir, config.RetentionConfig{
		MaxAge:          time.Hour,
		CleanupInterval: time.Hour,
	}, logger)
	j.cleanup()

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("expired PDF should have been removed")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("fresh PDF should have been kept")
	}
	if _, err := os.Stat(otherFile); err != nil {
		t.Error("non-PDF files should not be touched")
	}
}

func TestRetentionCleanupMissingDirectory(t *testing.T) {
	logger := forgeErrors.NewLogger(slog.LevelError)

	j := newRetentionJanitor(filepath.Join(t.TempDir(), "does-not-exist"), config.RetentionConfig{}, logger)
	j.cleanup() // must not panic
}

func TestRetentionJanitorDefaults(t *testing.T) {
	logger := forgeErrors.NewLogger(slog.LevelError)

	j := newRetentionJanitor(t.TempDir(), config.RetentionConfig{}, logger)
	if j.maxAge != defaultRetentionMaxAge {
		t.Errorf("expected default max age %v, got %v", defaultRetentionMaxAge, j.maxAge)
	}
	if j.interval != defaultRetentionInterval {
		t.Errorf("expected default interval %v, got %v", defaultRetentionInterval, j.interval)
	}
}

func TestRetentionJanitorStartStop(t *testing.T) {
	logger := forgeErrors.NewLogger(slog.LevelError)

	j := newRetentionJanitor(t.TempDir(), config.RetentionConfig{
		MaxAge:          time.Hour,
		CleanupInterval: 10 * time.Millisecond,
	}, logger)
	j.Start()
	time.Sleep(25 * time.Millisecond)
	j.Stop()
}
