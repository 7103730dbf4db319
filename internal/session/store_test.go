package session

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s := NewStore(ttl, time.Minute, nil)
	t.Cleanup(s.Close)
	return s
}

func TestStorePutGet(t *testing.T) {
	s := newTestStore(t, time.Minute)

	token, err := s.NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	entry := Entry{
		ResumeText: "CONTACT INFO:\nJane Smith",
		FileName:   "resume.pdf",
	}
	s.Put(token, entry)

	got, ok := s.Get(token)
	if !ok {
		t.Fatal("Expected entry to be found")
	}
	if got.ResumeText != entry.ResumeText {
		t.Errorf("Expected resume text '%s', got '%s'", entry.ResumeText, got.ResumeText)
	}
	if got.FileName != "resume.pdf" {
		t.Errorf("Expected file name 'resume.pdf', got '%s'", got.FileName)
	}
}

func TestStoreGetUnknownToken(t *testing.T) {
	s := newTestStore(t, time.Minute)

	if _, ok := s.Get("nonexistent"); ok {
		t.Error("Expected no entry for unknown token")
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t, time.Minute)

	s.Put("token1", Entry{ResumeText: "text"})
	s.Delete("token1")

	if _, ok := s.Get("token1"); ok {
		t.Error("Expected entry to be gone after delete")
	}

	// Deleting a missing token is a no-op
	s.Delete("token1")
}

func TestStoreExpiry(t *testing.T) {
	s := newTestStore(t, 10*time.Millisecond)

	s.Put("token1", Entry{ResumeText: "text"})

	time.Sleep(30 * time.Millisecond)

	if _, ok := s.Get("token1"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestStoreAccessRefreshesTTL(t *testing.T) {
	s := newTestStore(t, 50*time.Millisecond)

	s.Put("token1", Entry{ResumeText: "text"})

	// Keep touching the entry past its original TTL
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, ok := s.Get("token1"); !ok {
			t.Fatalf("Entry expired despite access on iteration %d", i)
		}
	}
}

func TestStoreTokenUniqueness(t *testing.T) {
	s := newTestStore(t, time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.NewToken()
		if err != nil {
			t.Fatalf("NewToken failed: %v", err)
		}
		if len(token) != 64 {
			t.Fatalf("Expected 64 hex chars, got %d", len(token))
		}
		if seen[token] {
			t.Fatal("Duplicate token generated")
		}
		seen[token] = true
	}
}

func TestStoreCleanup(t *testing.T) {
	s := NewStore(10*time.Millisecond, time.Minute, nil)
	defer s.Close()

	s.Put("a", Entry{})
	s.Put("b", Entry{})

	time.Sleep(30 * time.Millisecond)
	s.cleanup()

	stats := s.GetStats()
	if count := stats["active_sessions"].(int); count != 0 {
		t.Errorf("Expected 0 active sessions after cleanup, got %d", count)
	}
}

func TestStoreStats(t *testing.T) {
	s := newTestStore(t, time.Minute)

	s.Put("a", Entry{})
	s.Put("b", Entry{})

	stats := s.GetStats()
	if count := stats["active_sessions"].(int); count != 2 {
		t.Errorf("Expected 2 active sessions, got %d", count)
	}
	if ttl := stats["ttl_seconds"].(float64); ttl != 60 {
		t.Errorf("Expected ttl 60s, got %v", ttl)
	}
}
