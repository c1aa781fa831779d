package audit

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(filepath.Join(t.TempDir(), "audit.db"), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogAndRecent(t *testing.T) {
	db := testDB(t)

	db.Log("info", "first")
	db.Log("info", "second")
	db.Log("warning", "third")

	events, err := db.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Message != "third" || events[1].Message != "second" {
		t.Errorf("order = %q, %q", events[0].Message, events[1].Message)
	}
	if events[0].Level != "warning" {
		t.Errorf("level = %q", events[0].Level)
	}
}

func TestRecentDefaultsLimit(t *testing.T) {
	db := testDB(t)
	db.Log("info", "only")

	events, err := db.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d", len(events))
	}
}

func TestRecentEmpty(t *testing.T) {
	db := testDB(t)
	events, err := db.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events on empty log = %v", events)
	}
}
