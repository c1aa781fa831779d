// Package testutil provides shared test helpers for setting up managers and vaults.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/quirelabs/quire/internal/notes"
	"github.com/quirelabs/quire/internal/vault"
)

// TestVaults creates temporary data and trash roots.
func TestVaults(t *testing.T) (*vault.FS, *vault.FS) {
	t.Helper()
	dataFS, err := vault.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS data: %v", err)
	}
	trashFS, err := vault.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS trash: %v", err)
	}
	return dataFS, trashFS
}

// TestManager creates a manager over temporary vault roots with a
// discarding logger and no audit sink.
func TestManager(t *testing.T) *notes.Manager {
	t.Helper()
	dataFS, trashFS := TestVaults(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notes.New(notes.NewMirror(dataFS, trashFS), logger, nil)
}
