package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if got := s.Get("anything", "fallback"); got != "fallback" {
		t.Errorf("Get on empty store = %q", got)
	}
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s := Load(path)
	s.Set("export.dir", "/tmp/exports")
	s.Set("cipher.key", "hunter2")
	if !s.Save() {
		t.Fatal("Save returned false")
	}

	reloaded := Load(path)
	if got := reloaded.Get("export.dir", ""); got != "/tmp/exports" {
		t.Errorf("export.dir = %q", got)
	}
	if got := reloaded.Get("cipher.key", ""); got != "hunter2" {
		t.Errorf("cipher.key = %q", got)
	}
}

func TestLoadGarbageYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(":-["), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Load(path)
	if got := s.Get("k", "def"); got != "def" {
		t.Errorf("Get after garbage load = %q", got)
	}
}
