package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempRoot(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	v := tempRoot(t)
	content := []byte("# Hello\nWorld\n")
	if err := v.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := v.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	v := tempRoot(t)
	if err := v.Write("a/b/c.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := v.Read("a/b/c.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	v := tempRoot(t)
	if err := v.Write("note.md", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(v.Root())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".quire-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRemove(t *testing.T) {
	v := tempRoot(t)
	_ = v.Write("del.md", []byte("bye"))
	if err := v.Remove("del.md"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := v.Read("del.md"); err == nil {
		t.Error("expected error reading removed file")
	}
}

func TestRename(t *testing.T) {
	v := tempRoot(t)
	_ = v.Write("old/name.md", []byte("move me"))
	if err := v.Rename("old/name.md", "new/name.md"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	got, err := v.Read("new/name.md")
	if err != nil {
		t.Fatalf("Read after rename: %v", err)
	}
	if string(got) != "move me" {
		t.Errorf("content = %q", got)
	}
	if _, err := v.Read("old/name.md"); err == nil {
		t.Error("old path still readable")
	}
}

func TestRemoveTreeRefusesRoot(t *testing.T) {
	v := tempRoot(t)
	if err := v.RemoveTree(""); err == nil {
		t.Error("RemoveTree(\"\") succeeded, want refusal")
	}
	if err := v.RemoveTree("."); err == nil {
		t.Error("RemoveTree(\".\") succeeded, want refusal")
	}
}

func TestTraversalRejected(t *testing.T) {
	v := tempRoot(t)
	cases := []string{
		"../escape.md",
		"a/../../escape.md",
		"/etc/passwd",
	}
	for _, path := range cases {
		if err := v.Write(path, []byte("nope")); err == nil {
			t.Errorf("Write(%q) succeeded, want traversal error", path)
		}
		if _, err := v.Read(path); err == nil {
			t.Errorf("Read(%q) succeeded, want traversal error", path)
		}
	}
}

func TestTransferAcrossRoots(t *testing.T) {
	src := tempRoot(t)
	dst := tempRoot(t)
	_ = src.Write("dir/file.md", []byte("crossing"))

	if err := Transfer(src, "dir", dst, "dir"); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	got, err := dst.Read("dir/file.md")
	if err != nil {
		t.Fatalf("Read at destination: %v", err)
	}
	if string(got) != "crossing" {
		t.Errorf("content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(src.Root(), "dir")); !os.IsNotExist(err) {
		t.Error("source dir still present after transfer")
	}
}

func TestNewFSRequiresExistingDir(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("NewFS on missing dir succeeded")
	}
}
