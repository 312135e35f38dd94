package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "project.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "summaries", "2024")
	if err := EnsureProjectDir(nested); err != nil {
		t.Fatal(err)
	}
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if got != root {
		t.Fatalf("expected %s, got %s", root, got)
	}
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	if _, err := FindProjectRoot(t.TempDir()); err == nil {
		t.Fatalf("expected error outside a project")
	}
}

func TestSafeWriteFile_ReplacesContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "project.json")
	if err := SafeWriteFile(p, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(p, []byte("new")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "new" {
		t.Fatalf("unexpected content %q (%v)", b, err)
	}
	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil || len(entries) != 1 {
		t.Fatalf("temp file left behind: %v (%v)", entries, err)
	}
}

func TestUniquePath_AddsSuffix(t *testing.T) {
	dir := t.TempDir()
	first := UniquePath(dir, "refs", ".summary.md")
	if filepath.Base(first) != "refs.summary.md" {
		t.Fatalf("unexpected first path %s", first)
	}
	if err := SafeWriteFile(first, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(UniquePath(dir, "refs", ".summary.md")); got != "refs__2.summary.md" {
		t.Fatalf("unexpected second path %s", got)
	}
}
