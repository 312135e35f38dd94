package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/KaramelBytes/bibloom-cli/internal/project"
)

func TestAddSourcesAndReload(t *testing.T) {
	tdir := t.TempDir()
	bib := filepath.Join(tdir, "refs.bib")
	cats := filepath.Join(tdir, "Categorias.csv")
	if err := os.WriteFile(bib, []byte("@article{a,\n  year = {2020}\n}\n@book{b,\n  year = {2019}\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cats, []byte("Categoria,Variable\nSecurity,access control\nPrivacy,anonymity\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	proj := project.NewProject("review", "", filepath.Join(tdir, "proj"))
	proj.SetSortField(" year ")
	s, err := proj.AddSource(bib, "scopus export")
	if err != nil {
		t.Fatalf("add bib: %v", err)
	}
	if s.Kind != project.KindBibliography || s.Entries != 2 {
		t.Fatalf("unexpected bib source: %+v", s)
	}
	if _, err := proj.AddSource(cats, ""); err != nil {
		t.Fatalf("add categories: %v", err)
	}
	if err := proj.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := project.LoadProject(proj.RootDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.SortField != "year" {
		t.Fatalf("sort field = %q", loaded.SortField)
	}
	if b := loaded.Bibliography(); b == nil || b.Name != "refs.bib" {
		t.Fatalf("bibliography not persisted: %+v", b)
	}
	if c := loaded.Categories(); c == nil || c.Entries != 2 {
		t.Fatalf("categories not persisted: %+v", c)
	}
}

func TestAddSourceReplacesSameKind(t *testing.T) {
	tdir := t.TempDir()
	first := filepath.Join(tdir, "a.bib")
	second := filepath.Join(tdir, "b.bib")
	for _, p := range []string{first, second} {
		if err := os.WriteFile(p, []byte("@misc{k,\n}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	proj := project.NewProject("p", "", tdir)
	if _, err := proj.AddSource(first, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := proj.AddSource(second, ""); err != nil {
		t.Fatal(err)
	}
	if len(proj.Sources) != 1 || proj.Bibliography().Name != "b.bib" {
		t.Fatalf("expected only b.bib, got %+v", proj.Sources)
	}
}

func TestAddSourceErrors(t *testing.T) {
	tdir := t.TempDir()
	proj := project.NewProject("p", "", tdir)
	if _, err := proj.AddSource(filepath.Join(tdir, "notes.txt"), ""); err == nil {
		t.Fatal("expected unsupported type error")
	}
	_, err := proj.AddSource(filepath.Join(tdir, "missing.bib"), "")
	if !parser.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
