package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SourceKind distinguishes project inputs.
type SourceKind string

const (
	KindBibliography SourceKind = "bibliography"
	KindCategories   SourceKind = "categories"
)

// Source holds metadata for a project input file.
type Source struct {
	ID          string     `json:"id"`
	Kind        SourceKind `json:"kind"`
	Path        string     `json:"path"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	// Entries counts records for bibliographies and categories for tables.
	Entries int       `json:"entries"`
	AddedAt time.Time `json:"added_at"`
}

// KindOf infers the source kind from the file extension.
func KindOf(path string) (SourceKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bib", ".bibtex":
		return KindBibliography, nil
	case ".csv", ".tsv", ".xlsx":
		return KindCategories, nil
	}
	return "", fmt.Errorf("unsupported source type: %s", path)
}
