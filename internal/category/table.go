// Package category loads category/synonym tables and counts synonym
// occurrences in free-text record fields.
package category

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// Column headers of a category table.
const (
	CategoryColumn = "Categoria"
	VariableColumn = "Variable"
)

// CompositeSeparator splits a composite synonym into its components and
// joins them back into a synonym label.
const CompositeSeparator = " - "

// ErrInvalidTable is returned for tables without the expected header or
// with an unsupported extension.
var ErrInvalidTable = errors.New("invalid category table")

// SynonymGroup is one or more phrases counted under a single label.
type SynonymGroup struct {
	Components []string `json:"components" yaml:"components"`
}

// Label joins the components with CompositeSeparator.
func (g SynonymGroup) Label() string { return strings.Join(g.Components, CompositeSeparator) }

// Category is a named theme and its synonym groups in table order.
type Category struct {
	Name   string         `json:"name" yaml:"name"`
	Groups []SynonymGroup `json:"groups" yaml:"groups"`
}

// Table holds categories in first-seen order.
type Table struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// Names lists category names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		out[i] = c.Name
	}
	return out
}

// Reader loads the raw rows of a tabular file.
type Reader interface {
	CanRead(filename string) bool
	ReadRows(path string) ([][]string, error)
}

var readers []Reader

// RegisterReader adds a table reader to the registry.
func RegisterReader(r Reader) {
	readers = append(readers, r)
}

func init() {
	RegisterReader(csvReader{})
	RegisterReader(xlsxReader{})
}

// LoadTable reads a category table from path, choosing a reader by file
// extension.
func LoadTable(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &parser.FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("stat category table: %w", err)
	}
	for _, r := range readers {
		if !r.CanRead(path) {
			continue
		}
		rows, err := r.ReadRows(path)
		if err != nil {
			return nil, err
		}
		return FromRows(rows)
	}
	return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidTable, filepath.Ext(path))
}

// FromRows builds a table from a header row followed by data rows.
// Composite synonyms are split on CompositeSeparator; rows without a
// category or any component are skipped.
func FromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidTable)
	}
	catIdx, varIdx := -1, -1
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, CategoryColumn):
			catIdx = i
		case strings.EqualFold(h, VariableColumn):
			varIdx = i
		}
	}
	if catIdx < 0 || varIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain %q and %q", ErrInvalidTable, CategoryColumn, VariableColumn)
	}

	t := &Table{}
	index := make(map[string]int)
	for _, row := range rows[1:] {
		if catIdx >= len(row) || varIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[catIdx])
		group := splitComposite(row[varIdx])
		if name == "" || len(group.Components) == 0 {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(t.Categories)
			index[name] = i
			t.Categories = append(t.Categories, Category{Name: name})
		}
		t.Categories[i].Groups = append(t.Categories[i].Groups, group)
	}
	return t, nil
}

func splitComposite(v string) SynonymGroup {
	var g SynonymGroup
	for _, part := range strings.Split(strings.TrimSpace(v), CompositeSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			g.Components = append(g.Components, part)
		}
	}
	return g
}

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) ReadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open category table: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)
	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read category table: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// ReadRows reads the first sheet of the workbook.
func (xlsxReader) ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open category workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidTable)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
