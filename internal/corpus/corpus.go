// Package corpus performs the one-time initialization of a bibliography:
// parsing, ordering, category counting and journal ranking. The resulting
// Context is read-only and safe to share between goroutines.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/category"
	"github.com/KaramelBytes/bibloom-cli/internal/ordering"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// Sources names the inputs of a corpus.
type Sources struct {
	Bibliography string
	// Categories is optional; without it no category counts are computed.
	Categories    string
	AbstractField string
	// SortField orders the records when set.
	SortField string
	Journals  analysis.JournalOptions
	Logger    *slog.Logger
}

// Context is an initialized corpus.
type Context struct {
	name     string
	records  []*parser.Record
	table    *category.Table
	counts   *category.Counts
	journals []analysis.JournalRank
}

// Load parses and precomputes everything a report needs.
func Load(ctx context.Context, src Sources) (*Context, error) {
	log := src.Logger
	if log == nil {
		log = slog.Default()
	}
	recs, err := parser.ParseFile(src.Bibliography, parser.Options{})
	if err != nil {
		return nil, err
	}
	log.Debug("bibliography parsed", "path", src.Bibliography, "records", len(recs))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &Context{name: filepath.Base(src.Bibliography), records: recs}
	if src.SortField != "" {
		swaps := ordering.SortRecords(c.records, src.SortField)
		log.Debug("records sorted", "field", src.SortField, "swaps", swaps)
	}

	if src.Categories != "" {
		tbl, err := category.LoadTable(src.Categories)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		c.table = tbl
		c.counts = category.Count(c.records, tbl, src.AbstractField)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	ranks, err := analysis.RankJournals(c.records, src.Journals)
	switch {
	case errors.Is(err, analysis.ErrNoData):
		log.Debug("journal ranking skipped", "error", err)
	case err != nil:
		return nil, err
	default:
		c.journals = ranks
	}
	return c, nil
}

// Name is the base name of the bibliography file.
func (c *Context) Name() string { return c.name }

// Records returns a copy of the record sequence. The records themselves
// must not be modified.
func (c *Context) Records() []*parser.Record {
	return append([]*parser.Record(nil), c.records...)
}

// Len is the number of records.
func (c *Context) Len() int { return len(c.records) }

// Table is the category table, or nil when none was loaded.
func (c *Context) Table() *category.Table { return c.table }

// Counts are the precomputed category counts, or nil without a table.
func (c *Context) Counts() *category.Counts { return c.counts }

// Journals is the precomputed journal ranking, empty when no record names a
// journal.
func (c *Context) Journals() []analysis.JournalRank { return c.journals }

// Summarize computes field statistics over the corpus.
func (c *Context) Summarize(ctx context.Context, e *analysis.Engine, fields []string) ([]analysis.FieldSummary, error) {
	return e.Summarize(ctx, c.Records(), fields)
}
