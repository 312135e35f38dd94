package analysis

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// Engine dispatches statistics by field kind.
type Engine struct {
	Kinds  Kinds
	TopN   int
	Logger *slog.Logger
}

// NewEngine returns an engine with the default field kinds.
func NewEngine() *Engine {
	return &Engine{Kinds: DefaultKinds(), TopN: DefaultTopN}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Compute runs the statistics matching field's kind.
func (e *Engine) Compute(recs []*parser.Record, field string) (*Result, error) {
	switch kind := e.Kinds.Of(field); kind {
	case KindNumeric:
		return numericStats(recs, field, e.logger())
	case KindAuthor, KindRanked:
		return topNStats(recs, field, e.TopN, kind)
	default:
		return fieldStats(recs, field, kind)
	}
}

// ComputePair runs joint statistics over two fields.
func (e *Engine) ComputePair(recs []*parser.Record, fieldA, fieldB string) (*Result, error) {
	return jointStats(recs, fieldA, fieldB, e.TopN, e.Kinds)
}

// Normalize cleans year order values of restricted records. Call it before
// sharing recs across goroutines.
func (e *Engine) Normalize(recs []*parser.Record) {
	if e.Kinds.Of(YearField) == KindNumeric {
		NormalizeYears(recs)
	}
}

// FieldSummary is one field of a Summarize run. Err is set instead of
// Result when the field had no usable data.
type FieldSummary struct {
	Field  string  `json:"field" yaml:"field"`
	Result *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summarize computes every field concurrently. Per-field failures are
// recorded in the summary; only cancellation of ctx returns an error.
func (e *Engine) Summarize(ctx context.Context, recs []*parser.Record, fields []string) ([]FieldSummary, error) {
	e.Normalize(recs)
	out := make([]FieldSummary, len(fields))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range fields {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = FieldSummary{Field: f}
			res, err := e.Compute(recs, f)
			if err != nil {
				e.logger().Debug("field statistics unavailable", "field", f, "error", err)
				out[i].Err = err.Error()
				return nil
			}
			out[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
