package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// CleanYear drops every non-digit character from a year value.
func CleanYear(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, v)
}

// NormalizeYears applies CleanYear in place to the order value of records
// parsed with the year as their designated field. Running it twice is a
// no-op.
func NormalizeYears(recs []*parser.Record) {
	for _, r := range recs {
		if !r.Restricted() || r.OrderField != YearField {
			continue
		}
		if c := CleanYear(r.OrderValue); c != r.OrderValue {
			r.OrderValue = c
		}
	}
}

// coerceNumber follows the year-statistics rule: a value containing a
// decimal point is a float, anything else must be an integer.
func coerceNumber(v string) (float64, error) {
	if strings.Contains(v, ".") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("not a finite number: %q", v)
		}
		return f, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NumericStats computes count, median, mode, range, min, max, mean,
// variance and a key-ascending frequency table for a numeric field.
// Values that fail coercion are skipped with a warning.
func NumericStats(recs []*parser.Record, field string) (*Result, error) {
	return numericStats(recs, field, slog.Default())
}

func numericStats(recs []*parser.Record, field string, log *slog.Logger) (*Result, error) {
	isYear := strings.EqualFold(field, YearField)
	values := make([]float64, 0, len(recs))
	c := newCounter[float64]()
	for _, r := range recs {
		raw := strings.TrimSpace(r.Field(field))
		if isYear {
			raw = CleanYear(raw)
			if r.Restricted() && r.OrderField == YearField && r.OrderValue != raw {
				r.OrderValue = raw
			}
		}
		v, err := coerceNumber(raw)
		if err != nil {
			log.Warn("skipping non-numeric value", "field", field, "key", r.Key, "value", raw)
			continue
		}
		values = append(values, v)
		c.add(v)
	}
	if len(values) == 0 {
		return nil, &AggregationError{Field: field, Reason: "no valid numeric values"}
	}

	median, err := stats.Median(values)
	if err != nil {
		return nil, fmt.Errorf("median of %s: %w", field, err)
	}
	lo, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("min of %s: %w", field, err)
	}
	hi, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("max of %s: %w", field, err)
	}
	mean, variance := stat.MeanVariance(values, nil)
	if len(values) < 2 {
		variance = 0
	}

	top := c.mostCommon(1)[0]
	freqs := c.inOrder()
	sort.Slice(freqs, func(i, j int) bool { return freqs[i].key < freqs[j].key })
	res := &Result{
		Field:       field,
		Kind:        KindNumeric,
		Count:       len(values),
		Frequencies: make([]Frequency, len(freqs)),
		Mode:        &Mode{Value: formatNumber(top.key), Count: top.count},
		Median:      &median,
		Numeric: &NumericExtras{
			Mean:     mean,
			StdDev:   math.Sqrt(variance),
			Variance: variance,
			Range:    hi - lo,
			Min:      lo,
			Max:      hi,
		},
	}
	for i, f := range freqs {
		res.Frequencies[i] = Frequency{Value: formatNumber(f.key), Count: f.count}
	}
	return res, nil
}
