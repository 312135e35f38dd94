package analysis

import (
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// TopNStats counts the segment before the first comma of field (the first
// author of "Smith, J. and Lee, K.") and keeps the n most frequent. Blank
// segments are discarded. n <= 0 falls back to DefaultTopN.
func TopNStats(recs []*parser.Record, field string, n int) (*Result, error) {
	kind := KindRanked
	if DefaultKinds().Of(field) == KindAuthor {
		kind = KindAuthor
	}
	return topNStats(recs, field, n, kind)
}

func topNStats(recs []*parser.Record, field string, n int, kind FieldKind) (*Result, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	c := newCounter[string]()
	var all []string
	for _, r := range recs {
		seg := firstSegment(r.Field(field))
		if seg == "" {
			continue
		}
		c.add(seg)
		all = append(all, seg)
	}
	if len(all) == 0 {
		return nil, &AggregationError{Field: field, Reason: "no non-empty values"}
	}
	return stringResult(field, kind, c, n, all), nil
}

// FieldStats counts every distinct non-blank value of field. The entry-type
// pseudo-field reads each record's entry type.
func FieldStats(recs []*parser.Record, field string) (*Result, error) {
	kind := KindCategorical
	if strings.EqualFold(field, parser.EntryTypeField) {
		kind = KindEntryType
	}
	return fieldStats(recs, field, kind)
}

func fieldStats(recs []*parser.Record, field string, kind FieldKind) (*Result, error) {
	c := newCounter[string]()
	var all []string
	for _, r := range recs {
		v := strings.TrimSpace(r.Field(field))
		if v == "" {
			continue
		}
		c.add(v)
		all = append(all, v)
	}
	if len(all) == 0 {
		return nil, &AggregationError{Field: field, Reason: "no non-empty values"}
	}
	return stringResult(field, kind, c, 0, all), nil
}

func stringResult(field string, kind FieldKind, c *counter[string], n int, all []string) *Result {
	top := c.mostCommon(n)
	res := &Result{
		Field:                 field,
		Kind:                  kind,
		Count:                 len(all),
		Frequencies:           make([]Frequency, len(top)),
		Mode:                  &Mode{Value: top[0].key, Count: top[0].count},
		LexicographicMidpoint: lexicographicMidpoint(all),
	}
	for i, t := range top {
		res.Frequencies[i] = Frequency{Value: t.key, Count: t.count}
	}
	return res
}
