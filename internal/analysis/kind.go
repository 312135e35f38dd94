package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// YearField is the publication-year field; its values are cleaned of
// non-digit characters before numeric coercion.
const YearField = "year"

// FieldKind selects the aggregation strategy for a field.
type FieldKind int

const (
	// KindCategorical counts full values (e.g. source).
	KindCategorical FieldKind = iota
	// KindNumeric coerces values to numbers (e.g. year).
	KindNumeric
	// KindAuthor counts the segment before the first comma and truncates
	// the same way inside field pairs.
	KindAuthor
	// KindRanked counts the segment before the first comma and reports
	// the top N (e.g. journal, publisher).
	KindRanked
	// KindEntryType reads the record's entry type.
	KindEntryType
)

var kindNames = map[FieldKind]string{
	KindCategorical: "categorical",
	KindNumeric:     "numeric",
	KindAuthor:      "author",
	KindRanked:      "ranked",
	KindEntryType:   "entry_type",
}

func (k FieldKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders the kind name in JSON and YAML output.
func (k FieldKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Kinds maps field names to their FieldKind.
type Kinds struct {
	numeric map[string]struct{}
	author  map[string]struct{}
	ranked  map[string]struct{}
}

// NewKinds builds a classifier from field name lists. Names are case-folded.
func NewKinds(numeric, author, ranked []string) Kinds {
	return Kinds{numeric: nameSet(numeric), author: nameSet(author), ranked: nameSet(ranked)}
}

// DefaultKinds classifies year as numeric, author as author, and journal and
// publisher as ranked.
func DefaultKinds() Kinds {
	return NewKinds([]string{YearField}, []string{"author"}, []string{"journal", "publisher"})
}

func nameSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

// Of returns the kind of field.
func (k Kinds) Of(field string) FieldKind {
	if strings.EqualFold(field, parser.EntryTypeField) {
		return KindEntryType
	}
	name := strings.ToLower(strings.TrimSpace(field))
	if _, ok := k.numeric[name]; ok {
		return KindNumeric
	}
	if _, ok := k.author[name]; ok {
		return KindAuthor
	}
	if _, ok := k.ranked[name]; ok {
		return KindRanked
	}
	return KindCategorical
}

// pairValue extracts a record's value for one side of a field pair.
func (k Kinds) pairValue(r *parser.Record, field string) string {
	v := strings.TrimSpace(r.Field(field))
	if k.Of(field) == KindAuthor {
		return firstSegment(v)
	}
	return v
}

// firstSegment returns the trimmed text before the first comma.
func firstSegment(v string) string {
	head, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(head)
}
