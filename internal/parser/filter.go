package parser

import "strings"

// Predicate selects records.
type Predicate func(*Record) bool

// HasField matches records carrying a non-blank value for name.
func HasField(name string) Predicate {
	return func(r *Record) bool {
		return strings.TrimSpace(r.Field(name)) != ""
	}
}

// Filter returns the records matching every predicate, keeping input order.
func Filter(recs []*Record, preds ...Predicate) []*Record {
	out := make([]*Record, 0, len(recs))
next:
	for _, r := range recs {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}
