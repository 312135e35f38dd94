package analysis

import (
	"sort"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// PairSeparator joins the two sides of a joint-statistics label.
const PairSeparator = " - "

type pair struct{ a, b string }

func (p pair) label() string { return p.a + PairSeparator + p.b }

// JointStats counts co-occurring values of two fields and keeps the n most
// frequent pairs. Author fields are truncated to the first author and the
// entry-type pseudo-field reads the entry type. Pairs with a blank side are
// discarded. n <= 0 falls back to DefaultTopN.
func JointStats(recs []*parser.Record, fieldA, fieldB string, n int) (*Result, error) {
	return jointStats(recs, fieldA, fieldB, n, DefaultKinds())
}

func jointStats(recs []*parser.Record, fieldA, fieldB string, n int, kinds Kinds) (*Result, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	c := newCounter[pair]()
	total := 0
	for _, r := range recs {
		p := pair{a: kinds.pairValue(r, fieldA), b: kinds.pairValue(r, fieldB)}
		if p.a == "" || p.b == "" {
			continue
		}
		c.add(p)
		total++
	}
	label := fieldA + PairSeparator + fieldB
	if total == 0 {
		return nil, &AggregationError{Field: label, Reason: "no complete value pairs"}
	}

	top := c.mostCommon(n)
	res := &Result{
		Field:       label,
		Kind:        KindCategorical,
		Count:       total,
		Frequencies: make([]Frequency, len(top)),
		Mode:        &Mode{Value: top[0].key.label(), Count: top[0].count},
	}
	for i, t := range top {
		res.Frequencies[i] = Frequency{Value: t.key.label(), Count: t.count}
	}

	distinct := append([]pair(nil), c.order...)
	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].a != distinct[j].a {
			return distinct[i].a < distinct[j].a
		}
		return distinct[i].b < distinct[j].b
	})
	res.LexicographicMidpoint = distinct[len(distinct)/2].label()
	return res, nil
}
