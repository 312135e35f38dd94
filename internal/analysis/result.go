package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultTopN bounds the frequency tables of ranked and paired statistics.
const DefaultTopN = 15

// ErrNoData marks an aggregation that had no usable values.
var ErrNoData = errors.New("no data")

// AggregationError reports a recoverable "no data" condition for one field.
type AggregationError struct {
	Field  string
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("no data for %q: %s", e.Field, e.Reason)
}

func (e *AggregationError) Unwrap() error { return ErrNoData }

// Frequency is one row of a frequency table.
type Frequency struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Mode is the most frequent value and its count.
type Mode struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// NumericExtras holds the spread measures of numeric fields.
type NumericExtras struct {
	Mean     float64 `json:"mean" yaml:"mean"`
	StdDev   float64 `json:"stdev" yaml:"stdev"`
	Variance float64 `json:"variance" yaml:"variance"`
	Range    float64 `json:"range" yaml:"range"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
}

// Result is the uniform output of every statistics operation.
type Result struct {
	Field       string      `json:"field" yaml:"field"`
	Kind        FieldKind   `json:"kind" yaml:"kind"`
	Count       int         `json:"count" yaml:"count"`
	Frequencies []Frequency `json:"frequencies" yaml:"frequencies"`
	Mode        *Mode       `json:"mode,omitempty" yaml:"mode,omitempty"`
	// Median is set for numeric fields only.
	Median *float64 `json:"median,omitempty" yaml:"median,omitempty"`
	// LexicographicMidpoint is the middle element of the sorted value list
	// of a categorical field. It is not a statistical median.
	LexicographicMidpoint string         `json:"lexicographic_midpoint,omitempty" yaml:"lexicographic_midpoint,omitempty"`
	Numeric               *NumericExtras `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

// FrequencyMap returns the frequency table as a map.
func (r *Result) FrequencyMap() map[string]int {
	out := make(map[string]int, len(r.Frequencies))
	for _, f := range r.Frequencies {
		out[f.Value] = f.Count
	}
	return out
}

// counter tallies values and remembers first-seen order.
type counter[K comparable] struct {
	order  []K
	counts map[K]int
}

type tally[K comparable] struct {
	key   K
	count int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

func (c *counter[K]) len() int { return len(c.order) }

// inOrder lists tallies in first-seen order.
func (c *counter[K]) inOrder() []tally[K] {
	out := make([]tally[K], len(c.order))
	for i, k := range c.order {
		out[i] = tally[K]{key: k, count: c.counts[k]}
	}
	return out
}

// mostCommon lists the n largest tallies, count descending, first-seen
// order among ties. n <= 0 returns all.
func (c *counter[K]) mostCommon(n int) []tally[K] {
	out := c.inOrder()
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// lexicographicMidpoint returns the middle element of the sorted values.
func lexicographicMidpoint(values []string) string {
	if len(values) == 0 {
		return ""
	}
	cp := append([]string(nil), values...)
	sort.Strings(cp)
	return cp[len(cp)/2]
}
