// Package ordering reorders parsed records by a designated field.
package ordering

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// GnomeSort sorts s in place using cmp and returns the number of swaps.
// Elements are only swapped when cmp reports strictly less, so equal
// elements keep their input order.
func GnomeSort[T any](s []T, cmp func(a, b T) int) int {
	swaps := 0
	i := 0
	for i < len(s) {
		if i == 0 || cmp(s[i], s[i-1]) >= 0 {
			i++
			continue
		}
		s[i], s[i-1] = s[i-1], s[i]
		swaps++
		i--
	}
	return swaps
}

// CompareValues orders two field values. Values that parse as numbers sort
// before those that don't and compare numerically; the rest compare as
// strings.
func CompareValues(a, b string) int {
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	switch {
	case aNum && bNum:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return strings.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

func numeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// OrderValue returns the value a record is ordered by for field.
func OrderValue(r *parser.Record, field string) string {
	return strings.TrimSpace(r.Field(field))
}

// ByField builds a three-way comparator on field with the citation key as
// tie-break.
func ByField(field string) func(a, b *parser.Record) int {
	return func(a, b *parser.Record) int {
		if c := CompareValues(OrderValue(a, field), OrderValue(b, field)); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	}
}

// SortRecords gnome-sorts recs by field and returns the swap count.
func SortRecords(recs []*parser.Record, field string) int {
	return GnomeSort(recs, ByField(field))
}

// IsSorted reports whether every adjacent pair is in order for field.
func IsSorted(recs []*parser.Record, field string) bool {
	cmp := ByField(field)
	for i := 1; i < len(recs); i++ {
		if cmp(recs[i], recs[i-1]) < 0 {
			return false
		}
	}
	return true
}
