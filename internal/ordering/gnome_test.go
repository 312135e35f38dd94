package ordering_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/bibloom-cli/internal/ordering"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

func rec(key, year string) *parser.Record {
	return &parser.Record{Key: key, OrderField: "year", OrderValue: year, Raw: key}
}

func keys(recs []*parser.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key
	}
	return out
}

func TestGnomeSort_Ints(t *testing.T) {
	s := []int{5, 2, 9, 1, 5, 6}
	swaps := ordering.GnomeSort(s, func(a, b int) int { return a - b })
	assert.Equal(t, []int{1, 2, 5, 5, 6, 9}, s)
	assert.Positive(t, swaps)
}

func TestGnomeSort_Empty(t *testing.T) {
	assert.Zero(t, ordering.GnomeSort([]int{}, func(a, b int) int { return a - b }))
	assert.Zero(t, ordering.GnomeSort([]int{7}, func(a, b int) int { return a - b }))
}

func TestSortRecords_YearThenKey(t *testing.T) {
	recs := []*parser.Record{rec("c", "2021"), rec("b", "2019"), rec("a", "2021"), rec("d", "2020")}
	ordering.SortRecords(recs, "year")
	assert.Equal(t, []string{"b", "d", "a", "c"}, keys(recs))
	assert.True(t, ordering.IsSorted(recs, "year"))
}

func TestSortRecords_NumericNotLexicographic(t *testing.T) {
	recs := []*parser.Record{rec("x", "10"), rec("y", "9"), rec("z", "n.d.")}
	ordering.SortRecords(recs, "year")
	assert.Equal(t, []string{"y", "x", "z"}, keys(recs))
}

func TestSortRecords_Stable(t *testing.T) {
	first := &parser.Record{Key: "same", OrderField: "year", OrderValue: "2020", Raw: "first"}
	second := &parser.Record{Key: "same", OrderField: "year", OrderValue: "2020", Raw: "second"}
	recs := []*parser.Record{first, rec("a", "2019"), second}
	ordering.SortRecords(recs, "year")
	require.Len(t, recs, 3)
	assert.Equal(t, "a", recs[0].Key)
	assert.Same(t, first, recs[1])
	assert.Same(t, second, recs[2])
}

func TestSortRecords_IdempotentOnSortedInput(t *testing.T) {
	recs := []*parser.Record{rec("a", "2018"), rec("b", "2019"), rec("c", "2019"), rec("d", "2024")}
	assert.Zero(t, ordering.SortRecords(recs, "year"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(recs))
}

func TestSortRecords_RandomizedAdjacentPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	years := []string{"2018", "2019", "2020", "2021", "", "in press"}
	for round := 0; round < 20; round++ {
		recs := make([]*parser.Record, 30)
		for i := range recs {
			recs[i] = rec(string(rune('a'+rng.Intn(26))), years[rng.Intn(len(years))])
		}
		ordering.SortRecords(recs, "year")
		cmp := ordering.ByField("year")
		for i := 1; i < len(recs); i++ {
			require.GreaterOrEqual(t, cmp(recs[i], recs[i-1]), 0)
		}
		assert.Zero(t, ordering.SortRecords(recs, "year"))
	}
}

func TestSortRecords_FullFieldMap(t *testing.T) {
	recs := []*parser.Record{
		{Key: "k2", Fields: map[string]string{"title": "Beta"}},
		{Key: "k1", Fields: map[string]string{"title": "Alpha"}},
		{Key: "k0", Fields: map[string]string{}},
	}
	ordering.SortRecords(recs, "title")
	assert.Equal(t, []string{"k0", "k1", "k2"}, keys(recs))
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, -1, ordering.CompareValues("9", "10"))
	assert.Equal(t, 1, ordering.CompareValues("abc", "10"))
	assert.Equal(t, -1, ordering.CompareValues("10", "abc"))
	assert.Equal(t, 0, ordering.CompareValues("alpha", "alpha"))
	assert.Equal(t, -1, ordering.CompareValues("2020", "2020.0"))
	assert.Equal(t, 1, ordering.CompareValues("NaN", "3"))
}
