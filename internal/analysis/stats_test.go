package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

func withField(key, field, value string) *parser.Record {
	return &parser.Record{Key: key, EntryType: "article", Fields: map[string]string{field: value}}
}

func years(vs ...string) []*parser.Record {
	out := make([]*parser.Record, len(vs))
	for i, v := range vs {
		out[i] = withField(string(rune('a'+i)), "year", v)
	}
	return out
}

func TestNumericStats_Years(t *testing.T) {
	res, err := analysis.NumericStats(years("2020", "2021", "2021", "2019"), "year")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindNumeric, res.Kind)
	assert.Equal(t, 4, res.Count)
	require.NotNil(t, res.Mode)
	assert.Equal(t, "2021", res.Mode.Value)
	assert.Equal(t, 2, res.Mode.Count)
	require.NotNil(t, res.Median)
	assert.InDelta(t, 2020.5, *res.Median, 1e-9)
	require.NotNil(t, res.Numeric)
	assert.Equal(t, 2019.0, res.Numeric.Min)
	assert.Equal(t, 2021.0, res.Numeric.Max)
	assert.Equal(t, 2.0, res.Numeric.Range)
	assert.Equal(t, []analysis.Frequency{{"2019", 1}, {"2020", 1}, {"2021", 2}}, res.Frequencies)
}

func TestNumericStats_CleansYearsAndSkipsInvalid(t *testing.T) {
	res, err := analysis.NumericStats(years("c2020", "2021?", "n.d.", ""), "year")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, map[string]int{"2020": 1, "2021": 1}, res.FrequencyMap())
}

func TestNumericStats_FloatCoercion(t *testing.T) {
	recs := []*parser.Record{withField("a", "volume", "1.5"), withField("b", "volume", "3"), withField("c", "volume", "x")}
	res, err := analysis.NumericStats(recs, "volume")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.InDelta(t, 2.25, *res.Median, 1e-9)
	assert.InDelta(t, 1.125, res.Numeric.Variance, 1e-9)
}

func TestNumericStats_NoData(t *testing.T) {
	_, err := analysis.NumericStats(nil, "year")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analysis.ErrNoData))

	_, err = analysis.NumericStats(years("", "unknown"), "year")
	var aggErr *analysis.AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "year", aggErr.Field)
}

func TestNumericStats_RestrictedYearNormalizedOnce(t *testing.T) {
	r := &parser.Record{Key: "k", OrderField: "year", OrderValue: "[2019]"}
	_, err := analysis.NumericStats([]*parser.Record{r}, "year")
	require.NoError(t, err)
	assert.Equal(t, "2019", r.OrderValue)
	analysis.NormalizeYears([]*parser.Record{r})
	assert.Equal(t, "2019", r.OrderValue)
}

func TestTopNStats_FirstAuthor(t *testing.T) {
	recs := []*parser.Record{
		withField("a", "author", "Smith, J."),
		withField("b", "author", "Smith, A."),
		withField("c", "author", "Lee, K."),
		withField("d", "author", "  "),
	}
	res, err := analysis.TopNStats(recs, "author", 15)
	require.NoError(t, err)
	assert.Equal(t, analysis.KindAuthor, res.Kind)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, map[string]int{"Smith": 2, "Lee": 1}, res.FrequencyMap())
	assert.Equal(t, &analysis.Mode{Value: "Smith", Count: 2}, res.Mode)
	assert.Equal(t, "Smith", res.LexicographicMidpoint)
}

func TestTopNStats_Limit(t *testing.T) {
	var recs []*parser.Record
	for i, j := range []string{"A", "B", "B", "C", "C", "C"} {
		recs = append(recs, withField(string(rune('a'+i)), "journal", j))
	}
	res, err := analysis.TopNStats(recs, "journal", 2)
	require.NoError(t, err)
	assert.Equal(t, analysis.KindRanked, res.Kind)
	assert.Equal(t, 6, res.Count)
	assert.Equal(t, []analysis.Frequency{{"C", 3}, {"B", 2}}, res.Frequencies)
}

func TestFieldStats_EntryType(t *testing.T) {
	recs := []*parser.Record{
		{Key: "a", EntryType: "article"},
		{Key: "b", EntryType: "inproceedings"},
		{Key: "c", EntryType: "article"},
	}
	res, err := analysis.FieldStats(recs, "ENTRYTYPE")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindEntryType, res.Kind)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "article", res.Mode.Value)
	assert.Equal(t, "article", res.LexicographicMidpoint)
	assert.Nil(t, res.Median)
	assert.Nil(t, res.Numeric)
}

func TestFieldStats_Empty(t *testing.T) {
	_, err := analysis.FieldStats([]*parser.Record{}, "source")
	assert.ErrorIs(t, err, analysis.ErrNoData)
}

func TestJointStats(t *testing.T) {
	recs := []*parser.Record{
		{Key: "a", EntryType: "article", Fields: map[string]string{"author": "Smith, J. and Lee, K."}},
		{Key: "b", EntryType: "article", Fields: map[string]string{"author": "Smith, A."}},
		{Key: "c", EntryType: "book", Fields: map[string]string{"author": "Lee, K."}},
		{Key: "d", EntryType: "book", Fields: map[string]string{}},
	}
	res, err := analysis.JointStats(recs, "author", "ENTRYTYPE", 0)
	require.NoError(t, err)
	assert.Equal(t, "author - ENTRYTYPE", res.Field)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []analysis.Frequency{{"Smith - article", 2}, {"Lee - book", 1}}, res.Frequencies)
	assert.Equal(t, "Smith - article", res.Mode.Value)
	assert.Equal(t, "Smith - article", res.LexicographicMidpoint)
}

func TestJointStats_NoPairs(t *testing.T) {
	_, err := analysis.JointStats(years("2020"), "author", "year", 5)
	assert.ErrorIs(t, err, analysis.ErrNoData)
}

func TestEngine_DispatchesByKind(t *testing.T) {
	e := analysis.NewEngine()
	e.Kinds = analysis.NewKinds([]string{"year"}, []string{"author"}, []string{"journal"})
	recs := []*parser.Record{
		{Key: "a", Fields: map[string]string{"year": "2020", "author": "Doe, J.", "journal": "IEEE Access, Vol 1", "source": "Scopus"}},
		{Key: "b", Fields: map[string]string{"year": "2022", "author": "Roe, R.", "journal": "IEEE Access", "source": "Scopus"}},
	}

	res, err := e.Compute(recs, "year")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindNumeric, res.Kind)

	res, err = e.Compute(recs, "journal")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"IEEE Access": 2}, res.FrequencyMap())

	res, err = e.Compute(recs, "source")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindCategorical, res.Kind)
	assert.Equal(t, 2, res.Count)
}

func TestEngine_Summarize(t *testing.T) {
	recs := []*parser.Record{
		{Key: "a", EntryType: "article", Fields: map[string]string{"year": "2020", "author": "Doe, J."}},
		{Key: "b", EntryType: "book", Fields: map[string]string{"year": "2021"}},
	}
	out, err := analysis.NewEngine().Summarize(context.Background(), recs, []string{"year", "author", "ENTRYTYPE", "publisher"})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, 2, out[0].Result.Count)
	assert.Equal(t, 1, out[1].Result.Count)
	assert.Equal(t, analysis.KindEntryType, out[2].Result.Kind)
	assert.Nil(t, out[3].Result)
	assert.Contains(t, out[3].Err, "no data")

	md := analysis.SummaryMarkdown("refs.bib", len(recs), out)
	assert.Contains(t, md, "[BIBLIOGRAPHY SUMMARY]")
	assert.Contains(t, md, "[FIELD STATISTICS: year]")
	assert.Contains(t, md, "[NOTES]")
}

func TestEngine_SummarizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analysis.NewEngine().Summarize(ctx, years("2020"), []string{"year"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultMarkdown(t *testing.T) {
	res, err := analysis.NumericStats(years("2020", "2021", "2021", "2019"), "year")
	require.NoError(t, err)
	md := res.Markdown()
	assert.True(t, strings.HasPrefix(md, "[FIELD STATISTICS: year]\n"))
	assert.Contains(t, md, "Median: 2020.5")
	assert.Contains(t, md, "| 2021 | 2 |")
}
