package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Markdown renders the result in the bracketed-section report style.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[FIELD STATISTICS: %s]\n", safeVal(r.Field)))
	b.WriteString(fmt.Sprintf("Kind: %s\n", r.Kind))
	b.WriteString(fmt.Sprintf("Count: %d\n", r.Count))
	if r.Mode != nil {
		b.WriteString(fmt.Sprintf("Mode: %s (%d)\n", safeVal(r.Mode.Value), r.Mode.Count))
	}
	if r.Median != nil {
		b.WriteString(fmt.Sprintf("Median: %s\n", formatNumber(*r.Median)))
	}
	if r.LexicographicMidpoint != "" {
		b.WriteString(fmt.Sprintf("Lexicographic midpoint: %s\n", safeVal(r.LexicographicMidpoint)))
	}
	if n := r.Numeric; n != nil {
		b.WriteString(fmt.Sprintf("Min: %s, Max: %s, Range: %s\n", formatNumber(n.Min), formatNumber(n.Max), formatNumber(n.Range)))
		b.WriteString(fmt.Sprintf("Mean: %.4g, Std: %.4g, Variance: %.4g\n", n.Mean, n.StdDev, n.Variance))
	}
	if len(r.Frequencies) > 0 {
		b.WriteString("\n| Value | Count |\n| --- | --- |\n")
		for _, f := range r.Frequencies {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", safeVal(f.Value), f.Count))
		}
	}
	return b.String()
}

// SummaryMarkdown renders a Summarize run, one section per field.
func SummaryMarkdown(name string, total int, fields []FieldSummary) string {
	var b strings.Builder
	b.WriteString("[BIBLIOGRAPHY SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	b.WriteString(fmt.Sprintf("Records: %d\n", total))
	var notes []string
	for _, f := range fields {
		if f.Result == nil {
			notes = append(notes, fmt.Sprintf("%s: %s", f.Field, f.Err))
			continue
		}
		b.WriteString("\n")
		b.WriteString(f.Result.Markdown())
	}
	if len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// JournalsMarkdown renders a journal ranking.
func JournalsMarkdown(ranks []JournalRank) string {
	var b strings.Builder
	b.WriteString("[TOP JOURNALS]\n")
	for i, j := range ranks {
		b.WriteString(fmt.Sprintf("%d. %s (articles %d, citations %d)\n", i+1, safeVal(j.Journal), j.Articles, j.Citations))
		if len(j.Countries) > 0 {
			b.WriteString(fmt.Sprintf("   countries: %s\n", strings.Join(j.Countries, ", ")))
		}
		for _, a := range j.Top {
			b.WriteString(fmt.Sprintf("   • %s: %s (%d)\n", a.Key, safeVal(truncate(a.Title, 80)), a.Citations))
		}
	}
	return b.String()
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
