package category

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// DefaultField is the free-text field searched for synonyms.
const DefaultField = "abstract"

// SynonymCount is the occurrence count of one synonym group.
type SynonymCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryCount is the total of a category and its per-synonym breakdown,
// both in table order.
type CategoryCount struct {
	Name     string         `json:"name" yaml:"name"`
	Total    int            `json:"total" yaml:"total"`
	Synonyms []SynonymCount `json:"synonyms" yaml:"synonyms"`
}

// Counts is the result of Count. Every category and synonym of the table
// is present, including those that never occur.
type Counts struct {
	Field      string          `json:"field" yaml:"field"`
	Records    int             `json:"records" yaml:"records"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
}

// Totals maps category name to total count.
func (c *Counts) Totals() map[string]int {
	out := make(map[string]int, len(c.Categories))
	for _, cat := range c.Categories {
		out[cat.Name] = cat.Total
	}
	return out
}

// BySynonym maps category name to synonym label to count.
func (c *Counts) BySynonym() map[string]map[string]int {
	out := make(map[string]map[string]int, len(c.Categories))
	for _, cat := range c.Categories {
		m := make(map[string]int, len(cat.Synonyms))
		for _, s := range cat.Synonyms {
			m[s.Label] = s.Count
		}
		out[cat.Name] = m
	}
	return out
}

// Weights maps synonym labels with a positive count to their occurrence
// count. A label listed under several categories is counted once. Word-cloud
// renderers take this as input.
func (c *Counts) Weights() map[string]int {
	out := make(map[string]int)
	for _, cat := range c.Categories {
		for _, s := range cat.Synonyms {
			if s.Count > 0 {
				out[s.Label] = max(out[s.Label], s.Count)
			}
		}
	}
	return out
}

type compiledGroup struct {
	slot   int
	phrase [][]string
}

// Count tallies case-insensitive, word-bounded occurrences of every synonym
// group of table inside field. Multi-word components match as token
// sequences. Records with a blank field are ignored.
func Count(recs []*parser.Record, table *Table, field string) *Counts {
	if field == "" {
		field = DefaultField
	}
	out := &Counts{Field: field, Categories: make([]CategoryCount, len(table.Categories))}
	groups := make([][]compiledGroup, len(table.Categories))
	for i, cat := range table.Categories {
		out.Categories[i] = CategoryCount{Name: cat.Name, Synonyms: []SynonymCount{}}
		slots := make(map[string]int)
		for _, g := range cat.Groups {
			label := g.Label()
			slot, ok := slots[label]
			if !ok {
				slot = len(out.Categories[i].Synonyms)
				slots[label] = slot
				out.Categories[i].Synonyms = append(out.Categories[i].Synonyms, SynonymCount{Label: label})
			}
			cg := compiledGroup{slot: slot}
			for _, comp := range g.Components {
				cg.phrase = append(cg.phrase, Tokenize(comp))
			}
			groups[i] = append(groups[i], cg)
		}
	}

	for _, r := range recs {
		text := strings.TrimSpace(r.Field(field))
		if text == "" {
			continue
		}
		out.Records++
		tokens := Tokenize(text)
		for i := range groups {
			for _, g := range groups[i] {
				n := 0
				for _, p := range g.phrase {
					n += countPhrase(tokens, p)
				}
				out.Categories[i].Synonyms[g.slot].Count += n
				out.Categories[i].Total += n
			}
		}
	}
	return out
}

// Markdown renders category totals followed by the synonym breakdown.
func (c *Counts) Markdown() string {
	var b strings.Builder
	b.WriteString("[CATEGORY FREQUENCIES]\n")
	b.WriteString(fmt.Sprintf("Field: %s\n", c.Field))
	b.WriteString(fmt.Sprintf("Records with text: %d\n\n", c.Records))
	b.WriteString("| Category | Count |\n| --- | --- |\n")
	for _, cat := range c.Categories {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", cat.Name, cat.Total))
	}
	b.WriteString("\n[SYNONYM FREQUENCIES]\n")
	for _, cat := range c.Categories {
		b.WriteString(fmt.Sprintf("- %s\n", cat.Name))
		for _, s := range cat.Synonyms {
			b.WriteString(fmt.Sprintf("  • %s: %d\n", s.Label, s.Count))
		}
	}
	return b.String()
}
