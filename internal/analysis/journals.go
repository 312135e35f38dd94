package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// Defaults for RankJournals.
const (
	DefaultJournalLimit = 10
	DefaultPerJournal   = 15
)

var citedByPattern = regexp.MustCompile(`(?i)cited by:\s*(\d+)`)

// JournalOptions bounds the journal ranking.
type JournalOptions struct {
	Limit      int
	PerJournal int
}

// Article is one ranked article of a journal.
type Article struct {
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Citations int    `json:"citations" yaml:"citations"`
	Country   string `json:"country,omitempty" yaml:"country,omitempty"`
}

// JournalRank summarizes one journal.
type JournalRank struct {
	Journal   string    `json:"journal" yaml:"journal"`
	Articles  int       `json:"articles" yaml:"articles"`
	Citations int       `json:"citations" yaml:"citations"`
	Top       []Article `json:"top_articles" yaml:"top_articles"`
	Countries []string  `json:"countries" yaml:"countries"`
}

// Citations extracts the "Cited by: N" count from a record's note field.
// Records without one count as zero.
func Citations(r *parser.Record) int {
	m := citedByPattern.FindStringSubmatch(r.Field("note"))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func journalOf(r *parser.Record) string {
	if j := strings.TrimSpace(r.Field("journal")); j != "" {
		return j
	}
	return strings.TrimSpace(r.Field("issn"))
}

// RankJournals groups records by journal (ISSN when the journal is blank),
// keeps the Limit journals with the most articles and, for each, its
// PerJournal most cited articles with the first-author countries behind
// them.
func RankJournals(recs []*parser.Record, opt JournalOptions) ([]JournalRank, error) {
	if opt.Limit <= 0 {
		opt.Limit = DefaultJournalLimit
	}
	if opt.PerJournal <= 0 {
		opt.PerJournal = DefaultPerJournal
	}

	c := newCounter[string]()
	byJournal := make(map[string][]*parser.Record)
	for _, r := range recs {
		j := journalOf(r)
		if j == "" {
			continue
		}
		c.add(j)
		byJournal[j] = append(byJournal[j], r)
	}
	if len(byJournal) == 0 {
		return nil, &AggregationError{Field: "journal", Reason: "no journal or issn values"}
	}

	top := c.mostCommon(opt.Limit)
	out := make([]JournalRank, 0, len(top))
	for _, t := range top {
		rank := JournalRank{Journal: t.key, Articles: t.count}
		articles := make([]Article, 0, len(byJournal[t.key]))
		for _, r := range byJournal[t.key] {
			a := Article{
				Key:       r.Key,
				Title:     strings.TrimSpace(r.Field("title")),
				Citations: Citations(r),
				Country:   strings.TrimSpace(r.Field("first_author_country")),
			}
			rank.Citations += a.Citations
			articles = append(articles, a)
		}
		sort.SliceStable(articles, func(i, j int) bool { return articles[i].Citations > articles[j].Citations })
		if len(articles) > opt.PerJournal {
			articles = articles[:opt.PerJournal]
		}
		rank.Top = articles

		seen := make(map[string]struct{})
		for _, a := range articles {
			if a.Country == "" {
				continue
			}
			if _, ok := seen[a.Country]; ok {
				continue
			}
			seen[a.Country] = struct{}{}
			rank.Countries = append(rank.Countries, a.Country)
		}
		sort.Strings(rank.Countries)
		out = append(out, rank)
	}
	return out, nil
}
