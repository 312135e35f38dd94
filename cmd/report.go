package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/category"
	"github.com/KaramelBytes/bibloom-cli/internal/corpus"
	"github.com/spf13/cobra"
)

var (
	repProject string
	repFields  []string
	repFormat  string
	repOutput  string
)

var defaultReportFields = []string{"year", "author", "journal", "publisher", "ENTRYTYPE"}

// projectReport is the structured form of a full report.
type projectReport struct {
	Project    string                  `json:"project" yaml:"project"`
	Records    int                     `json:"records" yaml:"records"`
	Fields     []analysis.FieldSummary `json:"fields" yaml:"fields"`
	Categories *category.Counts        `json:"categories,omitempty" yaml:"categories,omitempty"`
	Journals   []analysis.JournalRank  `json:"journals,omitempty" yaml:"journals,omitempty"`
}

func (r *projectReport) Markdown(name string) string {
	var b strings.Builder
	b.WriteString(analysis.SummaryMarkdown(name, r.Records, r.Fields))
	if r.Categories != nil {
		b.WriteString("\n")
		b.WriteString(r.Categories.Markdown())
	}
	if len(r.Journals) > 0 {
		b.WriteString("\n")
		b.WriteString(analysis.JournalsMarkdown(r.Journals))
	}
	return b.String()
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the full statistics report of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(repFormat)
		if err != nil {
			return err
		}
		p, err := loadProject(repProject)
		if err != nil {
			return err
		}
		bib := p.Bibliography()
		if bib == nil {
			return fmt.Errorf("project %s has no bibliography; use 'bibloom add -p %s <file.bib>'", p.Name, p.Name)
		}
		src := corpus.Sources{
			Bibliography:  bib.Path,
			AbstractField: configuredAbstractField(),
			SortField:     p.SortField,
			Journals:      journalOptions(0, 0),
		}
		if c := p.Categories(); c != nil {
			src.Categories = c.Path
		}
		if src.SortField == "" {
			src.SortField = configuredSortField()
		}

		ctx, err := corpus.Load(cmd.Context(), src)
		if err != nil {
			return err
		}
		fields := trimAll(repFields)
		if len(fields) == 0 {
			fields = defaultReportFields
		}
		summary, err := ctx.Summarize(cmd.Context(), newEngine(0), fields)
		if err != nil {
			return err
		}
		rep := &projectReport{
			Project:    p.Name,
			Records:    ctx.Len(),
			Fields:     summary,
			Categories: ctx.Counts(),
			Journals:   ctx.Journals(),
		}
		data, err := render(format, rep, func() string { return rep.Markdown(ctx.Name()) })
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), repOutput, data)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repProject, "project", "p", "", "project name (default: the project enclosing the working directory)")
	reportCmd.Flags().StringSliceVar(&repFields, "fields", nil, "fields to summarize (default year,author,journal,publisher,ENTRYTYPE)")
	reportCmd.Flags().StringVar(&repFormat, "format", "", "output format: markdown|json|yaml|html (default from config)")
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "optional path to write the report")
}
