package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	statsFields []string
	statsPair   []string
	statsTopN   int
	statsFormat string
	statsOutput string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file.bib>",
	Short: "Compute field statistics for a bibliography",
	Long: `Compute statistics for one or more fields (--field year --field author) or for a
pair of fields (--pair author,ENTRYTYPE). Use ENTRYTYPE for the entry type.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(statsFields) == 0 && len(statsPair) == 0 {
			return fmt.Errorf("specify --field or --pair")
		}
		if len(statsPair) != 0 && len(statsPair) != 2 {
			return fmt.Errorf("--pair takes exactly two fields, e.g. --pair author,year")
		}
		format, err := resolveFormat(statsFormat)
		if err != nil {
			return err
		}
		recs, err := parser.ParseFile(args[0], parser.Options{})
		if err != nil {
			return err
		}
		engine := newEngine(statsTopN)

		if len(statsPair) == 2 {
			res, err := engine.ComputePair(recs, strings.TrimSpace(statsPair[0]), strings.TrimSpace(statsPair[1]))
			if err != nil {
				return err
			}
			data, err := render(format, res, res.Markdown)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), statsOutput, data)
		}

		if len(statsFields) == 1 {
			res, err := engine.Compute(recs, strings.TrimSpace(statsFields[0]))
			if err != nil {
				return err
			}
			data, err := render(format, res, res.Markdown)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), statsOutput, data)
		}

		summary, err := engine.Summarize(cmd.Context(), recs, trimAll(statsFields))
		if err != nil {
			return err
		}
		name := filepath.Base(args[0])
		data, err := render(format, summary, func() string {
			return analysis.SummaryMarkdown(name, len(recs), summary)
		})
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), statsOutput, data)
	},
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringSliceVar(&statsFields, "field", nil, "field(s) to summarize (repeatable or comma-separated)")
	statsCmd.Flags().StringSliceVar(&statsPair, "pair", nil, "two fields for joint statistics, e.g. author,ENTRYTYPE")
	statsCmd.Flags().IntVar(&statsTopN, "top", 0, "number of most frequent values for ranked fields and pairs (default from config: 15)")
	statsCmd.Flags().StringVar(&statsFormat, "format", "", "output format: markdown|json|yaml|html (default from config)")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "optional path to write the statistics")
}
