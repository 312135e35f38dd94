package cmd

import (
	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	jrnLimit      int
	jrnPerJournal int
	jrnFormat     string
	jrnOutput     string
)

var journalsCmd = &cobra.Command{
	Use:   "journals <file.bib>",
	Short: "Rank journals by article count with their most cited articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(jrnFormat)
		if err != nil {
			return err
		}
		recs, err := parser.ParseFile(args[0], parser.Options{})
		if err != nil {
			return err
		}
		ranks, err := analysis.RankJournals(recs, journalOptions(jrnLimit, jrnPerJournal))
		if err != nil {
			return err
		}
		data, err := render(format, ranks, func() string { return analysis.JournalsMarkdown(ranks) })
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), jrnOutput, data)
	},
}

func init() {
	rootCmd.AddCommand(journalsCmd)
	journalsCmd.Flags().IntVar(&jrnLimit, "limit", 0, "number of journals (default from config: 10)")
	journalsCmd.Flags().IntVar(&jrnPerJournal, "per-journal", 0, "most cited articles listed per journal (default from config: 15)")
	journalsCmd.Flags().StringVar(&jrnFormat, "format", "", "output format: markdown|json|yaml|html (default from config)")
	journalsCmd.Flags().StringVarP(&jrnOutput, "output", "o", "", "optional path to write the ranking")
}
