package cmd

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/bibloom-cli/internal/ordering"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	sortField  string
	sortOutput string
)

var sortCmd = &cobra.Command{
	Use:   "sort <file.bib>",
	Short: "Sort BibTeX entries by a field and re-emit them verbatim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := sortField
		if field == "" {
			field = configuredSortField()
		}
		recs, err := parser.ParseFile(args[0], parser.Options{OrderField: field})
		if err != nil {
			return err
		}
		swaps := ordering.SortRecords(recs, field)
		slog.Debug("sorted bibliography", "path", args[0], "field", field, "records", len(recs), "swaps", swaps)

		if sortOutput != "" {
			if err := parser.WriteFile(sortOutput, recs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Sorted %d entries by %s into %s\n", len(recs), field, sortOutput)
			return nil
		}
		return parser.WriteRecords(cmd.OutOrStdout(), recs)
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVarP(&sortField, "field", "f", "", "field to sort by (default from config: year)")
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "", "write the sorted bibliography to this path instead of stdout")
}
