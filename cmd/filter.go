package cmd

import (
	"fmt"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	filterRequire []string
	filterOutput  string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file.bib>",
	Short: "Keep only entries that have every required field (e.g. --require doi)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := trimAll(filterRequire)
		if len(fields) == 0 {
			return fmt.Errorf("--require is required")
		}
		recs, err := parser.ParseFile(args[0], parser.Options{})
		if err != nil {
			return err
		}
		preds := make([]parser.Predicate, len(fields))
		for i, f := range fields {
			preds[i] = parser.HasField(f)
		}
		kept := parser.Filter(recs, preds...)

		if filterOutput != "" {
			if err := parser.WriteFile(filterOutput, kept); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Kept %d of %d entries in %s\n", len(kept), len(recs), filterOutput)
			return nil
		}
		return parser.WriteRecords(cmd.OutOrStdout(), kept)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringSliceVar(&filterRequire, "require", nil, "field(s) an entry must have (repeatable or comma-separated)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "write the filtered bibliography to this path instead of stdout")
}
