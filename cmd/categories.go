package cmd

import (
	"fmt"

	"github.com/KaramelBytes/bibloom-cli/internal/category"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	catTable   string
	catField   string
	catFormat  string
	catOutput  string
	catWeights bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories <file.bib>",
	Short: "Count category synonyms in a free-text field (abstract by default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if catTable == "" {
			return fmt.Errorf("--table is required")
		}
		format, err := resolveFormat(catFormat)
		if err != nil {
			return err
		}
		tbl, err := category.LoadTable(catTable)
		if err != nil {
			return err
		}
		recs, err := parser.ParseFile(args[0], parser.Options{})
		if err != nil {
			return err
		}
		field := catField
		if field == "" {
			field = configuredAbstractField()
		}
		counts := category.Count(recs, tbl, field)

		var v any = counts
		md := counts.Markdown
		if catWeights {
			w := counts.Weights()
			v = w
			md = func() string { return weightsMarkdown(w) }
		}
		data, err := render(format, v, md)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), catOutput, data)
	},
}

func weightsMarkdown(w map[string]int) string {
	out := "[WORD WEIGHTS]\n"
	for _, label := range sortedKeys(w) {
		out += fmt.Sprintf("- %s: %d\n", label, w[label])
	}
	return out
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().StringVarP(&catTable, "table", "t", "", "category table (.csv, .tsv or .xlsx with Categoria/Variable columns)")
	categoriesCmd.Flags().StringVar(&catField, "field", "", "text field to search (default from config: abstract)")
	categoriesCmd.Flags().StringVar(&catFormat, "format", "", "output format: markdown|json|yaml|html (default from config)")
	categoriesCmd.Flags().StringVarP(&catOutput, "output", "o", "", "optional path to write the counts")
	categoriesCmd.Flags().BoolVar(&catWeights, "weights", false, "print only synonym weights (count > 0) for word-cloud renderers")
}
