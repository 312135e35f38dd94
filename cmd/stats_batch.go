package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/KaramelBytes/bibloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sbProject string
	sbOutDir  string
	sbFields  []string
	sbQuiet   bool
)

var statsBatchCmd = &cobra.Command{
	Use:   "stats-batch <files...>",
	Short: "Summarize several bibliographies (globs allowed) in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		fields := trimAll(sbFields)
		if len(fields) == 0 {
			fields = defaultReportFields
		}

		outDir := sbOutDir
		if sbProject != "" {
			p, err := loadProject(sbProject)
			if err != nil {
				return err
			}
			outDir = filepath.Join(p.RootDir(), "summaries")
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
		}

		// Each file is an independent corpus.
		reports := make([]string, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				recs, err := parser.ParseFile(path, parser.Options{})
				if err != nil {
					return err
				}
				summary, err := newEngine(0).Summarize(ctx, recs, fields)
				if err != nil {
					return err
				}
				reports[i] = analysis.SummaryMarkdown(filepath.Base(path), len(recs), summary)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := len(files)
		for i, path := range files {
			if !sbQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, filepath.Base(path))
			}
			if outDir == "" {
				fmt.Fprintln(out, reports[i])
				continue
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			outFile := utils.UniquePath(outDir, base, ".summary.md")
			if err := utils.SafeWriteFile(outFile, []byte(reports[i])); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !sbQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths, dropping duplicates.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// keep literal paths so a missing file is reported by the parser
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(statsBatchCmd)
	statsBatchCmd.Flags().StringVarP(&sbProject, "project", "p", "", "write summaries into the project's summaries folder")
	statsBatchCmd.Flags().StringVar(&sbOutDir, "out-dir", "", "write one <name>.summary.md per input into this directory")
	statsBatchCmd.Flags().StringSliceVar(&sbFields, "fields", nil, "fields to summarize (default year,author,journal,publisher,ENTRYTYPE)")
	statsBatchCmd.Flags().BoolVar(&sbQuiet, "quiet", false, "suppress progress output")
}
