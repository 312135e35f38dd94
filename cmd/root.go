package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/KaramelBytes/bibloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/bibloom-cli/internal/config"
	"github.com/KaramelBytes/bibloom-cli/internal/logging"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "bibloom",
	Short: "Bibloom CLI: sort, filter and analyze BibTeX bibliographies",
	Long: `Bibloom reads BibTeX exports (Scopus, IEEE, ACM...) and sorts them by any field,
computes field statistics, counts category synonyms in abstracts and ranks journals.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		if parser.IsNotFound(err) {
			fmt.Fprintln(os.Stderr, "✗ Error:", notFoundMessage(err))
		} else {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bibloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		slog.SetDefault(logging.New(logLevel, debug))
		return
	}
	cfg = c
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	slog.SetDefault(logging.New(level, debug))
}

func notFoundMessage(err error) string {
	var nf *parser.FileNotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("file not found: %s", nf.Path)
	}
	return err.Error()
}

// newEngine builds a statistics engine from the loaded configuration.
func newEngine(topN int) *analysis.Engine {
	e := analysis.NewEngine()
	e.Logger = slog.Default()
	if cfg != nil {
		e.Kinds = analysis.NewKinds(cfg.NumericFields, cfg.AuthorFields, cfg.RankedFields)
		if cfg.TopN > 0 {
			e.TopN = cfg.TopN
		}
	}
	if topN > 0 {
		e.TopN = topN
	}
	return e
}

func configuredSortField() string {
	if cfg != nil && cfg.SortField != "" {
		return cfg.SortField
	}
	return "year"
}

func configuredAbstractField() string {
	if cfg != nil && cfg.AbstractField != "" {
		return cfg.AbstractField
	}
	return "abstract"
}

func journalOptions(limit, perJournal int) analysis.JournalOptions {
	opt := analysis.JournalOptions{Limit: limit, PerJournal: perJournal}
	if cfg != nil {
		if opt.Limit <= 0 {
			opt.Limit = cfg.JournalLimit
		}
		if opt.PerJournal <= 0 {
			opt.PerJournal = cfg.ArticlesPerJournal
		}
	}
	return opt
}
