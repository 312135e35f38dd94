package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/bibloom-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Bibloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("projects_dir: %s\n", cfg.ProjectsDir)
		fmt.Printf("database_path: %s\n", cfg.DatabasePath)
		fmt.Printf("sort_field: %s\n", cfg.SortField)
		fmt.Printf("top_n: %d\n", cfg.TopN)
		fmt.Printf("journal_limit: %d\n", cfg.JournalLimit)
		fmt.Printf("articles_per_journal: %d\n", cfg.ArticlesPerJournal)
		fmt.Printf("abstract_field: %s\n", cfg.AbstractField)
		fmt.Printf("numeric_fields: %s\n", strings.Join(cfg.NumericFields, ","))
		fmt.Printf("author_fields: %s\n", strings.Join(cfg.AuthorFields, ","))
		fmt.Printf("ranked_fields: %s\n", strings.Join(cfg.RankedFields, ","))
		fmt.Printf("output_format: %s\n", cfg.OutputFormat)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "projects_dir":
			cfg.ProjectsDir = val
		case "database_path":
			cfg.DatabasePath = val
		case "sort_field":
			cfg.SortField = strings.TrimSpace(val)
		case "top_n", "journal_limit", "articles_per_journal":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "top_n":
				cfg.TopN = i
			case "journal_limit":
				cfg.JournalLimit = i
			default:
				cfg.ArticlesPerJournal = i
			}
		case "abstract_field":
			cfg.AbstractField = strings.TrimSpace(val)
		case "numeric_fields":
			cfg.NumericFields = splitList(val)
		case "author_fields":
			cfg.AuthorFields = splitList(val)
		case "ranked_fields":
			cfg.RankedFields = splitList(val)
		case "output_format":
			f, err := resolveFormat(val)
			if err != nil {
				return err
			}
			cfg.OutputFormat = f
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func splitList(val string) []string {
	return trimAll(strings.Split(val, ","))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
