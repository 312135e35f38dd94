package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const dirName = ".bibloom"

// Global configuration structure.
type Global struct {
	ProjectsDir  string `mapstructure:"projects_dir" yaml:"projects_dir"`
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// Ordering and statistics
	SortField          string   `mapstructure:"sort_field" yaml:"sort_field"`
	TopN               int      `mapstructure:"top_n" yaml:"top_n"`
	JournalLimit       int      `mapstructure:"journal_limit" yaml:"journal_limit"`
	ArticlesPerJournal int      `mapstructure:"articles_per_journal" yaml:"articles_per_journal"`
	AbstractField      string   `mapstructure:"abstract_field" yaml:"abstract_field"`
	NumericFields      []string `mapstructure:"numeric_fields" yaml:"numeric_fields"`
	AuthorFields       []string `mapstructure:"author_fields" yaml:"author_fields"`
	RankedFields       []string `mapstructure:"ranked_fields" yaml:"ranked_fields"`

	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.bibloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bibloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a .env file in the working directory) >
// config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env never overrides variables already set.
	_ = godotenv.Load()

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("BIBLOOM")
	v.AutomaticEnv()

	v.SetDefault("projects_dir", filepath.Join(dir, "projects"))
	v.SetDefault("database_path", filepath.Join(dir, "bibloom.db"))
	v.SetDefault("sort_field", "year")
	v.SetDefault("top_n", 15)
	v.SetDefault("journal_limit", 10)
	v.SetDefault("articles_per_journal", 15)
	v.SetDefault("abstract_field", "abstract")
	v.SetDefault("numeric_fields", []string{"year"})
	v.SetDefault("author_fields", []string{"author"})
	v.SetDefault("ranked_fields", []string{"journal", "publisher"})
	v.SetDefault("output_format", "markdown")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
