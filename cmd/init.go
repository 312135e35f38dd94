package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/project"
	"github.com/KaramelBytes/bibloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initDescription string
	initSortField   string
)

var initCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Initialize a new bibliography project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projDir, err := resolveProjectDirByName(args[0])
		if err != nil {
			return err
		}
		if err := ensureFreshProjectDir(projDir); err != nil {
			return err
		}
		p := project.NewProject(args[0], initDescription, projDir)
		p.SetSortField(initSortField)
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ Project initialized: %s\n", projDir)
		if p.SortField != "" {
			fmt.Printf("  sort field: %s\n", p.SortField)
		}
		return nil
	},
}

// ensureFreshProjectDir creates dir, refusing an existing project or a
// non-empty directory.
func ensureFreshProjectDir(dir string) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return utils.EnsureProjectDir(dir)
	case err != nil:
		return fmt.Errorf("inspect project directory: %w", err)
	}
	for _, e := range entries {
		if e.Name() == utils.ProjectFile {
			return fmt.Errorf("project already exists at %s", dir)
		}
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize project", dir)
	}
	return nil
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~") {
		return filepath.Clean(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	rest := strings.TrimLeft(strings.TrimPrefix(dir, "~"), `/\`)
	return filepath.Join(home, rest), nil
}

func defaultProjectsDir() (string, error) {
	dir := filepath.Join("~", ".bibloom", "projects")
	if cfg != nil && cfg.ProjectsDir != "" {
		dir = cfg.ProjectsDir
	}
	dir, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureProjectDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func resolveProjectDirByName(name string) (string, error) {
	if name == "" {
		return "", errors.New("project name is required")
	}
	root, err := defaultProjectsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// loadProject loads the named project, or the project enclosing the working
// directory when name is empty.
func loadProject(name string) (*project.Project, error) {
	if name == "" {
		dir, err := utils.FindProjectRoot("")
		if err != nil {
			return nil, fmt.Errorf("--project is required outside a project directory: %w", err)
		}
		return project.LoadProject(dir)
	}
	dir, err := resolveProjectDirByName(name)
	if err != nil {
		return nil, err
	}
	return project.LoadProject(dir)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "project description")
	initCmd.Flags().StringVar(&initSortField, "sort-field", "", "field the project's records are ordered by (default from config)")
}
