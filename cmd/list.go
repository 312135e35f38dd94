package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/bibloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	listProjects bool
	listSources  bool
	listProjName string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects or project sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listProjects == listSources { // either both true or both false
			return fmt.Errorf("specify exactly one of --projects or --sources")
		}
		if listProjects {
			return listAllProjects()
		}
		p, err := loadProject(listProjName)
		if err != nil {
			return err
		}
		if len(p.Sources) == 0 {
			fmt.Println("(no sources)")
			return nil
		}
		ids := make([]string, 0, len(p.Sources))
		for id := range p.Sources {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			s := p.Sources[id]
			fmt.Printf("- %s: [%s] %s, %d entries (%s)\n", s.ID, s.Kind, s.Name, s.Entries, s.Description)
		}
		if p.SortField != "" {
			fmt.Printf("sort field: %s\n", p.SortField)
		}
		return nil
	},
}

func listAllProjects() error {
	root, err := defaultProjectsDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		pj := filepath.Join(root, e.Name(), utils.ProjectFile)
		if _, err := os.Stat(pj); err == nil {
			fmt.Printf("- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Println("(no projects)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listProjects, "projects", false, "list projects")
	listCmd.Flags().BoolVar(&listSources, "sources", false, "list sources in a project")
	listCmd.Flags().StringVarP(&listProjName, "project", "p", "", "project name for --sources (default: the enclosing project)")
}
