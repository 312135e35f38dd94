package cmd

import (
	"fmt"

	"github.com/KaramelBytes/bibloom-cli/internal/project"
	"github.com/spf13/cobra"
)

var (
	pmProject string
	pmClear   bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage per-project settings",
}

var projectSetSortCmd = &cobra.Command{
	Use:   "set-sort <field>",
	Short: "Set or clear the field a project's records are ordered by",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pmProject == "" {
			return fmt.Errorf("--project is required")
		}
		dir, err := resolveProjectDirByName(pmProject)
		if err != nil {
			return err
		}
		p, err := project.LoadProject(dir)
		if err != nil {
			return err
		}
		if pmClear {
			p.SetSortField("")
		} else {
			if len(args) == 0 || args[0] == "" {
				return fmt.Errorf("field is required unless --clear is set")
			}
			p.SetSortField(args[0])
		}
		if err := p.Save(); err != nil {
			return err
		}
		if pmClear {
			fmt.Printf("✓ Cleared sort field for %s\n", pmProject)
		} else {
			fmt.Printf("✓ Set sort field for %s: %s\n", pmProject, p.SortField)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectSetSortCmd)

	projectSetSortCmd.Flags().StringVarP(&pmProject, "project", "p", "", "project name")
	projectSetSortCmd.Flags().BoolVar(&pmClear, "clear", false, "clear the project's sort field (fall back to config)")
}
