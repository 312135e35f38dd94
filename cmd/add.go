package cmd

import (
	"fmt"

	"github.com/KaramelBytes/bibloom-cli/internal/project"
	"github.com/spf13/cobra"
)

var (
	addProjectName string
	addSourceDesc  string
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add a bibliography (.bib) or category table (.csv/.tsv/.xlsx) to a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		if addProjectName == "" {
			return fmt.Errorf("--project is required")
		}
		projDir, err := resolveProjectDirByName(addProjectName)
		if err != nil {
			return err
		}
		p, err := project.LoadProject(projDir)
		if err != nil {
			return err
		}
		s, err := p.AddSource(file, addSourceDesc)
		if err != nil {
			return err
		}
		if err := p.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ %s added: %s (%d entries)\n", s.Kind, s.Name, s.Entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addProjectName, "project", "p", "", "project name")
	addCmd.Flags().StringVar(&addSourceDesc, "desc", "", "source description")
}
