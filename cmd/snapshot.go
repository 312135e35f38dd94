package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/ordering"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
	"github.com/KaramelBytes/bibloom-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	snapName   string
	snapSort   string
	snapOutput string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, list and export parsed bibliographies",
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path := filepath.Join("~", ".bibloom", "bibloom.db")
	if cfg != nil && cfg.DatabasePath != "" {
		path = cfg.DatabasePath
	}
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir database dir: %w", err)
	}
	return store.Open(cmd.Context(), path)
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <file.bib>",
	Short: "Parse a bibliography and store it as a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := parser.ParseFile(args[0], parser.Options{})
		if err != nil {
			return err
		}
		if snapSort != "" {
			ordering.SortRecords(recs, snapSort)
		}
		name := snapName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.SaveSnapshot(cmd.Context(), name, args[0], recs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot saved: %s (%d entries)\n", id, len(recs))
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		snaps, err := st.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(snaps) == 0 {
			fmt.Fprintln(out, "(no snapshots)")
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(out, "- %s: %s (%d entries, %s)\n", s.ID, s.Name, s.Records, s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a snapshot back out as BibTeX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		recs, err := st.LoadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if snapOutput == "" {
			return parser.WriteRecords(cmd.OutOrStdout(), recs)
		}
		if err := parser.WriteFile(snapOutput, recs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d entries to %s\n", len(recs), snapOutput)
		return nil
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotExportCmd, snapshotDeleteCmd)
	snapshotSaveCmd.Flags().StringVar(&snapName, "name", "", "snapshot name (default: file name)")
	snapshotSaveCmd.Flags().StringVar(&snapSort, "sort", "", "sort entries by this field before saving")
	snapshotExportCmd.Flags().StringVarP(&snapOutput, "output", "o", "", "write to this path instead of stdout")
}
