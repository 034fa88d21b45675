package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nlplan/finance-planner/internal/config"
	"github.com/nlplan/finance-planner/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored settings snapshots",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Store the settings file under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Print a stored snapshot as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotLoad,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE:  runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotLoadCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

func openStore() (*store.Store, error) {
	return store.Open(flagStore)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	if flagSettings == "" {
		return fmt.Errorf("--settings <file> is required for snapshot save")
	}

	parser := config.NewInputParser()
	settings, warnings, err := parser.LoadFromFile(flagSettings)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveSnapshot(args[0], settings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot %q\n", args[0])
	return nil
}

func runSnapshotLoad(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	settings, err := db.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	infos, err := db.ListSnapshots()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no snapshots stored")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(cmd.OutOrStdout(), "%-30s updated %s\n", info.Name, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteSnapshot(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted snapshot %q\n", args[0])
	return nil
}
