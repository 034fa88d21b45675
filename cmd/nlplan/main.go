package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nlplan/finance-planner/internal/calculation"
	"github.com/nlplan/finance-planner/internal/config"
	"github.com/nlplan/finance-planner/internal/domain"
	"github.com/nlplan/finance-planner/internal/logging"
	"github.com/nlplan/finance-planner/internal/output"
	"github.com/nlplan/finance-planner/internal/store"
)

var (
	flagSettings string
	flagSnapshot string
	flagFormat   string
	flagOutput   string
	flagStore    string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "nlplan",
	Short: "Dutch personal finance projection CLI",
	Long:  "Project salary, Dutch box-1 taxes, RSU vesting, investments and pension over a multi-year horizon.",
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection and render the results",
	RunE:  runProject,
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example settings file",
	RunE:  runExample,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultStore := filepath.Join(homeDir, ".nlplan", "snapshots.db")

	rootCmd.PersistentFlags().StringVarP(&flagSettings, "settings", "s", "", "Path to settings YAML file")
	rootCmd.PersistentFlags().StringVar(&flagSnapshot, "snapshot", "", "Name of a stored settings snapshot")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", defaultStore, "Path to the snapshot database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable per-year engine trace logging")

	projectCmd.Flags().StringVarP(&flagFormat, "format", "f", "console", "Output format (console, csv, json)")
	projectCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write output to file instead of stdout")
	exampleCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the example to file instead of stdout")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// loadSettings resolves the settings source: an explicit YAML file, or
// a named snapshot from the store. Exactly one must be given.
func loadSettings() (*domain.Settings, error) {
	switch {
	case flagSettings != "" && flagSnapshot != "":
		return nil, fmt.Errorf("specify either --settings or --snapshot, not both")
	case flagSettings != "":
		parser := config.NewInputParser()
		settings, warnings, err := parser.LoadFromFile(flagSettings)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return settings, err
	case flagSnapshot != "":
		db, err := store.Open(flagStore)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		settings, err := db.LoadSnapshot(flagSnapshot)
		if err != nil {
			return nil, err
		}
		warnings, err := config.NewInputParser().ValidateSettings(settings)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if err != nil {
			return nil, fmt.Errorf("stored snapshot %q is no longer valid: %w", flagSnapshot, err)
		}
		return settings, nil
	default:
		return nil, fmt.Errorf("a settings source is required: --settings <file> or --snapshot <name>")
	}
}

func runProject(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	formatter, err := output.ResolveFormatter(flagFormat)
	if err != nil {
		return err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(logging.New(os.Stderr, flagDebug))

	projections, err := engine.Project(settings)
	if err != nil {
		return err
	}
	metrics := calculation.SummarizeMetrics(projections)

	data, err := formatter.Format(output.NewReport(settings, projections, metrics))
	if err != nil {
		return err
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flagOutput)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runExample(cmd *cobra.Command, _ []string) error {
	settings := config.NewInputParser().CreateExampleSettings()

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flagOutput)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
