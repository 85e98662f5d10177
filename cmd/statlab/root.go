// cmd/statlab/root.go
package statlab

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arenvale/statlab/analysis"
	"github.com/arenvale/statlab/dataset"
)

var (
	cfgFile   string
	inputFile string
	delimiter string
	noHeader  bool
	outFile   string
	verbose   bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// rootCmd is the base command for the statlab CLI. Every subcommand loads
// the input file named by the persistent flags (or the config file) and
// runs one analysis against its columns.
var rootCmd = &cobra.Command{
	Use:   "statlab",
	Short: "Statistical analysis for delimited data files",
	Long: `statlab loads CSV and TSV files and runs descriptive statistics,
correlation analyses, hypothesis tests, regression models, and data
transformations on their columns.

The input file is given with --input or through a statlab.yaml config
file in the working directory. Reports print to stdout; --output writes
them to a file instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero when it fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./statlab.yaml)")
	flags.StringVarP(&inputFile, "input", "i", "", "input data file (.csv or .tsv)")
	flags.StringVar(&delimiter, "delimiter", ",", "field delimiter for the input file")
	flags.BoolVar(&noHeader, "no-header", false, "treat the first row as data instead of column names")
	flags.StringVarP(&outFile, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// runConfig resolves the effective configuration: defaults, then the viper
// config file, then any flags set on the command line.
func runConfig(cmd *cobra.Command) (*analysis.Config, error) {
	cfg, err := analysis.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = inputFile
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("no-header") {
		cfg.NoHeader = noHeader
	}
	if flags.Changed("output") {
		cfg.Output = outFile
	}
	return cfg, nil
}

// loadTable loads the configured input file. Files ending in .tsv are read
// tab-separated regardless of the delimiter setting.
func loadTable(cfg *analysis.Config) (*dataset.Table, error) {
	if cfg.Input == "" {
		return nil, errors.New("no input file: pass --input or set input in statlab.yaml")
	}
	opts := dataset.DefaultOptions()
	if cfg.Delimiter != "" {
		opts.Delimiter = []rune(cfg.Delimiter)[0]
	}
	opts.HasHeader = !cfg.NoHeader
	if strings.EqualFold(filepath.Ext(cfg.Input), ".tsv") {
		return dataset.LoadTSV(cfg.Input, opts)
	}
	return dataset.LoadCSV(cfg.Input, opts)
}

// newEngine loads the input file and wraps it in an analysis engine.
func newEngine(cfg *analysis.Config) (*analysis.Engine, error) {
	t, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}
	store := dataset.NewManager()
	store.SetCurrent(t)
	return analysis.New(store, logger), nil
}

// emit writes a report to the configured output file, or prints it with a
// highlighted title line when no output file is set.
func emit(cfg *analysis.Config, report string) error {
	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(report+"\n"), 0644); err != nil {
			return err
		}
		fmt.Println("Report written to " + cfg.Output)
		return nil
	}
	fmt.Println(renderReport(report))
	return nil
}

// renderReport styles the first line of a report for terminal output.
func renderReport(report string) string {
	title, rest, found := strings.Cut(report, "\n")
	if !found {
		return titleStyle.Render(report)
	}
	return titleStyle.Render(title) + "\n" + rest
}
