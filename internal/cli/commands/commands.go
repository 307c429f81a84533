package commands

import (
	"os"
	"strings"

	"optest/internal/cli"
	"optest/internal/config"
	"optest/internal/execution"
	"optest/internal/exitcodes"
	"optest/internal/parser"
	"optest/internal/storage"
	"optest/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Verify   *VerifyCommand
	Failures *FailuresCommand
	Exec     *ExecCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	outputParser := parser.NewOutputParser()
	fileStorage := storage.NewFileStorage(cfg)
	errorViewer := ui.NewErrorViewer("Test Failures")
	runner := execution.NewRunner(cfg)

	return &Commands{
		Run:      NewRunCommand(cfg, fileStorage, ui.NewFormatter(os.Stderr)),
		List:     NewListCommand(cfg, fileStorage, outputParser, ui.NewFormatter(os.Stdout)),
		Verify:   NewVerifyCommand(cfg, fileStorage, outputParser),
		Failures: NewFailuresCommand(cfg, fileStorage, outputParser, errorViewer),
		Exec:     NewExecCommand(cfg, runner, fileStorage, outputParser),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the YAML config file (default optest.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flags.OutputFile, "output", "o", "", "Path to the captured output file (default build/test-results/output.txt)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// run does not parse its own flags, so pick out the root ones here
		if cmd.DisableFlagParsing {
			rootArgs, _ := splitRootArgs(args)
			if err := cmd.Root().PersistentFlags().Parse(rootArgs); err != nil {
				return exitcodes.New(exitcodes.RuntimeErr, err)
			}
		}

		// Update config with flags after parsing
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [-o FILE] [--config FILE] [-v] [-g GROUP] [-n NAME] [-r COUNT]",
		Short: "Run the operator test groups",
		Long: "Register every test group and run each case with its group's setup and teardown.\n" +
			"Apart from --config and -o/--output, arguments are handed to the test engine unmodified; output is echoed to stdout and captured to the output file.",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, engineArgs := splitRootArgs(args)
			return c.Run.Execute(cmd, engineArgs)
		},
	}
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered test groups",
		Long:  "List the registered test groups in execution order, optionally with their cases",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases under each group")
	rootCmd.AddCommand(listCmd)

	// Verify command
	verifyCmd := &cobra.Command{
		Use:   "verify [output-file]",
		Short: "Check captured test output for failures",
		Long:  "Search captured test output for the run summary and fail when it is missing or reports failing tests",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Verify.Execute,
	}
	verifyCmd.Flags().BoolVar(&flags.IgnoreFailures, "ignore-failures", false, "Warn instead of failing when the summary reports failures")
	rootCmd.AddCommand(verifyCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display failures from the last captured run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Exec command
	execCmd := &cobra.Command{
		Use:   "exec [flags] -- EXECUTABLE [ARGS...]",
		Short: "Run an external test executable and check its summary",
		Long:  "Run a test executable, echo and capture its output, and fail when the summary is missing or reports failing tests",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Exec.Execute,
	}
	execCmd.Flags().BoolVar(&flags.IgnoreFailures, "ignore-failures", false, "Warn instead of failing when the summary reports failures")
	rootCmd.AddCommand(execCmd)
}

// splitRootArgs separates the root --config and -o/--output flags from the
// arguments handed to the test engine. Everything after "--" goes to the engine.
func splitRootArgs(args []string) (rootArgs, engineArgs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return rootArgs, append(engineArgs, args[i+1:]...)
		}
		name, _, hasValue := strings.Cut(arg, "=")
		switch {
		case name == "--config" || name == "--output" || name == "-o":
			rootArgs = append(rootArgs, arg)
			if !hasValue && i+1 < len(args) {
				i++
				rootArgs = append(rootArgs, args[i])
			}
		case strings.HasPrefix(arg, "-o") && !strings.HasPrefix(arg, "--"):
			// -ofile
			rootArgs = append(rootArgs, arg)
		default:
			engineArgs = append(engineArgs, arg)
		}
	}
	return rootArgs, engineArgs
}
