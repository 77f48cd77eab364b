package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pfrederiksen/mma-picks/internal/config"
	"github.com/pfrederiksen/mma-picks/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitInvalid = 2
)

// exitError ends a command with a specific exit code after its output has
// already been written
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var (
	errInvalid = &exitError{code: ExitInvalid}
	errFailed  = &exitError{code: ExitError}
)

// options holds the persistent flags and the state they resolve to
type options struct {
	configPath string
	format     string
	verbose    bool

	cfg          config.Config
	outputFormat OutputFormat
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mma-picks",
		Short: "Build and validate MMA fight picks",
		Long: `A CLI tool for MMA fight picks.
Loads upcoming UFC cards from Wikipedia or Tapology, builds a picks worksheet,
and validates filled-in picks, including judges' decision scores.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Config file")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScoresCmd(opts),
		newCheckCmd(opts),
		newFetchCmd(opts),
		newSheetCmd(opts),
		newValidateCmd(opts),
		newRenderCmd(opts),
		newReconcileCmd(opts),
	)

	return cmd
}

// setup validates the output format, loads config and configures logging
func (o *options) setup(cmd *cobra.Command) error {
	o.outputFormat = OutputFormat(strings.ToLower(o.format))
	if o.outputFormat != FormatText && o.outputFormat != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	o.cfg = cfg

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	logger.Debug("Config loaded", logger.Fields{
		"config": o.configPath,
		"format": o.outputFormat,
	})
	return nil
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
