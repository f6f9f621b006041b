// =============================================================================
// Sheet Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with worksheet
// flags, the root command generates a document directly; the subcommands
// cover the other ways of describing a build.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sheetgen -w ... -c ... -o ...)
//   ├── planCmd    (sheetgen plan build.yaml)
//   ├── editCmd    (sheetgen edit [output])
//   └── versionCmd (sheetgen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --timeout)
//   2. Loading settings through viper before any command runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/sheet-gen/internal/config"
	"github.com/ginjaninja78/sheet-gen/internal/converter"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app carries the state shared by the commands of one invocation.
type app struct {
	// cfgFile holds the path given with --config.
	cfgFile string

	// verbose enables debug logging when set to true.
	verbose bool

	// timeout is the --timeout flag value.
	timeout time.Duration

	// output is the -o flag value of the root command.
	output string

	specs    *specList
	v        *viper.Viper
	settings *config.Settings
	log      *logrus.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

const rootLong = `sheetgen builds an Excel 2003 XML spreadsheet from CSV files, directory
listings, RSS/Atom feeds and XLSX workbooks. Each source becomes one worksheet.

Worksheet flags are read in order. -w and -H apply to the next source flag;
each source flag (-c, -d, -r, -x) completes one worksheet. Worksheets with no
title, or an empty one, are named "Worksheet N". A source value may not start
with "-"; write ./-name for such paths. Without -o the document is written to
standard output.

Output paths may contain {uuid}, {timestamp}, {date} and {time}.

Example Usage:
  sheetgen -c data.csv                                  # one worksheet to stdout
  sheetgen -w Sales -c https://example.com/sales.csv \
           -w Docs -H -d ./docs -o report.xml           # two worksheets to a file
  sheetgen -w News -r feed.xml -x budget.xlsx -o out_{date}.xml
  sheetgen plan build.yaml                              # build from a plan file
  sheetgen edit report.xml                              # interactive editor`

// newRootCmd builds the command tree writing to the given streams.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		specs:  newSpecList(),
		v:      viper.New(),
		log:    logrus.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:           "sheetgen [worksheet flags] [-o output]",
		Short:         "Build a spreadsheet document from CSV, directory, feed and XLSX sources",
		Long:          rootLong,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd.Context())
		},
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Settings file (default: ./sheetgen.yaml or ~/sheetgen.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.DurationVar(&a.timeout, "timeout", config.DefaultFetchTimeout, "Timeout for fetching URL sources")

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	registerWorksheetFlags(rootCmd.Flags(), a.specs)
	rootCmd.Flags().StringVarP(&a.output, "output", "o", "", "Output file (default: standard output)")

	rootCmd.AddCommand(newPlanCmd(a), newEditCmd(a), newVersionCmd(a))

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main(). An interrupt cancels any
// fetch in progress.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// noArgs rejects positional arguments; every value belongs to a flag.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument %q", args[0])}
	}
	return nil
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(w, "Run 'sheetgen --help' for usage.")
	}
}

// =============================================================================
// CONFIGURATION INITIALIZATION
// =============================================================================

// initConfig loads settings and sets up logging. Flags bound here override
// values from the settings file.
func (a *app) initConfig(cmd *cobra.Command) error {
	if err := a.v.BindPFlag(config.KeyFetchTimeout, cmd.Flags().Lookup("timeout")); err != nil {
		return err
	}
	if err := a.v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return err
	}

	settings, err := config.Load(a.v, a.cfgFile, Version)
	if err != nil {
		return err
	}
	a.settings = settings

	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", config.ErrInvalidSettings, config.KeyLogLevel, err)
	}
	if a.v.GetBool("verbose") {
		level = logrus.DebugLevel
	}

	a.log.SetOutput(a.stderr)
	a.log.SetLevel(level)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debugf("Using settings file %s", used)
	}

	return nil
}

// =============================================================================
// GENERATE
// =============================================================================

func (a *app) runGenerate(ctx context.Context) error {
	worksheets, dangling := a.specs.result()
	if dangling {
		a.log.Warn("-w/-H given after the last source flag are ignored")
	}
	if len(worksheets) == 0 {
		return usageError{converter.ErrNoWorksheets}
	}

	b := converter.NewBuilder(a.settings).WithLogger(a.log)
	b.Worksheets = worksheets
	b.Output = a.output

	_, err := converter.Export(ctx, b, a.stdout)
	return err
}
