package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dkoosis/printer/internal/config"
	"github.com/dkoosis/printer/internal/logging"
	"github.com/dkoosis/printer/internal/version"
	"github.com/dkoosis/printer/pkg/design"
	"github.com/dkoosis/printer/printer"
)

// app carries the streams and resolved settings shared by all subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags     config.CliFlags
	verbosity int

	cfg *config.ResolvedConfig
	out *printer.Printer
}

// run executes the CLI and returns the exit code, so tests can drive it without
// os.Exit terminating the test runner.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		a.reportError(err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "printer",
		Short:   "Format tables, sizes, text and progress for the console",
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colors")
	flags.IntVar(&a.flags.Width, "width", 0, "wrap at this many columns (0 disables wrapping)")
	flags.StringVar(&a.flags.ThemeName, "theme", "", "theme name: "+strings.Join(design.ThemeNames(), ", "))
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(
		a.newTableCmd(),
		a.newSizeCmd(),
		a.newWrapCmd(),
		a.newTitleCmd(),
		a.newProgressCmd(),
		a.newVersionCmd(),
	)
	return rootCmd
}

// setup resolves configuration and builds the output printer.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	a.flags.NoColorSet = flags.Changed("no-color")
	a.flags.WidthSet = flags.Changed("width")
	if a.verbosity >= 2 {
		a.flags.Debug, a.flags.DebugSet = true, true
	}

	logging.Setup(a.verbosity, a.stderr, a.flags.NoColor)

	cfg, err := config.ResolveConfig(a.flags)
	if err != nil {
		return err
	}
	if cfg.Debug && a.verbosity < 2 {
		logging.Setup(2, a.stderr, cfg.NoColor)
	}
	a.cfg = cfg

	pcfg := cfg.PrinterConfig(a.stdout)
	logger := logging.Component("printer")
	pcfg.Logger = &logger
	a.out = printer.New(pcfg)

	log.Debug().Str("command", cmd.Name()).Str("config", cfg.ConfigPath).Msg("Command started")
	return nil
}

// reportError prints err on stderr in the theme's error color.
func (a *app) reportError(err error) {
	pcfg := printer.Config{Out: a.stderr}
	if a.cfg != nil {
		pcfg = a.cfg.PrinterConfig(a.stderr)
	}
	p := printer.New(pcfg)

	msg := "Error: " + err.Error()
	if werr := p.WriteLine(p.Theme().Error.Render(msg)); werr != nil {
		// The message itself may hold a broken escape sequence.
		_, _ = fmt.Fprintln(a.stderr, msg)
	}
}

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage")
