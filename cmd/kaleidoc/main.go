// Package main implements the kaleidoc command: an interactive loop and
// dump tools for the Kaleido expression language.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/kaleido/internal/config"
	"github.com/you-not-fish/kaleido/internal/ir"
	"github.com/you-not-fish/kaleido/internal/repl"
)

// Version information
const Version = "0.1.0-dev"

// errReported signals failure after the diagnostics were already written.
var errReported = errors.New("errors reported")

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line args and returns the exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(&app{})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app holds the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
	log *slog.Logger
}

// setup loads the configuration and builds the logger. It runs before
// every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.noColor {
		a.cfg.Output.Color = "never"
	}

	level, err := a.cfg.LogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "kaleidoc [file]",
		Short: "Kaleido expression language front end",
		Long: `kaleidoc reads Kaleido definitions, externs and expressions and
lowers each one to IR as it is read.

Without a subcommand it runs the read-eval loop on the given file, or on
standard input when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd, args)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./kaleido.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every handled construct")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		newREPLCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newIRCmd(a),
		newVersionCmd(),
	)
	return root
}

func newREPLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Run the read-eval loop (default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd, args)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kaleidoc version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go version %s\n", runtime.Version())
		},
	}
}

// runREPL runs a session over the named file, or over standard input.
// Reading a terminal turns on the prompt; any other input fails the
// command when it contained errors.
func (a *app) runREPL(cmd *cobra.Command, args []string) error {
	in, filename, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	opts := repl.OptionsFromConfig(a.cfg)
	opts.Filename = filename
	opts.Logger = a.log

	interactive := len(args) == 0 && isTerminal(in)
	if !interactive {
		opts.Prompt = ""
	}

	s := repl.New(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), ir.NewModule(a.cfg.Module.Name), opts)
	stats, err := s.Run()
	if err != nil {
		return err
	}
	if interactive {
		fmt.Fprintln(cmd.ErrOrStderr())
		return nil
	}
	if stats.Errors > 0 {
		return errReported
	}
	return nil
}

// openInput opens the file named by args, or returns the command's
// standard input when args is empty or names "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), "<stdin>", func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, err
	}
	return f, args[0], func() { f.Close() }, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
