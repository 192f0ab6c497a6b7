package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/kaleido/internal/codegen"
	"github.com/you-not-fish/kaleido/internal/ir"
	"github.com/you-not-fish/kaleido/internal/repl"
	"github.com/you-not-fish/kaleido/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream with positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEmitTokens(cmd, args)
		},
	}
}

func newASTCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of every construct",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEmitAST(cmd, args, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json or describe)")
	return cmd
}

func newIRCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ir <file>",
		Short: "Lower the file and print the resulting module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEmitIR(cmd, args, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (llvm or ssa; default from config)")
	return cmd
}

// runEmitTokens scans the input and prints all tokens with positions.
func (a *app) runEmitTokens(cmd *cobra.Command, args []string) error {
	in, filename, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", syntax.NewPos(filename, line, col), msg))
	}

	out := cmd.OutOrStdout()
	s := syntax.NewScanner(filename, in, errh)

	fmt.Fprintf(out, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(out, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	n := 0
	for {
		s.Next()
		tok := s.Token()
		fmt.Fprintf(out, "%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
		n++
	}
	a.log.Debug("scanned", "file", filename, "tokens", n)

	if len(errs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Errors:")
		for _, e := range errs {
			fmt.Fprintf(out, "  %s\n", e)
		}
		return errReported
	}
	return nil
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runEmitAST parses the input and prints its syntax trees.
func (a *app) runEmitAST(cmd *cobra.Command, args []string, format string) error {
	switch format {
	case "text", "json", "describe":
	default:
		return fmt.Errorf("unknown AST format %q (want text, json or describe)", format)
	}

	in, filename, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := syntax.NewParser(filename, in, errh)
	decls := p.ParseProgram()
	a.log.Debug("parsed", "file", filename, "decls", len(decls), "errors", p.Errors())

	// Print errors first
	for _, e := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), e)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if err := syntax.FprintJSONProgram(out, decls); err != nil {
			return err
		}
	case "describe":
		for _, d := range decls {
			fmt.Fprintln(out, describeDecl(d))
		}
	default:
		for _, d := range decls {
			syntax.Fprint(out, d)
		}
	}

	if len(errs) > 0 {
		return errReported
	}
	return nil
}

// describeDecl renders d on one line, marking externs.
func describeDecl(d syntax.Decl) string {
	if p, ok := d.(*syntax.Prototype); ok {
		return "extern " + p.String()
	}
	return d.String()
}

// runEmitIR lowers the whole input into one module and prints it.
func (a *app) runEmitIR(cmd *cobra.Command, args []string, format string) error {
	if format == "" {
		format = a.cfg.Output.Format
	}
	switch format {
	case "llvm", "ssa":
	default:
		return fmt.Errorf("unknown IR format %q (want llvm or ssa)", format)
	}

	in, filename, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	opts := repl.Options{
		Filename: filename,
		Color:    a.cfg.Output.Color,
		Logger:   a.log,
	}
	m := ir.NewModule(a.cfg.Module.Name)
	stats, err := repl.New(in, io.Discard, cmd.ErrOrStderr(), m, opts).Run()
	if err != nil {
		return err
	}

	if err := ir.VerifyModule(m); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "ssa":
		ir.FprintModule(out, m)
	default:
		if err := codegen.EmitLLVM(out, m); err != nil {
			return err
		}
	}

	if stats.Errors > 0 {
		return errReported
	}
	return nil
}
