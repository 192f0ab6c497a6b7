// Package repl implements the top-level read-eval loop. A Session reads
// one construct at a time (a definition, an extern or a bare
// expression), lowers it into a module and reports the result.
//
// Errors never stop the loop. A syntax error skips one token and tries
// again; a semantic error drops the construct being lowered.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/you-not-fish/kaleido/internal/codegen"
	"github.com/you-not-fish/kaleido/internal/config"
	"github.com/you-not-fish/kaleido/internal/ir"
	"github.com/you-not-fish/kaleido/internal/syntax"
)

// Options configures a Session.
type Options struct {
	Filename   string // used in positions; "<stdin>" if empty
	Prompt     string // written to the diagnostic stream before each construct; none if empty
	Eval       bool   // evaluate top-level expressions
	ShowIR     bool   // print each lowered function
	DumpModule bool   // print the whole module at end of input
	Format     string // llvm or ssa
	Color      string // auto, always or never
	Logger     *slog.Logger
}

// OptionsFromConfig returns the session options described by cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Prompt:     cfg.REPL.Prompt,
		Eval:       cfg.REPL.Eval,
		ShowIR:     cfg.REPL.ShowIR,
		DumpModule: cfg.REPL.DumpModule,
		Format:     cfg.Output.Format,
		Color:      cfg.Output.Color,
	}
}

// Stats counts what a Session handled.
type Stats struct {
	Definitions int
	Externs     int
	Expressions int
	Errors      int // syntax, semantic and evaluation errors
}

// Session is one run of the loop over one input stream. Results go to
// out; prompts and diagnostics go to diag.
type Session struct {
	opts Options

	in   io.Reader
	out  io.Writer
	diag io.Writer

	module *ir.Module
	ctx    *codegen.Context
	interp *ir.Interp
	parser *syntax.Parser

	styles styles
	log    *slog.Logger
	stats  Stats
	err    error // first output error
}

// New returns a Session that reads from in and lowers into m.
func New(in io.Reader, out, diag io.Writer, m *ir.Module, opts Options) *Session {
	if opts.Filename == "" {
		opts.Filename = "<stdin>"
	}
	if opts.Format == "" {
		opts.Format = "llvm"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Session{
		opts:   opts,
		in:     in,
		out:    out,
		diag:   diag,
		module: m,
		ctx:    codegen.NewContext(codegen.NewIRBackend(m)),
		interp: ir.NewInterp(out),
		styles: newStyles(diag, opts.Color),
		log:    logger.With("file", opts.Filename),
	}
}

// Module returns the module the session lowers into.
func (s *Session) Module() *ir.Module { return s.module }

// Run handles constructs until the end of input. The error is the first
// failure to write output; malformed input is reported on the
// diagnostic stream and counted in Stats.
func (s *Session) Run() (Stats, error) {
	s.prompt()
	s.parser = syntax.NewParser(s.opts.Filename, s.in, s.syntaxError)

	for s.parser.Token() != syntax.EOF {
		switch {
		case s.parser.Char() == ';':
			s.parser.Next() // ignore top-level semicolons
		case s.parser.Token() == syntax.Def:
			s.handleDefinition()
		case s.parser.Token() == syntax.Extern:
			s.handleExtern()
		default:
			s.handleTopLevel()
		}

		if s.parser.Token() != syntax.EOF {
			s.prompt()
		}
	}

	s.log.Debug("end of input",
		"definitions", s.stats.Definitions,
		"externs", s.stats.Externs,
		"expressions", s.stats.Expressions,
		"errors", s.stats.Errors)

	if s.opts.DumpModule {
		if s.opts.Prompt != "" {
			fmt.Fprintf(s.diag, "\n%s\n\n", s.styles.render(s.styles.header, "All done. Here's your module:"))
		}
		s.dumpModule()
	}
	return s.stats, s.err
}

// ----------------------------------------------------------------------------
// Handlers

func (s *Session) handleDefinition() {
	d, err := s.parser.ParseDefinition()
	if err != nil {
		s.parser.Next() // skip for error recovery
		return
	}

	fn, err := s.ctx.Definition(d)
	if err != nil {
		s.semanticError(err)
		return
	}
	s.stats.Definitions++
	s.log.Debug("lowered", "kind", "definition", "name", fn.Name(), "nodes", syntax.CountNodes(d))
	s.show("Read function definition:", fn)
}

func (s *Session) handleExtern() {
	proto, err := s.parser.ParseExtern()
	if err != nil {
		s.parser.Next()
		return
	}

	fn, err := s.ctx.Prototype(proto)
	if err != nil {
		s.semanticError(err)
		return
	}
	s.stats.Externs++
	s.log.Debug("lowered", "kind", "extern", "name", fn.Name(), "params", fn.NumParams())
	s.show("Read extern:", fn)
}

func (s *Session) handleTopLevel() {
	d, err := s.parser.ParseTopLevelExpr()
	if err != nil {
		s.parser.Next()
		return
	}

	fn, err := s.ctx.Definition(d)
	if err != nil {
		s.semanticError(err)
		return
	}
	s.stats.Expressions++
	f := codegen.IRFunc(fn)
	s.log.Debug("lowered", "kind", "expression", "name", f.DisplayName(), "nodes", syntax.CountNodes(d))
	s.show("Read top-level expression:", fn)

	if s.opts.Eval {
		s.eval(f)
	}
}

// eval runs the anonymous function f and removes it from the module.
func (s *Session) eval(f *ir.Func) {
	v, err := s.interp.Call(f)
	s.module.Remove(f)
	if err != nil {
		s.stats.Errors++
		s.log.Warn("evaluation failed", "err", err)
		s.report(syntax.Pos{}, err.Error())
		return
	}
	s.printf("Evaluated to %f\n", v)
}

// ----------------------------------------------------------------------------
// Output

func (s *Session) show(header string, fn codegen.Function) {
	if !s.opts.ShowIR {
		return
	}
	s.printf("%s\n", header)
	f := codegen.IRFunc(fn)
	switch s.opts.Format {
	case "ssa":
		ir.Fprint(s.out, f)
	default:
		s.check(codegen.EmitFunc(s.out, f))
	}
}

func (s *Session) dumpModule() {
	switch s.opts.Format {
	case "ssa":
		ir.FprintModule(s.out, s.module)
	default:
		s.check(codegen.EmitLLVM(s.out, s.module))
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(s.out, format, args...)
	s.check(err)
}

func (s *Session) check(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Session) prompt() {
	if s.opts.Prompt != "" {
		fmt.Fprint(s.diag, s.opts.Prompt)
	}
}

// ----------------------------------------------------------------------------
// Diagnostics

func (s *Session) syntaxError(pos syntax.Pos, msg string) {
	s.stats.Errors++
	s.log.Warn("syntax error", "pos", pos.String(), "reason", msg)
	s.report(pos, msg)
}

func (s *Session) semanticError(err error) {
	s.stats.Errors++

	var cerr *codegen.Error
	if !errors.As(err, &cerr) {
		s.log.Warn("lowering failed", "err", err)
		s.report(syntax.Pos{}, err.Error())
		return
	}
	s.log.Warn("lowering failed", "pos", cerr.Pos.String(), "kind", cerr.Kind, "name", cerr.Name)
	s.report(cerr.Pos, cerr.Msg)
}

// report writes "pos: error: msg" to the diagnostic stream.
func (s *Session) report(pos syntax.Pos, msg string) {
	var b strings.Builder
	if pos.IsKnown() {
		b.WriteString(s.styles.render(s.styles.pos, pos.String()+":"))
		b.WriteByte(' ')
	}
	b.WriteString(s.styles.render(s.styles.err, "error:"))
	b.WriteByte(' ')
	b.WriteString(msg)
	b.WriteByte('\n')
	fmt.Fprint(s.diag, b.String())
}
