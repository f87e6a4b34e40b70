// Package minic is the library surface spec §6 names: scan, parse, analyse,
// lower and execute, each a thin wrapper over the corresponding internal
// package so a UI (or a test) can drive one stage at a time without reaching
// into internal/.
package minic

import (
	"io"

	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/internal/lexer"
	"github.com/aketzali/minic/internal/parser"
	"github.com/aketzali/minic/internal/pcode"
	"github.com/aketzali/minic/internal/semantic"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/tac"
	"github.com/aketzali/minic/internal/token"
	"github.com/aketzali/minic/internal/vm"
)

// Scan tokenizes source (spec §6: scan(source) → (tokens, errors)).
func Scan(source, filename string) ([]token.Token, []*diag.Diagnostic) {
	return lexer.Scan(source, lexer.WithFilename(filename))
}

// Parse builds the AST from a token stream (spec §6: parse(tokens) →
// (ast, errors)).
func Parse(tokens []token.Token, source, filename string) (*ast.Program, []*diag.Diagnostic) {
	return parser.Parse(tokens, source, filename)
}

// AnalyseOptions configures the symbol table's sizing; zero means the spec
// default of 100 buckets.
type AnalyseOptions struct {
	SymbolBuckets int
}

// Analyse runs the semantic pass, emitting TAC as a side effect (spec §6:
// analyse(ast) → (symbols, errors, warnings, tac, annotations)). The
// "annotations" spec names are carried on the AST itself in the original
// design; this port keeps that state inside the analyzer and surfaces only
// the symbol table and TAC, which is what every downstream stage consumes.
func Analyse(prog *ast.Program, source, filename string, opts AnalyseOptions) (*symtab.Table, *tac.Program, []*diag.Diagnostic) {
	result := semantic.Analyze(prog, source, filename, opts.SymbolBuckets)
	return result.Symbols, result.TAC, result.Diags
}

// Lower implements spec §6: lower(tac) → pcode.
func Lower(program *tac.Program) *pcode.Program {
	return pcode.Lower(program)
}

// ExecuteOptions configures the VM's memory size and optional instruction
// trace.
type ExecuteOptions struct {
	MemorySize int
	Trace      io.Writer
}

// Execute runs a lowered program against stdin/stdout (spec §6:
// execute(pcode) — reads stdin, writes stdout) and returns any runtime
// diagnostics accumulated along the way (division by zero, unknown
// mnemonics — spec §7's "Runtime (VM)" error kind).
func Execute(program *pcode.Program, stdin io.Reader, stdout io.Writer, opts ExecuteOptions) ([]string, error) {
	var vmOpts []vm.Option
	if opts.MemorySize > 0 {
		vmOpts = append(vmOpts, vm.WithMemorySize(opts.MemorySize))
	}
	if opts.Trace != nil {
		vmOpts = append(vmOpts, vm.WithTrace(opts.Trace))
	}
	m := vm.New(stdin, stdout, vmOpts...)
	err := m.Execute(program)
	return m.Diagnostics(), err
}

// CompileResult bundles every artefact a full front-end-through-TAC run
// produces, for subcommands that need more than one stage's output (tac,
// pcode, run).
type CompileResult struct {
	Tokens  []token.Token
	Program *ast.Program
	Symbols *symtab.Table
	TAC     *tac.Program
	Diags   []*diag.Diagnostic
}

// Compile runs scan → parse → analyse in sequence, accumulating diagnostics
// from every stage (spec §7: "Every stage returns its own diagnostics list
// and continues on recoverable errors; downstream stages still run on a
// best-effort basis").
func Compile(source, filename string, opts AnalyseOptions) CompileResult {
	var all []*diag.Diagnostic

	tokens, scanDiags := Scan(source, filename)
	all = append(all, scanDiags...)

	prog, parseDiags := Parse(tokens, source, filename)
	all = append(all, parseDiags...)

	var symbols *symtab.Table
	var code *tac.Program
	if prog != nil {
		var semDiags []*diag.Diagnostic
		symbols, code, semDiags = Analyse(prog, source, filename, opts)
		all = append(all, semDiags...)
	}

	return CompileResult{Tokens: tokens, Program: prog, Symbols: symbols, TAC: code, Diags: all}
}
