// Package semantic implements the tree-walking analyzer from spec §4.3:
// analyse(ast) → (symbol_table, errors, warnings, tac, node_annotations).
// A single pre-order walk populates the symbol table, checks declarations,
// uses and type compatibility, folds constant expressions, and emits TAC as
// a side effect. Dispatch is a Go type switch over the closed ast.Node set
// rather than the original string-keyed `visitar_{tag}` lookup (spec §9).
// Result carries the symbol table, TAC and diagnostics; no node annotations
// are produced, and the AST is left unmodified.
package semantic

import (
	"fmt"

	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/tac"
	"github.com/aketzali/minic/internal/token"
)

// Result bundles every artifact one analysis run produces.
type Result struct {
	Symbols *symtab.Table
	TAC     *tac.Program
	Diags   []*diag.Diagnostic
}

type analyzer struct {
	symbols *symtab.Table
	code    *tac.Program
	diags   []*diag.Diagnostic

	source string
	file   string

	tempSeq  int
	labelSeq int
}

// Analyze runs the semantic pass over prog. buckets configures the symbol
// table's hash-bucket count (spec §9: make table/VM sizing a parameter);
// pass 0 for the spec default of 100.
func Analyze(prog *ast.Program, source, file string, buckets int) Result {
	a := &analyzer{
		symbols: symtab.New(buckets),
		code:    &tac.Program{},
		source:  source,
		file:    file,
	}
	a.visitProgram(prog)
	a.checkUnused()
	return Result{Symbols: a.symbols, TAC: a.code, Diags: a.diags}
}

func (a *analyzer) newTemp() string {
	name := fmt.Sprintf("t%d", a.tempSeq)
	a.tempSeq++
	return name
}

func (a *analyzer) newLabel() string {
	name := fmt.Sprintf("L%d", a.labelSeq)
	a.labelSeq++
	return name
}

func (a *analyzer) errorf(pos ast.Node, code, format string, args ...any) {
	a.diags = append(a.diags, diag.New(toDiagPos(pos.Pos()), fmt.Sprintf(format, args...), code, a.source, a.file))
}

func (a *analyzer) warnf(pos ast.Node, code, format string, args ...any) {
	a.diags = append(a.diags, diag.NewWarning(toDiagPos(pos.Pos()), fmt.Sprintf(format, args...), code, a.source, a.file))
}

func toDiagPos(p token.Position) diag.Position {
	return diag.Position{Line: p.Line, Column: p.Column}
}

func (a *analyzer) visitProgram(p *ast.Program) {
	for _, decl := range p.Declarations {
		a.visitDeclaration(decl)
	}
}

func (a *analyzer) visitDeclaration(n ast.Node) {
	switch node := n.(type) {
	case *ast.VarDecl:
		a.visitVarDecl(node)
	default:
		a.visitStatement(n)
	}
}

func (a *analyzer) checkUnused() {
	for _, sym := range a.symbols.All() {
		if !sym.Used {
			a.diags = append(a.diags, diag.NewWarning(
				diag.Position{Line: sym.DeclLine, Column: sym.DeclColumn},
				fmt.Sprintf("unused variable %q", sym.Name),
				"unused", a.source, a.file,
			))
		}
	}
}
