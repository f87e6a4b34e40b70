package semantic

import (
	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/tac"
)

func parseType(name string) symtab.Type {
	switch name {
	case "float":
		return symtab.Float
	case "bool":
		return symtab.Bool
	default:
		return symtab.Int
	}
}

// visitVarDecl inserts each declared identifier into the symbol table,
// emitting `DECLARE name type`. A duplicate name in the same declaration or
// anywhere earlier raises "redeclared" and the duplicate's line still gets
// recorded against the existing symbol's use history (spec §4.3).
func (a *analyzer) visitVarDecl(decl *ast.VarDecl) {
	typ := parseType(decl.Type)
	for _, id := range decl.Names {
		sym, inserted := a.symbols.Insert(id.Name, typ, id.Position.Line, id.Position.Column)
		if !inserted {
			a.errorf(&id, "redeclared", "%q already declared at L%d C%d", id.Name, sym.DeclLine, sym.DeclColumn)
			a.symbols.MarkUsed(id.Name, id.Position.Line)
			continue
		}
		a.code.Add(tac.Instr{Kind: tac.Declare, Name: id.Name, Type: decl.Type})
	}
}
