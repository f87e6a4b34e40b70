package semantic

import (
	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/tac"
)

func (a *analyzer) visitStatement(n ast.Node) {
	switch node := n.(type) {
	case *ast.Assignment:
		a.visitAssignment(node)
	case *ast.UnaryStmt:
		a.emitIncrDecr(node.Target, node.Op)
	case *ast.ExprStmt:
		a.visitExpr(node.Expr)
	case *ast.InputStmt:
		a.visitInput(node)
	case *ast.OutputStmt:
		a.visitOutput(node)
	case *ast.IfStmt:
		a.visitIf(node)
	case *ast.WhileStmt:
		a.visitWhile(node)
	case *ast.DoWhileStmt:
		a.visitDoWhile(node)
	case *ast.Block:
		a.visitBlock(node)
	default:
		// Unreachable for a well-formed parse; ignore silently rather than
		// crash the pipeline (spec §7: "never propagated" as a raw panic).
	}
}

func (a *analyzer) visitBlock(b *ast.Block) {
	for _, stmt := range b.Statements {
		a.visitDeclaration(stmt)
	}
}

// visitAssignment evaluates the RHS before checking the LHS so a folded
// value surfaces even when the target is undeclared (spec §4.3).
func (a *analyzer) visitAssignment(n *ast.Assignment) {
	rhs := a.visitExpr(n.Value)

	sym, ok := a.symbols.Lookup(n.Target.Name)
	if !ok {
		a.errorf(&n.Target, "undeclared", "undeclared identifier %q", n.Target.Name)
		a.code.Add(tac.Instr{Kind: tac.AssignCopy, Name: n.Target.Name, Right: rhs.Operand})
		return
	}

	if !typesCompatible(sym.Type, rhs.Type) {
		a.errorf(n, "type_mismatch", "cannot assign %s to %q of type %s", rhs.Type, n.Target.Name, sym.Type)
	}

	a.symbols.MarkUsed(n.Target.Name, n.Target.Position.Line)
	if rhs.IsLiteral {
		a.symbols.MarkInitialized(n.Target.Name, rhs.Folded)
	} else {
		a.symbols.MarkInitialized(n.Target.Name, nil)
	}

	a.code.Add(tac.Instr{Kind: tac.AssignCopy, Name: n.Target.Name, Right: rhs.Operand})
}

// typesCompatible allows identical types, or assigning an int value into a
// float variable (spec §4.3: "identical types, or float := int").
func typesCompatible(target, value symtab.Type) bool {
	if target == value {
		return true
	}
	return target == symtab.Float && value == symtab.Int
}

func (a *analyzer) visitInput(n *ast.InputStmt) {
	if _, ok := a.symbols.Lookup(n.Target.Name); !ok {
		a.errorf(&n.Target, "undeclared", "undeclared identifier %q", n.Target.Name)
		a.code.Add(tac.Instr{Kind: tac.Read, Name: n.Target.Name})
		return
	}
	a.symbols.MarkUsed(n.Target.Name, n.Target.Position.Line)
	a.symbols.MarkInitialized(n.Target.Name, "<input>")
	a.code.Add(tac.Instr{Kind: tac.Read, Name: n.Target.Name})
}

func (a *analyzer) visitOutput(n *ast.OutputStmt) {
	for _, val := range n.Values {
		result := a.visitExpr(val)
		a.code.Add(tac.Instr{Kind: tac.Write, WriteOp: result.Operand})
	}
}

// visitIf implements the TAC shapes in spec §4.3: with an else branch,
// `if not cond goto L_else / then / goto L_end / L_else: / else / L_end:`;
// without one, a single `L_end`.
func (a *analyzer) visitIf(n *ast.IfStmt) {
	cond := a.visitExpr(n.Cond)
	if cond.Type != symtab.Bool {
		a.warnf(n, "condition_not_bool", "if condition is not boolean")
	}

	labelEnd := a.newLabel()

	if n.Else != nil {
		labelElse := a.newLabel()
		a.code.Add(tac.Instr{Kind: tac.IfGoto, Negate: true, Right: cond.Operand, Target: labelElse})
		a.visitBlock(n.Then)
		a.code.Add(tac.Instr{Kind: tac.Goto, Target: labelEnd})
		a.code.Add(tac.Instr{Kind: tac.Label, Label: labelElse})
		a.visitBlock(n.Else)
		a.code.Add(tac.Instr{Kind: tac.Label, Label: labelEnd})
		return
	}

	a.code.Add(tac.Instr{Kind: tac.IfGoto, Negate: true, Right: cond.Operand, Target: labelEnd})
	a.visitBlock(n.Then)
	a.code.Add(tac.Instr{Kind: tac.Label, Label: labelEnd})
}

// visitWhile: `L_start / cond / if not cond goto L_end / body / goto L_start
// / L_end` (spec §4.3).
func (a *analyzer) visitWhile(n *ast.WhileStmt) {
	labelStart := a.newLabel()
	labelEnd := a.newLabel()

	a.code.Add(tac.Instr{Kind: tac.Label, Label: labelStart})
	cond := a.visitExpr(n.Cond)
	if cond.Type != symtab.Bool {
		a.warnf(n, "condition_not_bool", "while condition is not boolean")
	}
	a.code.Add(tac.Instr{Kind: tac.IfGoto, Negate: true, Right: cond.Operand, Target: labelEnd})
	a.visitBlock(n.Body)
	a.code.Add(tac.Instr{Kind: tac.Goto, Target: labelStart})
	a.code.Add(tac.Instr{Kind: tac.Label, Label: labelEnd})
}

// visitDoWhile: `L_start / body / if cond goto L_start` (spec §4.3; note the
// positive "if cond goto" form, unlike while's negated jump).
func (a *analyzer) visitDoWhile(n *ast.DoWhileStmt) {
	labelStart := a.newLabel()

	a.code.Add(tac.Instr{Kind: tac.Label, Label: labelStart})
	a.visitBlock(n.Body)
	cond := a.visitExpr(n.Cond)
	if cond.Type != symtab.Bool {
		a.warnf(n, "condition_not_bool", "do-while condition is not boolean")
	}
	a.code.Add(tac.Instr{Kind: tac.IfGoto, Right: cond.Operand, Target: labelStart})
}
