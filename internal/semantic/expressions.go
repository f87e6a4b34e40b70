package semantic

import (
	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/internal/tac"
)

// eval is the result of walking an expression node: its static type, the TAC
// operand callers should reference it by, and — only for expressions whose
// value is known at compile time — the folded Go value.
//
// Per the original implementation's "literal folding vs. identifier-never-
// folds" distinction, an identifier read always yields
// isLiteral=false even when the symbol's current value happens to be known;
// only literal nodes and operations over literal operands fold.
type eval struct {
	Type      symtab.Type
	Operand   tac.Operand
	Folded    any
	IsLiteral bool
}

// visitExpr dispatches over the closed expression-node set (spec §9: a type
// switch replaces the original's string-keyed `visitar_{tag}` lookup).
func (a *analyzer) visitExpr(n ast.Node) eval {
	switch node := n.(type) {
	case *ast.IntLit:
		return eval{Type: symtab.Int, Operand: tac.Lit(node.Value), Folded: node.Value, IsLiteral: true}
	case *ast.RealLit:
		return eval{Type: symtab.Float, Operand: tac.Lit(node.Value), Folded: node.Value, IsLiteral: true}
	case *ast.BoolLit:
		return eval{Type: symtab.Bool, Operand: tac.Lit(node.Value), Folded: node.Value, IsLiteral: true}
	case *ast.StringLit:
		return eval{Type: symtab.Int, Operand: tac.Str(node.Value)}
	case *ast.Ident:
		return a.visitIdentRead(node)
	case *ast.BinaryExpr:
		return a.visitBinary(node)
	case *ast.UnaryExpr:
		return a.visitUnary(node)
	case *ast.Reserved:
		return eval{Type: symtab.Int, Operand: tac.Var(node.Word)}
	default:
		return eval{Type: symtab.Int, Operand: tac.Lit(int64(0))}
	}
}

func (a *analyzer) visitIdentRead(id *ast.Ident) eval {
	sym, ok := a.symbols.Lookup(id.Name)
	if !ok {
		a.errorf(id, "undeclared", "undeclared identifier %q", id.Name)
		return eval{Type: symtab.Int, Operand: tac.Var(id.Name)}
	}
	a.symbols.MarkUsed(id.Name, id.Position.Line)
	if !sym.Initialized {
		a.warnf(id, "uninitialised_use", "use of possibly uninitialised variable %q", id.Name)
	}
	return eval{Type: sym.Type, Operand: tac.Var(id.Name)}
}

// visitBinary implements sum_op/mul_op/pow_op/rel_op/log_op (spec §4.3):
// both operands are evaluated; if both fold to literals the result is
// folded too and no TAC is emitted for this node (see DESIGN.md's resolution
// of the constant-folding-TAC-redundancy Open Question); otherwise a fresh
// temporary carries the result.
func (a *analyzer) visitBinary(n *ast.BinaryExpr) eval {
	left := a.visitExpr(n.Left)
	right := a.visitExpr(n.Right)

	resultType, ok := a.checkOperandTypes(n, left.Type, right.Type)
	if !ok {
		return eval{Type: resultType, Operand: tac.Lit(int64(0))}
	}

	if left.IsLiteral && right.IsLiteral {
		if folded, foldedType, ok := foldBinary(n.Op, left.Folded, right.Folded); ok {
			return eval{Type: foldedType, Operand: tac.Lit(folded), Folded: folded, IsLiteral: true}
		}
	}

	temp := a.newTemp()
	a.code.Add(tac.Instr{Kind: tac.AssignBinary, Name: temp, Op: n.Op, Left: left.Operand, Right: right.Operand})
	return eval{Type: resultType, Operand: tac.Temp(temp)}
}

// visitUnary implements the logical-not and unary-minus forms (spec §4.3's
// `name = ! operand` and `name = 0 - operand`).
func (a *analyzer) visitUnary(n *ast.UnaryExpr) eval {
	operand := a.visitExpr(n.Operand)

	switch n.Op {
	case "!":
		if operand.IsLiteral {
			folded := !truthy(operand.Folded)
			return eval{Type: symtab.Bool, Operand: tac.Lit(folded), Folded: folded, IsLiteral: true}
		}
		temp := a.newTemp()
		a.code.Add(tac.Instr{Kind: tac.AssignNot, Name: temp, Right: operand.Operand})
		return eval{Type: symtab.Bool, Operand: tac.Temp(temp)}

	case "-":
		if operand.Type != symtab.Int && operand.Type != symtab.Float {
			a.errorf(n, "non_numeric_unary", "unary '-' requires a numeric operand")
		}
		if operand.IsLiteral {
			folded := negate(operand.Folded)
			return eval{Type: operand.Type, Operand: tac.Lit(folded), Folded: folded, IsLiteral: true}
		}
		temp := a.newTemp()
		a.code.Add(tac.Instr{Kind: tac.AssignNeg, Name: temp, Right: operand.Operand})
		return eval{Type: operand.Type, Operand: tac.Temp(temp)}

	case "++", "--":
		// Postfix increment/decrement used in expression position (spec's
		// simple_expr trailing {("++"|"--")} clause): allowed only on numeric
		// identifiers, lowers to `tk = x + ±1 ; x = tk`.
		id, isIdent := n.Operand.(*ast.Ident)
		if !isIdent {
			a.errorf(n, "non_numeric_unary", "%q requires an identifier operand", n.Op)
			return operand
		}
		return a.emitIncrDecr(*id, n.Op)

	default:
		return operand
	}
}

// emitIncrDecr is shared by UnaryStmt (`x++;`) and the expression-position
// postfix form.
func (a *analyzer) emitIncrDecr(id ast.Ident, op string) eval {
	sym, ok := a.symbols.Lookup(id.Name)
	if !ok {
		a.errorf(&id, "undeclared", "undeclared identifier %q", id.Name)
		return eval{Type: symtab.Int, Operand: tac.Var(id.Name)}
	}
	if sym.Type != symtab.Int && sym.Type != symtab.Float {
		a.errorf(&id, "non_numeric_unary", "%q requires a numeric operand, got %s", op, sym.Type)
	}
	// ++/-- both reads and writes the operand; mark-used twice so a
	// unused-variable pass never flags a variable only ever touched this way.
	a.symbols.MarkUsed(id.Name, id.Position.Line)
	a.symbols.MarkUsed(id.Name, id.Position.Line)

	delta := int64(1)
	if op == "--" {
		delta = -1
	}
	temp := a.newTemp()
	a.code.Add(tac.Instr{Kind: tac.AssignBinary, Name: temp, Op: "+", Left: tac.Var(id.Name), Right: tac.Lit(delta)})
	a.code.Add(tac.Instr{Kind: tac.AssignCopy, Name: id.Name, Right: tac.Temp(temp)})
	a.symbols.MarkInitialized(id.Name, nil)
	return eval{Type: sym.Type, Operand: tac.Var(id.Name)}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return false
	}
}

func negate(v any) any {
	switch val := v.(type) {
	case int64:
		return -val
	case float64:
		return -val
	default:
		return v
	}
}

// checkOperandTypes enforces spec §4.3's operand-type rules and returns the
// result type for n.Kind/n.Op.
func (a *analyzer) checkOperandTypes(n *ast.BinaryExpr, lt, rt symtab.Type) (symtab.Type, bool) {
	numeric := func(t symtab.Type) bool { return t == symtab.Int || t == symtab.Float }

	switch n.Kind {
	case ast.SumOp, ast.MulOp, ast.PowOp:
		if !numeric(lt) || !numeric(rt) {
			a.errorf(n, "operator_type_mismatch", "operator %q requires numeric operands, got %s and %s", n.Op, lt, rt)
			return symtab.Int, false
		}
		if lt == symtab.Float || rt == symtab.Float {
			return symtab.Float, true
		}
		return symtab.Int, true

	case ast.RelOp:
		if !numeric(lt) || !numeric(rt) {
			a.errorf(n, "operator_type_mismatch", "operator %q requires numeric operands, got %s and %s", n.Op, lt, rt)
			return symtab.Bool, false
		}
		return symtab.Bool, true

	case ast.LogOp:
		// && and || accept any numeric/boolean operand via truthiness.
		return symtab.Bool, true

	default:
		return symtab.Int, true
	}
}

// foldBinary constant-folds a binary operation over two literal Go values.
// Division truncates to integer semantics iff both operands are integers
// (spec §4.3: "Truncate int op int even when the raw result is fractional").
func foldBinary(op string, l, r any) (result any, typ symtab.Type, ok bool) {
	switch op {
	case "&&", "||":
		lb, rb := truthy(l), truthy(r)
		if op == "&&" {
			return lb && rb, symtab.Bool, true
		}
		return lb || rb, symtab.Bool, true
	}

	switch op {
	case "<", ">", "<=", ">=", "==", "!=":
		lf, rf := asFloat(l), asFloat(r)
		var b bool
		switch op {
		case "<":
			b = lf < rf
		case ">":
			b = lf > rf
		case "<=":
			b = lf <= rf
		case ">=":
			b = lf >= rf
		case "==":
			b = lf == rf
		case "!=":
			b = lf != rf
		}
		return b, symtab.Bool, true
	}

	li, lIsInt := l.(int64)
	ri, rIsInt := r.(int64)
	bothInt := lIsInt && rIsInt

	if bothInt {
		switch op {
		case "+":
			return li + ri, symtab.Int, true
		case "-":
			return li - ri, symtab.Int, true
		case "*":
			return li * ri, symtab.Int, true
		case "/":
			if ri == 0 {
				return int64(0), symtab.Int, true
			}
			return li / ri, symtab.Int, true
		case "%":
			if ri == 0 {
				return int64(0), symtab.Int, true
			}
			return li % ri, symtab.Int, true
		case "^":
			return intPow(li, ri), symtab.Int, true
		}
	}

	lf, rf := asFloat(l), asFloat(r)
	switch op {
	case "+":
		return lf + rf, symtab.Float, true
	case "-":
		return lf - rf, symtab.Float, true
	case "*":
		return lf * rf, symtab.Float, true
	case "/":
		if rf == 0 {
			return float64(0), symtab.Float, true
		}
		return lf / rf, symtab.Float, true
	case "%":
		return float64(0), symtab.Float, true
	case "^":
		return floatPow(lf, rf), symtab.Float, true
	}
	return nil, symtab.Int, false
}

func asFloat(v any) float64 {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func floatPow(base, exp float64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0.0; i < exp; i++ {
		result *= base
	}
	if neg && result != 0 {
		return 1 / result
	}
	return result
}
