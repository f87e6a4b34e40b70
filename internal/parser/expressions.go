package parser

import (
	"strconv"

	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/token"
)

// parseExpression: expression = simple_expr { (rel_op|log_op) simple_expr } .
// Relational and logical operators share one precedence level in this
// grammar (spec §4.2's precedence table lists them together as "lowest").
func (p *Parser) parseExpression() ast.Node {
	left := p.parseSimpleExpr()
	for p.isKind(token.REL_OP) || p.isKind(token.LOG_OP) {
		opTok := p.advance()
		right := p.parseSimpleExpr()
		left = &ast.BinaryExpr{
			Position: opTok.Pos,
			Kind:     kindFor(opTok.Kind),
			Op:       opTok.Lexeme,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

func kindFor(k token.Kind) ast.BinaryKind {
	if k == token.REL_OP {
		return ast.RelOp
	}
	return ast.LogOp
}

// parseSimpleExpr: simple_expr = term { ("+"|"-") term } { ("++"|"--") } .
// The trailing ++/-- here is the postfix-in-expression-position form; most
// postfix increments appear as the unary_statement production instead, but
// the grammar also allows one to trail a simple_expr.
func (p *Parser) parseSimpleExpr() ast.Node {
	left := p.parseTerm()
	for p.is("+") || p.is("-") {
		opTok := p.advance()
		right := p.parseTerm()
		left = &ast.BinaryExpr{Position: opTok.Pos, Kind: ast.SumOp, Op: opTok.Lexeme, Left: left, Right: right}
	}
	for p.is("++") || p.is("--") {
		opTok := p.advance()
		left = &ast.UnaryExpr{Position: opTok.Pos, Op: opTok.Lexeme, Operand: left}
	}
	return left
}

// parseTerm: term = factor { ("*"|"/"|"%") factor } .
func (p *Parser) parseTerm() ast.Node {
	left := p.parseFactor()
	for p.is("*") || p.is("/") || p.is("%") {
		opTok := p.advance()
		right := p.parseFactor()
		left = &ast.BinaryExpr{Position: opTok.Pos, Kind: ast.MulOp, Op: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

// parseFactor: factor = component { "^" component } .
// Per SPEC_FULL.md's resolution of the associativity Open Question, "^" is
// right-associative: parsed via recursive descent into the right operand
// rather than the original implementation's left-folding loop.
func (p *Parser) parseFactor() ast.Node {
	left := p.parseComponent()
	if p.is("^") {
		opTok := p.advance()
		right := p.parseFactor() // right-recursive: right-associative
		return &ast.BinaryExpr{Position: opTok.Pos, Kind: ast.PowOp, Op: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

// parseComponent: component = "(" expression ")" | literal | identifier
//
//	| "true" | "false" | "!" component .
func (p *Parser) parseComponent() ast.Node {
	tok := p.cur()

	switch {
	case tok.Lexeme == "(":
		p.advance()
		expr := p.parseExpression()
		p.expect(")", "to close parenthesized expression")
		return expr

	case tok.Lexeme == "!":
		p.advance()
		operand := p.parseComponent()
		return &ast.UnaryExpr{Position: tok.Pos, Op: "!", Operand: operand}

	case tok.Lexeme == "true" || tok.Lexeme == "false":
		p.advance()
		return &ast.BoolLit{Position: tok.Pos, Value: tok.Lexeme == "true"}

	case tok.Kind == token.INT_LITERAL:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "malformed integer literal %q", tok.Lexeme)
		}
		return &ast.IntLit{Position: tok.Pos, Value: v}

	case tok.Kind == token.REAL_LITERAL:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok.Pos, "malformed real literal %q", tok.Lexeme)
		}
		return &ast.RealLit{Position: tok.Pos, Value: v}

	case tok.Kind == token.STRING_LITERAL:
		p.advance()
		return &ast.StringLit{Position: tok.Pos, Value: tok.Lexeme}

	case tok.Kind == token.IDENTIFIER:
		p.advance()
		return &ast.Ident{Position: tok.Pos, Name: tok.Lexeme}

	default:
		p.errorf(tok.Pos, "expected an expression, got %q", tok.Lexeme)
		if !p.atEOF() {
			p.advance()
		}
		return &ast.Reserved{Position: tok.Pos, Word: tok.Lexeme}
	}
}
