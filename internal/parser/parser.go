// Package parser implements the recursive-descent parser from spec §4.2:
// parse(tokens) → (ast, errors). Every production returns either a node or
// nil and appends to the diagnostics list; the parser never panics on
// malformed input, relying instead on the panic-mode recovery in
// error_recovery.go.
package parser

import (
	"fmt"

	"github.com/aketzali/minic/internal/ast"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/internal/token"
)

// Parser holds the token cursor and accumulated diagnostics for one parse.
type Parser struct {
	tokens []token.Token
	pos    int

	source string
	file   string

	diags []*diag.Diagnostic
}

// New creates a Parser over a finished token stream (the output of
// lexer.Scan). source and file are only used to annotate diagnostics with
// source context.
func New(tokens []token.Token, source, file string) *Parser {
	return &Parser{tokens: tokens, source: source, file: file}
}

// Parse runs the parser to completion and returns the program AST (always
// non-nil, even when riddled with errors) plus diagnostics.
func Parse(tokens []token.Token, source, file string) (*ast.Program, []*diag.Diagnostic) {
	p := New(tokens, source, file)
	prog := p.parseProgram()
	return prog, p.diags
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

// is reports whether the current token is a RESERVED/SYMBOL/etc. token with
// the given lexeme.
func (p *Parser) is(lexeme string) bool {
	return p.cur().Lexeme == lexeme && !p.atEOF()
}

func (p *Parser) isKind(k token.Kind) bool {
	return p.cur().Kind == k
}

// accept consumes the current token if it matches lexeme, returning whether
// it did.
func (p *Parser) accept(lexeme string) bool {
	if p.is(lexeme) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches lexeme; otherwise it
// reports an error and leaves the cursor in place for recovery.
func (p *Parser) expect(lexeme, context string) bool {
	if p.accept(lexeme) {
		return true
	}
	p.errorf(p.cur().Pos, "expected %q %s, got %q instead", lexeme, context, p.cur().Lexeme)
	return false
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.diags = append(p.diags, diag.New(toDiagPos(pos), fmt.Sprintf(format, args...), "syntax", p.source, p.file))
}

func (p *Parser) warnf(pos token.Position, format string, args ...any) {
	p.diags = append(p.diags, diag.NewWarning(toDiagPos(pos), fmt.Sprintf(format, args...), "syntax", p.source, p.file))
}

func toDiagPos(pos token.Position) diag.Position {
	return diag.Position{Line: pos.Line, Column: pos.Column}
}

// parseProgram: program = "main" "{" declaration_list "}" .
func (p *Parser) parseProgram() *ast.Program {
	start := p.cur().Pos
	prog := &ast.Program{Position: start}

	if !p.expect("main", "at start of program") {
		p.synchronize(SyncDeclarationStarters)
	}
	if !p.expect("{", "after main") {
		p.synchronize(SyncDeclarationStarters)
	}

	for !p.is("}") && !p.atEOF() {
		before := p.pos
		decl := p.parseDeclaration()
		if decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
		if p.pos == before {
			// No progress: avoid an infinite loop on unrecognized input.
			p.errorf(p.cur().Pos, "unexpected token %q", p.cur().Lexeme)
			p.advance()
		}
	}
	p.expect("}", "to close main block")

	return prog
}

// parseDeclaration: declaration = variable_declaration | statement .
func (p *Parser) parseDeclaration() ast.Node {
	if p.is("int") || p.is("float") || p.is("bool") {
		return p.parseVarDecl()
	}
	return p.parseStatement()
}

// parseVarDecl: variable_declaration = typeKeyword identifier {"," identifier} ";" .
func (p *Parser) parseVarDecl() ast.Node {
	start := p.cur().Pos
	typeName := p.advance().Lexeme

	decl := &ast.VarDecl{Position: start, Type: typeName}

	for {
		if !p.isKind(token.IDENTIFIER) {
			p.errorf(p.cur().Pos, "expected identifier in %s declaration, got %q", typeName, p.cur().Lexeme)
			p.synchronize(SyncDeclarationStarters)
			return decl
		}
		idTok := p.advance()
		decl.Names = append(decl.Names, ast.Ident{Position: idTok.Pos, Name: idTok.Lexeme})
		if !p.accept(",") {
			break
		}
	}

	if !p.expect(";", "after variable declaration") {
		p.synchronize(SyncDeclarationStarters)
	}
	return decl
}

// parseStatement dispatches on the current token to one of the statement
// productions.
func (p *Parser) parseStatement() ast.Node {
	switch {
	case p.is("cout"):
		return p.parseOutput()
	case p.is("cin"):
		return p.parseInput()
	case p.is("if"):
		return p.parseIf()
	case p.is("while"):
		return p.parseWhile()
	case p.is("do"):
		return p.parseDoWhile()
	case p.is("{"):
		return p.parseBlock()
	case p.isKind(token.IDENTIFIER):
		return p.parseIdentifierLedStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseIdentifierLedStatement disambiguates assignment, unary_statement and
// a bare expression_statement, all of which may start with an identifier.
func (p *Parser) parseIdentifierLedStatement() ast.Node {
	next := p.peekAt(1)

	switch {
	case next.Kind == token.ASSIGN:
		return p.parseAssignment()
	case next.Lexeme == "++" || next.Lexeme == "--":
		return p.parseUnaryStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseAssignment() ast.Node {
	idTok := p.advance()
	start := idTok.Pos
	p.expect("=", "in assignment")
	value := p.parseExpression()
	p.expectSemicolon()
	return &ast.Assignment{
		Position: start,
		Target:   ast.Ident{Position: idTok.Pos, Name: idTok.Lexeme},
		Value:    value,
	}
}

func (p *Parser) parseUnaryStatement() ast.Node {
	idTok := p.advance()
	opTok := p.advance()
	p.expectSemicolon()
	return &ast.UnaryStmt{
		Position: idTok.Pos,
		Target:   ast.Ident{Position: idTok.Pos, Name: idTok.Lexeme},
		Op:       opTok.Lexeme,
	}
}

func (p *Parser) parseExpressionStatement() ast.Node {
	start := p.cur().Pos
	expr := p.parseExpression()
	p.expectSemicolon()
	return &ast.ExprStmt{Position: start, Expr: expr}
}

// parseOutput: output = "cout" ("<<" expression)+ ";" .
func (p *Parser) parseOutput() ast.Node {
	start := p.advance().Pos // "cout"
	out := &ast.OutputStmt{Position: start}
	for p.accept("<<") {
		out.Values = append(out.Values, p.parseExpression())
	}
	if len(out.Values) == 0 {
		p.errorf(p.cur().Pos, "expected \"<<\" after cout")
	}
	p.expectSemicolon()
	return out
}

// parseInput: input = "cin" ">>" identifier ";" .
func (p *Parser) parseInput() ast.Node {
	start := p.advance().Pos // "cin"
	p.expect(">>", "after cin")
	in := &ast.InputStmt{Position: start}
	if p.isKind(token.IDENTIFIER) {
		idTok := p.advance()
		in.Target = ast.Ident{Position: idTok.Pos, Name: idTok.Lexeme}
	} else {
		p.errorf(p.cur().Pos, "expected identifier after cin >>")
	}
	p.expectSemicolon()
	return in
}

// parseIf: selection = "if" "(" expression ")" block ["else" block] "end"? .
// Per spec §9, "then" may optionally appear before the block and "end" may
// optionally terminate the construct; a missing "end" is a warning, not an
// error (see SPEC_FULL.md Supplemented Features).
func (p *Parser) parseIf() ast.Node {
	start := p.advance().Pos // "if"
	p.expect("(", "after if")
	cond := p.parseExpression()
	p.expect(")", "to close if condition")
	p.accept("then")

	thenBlock := p.parseBlockNode()
	ifStmt := &ast.IfStmt{Position: start, Cond: cond, Then: thenBlock}

	if p.accept("else") {
		ifStmt.Else = p.parseBlockNode()
	}

	if !p.accept("end") {
		ifStmt.EndMissing = true
		p.warnf(p.cur().Pos, "missing \"end\" after if construct")
	}

	return ifStmt
}

// parseWhile: while_stmt = "while" "(" expression ")" block .
func (p *Parser) parseWhile() ast.Node {
	start := p.advance().Pos
	p.expect("(", "after while")
	cond := p.parseExpression()
	p.expect(")", "to close while condition")
	body := p.parseBlockNode()
	return &ast.WhileStmt{Position: start, Cond: cond, Body: body}
}

// parseDoWhile: do_while_stmt = "do" block "while" "(" expression ")" ";" .
func (p *Parser) parseDoWhile() ast.Node {
	start := p.advance().Pos
	body := p.parseBlockNode()
	p.expect("while", "after do block")
	p.expect("(", "after while")
	cond := p.parseExpression()
	p.expect(")", "to close do-while condition")
	p.expectSemicolon()
	return &ast.DoWhileStmt{Position: start, Body: body, Cond: cond}
}

// parseBlock parses a braced block directly (used when the grammar requires
// "{" specifically, as in the bare block statement).
func (p *Parser) parseBlock() ast.Node {
	return p.parseBlockNode()
}

// parseBlockNode implements `block = "{" { statement } "}" | statement`.
func (p *Parser) parseBlockNode() *ast.Block {
	start := p.cur().Pos
	if !p.accept("{") {
		// Bare single-statement block.
		stmt := p.parseStatement()
		if stmt == nil {
			return &ast.Block{Position: start}
		}
		return &ast.Block{Position: start, Statements: []ast.Node{stmt}}
	}

	block := &ast.Block{Position: start}
	for !p.is("}") && !p.atEOF() && !p.is("else") && !p.is("end") {
		before := p.pos
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == before {
			p.errorf(p.cur().Pos, "unexpected token %q in block", p.cur().Lexeme)
			p.advance()
		}
	}
	p.expect("}", "to close block")
	return block
}

func (p *Parser) expectSemicolon() {
	if !p.expect(";", "to terminate statement") {
		p.synchronize(SyncStatementStarters)
	}
}
