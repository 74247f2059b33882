// Package parser implements a recursive-descent parser with syntax-error
// recovery over the token stream produced by lexer.Tokenize.
//
// The grammar climbs precedence the conventional way (assignment at the
// bottom, primary at the top) and never aborts on a syntax error: each
// error is recorded and the parser resynchronizes to the next safe point,
// so Parse always returns a complete (if partially wrong) Program.
package parser

import (
	"fmt"
	"strconv"

	"github.com/rkumar-dev/minic/ast"
	"github.com/rkumar-dev/minic/token"
)

// Parser consumes a fixed token slice produced by the lexer.
type Parser struct {
	tokens  []token.Token
	current int
	Errors  []token.Diagnostic
}

// New creates a Parser over a token stream. tokens must end with an EOF
// token, as lexer.Tokenize guarantees.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the whole token stream and returns the resulting Program
// together with every syntax diagnostic collected along the way.
func Parse(tokens []token.Token) (*ast.Program, []token.Diagnostic) {
	p := New(tokens)
	body := []ast.Stmt{}
	for !p.atEnd() {
		body = append(body, p.declaration())
	}
	return &ast.Program{Body: body}, p.Errors
}

// ---------------- token stream utilities ----------------

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }
func (p *Parser) peek() token.Token { return p.tokens[p.current] }
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kinds ...token.Kind) bool {
	if p.atEnd() {
		return false
	}
	for _, k := range kinds {
		if p.peek().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) match(kinds ...token.Kind) bool {
	if p.check(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	return p.previous()
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.Errors = append(p.Errors, token.Diagnostic{Message: msg, Line: tok.Line, Col: tok.Col})
	p.synchronize()
}

// synchronize advances past the offending token and keeps advancing until
// it consumes a ';', sees a token that starts a new declaration, or sees a
// closing '}'. It always advances at least once, so recovery can never
// loop forever.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMI {
			return
		}
		switch p.peek().Kind {
		case token.KW_IF, token.KW_WHILE, token.KW_FOR, token.KW_RETURN,
			token.KW_INT, token.KW_FLOAT, token.KW_BOOL, token.KW_VOID:
			return
		case token.RBRACE:
			return
		}
		p.advance()
	}
}

var typeKinds = []token.Kind{token.KW_INT, token.KW_FLOAT, token.KW_BOOL, token.KW_VOID}
var paramTypeKinds = []token.Kind{token.KW_INT, token.KW_FLOAT, token.KW_BOOL}

// ---------------- declarations ----------------

func (p *Parser) declaration() ast.Stmt {
	if p.match(typeKinds...) {
		typeTok := p.previous()
		nameTok := p.consume(token.IDENT, "Expected identifier after type")
		if p.match(token.LPAREN) {
			params := p.paramList()
			p.consume(token.RPAREN, "Expected ')' after parameters")
			p.consume(token.LBRACE, "Expected '{' before function body")
			body := p.block()
			return &ast.FunctionDecl{ReturnType: typeTok.Lexeme, Name: nameTok.Lexeme, Params: params, Body: body}
		}
		if typeTok.Kind == token.KW_VOID {
			p.errorAt(typeTok, "'void' is not allowed for variable declarations")
		}
		return p.varDeclAfterType(typeTok, nameTok)
	}
	return p.statement()
}

func (p *Parser) varDeclAfterType(typeTok, nameTok token.Token) *ast.VarDecl {
	var init ast.Expr
	if p.match(token.ASSIGN) {
		init = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' after declaration")
	return &ast.VarDecl{VarType: typeTok.Lexeme, Name: nameTok.Lexeme, Init: init, Line: typeTok.Line, Col: typeTok.Col}
}

func (p *Parser) paramList() []ast.Param {
	var params []ast.Param
	if p.check(token.RPAREN) {
		return params
	}
	for {
		if !p.match(paramTypeKinds...) {
			p.errorAt(p.peek(), "Expected parameter type (int|float|bool)")
			break
		}
		typeTok := p.previous()
		nameTok := p.consume(token.IDENT, "Expected parameter name")
		params = append(params, ast.Param{Type: typeTok.Lexeme, Name: nameTok.Lexeme})
		if !p.match(token.COMMA) {
			break
		}
	}
	return params
}

// ---------------- statements ----------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.KW_FOR):
		return p.forStmt()
	case p.match(token.KW_WHILE):
		return p.whileStmt()
	case p.match(token.KW_IF):
		return p.ifStmt()
	case p.match(token.KW_PRINT):
		return p.printStmt()
	case p.match(token.KW_RETURN):
		return p.returnStmt()
	case p.check(token.LBRACE):
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() *ast.Block {
	if p.check(token.LBRACE) {
		p.advance()
	}
	var statements []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		statements = append(statements, p.declaration())
	}
	p.consume(token.RBRACE, "Expected '}' after block")
	return &ast.Block{Statements: statements}
}

func (p *Parser) forStmt() *ast.For {
	p.consume(token.LPAREN, "Expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.match(paramTypeKinds...):
		typeTok := p.previous()
		nameTok := p.consume(token.IDENT, "Expected variable name")
		init = p.varDeclAfterType(typeTok, nameTok)
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' after loop condition")

	var post ast.Stmt
	if !p.check(token.RPAREN) {
		post = &ast.ExprStmt{X: p.expression()}
	}
	p.consume(token.RPAREN, "Expected ')' after for clauses")

	body := p.statement()
	return &ast.For{Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) whileStmt() *ast.While {
	p.consume(token.LPAREN, "Expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RPAREN, "Expected ')' after condition")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) ifStmt() *ast.If {
	p.consume(token.LPAREN, "Expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RPAREN, "Expected ')' after condition")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.KW_ELSE) {
		els = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) printStmt() *ast.Print {
	p.consume(token.LPAREN, "Expected '(' after 'print'")
	e := p.expression()
	p.consume(token.RPAREN, "Expected ')' after expression")
	p.consume(token.SEMI, "Expected ';' after print(...) expression")
	return &ast.Print{Expr: e}
}

func (p *Parser) returnStmt() *ast.Return {
	var e ast.Expr
	if !p.check(token.SEMI) {
		e = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' after return")
	return &ast.Return{Expr: e}
}

func (p *Parser) exprStmt() *ast.ExprStmt {
	e := p.expression()
	p.consume(token.SEMI, "Expected ';' after expression")
	return &ast.ExprStmt{X: e}
}

// ---------------- expressions ----------------

func (p *Parser) expression() ast.Expr { return p.assignment() }

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()
	if p.match(token.ASSIGN) {
		equals := p.previous()
		value := p.assignment()
		if v, ok := expr.(*ast.Var); ok {
			return &ast.Assign{Name: v.Name, Value: value, Line: equals.Line, Col: equals.Col}
		}
		p.errorAt(equals, "Invalid assignment target")
	}
	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		expr = &ast.Binary{Left: expr, Op: "||", Right: p.logicAnd()}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		expr = &ast.Binary{Left: expr, Op: "&&", Right: p.equality()}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQ, token.NE) {
		op := p.previous().Lexeme
		expr = &ast.Binary{Left: expr, Op: op, Right: p.comparison()}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LT, token.LE, token.GT, token.GE) {
		op := p.previous().Lexeme
		expr = &ast.Binary{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous().Lexeme
		expr = &ast.Binary{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous().Lexeme
		expr = &ast.Binary{Left: expr, Op: op, Right: p.unary()}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS, token.PLUS) {
		op := p.previous().Lexeme
		return &ast.Unary{Op: op, Right: p.unary()}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.INT_LIT):
		lit := p.previous()
		v, _ := strconv.ParseInt(lit.Lexeme, 10, 64)
		return &ast.Literal{Value: v, Kind: ast.LitInt}
	case p.match(token.FLOAT_LIT):
		lit := p.previous()
		v, _ := strconv.ParseFloat(lit.Lexeme, 64)
		return &ast.Literal{Value: v, Kind: ast.LitFloat}
	case p.match(token.BOOL_LIT):
		lit := p.previous()
		return &ast.Literal{Value: lit.Lexeme == "true", Kind: ast.LitBool}
	case p.match(token.IDENT):
		t := p.previous()
		if p.match(token.LPAREN) {
			var args []ast.Expr
			if !p.check(token.RPAREN) {
				for {
					args = append(args, p.expression())
					if !p.match(token.COMMA) {
						break
					}
				}
			}
			p.consume(token.RPAREN, "Expected ')' after arguments")
			return &ast.Call{Name: t.Lexeme, Args: args, Line: t.Line, Col: t.Col}
		}
		return &ast.Var{Name: t.Lexeme, Line: t.Line, Col: t.Col}
	case p.match(token.LPAREN):
		e := p.expression()
		p.consume(token.RPAREN, "Expected ')' after expression")
		return &ast.Grouping{X: e}
	}
	tok := p.peek()
	p.errorAt(tok, fmt.Sprintf("Unexpected token: %s", tok.Kind))
	return &ast.Literal{Value: int64(0), Kind: ast.LitInt}
}
