// Package parser implements a Pratt (precedence-climbing) parser that
// turns a token stream into an AST, resolving local variables into a
// scope.LocalScope as it goes.
package parser

import (
	"log/slog"
	"os"

	"github.com/cee-lang/cee/ast"
	"github.com/cee-lang/cee/lexer"
	"github.com/cee-lang/cee/scope"
	"github.com/cee-lang/cee/token"
)

// prefixFn parses a prefix (nud) expression starting at the parser's
// current token.
type prefixFn func(*Parser) ast.Node

// infixFn parses an infix (led) expression given the already-parsed
// left-hand side; the parser's current token is the operator.
type infixFn func(*Parser, ast.Node) ast.Node

// Parser drives a Lexer one token at a time, with exactly one token of
// lookahead, and mutates a single LocalScope as it resolves locals.
type Parser struct {
	lex *lexer.Lexer
	log *slog.Logger

	cur  token.Token
	peek token.Token

	scope *scope.LocalScope

	prefix map[token.Kind]prefixFn
	infix  map[token.Kind]infixFn
}

// New creates a Parser over input. A nil logger falls back to a
// default logger writing to os.Stderr.
func New(input string, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	p := &Parser{
		lex:   lexer.New(input),
		log:   logger,
		scope: scope.New(),
	}

	p.prefix = map[token.Kind]prefixFn{
		token.Number:     (*Parser).parseNumber,
		token.If:         (*Parser).parseIf,
		token.While:      (*Parser).parseWhile,
		token.For:        (*Parser).parseFor,
		token.LeftParen:  (*Parser).parseExpr,
		token.LeftBrace:  (*Parser).parseBlock,
		token.Minus:      (*Parser).parseOperator,
		token.Plus:       (*Parser).parseOperator,
		token.Star:       (*Parser).parseOperator,
		token.Addr:       (*Parser).parseOperator,
		token.Identifier: (*Parser).parseIdentifier,
		token.Return:     (*Parser).parseReturn,
	}

	p.infix = map[token.Kind]infixFn{
		token.Plus:         (*Parser).parseArithExpr,
		token.Minus:        (*Parser).parseArithExpr,
		token.Star:         (*Parser).parseArithExpr,
		token.Equal:        (*Parser).parseArithExpr,
		token.Less:         (*Parser).parseArithExpr,
		token.LessEqual:    (*Parser).parseArithExpr,
		token.EqualEqual:   (*Parser).parseArithExpr,
		token.BangEqual:    (*Parser).parseArithExpr,
		token.Greater:      (*Parser).parseArithExpr,
		token.GreaterEqual: (*Parser).parseArithExpr,
		token.Slash:        (*Parser).parseArithExpr,
		token.LeftParen:    (*Parser).parseCallExpr,
	}

	// prime cur/peek
	p.nextToken()
	p.nextToken()

	return p
}

// Scope returns the LocalScope the parser has been resolving locals
// into. ParseProgram finalizes its offsets before returning.
func (p *Parser) Scope() *scope.LocalScope {
	return p.scope
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool {
	return p.cur.Is(k)
}

func (p *Parser) peekIs(k token.Kind) bool {
	return p.peek.Is(k)
}

// expectPeek advances past peek if it has kind k, reporting and
// returning false otherwise - parsing continues in a degraded state,
// per the compiler's best-effort error policy.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}

	p.log.Error("unexpected token", "expected", k, "got", p.peek.Kind, "line", p.peek.Line, "column", p.peek.Column)
	return false
}

// ParseProgram parses the whole input as a sequence of statements,
// then finalizes stack-slot offsets on the scope.
func (p *Parser) ParseProgram() *ast.Statements {
	var stmts []ast.Node

	for !p.curIs(token.Eof) {
		stmts = append(stmts, p.parseStmt())
		p.nextToken()
	}

	p.scope.AssignOffsets()

	return ast.NewProgram(stmts)
}

// Offset returns the finalized total frame size of the scope, in
// bytes. Valid only after ParseProgram has returned.
func (p *Parser) Offset() int {
	return p.scope.Offset
}

func (p *Parser) parseStmt() ast.Node {
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() ast.Node {
	n := p.parse(precedenceAssignment)
	if p.peekIs(token.Semicolon) {
		p.nextToken()
	}
	return n
}

func (p *Parser) parseNumber() ast.Node {
	return ast.NewIntegerLiteral(p.cur.Lexeme)
}

func (p *Parser) parseIdentifier() ast.Node {
	tok := p.cur
	name := tok.Lexeme

	id := p.scope.AddLocalIfNotExist(name)

	if p.peekIs(token.Equal) {
		p.nextToken() // consume identifier, cur -> '='
		p.nextToken() // consume '=', cur -> start of rhs

		rhs := p.parse(precedenceAssignment)
		if p.peekIs(token.Semicolon) {
			p.nextToken()
		}

		return ast.NewVariableAssign(id, tok, name, rhs)
	}

	return ast.NewVariable(id, tok, name)
}

// parseExpr is the prefix handler for '(': it parses a parenthesized
// expression and expects the closing ')'.
func (p *Parser) parseExpr() ast.Node {
	p.nextToken() // consume '('

	n := p.parse(precedenceNone)

	p.expectPeek(token.RightParen)

	return n
}

func (p *Parser) parseBlock() ast.Node {
	p.nextToken() // consume '{'

	var stmts []ast.Node
	for !p.curIs(token.RightBrace) && !p.curIs(token.Eof) {
		if p.curIs(token.Semicolon) {
			p.nextToken()
			continue
		}

		stmts = append(stmts, p.parseStmt())
		p.nextToken()
	}

	// cur is left sitting on the closing RightBrace itself, the same
	// convention every other prefix handler uses for its closing
	// delimiter (see parseExpr's ')'): the enclosing ParseProgram or
	// parseBlock statement loop's own trailing nextToken() advances
	// past it.
	//
	// The grounded original additionally consumes the RightBrace here
	// and relies on its caller to unconditionally advance again, which
	// together eat the first token of whatever statement follows a
	// block (see Open Question Decision 6) - not reproduced here.

	return ast.NewBlock(stmts)
}

// parseOperator is the prefix handler for '-', '+', '*' and '&'. A '*'
// is retagged to the synthetic Deref kind before the Unary node is
// built, since the lexer never produces Deref itself; a '&' is already
// lexed as Addr and keeps that kind.
func (p *Parser) parseOperator() ast.Node {
	tok := p.cur
	if tok.Kind == token.Star {
		tok.UpdateKind(token.Deref)
	}

	operator := tok.Lexeme

	p.nextToken()

	right := p.parse(precedenceUnary)

	return ast.NewUnary(tok, operator, right)
}

// parseForArguments parses the '(' init? ';' cond? ';' incr? ')'
// clause of a for-loop, leaving cur on the token following ')'.
func (p *Parser) parseForArguments() (init, cond, incr ast.Node) {
	if !p.peekIs(token.Semicolon) {
		p.nextToken()
		init = p.parse(precedenceAssignment)
		if !p.curIs(token.Semicolon) {
			p.nextToken()
		}
	} else {
		p.nextToken()
	}

	if !p.peekIs(token.Semicolon) {
		p.nextToken()
		cond = p.parse(precedenceAssignment)
		if !p.curIs(token.Semicolon) {
			p.nextToken()
		}
	} else {
		p.nextToken()
	}

	if !p.peekIs(token.RightParen) {
		p.nextToken()
		incr = p.parse(precedenceNone)
		p.nextToken()
	} else {
		p.nextToken()
	}

	p.nextToken() // consume ')'

	return init, cond, incr
}

func (p *Parser) parseIf() ast.Node {
	tok := p.cur
	p.nextToken()

	cond := p.parseExpr()
	p.nextToken()

	then := p.parseStmt()

	var alt ast.Node
	if p.peekIs(token.Else) {
		p.nextToken() // cur -> 'else'
		p.nextToken() // cur -> start of alt branch
		alt = p.parseStmt()
	}

	return ast.NewIf(tok, cond, then, alt)
}

func (p *Parser) parseFor() ast.Node {
	tok := p.cur
	p.nextToken()

	init, cond, incr := p.parseForArguments()

	then := p.parseStmt()

	return ast.NewFor(tok, init, cond, incr, then)
}

func (p *Parser) parseWhile() ast.Node {
	tok := p.cur
	p.nextToken()

	cond := p.parseExpr()
	p.nextToken() // consume ')'

	then := p.parseStmt()

	return ast.NewWhile(tok, cond, then)
}

// parseDoWhile is never reached: the grammar has no 'do' keyword, so
// nothing registers this as a prefix handler. It is kept, matching the
// original implementation, as a documented placeholder rather than
// removed outright.
func (p *Parser) parseDoWhile() ast.Node {
	tok := p.cur
	then := p.parseStmt()
	return ast.NewDoWhile(tok, then)
}

// parseCallExpr is the infix handler for '(' after a primary
// expression. It builds the FunctionCall placeholder; no arguments are
// parsed and the emitter lowers it to nothing.
func (p *Parser) parseCallExpr(left ast.Node) ast.Node {
	return ast.NewFunctionCall()
}

func (p *Parser) parseArithExpr(left ast.Node) ast.Node {
	tok := p.cur
	operator := tok.Lexeme

	prec := precedenceOf(tok.Kind)

	p.nextToken()

	right := p.parse(prec)

	return ast.NewArithExpr(tok, operator, left, right)
}

func (p *Parser) parseReturn() ast.Node {
	tok := p.cur
	p.nextToken()

	value := p.parse(precedenceAssignment)

	p.expectPeek(token.Semicolon)

	return ast.NewReturn(tok, value)
}

// parse is the core Pratt loop: dispatch the prefix handler for cur,
// then repeatedly consume infix operators whose precedence is at
// least minPrecedence.
func (p *Parser) parse(minPrecedence precedence) ast.Node {
	prefixRule, ok := p.prefix[p.cur.Kind]
	if !ok {
		p.log.Error("no prefix parse function", "kind", p.cur.Kind, "lexeme", p.cur.Lexeme, "line", p.cur.Line, "column", p.cur.Column)
		return nil
	}

	left := prefixRule(p)

	for {
		if _, ok := p.infix[p.peek.Kind]; !ok {
			break
		}

		if minPrecedence > precedenceOf(p.peek.Kind) {
			break
		}

		p.nextToken()

		infixRule, ok := p.infix[p.cur.Kind]
		if !ok {
			break
		}

		left = infixRule(p, left)
	}

	return left
}
