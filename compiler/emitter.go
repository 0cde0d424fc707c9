// emitter.go walks the AST and emits x86-64 AT&T-syntax instructions
// into a Codegen buffer.

package compiler

import (
	"fmt"
	"log/slog"

	"github.com/cee-lang/cee/ast"
	"github.com/cee-lang/cee/scope"
	"github.com/cee-lang/cee/token"
)

// Emitter walks a parsed program and writes the equivalent assembly
// into gen, resolving locals through scope.
type Emitter struct {
	gen   *Codegen
	scope *scope.LocalScope
	log   *slog.Logger

	labelSuffix int
}

// NewEmitter returns an Emitter that writes into gen, resolving
// variable references against scope.
func NewEmitter(gen *Codegen, scope *scope.LocalScope, logger *slog.Logger) *Emitter {
	return &Emitter{gen: gen, scope: scope, log: logger}
}

func (e *Emitter) nextLabelSuffix() int {
	e.labelSuffix++
	return e.labelSuffix
}

// Compile lowers node, and everything it contains, into assembly.
func (e *Emitter) Compile(node ast.Node) {
	switch n := node.(type) {
	case *ast.Statements:
		for _, stmt := range n.List {
			e.Compile(stmt)
		}
	case *ast.Literal:
		e.gen.ICmd2Ln("mov", "$"+n.Text, "%rax")
	case *ast.ArithExpr:
		e.arithmetic(n)
	case *ast.If:
		e.ifStmt(n)
	case *ast.Loop:
		e.loopStmt(n)
	case *ast.FunctionCall:
		// Calls are parsed but never lowered: the grammar has no
		// argument list and nothing in the language can observe a
		// function's side effects yet.
	case *ast.Unary:
		e.unary(n)
	case *ast.Variable:
		e.variable(n)
	case *ast.Return:
		e.returnStmt(n)
	default:
		e.log.Error("emitter: unhandled node type", "type", fmt.Sprintf("%T", node))
	}
}

func (e *Emitter) arithmetic(n *ast.ArithExpr) {
	e.Compile(n.Right)
	e.gen.Push()
	e.Compile(n.Left)
	e.gen.Pop("%rdi")

	switch n.Token.Kind {
	case token.Plus:
		e.gen.ICmd2Ln("add", "%rdi", "%rax")
	case token.Minus:
		e.gen.ICmd2Ln("sub", "%rdi", "%rax")
	case token.Star:
		e.gen.ICmd2Ln("imul", "%rdi", "%rax")
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.BangEqual, token.EqualEqual:
		e.comparison(n.Token.Kind)
	case token.Slash:
		e.gen.ICmdLn("cqo")
		e.gen.ICmd1Ln("idiv", "%rdi")
	}
}

func (e *Emitter) comparison(kind token.Kind) {
	e.gen.ICmd2Ln("cmp", "%rdi", "%rax")
	switch kind {
	case token.LessEqual:
		e.gen.ICmd1Ln("setle", "%al")
	case token.Less:
		e.gen.ICmd1Ln("setl", "%al")
	case token.Greater:
		e.gen.ICmd1Ln("setg", "%al")
	case token.GreaterEqual:
		e.gen.ICmd1Ln("setge", "%al")
	case token.BangEqual:
		e.gen.ICmd1Ln("setne", "%al")
	case token.EqualEqual:
		e.gen.ICmd1Ln("sete", "%al")
	}
	e.gen.ICmd2Ln("movzb", "%al", "%rax")
}

// unary lowers '-' into a negation. '+', the address-of placeholder
// '&' and the synthetic Deref kind are parsed but emit nothing further
// beyond evaluating the operand.
func (e *Emitter) unary(n *ast.Unary) {
	e.Compile(n.Right)

	switch n.Token.Kind {
	case token.Minus:
		e.gen.ICmd1Ln("neg", "%rax")
	case token.Plus, token.Addr, token.Deref:
	}
}

func (e *Emitter) variable(n *ast.Variable) {
	e.genAddress(n.ID)

	if n.Assign == nil {
		e.gen.ICmd2Ln("mov", "(%rax)", "%rax")
		return
	}

	e.gen.Push()
	e.Compile(n.Assign)
	e.gen.Pop("%rdi")
	e.gen.ICmd2Ln("mov", "%rax", "(%rdi)")
}

// genAddress loads the effective address of the local identified by
// id into %rax.
func (e *Emitter) genAddress(id int) {
	offset, found := e.scope.OffsetByID(id)
	if !found {
		e.log.Error("variable not found in scope", "id", id)
		return
	}

	e.gen.ICmd2Ln("lea", fmt.Sprintf("%d(%%rbp)", offset), "%rax")
}

func (e *Emitter) returnStmt(n *ast.Return) {
	if n.Value != nil {
		e.Compile(n.Value)
	}
	e.gen.ICmd1Ln("jmp", ".L.return")
}

func (e *Emitter) ifStmt(n *ast.If) {
	id := e.nextLabelSuffix()

	e.Compile(n.Cond)
	e.gen.ICmd2Ln("cmp", "$0", "%rax")
	e.gen.ICmd1Ln("je", fmt.Sprintf(".L.else.%d", id))

	e.Compile(n.Then)

	e.gen.ICmd1Ln("jmp", fmt.Sprintf(".L.end.%d", id))
	e.gen.WriteLn(fmt.Sprintf(".L.else.%d:", id))

	if n.Alt != nil {
		e.Compile(n.Alt)
	}

	e.gen.WriteLn(fmt.Sprintf(".L.end.%d:", id))
}

// loopStmt lowers For and While identically; DoWhile is never produced
// by the parser (the grammar has no 'do' keyword) and is a no-op here
// to match the original implementation.
func (e *Emitter) loopStmt(n *ast.Loop) {
	switch n.Kind {
	case ast.For, ast.While:
		e.forStmt(n)
	case ast.DoWhile:
	}
}

func (e *Emitter) forStmt(n *ast.Loop) {
	id := e.nextLabelSuffix()

	labelBegin := fmt.Sprintf(".L.begin.%d", id)
	labelEnd := fmt.Sprintf(".L.end.%d", id)

	if n.Init != nil {
		e.Compile(n.Init)
	}

	e.gen.WriteLn(labelBegin + ":")

	if n.Cond != nil {
		e.Compile(n.Cond)
		e.gen.ICmd2Ln("cmp", "$0", "%rax")
		e.gen.ICmd1Ln("je", labelEnd)
	}

	e.Compile(n.Then)

	if n.Incr != nil {
		e.Compile(n.Incr)
	}

	e.gen.ICmd1Ln("jmp", labelBegin)
	e.gen.WriteLn(labelEnd + ":")
}
