// The compiler package contains the core of the cee compiler.
//
// Compilation is a three-step process:
//
//  1. The lexer tokenizes the source text.
//
//  2. The parser turns the tokens into an AST, giving every variable
//     a local id as it goes and assigning stack slots once the whole
//     program has been parsed.
//
//  3. The emitter walks the AST, writing AT&T-syntax x86-64 assembly
//     for a single System V function named main.
//
// DefaultOutputPath is the filename used when the caller doesn't need
// a different one - it matches the compiler this one replaces.

package compiler

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/cee-lang/cee/parser"
)

// DefaultOutputPath is the default assembly file path of the compile
// command's -o flag. Compile itself only returns the assembly text;
// CompileToFile writes it to the path it is given.
const DefaultOutputPath = "tmp.s"

// stackAlignment is the System V AMD64 ABI's required stack alignment,
// in bytes, at a call boundary.
const stackAlignment = 16

// Compiler holds the state needed to compile a single source program.
type Compiler struct {
	// debug controls whether a breakpoint trap is emitted at the top
	// of main.
	debug bool

	// source holds the program text being compiled.
	source string

	log *slog.Logger
}

// New creates a new compiler for the given source text. A nil logger
// falls back to a default logger writing to os.Stderr.
func New(source string, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Compiler{source: source, log: logger}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile lexes, parses and emits the source program, returning the
// complete assembly-language text.
func (c *Compiler) Compile() (string, error) {
	p := parser.New(c.source, c.log)

	program := p.ParseProgram()
	offset := alignTo(p.Offset(), stackAlignment)

	gen := NewCodegen()
	gen.IWriteLn(".globl main")
	gen.WriteLn("main:")

	if c.debug {
		gen.IWriteLn("int3")
	}

	prologue(gen, offset)

	emitter := NewEmitter(gen, p.Scope(), c.log)
	emitter.Compile(program)

	epilogue(gen)

	return gen.String(), nil
}

// CompileToFile compiles the source program and writes the resulting
// assembly to path.
func (c *Compiler) CompileToFile(path string) error {
	out, err := c.Compile()
	if err != nil {
		return err
	}

	gen := NewCodegen()
	gen.Write(out)
	return gen.Flush(path)
}

func prologue(gen *Codegen, frameSize int) {
	gen.ICmd1Ln("push", "%rbp")
	gen.ICmd2Ln("mov", "%rsp", "%rbp")
	gen.ICmd2Ln("sub", frameSizeOperand(frameSize), "%rsp")
}

func epilogue(gen *Codegen) {
	gen.WriteLn(".L.return:")
	gen.ICmd2Ln("mov", "%rbp", "%rsp")
	gen.ICmd1Ln("pop", "%rbp")
	gen.IWriteLn("ret")
}

func frameSizeOperand(size int) string {
	return "$" + strconv.Itoa(size)
}

// alignTo rounds offset up to the next multiple of align.
func alignTo(offset, align int) int {
	return (offset + align - 1) / align * align
}
