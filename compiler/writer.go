// writer.go contains Codegen, the append-only text buffer that the
// emitter writes assembly instructions into.

package compiler

import (
	"fmt"
	"os"
)

// Codegen accumulates the AT&T-syntax assembly text of a compiled
// program, and tracks the runtime depth of the evaluation stack so the
// emitter can balance its pushes and pops.
type Codegen struct {
	buf   string
	Depth int
}

// NewCodegen returns an empty Codegen.
func NewCodegen() *Codegen {
	return &Codegen{}
}

// Push emits a push of %rax and records that the evaluation stack grew
// by one slot.
func (g *Codegen) Push() {
	g.ICmd1Ln("push", "%rax")
	g.Depth++
}

// Pop emits a pop into arg and records that the evaluation stack
// shrank by one slot.
func (g *Codegen) Pop(arg string) {
	g.ICmd1Ln("pop", arg)
	g.Depth--
}

// Write appends s to the buffer verbatim.
func (g *Codegen) Write(s string) {
	g.buf += s
}

// IWrite appends s indented by two spaces, with no trailing newline.
func (g *Codegen) IWrite(s string) {
	g.Write("  " + s)
}

// WriteLn appends s followed by a newline.
func (g *Codegen) WriteLn(s string) {
	g.Write(s)
	g.line()
}

// IWriteLn appends s, indented, followed by a newline.
func (g *Codegen) IWriteLn(s string) {
	g.WriteLn("  " + s)
}

func (g *Codegen) line() {
	g.buf += "\n"
}

// ICmd writes a bare, indented instruction mnemonic with no operands.
func (g *Codegen) ICmd(cmd string) {
	g.Write("  " + cmd)
}

// ICmd1 writes an indented instruction with one operand.
func (g *Codegen) ICmd1(cmd, arg1 string) {
	g.Write(fmt.Sprintf("  %s %s", cmd, arg1))
}

// ICmd2 writes an indented instruction with two operands,
// source-then-destination, AT&T order.
func (g *Codegen) ICmd2(cmd, arg1, arg2 string) {
	g.Write(fmt.Sprintf("  %s %s, %s", cmd, arg1, arg2))
}

// ICmdLn writes a bare instruction followed by a newline.
func (g *Codegen) ICmdLn(cmd string) {
	g.ICmd(cmd)
	g.line()
}

// ICmd1Ln writes a one-operand instruction followed by a newline.
func (g *Codegen) ICmd1Ln(cmd, arg1 string) {
	g.ICmd1(cmd, arg1)
	g.line()
}

// ICmd2Ln writes a two-operand instruction followed by a newline.
func (g *Codegen) ICmd2Ln(cmd, arg1, arg2 string) {
	g.ICmd2(cmd, arg1, arg2)
	g.line()
}

// Flush writes the accumulated buffer to filename, truncating any
// existing content.
func (g *Codegen) Flush(filename string) error {
	return os.WriteFile(filename, []byte(g.buf), 0o644)
}

// Clear empties the buffer, leaving Depth untouched.
func (g *Codegen) Clear() {
	g.buf = ""
}

// String returns the accumulated assembly text.
func (g *Codegen) String() string {
	return g.buf
}
