package compiler

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func TestEndToEndScenarios(t *testing.T) {
	tests := map[string]string{
		"add":           "1+2;",
		"sub_mul":       "5-2*3;",
		"equality":      "1==2;",
		"assign_return": "a=3; return a;",
		"if_else":       "if (1) 2; else 3;",
		"for_loop":      "for (a=0; a<3; a=a+1) a;",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			out := compile(t, src)
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestCompileReturnsGloballyVisibleMain(t *testing.T) {
	out := compile(t, "1+1;")
	require.Contains(t, out, ".globl main")
	require.Contains(t, out, "main:")
}

func TestDebugFlagEmitsBreakpoint(t *testing.T) {
	c := New("1;", nil)
	c.SetDebug(true)

	out, err := c.Compile()
	require.NoError(t, err)
	require.Contains(t, out, "int3")
}

func TestFrameSizeIsAlignedTo16(t *testing.T) {
	// A single local needs 8 bytes, which must round up to 16 for the
	// sub instruction that carves out the stack frame.
	out := compile(t, "a=1;")
	require.Contains(t, out, "sub $16, %rsp")
}

func TestEmptyProgramStillProducesAValidFunction(t *testing.T) {
	out := compile(t, "")
	require.Contains(t, out, "main:")
	require.Contains(t, out, "ret")
}
