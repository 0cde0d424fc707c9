// Command cee is the driver for the cee compiler: it lexes, parses,
// and emits x86-64 assembly for a small C-like language, and can hand
// the result to gcc to produce and run a binary.
package main

import (
	"fmt"
	"os"

	"github.com/cee-lang/cee/cmd/cee/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
