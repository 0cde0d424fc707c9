package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/cee-lang/cee/compiler"
)

var (
	runDebug  bool
	runEval   string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile a program, assemble it with gcc, and run the result",
	Long: `Run compiles a cee program to assembly, pipes it into gcc to
produce a statically-linked binary, and executes that binary. It
requires gcc to be available on PATH.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDebug, "debug", false, "insert a breakpoint trap in the generated output")
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "run this inline expression instead of reading a file")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "a.out", "path of the binary produced by gcc")
}

func runRun(_ *cobra.Command, args []string) error {
	source, err := readSourceFrom(runEval, args)
	if err != nil {
		return err
	}

	c := compiler.New(source, logger)
	c.SetDebug(runDebug)

	asm, err := c.Compile()
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	if err := assemble(asm, runOutput); err != nil {
		return err
	}

	exe := exec.Command(runOutput)
	exe.Stdout = os.Stdout
	exe.Stderr = os.Stderr
	exe.Stdin = os.Stdin
	if err := exe.Run(); err != nil {
		return fmt.Errorf("running %s: %w", runOutput, err)
	}
	return nil
}

// assemble pipes AT&T-syntax assembly into gcc, producing a
// statically-linked binary at path.
func assemble(asm, path string) error {
	gcc := exec.Command("gcc", "-static", "-o", path, "-x", "assembler", "-")
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr

	var buf bytes.Buffer
	buf.WriteString(asm)
	gcc.Stdin = &buf

	if err := gcc.Run(); err != nil {
		return fmt.Errorf("invoking gcc: %w", err)
	}
	return nil
}
