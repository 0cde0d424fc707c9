package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cee-lang/cee/compiler"
)

var (
	compileDebug  bool
	compileOutput string
	compileEval   string
	compileStdout bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file, or an inline expression, to assembly",
	Long: `Compile reads a cee program from a file or from the -e flag, and
writes the generated AT&T-syntax x86-64 assembly to the path given by
--output (tmp.s by default), or to stdout with --stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVar(&compileDebug, "debug", false, "insert a breakpoint trap in the generated output")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", compiler.DefaultOutputPath, "write assembly to this path")
	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile this inline expression instead of reading a file")
	compileCmd.Flags().BoolVar(&compileStdout, "stdout", false, "print assembly to stdout instead of writing a file")
}

// readSourceFrom resolves program text from an inline eval string or,
// failing that, the first positional argument as a file path.
func readSourceFrom(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("provide a source file or use -e for an inline expression")
}

func runCompile(_ *cobra.Command, args []string) error {
	source, err := readSourceFrom(compileEval, args)
	if err != nil {
		return err
	}

	c := compiler.New(source, logger)
	c.SetDebug(compileDebug)

	out, err := c.Compile()
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	if compileStdout {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(compileOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", compileOutput, err)
	}
	return nil
}
