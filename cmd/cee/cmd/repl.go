package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cee-lang/cee/compiler"
)

var (
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-compile-print loop",
	Long: `Repl reads one statement at a time, compiles it in isolation and
prints the resulting assembly. It's meant for exploring how a single
expression or statement lowers to x86-64, not for running a program
incrementally - each line is compiled on its own, with no state shared
between them.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	return startRepl(cmd.OutOrStdout())
}

func startRepl(writer io.Writer) error {
	cyanColor.Fprintln(writer, "cee repl - enter a statement, or .exit to quit")

	rl, err := readline.New("cee> ")
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(writer, "Good bye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(writer, "Good bye!")
			return nil
		}

		rl.SaveHistory(line)
		evalLine(writer, line)
	}
}

func evalLine(writer io.Writer, line string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(writer, "panic: %v\n", r)
		}
	}()

	if !strings.HasSuffix(line, ";") {
		line += ";"
	}

	c := compiler.New(line, logger)
	out, err := c.Compile()
	if err != nil {
		redColor.Fprintf(writer, "error: %v\n", err)
		return
	}

	yellowColor.Fprint(writer, out)
}
