package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cee-lang/cee/lexer"
	"github.com/cee-lang/cee/token"
)

var lexEval string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream for a source file or inline expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "lex this inline expression instead of reading a file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, err := readSourceFrom(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	for {
		tok := l.NextToken()
		fmt.Printf("%-4d %-4d %-12s %q\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
		if tok.Is(token.Eof) {
			break
		}
	}
	return nil
}
