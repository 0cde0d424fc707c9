package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cee-lang/cee/ast"
	"github.com/cee-lang/cee/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed AST for a source file or inline expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse this inline expression instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, err := readSourceFrom(parseEval, args)
	if err != nil {
		return err
	}

	p := parser.New(source, logger)
	program := p.ParseProgram()

	for _, stmt := range program.List {
		printNode(stmt, 0)
	}
	fmt.Printf("frame size: %d bytes\n", p.Offset())
	return nil
}

func printNode(n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := n.(type) {
	case *ast.Statements:
		fmt.Printf("%sBlock\n", indent)
		for _, s := range v.List {
			printNode(s, depth+1)
		}
	case *ast.Literal:
		fmt.Printf("%sLiteral %s\n", indent, v.Text)
	case *ast.Variable:
		if v.Assign != nil {
			fmt.Printf("%sAssign %s (id=%d)\n", indent, v.Name, v.ID)
			printNode(v.Assign, depth+1)
		} else {
			fmt.Printf("%sVariable %s (id=%d)\n", indent, v.Name, v.ID)
		}
	case *ast.Unary:
		fmt.Printf("%sUnary %s\n", indent, v.Operator)
		printNode(v.Right, depth+1)
	case *ast.ArithExpr:
		fmt.Printf("%sArithExpr %s\n", indent, v.Operator)
		printNode(v.Left, depth+1)
		printNode(v.Right, depth+1)
	case *ast.If:
		fmt.Printf("%sIf\n", indent)
		printNode(v.Cond, depth+1)
		printNode(v.Then, depth+1)
		if v.Alt != nil {
			printNode(v.Alt, depth+1)
		}
	case *ast.Loop:
		fmt.Printf("%sLoop\n", indent)
		if v.Init != nil {
			printNode(v.Init, depth+1)
		}
		if v.Cond != nil {
			printNode(v.Cond, depth+1)
		}
		if v.Incr != nil {
			printNode(v.Incr, depth+1)
		}
		printNode(v.Then, depth+1)
	case *ast.Return:
		fmt.Printf("%sReturn\n", indent)
		if v.Value != nil {
			printNode(v.Value, depth+1)
		}
	case *ast.FunctionCall:
		fmt.Printf("%sFunctionCall\n", indent)
	default:
		fmt.Printf("%s<unknown node>\n", indent)
	}
}
