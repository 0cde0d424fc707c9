package parser

import "github.com/cee-lang/cee/token"

// precedence is the binary-operator binding strength used to drive
// the Pratt loop in parse.
type precedence int

// The precedence ladder, low to high. Equality covers == !=,
// Comparison covers < <= > >=, Term is + -, Factor is * /, and Call is
// '(' following a primary expression.
const (
	precedenceNone precedence = iota
	precedenceAssignment
	precedenceEquality
	precedenceComparison
	precedenceTerm
	precedenceFactor
	precedenceUnary
	precedenceCall
)

// precedenceOf maps a token kind to its binary precedence level.
// Tokens with no infix meaning report precedenceNone.
func precedenceOf(k token.Kind) precedence {
	switch k {
	case token.EqualEqual, token.BangEqual:
		return precedenceEquality
	case token.Equal:
		return precedenceAssignment
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		return precedenceComparison
	case token.Minus, token.Plus:
		return precedenceTerm
	case token.Slash, token.Star:
		return precedenceFactor
	case token.LeftParen:
		return precedenceCall
	default:
		return precedenceNone
	}
}
