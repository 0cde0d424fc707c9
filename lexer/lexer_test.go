package lexer

import (
	"testing"

	"github.com/cee-lang/cee/token"
)

// Trivial test of the scanning of numbers, including fractional ones.
func TestScanNumbers(t *testing.T) {
	input := `3 43 3.14 0.5`

	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.Number, "3"},
		{token.Number, "43"},
		{token.Number, "3.14"},
		{token.Number, "0.5"},
		{token.Eof, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong, expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

// Trivial test of the scanning of one- and two-character operators.
func TestScanOperators(t *testing.T) {
	input := `+ - * / ( ) { } , . ; & ! != = == < <= > >=`

	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.Plus, "+"},
		{token.Minus, "-"},
		{token.Star, "*"},
		{token.Slash, "/"},
		{token.LeftParen, "("},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.RightBrace, "}"},
		{token.Comma, ","},
		{token.Dot, "."},
		{token.Semicolon, ";"},
		{token.Addr, "&"},
		{token.Bang, "!"},
		{token.BangEqual, "!="},
		{token.Equal, "="},
		{token.EqualEqual, "=="},
		{token.Less, "<"},
		{token.LessEqual, "<="},
		{token.Greater, ">"},
		{token.GreaterEqual, ">="},
		{token.Eof, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong, expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

// Identifiers that aren't keywords should come back as Identifier;
// keywords should resolve to their own kind.
func TestScanIdentifiersAndKeywords(t *testing.T) {
	input := `foo bar_baz if else while for return var true nil int`

	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.Identifier, "foo"},
		{token.Identifier, "bar_baz"},
		{token.If, "if"},
		{token.Else, "else"},
		{token.While, "while"},
		{token.For, "for"},
		{token.Return, "return"},
		{token.Var, "var"},
		{token.True, "true"},
		{token.Nil, "nil"},
		{token.Int, "int"},
		{token.Eof, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong, expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong, expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestScanStrings(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Kind != token.String {
		t.Fatalf("expected String, got %q", tok.Kind)
	}
	if tok.Lexeme != `"hello world"` {
		t.Fatalf("unexpected lexeme %q", tok.Lexeme)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	l := New(`"hello`)
	tok := l.NextToken()
	if tok.Kind != token.Error {
		t.Fatalf("expected Error, got %q", tok.Kind)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	l := New(`@`)
	tok := l.NextToken()
	if tok.Kind != token.Error {
		t.Fatalf("expected Error, got %q", tok.Kind)
	}
}

func TestSkipsCommentsAndWhitespace(t *testing.T) {
	input := "1 // a comment\n+ 2"

	tests := []token.Kind{token.Number, token.Plus, token.Number, token.Eof}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Kind != expected {
			t.Fatalf("tests[%d] - expected=%q, got=%q", i, expected, tok.Kind)
		}
	}
}

// Lines and columns are tracked across newlines.
func TestLineAndColumnTracking(t *testing.T) {
	input := "1\n  2"

	l := New(input)

	first := l.NextToken()
	if first.Line != 1 {
		t.Fatalf("expected first token on line 1, got %d", first.Line)
	}

	second := l.NextToken()
	if second.Line != 2 {
		t.Fatalf("expected second token on line 2, got %d", second.Line)
	}
	if second.Column != 3 {
		t.Fatalf("expected second token at column 3, got %d", second.Column)
	}
}

// Lexer determinism: scanning the same input twice produces identical
// token sequences, including positions.
func TestLexerDeterminism(t *testing.T) {
	input := `a = 1; if (a < 2) { a = a + 1; }`

	collect := func() []token.Token {
		var toks []token.Token
		l := New(input)
		for {
			tok := l.NextToken()
			toks = append(toks, tok)
			if tok.Kind == token.Eof {
				break
			}
		}
		return toks
	}

	a := collect()
	b := collect()

	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("token %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
