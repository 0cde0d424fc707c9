// Package lexer turns cee source text into a stream of tokens.
package lexer

import (
	"fmt"

	"github.com/cee-lang/cee/token"
)

// Lexer holds our scanning state over a buffer of runes.
type Lexer struct {
	characters []rune // the full input, as runes
	start      int    // index the current lexeme began at
	current    int    // index of the next unread character
	line       int    // 1-based current line
	column     int    // 1-based current column, within line
}

// New creates a Lexer over input, ready to produce tokens via NextToken.
func New(input string) *Lexer {
	return &Lexer{
		characters: []rune(input),
		line:       1,
		column:     1,
	}
}

// NextToken scans and returns the next token in the stream.
//
// The final token of any input is Eof; callers should stop requesting
// tokens once they observe one.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	l.start = l.current

	if l.atEnd() {
		return l.makeToken(token.Eof)
	}

	ch := l.advance()

	switch {
	case isDigit(ch):
		return l.readNumber()
	case isLetter(ch):
		return l.readIdentifier()
	}

	switch ch {
	case '(':
		return l.makeToken(token.LeftParen)
	case ')':
		return l.makeToken(token.RightParen)
	case '{':
		return l.makeToken(token.LeftBrace)
	case '}':
		return l.makeToken(token.RightBrace)
	case ',':
		return l.makeToken(token.Comma)
	case '.':
		return l.makeToken(token.Dot)
	case '-':
		return l.makeToken(token.Minus)
	case '+':
		return l.makeToken(token.Plus)
	case ';':
		return l.makeToken(token.Semicolon)
	case '/':
		return l.makeToken(token.Slash)
	case '*':
		return l.makeToken(token.Star)
	case '&':
		return l.makeToken(token.Addr)
	case '!':
		if l.match('=') {
			return l.makeToken(token.BangEqual)
		}
		return l.makeToken(token.Bang)
	case '=':
		if l.match('=') {
			return l.makeToken(token.EqualEqual)
		}
		return l.makeToken(token.Equal)
	case '<':
		if l.match('=') {
			return l.makeToken(token.LessEqual)
		}
		return l.makeToken(token.Less)
	case '>':
		if l.match('=') {
			return l.makeToken(token.GreaterEqual)
		}
		return l.makeToken(token.Greater)
	case '"':
		return l.readString()
	}

	return l.errorToken(fmt.Sprintf("unexpected character %c", ch))
}

// atEnd reports whether the cursor has consumed the whole buffer.
func (l *Lexer) atEnd() bool {
	return l.current >= len(l.characters)
}

// advance consumes and returns the current character, moving the
// cursor (and line/column bookkeeping) forward.
func (l *Lexer) advance() rune {
	ch := l.characters[l.current]
	l.current++
	l.column++
	return ch
}

// peek returns the character under the cursor without consuming it.
func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.characters[l.current]
}

// peekNext returns the character one past the cursor, without
// consuming anything.
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.characters) {
		return 0
	}
	return l.characters[l.current+1]
}

// match consumes the current character and returns true if it equals
// want; otherwise it leaves the cursor untouched and returns false.
func (l *Lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}
	l.advance()
	return true
}

// skipWhitespaceAndComments swallows spaces, tabs, carriage-returns,
// newlines (which reset the column and bump the line), and "//"
// line-comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.line++
			l.column = 1
		case '/':
			if l.peekNext() == '/' {
				for l.peek() != '\n' && !l.atEnd() {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// readNumber scans an integer, optionally followed by a '.' and a
// fractional digit run.
func (l *Lexer) readNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	return l.makeToken(token.Number)
}

// readIdentifier scans a run of alphanumerics and resolves it against
// the keyword table.
func (l *Lexer) readIdentifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	return l.makeToken(token.LookupIdentifier(l.lexeme()))
}

// readString scans a double-quoted string literal, including embedded
// newlines, up to the closing quote.
func (l *Lexer) readString() token.Token {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
			l.column = 1
		}
		l.advance()
	}

	if l.atEnd() {
		return l.errorToken("unterminated string")
	}

	l.advance() // consume closing quote

	return l.makeToken(token.String)
}

// lexeme returns the exact source slice from start to current.
func (l *Lexer) lexeme() string {
	return string(l.characters[l.start:l.current])
}

// makeToken builds a token of kind k whose lexeme is the text scanned
// since start, positioned at the start of the lexeme.
func (l *Lexer) makeToken(k token.Kind) token.Token {
	return token.Token{
		Kind:   k,
		Lexeme: l.lexeme(),
		Line:   l.line,
		Column: l.column - (l.current - l.start),
	}
}

// errorToken builds an Error token carrying msg as its lexeme.
func (l *Lexer) errorToken(msg string) token.Token {
	return token.Token{
		Kind:   token.Error,
		Lexeme: msg,
		Line:   l.line,
		Column: l.column,
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}
