// Package lexer turns minic source text into a flat token stream.
//
// It never fails: an unrecognized character is silently skipped (the
// downstream parser will report the resulting syntactic gap instead), and
// an unterminated block comment simply runs to end of input.
package lexer

import (
	"strings"

	"github.com/rkumar-dev/minic/token"
)

// Lexer scans source text one byte at a time, tracking 1-indexed line and
// column positions for every emitted token.
type Lexer struct {
	src  string
	pos  int
	n    int
	line int
	col  int
}

// New creates a Lexer over src, ready to be driven by NextToken.
func New(src string) *Lexer {
	return &Lexer{src: src, pos: 0, n: len(src), line: 1, col: 1}
}

func (l *Lexer) peek(k int) byte {
	i := l.pos + k
	if i >= l.n {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) advance() byte {
	ch := l.peek(0)
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

// skipWhitespaceAndComments consumes spaces, tabs, CR/LF, line comments
// (// to end of line or input) and block comments (/* to the first */, or
// to end of input if unterminated — silently, per the lexer's contract).
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		ch := l.peek(0)
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
			continue
		case ch == '/' && l.peek(1) == '/':
			for l.peek(0) != '\n' && l.peek(0) != 0 {
				l.advance()
			}
			continue
		case ch == '/' && l.peek(1) == '*':
			l.advance()
			l.advance()
			for !(l.peek(0) == '*' && l.peek(1) == '/') {
				if l.peek(0) == 0 {
					return
				}
				l.advance()
			}
			l.advance()
			l.advance()
			continue
		}
		return
	}
}

var twoCharOps = map[string]token.Kind{
	"<=": token.LE, ">=": token.GE, "==": token.EQ, "!=": token.NE,
	"&&": token.AND, "||": token.OR,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	',': token.COMMA, ';': token.SEMI, '!': token.BANG, '=': token.ASSIGN,
	'<': token.LT, '>': token.GT,
}

// NextToken returns the next token in the stream, or an EOF token once the
// source is exhausted. Callers normally don't call this directly — use
// Tokenize to drain the whole stream.
func (l *Lexer) NextToken() token.Token {
	for {
		if tok, ok := l.nextTokenOnce(); ok {
			return tok
		}
	}
}

// nextTokenOnce scans a single token starting at the current position. It
// returns ok=false only for an unrecognized character, which it consumes
// before telling the caller to try again — the silent-skip behavior the
// lexer's contract requires.
func (l *Lexer) nextTokenOnce() (token.Token, bool) {
	l.skipWhitespaceAndComments()
	startLine, startCol := l.line, l.col
	ch := l.peek(0)

	if ch == 0 {
		return token.New(token.EOF, "", startLine, startCol), true
	}

	if isAlpha(ch) {
		var b strings.Builder
		for isAlnum(l.peek(0)) {
			b.WriteByte(l.advance())
		}
		lexeme := b.String()
		kind, known := token.Keywords[lexeme]
		if !known {
			kind = token.IDENT
		}
		return token.New(kind, lexeme, startLine, startCol), true
	}

	if isDigit(ch) {
		var b strings.Builder
		isFloat := false
		for isDigit(l.peek(0)) {
			b.WriteByte(l.advance())
		}
		if l.peek(0) == '.' && isDigit(l.peek(1)) {
			isFloat = true
			b.WriteByte(l.advance())
			for isDigit(l.peek(0)) {
				b.WriteByte(l.advance())
			}
		}
		kind := token.INT_LIT
		if isFloat {
			kind = token.FLOAT_LIT
		}
		return token.New(kind, b.String(), startLine, startCol), true
	}

	two := string([]byte{ch, l.peek(1)})
	if kind, ok := twoCharOps[two]; ok {
		l.advance()
		l.advance()
		return token.New(kind, two, startLine, startCol), true
	}

	if kind, ok := oneCharOps[ch]; ok {
		l.advance()
		return token.New(kind, string(ch), startLine, startCol), true
	}

	// Unrecognized character: consume and signal the caller to retry.
	l.advance()
	return token.Token{}, false
}

// Tokenize drains the entire source into a slice of tokens, the last of
// which is always EOF.
func Tokenize(src string) []token.Token {
	l := New(src)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
