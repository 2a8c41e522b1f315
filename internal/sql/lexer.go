package sql

import (
	"strings"
	"unicode"

	"github.com/atlekbai/function_registry/internal/expr"
)

// Lexer tokenizes a SQL expression.
type Lexer struct {
	input  []rune
	pos    int
	line   int
	col    int
	peeked *Token
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.next()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.next()
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()
	loc := l.loc()
	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Loc: loc}, nil
	}

	ch := l.input[l.pos]
	single := map[rune]TokenKind{
		'(': TokLParen,
		')': TokRParen,
		',': TokComma,
		'.': TokDot,
		'+': TokPlus,
		'-': TokMinus,
		'*': TokStar,
		'/': TokSlash,
		'%': TokPercent,
	}

	switch {
	case ch == '\'':
		return l.readQuoted(loc, '\'', TokString, "unterminated string literal")
	case ch == '"':
		return l.readQuoted(loc, '"', TokQuotedIdent, "unterminated quoted identifier")
	case isDigit(ch):
		return l.readNumber(loc)
	case isIdentStart(ch):
		return l.readIdent(loc), nil
	}
	if kind, ok := single[ch]; ok {
		l.advance()
		return Token{Kind: kind, Lit: string(ch), Loc: loc}, nil
	}
	return Token{}, errorf(loc, "unexpected character %q", ch)
}

// readQuoted reads a quote-delimited token; a doubled quote is an escaped quote.
func (l *Lexer) readQuoted(loc expr.Location, quote rune, kind TokenKind, unterminated string) (Token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				b.WriteRune(quote)
				l.advance()
				l.advance()
				continue
			}
			l.advance() // closing quote
			return Token{Kind: kind, Lit: b.String(), Loc: loc}, nil
		}
		b.WriteRune(ch)
		l.advance()
	}
	return Token{}, errorf(loc, "%s", unterminated)
}

func (l *Lexer) readNumber(loc expr.Location) (Token, error) {
	start := l.pos
	l.skipDigits()
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.advance()
		l.skipDigits()
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.advance()
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.advance()
		}
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return Token{}, errorf(loc, "malformed number %q", string(l.input[start:l.pos]))
		}
		l.skipDigits()
	}
	if l.pos < len(l.input) && isIdentStart(l.input[l.pos]) {
		return Token{}, errorf(l.loc(), "unexpected character %q after number", l.input[l.pos])
	}
	return Token{Kind: TokNumber, Lit: string(l.input[start:l.pos]), Loc: loc}, nil
}

func (l *Lexer) readIdent(loc expr.Location) Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.advance()
	}
	lit := string(l.input[start:l.pos])
	kind := TokIdent
	if kw, ok := keywords[strings.ToUpper(lit)]; ok {
		kind = kw
	}
	return Token{Kind: kind, Lit: lit, Loc: loc}
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '-' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '-':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) loc() expr.Location {
	return expr.Location{Line: l.line, Column: l.col}
}

// isDigit admits ASCII digits only; number literals are passed to the
// database verbatim.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '@'
}

func isIdentCont(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '@'
}
