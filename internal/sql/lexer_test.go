package sql

import (
	"strings"
	"testing"

	"github.com/atlekbai/function_registry/internal/expr"
)

func collectTokens(t *testing.T, input string) []Token {
	t.Helper()
	lex := NewLexer(input)
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lexer error on %q: %v", input, err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return tokens
}

func TestLexerSingleCharTokens(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{".", TokDot},
		{"(", TokLParen},
		{")", TokRParen},
		{",", TokComma},
		{"+", TokPlus},
		{"-", TokMinus},
		{"*", TokStar},
		{"/", TokSlash},
		{"%", TokPercent},
	}
	for _, tt := range tests {
		toks := collectTokens(t, tt.input)
		if len(toks) != 2 { // token + EOF
			t.Errorf("input %q: expected 2 tokens, got %d", tt.input, len(toks))
			continue
		}
		if toks[0].Kind != tt.kind {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.kind, toks[0].Kind)
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"true", TokTrue},
		{"FALSE", TokFalse},
		{"null", TokNull},
		{"Distinct", TokDistinct},
		{"extract", TokExtract},
		{"FROM", TokFrom},
		{"count", TokIdent},
		{"distinctly", TokIdent},
	}
	for _, tt := range tests {
		toks := collectTokens(t, tt.input)
		if toks[0].Kind != tt.kind {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.kind, toks[0].Kind)
		}
		if toks[0].Lit != tt.input {
			t.Errorf("input %q: keyword literal should keep its spelling, got %q", tt.input, toks[0].Lit)
		}
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		lit   string
	}{
		{"42", TokNumber, "42"},
		{"3.14", TokNumber, "3.14"},
		{"1e9", TokNumber, "1e9"},
		{"2.5E-3", TokNumber, "2.5E-3"},
		{"'hello'", TokString, "hello"},
		{"'it''s'", TokString, "it's"},
		{"''", TokString, ""},
		{`"Order Date"`, TokQuotedIdent, "Order Date"},
		{`"a""b"`, TokQuotedIdent, `a"b`},
		{"first_name", TokIdent, "first_name"},
		{"_x1", TokIdent, "_x1"},
		{"@timestamp", TokIdent, "@timestamp"},
	}
	for _, tt := range tests {
		toks := collectTokens(t, tt.input)
		if toks[0].Kind != tt.kind {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.kind, toks[0].Kind)
		}
		if toks[0].Lit != tt.lit {
			t.Errorf("input %q: expected lit %q, got %q", tt.input, tt.lit, toks[0].Lit)
		}
	}
}

func TestLexerLocations(t *testing.T) {
	toks := collectTokens(t, "abs(x)\n  + -- comment\n\tYEAR(ts)")
	want := []struct {
		kind TokenKind
		loc  expr.Location
	}{
		{TokIdent, expr.Location{Line: 1, Column: 1}},
		{TokLParen, expr.Location{Line: 1, Column: 4}},
		{TokIdent, expr.Location{Line: 1, Column: 5}},
		{TokRParen, expr.Location{Line: 1, Column: 6}},
		{TokPlus, expr.Location{Line: 2, Column: 3}},
		{TokIdent, expr.Location{Line: 3, Column: 2}},
		{TokLParen, expr.Location{Line: 3, Column: 6}},
		{TokIdent, expr.Location{Line: 3, Column: 7}},
		{TokRParen, expr.Location{Line: 3, Column: 9}},
		{TokEOF, expr.Location{Line: 3, Column: 10}},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Loc != w.loc {
			t.Errorf("token %d: expected %v at %v, got %v at %v", i, w.kind, w.loc, toks[i].Kind, toks[i].Loc)
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer("a b")
	p1, err := lex.Peek()
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := lex.Peek()
	n, _ := lex.Next()
	if p1 != p2 || p1 != n {
		t.Fatalf("peek/next mismatch: %v %v %v", p1, p2, n)
	}
	n2, _ := lex.Next()
	if n2.Lit != "b" {
		t.Fatalf("expected b, got %v", n2)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"'open", "line 1:1: unterminated string literal"},
		{`x + "open`, "line 1:5: unterminated quoted identifier"},
		{"a ; b", "line 1:3: unexpected character ';'"},
		{"1e+", `line 1:1: malformed number "1e+"`},
		{"12abc", "line 1:3: unexpected character 'a' after number"},
		{"٣", "line 1:1: unexpected character '٣'"},
		{"12٣", "line 1:3: unexpected character '٣'"},
		{"1e٣", `line 1:1: malformed number "1e"`},
	}
	for _, tt := range tests {
		lex := NewLexer(tt.input)
		var err error
		for {
			var tok Token
			tok, err = lex.Next()
			if err != nil || tok.Kind == TokEOF {
				break
			}
		}
		if err == nil {
			t.Errorf("input %q: expected error, got nil", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("input %q: expected error containing %q, got %q", tt.input, tt.want, err.Error())
		}
	}
}
