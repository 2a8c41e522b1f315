package sql

import (
	"fmt"

	"github.com/atlekbai/function_registry/internal/expr"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokEOF         TokenKind = iota
	TokLParen                // (
	TokRParen                // )
	TokComma                 // ,
	TokDot                   // .
	TokPlus                  // +
	TokMinus                 // -
	TokStar                  // *
	TokSlash                 // /
	TokPercent               // %
	TokIdent                 // identifier
	TokQuotedIdent           // "identifier"
	TokString                // 'string literal'
	TokNumber                // 42, 3.14, 1e9
	TokDistinct              // DISTINCT
	TokExtract               // EXTRACT
	TokFrom                  // FROM
	TokNull                  // NULL
	TokTrue                  // TRUE
	TokFalse                 // FALSE
)

// Token is a single lexical token produced by the lexer.
type Token struct {
	Kind TokenKind
	Lit  string // raw text; unquoted for strings and quoted identifiers
	Loc  expr.Location
}

func (t Token) String() string {
	if t.Lit != "" {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Lit)
	}
	return t.Kind.String()
}

var kindNames = map[TokenKind]string{
	TokEOF:         "EOF",
	TokLParen:      "(",
	TokRParen:      ")",
	TokComma:       ",",
	TokDot:         ".",
	TokPlus:        "+",
	TokMinus:       "-",
	TokStar:        "*",
	TokSlash:       "/",
	TokPercent:     "%",
	TokIdent:       "identifier",
	TokQuotedIdent: "quoted identifier",
	TokString:      "string",
	TokNumber:      "number",
	TokDistinct:    "DISTINCT",
	TokExtract:     "EXTRACT",
	TokFrom:        "FROM",
	TokNull:        "NULL",
	TokTrue:        "TRUE",
	TokFalse:       "FALSE",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords are matched case-insensitively against upper-cased identifiers.
var keywords = map[string]TokenKind{
	"DISTINCT": TokDistinct,
	"EXTRACT":  TokExtract,
	"FROM":     TokFrom,
	"NULL":     TokNull,
	"TRUE":     TokTrue,
	"FALSE":    TokFalse,
}
