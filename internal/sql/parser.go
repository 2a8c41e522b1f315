// Package sql parses scalar SQL expressions into an expression tree whose
// function calls are left unresolved.
package sql

import (
	"fmt"
	"strings"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
)

// ParseError is a syntax error at a position in the input.
type ParseError struct {
	Loc expr.Location
	Msg string
}

func (e *ParseError) Error() string {
	return e.Loc.String() + ": " + e.Msg
}

// MaxDepth bounds how deeply parentheses, call arguments and unary minus
// may nest.
const MaxDepth = 200

func errorf(loc expr.Location, format string, args ...any) error {
	return &ParseError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses a single SQL expression.
func Parse(input string) (expr.Expression, error) {
	p := &parser{lexer: NewLexer(input)}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	// Ensure we consumed everything.
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokEOF {
		return nil, errorf(tok.Loc, "unexpected %s, expected end of expression", tok.Kind)
	}
	return node, nil
}

type parser struct {
	lexer *Lexer
	depth int
}

// enter records one more level of nesting at tok.
func (p *parser) enter(tok Token) error {
	p.depth++
	if p.depth > MaxDepth {
		return errorf(tok.Loc, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// parseExpr: term { ("+" | "-") term }
func (p *parser) parseExpr() (expr.Expression, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	if err := p.enter(start); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokPlus && tok.Kind != TokMinus {
			break
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &expr.Arithmetic{Loc: tok.Loc, Op: tok.Lit, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm: unary { ("*" | "/" | "%") unary }
func (p *parser) parseTerm() (expr.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokStar && tok.Kind != TokSlash && tok.Kind != TokPercent {
			break
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &expr.Arithmetic{Loc: tok.Loc, Op: tok.Lit, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary: "-" unary | primary
func (p *parser) parseUnary() (expr.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokMinus {
		return p.parsePrimary()
	}
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance()
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &expr.Neg{Loc: tok.Loc, Expr: inner}, nil
}

func (p *parser) parsePrimary() (expr.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokNumber:
		p.advance()
		return &expr.Literal{Loc: tok.Loc, Kind: expr.LitNumber, Value: tok.Lit}, nil

	case TokString:
		p.advance()
		return &expr.Literal{Loc: tok.Loc, Kind: expr.LitString, Value: tok.Lit}, nil

	case TokTrue, TokFalse:
		p.advance()
		return &expr.Literal{Loc: tok.Loc, Kind: expr.LitBool, Value: strings.ToUpper(tok.Lit)}, nil

	case TokNull:
		p.advance()
		return &expr.Literal{Loc: tok.Loc, Kind: expr.LitNull}, nil

	case TokExtract:
		return p.parseExtract()

	case TokIdent:
		return p.parseFuncCallOrColumn()

	case TokQuotedIdent:
		return p.parseColumn()

	case TokLParen:
		p.advance() // consume (
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, errorf(tok.Loc, "unexpected %s, expected expression", tok.Kind)
	}
}

// parseFuncCallOrColumn: ident "(" [DISTINCT] [args] ")" | column
func (p *parser) parseFuncCallOrColumn() (expr.Expression, error) {
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Kind != TokLParen {
		return p.finishColumn(name)
	}
	p.advance() // consume (

	call := &function.UnresolvedCall{Loc: name.Loc, Name: name.Lit}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokDistinct {
		p.advance()
		call.Modifier = function.Distinct
	}

	// f(*)
	if tok, err = p.peek(); err != nil {
		return nil, err
	}
	if tok.Kind == TokStar && call.Modifier == function.Standard {
		p.advance()
		call.Args = []expr.Expression{&expr.Star{Loc: tok.Loc}}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return call, nil
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if call.Modifier == function.Distinct && len(args) == 0 {
		return nil, errorf(tok.Loc, "expected expression after DISTINCT")
	}
	call.Args = args
	return call, nil
}

// parseArgs: [ expr { "," expr } ] ")"
func (p *parser) parseArgs() ([]expr.Expression, error) {
	var args []expr.Expression
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokRParen {
			break
		}
		if len(args) > 0 {
			if _, err := p.expect(TokComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.advance() // consume )
	return args, nil
}

// parseExtract: EXTRACT "(" ident FROM expr ")"
func (p *parser) parseExtract() (expr.Expression, error) {
	kw, err := p.expect(TokExtract)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	field, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokFrom); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return &function.UnresolvedCall{
		Loc:      kw.Loc,
		Name:     field.Lit,
		Modifier: function.Extract,
		Args:     []expr.Expression{arg},
	}, nil
}

func (p *parser) parseColumn() (expr.Expression, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}
	return p.finishColumn(tok)
}

// finishColumn continues a column reference after its first part: { "." part }
func (p *parser) finishColumn(first Token) (expr.Expression, error) {
	col := &expr.Column{Loc: first.Loc, Name: []string{first.Lit}}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokDot {
			return col, nil
		}
		p.advance() // consume .
		part, err := p.lexer.Next()
		if err != nil {
			return nil, err
		}
		if part.Kind != TokIdent && part.Kind != TokQuotedIdent {
			return nil, errorf(part.Loc, "expected column name after '.', got %s", part.Kind)
		}
		col.Name = append(col.Name, part.Lit)
	}
}

// --- Helpers ---

func (p *parser) peek() (Token, error) {
	return p.lexer.Peek()
}

func (p *parser) advance() {
	p.lexer.Next() //nolint:errcheck
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, errorf(tok.Loc, "expected %s, got %s", kind, tok.Kind)
	}
	return tok, nil
}
