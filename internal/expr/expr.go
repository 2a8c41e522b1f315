package expr

import (
	"fmt"
	"strings"
)

// Location is a 1-based line/column position in the query text.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("line %d:%d", l.Line, l.Column)
}

// Expression is the interface all expression tree nodes implement.
type Expression interface {
	Location() Location
	Children() []Expression
	String() string
}

// Function is a resolved function node.
type Function interface {
	Expression
	FunctionName() string
}

// LiteralKind classifies a literal value.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitNumber
	LitString
	LitBool
)

var literalKindNames = map[LiteralKind]string{
	LitNull:   "null",
	LitNumber: "number",
	LitString: "string",
	LitBool:   "boolean",
}

func (k LiteralKind) String() string {
	if s, ok := literalKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// Literal represents a null, number, string, or boolean constant.
type Literal struct {
	Loc   Location
	Kind  LiteralKind
	Value string // raw text; unquoted for strings
}

// Column represents a (possibly qualified) column reference: a or t.a
type Column struct {
	Loc  Location
	Name []string
}

// Star represents `*`, only valid as the argument of COUNT.
type Star struct {
	Loc Location
}

// Arithmetic represents a binary arithmetic operation: left op right.
type Arithmetic struct {
	Loc   Location
	Op    string // "+", "-", "*", "/", "%"
	Left  Expression
	Right Expression
}

// Neg represents unary negation: -expr.
type Neg struct {
	Loc  Location
	Expr Expression
}

func (n *Literal) Location() Location    { return n.Loc }
func (n *Column) Location() Location     { return n.Loc }
func (n *Star) Location() Location       { return n.Loc }
func (n *Arithmetic) Location() Location { return n.Loc }
func (n *Neg) Location() Location        { return n.Loc }

func (*Literal) Children() []Expression      { return nil }
func (*Column) Children() []Expression       { return nil }
func (*Star) Children() []Expression         { return nil }
func (n *Arithmetic) Children() []Expression { return []Expression{n.Left, n.Right} }
func (n *Neg) Children() []Expression        { return []Expression{n.Expr} }

func (n *Literal) String() string {
	switch n.Kind {
	case LitNull:
		return "NULL"
	case LitString:
		return "'" + strings.ReplaceAll(n.Value, "'", "''") + "'"
	default:
		return n.Value
	}
}

func (n *Column) String() string     { return strings.Join(n.Name, ".") }
func (*Star) String() string         { return "*" }
func (n *Neg) String() string        { return "-" + n.Expr.String() }
func (n *Arithmetic) String() string { return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right) }

// FormatCall renders name(arg1, arg2, ...).
func FormatCall(name string, args ...Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// Walk visits node and all of its descendants depth-first, parents before
// children. Returning false from fn skips the node's children.
func Walk(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, c := range node.Children() {
		Walk(c, fn)
	}
}
