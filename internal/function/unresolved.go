package function

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/session"
)

// Modifier is the parse-time marker on a call.
type Modifier int

const (
	Standard Modifier = iota // name(args)
	Distinct                 // name(DISTINCT arg)
	Extract                  // EXTRACT(name FROM arg)
)

var modifierNames = map[Modifier]string{
	Standard: "STANDARD",
	Distinct: "DISTINCT",
	Extract:  "EXTRACT",
}

func (m Modifier) String() string {
	if s, ok := modifierNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// UnresolvedCall is a function call as written in the query, before it has
// been bound to a definition.
type UnresolvedCall struct {
	Loc      expr.Location
	Name     string
	Modifier Modifier
	Args     []expr.Expression
}

func (c *UnresolvedCall) Location() expr.Location     { return c.Loc }
func (c *UnresolvedCall) Children() []expr.Expression { return c.Args }

func (c *UnresolvedCall) String() string {
	switch {
	case c.Modifier == Extract && len(c.Args) == 1:
		return fmt.Sprintf("EXTRACT(%s FROM %s)", c.Name, c.Args[0])
	case c.Modifier == Distinct && len(c.Args) == 1:
		return fmt.Sprintf("%s(DISTINCT %s)", c.Name, c.Args[0])
	default:
		return expr.FormatCall(c.Name, c.Args...)
	}
}

// WithArgs returns a copy of c with args replaced.
func (c *UnresolvedCall) WithArgs(args []expr.Expression) *UnresolvedCall {
	cp := *c
	cp.Args = args
	return &cp
}

// Resolve binds the call to def. The modifier is checked first, then the
// argument count; the builder only runs when both pass. The session
// configuration is read for the time zone and never retained.
func (c *UnresolvedCall) Resolve(cfg *session.Configuration, def *Definition) (expr.Function, error) {
	name := def.name

	if c.Modifier == Distinct {
		if _, ok := def.builder.(UnaryDistinct); !ok {
			return nil, unsupportedDistinct(c.Loc, name)
		}
	}

	var fn expr.Function
	switch b := def.builder.(type) {
	case NoArg:
		if len(c.Args) != 0 {
			return nil, arityMismatch(c.Loc, name, "expects no arguments")
		}
		fn = b(c.Loc)
	case Unary:
		if len(c.Args) != 1 {
			return nil, arityMismatch(c.Loc, name, "expects exactly one argument")
		}
		fn = b(c.Loc, c.Args[0])
	case UnaryDistinct:
		if len(c.Args) != 1 {
			return nil, arityMismatch(c.Loc, name, "expects exactly one argument")
		}
		fn = b(c.Loc, c.Args[0], c.Modifier == Distinct)
	case UnaryDatetime:
		if len(c.Args) != 1 {
			return nil, arityMismatch(c.Loc, name, "expects exactly one argument")
		}
		fn = b(c.Loc, c.Args[0], cfg.TimeZone())
	case Binary:
		if len(c.Args) != 2 {
			return nil, arityMismatch(c.Loc, name, "expects exactly two arguments")
		}
		fn = b(c.Loc, c.Args[0], c.Args[1])
	default:
		return nil, errors.AssertionFailedf("function %s has unsupported builder %T", name, def.builder)
	}

	if fn == nil {
		return nil, errors.AssertionFailedf("builder for %s returned nil", name)
	}
	if fn.Location() != c.Loc {
		return nil, errors.AssertionFailedf("builder for %s moved the call from %s to %s", name, c.Loc, fn.Location())
	}
	return fn, nil
}
