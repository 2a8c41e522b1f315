// Package analyzer binds parsed expressions to function definitions.
//
// Analysis runs in two passes. Verification walks the unresolved tree and
// reports every unknown function, unknown column, misplaced star and nested
// aggregate at once as a *VerificationError. Resolution then replaces each
// call bottom-up with the node its definition builds; the first call that
// fails to bind stops analysis with a *function.ResolutionError.
package analyzer

import (
	"github.com/cockroachdb/errors"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
	"github.com/atlekbai/function_registry/internal/session"
	"github.com/atlekbai/function_registry/internal/sql"
)

// Scope is the set of columns an expression may reference.
type Scope interface {
	HasColumn(name string) bool
	ColumnNames() []string
}

// Analyzer resolves expressions against a registry. It is safe for
// concurrent use once built.
type Analyzer struct {
	registry *function.Registry
	cfg      *session.Configuration
	scope    Scope
}

// New creates an analyzer. A nil cfg uses session.Default().
func New(registry *function.Registry, cfg *session.Configuration) *Analyzer {
	if cfg == nil {
		cfg = session.Default()
	}
	return &Analyzer{registry: registry, cfg: cfg}
}

// WithScope returns a copy of a that checks column references against scope.
func (a *Analyzer) WithScope(scope Scope) *Analyzer {
	cp := *a
	cp.scope = scope
	return &cp
}

// Parse parses input and analyzes the result.
func (a *Analyzer) Parse(input string) (expr.Expression, error) {
	node, err := sql.Parse(input)
	if err != nil {
		return nil, err
	}
	return a.Analyze(node)
}

// Analyze verifies node and returns the resolved tree. The input tree is
// not modified.
func (a *Analyzer) Analyze(node expr.Expression) (expr.Expression, error) {
	if err := a.verify(node); err != nil {
		return nil, err
	}
	return a.resolve(node)
}

func (a *Analyzer) verify(root expr.Expression) error {
	var fs failures
	expr.Walk(root, func(node expr.Expression) bool {
		switch n := node.(type) {
		case *function.UnresolvedCall:
			a.verifyCall(n, &fs)
		case *expr.Column:
			a.verifyColumn(n, &fs)
		}
		return true
	})
	a.verifyStars(root, &fs)
	return fs.err()
}

func (a *Analyzer) verifyCall(call *function.UnresolvedCall, fs *failures) {
	name := a.registry.ResolveAlias(call.Name)
	if !a.registry.Exists(name) {
		fs.add(call.Loc, "Unknown function [%s]%s", call.Name, didYouMean(suggest(call.Name, a.registry.Names())))
		return
	}
	if call.Modifier == function.Extract {
		if def, err := a.registry.ResolveFunction(name); err == nil && !def.Datetime() {
			fs.add(call.Loc, "Invalid datetime field [%s]. Use any datetime function.", call.Name)
			return
		}
	}
	if !a.isAggregate(call) {
		return
	}
	for _, arg := range call.Args {
		expr.Walk(arg, func(node expr.Expression) bool {
			inner, ok := node.(*function.UnresolvedCall)
			if ok && a.isAggregate(inner) {
				fs.add(inner.Loc, "Nested aggregations in aggregate function [%s] not allowed", call)
				return false
			}
			return true
		})
	}
}

func (a *Analyzer) isAggregate(call *function.UnresolvedCall) bool {
	def, err := a.registry.ResolveFunction(a.registry.ResolveAlias(call.Name))
	return err == nil && def.Kind() == function.KindAggregate
}

func (a *Analyzer) verifyColumn(col *expr.Column, fs *failures) {
	if a.scope == nil {
		return
	}
	name := col.Name[len(col.Name)-1]
	if a.scope.HasColumn(name) {
		return
	}
	fs.add(col.Loc, "Unknown column [%s]%s", col, didYouMean(suggest(name, a.scope.ColumnNames())))
}

// verifyStars rejects * anywhere except as the sole argument of COUNT.
func (a *Analyzer) verifyStars(root expr.Expression, fs *failures) {
	allowed := map[*expr.Star]bool{}
	expr.Walk(root, func(node expr.Expression) bool {
		call, ok := node.(*function.UnresolvedCall)
		if !ok || len(call.Args) != 1 || a.registry.ResolveAlias(call.Name) != "COUNT" {
			return true
		}
		if star, ok := call.Args[0].(*expr.Star); ok {
			allowed[star] = true
		}
		return true
	})
	expr.Walk(root, func(node expr.Expression) bool {
		if star, ok := node.(*expr.Star); ok && !allowed[star] {
			fs.add(star.Loc, "Cannot use [*] outside of COUNT")
		}
		return true
	})
}

func (a *Analyzer) resolve(node expr.Expression) (expr.Expression, error) {
	switch n := node.(type) {
	case *function.UnresolvedCall:
		args, err := a.resolveAll(n.Args)
		if err != nil {
			return nil, err
		}
		def, err := a.registry.ResolveFunction(a.registry.ResolveAlias(n.Name))
		if err != nil {
			return nil, err
		}
		return n.WithArgs(args).Resolve(a.cfg, def)

	case *expr.Arithmetic:
		left, err := a.resolve(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := a.resolve(n.Right)
		if err != nil {
			return nil, err
		}
		return &expr.Arithmetic{Loc: n.Loc, Op: n.Op, Left: left, Right: right}, nil

	case *expr.Neg:
		inner, err := a.resolve(n.Expr)
		if err != nil {
			return nil, err
		}
		return &expr.Neg{Loc: n.Loc, Expr: inner}, nil

	default:
		if len(node.Children()) != 0 {
			return nil, errors.AssertionFailedf("cannot resolve %T at %s", node, node.Location())
		}
		return node, nil
	}
}

func (a *Analyzer) resolveAll(nodes []expr.Expression) ([]expr.Expression, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]expr.Expression, len(nodes))
	for i, n := range nodes {
		r, err := a.resolve(n)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
