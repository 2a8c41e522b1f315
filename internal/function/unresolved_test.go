package function

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/function_registry/internal/expr"
)

func requireResolveError(t *testing.T, call *UnresolvedCall, def *Definition, reason error, suffix string) {
	t.Helper()
	_, err := call.Resolve(randomConfiguration(t), def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reason), "expected %v, got %v", reason, err)
	assert.True(t, strings.HasSuffix(err.Error(), suffix), "expected suffix %q, got %q", suffix, err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), call.Loc.String()+": "), "expected location prefix, got %q", err.Error())
}

func TestNoArgFunction(t *testing.T) {
	ur := uf(Standard)
	r := mustRegistry(t, Def("DUMMY_FUNCTION", NoArg(newDummy)))
	def := mustResolveFunction(t, r, ur.Name)

	fn, err := ur.Resolve(randomConfiguration(t), def)
	require.NoError(t, err)
	assert.Equal(t, ur.Loc, fn.Location())
	assert.False(t, def.Datetime())

	requireResolveError(t, uf(Distinct), def, ErrUnsupportedModifier, "does not support DISTINCT yet it was specified")
	requireResolveError(t, uf(Standard, mockExpr()), def, ErrArityMismatch, "expects no arguments")
}

func TestUnaryFunction(t *testing.T) {
	ur := uf(Standard, mockExpr())
	r := mustRegistry(t, Def("DUMMY_FUNCTION", Unary(func(l expr.Location, e expr.Expression) expr.Function {
		assert.Same(t, ur.Args[0], e)
		return newDummy(l)
	})))
	def := mustResolveFunction(t, r, ur.Name)
	assert.False(t, def.Datetime())

	fn, err := ur.Resolve(randomConfiguration(t), def)
	require.NoError(t, err)
	assert.Equal(t, ur.Loc, fn.Location())

	requireResolveError(t, uf(Distinct, mockExpr()), def, ErrUnsupportedModifier, "does not support DISTINCT yet it was specified")
	requireResolveError(t, uf(Standard), def, ErrArityMismatch, "expects exactly one argument")
	requireResolveError(t, uf(Standard, mockExpr(), mockExpr()), def, ErrArityMismatch, "expects exactly one argument")
}

func TestUnaryDistinctAwareFunction(t *testing.T) {
	for _, distinct := range []bool{false, true} {
		mod := Standard
		if distinct {
			mod = Distinct
		}
		ur := uf(mod, mockExpr())
		r := mustRegistry(t, Def("DUMMY_FUNCTION", UnaryDistinct(func(l expr.Location, e expr.Expression, d bool) expr.Function {
			assert.Equal(t, distinct, d)
			assert.Same(t, ur.Args[0], e)
			return newDummy(l)
		})))
		def := mustResolveFunction(t, r, ur.Name)
		assert.False(t, def.Datetime())

		fn, err := ur.Resolve(randomConfiguration(t), def)
		require.NoError(t, err)
		assert.Equal(t, ur.Loc, fn.Location())

		requireResolveError(t, uf(Standard), def, ErrArityMismatch, "expects exactly one argument")
		requireResolveError(t, uf(Standard, mockExpr(), mockExpr()), def, ErrArityMismatch, "expects exactly one argument")
	}
}

func TestDateTimeFunction(t *testing.T) {
	mod := Standard
	if rand.IntN(2) == 0 {
		mod = Extract
	}
	ur := uf(mod, mockExpr())
	providedZone := randomZone(t)
	providedConfiguration := randomConfigurationWithZone(providedZone)

	r := mustRegistry(t, Def("DUMMY_FUNCTION", UnaryDatetime(func(l expr.Location, e expr.Expression, zone *time.Location) expr.Function {
		assert.Same(t, providedZone, zone)
		assert.Same(t, ur.Args[0], e)
		return newDummy(l)
	})))
	def := mustResolveFunction(t, r, ur.Name)
	assert.True(t, def.Datetime())

	fn, err := ur.Resolve(providedConfiguration, def)
	require.NoError(t, err)
	assert.Equal(t, ur.Loc, fn.Location())

	// A different zone in a different configuration must not leak in.
	other := mustRegistry(t, Def("DUMMY_FUNCTION", UnaryDatetime(func(l expr.Location, _ expr.Expression, zone *time.Location) expr.Function {
		assert.Equal(t, time.UTC, zone)
		return newDummy(l)
	})))
	_, err = ur.Resolve(randomConfigurationWithZone(time.UTC), mustResolveFunction(t, other, ur.Name))
	require.NoError(t, err)

	requireResolveError(t, uf(Distinct, mockExpr()), def, ErrUnsupportedModifier, "does not support DISTINCT yet it was specified")
	requireResolveError(t, uf(Standard), def, ErrArityMismatch, "expects exactly one argument")
	requireResolveError(t, uf(Standard, mockExpr(), mockExpr()), def, ErrArityMismatch, "expects exactly one argument")
}

func TestBinaryFunction(t *testing.T) {
	ur := uf(Standard, mockExpr(), mockExpr())
	r := mustRegistry(t, Def("DUMMY_FUNCTION", Binary(func(l expr.Location, lhs, rhs expr.Expression) expr.Function {
		assert.Same(t, ur.Args[0], lhs)
		assert.Same(t, ur.Args[1], rhs)
		return newDummy(l)
	})))
	def := mustResolveFunction(t, r, ur.Name)
	assert.False(t, def.Datetime())

	fn, err := ur.Resolve(randomConfiguration(t), def)
	require.NoError(t, err)
	assert.Equal(t, ur.Loc, fn.Location())

	requireResolveError(t, uf(Distinct, mockExpr(), mockExpr()), def, ErrUnsupportedModifier, "does not support DISTINCT yet it was specified")
	requireResolveError(t, uf(Standard), def, ErrArityMismatch, "expects exactly two arguments")
	requireResolveError(t, uf(Standard, mockExpr()), def, ErrArityMismatch, "expects exactly two arguments")
	requireResolveError(t, uf(Standard, mockExpr(), mockExpr(), mockExpr()), def, ErrArityMismatch, "expects exactly two arguments")
}

func TestResolveIsDeterministic(t *testing.T) {
	r := mustRegistry(t, Def("DUMMY_FUNCTION", Binary(func(l expr.Location, _, _ expr.Expression) expr.Function {
		return newDummy(l)
	})))
	def := mustResolveFunction(t, r, "DUMMY_FUNCTION")
	cfg := randomConfiguration(t)

	bad := uf(Standard, mockExpr())
	_, first := bad.Resolve(cfg, def)
	_, second := bad.Resolve(cfg, def)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestDistinctCheckedBeforeArity(t *testing.T) {
	r := mustRegistry(t, Def("DUMMY_FUNCTION", NoArg(newDummy)))
	def := mustResolveFunction(t, r, "DUMMY_FUNCTION")
	requireResolveError(t, uf(Distinct, mockExpr()), def, ErrUnsupportedModifier, "does not support DISTINCT yet it was specified")
}

func TestResolutionErrorCitesDeclaredName(t *testing.T) {
	r := mustRegistry(t, Def("Dummy_Function", Unary(func(l expr.Location, _ expr.Expression) expr.Function {
		return newDummy(l)
	}), "DUMMY_FUNC"))
	def := mustResolveFunction(t, r, r.ResolveAlias("dummy_func"))

	call := &UnresolvedCall{Loc: expr.Location{Line: 3, Column: 14}, Name: "dummy_func", Modifier: Distinct, Args: []expr.Expression{mockExpr()}}
	_, err := call.Resolve(randomConfiguration(t), def)
	require.Error(t, err)
	assert.Equal(t, "line 3:14: [Dummy_Function] does not support DISTINCT yet it was specified", err.Error())

	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Dummy_Function", re.Function)
	assert.Equal(t, "[Dummy_Function] does not support DISTINCT yet it was specified", re.Message())
}

func TestBuilderMovingLocationIsAssertion(t *testing.T) {
	r := mustRegistry(t, Def("DUMMY_FUNCTION", NoArg(func(expr.Location) expr.Function {
		return newDummy(expr.Location{Line: 0, Column: 0})
	})))
	_, err := uf(Standard).Resolve(randomConfiguration(t), mustResolveFunction(t, r, "DUMMY_FUNCTION"))
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestUnresolvedCallString(t *testing.T) {
	arg := &expr.Column{Name: []string{"t", "a"}}
	tests := []struct {
		call *UnresolvedCall
		want string
	}{
		{&UnresolvedCall{Name: "pi"}, "pi()"},
		{&UnresolvedCall{Name: "count", Modifier: Distinct, Args: []expr.Expression{arg}}, "count(DISTINCT t.a)"},
		{&UnresolvedCall{Name: "YEAR", Modifier: Extract, Args: []expr.Expression{arg}}, "EXTRACT(YEAR FROM t.a)"},
		{&UnresolvedCall{Name: "power", Args: []expr.Expression{arg, arg}}, "power(t.a, t.a)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.call.String())
	}
}
