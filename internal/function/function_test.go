package function

import (
	"math/rand/v2"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/session"
)

// --- Helpers ---

// dummyFunction and otherDummyFunction are two unrelated implementations of
// expr.Function, used where two distinct functions share a builder shape.
type dummyFunction struct {
	loc  expr.Location
	args []expr.Expression
}

func (f *dummyFunction) Location() expr.Location     { return f.loc }
func (f *dummyFunction) Children() []expr.Expression { return f.args }
func (f *dummyFunction) String() string              { return expr.FormatCall("DUMMY_FUNCTION", f.args...) }
func (f *dummyFunction) FunctionName() string        { return "DUMMY_FUNCTION" }

type otherDummyFunction struct {
	loc expr.Location
}

func (f *otherDummyFunction) Location() expr.Location     { return f.loc }
func (f *otherDummyFunction) Children() []expr.Expression { return nil }
func (f *otherDummyFunction) String() string              { return "DUMMY_FUNCTION2()" }
func (f *otherDummyFunction) FunctionName() string        { return "DUMMY_FUNCTION2" }

func newDummy(loc expr.Location) expr.Function      { return &dummyFunction{loc: loc} }
func newOtherDummy(loc expr.Location) expr.Function { return &otherDummyFunction{loc: loc} }

func randomLocation() expr.Location {
	return expr.Location{Line: rand.IntN(500) + 1, Column: rand.IntN(500) + 1}
}

var testZones = []string{"UTC", "Europe/Berlin", "America/New_York", "Asia/Tokyo", "Australia/Adelaide"}

func randomZone(t *testing.T) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation(testZones[rand.IntN(len(testZones))])
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return zone
}

func randomConfiguration(t *testing.T) *session.Configuration {
	t.Helper()
	return randomConfigurationWithZone(randomZone(t))
}

func randomConfigurationWithZone(zone *time.Location) *session.Configuration {
	modes := []session.Mode{session.ModePlain, session.ModeJDBC, session.ModeODBC, session.ModeCLI}
	return &session.Configuration{
		Zone:           zone,
		PageSize:       rand.IntN(1001),
		RequestTimeout: time.Duration(rand.Int64N(int64(time.Hour))),
		PageTimeout:    time.Duration(rand.Int64N(int64(time.Hour))),
		Mode:           modes[rand.IntN(len(modes))],
		Username:       "user",
		ClusterName:    "cluster",
	}
}

// mockExpression is an opaque child whose identity is all that matters.
type mockExpression struct {
	loc expr.Location
}

func (m *mockExpression) Location() expr.Location     { return m.loc }
func (m *mockExpression) Children() []expr.Expression { return nil }
func (m *mockExpression) String() string              { return "mock" }

func mockExpr() expr.Expression {
	return &mockExpression{loc: randomLocation()}
}

func uf(mod Modifier, args ...expr.Expression) *UnresolvedCall {
	return &UnresolvedCall{Loc: randomLocation(), Name: "DUMMY_FUNCTION", Modifier: mod, Args: args}
}

func mustRegistry(t *testing.T, defs ...*Definition) *Registry {
	t.Helper()
	r, err := NewRegistry(defs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func mustResolveFunction(t *testing.T, r *Registry, name string) *Definition {
	t.Helper()
	def, err := r.ResolveFunction(name)
	if err != nil {
		t.Fatalf("ResolveFunction(%q): %v", name, err)
	}
	return def
}
