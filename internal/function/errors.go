package function

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/atlekbai/function_registry/internal/expr"
)

var (
	// ErrUnsupportedModifier marks a DISTINCT request on a function that cannot honor it.
	ErrUnsupportedModifier = errors.New("unsupported modifier")
	// ErrArityMismatch marks a call with the wrong number of arguments.
	ErrArityMismatch = errors.New("arity mismatch")
)

// AliasConflictError is returned when two definitions claim the same name or
// alias. Existing is the display form of the earlier definition.
type AliasConflictError struct {
	Alias    string
	Existing string
	Incoming string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias [%s] is used by [%s] and [%s]", e.Alias, e.Existing, e.Incoming)
}

// UnknownFunctionError is returned by ResolveFunction for names the registry
// does not hold. Analysis is expected to reject such names first, so callers
// receive it wrapped as an assertion failure.
type UnknownFunctionError struct {
	Name Key
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("Cannot find function %s; this should have been caught during analysis", e.Name)
}

// ResolutionError is a user-facing failure to bind a call to its definition.
// It unwraps to ErrUnsupportedModifier or ErrArityMismatch.
type ResolutionError struct {
	Loc      expr.Location
	Function string
	Reason   error
	msg      string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.msg)
}

func (e *ResolutionError) Unwrap() error { return e.Reason }

// Message returns the diagnostic without the location prefix.
func (e *ResolutionError) Message() string { return e.msg }

func unsupportedDistinct(loc expr.Location, name string) error {
	return &ResolutionError{
		Loc:      loc,
		Function: name,
		Reason:   ErrUnsupportedModifier,
		msg:      fmt.Sprintf("[%s] does not support DISTINCT yet it was specified", name),
	}
}

func arityMismatch(loc expr.Location, name, expects string) error {
	return &ResolutionError{
		Loc:      loc,
		Function: name,
		Reason:   ErrArityMismatch,
		msg:      fmt.Sprintf("error building [%s]: %s", name, expects),
	}
}
