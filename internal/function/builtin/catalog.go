// Package builtin declares the functions available to queries and the
// resolved nodes they build.
package builtin

import (
	"sync"

	"github.com/atlekbai/function_registry/internal/function"
)

// Batches returns the built-in definitions grouped the way they are registered.
func Batches() [][]*function.Definition {
	return [][]*function.Definition{
		aggregateFunctions(),
		mathFunctions(),
		stringFunctions(),
		dateTimeFunctions(),
	}
}

// NewRegistry builds a fresh registry holding every built-in function.
func NewRegistry() (*function.Registry, error) {
	return function.NewRegistry(Batches()...)
}

// Registry returns the process-wide built-in registry, built on first use.
var Registry = sync.OnceValues(NewRegistry)
