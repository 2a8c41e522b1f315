package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlekbai/function_registry/internal/analyzer"
	"github.com/atlekbai/function_registry/internal/function/builtin"
)

func newAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	r, err := builtin.NewRegistry()
	require.NoError(t, err)
	return analyzer.New(r, nil)
}
