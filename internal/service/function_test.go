package service

import (
	"context"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"connectrpc.com/connect"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/function_registry/internal/db"
	"github.com/atlekbai/function_registry/internal/db/dbtest"
	"github.com/atlekbai/function_registry/internal/function/builtin"
	"github.com/atlekbai/function_registry/internal/schema"
)

func peopleCatalog() *schema.Cache {
	return schema.NewCacheFromTables(schema.NewTable("public", "people",
		schema.Column{Name: "name", DataType: "text", Position: 1},
		schema.Column{Name: "born", DataType: "timestamp without time zone", Position: 2},
		schema.Column{Name: "salary", DataType: "numeric", Nullable: true, Position: 3},
	))
}

func newService(t *testing.T, catalog *schema.Cache, evaluator *db.Evaluator) *FunctionService {
	t.Helper()
	r, err := builtin.NewRegistry()
	require.NoError(t, err)
	return NewFunctionService(r, nil, catalog, evaluator)
}

func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), err.Error())
}

func TestAnalyze(t *testing.T) {
	svc := newService(t, nil, nil)
	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{Expression: "round(abs(x), 2)"}))
	require.NoError(t, err)

	assert.Equal(t, "ROUND(ABS(x), 2)", resp.Msg.Resolved)
	assert.Equal(t, `SELECT (round((abs("x"))::numeric, 2)) AS "value"`, resp.Msg.SQL)
	assert.Equal(t, []Call{
		{Name: "ROUND", Line: 1, Column: 1},
		{Name: "ABS", Line: 1, Column: 7},
	}, resp.Msg.Functions)
}

func TestAnalyzeWithTable(t *testing.T) {
	svc := newService(t, peopleCatalog(), nil)
	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{
		Expression: "length(name)",
		Table:      "People",
	}))
	require.NoError(t, err)
	assert.Equal(t, `SELECT (length(rtrim("name"))) AS "value" FROM "public"."people"`, resp.Msg.SQL)
}

func TestAnalyzeErrors(t *testing.T) {
	svc := newService(t, peopleCatalog(), nil)
	tests := []struct {
		name    string
		req     *AnalyzeRequest
		code    connect.Code
		message string
	}{
		{"parse", &AnalyzeRequest{Expression: "(a + 1"}, connect.CodeInvalidArgument, "line 1:7: expected ), got EOF"},
		{"unknown function", &AnalyzeRequest{Expression: "abz(x)"}, connect.CodeInvalidArgument, "Unknown function [abz]"},
		{"unknown column", &AnalyzeRequest{Expression: "length(nam)", Table: "people"}, connect.CodeInvalidArgument, "Unknown column [nam], did you mean [name]?"},
		{"unknown table", &AnalyzeRequest{Expression: "pi()", Table: "planets"}, connect.CodeInvalidArgument, `unknown table "planets"`},
		{"arity", &AnalyzeRequest{Expression: "pi(1)"}, connect.CodeInvalidArgument, "expects no arguments"},
		{"zone", &AnalyzeRequest{Expression: "pi()", TimeZone: "Mars/Olympus"}, connect.CodeInvalidArgument, `time_zone "Mars/Olympus"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), connect.NewRequest(tt.req))
			requireCode(t, tt.code, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAnalyzeTimeZone(t *testing.T) {
	svc := newService(t, nil, nil)
	resp, err := svc.Analyze(context.Background(), connect.NewRequest(&AnalyzeRequest{
		Expression: "year(born)",
		TimeZone:   "Europe/Paris",
	}))
	require.NoError(t, err)
	assert.Contains(t, resp.Msg.SQL, "AT TIME ZONE $1")
	assert.Equal(t, []any{"Europe/Paris"}, resp.Msg.Args)
}

func TestAnalyzeBatch(t *testing.T) {
	svc := newService(t, nil, nil)
	resp, err := svc.AnalyzeBatch(context.Background(), connect.NewRequest(&AnalyzeBatchRequest{
		Expressions: []string{"abs(x)", "abz(x)", "sum(avg(x))", "count(*)"},
	}))
	require.NoError(t, err)

	results := resp.Msg.Results
	require.Len(t, results, 4)
	assert.Equal(t, "abs(x)", results[0].Expression)
	require.NotNil(t, results[0].AnalyzeResponse)
	assert.Equal(t, "ABS(x)", results[0].Resolved)
	assert.Empty(t, results[0].Error)

	assert.Nil(t, results[1].AnalyzeResponse)
	assert.Contains(t, results[1].Error, "Unknown function [abz]")
	assert.Contains(t, results[2].Error, "Nested aggregations in aggregate function [sum(avg(x))] not allowed")
	assert.Equal(t, "COUNT(*)", results[3].Resolved)
}

func TestAnalyzeBatchLarge(t *testing.T) {
	svc := newService(t, nil, nil)
	exprs := make([]string, MaxBatchSize)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("power(x, %d)", i)
	}
	resp, err := svc.AnalyzeBatch(context.Background(), connect.NewRequest(&AnalyzeBatchRequest{Expressions: exprs}))
	require.NoError(t, err)
	for i, res := range resp.Msg.Results {
		require.Empty(t, res.Error)
		assert.Equal(t, fmt.Sprintf("POWER(x, %d)", i), res.Resolved)
	}
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	svc := newService(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.AnalyzeBatch(ctx, connect.NewRequest(&AnalyzeBatchRequest{Expressions: []string{"abs(x)"}}))
	requireCode(t, connect.CodeCanceled, err)
}

func TestListFunctions(t *testing.T) {
	svc := newService(t, nil, nil)

	resp, err := svc.ListFunctions(context.Background(), connect.NewRequest(&ListFunctionsRequest{Pattern: "ceil%"}))
	require.NoError(t, err)
	assert.Equal(t, []FunctionInfo{
		{Name: "CEIL", Kind: "SCALAR", Shape: "unary", Aliases: []string{"CEILING"}},
	}, resp.Msg.Functions)

	resp, err = svc.ListFunctions(context.Background(), connect.NewRequest(&ListFunctionsRequest{}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Functions, svc.registry.Len())

	_, err = svc.ListFunctions(context.Background(), connect.NewRequest(&ListFunctionsRequest{Pattern: `abc\`}))
	requireCode(t, connect.CodeInvalidArgument, err)
}

func TestEvaluate(t *testing.T) {
	q := &dbtest.Querier{Rows: [][]any{{int64(3)}, {int64(5)}}}
	svc := newService(t, peopleCatalog(), db.NewEvaluator(q, time.Second, 10))

	resp, err := svc.Evaluate(context.Background(), connect.NewRequest(&EvaluateRequest{
		Expression: "char_length(name)",
		Table:      "people",
	}))
	require.NoError(t, err)
	assert.Equal(t, `SELECT (char_length("name")) AS "value" FROM "public"."people" LIMIT 10`, resp.Msg.SQL)
	assert.Equal(t, []any{int64(3), int64(5)}, resp.Msg.Values)
}

func TestEvaluateWithoutDatabase(t *testing.T) {
	svc := newService(t, nil, nil)
	_, err := svc.Evaluate(context.Background(), connect.NewRequest(&EvaluateRequest{Expression: "pi()"}))
	requireCode(t, connect.CodeUnavailable, err)
}

func TestEvaluateDatabaseError(t *testing.T) {
	q := &dbtest.Querier{Err: &pgconn.PgError{Code: "22012", Message: "division by zero"}}
	svc := newService(t, nil, db.NewEvaluator(q, 0, 0))
	_, err := svc.Evaluate(context.Background(), connect.NewRequest(&EvaluateRequest{Expression: "1 / 0"}))
	requireCode(t, connect.CodeFailedPrecondition, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEvaluateDeadline(t *testing.T) {
	q := &dbtest.Querier{}
	svc := newService(t, nil, db.NewEvaluator(q, 0, 0))
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err := svc.Evaluate(ctx, connect.NewRequest(&EvaluateRequest{Expression: "pi()"}))
	requireCode(t, connect.CodeDeadlineExceeded, err)
}
