package db

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/translate"
)

// Result is one evaluated page of an expression.
type Result struct {
	SQL    string
	Args   []any
	Values []any
}

// Evaluator runs resolved expressions against a database.
type Evaluator struct {
	q        Querier
	timeout  time.Duration
	pageSize uint64
}

// NewEvaluator creates an evaluator. A zero timeout leaves the caller's
// deadline alone; a zero pageSize returns every row.
func NewEvaluator(q Querier, timeout time.Duration, pageSize int) *Evaluator {
	e := &Evaluator{q: q, timeout: timeout}
	if pageSize > 0 {
		e.pageSize = uint64(pageSize)
	}
	return e
}

// Evaluate translates node, selects it from table and returns the first page
// of values. table may be empty for constant expressions.
func (e *Evaluator) Evaluate(ctx context.Context, node expr.Expression, table string) (*Result, error) {
	qb, err := translate.Builder(node, table)
	if err != nil {
		return nil, err
	}
	if e.pageSize > 0 {
		qb = qb.Limit(e.pageSize)
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := e.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate %s", node)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[any])
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate %s", node)
	}
	return &Result{SQL: sql, Args: args, Values: values}, nil
}
