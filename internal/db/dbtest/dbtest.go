// Package dbtest provides an in-memory db.Querier for tests.
package dbtest

import (
	"context"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call records one query received by a Querier.
type Call struct {
	SQL  string
	Args []any
}

// Querier answers every query with the same rows, or with Err.
type Querier struct {
	Rows [][]any
	Err  error

	mu    sync.Mutex
	calls []Call
}

// Query implements db.Querier.
func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.mu.Lock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
	q.mu.Unlock()

	if q.Err != nil {
		return nil, q.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Rows{rows: q.Rows, pos: -1}, nil
}

// Calls returns the queries received so far.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

// Rows is a pgx.Rows over fixed values.
type Rows struct {
	rows   [][]any
	pos    int
	closed bool
}

var _ pgx.Rows = (*Rows)(nil)

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Err() error                                   { return nil }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Values() ([]any, error) {
	return r.rows[r.pos], nil
}

func (r *Rows) RawValues() [][]byte {
	return make([][]byte, len(r.rows[r.pos]))
}

// Scan assigns the current row to dest by position.
func (r *Rows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return errors.Newf("scan: %d destinations for %d values", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return errors.Newf("scan: destination %d is not a pointer", i)
		}
		if row[i] == nil {
			target.Elem().Set(reflect.Zero(target.Elem().Type()))
			continue
		}
		value := reflect.ValueOf(row[i])
		if !value.Type().AssignableTo(target.Elem().Type()) {
			return errors.Newf("scan: cannot assign %T to %s", row[i], target.Elem().Type())
		}
		target.Elem().Set(value)
	}
	return nil
}
