// Package translate renders resolved expressions as PostgreSQL.
package translate

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function/builtin"
)

// ValueColumn is the name of the single column Select produces.
const ValueColumn = "value"

// Select builds `SELECT <node> AS "value" [FROM table]` with dollar
// placeholders. table may be schema-qualified.
func Select(node expr.Expression, table string) (string, []any, error) {
	qb, err := Builder(node, table)
	if err != nil {
		return "", nil, err
	}
	return qb.ToSql()
}

// Builder returns the statement Select renders, for callers that add
// clauses such as LIMIT.
func Builder(node expr.Expression, table string) (sq.SelectBuilder, error) {
	frag, err := Expr(node)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	qb := sq.Select().Column(sq.Alias(frag, Ident(ValueColumn))).PlaceholderFormat(sq.Dollar)
	if table != "" {
		qb = qb.From(Ident(strings.Split(table, ".")...))
	}
	return qb, nil
}

// Expr converts a resolved expression into a SQL fragment with `?`
// placeholders. Unresolved calls are an assertion failure.
func Expr(node expr.Expression) (sq.Sqlizer, error) {
	switch n := node.(type) {
	case *expr.Literal:
		return literal(n)

	case *expr.Column:
		return sq.Expr(Ident(n.Name...)), nil

	case *expr.Star:
		return sq.Expr("*"), nil

	case *expr.Neg:
		inner, err := Expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return sq.Expr("(- ?)", inner), nil

	case *expr.Arithmetic:
		left, err := Expr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Expr(n.Right)
		if err != nil {
			return nil, err
		}
		return sq.Expr(fmt.Sprintf("(? %s ?)", n.Op), left, right), nil

	case *builtin.Math:
		return call(mathTemplates[n.Op], n.Op, n.Field)

	case *builtin.BinaryMath:
		return call(binaryMathTemplates[n.Op], n.Op, n.Left, n.Right)

	case *builtin.Constant:
		return call(constantTemplates[n.Op], n.Op)

	case *builtin.StringFunc:
		return call(stringTemplates[n.Op], n.Op, n.Field)

	case *builtin.BinaryString:
		return call(binaryStringTemplates[n.Op], n.Op, n.Left, n.Right)

	case *builtin.Aggregate:
		return aggregate(n)

	case *builtin.DateTimeExtract:
		return extract(n)

	default:
		return nil, errors.AssertionFailedf("cannot translate %T at %s", node, node.Location())
	}
}

// Ident quotes a possibly qualified identifier. Question marks are doubled
// so squirrel does not read them as placeholders.
func Ident(parts ...string) string {
	return strings.ReplaceAll(pgx.Identifier(parts).Sanitize(), "?", "??")
}

func literal(n *expr.Literal) (sq.Sqlizer, error) {
	switch n.Kind {
	case expr.LitNull:
		return sq.Expr("NULL"), nil
	case expr.LitBool:
		return sq.Expr(strings.ToUpper(n.Value)), nil
	case expr.LitNumber:
		// The lexer only admits digits, '.' and an exponent here.
		return sq.Expr(n.Value), nil
	case expr.LitString:
		return sq.Expr("?", n.Value), nil
	default:
		return nil, errors.AssertionFailedf("unknown literal kind %s", n.Kind)
	}
}

// call fills the `?` slots of template with the translated args, in order.
func call[Op ~string](template string, op Op, args ...expr.Expression) (sq.Sqlizer, error) {
	if template == "" {
		return nil, errors.AssertionFailedf("no translation for %s", op)
	}
	frags := make([]any, len(args))
	for i, a := range args {
		f, err := Expr(a)
		if err != nil {
			return nil, err
		}
		frags[i] = f
	}
	return sq.Expr(template, frags...), nil
}

func aggregate(n *builtin.Aggregate) (sq.Sqlizer, error) {
	field, err := Expr(n.Field)
	if err != nil {
		return nil, err
	}
	if n.Distinct {
		return sq.Expr(fmt.Sprintf("%s(DISTINCT ?)", aggregateNames[n.Op]), field), nil
	}
	switch n.Op {
	case builtin.OpSumOfSquares:
		return sq.Expr("sum(? * ?)", field, field), nil
	case builtin.OpPercentile, builtin.OpPercentileRank:
		param, err := Expr(n.Param)
		if err != nil {
			return nil, err
		}
		if n.Op == builtin.OpPercentile {
			return sq.Expr("percentile_cont(? / 100.0) WITHIN GROUP (ORDER BY ?)", param, field), nil
		}
		return sq.Expr("(percent_rank(?) WITHIN GROUP (ORDER BY ?) * 100)", param, field), nil
	}
	name, ok := aggregateNames[n.Op]
	if !ok {
		return nil, errors.AssertionFailedf("no translation for %s", n.Op)
	}
	return sq.Expr(name+"(?)", field), nil
}

func extract(n *builtin.DateTimeExtract) (sq.Sqlizer, error) {
	arg, err := Expr(n.Arg)
	if err != nil {
		return nil, err
	}
	template, ok := extractTemplates[n.Field]
	if !ok {
		return nil, errors.AssertionFailedf("no translation for %s", n.Field)
	}
	local := atTimeZone(arg, n.Zone)
	args := make([]any, strings.Count(template, "?"))
	for i := range args {
		args[i] = local
	}
	return sq.Expr(template, args...), nil
}

// atTimeZone shifts ts into zone. Named zones are passed by name; fixed
// offsets become an interval, which PostgreSQL reads with ISO sign.
func atTimeZone(ts sq.Sqlizer, zone *time.Location) sq.Sqlizer {
	if zone == nil {
		zone = time.UTC
	}
	name := zone.String()
	if _, err := time.LoadLocation(name); err == nil && name != "" && name != "Local" {
		return sq.Expr("(? AT TIME ZONE ?)", ts, name)
	}
	_, offset := time.Now().In(zone).Zone()
	return sq.Expr("(? AT TIME ZONE ?::interval)", ts, formatOffset(offset))
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds%3600/60)
}
