package builtin

import (
	"fmt"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
)

// AggregateOp names an aggregate function.
type AggregateOp string

const (
	OpCount          AggregateOp = "COUNT"
	OpSum            AggregateOp = "SUM"
	OpAvg            AggregateOp = "AVG"
	OpMin            AggregateOp = "MIN"
	OpMax            AggregateOp = "MAX"
	OpStddevPop      AggregateOp = "STDDEV_POP"
	OpVarPop         AggregateOp = "VAR_POP"
	OpSumOfSquares   AggregateOp = "SUM_OF_SQUARES"
	OpPercentile     AggregateOp = "PERCENTILE"
	OpPercentileRank AggregateOp = "PERCENTILE_RANK"
)

// Aggregate is a resolved aggregate call. Param is set only for the
// percentile family.
type Aggregate struct {
	Loc      expr.Location
	Op       AggregateOp
	Field    expr.Expression
	Param    expr.Expression
	Distinct bool
}

func (a *Aggregate) Location() expr.Location { return a.Loc }
func (a *Aggregate) FunctionName() string    { return string(a.Op) }

func (a *Aggregate) Children() []expr.Expression {
	if a.Param != nil {
		return []expr.Expression{a.Field, a.Param}
	}
	return []expr.Expression{a.Field}
}

func (a *Aggregate) String() string {
	if a.Distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", a.Op, a.Field)
	}
	return expr.FormatCall(string(a.Op), a.Children()...)
}

func newCount(loc expr.Location, field expr.Expression, distinct bool) expr.Function {
	return &Aggregate{Loc: loc, Op: OpCount, Field: field, Distinct: distinct}
}

func aggregate(op AggregateOp) function.Unary {
	return func(loc expr.Location, field expr.Expression) expr.Function {
		return &Aggregate{Loc: loc, Op: op, Field: field}
	}
}

func percentile(op AggregateOp) function.Binary {
	return func(loc expr.Location, field, param expr.Expression) expr.Function {
		return &Aggregate{Loc: loc, Op: op, Field: field, Param: param}
	}
}

func aggregateFunctions() []*function.Definition {
	return []*function.Definition{
		function.DefAggregate("COUNT", function.UnaryDistinct(newCount)),
		function.DefAggregate("SUM", aggregate(OpSum)),
		function.DefAggregate("AVG", aggregate(OpAvg)),
		function.DefAggregate("MIN", aggregate(OpMin)),
		function.DefAggregate("MAX", aggregate(OpMax)),
		function.DefAggregate("STDDEV_POP", aggregate(OpStddevPop)),
		function.DefAggregate("VAR_POP", aggregate(OpVarPop)),
		function.DefAggregate("SUM_OF_SQUARES", aggregate(OpSumOfSquares)),
		function.DefAggregate("PERCENTILE", percentile(OpPercentile)),
		function.DefAggregate("PERCENTILE_RANK", percentile(OpPercentileRank)),
	}
}
