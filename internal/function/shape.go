package function

import (
	"fmt"
	"time"

	"github.com/atlekbai/function_registry/internal/expr"
)

// Shape tags the constructor signature a Builder accepts.
type Shape int

const (
	ShapeNoArg Shape = iota
	ShapeUnary
	ShapeUnaryDistinct
	ShapeUnaryDatetime
	ShapeBinary
)

var shapeNames = map[Shape]string{
	ShapeNoArg:         "no-arg",
	ShapeUnary:         "unary",
	ShapeUnaryDistinct: "unary-distinct",
	ShapeUnaryDatetime: "unary-datetime",
	ShapeBinary:        "binary",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Builder is implemented by the closed set of constructor types below.
type Builder interface {
	Shape() Shape
}

// NoArg builds a function that takes no arguments.
type NoArg func(loc expr.Location) expr.Function

// Unary builds a function over exactly one argument.
type Unary func(loc expr.Location, field expr.Expression) expr.Function

// UnaryDistinct builds a one-argument function that honors DISTINCT.
type UnaryDistinct func(loc expr.Location, field expr.Expression, distinct bool) expr.Function

// UnaryDatetime builds a one-argument function that needs the session time zone.
type UnaryDatetime func(loc expr.Location, field expr.Expression, zone *time.Location) expr.Function

// Binary builds a function over exactly two arguments, in call order.
type Binary func(loc expr.Location, left, right expr.Expression) expr.Function

func (NoArg) Shape() Shape         { return ShapeNoArg }
func (Unary) Shape() Shape         { return ShapeUnary }
func (UnaryDistinct) Shape() Shape { return ShapeUnaryDistinct }
func (UnaryDatetime) Shape() Shape { return ShapeUnaryDatetime }
func (Binary) Shape() Shape        { return ShapeBinary }
