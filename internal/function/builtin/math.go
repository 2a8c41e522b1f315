package builtin

import (
	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
)

// MathOp names a single-argument math function.
type MathOp string

const (
	OpAbs     MathOp = "ABS"
	OpAcos    MathOp = "ACOS"
	OpAsin    MathOp = "ASIN"
	OpAtan    MathOp = "ATAN"
	OpCbrt    MathOp = "CBRT"
	OpCeil    MathOp = "CEIL"
	OpCos     MathOp = "COS"
	OpCosh    MathOp = "COSH"
	OpCot     MathOp = "COT"
	OpDegrees MathOp = "DEGREES"
	OpExp     MathOp = "EXP"
	OpExpm1   MathOp = "EXPM1"
	OpFloor   MathOp = "FLOOR"
	OpLog     MathOp = "LOG"
	OpLog10   MathOp = "LOG10"
	OpRadians MathOp = "RADIANS"
	OpSign    MathOp = "SIGN"
	OpSin     MathOp = "SIN"
	OpSinh    MathOp = "SINH"
	OpSqrt    MathOp = "SQRT"
	OpTan     MathOp = "TAN"
)

// BinaryMathOp names a two-argument math function.
type BinaryMathOp string

const (
	OpAtan2    BinaryMathOp = "ATAN2"
	OpPower    BinaryMathOp = "POWER"
	OpRound    BinaryMathOp = "ROUND"
	OpTruncate BinaryMathOp = "TRUNCATE"
)

// ConstantOp names a zero-argument math constant.
type ConstantOp string

const (
	OpPi ConstantOp = "PI"
	OpE  ConstantOp = "E"
)

// Math applies a single-argument math function.
type Math struct {
	Loc   expr.Location
	Op    MathOp
	Field expr.Expression
}

// BinaryMath applies a two-argument math function.
type BinaryMath struct {
	Loc   expr.Location
	Op    BinaryMathOp
	Left  expr.Expression
	Right expr.Expression
}

// Constant is PI() or E().
type Constant struct {
	Loc expr.Location
	Op  ConstantOp
}

func (m *Math) Location() expr.Location       { return m.Loc }
func (m *BinaryMath) Location() expr.Location { return m.Loc }
func (c *Constant) Location() expr.Location   { return c.Loc }

func (m *Math) Children() []expr.Expression       { return []expr.Expression{m.Field} }
func (m *BinaryMath) Children() []expr.Expression { return []expr.Expression{m.Left, m.Right} }
func (*Constant) Children() []expr.Expression     { return nil }

func (m *Math) FunctionName() string       { return string(m.Op) }
func (m *BinaryMath) FunctionName() string { return string(m.Op) }
func (c *Constant) FunctionName() string   { return string(c.Op) }

func (m *Math) String() string       { return expr.FormatCall(string(m.Op), m.Field) }
func (m *BinaryMath) String() string { return expr.FormatCall(string(m.Op), m.Left, m.Right) }
func (c *Constant) String() string   { return expr.FormatCall(string(c.Op)) }

func mathFunc(op MathOp) function.Unary {
	return func(loc expr.Location, field expr.Expression) expr.Function {
		return &Math{Loc: loc, Op: op, Field: field}
	}
}

func binaryMath(op BinaryMathOp) function.Binary {
	return func(loc expr.Location, left, right expr.Expression) expr.Function {
		return &BinaryMath{Loc: loc, Op: op, Left: left, Right: right}
	}
}

func constant(op ConstantOp) function.NoArg {
	return func(loc expr.Location) expr.Function {
		return &Constant{Loc: loc, Op: op}
	}
}

func mathFunctions() []*function.Definition {
	return []*function.Definition{
		function.Def("ABS", mathFunc(OpAbs)),
		function.Def("ACOS", mathFunc(OpAcos)),
		function.Def("ASIN", mathFunc(OpAsin)),
		function.Def("ATAN", mathFunc(OpAtan)),
		function.Def("CBRT", mathFunc(OpCbrt)),
		function.Def("CEIL", mathFunc(OpCeil), "CEILING"),
		function.Def("COS", mathFunc(OpCos)),
		function.Def("COSH", mathFunc(OpCosh)),
		function.Def("COT", mathFunc(OpCot)),
		function.Def("DEGREES", mathFunc(OpDegrees)),
		function.Def("EXP", mathFunc(OpExp)),
		function.Def("EXPM1", mathFunc(OpExpm1)),
		function.Def("FLOOR", mathFunc(OpFloor)),
		function.Def("LOG", mathFunc(OpLog), "LN"),
		function.Def("LOG10", mathFunc(OpLog10)),
		function.Def("RADIANS", mathFunc(OpRadians)),
		function.Def("SIGN", mathFunc(OpSign), "SIGNUM"),
		function.Def("SIN", mathFunc(OpSin)),
		function.Def("SINH", mathFunc(OpSinh)),
		function.Def("SQRT", mathFunc(OpSqrt)),
		function.Def("TAN", mathFunc(OpTan)),

		function.Def("ATAN2", binaryMath(OpAtan2)),
		function.Def("POWER", binaryMath(OpPower), "POW"),
		function.Def("ROUND", binaryMath(OpRound)),
		function.Def("TRUNCATE", binaryMath(OpTruncate)),

		function.Def("PI", constant(OpPi)),
		function.Def("E", constant(OpE)),
	}
}
