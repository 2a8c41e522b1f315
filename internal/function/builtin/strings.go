package builtin

import (
	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
)

// StringOp names a single-argument string function.
type StringOp string

const (
	OpASCII       StringOp = "ASCII"
	OpBitLength   StringOp = "BIT_LENGTH"
	OpChar        StringOp = "CHAR"
	OpCharLength  StringOp = "CHAR_LENGTH"
	OpLCase       StringOp = "LCASE"
	OpLength      StringOp = "LENGTH"
	OpLTrim       StringOp = "LTRIM"
	OpOctetLength StringOp = "OCTET_LENGTH"
	OpRTrim       StringOp = "RTRIM"
	OpSpace       StringOp = "SPACE"
	OpUCase       StringOp = "UCASE"
)

// BinaryStringOp names a two-argument string function.
type BinaryStringOp string

const (
	OpConcat BinaryStringOp = "CONCAT"
	OpLeft   BinaryStringOp = "LEFT"
	OpRepeat BinaryStringOp = "REPEAT"
	OpRight  BinaryStringOp = "RIGHT"
)

// StringFunc applies a single-argument string function.
type StringFunc struct {
	Loc   expr.Location
	Op    StringOp
	Field expr.Expression
}

// BinaryString applies a two-argument string function.
type BinaryString struct {
	Loc   expr.Location
	Op    BinaryStringOp
	Left  expr.Expression
	Right expr.Expression
}

func (s *StringFunc) Location() expr.Location   { return s.Loc }
func (s *BinaryString) Location() expr.Location { return s.Loc }

func (s *StringFunc) Children() []expr.Expression   { return []expr.Expression{s.Field} }
func (s *BinaryString) Children() []expr.Expression { return []expr.Expression{s.Left, s.Right} }

func (s *StringFunc) FunctionName() string   { return string(s.Op) }
func (s *BinaryString) FunctionName() string { return string(s.Op) }

func (s *StringFunc) String() string   { return expr.FormatCall(string(s.Op), s.Field) }
func (s *BinaryString) String() string { return expr.FormatCall(string(s.Op), s.Left, s.Right) }

func stringFunc(op StringOp) function.Unary {
	return func(loc expr.Location, field expr.Expression) expr.Function {
		return &StringFunc{Loc: loc, Op: op, Field: field}
	}
}

func binaryString(op BinaryStringOp) function.Binary {
	return func(loc expr.Location, left, right expr.Expression) expr.Function {
		return &BinaryString{Loc: loc, Op: op, Left: left, Right: right}
	}
}

func stringFunctions() []*function.Definition {
	return []*function.Definition{
		function.Def("ASCII", stringFunc(OpASCII)),
		function.Def("BIT_LENGTH", stringFunc(OpBitLength)),
		function.Def("CHAR", stringFunc(OpChar), "CHR"),
		function.Def("CHAR_LENGTH", stringFunc(OpCharLength), "CHARACTER_LENGTH"),
		function.Def("LCASE", stringFunc(OpLCase), "LOWER"),
		function.Def("LENGTH", stringFunc(OpLength)),
		function.Def("LTRIM", stringFunc(OpLTrim)),
		function.Def("OCTET_LENGTH", stringFunc(OpOctetLength)),
		function.Def("RTRIM", stringFunc(OpRTrim)),
		function.Def("SPACE", stringFunc(OpSpace)),
		function.Def("UCASE", stringFunc(OpUCase), "UPPER"),

		function.Def("CONCAT", binaryString(OpConcat)),
		function.Def("LEFT", binaryString(OpLeft)),
		function.Def("REPEAT", binaryString(OpRepeat)),
		function.Def("RIGHT", binaryString(OpRight)),
	}
}
