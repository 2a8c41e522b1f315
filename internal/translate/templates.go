package translate

import "github.com/atlekbai/function_registry/internal/function/builtin"

var mathTemplates = map[builtin.MathOp]string{
	builtin.OpAbs:     "abs(?)",
	builtin.OpAcos:    "acos(?)",
	builtin.OpAsin:    "asin(?)",
	builtin.OpAtan:    "atan(?)",
	builtin.OpCbrt:    "cbrt(?)",
	builtin.OpCeil:    "ceil(?)",
	builtin.OpCos:     "cos(?)",
	builtin.OpCosh:    "cosh(?)",
	builtin.OpCot:     "cot(?)",
	builtin.OpDegrees: "degrees(?)",
	builtin.OpExp:     "exp(?)",
	builtin.OpExpm1:   "(exp(?) - 1)",
	builtin.OpFloor:   "floor(?)",
	builtin.OpLog:     "ln(?)",
	builtin.OpLog10:   "log(?)",
	builtin.OpRadians: "radians(?)",
	builtin.OpSign:    "sign(?)",
	builtin.OpSin:     "sin(?)",
	builtin.OpSinh:    "sinh(?)",
	builtin.OpSqrt:    "sqrt(?)",
	builtin.OpTan:     "tan(?)",
}

var binaryMathTemplates = map[builtin.BinaryMathOp]string{
	builtin.OpAtan2:    "atan2(?, ?)",
	builtin.OpPower:    "power(?, ?)",
	builtin.OpRound:    "round((?)::numeric, ?)",
	builtin.OpTruncate: "trunc((?)::numeric, ?)",
}

var constantTemplates = map[builtin.ConstantOp]string{
	builtin.OpPi: "pi()",
	builtin.OpE:  "exp(1)",
}

var stringTemplates = map[builtin.StringOp]string{
	builtin.OpASCII:       "ascii(?)",
	builtin.OpBitLength:   "bit_length(?)",
	builtin.OpChar:        "chr(?)",
	builtin.OpCharLength:  "char_length(?)",
	builtin.OpLCase:       "lower(?)",
	builtin.OpLength:      "length(rtrim(?))",
	builtin.OpLTrim:       "ltrim(?)",
	builtin.OpOctetLength: "octet_length(?)",
	builtin.OpRTrim:       "rtrim(?)",
	builtin.OpSpace:       "repeat(' ', ?)",
	builtin.OpUCase:       "upper(?)",
}

var binaryStringTemplates = map[builtin.BinaryStringOp]string{
	builtin.OpConcat: "concat(?, ?)",
	builtin.OpLeft:   "left(?, ?)",
	builtin.OpRepeat: "repeat(?, ?)",
	builtin.OpRight:  "right(?, ?)",
}

var aggregateNames = map[builtin.AggregateOp]string{
	builtin.OpCount:     "count",
	builtin.OpSum:       "sum",
	builtin.OpAvg:       "avg",
	builtin.OpMin:       "min",
	builtin.OpMax:       "max",
	builtin.OpStddevPop: "stddev_pop",
	builtin.OpVarPop:    "var_pop",
}

// Every `?` in an extract template receives the zone-shifted timestamp.
// DOW is shifted to 1 = Sunday.
var extractTemplates = map[builtin.DateTimeField]string{
	builtin.DayOfMonth:     "EXTRACT(DAY FROM ?)",
	builtin.DayOfWeek:      "(EXTRACT(DOW FROM ?) + 1)",
	builtin.DayOfYear:      "EXTRACT(DOY FROM ?)",
	builtin.HourOfDay:      "EXTRACT(HOUR FROM ?)",
	builtin.MinuteOfDay:    "(EXTRACT(HOUR FROM ?) * 60 + EXTRACT(MINUTE FROM ?))",
	builtin.MinuteOfHour:   "EXTRACT(MINUTE FROM ?)",
	builtin.MonthOfYear:    "EXTRACT(MONTH FROM ?)",
	builtin.SecondOfMinute: "floor(EXTRACT(SECOND FROM ?))",
	builtin.WeekOfYear:     "EXTRACT(WEEK FROM ?)",
	builtin.Year:           "EXTRACT(YEAR FROM ?)",
	builtin.Quarter:        "EXTRACT(QUARTER FROM ?)",
}
