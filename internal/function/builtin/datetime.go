package builtin

import (
	"time"

	"github.com/atlekbai/function_registry/internal/expr"
	"github.com/atlekbai/function_registry/internal/function"
)

// DateTimeField names the part a datetime function extracts.
type DateTimeField string

const (
	DayOfMonth     DateTimeField = "DAY_OF_MONTH"
	DayOfWeek      DateTimeField = "DAY_OF_WEEK"
	DayOfYear      DateTimeField = "DAY_OF_YEAR"
	HourOfDay      DateTimeField = "HOUR_OF_DAY"
	MinuteOfDay    DateTimeField = "MINUTE_OF_DAY"
	MinuteOfHour   DateTimeField = "MINUTE_OF_HOUR"
	MonthOfYear    DateTimeField = "MONTH_OF_YEAR"
	SecondOfMinute DateTimeField = "SECOND_OF_MINUTE"
	WeekOfYear     DateTimeField = "WEEK_OF_YEAR"
	Year           DateTimeField = "YEAR"
	Quarter        DateTimeField = "QUARTER"
)

// DateTimeExtract extracts a field from a timestamp, evaluated in Zone.
type DateTimeExtract struct {
	Loc   expr.Location
	Field DateTimeField
	Arg   expr.Expression
	Zone  *time.Location
}

func (d *DateTimeExtract) Location() expr.Location     { return d.Loc }
func (d *DateTimeExtract) Children() []expr.Expression { return []expr.Expression{d.Arg} }
func (d *DateTimeExtract) FunctionName() string        { return string(d.Field) }
func (d *DateTimeExtract) String() string              { return expr.FormatCall(string(d.Field), d.Arg) }

func extract(field DateTimeField) function.UnaryDatetime {
	return func(loc expr.Location, arg expr.Expression, zone *time.Location) expr.Function {
		return &DateTimeExtract{Loc: loc, Field: field, Arg: arg, Zone: zone}
	}
}

func dateTimeFunctions() []*function.Definition {
	return []*function.Definition{
		function.Def("DAY_OF_MONTH", extract(DayOfMonth), "DAYOFMONTH", "DAY", "DOM"),
		function.Def("DAY_OF_WEEK", extract(DayOfWeek), "DAYOFWEEK", "DOW"),
		function.Def("DAY_OF_YEAR", extract(DayOfYear), "DAYOFYEAR", "DOY"),
		function.Def("HOUR_OF_DAY", extract(HourOfDay), "HOUR"),
		function.Def("MINUTE_OF_DAY", extract(MinuteOfDay)),
		function.Def("MINUTE_OF_HOUR", extract(MinuteOfHour), "MINUTE"),
		function.Def("MONTH_OF_YEAR", extract(MonthOfYear), "MONTH"),
		function.Def("SECOND_OF_MINUTE", extract(SecondOfMinute), "SECOND"),
		function.Def("WEEK_OF_YEAR", extract(WeekOfYear), "WEEK"),
		function.Def("YEAR", extract(Year)),
		function.Def("QUARTER", extract(Quarter)),
	}
}
