package service

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// MaxBatchSize caps the number of expressions in one AnalyzeBatch call.
const MaxBatchSize = 256

type AnalyzeRequest struct {
	Expression string `json:"expression"`
	Table      string `json:"table,omitempty"`
	TimeZone   string `json:"time_zone,omitempty"`
}

func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Expression) == "" {
		return errors.New("expression is required")
	}
	return validateZone(r.TimeZone)
}

// Call is a resolved function reference within an analyzed expression.
type Call struct {
	Name   string `json:"name"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type AnalyzeResponse struct {
	Resolved  string `json:"resolved"`
	Functions []Call `json:"functions"`
	SQL       string `json:"sql"`
	Args      []any  `json:"args,omitempty"`
}

type AnalyzeBatchRequest struct {
	Expressions []string `json:"expressions"`
	Table       string   `json:"table,omitempty"`
	TimeZone    string   `json:"time_zone,omitempty"`
}

func (r *AnalyzeBatchRequest) Validate() error {
	switch {
	case len(r.Expressions) == 0:
		return errors.New("expressions are required")
	case len(r.Expressions) > MaxBatchSize:
		return errors.Newf("at most %d expressions per batch, got %d", MaxBatchSize, len(r.Expressions))
	}
	return validateZone(r.TimeZone)
}

// BatchResult is the outcome for one expression of a batch. Error is set
// instead of the analysis fields when the expression was rejected.
type BatchResult struct {
	Expression string `json:"expression"`
	*AnalyzeResponse
	Error string `json:"error,omitempty"`
}

type AnalyzeBatchResponse struct {
	Results []BatchResult `json:"results"`
}

type ListFunctionsRequest struct {
	Pattern string `json:"pattern,omitempty"`
}

type FunctionInfo struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Shape   string   `json:"shape"`
	Aliases []string `json:"aliases,omitempty"`
}

type ListFunctionsResponse struct {
	Functions []FunctionInfo `json:"functions"`
}

type EvaluateRequest struct {
	Expression string `json:"expression"`
	Table      string `json:"table,omitempty"`
	TimeZone   string `json:"time_zone,omitempty"`
}

func (r *EvaluateRequest) Validate() error {
	if strings.TrimSpace(r.Expression) == "" {
		return errors.New("expression is required")
	}
	return validateZone(r.TimeZone)
}

type EvaluateResponse struct {
	SQL    string `json:"sql"`
	Args   []any  `json:"args,omitempty"`
	Values []any  `json:"values"`
}

func validateZone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return errors.Wrapf(err, "time_zone %q", name)
	}
	return nil
}
