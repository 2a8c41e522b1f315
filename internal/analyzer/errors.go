package analyzer

import (
	"fmt"
	"strings"

	"github.com/atlekbai/function_registry/internal/expr"
)

// Failure is a single problem found while verifying an expression.
type Failure struct {
	Loc     expr.Location
	Message string
}

func (f Failure) String() string {
	return f.Loc.String() + ": " + f.Message
}

// VerificationError collects every problem found in an expression.
type VerificationError struct {
	Failures []Failure
}

func (e *VerificationError) Error() string {
	var b strings.Builder
	if len(e.Failures) == 1 {
		b.WriteString("Found 1 problem")
	} else {
		fmt.Fprintf(&b, "Found %d problems", len(e.Failures))
	}
	for _, f := range e.Failures {
		b.WriteString("\n")
		b.WriteString(f.String())
	}
	return b.String()
}

type failures []Failure

func (fs *failures) add(loc expr.Location, format string, args ...any) {
	*fs = append(*fs, Failure{Loc: loc, Message: fmt.Sprintf(format, args...)})
}

func (fs failures) err() error {
	if len(fs) == 0 {
		return nil
	}
	return &VerificationError{Failures: fs}
}
