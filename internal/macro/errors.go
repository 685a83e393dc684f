package macro

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrCompute matches every *ComputeError.
	ErrCompute = errors.New("compute failed")
	// ErrInvalidExpansion matches every *InvalidExpansionError.
	ErrInvalidExpansion = errors.New("invalid expansion")
	// ErrUnbalancedBraces is returned when a brace group is never closed.
	ErrUnbalancedBraces = errors.New("missing closing }")
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("syntax error")
)

// ComputeError wraps a failure of the arithmetic evaluator.
type ComputeError struct {
	Expr string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("failed to compute `%s': %v", e.Expr, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

func (e *ComputeError) Is(target error) bool { return target == ErrCompute }

// InvalidExpansionError reports an indirection whose target does not exist.
// Location is the indirection in its written form, e.g. `@@[3]`.
type InvalidExpansionError struct {
	Location string
}

func (e *InvalidExpansionError) Error() string {
	return fmt.Sprintf("the expansion `%s' does not exist", e.Location)
}

func (e *InvalidExpansionError) Is(target error) bool { return target == ErrInvalidExpansion }

// SyntaxError reports malformed macro text.
type SyntaxError struct {
	Pos     hcl.Pos
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
