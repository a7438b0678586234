package topdown

import (
	"fmt"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// TypeError is returned when an operator cannot coerce its operands: for
// example, arithmetic on a string that does not parse as numeric, or a
// non-array operand where an array is required and no reasonable fallback
// exists.
type TypeError struct {
	Op      ast.Op
	Operand int
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: operand %d: %s", ast.OpName(e.Op), e.Operand, e.Message)
}

func newTypeError(op ast.Op, operand int, format string, args ...interface{}) *TypeError {
	return &TypeError{Op: op, Operand: operand, Message: fmt.Sprintf(format, args...)}
}

// VarResolutionError is raised only by Accessor implementations when a
// variable name cannot be resolved. It is caught locally by the var
// operator (to substitute its default) and by missing/missing_some (to
// record the name as missing); it is never surfaced to the top-level
// caller by those operators. Any other error returned by an Accessor is
// fatal and propagates out of Apply.
type VarResolutionError struct {
	Name string
}

func (e *VarResolutionError) Error() string {
	return fmt.Sprintf("variable not resolved: %s", e.Name)
}

// NewVarResolutionError constructs the error an Accessor should return when
// it cannot resolve name.
func NewVarResolutionError(name string) error {
	return &VarResolutionError{Name: name}
}

// errWidthMismatch is an unexported sentinel that lets the signed/unsigned
// width-retry in promotePair be expressed as ordinary control flow instead
// of a panic. The exported kernels (Add, Sub, Mul, Div, Relate) can return
// it; Eval reports it only inside a TypeError message.
type errWidthMismatch struct{}

func (errWidthMismatch) Error() string { return "integer width mismatch" }

// unsupportedError represents a programming error: an expression node
// carrying an Op the evaluator has no case for. This should be unreachable
// for any Expr produced by ast.Build, but it is a fatal, escaping error if
// it ever happens.
type unsupportedError struct {
	Op ast.Op
}

func (e unsupportedError) Error() string {
	return fmt.Sprintf("unsupported operator: %s", ast.OpName(e.Op))
}
