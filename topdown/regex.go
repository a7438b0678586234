package topdown

import (
	"regexp"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// evalRegex implements the optional regex(pattern, subject) extension,
// only reachable when the rule was built with BuildOptions.Extensions set.
// Pattern semantics are Go's regexp package (RE2), not ECMA-262: the
// engines this evaluator draws on offer no ECMA-262-compatible engine, so
// this is a deliberate, documented substitution rather than a faithful
// port of the reference's host-regex behavior.
func (e *Evaluator) evalRegex(expr *ast.Expr) (ast.Value, error) {
	if !e.Extensions {
		return ast.Value{}, unsupportedError{Op: expr.Op}
	}
	if len(expr.Operands) < 2 {
		return ast.Value{}, newTypeError(expr.Op, 0, "regex requires (pattern, subject)")
	}
	patternV, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	subjectV, err := e.Eval(expr.Operand(1))
	if err != nil {
		return ast.Value{}, err
	}
	pattern := ToString(e.Interner, patternV).Str()
	subject := ToString(e.Interner, subjectV).Str()
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ast.Value{}, newTypeError(expr.Op, 0, "invalid pattern: %v", err)
	}
	return ast.Bool(re.MatchString(subject)), nil
}
