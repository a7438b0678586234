package topdown

import (
	"strings"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

func (e *Evaluator) evalSubstr(expr *ast.Expr) (ast.Value, error) {
	if len(expr.Operands) < 2 {
		return ast.Value{}, newTypeError(expr.Op, 0, "substr requires at least 2 operands")
	}
	sv, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	s := ToString(e.Interner, sv).Str()
	startV, err := e.Eval(expr.Operand(1))
	if err != nil {
		return ast.Value{}, err
	}
	ofs, err := ToI64(startV)
	if err != nil {
		return ast.Value{}, newTypeError(expr.Op, 1, "%v", err)
	}
	var cnt int64
	if len(expr.Operands) >= 3 {
		lenV, err := e.Eval(expr.Operand(2))
		if err != nil {
			return ast.Value{}, err
		}
		cnt, err = ToI64(lenV)
		if err != nil {
			return ast.Value{}, newTypeError(expr.Op, 2, "%v", err)
		}
	}
	return ast.Str(e.Interner.Intern(clampSubstr(s, ofs, cnt))), nil
}

// clampSubstr implements the two-step negative-offset/negative-length
// clamp: a negative start is measured back from the end of s, then a
// negative length shortens the remainder from its end. Both steps floor at
// zero, and the final range is clamped to s's bounds so an out-of-range
// request degrades to an empty or truncated result instead of panicking.
// Omitting the length operand entirely yields an empty result, matching
// the reference this evaluator is derived from.
func clampSubstr(s string, ofs, cnt int64) string {
	n := int64(len(s))
	if ofs < 0 {
		ofs = n + ofs
		if ofs < 0 {
			ofs = 0
		}
	}
	if cnt < 0 {
		cnt = n - ofs + cnt
		if cnt < 0 {
			cnt = 0
		}
	}
	if ofs > n {
		ofs = n
	}
	if ofs+cnt > n {
		cnt = n - ofs
	}
	if cnt < 0 {
		cnt = 0
	}
	return s[ofs : ofs+cnt]
}

func (e *Evaluator) evalIn(expr *ast.Expr) (ast.Value, error) {
	a, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	b, err := e.Eval(expr.Operand(1))
	if err != nil {
		return ast.Value{}, err
	}
	return ast.Bool(In(a, b)), nil
}

// In implements the overloaded in operator: elementwise strict equality
// against an array right operand, substring containment when both sides
// are strings, and false for any other combination.
func In(a, b ast.Value) bool {
	switch b.Kind() {
	case ast.KindArray:
		for _, elem := range b.Arr() {
			if StrictEqual(a, elem) {
				return true
			}
		}
		return false
	case ast.KindString:
		if a.Kind() != ast.KindString {
			return false
		}
		return strings.Contains(b.Str(), a.Str())
	default:
		return false
	}
}
