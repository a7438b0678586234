package topdown

import (
	"strings"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// StrictEqual implements ===: the two values must carry the same Kind and
// the same payload. Arrays are never strictly equal, even to themselves,
// since Value tracks no identity beyond its payload.
func StrictEqual(a, b ast.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case ast.KindAbsent, ast.KindNull:
		return true
	case ast.KindBool:
		return a.Bool() == b.Bool()
	case ast.KindI64:
		return a.Int64() == b.Int64()
	case ast.KindU64:
		return a.Uint64() == b.Uint64()
	case ast.KindF64:
		return a.Float64() == b.Float64()
	case ast.KindString:
		return a.Str() == b.Str()
	default:
		return false
	}
}

// LooseEqual implements ==: numeric promotion across numbers, strings, and
// bools, plus the scalar-vs-array unpacking rules. Two arrays are never
// loosely equal; Value carries no identity to compare them by.
func LooseEqual(a, b ast.Value) bool {
	if a.Kind() == ast.KindArray && b.Kind() == ast.KindArray {
		return false
	}
	if a.Kind() == ast.KindArray {
		return looseEqualArrayScalar(a, b)
	}
	if b.Kind() == ast.KindArray {
		return looseEqualArrayScalar(b, a)
	}
	return looseEqualScalars(a, b)
}

// looseEqualArrayScalar handles == when exactly one side is an array: an
// empty array compares as the scalar's truthiness being false, a
// single-element array unpacks and compares its element against the
// scalar, and anything longer is never equal.
func looseEqualArrayScalar(arr, scalar ast.Value) bool {
	switch len(arr.Arr()) {
	case 0:
		return !Truthy(scalar)
	case 1:
		return looseEqualScalars(arr.Arr()[0], scalar)
	default:
		return false
	}
}

func looseEqualScalars(a, b ast.Value) bool {
	if a.IsNull() || a.IsAbsent() || b.IsNull() || b.IsAbsent() {
		return a.IsNullOrAbsent() && b.IsNullOrAbsent()
	}
	if a.Kind() == ast.KindString && b.Kind() == ast.KindBool {
		return false
	}
	if a.Kind() == ast.KindBool && b.Kind() == ast.KindString {
		return false
	}
	if a.Kind() == ast.KindString && b.Kind() == ast.KindString {
		return a.Str() == b.Str()
	}
	kind, ai, bi, au, bu, af, bf, err := promotePair(a, b)
	if err != nil {
		return false
	}
	switch kind {
	case numI64:
		return ai == bi
	case numU64:
		return au == bu
	default:
		return af == bf
	}
}

// Relate implements the four relational operators. Both operands arrays
// dispatches to lexicographic array comparison; anything else compares as
// scalars, coercing strings and bools through the same numeric promotion
// arithmetic uses. A scalar other than null compared against an array
// returns an error (the evaluator reports it as a TypeError), since only
// equality defines an unpacking rule for that mix; null against an array
// compares false.
func Relate(op ast.Op, a, b ast.Value) (bool, error) {
	if a.Kind() == ast.KindArray && b.Kind() == ast.KindArray {
		return compareArrays(op, a.Arr(), b.Arr())
	}
	return scalarRelate(op, a, b)
}

func compareArrays(op ast.Op, a, b []ast.Value) (bool, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		forward, err := Relate(op, a[i], b[i])
		if err != nil {
			return false, err
		}
		backward, err := Relate(op, b[i], a[i])
		if err != nil {
			return false, err
		}
		if forward != backward {
			return forward, nil
		}
	}
	return orderedResult(op, cmpInt(len(a), len(b))), nil
}

// nullRelate resolves a relational comparison where at least one operand is
// null, mirroring operator_impl<less_or_equal>/operator_impl<greater_or_equal>:
// null against null is reflexive (true for <=/>=, false for </>), and null
// against a string holds under <=/>= exactly when the string is empty.
// < and > are never true against null.
func nullRelate(op ast.Op, a, b ast.Value) bool {
	if op != ast.OpLte && op != ast.OpGte {
		return false
	}
	if a.IsNull() && b.IsNull() {
		return true
	}
	if a.IsNull() && b.Kind() == ast.KindString {
		return b.Str() == ""
	}
	if b.IsNull() && a.Kind() == ast.KindString {
		return a.Str() == ""
	}
	return false
}

func scalarRelate(op ast.Op, a, b ast.Value) (bool, error) {
	if a.IsNull() || b.IsNull() {
		return nullRelate(op, a, b), nil
	}
	if a.Kind() == ast.KindString && b.Kind() == ast.KindString {
		return orderedResult(op, strings.Compare(a.Str(), b.Str())), nil
	}
	kind, ai, bi, au, bu, af, bf, err := promotePair(a, b)
	if err != nil {
		return false, err
	}
	switch kind {
	case numI64:
		return orderedResult(op, cmpInt64(ai, bi)), nil
	case numU64:
		return orderedResult(op, cmpUint64(au, bu)), nil
	default:
		return orderedResult(op, cmpFloat64(af, bf)), nil
	}
}

func orderedResult(op ast.Op, cmp int) bool {
	switch op {
	case ast.OpLt:
		return cmp < 0
	case ast.OpLte:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGte:
		return cmp >= 0
	default:
		return false
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
