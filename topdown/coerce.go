package topdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// ToI64 coerces v to a signed 64-bit integer: i64 is the identity, u64 must
// fit below math.MaxInt64, f64 truncates toward zero, bool becomes 0 or 1,
// null becomes 0, and a string is parsed as a number and then coerced
// recursively. Any other kind, or a string that does not parse, is a
// TypeError-worthy failure left for the caller to wrap with operator context.
func ToI64(v ast.Value) (int64, error) {
	switch v.Kind() {
	case ast.KindI64:
		return v.Int64(), nil
	case ast.KindU64:
		if v.Uint64() > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows i64", v.Uint64())
		}
		return int64(v.Uint64()), nil
	case ast.KindF64:
		return int64(v.Float64()), nil
	case ast.KindBool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case ast.KindNull:
		return 0, nil
	case ast.KindString:
		n, err := parseNumericString(v.Str())
		if err != nil {
			return 0, err
		}
		return ToI64(n)
	default:
		return 0, fmt.Errorf("cannot coerce %s to a number", v.Kind())
	}
}

// ToU64 is the unsigned mirror of ToI64: an i64 must be non-negative, and a
// negative f64 fails rather than wrapping.
func ToU64(v ast.Value) (uint64, error) {
	switch v.Kind() {
	case ast.KindU64:
		return v.Uint64(), nil
	case ast.KindI64:
		if v.Int64() < 0 {
			return 0, fmt.Errorf("%d overflows u64", v.Int64())
		}
		return uint64(v.Int64()), nil
	case ast.KindF64:
		if v.Float64() < 0 {
			return 0, fmt.Errorf("%v overflows u64", v.Float64())
		}
		return uint64(v.Float64()), nil
	case ast.KindBool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case ast.KindNull:
		return 0, nil
	case ast.KindString:
		n, err := parseNumericString(v.Str())
		if err != nil {
			return 0, err
		}
		return ToU64(n)
	default:
		return 0, fmt.Errorf("cannot coerce %s to a number", v.Kind())
	}
}

// ToF64 coerces v to a double. Every numeric kind and bool always succeeds;
// null becomes 0; a string is parsed; anything else fails.
func ToF64(v ast.Value) (float64, error) {
	switch v.Kind() {
	case ast.KindF64:
		return v.Float64(), nil
	case ast.KindI64:
		return float64(v.Int64()), nil
	case ast.KindU64:
		return float64(v.Uint64()), nil
	case ast.KindBool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case ast.KindNull:
		return 0, nil
	case ast.KindString:
		n, err := parseNumericString(v.Str())
		if err != nil {
			return 0, err
		}
		return ToF64(n)
	default:
		return 0, fmt.Errorf("cannot coerce %s to a number", v.Kind())
	}
}

// toNumeric coerces v to whichever of i64/u64/f64 represents it, without
// picking a target width up front. It is the shared entry point used by
// arithmetic and comparison before they promote a pair of operands to a
// common width. Arrays and absent are never numeric.
func toNumeric(v ast.Value) (ast.Value, error) {
	switch v.Kind() {
	case ast.KindI64, ast.KindU64, ast.KindF64:
		return v, nil
	case ast.KindBool:
		if v.Bool() {
			return ast.Int64(1), nil
		}
		return ast.Int64(0), nil
	case ast.KindNull:
		return ast.Int64(0), nil
	case ast.KindString:
		return parseNumericString(v.Str())
	default:
		return ast.Value{}, fmt.Errorf("cannot coerce %s to a number", v.Kind())
	}
}

// parseNumericString parses s the way a JSON number literal would: integral
// text without a fraction or exponent tries i64 then u64, everything else
// falls back to float64. An empty or non-numeric string is an error.
func parseNumericString(s string) (ast.Value, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ast.Value{}, fmt.Errorf("empty string is not a number")
	}
	if !strings.ContainsAny(trimmed, ".eE") {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return ast.Int64(i), nil
		}
		if u, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
			return ast.Uint64(u), nil
		}
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return ast.Value{}, fmt.Errorf("%q is not a number", s)
	}
	return ast.Float64(f), nil
}

// numKind names the common width two numeric operands were promoted to.
type numKind int

const (
	numI64 numKind = iota
	numU64
	numF64
)

// promotePair coerces a and b to numbers and then to a shared integer width,
// promoting to f64 if either already is one. When the two operands are i64
// and u64 respectively, it retries across the signed/unsigned boundary
// exactly once in each direction before giving up, resolving a width
// mismatch by trying the other width before it is treated as a range error.
func promotePair(a, b ast.Value) (kind numKind, ai, bi int64, au, bu uint64, af, bf float64, err error) {
	na, err := toNumeric(a)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, 0, err
	}
	nb, err := toNumeric(b)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, 0, err
	}
	if na.Kind() == ast.KindF64 || nb.Kind() == ast.KindF64 {
		fa, ferr := ToF64(na)
		if ferr != nil {
			return 0, 0, 0, 0, 0, 0, 0, ferr
		}
		fb, ferr := ToF64(nb)
		if ferr != nil {
			return 0, 0, 0, 0, 0, 0, 0, ferr
		}
		return numF64, 0, 0, 0, 0, fa, fb, nil
	}
	if na.Kind() == ast.KindI64 && nb.Kind() == ast.KindI64 {
		return numI64, na.Int64(), nb.Int64(), 0, 0, 0, 0, nil
	}
	if na.Kind() == ast.KindU64 && nb.Kind() == ast.KindU64 {
		return numU64, 0, 0, na.Uint64(), nb.Uint64(), 0, 0, nil
	}
	// mixed i64/u64: try i64 first, then u64.
	if ia, ierr := ToI64(na); ierr == nil {
		if ib, ierr := ToI64(nb); ierr == nil {
			return numI64, ia, ib, 0, 0, 0, 0, nil
		}
	}
	if ua, uerr := ToU64(na); uerr == nil {
		if ub, uerr := ToU64(nb); uerr == nil {
			return numU64, 0, 0, ua, ub, 0, 0, nil
		}
	}
	return 0, 0, 0, 0, 0, 0, 0, errWidthMismatch{}
}

// ToString coerces v to its canonical string form, interning the result: an
// identity for strings, and otherwise the same canonical decimal rendering
// Value.String uses for null, bool, and the numeric kinds.
func ToString(in *ast.Interner, v ast.Value) ast.Value {
	if v.Kind() == ast.KindString {
		return v
	}
	return ast.Str(in.Intern(v.String()))
}

// Truthy implements weak-typed truthiness: false, 0, "", null, absent, and
// the empty array are falsy; everything else, including non-empty strings
// and non-empty arrays, is truthy.
func Truthy(v ast.Value) bool {
	switch v.Kind() {
	case ast.KindBool:
		return v.Bool()
	case ast.KindI64:
		return v.Int64() != 0
	case ast.KindU64:
		return v.Uint64() != 0
	case ast.KindF64:
		return v.Float64() != 0
	case ast.KindString:
		return v.Str() != ""
	case ast.KindArray:
		return len(v.Arr()) != 0
	case ast.KindNull, ast.KindAbsent:
		return false
	default:
		return false
	}
}
