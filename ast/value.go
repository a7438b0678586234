// Package ast defines the runtime value model, the string interner, the
// expression tree, and the JSON-to-tree builder for JsonLogic rules.
package ast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the tagged variant carried by a Value.
type Kind int

// The complete set of Value variants. Kind order has no semantic meaning.
const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindI64
	KindU64
	KindF64
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is the tagged-union runtime value model: absent, null, bool, i64,
// u64, f64, string (a borrowed view into an Interner), or array (an owned,
// fully materialized sequence of Value).
//
// Value is a flat struct, not an interface hierarchy: evaluation never
// carries expression nodes as values and never clones nodes at runtime.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	a    []Value
}

// Absent returns the distinct "not supplied" marker value.
func Absent() Value { return Value{kind: KindAbsent} }

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int64 wraps a signed 64-bit integer.
func Int64(i int64) Value { return Value{kind: KindI64, i: i} }

// Uint64 wraps an unsigned 64-bit integer.
func Uint64(u uint64) Value { return Value{kind: KindU64, u: u} }

// Float64 wraps a double.
func Float64(f float64) Value { return Value{kind: KindF64, f: f} }

// Str wraps a string. Callers that intend the string to be shared across
// many Values should intern it first via Interner.Intern.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Arr wraps an owned, ordered sequence of Values.
func Arr(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// Kind reports the variant carried by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent marker.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNullOrAbsent reports whether v is null or absent, the condition used by
// the missing/missing_some operators to decide a name is "missing".
func (v Value) IsNullOrAbsent() bool { return v.kind == KindNull || v.kind == KindAbsent }

// Bool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int64 returns the i64 payload; only meaningful when Kind() == KindI64.
func (v Value) Int64() int64 { return v.i }

// Uint64 returns the u64 payload; only meaningful when Kind() == KindU64.
func (v Value) Uint64() uint64 { return v.u }

// Float64 returns the f64 payload; only meaningful when Kind() == KindF64.
func (v Value) Float64() float64 { return v.f }

// Str returns the string payload; only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Arr returns the array payload; only meaningful when Kind() == KindArray.
func (v Value) Arr() []Value { return v.a }

// IsNumeric reports whether v carries one of the three numeric variants.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindI64, KindU64, KindF64:
		return true
	default:
		return false
	}
}

// String renders v in a canonical textual form: null, true/false, decimal
// integers, JSON-style doubles, double-quoted strings, and comma-separated
// bracketed arrays with no spaces. Absent renders as "<absent>", a sentinel
// that never appears in
// the output of a successful evaluation.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindAbsent:
		sb.WriteString("<absent>")
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindI64:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindU64:
		sb.WriteString(strconv.FormatUint(v.u, 10))
	case KindF64:
		sb.WriteString(formatFloat(v.f))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.a {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	}
}

// ToInterface converts v to the plain Go value encoding/json would produce
// for it: nil, bool, int64/uint64/float64, string, or []interface{}. Absent
// converts to nil, the same as null, since it should never reach a
// successful evaluation's output.
func (v Value) ToInterface() interface{} {
	switch v.kind {
	case KindAbsent, KindNull:
		return nil
	case KindBool:
		return v.b
	case KindI64:
		return v.i
	case KindU64:
		return v.u
	case KindF64:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.a))
		for i, e := range v.a {
			out[i] = e.ToInterface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler via ToInterface.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToInterface())
}

// formatFloat renders a float64 the way encoding/json would, so textual
// comparison of evaluation output is stable across implementations.
func formatFloat(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	s := strconv.FormatFloat(f, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// strconv writes a single-digit exponent with a leading zero
		// (1e-07); encoding/json drops it (1e-7), so strip it here too.
		s = strings.Replace(s, "e+0", "e+", 1)
		s = strings.Replace(s, "e-0", "e-", 1)
	}
	return s
}
