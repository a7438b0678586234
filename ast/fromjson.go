package ast

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValueFromJSON converts an already-decoded JSON value (as produced by
// encoding/json.Unmarshal into interface{}, optionally with UseNumber) into
// a Value. It is used by accessors to turn a data document's leaf into the
// runtime value model. JSON objects have no representation in Value; they
// convert to Absent, which missing/missing_some count as a missing name;
// var returns such an Absent as is and does not substitute its default.
func ValueFromJSON(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case string:
		return Str(x)
	case json.Number:
		return numberFromString(string(x))
	case float64:
		return numberFromFloat64(x)
	case float32:
		return numberFromFloat64(float64(x))
	case int:
		return Int64(int64(x))
	case int64:
		return Int64(x)
	case uint64:
		return Uint64(x)
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = ValueFromJSON(e)
		}
		return Arr(elems)
	default:
		return Absent()
	}
}

func numberFromString(s string) Value {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int64(i)
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Uint64(u)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null()
	}
	return Float64(f)
}

func numberFromFloat64(x float64) Value {
	const maxSafeInt = 1 << 53
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		if x >= -maxSafeInt && x <= maxSafeInt {
			return Int64(int64(x))
		}
		if x > 0 && x <= float64(math.MaxUint64) {
			return Uint64(uint64(x))
		}
	}
	return Float64(x)
}
