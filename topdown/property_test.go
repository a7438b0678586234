package topdown

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// invariant 5: an array is always <= and >= itself under lexicographic
// array comparison, and never < or > itself.
func TestPropertyArraySelfComparison(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("an array always compares equal-or-related to itself", prop.ForAll(
		func(ints []int64) bool {
			elems := make([]ast.Value, len(ints))
			for i, n := range ints {
				elems[i] = ast.Int64(n)
			}
			a := ast.Arr(elems)

			lte, err := Relate(ast.OpLte, a, a)
			if err != nil || !lte {
				return false
			}
			gte, err := Relate(ast.OpGte, a, a)
			if err != nil || !gte {
				return false
			}
			lt, err := Relate(ast.OpLt, a, a)
			if err != nil || lt {
				return false
			}
			gt, err := Relate(ast.OpGt, a, a)
			if err != nil || gt {
				return false
			}
			return true
		},
		gen.SliceOfN(5, gen.Int64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}

// invariant 6: truthy(v) == !falsy(v) for every non-absent value this
// evaluator can produce; Truthy is the sole predicate, so this restates it
// as: Truthy never disagrees with itself, and a value's Kind fully
// determines the result (no hidden state).
func TestPropertyTruthyIsTotalAndDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Truthy is deterministic for every constructible value", prop.ForAll(
		func(kind int, i int64, s string, b bool) bool {
			v := valueOfKind(kind, i, s, b)
			first := Truthy(v)
			second := Truthy(v)
			return first == second
		},
		gen.IntRange(0, 6),
		gen.Int64(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.Property("Truthy(v) agrees with the falsy-set definition", prop.ForAll(
		func(kind int, i int64, s string, b bool) bool {
			v := valueOfKind(kind, i, s, b)
			falsy := v.IsNullOrAbsent() ||
				(v.Kind() == ast.KindBool && !v.Bool()) ||
				(v.Kind() == ast.KindI64 && v.Int64() == 0) ||
				(v.Kind() == ast.KindString && v.Str() == "") ||
				(v.Kind() == ast.KindArray && len(v.Arr()) == 0)
			return Truthy(v) == !falsy
		},
		gen.IntRange(0, 6),
		gen.Int64(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func valueOfKind(kind int, i int64, s string, b bool) ast.Value {
	switch kind % 7 {
	case 0:
		return ast.Null()
	case 1:
		return ast.Absent()
	case 2:
		return ast.Bool(b)
	case 3:
		return ast.Int64(i)
	case 4:
		return ast.Str(s)
	case 5:
		return ast.Arr(nil)
	default:
		return ast.Arr([]ast.Value{ast.Int64(i)})
	}
}

// invariant 7: substr's result length is max(0, min(cnt', n - ofs')), where
// n is the source length and ofs'/cnt' are the offset and length after the
// two-step negative clamp; the result is a contiguous piece of the source.
func TestPropertySubstrLengthFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("clampSubstr's result length follows the clamp formula", prop.ForAll(
		func(s string, ofs, cnt int64) bool {
			n := int64(len(s))
			i := ofs
			if ofs < 0 {
				i = max(n+ofs, 0)
			}
			j := cnt
			if cnt < 0 {
				j = max(n-i+cnt, 0)
			}
			return int64(len(clampSubstr(s, ofs, cnt))) == max(0, min(j, n-i))
		},
		gen.AlphaString(),
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
	))

	properties.Property("clampSubstr always returns a contiguous substring of its input", prop.ForAll(
		func(s string, ofs, cnt int64) bool {
			got := clampSubstr(s, ofs, cnt)
			return len(got) <= len(s) && strings.Contains(s, got)
		},
		gen.AlphaString(),
		gen.Int64Range(-100, 100),
		gen.Int64Range(-100, 100),
	))

	properties.Property("clampSubstr never panics regardless of offset/length", prop.ForAll(
		func(s string, ofs, cnt int64) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("clampSubstr(%q, %d, %d) panicked: %v", s, ofs, cnt, r)
				}
			}()
			clampSubstr(s, ofs, cnt)
			return true
		},
		gen.AlphaString(),
		gen.Int64Range(-1000, 1000),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

// LooseEqual is symmetric for every pair this evaluator can construct.
func TestPropertyLooseEqualIsSymmetric(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("LooseEqual(a,b) == LooseEqual(b,a)", prop.ForAll(
		func(ka, kb int, ia, ib int64, sa, sb string, ba, bb bool) bool {
			a := valueOfKind(ka, ia, sa, ba)
			b := valueOfKind(kb, ib, sb, bb)
			return LooseEqual(a, b) == LooseEqual(b, a)
		},
		gen.IntRange(0, 6), gen.IntRange(0, 6),
		gen.Int64(), gen.Int64(),
		gen.AlphaString(), gen.AlphaString(),
		gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
