package topdown

import (
	"testing"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

func TestChainedCompare(t *testing.T) {
	cases := []struct {
		name string
		ops  []interface{}
		want bool
	}{
		{"ascending", []interface{}{float64(1), float64(2), float64(3)}, true},
		{"descending fails", []interface{}{float64(3), float64(2), float64(1)}, false},
		{"plateau fails strict", []interface{}{float64(1), float64(1), float64(2)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := evalJSON(t, map[string]interface{}{"<": c.ops}, nil)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if Truthy(got) != c.want {
				t.Errorf("< %v = %v, want %v", c.ops, got, c.want)
			}
		})
	}
}

func TestAndShortCircuitsAndReturnsLastEvaluated(t *testing.T) {
	got, err := evalJSON(t, map[string]interface{}{"and": []interface{}{true, map[string]interface{}{"var": "x"}}}, map[string]interface{}{"x": float64(0)})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !StrictEqual(got, ast.Int64(0)) {
		t.Errorf("and short-circuit result = %v, want 0", got)
	}
}

func TestOrReturnsFirstTruthy(t *testing.T) {
	got, err := evalJSON(t, map[string]interface{}{"or": []interface{}{false, float64(0), "hit", "unreached"}}, nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got.Str() != "hit" {
		t.Errorf("or = %v, want hit", got)
	}
}

func TestIfElseChain(t *testing.T) {
	rule := map[string]interface{}{"if": []interface{}{false, "a", false, "b", "c"}}
	got, err := evalJSON(t, rule, nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got.Str() != "c" {
		t.Errorf("if-elseif-else = %v, want c", got)
	}
}

func TestNotAndNotNot(t *testing.T) {
	got, err := evalJSON(t, map[string]interface{}{"!": float64(0)}, nil)
	if err != nil || !Truthy(got) {
		t.Fatalf("!(0) = %v, %v, want true", got, err)
	}
	got, err = evalJSON(t, map[string]interface{}{"!!": "x"}, nil)
	if err != nil || !Truthy(got) {
		t.Fatalf("!!(x) = %v, %v, want true", got, err)
	}
}

func TestCatCoercesAndConcatenates(t *testing.T) {
	got, err := evalJSON(t, map[string]interface{}{"cat": []interface{}{"a", float64(1), true}}, nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got.Str() != "a1true" {
		t.Errorf("cat = %q, want a1true", got.Str())
	}
}

func TestScalarVsSingletonArrayLooseEquality(t *testing.T) {
	got, err := evalJSON(t, map[string]interface{}{"==": []interface{}{float64(1), []interface{}{float64(1)}}}, nil)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !Truthy(got) {
		t.Errorf("1 == [1] = %v, want true", got)
	}
}

func TestUnsupportedOpIsFatal(t *testing.T) {
	ev := &Evaluator{Interner: ast.NewInterner()}
	_, err := ev.Eval(&ast.Expr{Op: ast.Op(9999)})
	if err == nil {
		t.Fatal("expected error for unrecognized Op")
	}
}
