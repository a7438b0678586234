package topdown

import (
	"testing"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

func TestClampSubstr(t *testing.T) {
	cases := []struct {
		name     string
		s        string
		ofs, cnt int64
		want     string
	}{
		{"basic", "hello world", 0, 5, "hello"},
		{"omitted length yields empty", "hello", 2, 0, ""},
		{"negative offset from end", "hello", -3, 3, "llo"},
		{"negative offset clamps to zero", "hello", -100, 2, "he"},
		{"negative length shortens from end", "hello world", 0, -6, "hello"},
		{"negative length clamps to zero", "hello", 1, -100, ""},
		{"offset past end yields empty", "hi", 10, 5, ""},
		{"count past end truncates", "hi", 0, 10, "hi"},
		{"both negative", "hello world", -5, -2, "wor"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := clampSubstr(c.s, c.ofs, c.cnt); got != c.want {
				t.Errorf("clampSubstr(%q, %d, %d) = %q, want %q", c.s, c.ofs, c.cnt, got, c.want)
			}
		})
	}
}

func TestIn(t *testing.T) {
	cases := []struct {
		name string
		a, b ast.Value
		want bool
	}{
		{"element in array", ast.Int64(2), ast.Arr([]ast.Value{ast.Int64(1), ast.Int64(2)}), true},
		{"element not in array", ast.Int64(3), ast.Arr([]ast.Value{ast.Int64(1), ast.Int64(2)}), false},
		{"array membership is strict", ast.Str("1"), ast.Arr([]ast.Value{ast.Int64(1)}), false},
		{"substring", ast.Str("wor"), ast.Str("hello world"), true},
		{"not substring", ast.Str("xyz"), ast.Str("hello world"), false},
		{"non-string against string is false", ast.Int64(1), ast.Str("1"), false},
		{"non-array non-string right operand", ast.Int64(1), ast.Int64(1), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := In(c.a, c.b); got != c.want {
				t.Errorf("In(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}
