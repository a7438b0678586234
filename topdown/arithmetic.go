package topdown

import "github.com/jsonlogic-go/jsonlogic/ast"

// Add folds operands left to right with pairwise addition. A single operand
// is still numerified, so ["+", "3"] yields the i64 3, not the string.
func Add(operands []ast.Value) (ast.Value, error) {
	if len(operands) == 1 {
		return numerify(operands[0])
	}
	return foldPair(operands, subOrAdd(false))
}

// Sub is two-ary (a - b) or unary (-a, computed as 0 - a).
func Sub(operands []ast.Value) (ast.Value, error) {
	if len(operands) == 1 {
		return addPair(ast.Int64(0), operands[0], true)
	}
	return foldPair(operands, subOrAdd(true))
}

// Mul folds operands left to right with pairwise multiplication.
func Mul(operands []ast.Value) (ast.Value, error) {
	if len(operands) == 1 {
		return numerify(operands[0])
	}
	return foldPair(operands, mulPair)
}

// Div is strictly two-ary: integer division that isn't exact promotes to
// f64, and division by zero yields null rather than an error.
func Div(a, b ast.Value) (ast.Value, error) {
	return divPair(a, b)
}

// Mod is strictly two-ary and integer-only; a zero divisor yields null.
func Mod(a, b ast.Value) (ast.Value, error) {
	return modPair(a, b)
}

// Min returns the smallest of operands under numeric ordering.
func Min(operands []ast.Value) (ast.Value, error) {
	return extremum(operands, ast.OpLt)
}

// Max returns the largest of operands under numeric ordering.
func Max(operands []ast.Value) (ast.Value, error) {
	return extremum(operands, ast.OpGt)
}

func extremum(operands []ast.Value, keep ast.Op) (ast.Value, error) {
	best, err := numerify(operands[0])
	if err != nil {
		return ast.Value{}, err
	}
	if best.IsNull() {
		return ast.Null(), nil
	}
	for _, v := range operands[1:] {
		n, err := numerify(v)
		if err != nil {
			return ast.Value{}, err
		}
		if n.IsNull() {
			return ast.Null(), nil
		}
		better, err := Relate(keep, n, best)
		if err != nil {
			return ast.Value{}, err
		}
		if better {
			best = n
		}
	}
	return best, nil
}

// numerify coerces v the way a lone arithmetic operand is coerced: null and
// absent stay null, propagating the "any operand that coerces to null
// yields null for the whole expression" rule; everything else becomes
// i64/u64/f64.
func numerify(v ast.Value) (ast.Value, error) {
	if v.IsNull() || v.IsAbsent() {
		return ast.Null(), nil
	}
	return toNumeric(v)
}

func foldPair(operands []ast.Value, pair func(a, b ast.Value) (ast.Value, error)) (ast.Value, error) {
	acc, err := numerify(operands[0])
	if err != nil {
		return ast.Value{}, err
	}
	for _, v := range operands[1:] {
		next, err := numerify(v)
		if err != nil {
			return ast.Value{}, err
		}
		if acc.IsNull() || next.IsNull() {
			acc = ast.Null()
			continue
		}
		acc, err = pair(acc, next)
		if err != nil {
			return ast.Value{}, err
		}
	}
	return acc, nil
}

func subOrAdd(negate bool) func(a, b ast.Value) (ast.Value, error) {
	return func(a, b ast.Value) (ast.Value, error) {
		return addPair(a, b, negate)
	}
}

func addPair(a, b ast.Value, negateB bool) (ast.Value, error) {
	if a.IsNull() || b.IsNull() {
		return ast.Null(), nil
	}
	kind, ai, bi, au, bu, af, bf, err := promotePair(a, b)
	if err != nil {
		return ast.Value{}, err
	}
	switch kind {
	case numI64:
		if negateB {
			return ast.Int64(ai - bi), nil
		}
		return ast.Int64(ai + bi), nil
	case numU64:
		if negateB {
			return ast.Int64(int64(au) - int64(bu)), nil
		}
		return ast.Uint64(au + bu), nil
	default:
		if negateB {
			return ast.Float64(af - bf), nil
		}
		return ast.Float64(af + bf), nil
	}
}

func mulPair(a, b ast.Value) (ast.Value, error) {
	if a.IsNull() || b.IsNull() {
		return ast.Null(), nil
	}
	kind, ai, bi, au, bu, af, bf, err := promotePair(a, b)
	if err != nil {
		return ast.Value{}, err
	}
	switch kind {
	case numI64:
		return ast.Int64(ai * bi), nil
	case numU64:
		return ast.Uint64(au * bu), nil
	default:
		return ast.Float64(af * bf), nil
	}
}

func divPair(a, b ast.Value) (ast.Value, error) {
	na, err := numerify(a)
	if err != nil {
		return ast.Value{}, err
	}
	nb, err := numerify(b)
	if err != nil {
		return ast.Value{}, err
	}
	if na.IsNull() || nb.IsNull() {
		return ast.Null(), nil
	}
	kind, ai, bi, au, bu, af, bf, err := promotePair(na, nb)
	if err != nil {
		return ast.Value{}, err
	}
	switch kind {
	case numI64:
		if bi == 0 {
			return ast.Null(), nil
		}
		if ai%bi == 0 {
			return ast.Int64(ai / bi), nil
		}
		return ast.Float64(float64(ai) / float64(bi)), nil
	case numU64:
		if bu == 0 {
			return ast.Null(), nil
		}
		if au%bu == 0 {
			return ast.Uint64(au / bu), nil
		}
		return ast.Float64(float64(au) / float64(bu)), nil
	default:
		if bf == 0 {
			return ast.Null(), nil
		}
		return ast.Float64(af / bf), nil
	}
}

func modPair(a, b ast.Value) (ast.Value, error) {
	na, err := numerify(a)
	if err != nil {
		return ast.Value{}, err
	}
	nb, err := numerify(b)
	if err != nil {
		return ast.Value{}, err
	}
	if na.IsNull() || nb.IsNull() {
		return ast.Null(), nil
	}
	ai, err := ToI64(na)
	if err != nil {
		return ast.Value{}, err
	}
	bi, err := ToI64(nb)
	if err != nil {
		return ast.Value{}, err
	}
	if bi == 0 {
		return ast.Null(), nil
	}
	return ast.Int64(ai % bi), nil
}
