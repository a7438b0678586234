package topdown

import (
	"github.com/jsonlogic-go/jsonlogic/ast"
	"github.com/jsonlogic-go/jsonlogic/metrics"
)

// evalSequence handles map, filter, all, none, and some, which all share
// the shape (array, body): a single sub-expression re-evaluated once per
// element against a lambda-local accessor.
func (e *Evaluator) evalSequence(expr *ast.Expr) (ast.Value, error) {
	arrV, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	body := expr.Operand(1)
	if arrV.Kind() != ast.KindArray {
		switch expr.Op {
		case ast.OpMap, ast.OpFilter:
			return ast.Arr(nil), nil
		case ast.OpSome:
			return ast.Bool(false), nil
		default: // OpAll, OpNone
			return ast.Bool(true), nil
		}
	}
	elems := arrV.Arr()
	if e.Metrics != nil {
		e.Metrics.Counter(metrics.SequenceIter).Add(uint64(len(elems)))
		e.Metrics.Histogram(metrics.SequenceLen).Update(int64(len(elems)))
	}
	switch expr.Op {
	case ast.OpMap:
		out := make([]ast.Value, 0, len(elems))
		for _, el := range elems {
			v, err := e.evalLambdaBody(body, el, false, ast.Value{})
			if err != nil {
				return ast.Value{}, err
			}
			out = append(out, v)
		}
		return ast.Arr(out), nil
	case ast.OpFilter:
		out := make([]ast.Value, 0, len(elems))
		for _, el := range elems {
			v, err := e.evalLambdaBody(body, el, false, ast.Value{})
			if err != nil {
				return ast.Value{}, err
			}
			if Truthy(v) {
				out = append(out, el)
			}
		}
		return ast.Arr(out), nil
	case ast.OpAll:
		for _, el := range elems {
			v, err := e.evalLambdaBody(body, el, false, ast.Value{})
			if err != nil {
				return ast.Value{}, err
			}
			if !Truthy(v) {
				return ast.Bool(false), nil
			}
		}
		return ast.Bool(true), nil
	case ast.OpNone:
		for _, el := range elems {
			v, err := e.evalLambdaBody(body, el, false, ast.Value{})
			if err != nil {
				return ast.Value{}, err
			}
			if Truthy(v) {
				return ast.Bool(false), nil
			}
		}
		return ast.Bool(true), nil
	default: // OpSome
		for _, el := range elems {
			v, err := e.evalLambdaBody(body, el, false, ast.Value{})
			if err != nil {
				return ast.Value{}, err
			}
			if Truthy(v) {
				return ast.Bool(true), nil
			}
		}
		return ast.Bool(false), nil
	}
}

// evalReduce folds elements of the first operand through the body,
// threading an accumulator seeded from the third operand. A non-array
// first operand returns the initial value unchanged.
func (e *Evaluator) evalReduce(expr *ast.Expr) (ast.Value, error) {
	if len(expr.Operands) < 3 {
		return ast.Value{}, newTypeError(expr.Op, 0, "reduce requires (array, body, initial)")
	}
	arrV, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	body := expr.Operand(1)
	acc, err := e.Eval(expr.Operand(2))
	if err != nil {
		return ast.Value{}, err
	}
	if arrV.Kind() != ast.KindArray {
		return acc, nil
	}
	elems := arrV.Arr()
	if e.Metrics != nil {
		e.Metrics.Counter(metrics.SequenceIter).Add(uint64(len(elems)))
		e.Metrics.Histogram(metrics.SequenceLen).Update(int64(len(elems)))
	}
	for _, el := range elems {
		acc, err = e.evalLambdaBody(body, el, true, acc)
		if err != nil {
			return ast.Value{}, err
		}
	}
	return acc, nil
}

// evalMerge concatenates its operands, promoting any non-array operand to
// a singleton array first.
func (e *Evaluator) evalMerge(expr *ast.Expr) (ast.Value, error) {
	vals, err := e.evalOperands(expr)
	if err != nil {
		return ast.Value{}, err
	}
	var out []ast.Value
	for _, v := range vals {
		if v.Kind() == ast.KindArray {
			out = append(out, v.Arr()...)
		} else {
			out = append(out, v)
		}
	}
	return ast.Arr(out), nil
}

// evalLambdaBody evaluates body against a fresh Accessor scoped to a
// single sequence element, leaving every other field of e (interner,
// extensions, diagnostic sink, metrics) untouched.
func (e *Evaluator) evalLambdaBody(body *ast.Expr, current ast.Value, hasAcc bool, acc ast.Value) (ast.Value, error) {
	child := *e
	child.Accessor = lambdaAccessor(current, hasAcc, acc)
	return child.Eval(body)
}
