package topdown

import (
	"strings"

	"github.com/jsonlogic-go/jsonlogic/ast"
	"github.com/jsonlogic-go/jsonlogic/metrics"
)

// Evaluator walks an expression tree built by ast.Build and produces a
// Value, threading a single Accessor for variable resolution and the
// Interner it is given (rule.Rule supplies a fresh per-evaluation scratch
// interner) for any strings coercion or concatenation allocates along the
// way. Evaluation is synchronous and single-threaded; the only
// concurrency-sensitive piece of state is Interner, which sequence
// operators and string coercions may grow (see ast.Interner).
type Evaluator struct {
	Interner   *ast.Interner
	Accessor   Accessor
	Extensions bool
	Sink       DiagnosticSink
	Metrics    metrics.Metrics
}

// Eval evaluates expr against e's current Accessor, dispatching on its Op.
func (e *Evaluator) Eval(expr *ast.Expr) (ast.Value, error) {
	if e.Metrics != nil {
		e.Metrics.Counter(metrics.EvalOps).Incr()
	}
	switch expr.Op {
	case ast.OpLiteral:
		return expr.Literal, nil
	case ast.OpArrayLiteral:
		return e.evalArrayLiteral(expr)
	case ast.OpEq, ast.OpNeq, ast.OpStrictEq, ast.OpStrictNeq:
		return e.evalEquality(expr)
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return e.evalChainedCompare(expr)
	case ast.OpNot, ast.OpNotNot:
		return e.evalNot(expr)
	case ast.OpAnd:
		return e.evalAnd(expr)
	case ast.OpOr:
		return e.evalOr(expr)
	case ast.OpIf:
		return e.evalIf(expr)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpMin, ast.OpMax:
		return e.evalArithmetic(expr)
	case ast.OpCat:
		return e.evalCat(expr)
	case ast.OpSubstr:
		return e.evalSubstr(expr)
	case ast.OpIn:
		return e.evalIn(expr)
	case ast.OpMap, ast.OpFilter, ast.OpAll, ast.OpNone, ast.OpSome:
		return e.evalSequence(expr)
	case ast.OpReduce:
		return e.evalReduce(expr)
	case ast.OpMerge:
		return e.evalMerge(expr)
	case ast.OpVar:
		return e.evalVar(expr)
	case ast.OpMissing:
		return e.evalMissing(expr)
	case ast.OpMissingSome:
		return e.evalMissingSome(expr)
	case ast.OpLog:
		return e.evalLog(expr)
	case ast.OpRegex:
		return e.evalRegex(expr)
	default:
		return ast.Value{}, unsupportedError{Op: expr.Op}
	}
}

// evalOperands evaluates every operand of expr, left to right, stopping at
// the first error.
func (e *Evaluator) evalOperands(expr *ast.Expr) ([]ast.Value, error) {
	vals := make([]ast.Value, len(expr.Operands))
	for i, op := range expr.Operands {
		v, err := e.Eval(op)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (e *Evaluator) evalArrayLiteral(expr *ast.Expr) (ast.Value, error) {
	vals, err := e.evalOperands(expr)
	if err != nil {
		return ast.Value{}, err
	}
	return ast.Arr(vals), nil
}

func (e *Evaluator) evalEquality(expr *ast.Expr) (ast.Value, error) {
	a, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	b, err := e.Eval(expr.Operand(1))
	if err != nil {
		return ast.Value{}, err
	}
	switch expr.Op {
	case ast.OpEq:
		return ast.Bool(LooseEqual(a, b)), nil
	case ast.OpNeq:
		return ast.Bool(!LooseEqual(a, b)), nil
	case ast.OpStrictEq:
		return ast.Bool(StrictEqual(a, b)), nil
	default:
		return ast.Bool(!StrictEqual(a, b)), nil
	}
}

// evalChainedCompare generalizes <, <=, >, >= to any number of operands:
// a op b op c ... evaluated left to right, short-circuiting on the first
// false pairwise relation.
func (e *Evaluator) evalChainedCompare(expr *ast.Expr) (ast.Value, error) {
	if len(expr.Operands) < 2 {
		return ast.Bool(true), nil
	}
	prev, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	for i := 1; i < len(expr.Operands); i++ {
		cur, err := e.Eval(expr.Operand(i))
		if err != nil {
			return ast.Value{}, err
		}
		ok, err := Relate(expr.Op, prev, cur)
		if err != nil {
			return ast.Value{}, newTypeError(expr.Op, i, "%v", err)
		}
		if !ok {
			return ast.Bool(false), nil
		}
		prev = cur
	}
	return ast.Bool(true), nil
}

func (e *Evaluator) evalNot(expr *ast.Expr) (ast.Value, error) {
	v, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	t := Truthy(v)
	if expr.Op == ast.OpNot {
		return ast.Bool(!t), nil
	}
	return ast.Bool(t), nil
}

func (e *Evaluator) evalAnd(expr *ast.Expr) (ast.Value, error) {
	last := ast.Bool(true)
	for _, op := range expr.Operands {
		v, err := e.Eval(op)
		if err != nil {
			return ast.Value{}, err
		}
		last = v
		if !Truthy(v) {
			return v, nil
		}
	}
	return last, nil
}

func (e *Evaluator) evalOr(expr *ast.Expr) (ast.Value, error) {
	last := ast.Bool(false)
	for _, op := range expr.Operands {
		v, err := e.Eval(op)
		if err != nil {
			return ast.Value{}, err
		}
		last = v
		if Truthy(v) {
			return v, nil
		}
	}
	return last, nil
}

func (e *Evaluator) evalIf(expr *ast.Expr) (ast.Value, error) {
	n := len(expr.Operands)
	i := 0
	for ; i+1 < n; i += 2 {
		cond, err := e.Eval(expr.Operand(i))
		if err != nil {
			return ast.Value{}, err
		}
		if Truthy(cond) {
			return e.Eval(expr.Operand(i + 1))
		}
	}
	if i < n {
		return e.Eval(expr.Operand(i))
	}
	return ast.Null(), nil
}

func (e *Evaluator) evalArithmetic(expr *ast.Expr) (ast.Value, error) {
	vals, err := e.evalOperands(expr)
	if err != nil {
		return ast.Value{}, err
	}
	if len(vals) == 0 {
		return ast.Value{}, newTypeError(expr.Op, 0, "requires at least one operand")
	}
	var result ast.Value
	switch expr.Op {
	case ast.OpAdd:
		result, err = Add(vals)
	case ast.OpSub:
		result, err = Sub(vals)
	case ast.OpMul:
		result, err = Mul(vals)
	case ast.OpDiv:
		if len(vals) != 2 {
			return ast.Value{}, newTypeError(expr.Op, 0, "/ requires exactly 2 operands")
		}
		result, err = Div(vals[0], vals[1])
	case ast.OpMod:
		if len(vals) != 2 {
			return ast.Value{}, newTypeError(expr.Op, 0, "%% requires exactly 2 operands")
		}
		result, err = Mod(vals[0], vals[1])
	case ast.OpMin:
		result, err = Min(vals)
	default:
		result, err = Max(vals)
	}
	if err != nil {
		return ast.Value{}, newTypeError(expr.Op, 0, "%v", err)
	}
	return result, nil
}

func (e *Evaluator) evalCat(expr *ast.Expr) (ast.Value, error) {
	vals, err := e.evalOperands(expr)
	if err != nil {
		return ast.Value{}, err
	}
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(ToString(e.Interner, v).Str())
	}
	return ast.Str(e.Interner.Intern(sb.String())), nil
}
