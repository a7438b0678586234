package topdown

import "github.com/jsonlogic-go/jsonlogic/ast"

// evalVar implements var(name[, default]). The name operand is evaluated
// and handed to the installed Accessor along with the name's precomputed
// table index. A resolution failure substitutes the default operand, if
// present, else null; any other error from the accessor is fatal.
func (e *Evaluator) evalVar(expr *ast.Expr) (ast.Value, error) {
	if len(expr.Operands) == 0 {
		return ast.Value{}, newTypeError(expr.Op, 0, "var requires a name operand")
	}
	name, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	if e.Accessor == nil {
		return ast.Value{}, newTypeError(expr.Op, 0, "no accessor installed")
	}
	v, err := e.Accessor.Resolve(name, expr.VarIndex)
	if err == nil {
		return v, nil
	}
	if _, ok := err.(*VarResolutionError); ok {
		if def := expr.Operand(1); def != nil {
			return e.Eval(def)
		}
		return ast.Null(), nil
	}
	return ast.Value{}, err
}

// evalMissing implements missing(names...): each name is resolved via the
// accessor, and the array of those whose value is null, absent, or
// unresolved is returned.
func (e *Evaluator) evalMissing(expr *ast.Expr) (ast.Value, error) {
	names, err := e.resolveNameList(expr)
	if err != nil {
		return ast.Value{}, err
	}
	return e.missingOf(names)
}

// resolveNameList implements missing/missing_some's dynamic argument-shape
// rule: if the first evaluated operand is an array, its elements are the
// name list; otherwise every operand is evaluated and used as a name.
func (e *Evaluator) resolveNameList(expr *ast.Expr) ([]ast.Value, error) {
	if len(expr.Operands) == 0 {
		return nil, nil
	}
	first, err := e.Eval(expr.Operand(0))
	if err != nil {
		return nil, err
	}
	if first.Kind() == ast.KindArray {
		return first.Arr(), nil
	}
	names := make([]ast.Value, 0, len(expr.Operands))
	names = append(names, first)
	for _, op := range expr.Operands[1:] {
		v, err := e.Eval(op)
		if err != nil {
			return nil, err
		}
		names = append(names, v)
	}
	return names, nil
}

func (e *Evaluator) missingOf(names []ast.Value) (ast.Value, error) {
	out := make([]ast.Value, 0, len(names))
	for _, name := range names {
		if e.Accessor == nil {
			out = append(out, name)
			continue
		}
		v, err := e.Accessor.Resolve(name, ast.VarComputed)
		if err != nil {
			if _, ok := err.(*VarResolutionError); ok {
				out = append(out, name)
				continue
			}
			return ast.Value{}, err
		}
		if v.IsNullOrAbsent() {
			out = append(out, name)
		}
	}
	return ast.Arr(out), nil
}

// evalMissingSome implements missing_some(min_required, names): the names
// operand is normally an array, but per the C++ reference this evaluator
// is derived from, a lone name also degrades to a singleton list.
func (e *Evaluator) evalMissingSome(expr *ast.Expr) (ast.Value, error) {
	if len(expr.Operands) < 2 {
		return ast.Value{}, newTypeError(expr.Op, 0, "missing_some requires (min_required, names)")
	}
	minV, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	minRequired, err := ToU64(minV)
	if err != nil {
		return ast.Value{}, newTypeError(expr.Op, 0, "%v", err)
	}
	namesV, err := e.Eval(expr.Operand(1))
	if err != nil {
		return ast.Value{}, err
	}
	var names []ast.Value
	if namesV.Kind() == ast.KindArray {
		names = namesV.Arr()
	} else {
		names = []ast.Value{namesV}
	}
	missingV, err := e.missingOf(names)
	if err != nil {
		return ast.Value{}, err
	}
	present := uint64(len(names) - len(missingV.Arr()))
	if present >= minRequired {
		return ast.Arr(nil), nil
	}
	return missingV, nil
}

func (e *Evaluator) evalLog(expr *ast.Expr) (ast.Value, error) {
	v, err := e.Eval(expr.Operand(0))
	if err != nil {
		return ast.Value{}, err
	}
	if e.Sink != nil {
		e.Sink.Log(v)
	}
	return v, nil
}
