package ast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BuildOptions controls optional builder behavior.
type BuildOptions struct {
	// Extensions enables optional operators not part of the base JsonLogic
	// dispatch table, currently just "regex".
	Extensions bool
}

// BuildResult is the builder's output: the root of the expression tree, the
// interner that owns every string literal reachable from it, the ordered
// variable-name table, and whether the tree contains any computed variable
// reference.
type BuildResult struct {
	Root             *Expr
	Interner         *Interner
	VarNames         []string
	HasComputedNames bool
}

// Build turns an already-decoded JSON value into an expression tree. The
// JSON lexer/parser that produced v is outside the core's contract: v may
// be the output of encoding/json.Unmarshal into interface{} (numbers as
// float64), a json.Decoder configured with UseNumber (numbers as
// json.Number), or plain Go values (nil, bool, string, int64, uint64,
// float64, []interface{}, map[string]interface{}) assembled programmatically.
func Build(v interface{}, opts BuildOptions) (*BuildResult, error) {
	b := &builder{
		interner: NewInterner(),
		opts:     opts,
		varIndex: map[string]int{},
	}
	root, err := b.build(v)
	if err != nil {
		return nil, err
	}
	return &BuildResult{
		Root:             root,
		Interner:         b.interner,
		VarNames:         b.varNames,
		HasComputedNames: b.hasComputedNames,
	}, nil
}

type builder struct {
	interner         *Interner
	opts             BuildOptions
	varNames         []string
	varIndex         map[string]int
	hasComputedNames bool
}

func (b *builder) build(v interface{}) (*Expr, error) {
	switch x := v.(type) {
	case nil:
		return &Expr{Op: OpLiteral, Literal: Null()}, nil
	case bool:
		return &Expr{Op: OpLiteral, Literal: Bool(x)}, nil
	case string:
		return &Expr{Op: OpLiteral, Literal: Str(b.interner.Intern(x))}, nil
	case json.Number:
		return b.buildNumberLiteral(string(x))
	case float64:
		return b.buildFloatLiteral(x)
	case float32:
		return b.buildFloatLiteral(float64(x))
	case int:
		return &Expr{Op: OpLiteral, Literal: Int64(int64(x))}, nil
	case int64:
		return &Expr{Op: OpLiteral, Literal: Int64(x)}, nil
	case uint64:
		return &Expr{Op: OpLiteral, Literal: Uint64(x)}, nil
	case []interface{}:
		return b.buildArrayLiteral(x)
	case map[string]interface{}:
		return b.buildObject(x)
	default:
		return nil, newUnsupported("unrecognized JSON value of type %T", v)
	}
}

// buildNumberLiteral parses the decimal text of a json.Number into the
// narrowest of i64/u64/f64 that represents it exactly: integral text
// without a fraction or exponent tries i64 then u64, everything else is f64.
func (b *builder) buildNumberLiteral(s string) (*Expr, error) {
	if !strings.ContainsAny(s, ".eE") {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			if _, err := strconv.ParseUint(s, 10, 64); err != nil {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					return nil, newMalformed("invalid number literal %q", s)
				}
			}
		}
	} else if _, err := strconv.ParseFloat(s, 64); err != nil {
		return nil, newMalformed("invalid number literal %q", s)
	}
	return &Expr{Op: OpLiteral, Literal: numberFromString(s)}, nil
}

// buildFloatLiteral recovers the i64/u64/f64 distinction for a value that
// already went through encoding/json's default float64 decoding. Integral
// values with magnitude at most 2^53 become i64, larger positive integral
// values up to the u64 maximum become u64; everything else stays f64.
func (b *builder) buildFloatLiteral(x float64) (*Expr, error) {
	return &Expr{Op: OpLiteral, Literal: numberFromFloat64(x)}, nil
}

func (b *builder) buildArrayLiteral(arr []interface{}) (*Expr, error) {
	operands := make([]*Expr, 0, len(arr))
	for _, e := range arr {
		child, err := b.build(e)
		if err != nil {
			return nil, err
		}
		operands = append(operands, child)
	}
	return &Expr{Op: OpArrayLiteral, Operands: operands}, nil
}

func (b *builder) buildObject(m map[string]interface{}) (*Expr, error) {
	if len(m) != 1 {
		return nil, newUnsupported("object literals are not supported (got %d keys)", len(m))
	}
	var key string
	var val interface{}
	for k, v := range m {
		key, val = k, v
	}
	op, ok := lookupOp(key, b.opts.Extensions)
	if !ok {
		return nil, newUnsupported("unknown operator %q", key)
	}
	operands, err := b.buildOperandList(val)
	if err != nil {
		return nil, err
	}
	expr := &Expr{Op: op, Operands: operands}
	switch op {
	case OpVar:
		if err := b.finishVar(expr); err != nil {
			return nil, err
		}
	case OpMissing, OpMissingSome:
		b.hasComputedNames = true
	}
	return expr, nil
}

// buildOperandList implements the builder's argument-shape rule: if the
// operator's value is a JSON array, its elements become the operands in
// order; otherwise the value becomes the sole operand.
func (b *builder) buildOperandList(val interface{}) ([]*Expr, error) {
	if arr, ok := val.([]interface{}); ok {
		operands := make([]*Expr, 0, len(arr))
		for _, e := range arr {
			child, err := b.build(e)
			if err != nil {
				return nil, err
			}
			operands = append(operands, child)
		}
		return operands, nil
	}
	child, err := b.build(val)
	if err != nil {
		return nil, err
	}
	return []*Expr{child}, nil
}

// finishVar resolves a var node's index and updates the builder's
// variable-name table.
func (b *builder) finishVar(e *Expr) error {
	if len(e.Operands) == 0 {
		return newMalformed("var requires at least one operand (the name)")
	}
	name := e.Operands[0]
	if name.Op != OpLiteral || name.Literal.Kind() != KindString {
		b.hasComputedNames = true
		e.VarIndex = VarComputed
		return nil
	}
	s := name.Literal.Str()
	if s == "" {
		e.VarIndex = VarComputed
		return nil
	}
	if strings.Contains(s, ".") && strings.Contains(s, "[") {
		b.hasComputedNames = true
		e.VarIndex = VarComputed
		return nil
	}
	if idx, ok := b.varIndex[s]; ok {
		e.VarIndex = idx
		return nil
	}
	idx := len(b.varNames)
	b.varNames = append(b.varNames, s)
	b.varIndex[s] = idx
	e.VarIndex = idx
	return nil
}
