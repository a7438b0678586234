package ast

// Op identifies the operator (or literal kind) carried by an Expr node.
type Op int

// The complete set of expression node variants. Every operator recognized
// by the builder (see dispatch.go) maps to exactly one Op, plus two variants
// for literals that never come from the dispatch table: OpLiteral and
// OpArrayLiteral. A JSON object with anything other than exactly one key is
// not a valid rule node and never reaches an Op at all; buildObject in
// builder.go rejects it directly.
const (
	OpLiteral Op = iota
	OpArrayLiteral

	OpEq
	OpStrictEq
	OpNeq
	OpStrictNeq
	OpLt
	OpLte
	OpGt
	OpGte

	OpNot
	OpNotNot
	OpAnd
	OpOr
	OpIf

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpMin
	OpMax

	OpMap
	OpReduce
	OpFilter
	OpAll
	OpNone
	OpSome
	OpMerge

	OpCat
	OpSubstr
	OpIn

	OpVar
	OpMissing
	OpMissingSome

	OpLog

	OpRegex
)

// VarComputed is the sentinel Expr.VarIndex value meaning "this var's name
// is not a plain literal string known at build time; resolve it dynamically
// every time it is evaluated".
const VarComputed = -1

// Expr is the single sum-type node used for the entire expression tree.
// Every operator node owns an ordered list of child expressions in
// Operands.
type Expr struct {
	Op       Op
	Operands []*Expr

	// Literal holds the scalar payload for OpLiteral nodes (null, bool,
	// i64, u64, f64, or an interned string). Unused otherwise.
	Literal Value

	// VarIndex holds the precomputed position of a plain var's name in the
	// rule's variable-name table, or VarComputed if the name is dynamic.
	// Only meaningful when Op == OpVar.
	VarIndex int
}

// Operand returns the i-th child expression, or nil if i is out of range.
func (e *Expr) Operand(i int) *Expr {
	if i < 0 || i >= len(e.Operands) {
		return nil
	}
	return e.Operands[i]
}
