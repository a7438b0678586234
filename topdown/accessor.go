package topdown

import (
	"strconv"
	"strings"

	"github.com/jsonlogic-go/jsonlogic/ast"
)

// Accessor resolves a var reference's name against an evaluation's data
// context. name is the evaluated name operand, ordinarily a string, but a
// computed var may evaluate to any Value; index is the name's precomputed
// position in the rule's variable-name table, or ast.VarComputed when the
// name was not a build-time literal. By convention the empty string
// resolves to "the whole context": JSONAccessor returns its entire
// document, and a lambda accessor installed by a sequence operator returns
// the current element. An Accessor that cannot resolve name must return a
// *VarResolutionError (see NewVarResolutionError); any other returned error
// is fatal and propagates out of Apply.
type Accessor interface {
	Resolve(name ast.Value, index int) (ast.Value, error)
}

// AccessorFunc adapts a plain function to the Accessor interface.
type AccessorFunc func(name ast.Value, index int) (ast.Value, error)

// Resolve calls f.
func (f AccessorFunc) Resolve(name ast.Value, index int) (ast.Value, error) {
	return f(name, index)
}

// JSONAccessor resolves names against a decoded JSON document: exact key
// lookup first, then dotted-path descent through nested objects and arrays.
type JSONAccessor struct {
	Data interface{}
}

// NewJSONAccessor wraps an already-decoded JSON document (as produced by
// encoding/json.Unmarshal into interface{}) as an Accessor.
func NewJSONAccessor(data interface{}) *JSONAccessor {
	return &JSONAccessor{Data: data}
}

// Resolve implements Accessor. index is unused: a JSON document is looked
// up by name, not position.
func (a *JSONAccessor) Resolve(name ast.Value, _ int) (ast.Value, error) {
	if name.Kind() != ast.KindString {
		return ast.Value{}, NewVarResolutionError(name.String())
	}
	if name.Str() == "" {
		return ast.ValueFromJSON(a.Data), nil
	}
	return resolveJSONPath(a.Data, name.Str())
}

// lambdaAccessor is installed while evaluating a sequence operator's body:
// "" and "current" resolve to the element being visited, "accumulator"
// resolves to reduce's running value, and every other name resolves to
// null rather than falling through to the enclosing accessor.
func lambdaAccessor(current ast.Value, hasAccumulator bool, accumulator ast.Value) AccessorFunc {
	return func(name ast.Value, _ int) (ast.Value, error) {
		if name.Kind() == ast.KindString {
			switch name.Str() {
			case "", "current":
				return current, nil
			case "accumulator":
				if hasAccumulator {
					return accumulator, nil
				}
			}
		}
		return ast.Null(), nil
	}
}

func resolveJSONPath(data interface{}, name string) (ast.Value, error) {
	if m, ok := data.(map[string]interface{}); ok {
		if v, ok := m[name]; ok {
			return ast.ValueFromJSON(v), nil
		}
	}
	cur := data
	for _, seg := range strings.Split(name, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return ast.Value{}, NewVarResolutionError(name)
			}
			cur = v
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return ast.Value{}, NewVarResolutionError(name)
			}
			cur = node[idx]
		default:
			return ast.Value{}, NewVarResolutionError(name)
		}
	}
	return ast.ValueFromJSON(cur), nil
}
