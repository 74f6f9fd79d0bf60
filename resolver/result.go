package resolver

import (
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// result is a simplified expression. Exactly one of value and expr is set:
// value when the expression is known at compile time, expr when run time
// code is needed to compute it.
type result struct {
	value vague.KnownData
	expr  resolved.Expression
	typ   types.Type
	pos   token.Position
}

func interpreted(value vague.KnownData, typ types.Type, pos token.Position) result {
	return result{value: value, typ: typ, pos: pos}
}

func modified(expr resolved.Expression, typ types.Type, pos token.Position) result {
	return result{expr: expr, typ: typ, pos: pos}
}

func (r result) known() bool { return r.expr == nil }

func voidResult(pos token.Position) result {
	return interpreted(vague.Void{}, types.V, pos)
}

// typeOfKnown is the type of a compile-time value. Arrays are never empty.
func typeOfKnown(k vague.KnownData) types.Type {
	switch k := k.(type) {
	case vague.Bool:
		return types.B
	case vague.Int:
		return types.I
	case vague.Float:
		return types.F
	case vague.TypeValue:
		return types.TypeType
	case vague.FunctionValue:
		return types.FuncType
	case vague.Array:
		return types.Array{Len: len(k), Base: typeOfKnown(k[0])}
	}
	return types.V
}

// toRuntime converts a compile-time value into one the resolved program can
// hold. Types, functions and Void have no run time form.
func toRuntime(k vague.KnownData) (resolved.KnownData, bool) {
	switch k := k.(type) {
	case vague.Bool:
		return resolved.Bool(k), true
	case vague.Int:
		return resolved.Int(k), true
	case vague.Float:
		return resolved.Float(k), true
	case vague.Array:
		out := make(resolved.Array, len(k))
		for i, item := range k {
			v, ok := toRuntime(item)
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	}
	return nil, false
}

// runtimeExpr returns the run time form of res, turning known values into
// literals.
func runtimeExpr(res result) (resolved.Expression, error) {
	if !res.known() {
		return res.expr, nil
	}
	value, ok := toRuntime(res.value)
	if !ok {
		return nil, diag.CompileTimeOnly(res.pos, res.typ)
	}
	return &resolved.Literal{Value: value, Position: res.pos}, nil
}

func runtimeExprs(results []result) ([]resolved.Expression, error) {
	out := make([]resolved.Expression, len(results))
	for i, res := range results {
		expr, err := runtimeExpr(res)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}

// inflate widens res to the type to, which must be a BCT of res's type.
func inflate(res result, to types.Type) result {
	if to.Kind() == types.AutomaticKind || types.Equal(res.typ, to) {
		return res
	}
	if res.known() {
		return interpreted(inflateValue(res.value, res.typ, to), to, res.pos)
	}
	return modified(&resolved.Inflate{Value: res.expr, From: res.typ, To: to, Position: res.pos}, to, res.pos)
}

// inflateValue broadcasts k dimension by dimension, outermost first. A
// dimension of length 1 repeats its only item; a scalar repeats itself.
func inflateValue(k vague.KnownData, from, to types.Type) vague.KnownData {
	ta, ok := to.(types.Array)
	if !ok || types.Equal(from, to) {
		return k
	}
	fa, fromArray := from.(types.Array)
	out := make(vague.Array, ta.Len)
	for i := range out {
		if !fromArray {
			out[i] = inflateValue(k, from, ta.Base)
			continue
		}
		items := k.(vague.Array)
		item := items[0]
		if fa.Len == ta.Len {
			item = items[i]
		}
		out[i] = inflateValue(item, fa.Base, ta.Base)
	}
	return out
}
