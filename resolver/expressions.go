package resolver

import (
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// simplify reduces e to a known value or a run time expression.
// Subexpressions are simplified left to right.
func (r *resolver) simplify(e vague.Expression, f *frame) (result, error) {
	switch e := e.(type) {
	case *vague.Literal:
		return interpreted(e.Value, typeOfKnown(e.Value), e.Position), nil
	case *vague.VarRef:
		return r.variable(e.ID, f, e.Position)
	case *vague.Access:
		return r.access(e, f)
	case *vague.BinaryOperation:
		left, err := r.simplify(e.Left, f)
		if err != nil {
			return result{}, err
		}
		right, err := r.simplify(e.Right, f)
		if err != nil {
			return result{}, err
		}
		return binary(e.Op, left, right, e.Position)
	case *vague.Collect:
		return r.collect(e, f)
	case *vague.FuncCall:
		return r.call(e, f, true)
	case *vague.InlineReturn:
		return result{}, diag.Syntax(e.Position, "inline can only be used in the output list of a call")
	}
	return result{}, diag.Syntax(e.Pos(), "%s cannot be used as a value", e)
}

// variable reads a variable: its compile-time value when one is tracked,
// otherwise its run time variable.
func (r *resolver) variable(id vague.VariableID, f *frame, pos token.Position) (result, error) {
	id = f.env.Convert(id)
	v := r.src.Variable(id)
	if sub, ok := r.substitutes[id]; ok {
		return modified(sub, r.out.TypeOf(sub), pos), nil
	}
	if v.Permanent && vague.IsUnknown(v.TemporaryValue) {
		return result{}, diag.UnresolvedTemplate(pos, v.Name)
	}

	t, err := r.concreteType(v.DataType, f, pos)
	if err != nil {
		return result{}, err
	}
	if !vague.IsUnknown(v.TemporaryValue) {
		return interpreted(v.TemporaryValue, t, pos), nil
	}
	if t.Kind() == types.AutomaticKind {
		return result{}, diag.UnresolvedAutoVar(pos, v.Definition)
	}
	if !types.IsRuntime(t) {
		return result{}, diag.CompileTimeOnly(pos, t)
	}
	return modified(&resolved.VarRef{ID: r.runtimeVar(id, t), Position: pos}, t, pos), nil
}

// indexes simplifies array indexes, which must all be Int.
func (r *resolver) indexes(exprs []vague.Expression, f *frame) ([]result, error) {
	out := make([]result, len(exprs))
	for i, e := range exprs {
		res, err := r.simplify(e, f)
		if err != nil {
			return nil, err
		}
		if !types.Equal(res.typ, types.I) {
			return nil, diag.ArrayIndexNotInt(res.pos, res.typ)
		}
		out[i] = res
	}
	return out, nil
}

// checkBounds validates every known index against the dimension it selects.
func checkBounds(indexes []result, t types.Type) error {
	for i, idx := range indexes {
		if !idx.known() {
			continue
		}
		n := int64(idx.value.(vague.Int))
		size := types.Unwrap(t, i).(types.Array).Len
		if n < 0 || n >= int64(size) {
			return diag.ArrayIndexOutOfBounds(idx.pos, n, size)
		}
	}
	return nil
}

// access folds the longest known prefix of the indexes into a known base.
// A full set of known indexes yields an element, fewer yield a sub-array,
// and any run time index leaves an Access on the known part.
func (r *resolver) access(e *vague.Access, f *frame) (result, error) {
	base, err := r.simplify(e.Base, f)
	if err != nil {
		return result{}, err
	}
	if rank := types.Rank(base.typ); len(e.Indexes) > rank {
		return result{}, diag.TooManyIndexes(e.Position, len(e.Indexes), rank, base.pos, base.typ)
	}
	idx, err := r.indexes(e.Indexes, f)
	if err != nil {
		return result{}, err
	}
	if err := checkBounds(idx, base.typ); err != nil {
		return result{}, err
	}
	elemType := types.Unwrap(base.typ, len(idx))

	if base.known() {
		value, k := base.value, 0
		for ; k < len(idx) && idx[k].known(); k++ {
			value = value.(vague.Array)[idx[k].value.(vague.Int)]
		}
		if k == len(idx) {
			return interpreted(value, elemType, e.Position), nil
		}
		base = interpreted(value, types.Unwrap(base.typ, k), base.pos)
		idx = idx[k:]
	}

	baseExpr, err := runtimeExpr(base)
	if err != nil {
		return result{}, err
	}
	exprs, err := runtimeExprs(idx)
	if err != nil {
		return result{}, err
	}
	return modified(&resolved.Access{Base: baseExpr, Indexes: exprs, Position: e.Position}, elemType, e.Position), nil
}

// collect builds an array literal. Items must all have the same type.
func (r *resolver) collect(e *vague.Collect, f *frame) (result, error) {
	if len(e.Items) == 0 {
		return result{}, diag.EmptyArrayLiteral(e.Position)
	}
	items := make([]result, len(e.Items))
	allKnown := true
	for i, item := range e.Items {
		res, err := r.simplify(item, f)
		if err != nil {
			return result{}, err
		}
		if i > 0 && !types.Equal(res.typ, items[0].typ) {
			return result{}, diag.BadArrayLiteral(res.pos, res.typ, items[0].pos, items[0].typ)
		}
		items[i] = res
		allKnown = allKnown && res.known()
	}
	t := types.Array{Len: len(items), Base: items[0].typ}

	if allKnown {
		value := make(vague.Array, len(items))
		for i, item := range items {
			value[i] = item.value
		}
		return interpreted(value, t, e.Position), nil
	}
	exprs, err := runtimeExprs(items)
	if err != nil {
		return result{}, err
	}
	return modified(&resolved.Collect{Items: exprs, Position: e.Position}, t, e.Position), nil
}
