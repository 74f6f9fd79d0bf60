package resolver

import (
	"maps"
	"slices"

	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// statement resolves one statement of f. It reports true for a return,
// after which the rest of the body is skipped.
func (r *resolver) statement(stmt vague.Expression, f *frame) (bool, error) {
	switch s := stmt.(type) {
	case *vague.Assign:
		pl, err := r.place(s.Target, f)
		if err != nil {
			return false, err
		}
		value, err := r.simplify(s.Value, f)
		if err != nil {
			return false, err
		}
		return false, r.store(pl, value, f, s.Position)
	case *vague.FuncCall:
		res, err := r.call(s, f, false)
		if err != nil {
			return false, err
		}
		if res.typ.Kind() != types.VoidKind {
			return false, diag.UnusedValue(s.Position, res.typ)
		}
		return false, nil
	case *vague.Return:
		return true, nil
	case *vague.Branch:
		return false, diag.ControlFlowInBody(s.Position, "if")
	case *vague.WhileLoop:
		return false, diag.ControlFlowInBody(s.Position, "while")
	}

	res, err := r.simplify(stmt, f)
	if err != nil {
		return false, err
	}
	return false, diag.UnusedValue(stmt.Pos(), res.typ)
}

// place is an assignment target with its indexes already simplified.
type place struct {
	id      vague.VariableID
	indexes []result
	// typ is the type of the written location. It is Auto for an unindexed
	// variable whose type is not pinned yet.
	typ types.Type
	pos token.Position
}

func (r *resolver) place(target vague.Expression, f *frame) (*place, error) {
	ref, ok := target.(*vague.VarRef)
	var indexExprs []vague.Expression
	if access, isAccess := target.(*vague.Access); isAccess {
		ref, ok = access.Base.(*vague.VarRef)
		indexExprs = access.Indexes
	}
	if !ok {
		return nil, diag.NotAssignable(target.Pos())
	}

	id := f.env.Convert(ref.ID)
	v := r.src.Variable(id)
	if v.Permanent {
		return nil, diag.AssignToConstant(target.Pos(), v.Name)
	}
	t, err := r.concreteType(v.DataType, f, target.Pos())
	if err != nil {
		return nil, err
	}
	if len(indexExprs) == 0 {
		return &place{id: id, typ: t, pos: target.Pos()}, nil
	}

	if t.Kind() == types.AutomaticKind {
		return nil, diag.UnresolvedAutoVar(ref.Position, v.Definition)
	}
	if rank := types.Rank(t); len(indexExprs) > rank {
		return nil, diag.TooManyIndexes(target.Pos(), len(indexExprs), rank, ref.Position, t)
	}
	idx, err := r.indexes(indexExprs, f)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(idx, t); err != nil {
		return nil, err
	}
	return &place{id: id, indexes: idx, typ: types.Unwrap(t, len(idx)), pos: target.Pos()}, nil
}

// store writes value to pl. An Auto variable takes the value's type;
// otherwise the value must widen to the target type. Known values are
// tracked instead of emitted while folding is on.
func (r *resolver) store(pl *place, value result, f *frame, pos token.Position) error {
	v := r.src.Variable(pl.id)
	if pl.typ.Kind() == types.AutomaticKind {
		v.DataType = vague.FromConcrete(value.typ)
		pl.typ = value.typ
	} else if !types.Widens(value.typ, pl.typ) {
		return diag.MismatchedAssign(pos, pl.pos, pl.typ, value.pos, value.typ)
	}
	value = inflate(value, pl.typ)
	track := value.known() && (r.ctx.Fold || !types.IsRuntime(pl.typ))

	if len(pl.indexes) == 0 {
		if track {
			delete(r.substitutes, pl.id)
			v.TemporaryValue = value.value
			return nil
		}
		expr, err := runtimeExpr(value)
		if err != nil {
			return err
		}
		delete(r.substitutes, pl.id)
		v.TemporaryValue = vague.Unknown{}
		rid := r.runtimeVar(pl.id, pl.typ)
		r.capture(rid, f, pos)
		r.out.AddStatement(f.scope, &resolved.Assign{
			Target:   &resolved.VarRef{ID: rid, Position: pl.pos},
			Value:    expr,
			Position: pos,
		})
		return nil
	}

	full, err := r.concreteType(v.DataType, f, pl.pos)
	if err != nil {
		return err
	}
	if _, substituted := r.substitutes[pl.id]; track && !substituted && allKnown(pl.indexes) && !vague.IsUnknown(v.TemporaryValue) {
		v.TemporaryValue = setElement(v.TemporaryValue, pl.indexes, value.value)
		return nil
	}

	if err := r.materialize(pl.id, full, f, pos); err != nil {
		return err
	}
	idx, err := runtimeExprs(pl.indexes)
	if err != nil {
		return err
	}
	expr, err := runtimeExpr(value)
	if err != nil {
		return err
	}
	rid := r.runtimeVar(pl.id, full)
	r.capture(rid, f, pos)
	r.out.AddStatement(f.scope, &resolved.Assign{
		Target: &resolved.Access{
			Base:     &resolved.VarRef{ID: rid, Position: pl.pos},
			Indexes:  idx,
			Position: pl.pos,
		},
		Value:    expr,
		Position: pos,
	})
	return nil
}

// materialize makes the run time variable of id hold its whole current
// value before part of it is overwritten at run time.
func (r *resolver) materialize(id vague.VariableID, t types.Type, f *frame, pos token.Position) error {
	v := r.src.Variable(id)
	var current resolved.Expression
	if sub, ok := r.substitutes[id]; ok {
		current = sub
		delete(r.substitutes, id)
	} else if !vague.IsUnknown(v.TemporaryValue) {
		expr, err := runtimeExpr(interpreted(v.TemporaryValue, t, pos))
		if err != nil {
			return err
		}
		current = expr
		v.TemporaryValue = vague.Unknown{}
	}
	if current == nil {
		return nil
	}
	rid := r.runtimeVar(id, t)
	r.capture(rid, f, pos)
	r.out.AddStatement(f.scope, &resolved.Assign{
		Target:   &resolved.VarRef{ID: rid, Position: pos},
		Value:    current,
		Position: pos,
	})
	return nil
}

// capture runs before rid is overwritten. Parameters still reading rid in
// place get their own variable holding the value rid had when they were
// bound.
func (r *resolver) capture(rid resolved.VariableID, f *frame, pos token.Position) {
	for _, param := range slices.Sorted(maps.Keys(r.substitutes)) {
		sub := r.substitutes[param]
		if ref, ok := sub.(*resolved.VarRef); !ok || ref.ID != rid {
			continue
		}
		delete(r.substitutes, param)
		r.out.AddStatement(f.scope, &resolved.Assign{
			Target:   &resolved.VarRef{ID: r.runtimeVar(param, r.out.TypeOf(sub)), Position: pos},
			Value:    sub,
			Position: pos,
		})
	}
}

func allKnown(results []result) bool {
	for _, res := range results {
		if !res.known() {
			return false
		}
	}
	return true
}

// setElement returns a copy of array with the element at indexes replaced.
// Fewer indexes than dimensions replace a whole sub-array.
func setElement(array vague.KnownData, indexes []result, value vague.KnownData) vague.KnownData {
	if len(indexes) == 0 {
		return value
	}
	items := array.(vague.Array)
	out := make(vague.Array, len(items))
	copy(out, items)
	i := indexes[0].value.(vague.Int)
	out[i] = setElement(items[i], indexes[1:], value)
	return out
}
