package resolver

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// inferTemplates folds the type of every argument, and of every output
// target with a known type, into the template parameters that the
// corresponding parameter's declared type refers to. Keys are the template
// parameters of the uncopied body. Templates of enclosing functions are
// already bound and are only checked when the arguments are passed.
func (r *resolver) inferTemplates(body *vague.Scope, sig *signature) (map[vague.VariableID]types.Type, error) {
	table := map[vague.VariableID]types.Type{}
	for i, param := range body.Inputs {
		arg := sig.args[i]
		if err := r.combineTypeIntoTable(r.src.Variable(param).DataType, arg.typ, arg.pos, table); err != nil {
			return nil, err
		}
	}
	for i, param := range body.Outputs {
		target := sig.targets[i]
		if target == nil || target.typ.Kind() == types.AutomaticKind {
			continue
		}
		if err := r.combineTypeIntoTable(r.src.Variable(param).DataType, target.typ, target.pos, table); err != nil {
			return nil, err
		}
	}
	for tmpl := range table {
		if body.Symbols[r.src.Variable(tmpl).Name] != tmpl {
			delete(table, tmpl)
		}
	}
	return table, nil
}

// combineTypeIntoTable matches a declared parameter type against the type
// of the value passed for it. Array dimensions are peeled off both sides
// first; an argument with fewer dimensions binds the template to what is
// left of it.
func (r *resolver) combineTypeIntoTable(declared vague.DataType, t types.Type, pos token.Position, table map[vague.VariableID]types.Type) error {
	switch d := declared.(type) {
	case vague.TemplateParameter:
		prev, ok := table[d.Target]
		if !ok {
			table[d.Target] = t
			return nil
		}
		bct, err := types.Biggest(prev, t)
		if err != nil {
			return diag.ConflictingTemplateArgument(pos, t, r.src.Variable(d.Target).Definition, prev)
		}
		table[d.Target] = bct
	case vague.ArrayType:
		n := min(len(d.Sizes), types.Rank(t))
		return r.combineTypeIntoTable(d.Base, types.Unwrap(t, n), pos, table)
	}
	return nil
}

// applyTemplates stores the inferred types in the copied template
// parameters and rewrites the copy's declared types through them. Every
// template parameter must have been inferred.
func (r *resolver) applyTemplates(copied vague.ScopeID, env *Table, inferred map[vague.VariableID]types.Type, sig *signature) error {
	pending := set.New[vague.VariableID](len(inferred))
	s := r.src.Scope(copied)
	for _, name := range s.SymbolNames() {
		id := s.Symbols[name]
		v := r.src.Variable(id)
		if v.Permanent && vague.DataTypesEqual(v.DataType, vague.MetaType) && vague.IsUnknown(v.InitialValue) {
			pending.Insert(id)
		}
	}

	for tmpl, t := range inferred {
		id := env.Convert(tmpl)
		r.src.Variable(id).SetValue(vague.TypeValue{Type: vague.FromConcrete(t)})
		pending.Remove(id)
	}
	if !pending.Empty() {
		names := make([]string, 0, pending.Size())
		for _, id := range pending.Slice() {
			names = append(names, r.src.Variable(id).Name)
		}
		return diag.UnresolvedTemplate(sig.call.Position, slices.Min(names))
	}

	r.src.ResolveDynamicDataTypes(copied, env.Convert)
	return nil
}
