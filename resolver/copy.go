package resolver

import (
	"github.com/thiremani/waveguide/vague"
)

// CopyScope clones every symbol and intermediate of source into a new scope
// with the same parent, recording each old id in env. Symbols are visited
// in name order so copies get the same ids on every run. The body is not
// copied; it is read from source and converted through env while it is
// resolved.
func CopyScope(p *vague.Program, env *Table, source vague.ScopeID) vague.ScopeID {
	src := p.Scope(source)
	var target vague.ScopeID
	if src.Parent == vague.NoScope {
		target = p.CreateScope()
	} else {
		target = p.CreateChildScope(src.Parent)
	}

	for _, name := range src.SymbolNames() {
		old := src.Symbols[name]
		env.Add(old, p.AdoptAndDefineSymbol(target, name, fresh(p.Variable(old))))
	}
	for _, old := range src.Intermediates {
		env.Add(old, p.AdoptAndDefineIntermediate(target, fresh(p.Variable(old))))
	}

	t := p.Scope(target)
	t.Inputs = convertAll(env, src.Inputs)
	t.Outputs = convertAll(env, src.Outputs)
	return target
}

func fresh(v *vague.Variable) *vague.Variable {
	cp := v.Clone()
	cp.TemporaryValue = cp.InitialValue
	return cp
}

func convertAll(env *Table, ids []vague.VariableID) []vague.VariableID {
	out := make([]vague.VariableID, len(ids))
	for i, id := range ids {
		out[i] = env.Convert(id)
	}
	return out
}

// scopeVariables lists the symbols of a scope in name order, followed by its
// intermediates.
func scopeVariables(p *vague.Program, scope vague.ScopeID) []vague.VariableID {
	s := p.Scope(scope)
	ids := make([]vague.VariableID, 0, len(s.Symbols)+len(s.Intermediates))
	for _, name := range s.SymbolNames() {
		ids = append(ids, s.Symbols[name])
	}
	return append(ids, s.Intermediates...)
}
