package vague

import (
	"github.com/hashicorp/go-set/v3"
)

// Identity is the conversion used outside of any instantiation.
func Identity(id VariableID) VariableID { return id }

// ResolveDynamicDataType follows Dynamic and TemplateParameter references
// through permanent variables whose value is a type, until the type is
// concrete or the chain ends at a variable without a value. Target ids are
// mapped through convert first. A cycle leaves the type as it was.
func (p *Program) ResolveDynamicDataType(dt DataType, convert func(VariableID) VariableID) DataType {
	return p.resolveDynamic(dt, convert, set.New[VariableID](4))
}

func (p *Program) resolveDynamic(dt DataType, convert func(VariableID) VariableID, seen *set.Set[VariableID]) DataType {
	switch d := dt.(type) {
	case Dynamic:
		return p.follow(d.Target, dt, convert, seen)
	case TemplateParameter:
		return p.follow(d.Target, dt, convert, seen)
	case ArrayType:
		return ArrayType{Base: p.resolveDynamic(d.Base, convert, seen), Sizes: d.Sizes}
	}
	return dt
}

func (p *Program) follow(target VariableID, original DataType, convert func(VariableID) VariableID, seen *set.Set[VariableID]) DataType {
	id := convert(target)
	if !seen.Insert(id) {
		return original
	}
	v := p.Variable(id)
	if !v.Permanent {
		return original
	}
	tv, ok := v.TemporaryValue.(TypeValue)
	if !ok {
		return original
	}
	return p.resolveDynamic(tv.Type, convert, seen)
}

// ResolveDynamicDataTypes rewrites the types of every variable defined in
// scope, and the values of type-valued constants, through
// ResolveDynamicDataType.
func (p *Program) ResolveDynamicDataTypes(scope ScopeID, convert func(VariableID) VariableID) {
	s := p.Scope(scope)
	ids := make([]VariableID, 0, len(s.Symbols)+len(s.Intermediates))
	for _, name := range s.SymbolNames() {
		ids = append(ids, s.Symbols[name])
	}
	ids = append(ids, s.Intermediates...)

	for _, id := range ids {
		v := p.Variable(id)
		v.DataType = p.ResolveDynamicDataType(v.DataType, convert)
		if !v.Permanent {
			continue
		}
		if tv, ok := v.TemporaryValue.(TypeValue); ok {
			v.SetValue(TypeValue{Type: p.ResolveDynamicDataType(tv.Type, convert)})
		}
	}
}
