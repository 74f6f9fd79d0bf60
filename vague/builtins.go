package vague

import (
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
)

// addBuiltins defines the builtin types and one generic function per binary
// operator: op<T>(T a, T b):(Auto out).
func (p *Program) addBuiltins() {
	for _, name := range types.ReservedTypeNames() {
		t, _ := types.Lookup(name)
		p.builtins[name] = p.AdoptAndDefineSymbol(p.BuiltinScope, name, NewTypeVariable(token.Position{}, Basic{t}))
	}

	for _, op := range Operators() {
		body := p.CreateChildScope(p.BuiltinScope)
		t := p.AdoptAndDefineSymbol(body, "T", NewTemplateParameter(token.Position{}))
		a := p.AdoptAndDefineSymbol(body, "a", NewVariable(token.Position{}, TemplateParameter{Target: t}))
		b := p.AdoptAndDefineSymbol(body, "b", NewVariable(token.Position{}, TemplateParameter{Target: t}))
		out := p.AdoptAndDefineSymbol(body, "out", NewVariable(token.Position{}, AutomaticType))

		scope := p.Scope(body)
		scope.Inputs = []VariableID{a, b}
		scope.Outputs = []VariableID{out}

		fn := FunctionValue{Body: body, Builtin: op, Name: op.BuiltinName()}
		p.builtins[fn.Name] = p.AdoptAndDefineSymbol(p.BuiltinScope, fn.Name, NewFunctionVariable(token.Position{}, fn))
	}
}
