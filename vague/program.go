// Package vague is the program representation produced from source: types
// may still be Auto or depend on template parameters, and functions are
// generic bodies that get instantiated per call site.
package vague

import (
	"fmt"
	"slices"

	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/token"
)

type (
	ScopeID    int
	VariableID int
)

// NoScope marks a missing parent or else branch.
const NoScope ScopeID = -1

type Scope struct {
	Parent        ScopeID
	Symbols       map[string]VariableID
	Intermediates []VariableID
	Inputs        []VariableID
	Outputs       []VariableID
	Body          []Expression
}

// SymbolNames returns the names defined directly in s, sorted.
func (s *Scope) SymbolNames() []string {
	names := make([]string, 0, len(s.Symbols))
	for name := range s.Symbols {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type Variable struct {
	Definition     token.Position
	Name           string
	DataType       DataType
	InitialValue   KnownData
	Permanent      bool
	TemporaryValue KnownData
}

func NewVariable(def token.Position, dt DataType) *Variable {
	return &Variable{
		Definition:     def,
		DataType:       dt,
		InitialValue:   Unknown{},
		TemporaryValue: Unknown{},
	}
}

// NewTypeVariable is a compile-time constant holding a type.
func NewTypeVariable(def token.Position, dt DataType) *Variable {
	return newConstant(def, MetaType, TypeValue{Type: dt})
}

// NewTemplateParameter is a type-valued constant whose value is supplied per
// instantiation.
func NewTemplateParameter(def token.Position) *Variable {
	return newConstant(def, MetaType, Unknown{})
}

func NewFunctionVariable(def token.Position, fn FunctionValue) *Variable {
	return newConstant(def, FunctionType, fn)
}

func newConstant(def token.Position, dt DataType, value KnownData) *Variable {
	return &Variable{
		Definition:     def,
		DataType:       dt,
		InitialValue:   value,
		Permanent:      true,
		TemporaryValue: value,
	}
}

// Clone copies v. Values are immutable so a shallow copy is enough.
func (v *Variable) Clone() *Variable {
	cp := *v
	return &cp
}

// SetValue sets both the initial and the temporary value.
func (v *Variable) SetValue(k KnownData) {
	v.InitialValue = k
	v.TemporaryValue = k
}

// Program is an arena of scopes and variables. Ids are indexes and are never
// reused.
type Program struct {
	scopes       []*Scope
	variables    []*Variable
	BuiltinScope ScopeID
	EntryPoint   ScopeID
	builtins     map[string]VariableID
}

// NewProgram creates a program with a builtin scope and an empty entry
// point scope nested in it.
func NewProgram() *Program {
	p := &Program{builtins: map[string]VariableID{}}
	p.BuiltinScope = p.CreateScope()
	p.addBuiltins()
	p.EntryPoint = p.CreateChildScope(p.BuiltinScope)
	return p
}

func (p *Program) CreateScope() ScopeID {
	return p.newScope(NoScope)
}

func (p *Program) CreateChildScope(parent ScopeID) ScopeID {
	p.Scope(parent)
	return p.newScope(parent)
}

func (p *Program) newScope(parent ScopeID) ScopeID {
	p.scopes = append(p.scopes, &Scope{
		Parent:  parent,
		Symbols: map[string]VariableID{},
	})
	return ScopeID(len(p.scopes) - 1)
}

func (p *Program) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(p.scopes) {
		panic(fmt.Sprintf("scope s%d does not exist", id))
	}
	return p.scopes[id]
}

func (p *Program) Variable(id VariableID) *Variable {
	if id < 0 || int(id) >= len(p.variables) {
		panic(fmt.Sprintf("variable v%d does not exist", id))
	}
	return p.variables[id]
}

func (p *Program) NumScopes() int { return len(p.scopes) }

// LookupSymbol walks from scope through its parents and returns the first
// variable called name.
func (p *Program) LookupSymbol(scope ScopeID, name string, at token.Position) (VariableID, error) {
	for s := scope; s != NoScope; s = p.Scope(s).Parent {
		if id, ok := p.Scope(s).Symbols[name]; ok {
			return id, nil
		}
	}
	return 0, diag.NoEntityWithName(at, name)
}

func (p *Program) AdoptVariable(v *Variable) VariableID {
	p.variables = append(p.variables, v)
	return VariableID(len(p.variables) - 1)
}

// AdoptAndDefineSymbol adds v and binds name to it in scope, replacing any
// previous binding of name in that scope.
func (p *Program) AdoptAndDefineSymbol(scope ScopeID, name string, v *Variable) VariableID {
	if v.Name == "" {
		v.Name = name
	}
	id := p.AdoptVariable(v)
	p.Scope(scope).Symbols[name] = id
	return id
}

func (p *Program) AdoptAndDefineIntermediate(scope ScopeID, v *Variable) VariableID {
	id := p.AdoptVariable(v)
	s := p.Scope(scope)
	s.Intermediates = append(s.Intermediates, id)
	return id
}

func (p *Program) AddStatement(scope ScopeID, stmt Expression) {
	s := p.Scope(scope)
	s.Body = append(s.Body, stmt)
}

// ResetTemporaryValues prepares the program for a new resolution pass.
func (p *Program) ResetTemporaryValues() {
	for _, v := range p.variables {
		v.TemporaryValue = v.InitialValue
	}
}

// Builtin returns the builtin variable called name. A missing builtin is a
// programming error.
func (p *Program) Builtin(name string) VariableID {
	id, ok := p.builtins[name]
	if !ok {
		panic(fmt.Sprintf("missing builtin %q", name))
	}
	return id
}
