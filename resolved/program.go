// Package resolved is the program handed to lowering stages. Every variable
// has a concrete runtime type and every function call has been instantiated
// into its own scope.
package resolved

import (
	"fmt"

	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
)

type (
	ScopeID    int
	VariableID int
)

const NoScope ScopeID = -1

type Scope struct {
	// Name is the mangled signature of an instantiated function body, or
	// "main" for the entry point.
	Name      string
	Parent    ScopeID
	Variables []VariableID
	Body      []Expression
}

type Variable struct {
	Definition token.Position
	Name       string
	Type       types.Type
	Scope      ScopeID
}

type Program struct {
	scopes     []*Scope
	variables  []*Variable
	EntryPoint ScopeID
	Inputs     []VariableID
	Outputs    []VariableID
}

func NewProgram() *Program {
	p := &Program{}
	p.EntryPoint = p.CreateScope("main", NoScope)
	return p
}

func (p *Program) CreateScope(name string, parent ScopeID) ScopeID {
	p.scopes = append(p.scopes, &Scope{Name: name, Parent: parent})
	return ScopeID(len(p.scopes) - 1)
}

func (p *Program) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(p.scopes) {
		panic(fmt.Sprintf("resolved scope s%d does not exist", id))
	}
	return p.scopes[id]
}

func (p *Program) Variable(id VariableID) *Variable {
	if id < 0 || int(id) >= len(p.variables) {
		panic(fmt.Sprintf("resolved variable v%d does not exist", id))
	}
	return p.variables[id]
}

// AdoptVariable adds v to the arena and lists it in its scope.
func (p *Program) AdoptVariable(v *Variable) VariableID {
	if !types.IsRuntime(v.Type) {
		panic(fmt.Sprintf("variable %s has non-runtime type %s", v.Name, v.Type))
	}
	p.variables = append(p.variables, v)
	id := VariableID(len(p.variables) - 1)
	s := p.Scope(v.Scope)
	s.Variables = append(s.Variables, id)
	return id
}

func (p *Program) AddStatement(scope ScopeID, stmt Expression) {
	s := p.Scope(scope)
	s.Body = append(s.Body, stmt)
}

func (p *Program) NumScopes() int { return len(p.scopes) }
