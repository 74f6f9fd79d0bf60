// Package resolver turns a vague program into a resolved one. It infers
// template parameters and pins Auto types, instantiates a fresh copy of a
// function body for every call, and folds everything known at compile time
// so that only run time work is left in the output.
package resolver

import (
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

const DefaultMaxDepth = 256

// Context configures one resolution pass.
type Context struct {
	// Fold tracks the compile-time values of mutable variables. Without it
	// only constants, types and functions are folded through variables.
	Fold bool
	// MaxDepth limits how deeply function instantiations may nest.
	MaxDepth int
}

func DefaultContext() Context {
	return Context{Fold: true, MaxDepth: DefaultMaxDepth}
}

type resolver struct {
	ctx Context
	src *vague.Program
	out *resolved.Program
	// runtime is the resolved variable backing each vague variable used at
	// run time. It is created on first use, in the scope given by homes.
	runtime map[vague.VariableID]resolved.VariableID
	homes   map[vague.VariableID]resolved.ScopeID
	// substitutes holds input parameters read straight from the caller's
	// run time variable. A write to the parameter drops the substitute, and
	// a write to the caller's variable copies its old value first.
	substitutes map[vague.VariableID]resolved.Expression
}

// frame is one scope being resolved: the conversion table in effect and the
// resolved scope receiving its statements.
type frame struct {
	env   *Table
	scope resolved.ScopeID
	depth int
}

// Resolve resolves the entry point of p. Temporary values are reset first,
// so a program can be resolved more than once. It stops at the first
// problem.
func Resolve(p *vague.Program, ctx Context) (*resolved.Program, error) {
	if ctx.MaxDepth <= 0 {
		ctx.MaxDepth = DefaultMaxDepth
	}
	p.ResetTemporaryValues()
	r := newResolver(p, ctx)
	root, entry := r.root()

	s := p.Scope(entry)
	for _, id := range s.Inputs {
		rid, err := r.ioVariable(id, root)
		if err != nil {
			return nil, err
		}
		r.out.Inputs = append(r.out.Inputs, rid)
	}
	for _, id := range s.Outputs {
		rid, err := r.ioVariable(id, root)
		if err != nil {
			return nil, err
		}
		r.out.Outputs = append(r.out.Outputs, rid)
	}

	for _, stmt := range p.Scope(p.EntryPoint).Body {
		if _, err := r.statement(stmt, root); err != nil {
			return nil, err
		}
	}

	// Outputs still holding compile-time values are written out at the end.
	for i, id := range s.Outputs {
		v := p.Variable(id)
		if vague.IsUnknown(v.TemporaryValue) {
			continue
		}
		rid := r.out.Outputs[i]
		value, err := runtimeExpr(interpreted(v.TemporaryValue, r.out.Variable(rid).Type, v.Definition))
		if err != nil {
			return nil, err
		}
		r.out.AddStatement(root.scope, &resolved.Assign{
			Target:   &resolved.VarRef{ID: rid, Position: v.Definition},
			Value:    value,
			Position: v.Definition,
		})
	}
	return r.out, nil
}

func newResolver(p *vague.Program, ctx Context) *resolver {
	return &resolver{
		ctx:         ctx,
		src:         p,
		out:         resolved.NewProgram(),
		runtime:     map[vague.VariableID]resolved.VariableID{},
		homes:       map[vague.VariableID]resolved.ScopeID{},
		substitutes: map[vague.VariableID]resolved.Expression{},
	}
}

// root copies the entry point and returns the frame resolving it.
func (r *resolver) root() (*frame, vague.ScopeID) {
	f := &frame{env: NewTable(), scope: r.out.EntryPoint}
	entry := CopyScope(r.src, f.env, r.src.EntryPoint)
	r.setHomes(entry, f.scope)
	return f, entry
}

func (r *resolver) setHomes(scope vague.ScopeID, home resolved.ScopeID) {
	for _, id := range scopeVariables(r.src, scope) {
		r.homes[id] = home
	}
}

func (r *resolver) ioVariable(id vague.VariableID, f *frame) (resolved.VariableID, error) {
	v := r.src.Variable(id)
	t, err := r.concreteType(v.DataType, f, v.Definition)
	if err != nil {
		return 0, err
	}
	if t.Kind() == types.AutomaticKind {
		return 0, diag.UnresolvedAutoVar(v.Definition, v.Definition)
	}
	if !types.IsRuntime(t) {
		return 0, diag.CompileTimeOnly(v.Definition, t)
	}
	return r.runtimeVar(id, t), nil
}

// runtimeVar returns the resolved variable backing id, creating it with
// type t on first use.
func (r *resolver) runtimeVar(id vague.VariableID, t types.Type) resolved.VariableID {
	if rid, ok := r.runtime[id]; ok {
		return rid
	}
	v := r.src.Variable(id)
	home, ok := r.homes[id]
	if !ok {
		home = r.out.EntryPoint
	}
	rid := r.out.AdoptVariable(&resolved.Variable{Definition: v.Definition, Name: v.Name, Type: t, Scope: home})
	r.runtime[id] = rid
	return rid
}

// concreteType evaluates a declared type in f: template parameters are
// followed and array sizes are simplified. Auto is returned as is.
func (r *resolver) concreteType(dt vague.DataType, f *frame, at token.Position) (types.Type, error) {
	dt = r.src.ResolveDynamicDataType(dt, f.env.Convert)
	switch d := dt.(type) {
	case vague.Basic:
		return d.Type, nil
	case vague.TemplateParameter:
		return nil, diag.UnresolvedTemplate(at, r.src.Variable(f.env.Convert(d.Target)).Name)
	case vague.Dynamic:
		return nil, diag.DynamicType(at, r.src.Variable(f.env.Convert(d.Target)).Name)
	case vague.ArrayType:
		base, err := r.concreteType(d.Base, f, at)
		if err != nil {
			return nil, err
		}
		if base.Kind() == types.AutomaticKind {
			return nil, diag.BadArraySize(at, "array items cannot have type Auto")
		}
		sizes := make([]int, len(d.Sizes))
		for i, size := range d.Sizes {
			n, err := r.arraySize(size, f)
			if err != nil {
				return nil, err
			}
			sizes[i] = n
		}
		return types.NewArray(base, sizes...), nil
	}
	panic("unknown data type")
}

func (r *resolver) arraySize(size vague.Expression, f *frame) (int, error) {
	res, err := r.simplify(size, f)
	if err != nil {
		return 0, err
	}
	n, ok := res.value.(vague.Int)
	if !res.known() || !ok {
		return 0, diag.BadArraySize(size.Pos(), "array sizes must be Int values known at compile time")
	}
	if n <= 0 {
		return 0, diag.BadArraySize(size.Pos(), "array sizes must be greater than zero")
	}
	return int(n), nil
}
