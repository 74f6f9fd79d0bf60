package resolver

import (
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// signature is a call whose callee, arguments and output targets have been
// resolved in the caller.
type signature struct {
	call *vague.FuncCall
	fn   vague.FunctionValue
	args []result
	// targets has one entry per output; it is nil for the inline output.
	targets []*place
	inline  int
}

// call resolves a function call. With wantValue the call must have an
// inline output, which becomes its value; otherwise the result is Void
// unless an inline output was requested anyway.
func (r *resolver) call(e *vague.FuncCall, f *frame, wantValue bool) (result, error) {
	fn, err := r.callee(e.Function, f)
	if err != nil {
		return result{}, err
	}
	body := r.src.Scope(fn.Body)
	if len(e.Inputs) != len(body.Inputs) {
		return result{}, diag.WrongNumberOfInputs(e.Position, fn.Header, len(e.Inputs), len(body.Inputs))
	}
	outputs := e.Outputs
	if outputs == nil {
		switch len(body.Outputs) {
		case 0:
		case 1:
			outputs = []vague.Expression{&vague.InlineReturn{Position: e.Position}}
		default:
			return result{}, diag.WrongNumberOfOutputs(e.Position, fn.Header, 0, len(body.Outputs))
		}
	}
	if len(outputs) != len(body.Outputs) {
		return result{}, diag.WrongNumberOfOutputs(e.Position, fn.Header, len(outputs), len(body.Outputs))
	}

	sig := &signature{call: e, fn: fn, inline: -1}
	for _, in := range e.Inputs {
		arg, err := r.simplify(in, f)
		if err != nil {
			return result{}, err
		}
		sig.args = append(sig.args, arg)
	}

	inlines := 0
	sig.targets = make([]*place, len(outputs))
	for i, out := range outputs {
		if _, ok := out.(*vague.InlineReturn); ok {
			sig.inline = i
			inlines++
			continue
		}
		pl, err := r.place(out, f)
		if err != nil {
			return result{}, err
		}
		sig.targets[i] = pl
	}
	if inlines > 1 {
		return result{}, diag.TooManyInlines(e.Position, inlines)
	}

	var res result
	if fn.Builtin != vague.OpNone {
		res, err = r.builtinCall(sig, f)
	} else {
		res, err = r.instantiate(sig, f)
	}
	if err != nil {
		return result{}, err
	}
	if wantValue && sig.inline < 0 {
		return result{}, diag.MissingInline(e.Position, fn.Header)
	}
	return res, nil
}

// callee simplifies the called expression, which must be a function known
// at compile time.
func (r *resolver) callee(e vague.Expression, f *frame) (vague.FunctionValue, error) {
	if ref, ok := e.(*vague.VarRef); ok {
		v := r.src.Variable(f.env.Convert(ref.ID))
		if !v.Permanent && vague.IsUnknown(v.TemporaryValue) {
			return vague.FunctionValue{}, diag.VagueFunction(ref.Position)
		}
	}
	res, err := r.simplify(e, f)
	if err != nil {
		return vague.FunctionValue{}, err
	}
	if !res.known() {
		return vague.FunctionValue{}, diag.VagueFunction(res.pos)
	}
	fn, ok := res.value.(vague.FunctionValue)
	if !ok {
		return vague.FunctionValue{}, diag.NotFunction(res.pos, res.typ)
	}
	return fn, nil
}

// builtinCall resolves a call to an operator function without copying its
// body: the operands are cast to the inferred template type and combined
// directly.
func (r *resolver) builtinCall(sig *signature, f *frame) (result, error) {
	body := r.src.Scope(sig.fn.Body)
	inferred, err := r.inferTemplates(body, sig)
	if err != nil {
		return result{}, err
	}
	tmpl := body.Symbols["T"]
	t, ok := inferred[tmpl]
	if !ok {
		return result{}, diag.UnresolvedTemplate(sig.call.Position, "T")
	}

	args := make([]result, len(sig.args))
	for i, arg := range sig.args {
		if !types.Widens(arg.typ, t) {
			return result{}, diag.IncompatibleArgument(arg.pos, arg.typ, sig.fn.Header, t)
		}
		args[i] = inflate(arg, t)
	}
	value, err := binary(sig.fn.Builtin, args[0], args[1], sig.call.Position)
	if err != nil {
		return result{}, err
	}
	if sig.inline == 0 {
		return value, nil
	}
	if err := r.store(sig.targets[0], value, f, sig.call.Position); err != nil {
		return result{}, err
	}
	return voidResult(sig.call.Position), nil
}

// instantiate resolves a call to a user function in a fresh copy of its
// body. The copy's statements go into a new resolved scope, which is called
// only if any of them are left after folding.
func (r *resolver) instantiate(sig *signature, f *frame) (result, error) {
	source := r.src.Scope(sig.fn.Body)
	inferred, err := r.inferTemplates(source, sig)
	if err != nil {
		return result{}, err
	}
	if f.depth+1 > r.ctx.MaxDepth {
		return result{}, diag.TooDeep(sig.call.Position, r.ctx.MaxDepth)
	}

	child := &frame{env: f.env.Child(), depth: f.depth + 1}
	copied := CopyScope(r.src, child.env, sig.fn.Body)
	if err := r.applyTemplates(copied, child.env, inferred, sig); err != nil {
		return result{}, err
	}

	child.scope = r.out.CreateScope(sig.fn.Name, f.scope)
	r.setHomes(copied, child.scope)
	s := r.src.Scope(copied)
	for _, out := range s.Outputs {
		r.homes[out] = f.scope
	}

	inputTypes := make([]types.Type, len(s.Inputs))
	for i, param := range s.Inputs {
		t, err := r.bindInput(param, sig.args[i], child)
		if err != nil {
			return result{}, err
		}
		inputTypes[i] = t
	}
	r.out.Scope(child.scope).Name = Mangle(sig.fn.Name, inputTypes)

	for _, stmt := range source.Body {
		returned, err := r.statement(stmt, child)
		if err != nil {
			return result{}, err
		}
		if returned {
			break
		}
	}
	if len(r.out.Scope(child.scope).Body) > 0 {
		r.out.AddStatement(f.scope, &resolved.FuncCall{Body: child.scope, Position: sig.call.Position})
	}

	// The body is done with its parameters.
	for _, param := range s.Inputs {
		delete(r.substitutes, param)
	}

	res := voidResult(sig.call.Position)
	for i, out := range s.Outputs {
		value, err := r.variable(out, child, sig.call.Position)
		if err != nil {
			return result{}, err
		}
		if i == sig.inline {
			res = value
			continue
		}
		if err := r.store(sig.targets[i], value, f, sig.call.Position); err != nil {
			return result{}, err
		}
	}
	return res, nil
}

// bindInput passes arg to the copied parameter param. Known values become
// the parameter's value; a run time variable is read in place until the
// body writes to the parameter or to that variable; anything else is
// assigned to it.
func (r *resolver) bindInput(param vague.VariableID, arg result, f *frame) (types.Type, error) {
	v := r.src.Variable(param)
	t, err := r.concreteType(v.DataType, f, v.Definition)
	if err != nil {
		return nil, err
	}
	if t.Kind() == types.AutomaticKind {
		v.DataType = vague.FromConcrete(arg.typ)
		t = arg.typ
	} else if !types.Widens(arg.typ, t) {
		return nil, diag.IncompatibleArgument(arg.pos, arg.typ, v.Definition, t)
	}
	arg = inflate(arg, t)

	if arg.known() && (r.ctx.Fold || !types.IsRuntime(t)) {
		v.TemporaryValue = arg.value
		return t, nil
	}
	if _, ok := arg.expr.(*resolved.VarRef); ok {
		r.substitutes[param] = arg.expr
		return t, nil
	}
	expr, err := runtimeExpr(arg)
	if err != nil {
		return nil, err
	}
	r.out.AddStatement(f.scope, &resolved.Assign{
		Target:   &resolved.VarRef{ID: r.runtimeVar(param, t), Position: v.Definition},
		Value:    expr,
		Position: arg.pos,
	})
	return t, nil
}
