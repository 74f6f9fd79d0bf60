// Package structure turns a parsed program into a vague program: names are
// bound to variable ids, declared types are converted and statements are
// lowered to vague expressions.
package structure

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/thiremani/waveguide/ast"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/vague"
)

type ingester struct {
	p *vague.Program
	// templates holds the template parameters visible from the function
	// being ingested, including those of enclosing functions.
	templates *set.Set[vague.VariableID]
	inFunc    bool
}

// Ingest builds a vague program from program. It stops at the first problem.
func Ingest(program *ast.Program) (*vague.Program, error) {
	in := &ingester{
		p:         vague.NewProgram(),
		templates: set.New[vague.VariableID](0),
	}
	if err := in.block(in.p.EntryPoint, program.Statements); err != nil {
		return nil, err
	}
	return in.p, nil
}

// block ingests statements into scope. Functions are defined before any
// other statement so they can be called before their declaration and from
// their own bodies.
func (in *ingester) block(scope vague.ScopeID, stmts []ast.Statement) error {
	bodies := map[*ast.FuncStatement]vague.ScopeID{}
	for _, stmt := range stmts {
		fs, ok := stmt.(*ast.FuncStatement)
		if !ok {
			continue
		}
		body, err := in.declareFunc(scope, fs)
		if err != nil {
			return err
		}
		bodies[fs] = body
	}

	for _, stmt := range stmts {
		var err error
		switch s := stmt.(type) {
		case *ast.FuncStatement:
			err = in.funcBody(bodies[s], s)
		case *ast.VarStatement:
			err = in.varStatement(scope, s)
		case *ast.IOStatement:
			err = in.ioStatement(scope, s)
		case *ast.AssignStatement:
			err = in.assignStatement(scope, s)
		case *ast.ExpressionStatement:
			var expr vague.Expression
			expr, err = in.expression(scope, s.Expression)
			if err == nil {
				in.p.AddStatement(scope, expr)
			}
		case *ast.ReturnStatement:
			if !in.inFunc {
				return diag.ReturnFromRoot(s.Token.Pos)
			}
			in.p.AddStatement(scope, &vague.Return{Position: s.Token.Pos})
		case *ast.IfStatement:
			err = in.ifStatement(scope, s)
		case *ast.WhileStatement:
			err = in.whileStatement(scope, s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// define binds name in scope, rejecting a second definition in the same
// scope. Names in enclosing scopes may be shadowed.
func (in *ingester) define(scope vague.ScopeID, name *ast.Identifier, v *vague.Variable) (vague.VariableID, error) {
	if prev, ok := in.p.Scope(scope).Symbols[name.Value]; ok {
		return 0, diag.Redefinition(name.Token.Pos, in.p.Variable(prev).Definition, name.Value)
	}
	return in.p.AdoptAndDefineSymbol(scope, name.Value, v), nil
}

func (in *ingester) declareFunc(scope vague.ScopeID, fs *ast.FuncStatement) (vague.ScopeID, error) {
	body := in.p.CreateChildScope(scope)
	fn := vague.FunctionValue{Body: body, Name: fs.Name.Value, Header: ast.Span(fs.Name)}
	if _, err := in.define(scope, fs.Name, vague.NewFunctionVariable(fn.Header, fn)); err != nil {
		return 0, err
	}
	return body, nil
}

func (in *ingester) funcBody(body vague.ScopeID, fs *ast.FuncStatement) error {
	outerTemplates, outerInFunc := in.templates, in.inFunc
	defer func() { in.templates, in.inFunc = outerTemplates, outerInFunc }()
	in.templates = outerTemplates.Copy()
	in.inFunc = true

	for _, tmpl := range fs.Templates {
		id, err := in.define(body, tmpl, vague.NewTemplateParameter(tmpl.Token.Pos))
		if err != nil {
			return err
		}
		in.templates.Insert(id)
	}

	s := in.p.Scope(body)
	for _, param := range fs.Inputs {
		id, err := in.param(body, param)
		if err != nil {
			return err
		}
		s.Inputs = append(s.Inputs, id)
	}
	for _, param := range fs.Outputs {
		id, err := in.param(body, param)
		if err != nil {
			return err
		}
		s.Outputs = append(s.Outputs, id)
	}
	return in.block(body, fs.Body.Statements)
}

func (in *ingester) param(body vague.ScopeID, param *ast.Param) (vague.VariableID, error) {
	dt, err := in.dataType(body, param.Type)
	if err != nil {
		return 0, err
	}
	return in.define(body, param.Name, vague.NewVariable(ast.Span(param), dt))
}

func (in *ingester) varStatement(scope vague.ScopeID, vs *ast.VarStatement) error {
	dt, err := in.dataType(scope, vs.Type)
	if err != nil {
		return err
	}
	for i, name := range vs.Names {
		// The initializer is evaluated before the name is visible.
		var value vague.Expression
		if vs.Values[i] != nil {
			if value, err = in.expression(scope, vs.Values[i]); err != nil {
				return err
			}
		}
		id, err := in.define(scope, name, vague.NewVariable(name.Token.Pos, dt))
		if err != nil {
			return err
		}
		if value == nil {
			continue
		}
		in.p.AddStatement(scope, &vague.Assign{
			Target:   &vague.VarRef{ID: id, Position: name.Token.Pos},
			Value:    value,
			Position: name.Token.Pos.Include(value.Pos()),
		})
	}
	return nil
}

func (in *ingester) ioStatement(scope vague.ScopeID, is *ast.IOStatement) error {
	if scope != in.p.EntryPoint {
		return diag.IOInFunction(is.Token.Pos)
	}
	dt, err := in.dataType(scope, is.Type)
	if err != nil {
		return err
	}
	s := in.p.Scope(scope)
	for _, name := range is.Names {
		id, err := in.define(scope, name, vague.NewVariable(name.Token.Pos, dt))
		if err != nil {
			return err
		}
		if is.IsInput() {
			s.Inputs = append(s.Inputs, id)
		} else {
			s.Outputs = append(s.Outputs, id)
		}
	}
	return nil
}

func (in *ingester) assignStatement(scope vague.ScopeID, as *ast.AssignStatement) error {
	target, err := in.expression(scope, as.Target)
	if err != nil {
		return err
	}
	value, err := in.expression(scope, as.Value)
	if err != nil {
		return err
	}
	in.p.AddStatement(scope, &vague.Assign{Target: target, Value: value, Position: ast.Span(as)})
	return nil
}

func (in *ingester) ifStatement(scope vague.ScopeID, is *ast.IfStatement) error {
	cond, err := in.expression(scope, is.Condition)
	if err != nil {
		return err
	}
	branch := &vague.Branch{
		Condition: cond,
		Body:      in.p.CreateChildScope(scope),
		Else:      vague.NoScope,
		Position:  is.Token.Pos,
	}
	if err := in.block(branch.Body, is.Consequence.Statements); err != nil {
		return err
	}
	if is.Alternative != nil {
		branch.Else = in.p.CreateChildScope(scope)
		if err := in.block(branch.Else, is.Alternative.Statements); err != nil {
			return err
		}
	}
	in.p.AddStatement(scope, branch)
	return nil
}

func (in *ingester) whileStatement(scope vague.ScopeID, ws *ast.WhileStatement) error {
	cond, err := in.expression(scope, ws.Condition)
	if err != nil {
		return err
	}
	loop := &vague.WhileLoop{Condition: cond, Body: in.p.CreateChildScope(scope), Position: ws.Token.Pos}
	if err := in.block(loop.Body, ws.Body.Statements); err != nil {
		return err
	}
	in.p.AddStatement(scope, loop)
	return nil
}

// dataType converts a written type. Names of known types are inlined,
// template parameters become TemplateParameter and any other type-valued
// variable becomes Dynamic.
func (in *ingester) dataType(scope vague.ScopeID, te ast.TypeExpr) (vague.DataType, error) {
	switch t := te.(type) {
	case *ast.NamedType:
		id, err := in.p.LookupSymbol(scope, t.Name, t.Token.Pos)
		if err != nil {
			return nil, err
		}
		if in.templates.Contains(id) {
			return vague.TemplateParameter{Target: id}, nil
		}
		v := in.p.Variable(id)
		if !vague.DataTypesEqual(v.DataType, vague.MetaType) {
			return nil, diag.NotAType(t.Token.Pos, t.Name)
		}
		if tv, ok := v.InitialValue.(vague.TypeValue); ok && v.Permanent {
			return tv.Type, nil
		}
		return vague.Dynamic{Target: id}, nil
	case *ast.ArrayType:
		size, err := in.expression(scope, t.Size)
		if err != nil {
			return nil, err
		}
		elem, err := in.dataType(scope, t.Elem)
		if err != nil {
			return nil, err
		}
		sizes := []vague.Expression{size}
		if arr, ok := elem.(vague.ArrayType); ok {
			return vague.ArrayType{Base: arr.Base, Sizes: append(sizes, arr.Sizes...)}, nil
		}
		return vague.ArrayType{Base: elem, Sizes: sizes}, nil
	}
	panic("unknown type expression")
}

func (in *ingester) expression(scope vague.ScopeID, e ast.Expression) (vague.Expression, error) {
	pos := ast.Span(e)
	switch e := e.(type) {
	case *ast.Identifier:
		id, err := in.p.LookupSymbol(scope, e.Value, pos)
		if err != nil {
			return nil, err
		}
		return &vague.VarRef{ID: id, Position: pos}, nil
	case *ast.IntegerLiteral:
		return &vague.Literal{Value: vague.Int(e.Value), Position: pos}, nil
	case *ast.FloatLiteral:
		return &vague.Literal{Value: vague.Float(e.Value), Position: pos}, nil
	case *ast.BooleanLiteral:
		return &vague.Literal{Value: vague.Bool(e.Value), Position: pos}, nil
	case *ast.ArrayLiteral:
		items, err := in.expressions(scope, e.Elements)
		if err != nil {
			return nil, err
		}
		return &vague.Collect{Items: items, Position: pos}, nil
	case *ast.InfixExpression:
		return in.infix(scope, e, pos)
	case *ast.IndexExpression:
		return in.index(scope, e, pos)
	case *ast.CallExpression:
		return in.call(scope, e, pos)
	case *ast.InlineReturn:
		return nil, diag.Syntax(pos, "inline can only be used in the output list of a call")
	}
	panic("unknown expression node")
}

func (in *ingester) expressions(scope vague.ScopeID, exprs []ast.Expression) ([]vague.Expression, error) {
	out := make([]vague.Expression, 0, len(exprs))
	for _, e := range exprs {
		ve, err := in.expression(scope, e)
		if err != nil {
			return nil, err
		}
		out = append(out, ve)
	}
	return out, nil
}

func (in *ingester) infix(scope vague.ScopeID, e *ast.InfixExpression, pos token.Position) (vague.Expression, error) {
	op, ok := vague.OperatorFor(e.Operator)
	if !ok {
		return nil, diag.Syntax(e.Token.Pos, "unknown operator %s", e.Operator)
	}
	left, err := in.expression(scope, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.expression(scope, e.Right)
	if err != nil {
		return nil, err
	}
	return &vague.BinaryOperation{Left: left, Op: op, Right: right, Position: pos}, nil
}

// index flattens a[i][j] into a single access with indexes i, j.
func (in *ingester) index(scope vague.ScopeID, e *ast.IndexExpression, pos token.Position) (vague.Expression, error) {
	base, err := in.expression(scope, e.Left)
	if err != nil {
		return nil, err
	}
	indexes, err := in.expressions(scope, e.Indexes)
	if err != nil {
		return nil, err
	}
	if inner, ok := base.(*vague.Access); ok {
		return &vague.Access{Base: inner.Base, Indexes: append(inner.Indexes, indexes...), Position: pos}, nil
	}
	return &vague.Access{Base: base, Indexes: indexes, Position: pos}, nil
}

func (in *ingester) call(scope vague.ScopeID, e *ast.CallExpression, pos token.Position) (vague.Expression, error) {
	fn, err := in.expression(scope, e.Function)
	if err != nil {
		return nil, err
	}
	inputs, err := in.expressions(scope, e.Inputs)
	if err != nil {
		return nil, err
	}
	call := &vague.FuncCall{Function: fn, Inputs: inputs, Position: pos}
	if e.Outputs == nil {
		return call, nil
	}
	call.Outputs = make([]vague.Expression, 0, len(e.Outputs))
	for _, out := range e.Outputs {
		if ir, ok := out.(*ast.InlineReturn); ok {
			call.Outputs = append(call.Outputs, &vague.InlineReturn{Position: ir.Token.Pos})
			continue
		}
		target, err := in.expression(scope, out)
		if err != nil {
			return nil, err
		}
		call.Outputs = append(call.Outputs, target)
	}
	return call, nil
}
