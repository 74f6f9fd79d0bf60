package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/ast"
	"github.com/thiremani/waveguide/lexer"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New("parser_test", input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors for %q", input)
	return program
}

func testIntegerLiteral(t *testing.T, exp ast.Expression, value int64) {
	t.Helper()
	integ, ok := exp.(*ast.IntegerLiteral)
	require.True(t, ok, "exp not *ast.IntegerLiteral. got=%T", exp)
	require.Equal(t, value, integ.Value)
}

func testIdentifier(t *testing.T, exp ast.Expression, value string) {
	t.Helper()
	ident, ok := exp.(*ast.Identifier)
	require.True(t, ok, "exp not *ast.Identifier. got=%T", exp)
	require.Equal(t, value, ident.Value)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c;", "(a + (b * c));"},
		{"a * b + c;", "((a * b) + c);"},
		{"a - b - c;", "((a - b) - c);"},
		{"a ** b ** c;", "(a ** (b ** c));"},
		{"a ** b * c;", "((a ** b) * c);"},
		{"a // b % c;", "((a // b) % c);"},
		{"a + b < c * d;", "((a + b) < (c * d));"},
		{"a < b == c >= d;", "((a < b) == (c >= d));"},
		{"a == b band c;", "((a == b) band c);"},
		{"a band b bxor c bor d;", "(((a band b) bxor c) bor d);"},
		{"a bor b and c;", "((a bor b) and c);"},
		{"a and b xor c or d;", "(((a and b) xor c) or d);"},
		{"(a + b) * c;", "((a + b) * c);"},
		{"f(a + b, c)[1] * 2;", "(f((a + b), c)[1] * 2);"},
		{"a[i, j] + [1, 2][0];", "(a[i, j] + [1, 2][0]);"},
		{"-3 + -1.5;", "(-3 + -1.5);"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := mustParse(t, tt.input)
			require.Len(t, program.Statements, 1)
			require.Equal(t, tt.expected, program.Statements[0].String())
		})
	}
}

func TestVarStatement(t *testing.T) {
	program := mustParse(t, "Int a = 12;\n[4][n]Float grid;\nAuto x, y = 2;")
	require.Len(t, program.Statements, 3)

	first, ok := program.Statements[0].(*ast.VarStatement)
	require.True(t, ok)
	require.Equal(t, "Int", first.Type.String())
	require.Len(t, first.Names, 1)
	testIntegerLiteral(t, first.Values[0], 12)

	grid := program.Statements[1].(*ast.VarStatement)
	at, ok := grid.Type.(*ast.ArrayType)
	require.True(t, ok)
	testIntegerLiteral(t, at.Size, 4)
	inner, ok := at.Elem.(*ast.ArrayType)
	require.True(t, ok)
	testIdentifier(t, inner.Size, "n")
	require.Equal(t, "Float", inner.Elem.String())
	require.Nil(t, grid.Values[0])

	multi := program.Statements[2].(*ast.VarStatement)
	require.Len(t, multi.Names, 2)
	require.Nil(t, multi.Values[0])
	testIntegerLiteral(t, multi.Values[1], 2)
}

func TestFuncStatement(t *testing.T) {
	program := mustParse(t, `fn add<T>(T a, T b):(T out) {
    out = a + b;
    return;
}
fn noop { }`)
	require.Len(t, program.Statements, 2)

	fn, ok := program.Statements[0].(*ast.FuncStatement)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Value)
	require.Len(t, fn.Templates, 1)
	require.Equal(t, "T", fn.Templates[0].Value)
	require.Len(t, fn.Inputs, 2)
	require.Equal(t, "T a", fn.Inputs[0].String())
	require.Len(t, fn.Outputs, 1)
	require.Equal(t, "out", fn.Outputs[0].Name.Value)
	require.Len(t, fn.Body.Statements, 2)
	_, ok = fn.Body.Statements[1].(*ast.ReturnStatement)
	require.True(t, ok)

	noop := program.Statements[1].(*ast.FuncStatement)
	require.Empty(t, noop.Inputs)
	require.Empty(t, noop.Outputs)
	require.Empty(t, noop.Body.Statements)
}

func TestCallOutputs(t *testing.T) {
	program := mustParse(t, "f(1, x):(a[0], inline) + 1;\ng(2);\nh():();")
	require.Len(t, program.Statements, 3)

	infix := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.InfixExpression)
	call, ok := infix.Left.(*ast.CallExpression)
	require.True(t, ok)
	require.Len(t, call.Inputs, 2)
	require.Len(t, call.Outputs, 2)
	_, ok = call.Outputs[1].(*ast.InlineReturn)
	require.True(t, ok)
	require.Equal(t, "f(1, x):(a[0], inline)", call.String())

	omitted := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	require.Nil(t, omitted.Outputs)

	empty := program.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	require.NotNil(t, empty.Outputs)
	require.Empty(t, empty.Outputs)
}

func TestAssignAndControlFlow(t *testing.T) {
	program := mustParse(t, `input Int i;
output [3]Int a;
a[i] = 5;
if i < 2 { a[0] = 1; } else if i < 3 { a[1] = 1; } else { a[2] = 1; }
while false { }`)
	require.Len(t, program.Statements, 5)

	io := program.Statements[0].(*ast.IOStatement)
	require.True(t, io.IsInput())
	require.False(t, program.Statements[1].(*ast.IOStatement).IsInput())

	assign := program.Statements[2].(*ast.AssignStatement)
	require.Equal(t, "a[i] = 5;", assign.String())

	ifs := program.Statements[3].(*ast.IfStatement)
	require.NotNil(t, ifs.Alternative)
	_, ok := ifs.Alternative.Statements[0].(*ast.IfStatement)
	require.True(t, ok)

	_, ok = program.Statements[4].(*ast.WhileStatement)
	require.True(t, ok)
}

func TestSpan(t *testing.T) {
	program := mustParse(t, "b = foo(1, 2) + 3;")
	assign := program.Statements[0].(*ast.AssignStatement)
	span := ast.Span(assign.Value)
	require.Equal(t, 4, span.Start)
	require.Equal(t, 17, span.End)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"a = ;", "unexpected"},
		{"1 = 2;", "cannot assign"},
		{"Int a", "expected next token to be ;"},
		{"f(1):(2);", "not assignable"},
		{"x = -y;", "negation is only supported"},
		{"fn f { a = 1;", "never closed"},
		{"a[] = 1;", "at least one index"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse("parser_test", tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}
