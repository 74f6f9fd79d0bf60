package resolved

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/types"
)

func TestTypeOf(t *testing.T) {
	p := NewProgram()
	grid := p.AdoptVariable(&Variable{Name: "grid", Type: types.NewArray(types.F, 4, 3), Scope: p.EntryPoint})

	tests := []struct {
		name     string
		expr     Expression
		expected types.Type
	}{
		{"int literal", &Literal{Value: Int(1)}, types.I},
		{"array literal", &Literal{Value: Array{Bool(true), Bool(false)}}, types.NewArray(types.B, 2)},
		{"variable", &VarRef{ID: grid}, types.NewArray(types.F, 4, 3)},
		{"row", &Access{Base: &VarRef{ID: grid}, Indexes: []Expression{&Literal{Value: Int(0)}}}, types.NewArray(types.F, 3)},
		{"element", &Access{Base: &VarRef{ID: grid}, Indexes: []Expression{&Literal{Value: Int(0)}, &Literal{Value: Int(1)}}}, types.F},
		{"comparison", &BinaryOperation{Left: &Literal{Value: Int(1)}, Op: LessThan, Right: &Literal{Value: Int(2)}, Type: types.B}, types.B},
		{"inflate", &Inflate{Value: &Literal{Value: Int(1)}, From: types.I, To: types.NewArray(types.I, 5)}, types.NewArray(types.I, 5)},
		{"collect", &Collect{Items: []Expression{&VarRef{ID: grid}, &VarRef{ID: grid}}}, types.NewArray(types.F, 2, 4, 3)},
		{"assign", &Assign{Target: &VarRef{ID: grid}, Value: &VarRef{ID: grid}}, types.V},
		{"call", &FuncCall{Body: p.EntryPoint}, types.V},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.TypeOf(tt.expr)
			require.True(t, types.Equal(tt.expected, got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestAdoptVariable(t *testing.T) {
	p := NewProgram()
	body := p.CreateScope("$f$Int", p.EntryPoint)
	id := p.AdoptVariable(&Variable{Name: "x", Type: types.I, Scope: body})
	require.Equal(t, []VariableID{id}, p.Scope(body).Variables)
	require.Empty(t, p.Scope(p.EntryPoint).Variables)

	require.Panics(t, func() {
		p.AdoptVariable(&Variable{Name: "f", Type: types.FuncType, Scope: body})
	})
	require.Panics(t, func() { p.Scope(42) })
}

func TestOperatorFor(t *testing.T) {
	op, ok := OperatorFor("bxor")
	require.True(t, ok)
	require.Equal(t, BXor, op)
	_, ok = OperatorFor("<>")
	require.False(t, ok)
}

func TestDumpSkipsUncalledScopes(t *testing.T) {
	p := NewProgram()
	x := p.AdoptVariable(&Variable{Name: "x", Type: types.I, Scope: p.EntryPoint})
	p.Outputs = []VariableID{x}

	called := p.CreateScope("$f$Int", p.EntryPoint)
	p.CreateScope("$g$Int", p.EntryPoint)
	y := p.AdoptVariable(&Variable{Name: "y", Type: types.I, Scope: called})
	p.AddStatement(called, &Assign{Target: &VarRef{ID: y}, Value: &Literal{Value: Int(3)}})
	p.AddStatement(p.EntryPoint, &FuncCall{Body: called})
	p.AddStatement(p.EntryPoint, &Assign{Target: &VarRef{ID: x}, Value: &VarRef{ID: y}})

	out := p.String()
	assert.Contains(t, out, "s0 main:\n  outputs: v0\n  v0 x: Int\n  call s1\n  v0 = v1\n")
	assert.Contains(t, out, "s1 $f$Int:\n  v1 y: Int\n  v1 = 3\n")
	assert.NotContains(t, out, "$g$Int")
}
