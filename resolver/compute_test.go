package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

func known(k vague.KnownData) result {
	return interpreted(k, typeOfKnown(k), token.Position{})
}

func TestFold(t *testing.T) {
	tests := []struct {
		op   vague.BinaryOperator
		a, b vague.KnownData
		want vague.KnownData
	}{
		{vague.Add, vague.Int(2), vague.Int(3), vague.Int(5)},
		{vague.Subtract, vague.Int(2), vague.Int(3), vague.Int(-1)},
		{vague.Multiply, vague.Float(1.5), vague.Float(2), vague.Float(3)},
		{vague.Divide, vague.Int(-7), vague.Int(2), vague.Int(-3)},
		{vague.IntDivide, vague.Int(-7), vague.Int(2), vague.Int(-4)},
		{vague.IntDivide, vague.Int(7), vague.Int(2), vague.Int(3)},
		{vague.IntDivide, vague.Float(-7), vague.Float(2), vague.Float(-4)},
		{vague.Modulo, vague.Int(-7), vague.Int(2), vague.Int(-1)},
		{vague.Modulo, vague.Float(7.5), vague.Float(2), vague.Float(1.5)},
		{vague.Power, vague.Int(3), vague.Int(4), vague.Int(81)},
		{vague.Power, vague.Float(2), vague.Float(0.5), vague.Float(1.4142135623730951)},
		{vague.LessThan, vague.Int(1), vague.Int(2), vague.Bool(true)},
		{vague.GreaterThanOrEqual, vague.Float(1), vague.Float(2), vague.Bool(false)},
		{vague.NotEquals, vague.Bool(true), vague.Bool(false), vague.Bool(true)},
		{vague.BAnd, vague.Int(0b1100), vague.Int(0b1010), vague.Int(0b1000)},
		{vague.BXor, vague.Int(0b1100), vague.Int(0b1010), vague.Int(0b0110)},
		{vague.BOr, vague.Int(0b1100), vague.Int(0b1010), vague.Int(0b1110)},
		{vague.And, vague.Bool(true), vague.Bool(false), vague.Bool(false)},
		{vague.Xor, vague.Bool(true), vague.Bool(true), vague.Bool(false)},
		{vague.Or, vague.Bool(true), vague.Bool(false), vague.Bool(true)},
		{vague.Add, vague.Array{vague.Int(1), vague.Int(2)}, vague.Array{vague.Int(10), vague.Int(20)}, vague.Array{vague.Int(11), vague.Int(22)}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, ok := fold(tt.op, tt.a, tt.b)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoldLeavesUndefinedToRuntime(t *testing.T) {
	for _, op := range []vague.BinaryOperator{vague.Divide, vague.IntDivide, vague.Modulo} {
		_, ok := fold(op, vague.Int(1), vague.Int(0))
		assert.False(t, ok, op.String())
	}
	_, ok := fold(vague.Power, vague.Int(2), vague.Int(-1))
	assert.False(t, ok)

	// One bad element keeps the whole array residual.
	_, ok = fold(vague.Divide, vague.Array{vague.Int(1), vague.Int(2)}, vague.Array{vague.Int(1), vague.Int(0)})
	assert.False(t, ok)
}

func TestIntsWrap(t *testing.T) {
	got, ok := fold(vague.Add, vague.Int(1<<63-1), vague.Int(1))
	require.True(t, ok)
	assert.Equal(t, vague.Int(-1<<63), got)
	assert.Equal(t, int64(0), intPow(2, 64))
}

func TestBinaryBroadcasts(t *testing.T) {
	res, err := binary(vague.Multiply, known(vague.Array{vague.Int(1), vague.Int(2), vague.Int(3)}), known(vague.Int(2)), token.Position{})
	require.NoError(t, err)
	assert.Equal(t, vague.Array{vague.Int(2), vague.Int(4), vague.Int(6)}, res.value)
	assert.Equal(t, types.NewArray(types.I, 3), res.typ)

	res, err = binary(vague.LessThan, known(vague.Array{vague.Int(1)}), known(vague.Array{vague.Int(0), vague.Int(5)}), token.Position{})
	require.NoError(t, err)
	assert.Equal(t, vague.Array{vague.Bool(false), vague.Bool(true)}, res.value)
	assert.Equal(t, types.NewArray(types.B, 2), res.typ)
}

func TestBinaryResidual(t *testing.T) {
	runtime := modified(&resolved.VarRef{ID: 0}, types.I, token.Position{})
	res, err := binary(vague.Add, runtime, known(vague.Int(1)), token.Position{})
	require.NoError(t, err)
	require.False(t, res.known())
	assert.Equal(t, "(v0 + 1)", res.expr.String())

	res, err = binary(vague.Modulo, known(vague.Int(1)), known(vague.Int(0)), token.Position{})
	require.NoError(t, err)
	assert.Equal(t, "(1 % 0)", res.expr.String())

	res, err = binary(vague.Add, known(vague.Array{vague.Int(1), vague.Int(2)}), runtime, token.Position{})
	require.NoError(t, err)
	assert.Equal(t, "([1, 2] + inflate(v0, Int -> [2]Int))", res.expr.String())
	assert.Equal(t, types.NewArray(types.I, 2), res.typ)
}

func TestBinaryErrors(t *testing.T) {
	tests := []struct {
		name        string
		op          vague.BinaryOperator
		left, right vague.KnownData
	}{
		{"no common type", vague.Add, vague.Int(1), vague.Float(1)},
		{"mismatched lengths", vague.Add, vague.Array{vague.Int(1), vague.Int(2)}, vague.Array{vague.Int(1), vague.Int(2), vague.Int(3)}},
		{"arithmetic on bools", vague.Add, vague.Bool(true), vague.Bool(false)},
		{"logic on ints", vague.And, vague.Int(1), vague.Int(1)},
		{"bits on floats", vague.BOr, vague.Float(1), vague.Float(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binary(tt.op, known(tt.left), known(tt.right), token.Position{})
			var problem *diag.Problem
			require.True(t, errors.As(err, &problem))
			assert.Equal(t, diag.TypeMismatch, problem.Kind)
		})
	}
}

func TestCompareConstants(t *testing.T) {
	intType := known(vague.TypeValue{Type: vague.IntType})
	res, err := binary(vague.Equals, intType, known(vague.TypeValue{Type: vague.IntType}), token.Position{})
	require.NoError(t, err)
	assert.Equal(t, vague.Bool(true), res.value)

	res, err = binary(vague.NotEquals, intType, known(vague.TypeValue{Type: vague.FloatType}), token.Position{})
	require.NoError(t, err)
	assert.Equal(t, vague.Bool(true), res.value)

	_, err = binary(vague.Equals, intType, known(vague.Int(1)), token.Position{})
	require.Error(t, err)
}

func TestInflateValue(t *testing.T) {
	scalar := inflateValue(vague.Int(7), types.I, types.NewArray(types.I, 2, 3))
	assert.Equal(t, vague.Array{
		vague.Array{vague.Int(7), vague.Int(7), vague.Int(7)},
		vague.Array{vague.Int(7), vague.Int(7), vague.Int(7)},
	}, scalar)

	column := inflateValue(vague.Array{vague.Int(1)}, types.NewArray(types.I, 1), types.NewArray(types.I, 3))
	assert.Equal(t, vague.Array{vague.Int(1), vague.Int(1), vague.Int(1)}, column)

	rows := inflateValue(vague.Array{vague.Int(1), vague.Int(2)}, types.NewArray(types.I, 2), types.NewArray(types.I, 2, 2))
	// Dimensions line up outermost first.
	assert.Equal(t, vague.Array{
		vague.Array{vague.Int(1), vague.Int(1)},
		vague.Array{vague.Int(2), vague.Int(2)},
	}, rows)
}

func TestRuntimeExprRejectsCompileTimeValues(t *testing.T) {
	_, err := runtimeExpr(known(vague.TypeValue{Type: vague.IntType}))
	var problem *diag.Problem
	require.True(t, errors.As(err, &problem))
	assert.Equal(t, diag.NotRuntimeCompatible, problem.Kind)

	expr, err := runtimeExpr(known(vague.Array{vague.Float(0.5)}))
	require.NoError(t, err)
	assert.Equal(t, "[0.5]", expr.String())
}
