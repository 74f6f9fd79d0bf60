package resolver

import (
	"fmt"
	"math"

	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/resolved"
	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
	"github.com/thiremani/waveguide/vague"
)

// binary combines two simplified operands. Both are widened to their BCT;
// known operands are folded and anything else becomes a BinaryOperation.
func binary(op vague.BinaryOperator, left, right result, pos token.Position) (result, error) {
	if (op == vague.Equals || op == vague.NotEquals) && (!types.IsRuntime(left.typ) || !types.IsRuntime(right.typ)) {
		return compareConstants(op, left, right, pos)
	}

	t, err := types.Biggest(left.typ, right.typ)
	if err != nil {
		return result{}, diag.NoBiggestCommonType(pos, left.pos, left.typ, right.pos, right.typ)
	}
	resultType, ok := operatorType(op, t)
	if !ok {
		return result{}, diag.InvalidOperator(pos, op.String(), t)
	}

	left, right = inflate(left, t), inflate(right, t)
	if left.known() && right.known() {
		if value, ok := fold(op, left.value, right.value); ok {
			return interpreted(value, resultType, pos), nil
		}
	}

	l, err := runtimeExpr(left)
	if err != nil {
		return result{}, err
	}
	r, err := runtimeExpr(right)
	if err != nil {
		return result{}, err
	}
	return modified(&resolved.BinaryOperation{
		Left:     l,
		Op:       runtimeOperator(op),
		Right:    r,
		Type:     resultType,
		Position: pos,
	}, resultType, pos), nil
}

// compareConstants handles == and != on types and functions, which only
// exist at compile time.
func compareConstants(op vague.BinaryOperator, left, right result, pos token.Position) (result, error) {
	if !types.Equal(left.typ, right.typ) {
		return result{}, diag.NoBiggestCommonType(pos, left.pos, left.typ, right.pos, right.typ)
	}
	if !left.known() {
		return result{}, diag.CompileTimeOnly(left.pos, left.typ)
	}
	if !right.known() {
		return result{}, diag.CompileTimeOnly(right.pos, right.typ)
	}
	eq := vague.Equal(left.value, right.value)
	if op == vague.NotEquals {
		eq = !eq
	}
	return interpreted(vague.Bool(eq), types.B, pos), nil
}

// operatorType returns the type op produces from operands of type t.
func operatorType(op vague.BinaryOperator, t types.Type) (types.Type, bool) {
	scalar := types.Scalar(t).Kind()
	toBool := func(types.Type) types.Type { return types.B }
	switch op {
	case vague.Add, vague.Subtract, vague.Multiply, vague.Divide, vague.IntDivide, vague.Modulo, vague.Power:
		return t, scalar == types.IntKind || scalar == types.FloatKind
	case vague.LessThan, vague.LessThanOrEqual, vague.GreaterThan, vague.GreaterThanOrEqual:
		return types.MapScalar(t, toBool), scalar == types.IntKind || scalar == types.FloatKind
	case vague.Equals, vague.NotEquals:
		return types.MapScalar(t, toBool), scalar == types.IntKind || scalar == types.FloatKind || scalar == types.BoolKind
	case vague.BAnd, vague.BXor, vague.BOr:
		return t, scalar == types.IntKind
	case vague.And, vague.Xor, vague.Or:
		return t, scalar == types.BoolKind
	}
	return nil, false
}

func runtimeOperator(op vague.BinaryOperator) resolved.BinaryOperator {
	rop, ok := resolved.OperatorFor(op.String())
	if !ok {
		panic(fmt.Sprintf("operator %s has no run time form", op))
	}
	return rop
}

// fold computes op on two values of the same shape, element by element for
// arrays. It reports false when the result is left to run time, e.g. an
// integer division by zero.
func fold(op vague.BinaryOperator, a, b vague.KnownData) (vague.KnownData, bool) {
	switch a := a.(type) {
	case vague.Array:
		bb := b.(vague.Array)
		out := make(vague.Array, len(a))
		for i := range a {
			v, ok := fold(op, a[i], bb[i])
			if !ok {
				return nil, false
			}
			out[i] = v
		}
		return out, true
	case vague.Int:
		return foldInt(op, int64(a), int64(b.(vague.Int)))
	case vague.Float:
		return foldFloat(op, float64(a), float64(b.(vague.Float)))
	case vague.Bool:
		return foldBool(op, bool(a), bool(b.(vague.Bool)))
	}
	return nil, false
}

func foldInt(op vague.BinaryOperator, a, b int64) (vague.KnownData, bool) {
	switch op {
	case vague.Add:
		return vague.Int(a + b), true
	case vague.Subtract:
		return vague.Int(a - b), true
	case vague.Multiply:
		return vague.Int(a * b), true
	case vague.Divide:
		if b == 0 {
			return nil, false
		}
		return vague.Int(a / b), true
	case vague.IntDivide:
		if b == 0 {
			return nil, false
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return vague.Int(q), true
	case vague.Modulo:
		if b == 0 {
			return nil, false
		}
		return vague.Int(a % b), true
	case vague.Power:
		if b < 0 {
			return nil, false
		}
		return vague.Int(intPow(a, b)), true
	case vague.LessThan:
		return vague.Bool(a < b), true
	case vague.LessThanOrEqual:
		return vague.Bool(a <= b), true
	case vague.GreaterThan:
		return vague.Bool(a > b), true
	case vague.GreaterThanOrEqual:
		return vague.Bool(a >= b), true
	case vague.Equals:
		return vague.Bool(a == b), true
	case vague.NotEquals:
		return vague.Bool(a != b), true
	case vague.BAnd:
		return vague.Int(a & b), true
	case vague.BXor:
		return vague.Int(a ^ b), true
	case vague.BOr:
		return vague.Int(a | b), true
	}
	return nil, false
}

// intPow wraps on overflow like the other integer operators.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func foldFloat(op vague.BinaryOperator, a, b float64) (vague.KnownData, bool) {
	switch op {
	case vague.Add:
		return vague.Float(a + b), true
	case vague.Subtract:
		return vague.Float(a - b), true
	case vague.Multiply:
		return vague.Float(a * b), true
	case vague.Divide:
		return vague.Float(a / b), true
	case vague.IntDivide:
		return vague.Float(math.Floor(a / b)), true
	case vague.Modulo:
		return vague.Float(math.Mod(a, b)), true
	case vague.Power:
		return vague.Float(math.Pow(a, b)), true
	case vague.LessThan:
		return vague.Bool(a < b), true
	case vague.LessThanOrEqual:
		return vague.Bool(a <= b), true
	case vague.GreaterThan:
		return vague.Bool(a > b), true
	case vague.GreaterThanOrEqual:
		return vague.Bool(a >= b), true
	case vague.Equals:
		return vague.Bool(a == b), true
	case vague.NotEquals:
		return vague.Bool(a != b), true
	}
	return nil, false
}

func foldBool(op vague.BinaryOperator, a, b bool) (vague.KnownData, bool) {
	switch op {
	case vague.Equals:
		return vague.Bool(a == b), true
	case vague.NotEquals, vague.Xor:
		return vague.Bool(a != b), true
	case vague.And:
		return vague.Bool(a && b), true
	case vague.Or:
		return vague.Bool(a || b), true
	}
	return nil, false
}
