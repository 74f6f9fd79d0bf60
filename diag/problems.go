package diag

import (
	"fmt"

	"github.com/thiremani/waveguide/token"
)

func Syntax(pos token.Position, format string, args ...any) *Problem {
	return New(SyntaxError, pos, fmt.Sprintf(format, args...))
}

func NoEntityWithName(pos token.Position, name string) *Problem {
	return New(UnresolvedName, pos, fmt.Sprintf("there is no entity named %q visible from here", name))
}

func Redefinition(pos, previous token.Position, name string) *Problem {
	return New(DuplicateName, pos, fmt.Sprintf("%q is already defined in this scope", name)).
		WithHint(previous, "previous definition is here")
}

func WrongNumberOfInputs(call, header token.Position, provided, expected int) *Problem {
	p := New(ArityMismatch, call, fmt.Sprintf("function call has %d input arguments but the function expects %d", provided, expected)).
		WithHint(header, "function is declared here")
	p.Expected, p.Provided = expected, provided
	return p
}

func WrongNumberOfOutputs(call, header token.Position, provided, expected int) *Problem {
	p := New(ArityMismatch, call, fmt.Sprintf("function call has %d output arguments but the function expects %d", provided, expected)).
		WithHint(header, "function is declared here")
	p.Expected, p.Provided = expected, provided
	return p
}

// NoBiggestCommonType reports two operands that cannot be widened to a
// shared type.
func NoBiggestCommonType(expr, left token.Position, leftType fmt.Stringer, right token.Position, rightType fmt.Stringer) *Problem {
	return New(TypeMismatch, expr, fmt.Sprintf("no common type exists between %s and %s", leftType, rightType)).
		WithHint(left, fmt.Sprintf("this operand has type %s", leftType)).
		WithHint(right, fmt.Sprintf("this operand has type %s", rightType))
}

func InvalidOperator(expr token.Position, op string, t fmt.Stringer) *Problem {
	return New(TypeMismatch, expr, fmt.Sprintf("operator %s cannot be applied to values of type %s", op, t))
}

func MismatchedAssign(stmt, target token.Position, targetType fmt.Stringer, value token.Position, valueType fmt.Stringer) *Problem {
	return New(TypeMismatch, stmt, fmt.Sprintf("cannot assign a value of type %s to a target of type %s", valueType, targetType)).
		WithHint(target, fmt.Sprintf("target has type %s", targetType)).
		WithHint(value, fmt.Sprintf("value has type %s", valueType))
}

func IncompatibleArgument(arg token.Position, argType fmt.Stringer, param token.Position, paramType fmt.Stringer) *Problem {
	return New(TypeMismatch, arg, fmt.Sprintf("argument of type %s cannot be passed as %s", argType, paramType)).
		WithHint(param, fmt.Sprintf("parameter is declared as %s", paramType))
}

func ConflictingTemplateArgument(arg token.Position, argType fmt.Stringer, param token.Position, bound fmt.Stringer) *Problem {
	return New(TypeMismatch, arg, fmt.Sprintf("argument of type %s conflicts with %s inferred from earlier arguments", argType, bound)).
		WithHint(param, "template parameter is used here")
}

func ArrayIndexNotInt(index token.Position, t fmt.Stringer) *Problem {
	return New(TypeMismatch, index, fmt.Sprintf("array indexes must be Int, got %s", t))
}

func TooManyIndexes(expr token.Position, provided, rank int, base token.Position, baseType fmt.Stringer) *Problem {
	msg := fmt.Sprintf("%d indexes used on a value with only %d dimensions", provided, rank)
	if rank == 0 {
		msg = fmt.Sprintf("cannot index a value of type %s", baseType)
	}
	p := New(TypeMismatch, expr, msg).WithHint(base, fmt.Sprintf("indexed value has type %s", baseType))
	p.Expected, p.Provided = rank, provided
	return p
}

func ArrayIndexOutOfBounds(index token.Position, value int64, size int) *Problem {
	if value < 0 {
		return New(OutOfBoundsIndex, index, fmt.Sprintf("array index %d is less than zero", value))
	}
	return New(OutOfBoundsIndex, index, fmt.Sprintf("array index %d is out of bounds for an array of size %d", value, size))
}

func NotFunction(callee token.Position, t fmt.Stringer) *Problem {
	return New(NotCallable, callee, fmt.Sprintf("a value of type %s cannot be called", t))
}

func VagueFunction(callee token.Position) *Problem {
	return New(IndeterminateCallee, callee, "the function being called must be known at compile time")
}

func UnresolvedAutoVar(use, decl token.Position) *Problem {
	return New(UnresolvedAutomaticType, use, "the type of this variable is still Auto; assign it a value first").
		WithHint(decl, "variable is declared here")
}

func UnresolvedTemplate(use token.Position, name string) *Problem {
	return New(UnresolvedTemplateParameter, use, fmt.Sprintf("template parameter %q could not be inferred from the arguments", name))
}

func TooManyInlines(call token.Position, count int) *Problem {
	p := New(TooManyInlineReturns, call, fmt.Sprintf("a function call can have at most one inline output, found %d", count))
	p.Expected, p.Provided = 1, count
	return p
}

func MissingInline(call, header token.Position) *Problem {
	return New(MissingInlineReturn, call, "this function call is used as a value, so it needs an inline output").
		WithHint(header, "function is declared here")
}

func UnusedValue(expr token.Position, t fmt.Stringer) *Problem {
	return New(DanglingValue, expr, fmt.Sprintf("this expression yields a value of type %s, but it is not stored anywhere", t))
}

func CompileTimeOnly(expr token.Position, t fmt.Stringer) *Problem {
	return New(NotRuntimeCompatible, expr, fmt.Sprintf("a value of type %s only exists at compile time and cannot be used here", t))
}

func ControlFlowInBody(stmt token.Position, what string) *Problem {
	return New(UnsupportedControlFlow, stmt, fmt.Sprintf("%s statements cannot be resolved; bodies must be straight-line code", what))
}

func BadArraySize(size token.Position, reason string) *Problem {
	return New(InvalidArraySize, size, reason)
}

func ReturnFromRoot(stmt token.Position) *Problem {
	return New(ReturnOutsideFunction, stmt, "return can only be used inside a function")
}

func IOInFunction(stmt token.Position) *Problem {
	return New(IOInsideFunction, stmt, "inputs and outputs can only be declared in the root scope")
}

func TooDeep(call token.Position, depth int) *Problem {
	p := New(InstantiationTooDeep, call, fmt.Sprintf("function instantiation exceeded the depth limit of %d", depth))
	p.Expected = depth
	return p
}

func BadArrayLiteral(item token.Position, itemType fmt.Stringer, first token.Position, firstType fmt.Stringer) *Problem {
	return New(TypeMismatch, item, fmt.Sprintf("array items must share one type, got %s after %s", itemType, firstType)).
		WithHint(first, fmt.Sprintf("first item has type %s", firstType))
}

func EmptyArrayLiteral(pos token.Position) *Problem {
	return New(TypeMismatch, pos, "array literals must contain at least one item")
}

func NotAType(pos token.Position, name string) *Problem {
	return New(TypeMismatch, pos, fmt.Sprintf("%q is not a data type", name))
}

func DynamicType(pos token.Position, name string) *Problem {
	return New(UnresolvedTemplateParameter, pos, fmt.Sprintf("the type stored in %q is not known at compile time", name))
}

func AssignToConstant(pos token.Position, name string) *Problem {
	return New(TypeMismatch, pos, fmt.Sprintf("%q is a compile-time constant and cannot be assigned", name))
}

func NotAssignable(pos token.Position) *Problem {
	return New(SyntaxError, pos, "this expression cannot be assigned to")
}
