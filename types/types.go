// Package types holds the concrete types the resolver works with once
// template parameters and array sizes have been evaluated.
package types

import (
	"fmt"
)

type Kind int

const (
	AutomaticKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	VoidKind
	DataTypeKind
	FunctionKind
	ArrayKind
)

// Type is the interface for all concrete types.
type Type interface {
	String() string
	Kind() Kind
}

var (
	Auto     Type = Automatic{}
	B        Type = Bool{}
	I        Type = Int{}
	F        Type = Float{}
	V        Type = Void{}
	TypeType Type = DataType{}
	FuncType Type = Function{}
)

// Automatic is a type that is pinned by the first assignment.
type Automatic struct{}

func (a Automatic) Kind() Kind     { return AutomaticKind }
func (a Automatic) String() string { return "Auto" }

type Bool struct{}

func (b Bool) Kind() Kind     { return BoolKind }
func (b Bool) String() string { return "Bool" }

type Int struct{}

func (i Int) Kind() Kind     { return IntKind }
func (i Int) String() string { return "Int" }

type Float struct{}

func (f Float) Kind() Kind     { return FloatKind }
func (f Float) String() string { return "Float" }

type Void struct{}

func (v Void) Kind() Kind     { return VoidKind }
func (v Void) String() string { return "Void" }

// DataType is the type of values that are themselves types.
type DataType struct{}

func (d DataType) Kind() Kind     { return DataTypeKind }
func (d DataType) String() string { return "DataType" }

type Function struct{}

func (f Function) Kind() Kind     { return FunctionKind }
func (f Function) String() string { return "Function" }

// Array is one dimension of an array. [3][2]Int is Array{3, Array{2, Int}}.
type Array struct {
	Len  int
	Base Type
}

func (a Array) Kind() Kind { return ArrayKind }
func (a Array) String() string {
	return fmt.Sprintf("[%d]%s", a.Len, a.Base.String())
}

// NewArray nests base inside one array dimension per size, outermost first.
func NewArray(base Type, sizes ...int) Type {
	t := base
	for i := len(sizes) - 1; i >= 0; i-- {
		t = Array{Len: sizes[i], Base: t}
	}
	return t
}

// Equal reports structural equality.
func Equal(a, b Type) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() != ArrayKind {
		return true
	}
	aa, bb := a.(Array), b.(Array)
	return aa.Len == bb.Len && Equal(aa.Base, bb.Base)
}

// IsRuntime reports whether values of t can exist in the resolved program.
func IsRuntime(t Type) bool {
	switch t.Kind() {
	case BoolKind, IntKind, FloatKind:
		return true
	case ArrayKind:
		return IsRuntime(t.(Array).Base)
	}
	return false
}

// Rank is the number of array dimensions of t.
func Rank(t Type) int {
	rank := 0
	for t.Kind() == ArrayKind {
		t = t.(Array).Base
		rank++
	}
	return rank
}

// Unwrap strips n array dimensions from t. It panics if t has fewer.
func Unwrap(t Type, n int) Type {
	for i := 0; i < n; i++ {
		arr, ok := t.(Array)
		if !ok {
			panic(fmt.Sprintf("cannot unwrap %d dimensions from %s", n, t))
		}
		t = arr.Base
	}
	return t
}

// Scalar is the innermost non-array type of t.
func Scalar(t Type) Type {
	return Unwrap(t, Rank(t))
}

// MapScalar rebuilds t with its innermost type replaced by f(scalar).
func MapScalar(t Type, f func(Type) Type) Type {
	if arr, ok := t.(Array); ok {
		return Array{Len: arr.Len, Base: MapScalar(arr.Base, f)}
	}
	return f(t)
}
