package vague

import (
	"fmt"
	"strings"

	"github.com/thiremani/waveguide/types"
)

// DataType is a type as written in the program, before template parameters
// and array sizes are known.
type DataType interface {
	String() string
	dataType()
}

// Basic wraps a non-array concrete type: Auto, Bool, Int, Float, Void,
// DataType or Function.
type Basic struct {
	Type types.Type
}

// Dynamic is a type stored in another variable.
type Dynamic struct {
	Target VariableID
}

// TemplateParameter is a type stored in a template parameter of the
// function being declared. It is inferred from arguments at each call site.
type TemplateParameter struct {
	Target VariableID
}

// ArrayType is Base with one dimension per entry in Sizes, outermost first.
type ArrayType struct {
	Base  DataType
	Sizes []Expression
}

func (Basic) dataType()             {}
func (Dynamic) dataType()           {}
func (TemplateParameter) dataType() {}
func (ArrayType) dataType()         {}

func (b Basic) String() string             { return b.Type.String() }
func (d Dynamic) String() string           { return fmt.Sprintf("Dynamic(v%d)", d.Target) }
func (t TemplateParameter) String() string { return fmt.Sprintf("Template(v%d)", t.Target) }
func (a ArrayType) String() string {
	var b strings.Builder
	for _, size := range a.Sizes {
		b.WriteString("[")
		b.WriteString(size.String())
		b.WriteString("]")
	}
	b.WriteString(a.Base.String())
	return b.String()
}

var (
	AutomaticType DataType = Basic{types.Auto}
	BoolType      DataType = Basic{types.B}
	IntType       DataType = Basic{types.I}
	FloatType     DataType = Basic{types.F}
	VoidType      DataType = Basic{types.V}
	MetaType      DataType = Basic{types.TypeType}
	FunctionType  DataType = Basic{types.FuncType}
)

// IsAutomatic reports whether dt is the Auto placeholder.
func IsAutomatic(dt DataType) bool {
	b, ok := dt.(Basic)
	return ok && b.Type.Kind() == types.AutomaticKind
}

// FromConcrete converts a resolved type back into program form so it can be
// stored as a type value.
func FromConcrete(t types.Type) DataType {
	arr, ok := t.(types.Array)
	if !ok {
		return Basic{t}
	}
	return ArrayType{
		Base:  FromConcrete(arr.Base),
		Sizes: []Expression{&Literal{Value: Int(arr.Len)}},
	}
}

// DataTypesEqual compares two program types. Array sizes compare equal when
// they are the same expression or equal literals.
func DataTypesEqual(a, b DataType) bool {
	switch a := a.(type) {
	case Basic:
		bb, ok := b.(Basic)
		return ok && types.Equal(a.Type, bb.Type)
	case Dynamic:
		bb, ok := b.(Dynamic)
		return ok && a.Target == bb.Target
	case TemplateParameter:
		bb, ok := b.(TemplateParameter)
		return ok && a.Target == bb.Target
	case ArrayType:
		bb, ok := b.(ArrayType)
		if !ok || len(a.Sizes) != len(bb.Sizes) || !DataTypesEqual(a.Base, bb.Base) {
			return false
		}
		for i := range a.Sizes {
			if !sizesEqual(a.Sizes[i], bb.Sizes[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func sizesEqual(a, b Expression) bool {
	if a == b {
		return true
	}
	la, ok := a.(*Literal)
	if !ok {
		return false
	}
	lb, ok := b.(*Literal)
	return ok && Equal(la.Value, lb.Value)
}
