package vague

import (
	"strconv"
	"strings"

	"github.com/thiremani/waveguide/token"
)

// KnownData is a value known at compile time. Unknown means no value is
// available yet. Values are treated as immutable; arrays are copied before
// they are modified.
type KnownData interface {
	String() string
	knownData()
}

type (
	Unknown struct{}
	Void    struct{}
	Bool    bool
	Int     int64
	Float   float64
	// TypeValue is a type used as a value, e.g. the builtin Int.
	TypeValue struct{ Type DataType }
	Array     []KnownData
)

// FunctionValue refers to the body scope of a function. Builtin is OpNone
// for user functions.
type FunctionValue struct {
	Body    ScopeID
	Builtin BinaryOperator
	Name    string
	Header  token.Position
}

func (Unknown) knownData()       {}
func (Void) knownData()          {}
func (Bool) knownData()          {}
func (Int) knownData()           {}
func (Float) knownData()         {}
func (TypeValue) knownData()     {}
func (FunctionValue) knownData() {}
func (Array) knownData()         {}

func (Unknown) String() string     { return "Unknown" }
func (Void) String() string        { return "Void" }
func (b Bool) String() string      { return strconv.FormatBool(bool(b)) }
func (i Int) String() string       { return strconv.FormatInt(int64(i), 10) }
func (f Float) String() string     { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (t TypeValue) String() string { return t.Type.String() }
func (f FunctionValue) String() string {
	if f.Builtin != OpNone {
		return "builtin " + f.Name
	}
	return "fn " + f.Name + "@s" + strconv.Itoa(int(f.Body))
}
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, item := range a {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IsUnknown reports whether k carries no compile-time value.
func IsUnknown(k KnownData) bool {
	_, ok := k.(Unknown)
	return k == nil || ok
}

// Equal compares two values. Functions are equal when they share a body.
func Equal(a, b KnownData) bool {
	switch a := a.(type) {
	case Array:
		bb, ok := b.(Array)
		if !ok || len(a) != len(bb) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bb[i]) {
				return false
			}
		}
		return true
	case FunctionValue:
		bb, ok := b.(FunctionValue)
		return ok && a.Body == bb.Body && a.Builtin == bb.Builtin
	case TypeValue:
		bb, ok := b.(TypeValue)
		return ok && DataTypesEqual(a.Type, bb.Type)
	}
	return a == b
}
