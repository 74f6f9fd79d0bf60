// Package diag defines the problems reported to users. Every problem is an
// ordered list of descriptors: the first one is the error itself, the rest
// are hints pointing at related source locations.
package diag

import (
	"strconv"
	"strings"

	"github.com/thiremani/waveguide/token"
)

type Severity int

const (
	Error Severity = iota
	Hint
)

func (s Severity) String() string {
	if s == Hint {
		return "hint"
	}
	return "error"
}

type Descriptor struct {
	Pos      token.Position
	Severity Severity
	Msg      string
}

type Kind int

const (
	SyntaxError Kind = iota
	UnresolvedName
	DuplicateName
	ArityMismatch
	TypeMismatch
	NotCallable
	IndeterminateCallee
	OutOfBoundsIndex
	UnresolvedAutomaticType
	UnresolvedTemplateParameter
	TooManyInlineReturns
	MissingInlineReturn
	DanglingValue
	NotRuntimeCompatible
	UnsupportedControlFlow
	InvalidArraySize
	ReturnOutsideFunction
	IOInsideFunction
	InstantiationTooDeep
)

var kindNames = [...]string{
	SyntaxError:                 "SyntaxError",
	UnresolvedName:              "UnresolvedName",
	DuplicateName:               "DuplicateName",
	ArityMismatch:               "ArityMismatch",
	TypeMismatch:                "TypeMismatch",
	NotCallable:                 "NotCallable",
	IndeterminateCallee:         "IndeterminateCallee",
	OutOfBoundsIndex:            "OutOfBoundsIndex",
	UnresolvedAutomaticType:     "UnresolvedAutomaticType",
	UnresolvedTemplateParameter: "UnresolvedTemplateParameter",
	TooManyInlineReturns:        "TooManyInlineReturns",
	MissingInlineReturn:         "MissingInlineReturn",
	DanglingValue:               "DanglingValue",
	NotRuntimeCompatible:        "NotRuntimeCompatible",
	UnsupportedControlFlow:      "UnsupportedControlFlow",
	InvalidArraySize:            "InvalidArraySize",
	ReturnOutsideFunction:       "ReturnOutsideFunction",
	IOInsideFunction:            "IOInsideFunction",
	InstantiationTooDeep:        "InstantiationTooDeep",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Problem is a user-facing compile error.
type Problem struct {
	Kind        Kind
	Descriptors []Descriptor
	// Expected and Provided are set for count errors (arity, inline returns).
	Expected int
	Provided int
}

// New creates a problem whose first descriptor is an error at pos.
func New(kind Kind, pos token.Position, msg string) *Problem {
	return &Problem{
		Kind:        kind,
		Descriptors: []Descriptor{{Pos: pos, Severity: Error, Msg: msg}},
	}
}

// WithHint appends a hint descriptor and returns p.
func (p *Problem) WithHint(pos token.Position, msg string) *Problem {
	p.Descriptors = append(p.Descriptors, Descriptor{Pos: pos, Severity: Hint, Msg: msg})
	return p
}

// Pos is the position of the primary descriptor.
func (p *Problem) Pos() token.Position {
	if len(p.Descriptors) == 0 {
		return token.Position{}
	}
	return p.Descriptors[0].Pos
}

// Msg is the message of the primary descriptor.
func (p *Problem) Msg() string {
	if len(p.Descriptors) == 0 {
		return p.Kind.String()
	}
	return p.Descriptors[0].Msg
}

func (p *Problem) Error() string {
	var b strings.Builder
	for i, d := range p.Descriptors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
		b.WriteString(d.Severity.String())
		b.WriteString(": ")
		b.WriteString(d.Msg)
	}
	return b.String()
}
