package resolved

import (
	"fmt"
	"strings"

	"github.com/thiremani/waveguide/token"
	"github.com/thiremani/waveguide/types"
)

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
	IntDivide
	Modulo
	Power
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Equals
	NotEquals
	BAnd
	BXor
	BOr
	And
	Xor
	Or
)

var operatorSymbols = [...]string{
	Add:                "+",
	Subtract:           "-",
	Multiply:           "*",
	Divide:             "/",
	IntDivide:          "//",
	Modulo:             "%",
	Power:              "**",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	Equals:             "==",
	NotEquals:          "!=",
	BAnd:               "band",
	BXor:               "bxor",
	BOr:                "bor",
	And:                "and",
	Xor:                "xor",
	Or:                 "or",
}

func (op BinaryOperator) String() string { return operatorSymbols[op] }

// OperatorFor maps operator text to its operator.
func OperatorFor(symbol string) (BinaryOperator, bool) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return BinaryOperator(op), true
		}
	}
	return 0, false
}

// Expression is a node of the resolved program. Assign and FuncCall only
// appear as statements.
type Expression interface {
	Pos() token.Position
	String() string
	expression()
}

type Literal struct {
	Value    KnownData
	Position token.Position
}

type VarRef struct {
	ID       VariableID
	Position token.Position
}

// Access indexes Base. It has fewer indexes than Base has dimensions when it
// selects a sub-array.
type Access struct {
	Base     Expression
	Indexes  []Expression
	Position token.Position
}

type BinaryOperation struct {
	Left     Expression
	Op       BinaryOperator
	Right    Expression
	Type     types.Type
	Position token.Position
}

// Inflate broadcasts Value from type From to the wider array type To.
type Inflate struct {
	Value    Expression
	From     types.Type
	To       types.Type
	Position token.Position
}

// Collect builds an array at run time from items of one type.
type Collect struct {
	Items    []Expression
	Position token.Position
}

type Assign struct {
	Target   Expression
	Value    Expression
	Position token.Position
}

// FuncCall runs the statements of an instantiated body scope.
type FuncCall struct {
	Body     ScopeID
	Position token.Position
}

func (*Literal) expression()         {}
func (*VarRef) expression()          {}
func (*Access) expression()          {}
func (*BinaryOperation) expression() {}
func (*Inflate) expression()         {}
func (*Collect) expression()         {}
func (*Assign) expression()          {}
func (*FuncCall) expression()        {}

func (e *Literal) Pos() token.Position         { return e.Position }
func (e *VarRef) Pos() token.Position          { return e.Position }
func (e *Access) Pos() token.Position          { return e.Position }
func (e *BinaryOperation) Pos() token.Position { return e.Position }
func (e *Inflate) Pos() token.Position         { return e.Position }
func (e *Collect) Pos() token.Position         { return e.Position }
func (e *Assign) Pos() token.Position          { return e.Position }
func (e *FuncCall) Pos() token.Position        { return e.Position }

func (e *Literal) String() string { return e.Value.String() }
func (e *VarRef) String() string  { return fmt.Sprintf("v%d", e.ID) }
func (e *Access) String() string {
	return e.Base.String() + "[" + joinExpressions(e.Indexes) + "]"
}
func (e *BinaryOperation) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
func (e *Inflate) String() string {
	return fmt.Sprintf("inflate(%s, %s -> %s)", e.Value, e.From, e.To)
}
func (e *Collect) String() string  { return "collect[" + joinExpressions(e.Items) + "]" }
func (e *Assign) String() string   { return e.Target.String() + " = " + e.Value.String() }
func (e *FuncCall) String() string { return fmt.Sprintf("call s%d", e.Body) }

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// TypeOf returns the type of a value expression. Statements have type Void.
func (p *Program) TypeOf(e Expression) types.Type {
	switch e := e.(type) {
	case *Literal:
		return e.Value.Type()
	case *VarRef:
		return p.Variable(e.ID).Type
	case *Access:
		return types.Unwrap(p.TypeOf(e.Base), len(e.Indexes))
	case *BinaryOperation:
		return e.Type
	case *Inflate:
		return e.To
	case *Collect:
		return types.Array{Len: len(e.Items), Base: p.TypeOf(e.Items[0])}
	}
	return types.V
}
