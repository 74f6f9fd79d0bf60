package vague

import (
	"fmt"
	"strings"

	"github.com/thiremani/waveguide/token"
)

type BinaryOperator int

const (
	OpNone BinaryOperator = iota
	Add
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

var operators = [...]struct {
	symbol  string
	builtin string
}{
	OpNone:             {"?", ""},
	Add:                {"+", "add"},
	Subtract:           {"-", "sub"},
	Multiply:           {"*", "mul"},
	Divide:             {"/", "div"},
	IntDivide:          {"//", "intdiv"},
	Modulo:             {"%", "mod"},
	Power:              {"**", "pow"},
	LessThan:           {"<", "lt"},
	LessThanOrEqual:    {"<=", "lte"},
	GreaterThan:        {">", "gt"},
	GreaterThanOrEqual: {">=", "gte"},
	Equals:             {"==", "eq"},
	NotEquals:          {"!=", "neq"},
	BAnd:               {"band", "band"},
	BXor:               {"bxor", "bxor"},
	BOr:                {"bor", "bor"},
	And:                {"and", "and"},
	Xor:                {"xor", "xor"},
	Or:                 {"or", "or"},
}

func (op BinaryOperator) String() string { return operators[op].symbol }

// BuiltinName is the name of the builtin function performing op.
func (op BinaryOperator) BuiltinName() string { return operators[op].builtin }

// Operators lists every real operator in declaration order.
func Operators() []BinaryOperator {
	ops := make([]BinaryOperator, 0, len(operators)-1)
	for op := Add; int(op) < len(operators); op++ {
		ops = append(ops, op)
	}
	return ops
}

// OperatorFor maps source operator text to its operator.
func OperatorFor(symbol string) (BinaryOperator, bool) {
	for _, op := range Operators() {
		if operators[op].symbol == symbol {
			return op, true
		}
	}
	return OpNone, false
}

// Expression is a node of the vague program. Statements are expressions
// too: Assign, FuncCall, Return, Branch and WhileLoop appear in scope bodies.
type Expression interface {
	Pos() token.Position
	String() string
	expression()
}

type Literal struct {
	Value    KnownData
	Position token.Position
}

// VarRef refers to a variable by id.
type VarRef struct {
	ID       VariableID
	Position token.Position
}

type Access struct {
	Base     Expression
	Indexes  []Expression
	Position token.Position
}

// InlineReturn marks the output argument whose value becomes the value of
// the call expression.
type InlineReturn struct {
	Position token.Position
}

type BinaryOperation struct {
	Left     Expression
	Op       BinaryOperator
	Right    Expression
	Position token.Position
}

// Collect builds an array from its items.
type Collect struct {
	Items    []Expression
	Position token.Position
}

// FuncCall calls Function. Outputs is nil when the call omitted its output
// list, in which case a single output is treated as inline.
type FuncCall struct {
	Function Expression
	Inputs   []Expression
	Outputs  []Expression
	Position token.Position
}

type Assign struct {
	Target   Expression
	Value    Expression
	Position token.Position
}

type Return struct {
	Position token.Position
}

type Branch struct {
	Condition Expression
	Body      ScopeID
	Else      ScopeID // NoScope without an else
	Position  token.Position
}

type WhileLoop struct {
	Condition Expression
	Body      ScopeID
	Position  token.Position
}

func (*Literal) expression()         {}
func (*VarRef) expression()          {}
func (*Access) expression()          {}
func (*InlineReturn) expression()    {}
func (*BinaryOperation) expression() {}
func (*Collect) expression()         {}
func (*FuncCall) expression()        {}
func (*Assign) expression()          {}
func (*Return) expression()          {}
func (*Branch) expression()          {}
func (*WhileLoop) expression()       {}

func (e *Literal) Pos() token.Position         { return e.Position }
func (e *VarRef) Pos() token.Position          { return e.Position }
func (e *Access) Pos() token.Position          { return e.Position }
func (e *InlineReturn) Pos() token.Position    { return e.Position }
func (e *BinaryOperation) Pos() token.Position { return e.Position }
func (e *Collect) Pos() token.Position         { return e.Position }
func (e *FuncCall) Pos() token.Position        { return e.Position }
func (e *Assign) Pos() token.Position          { return e.Position }
func (e *Return) Pos() token.Position          { return e.Position }
func (e *Branch) Pos() token.Position          { return e.Position }
func (e *WhileLoop) Pos() token.Position       { return e.Position }

func (e *Literal) String() string      { return e.Value.String() }
func (e *VarRef) String() string       { return fmt.Sprintf("v%d", e.ID) }
func (e *InlineReturn) String() string { return "inline" }
func (e *Return) String() string       { return "return" }
func (e *Access) String() string {
	return e.Base.String() + "[" + joinExpressions(e.Indexes) + "]"
}
func (e *BinaryOperation) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
func (e *Collect) String() string { return "[" + joinExpressions(e.Items) + "]" }
func (e *FuncCall) String() string {
	s := e.Function.String() + "(" + joinExpressions(e.Inputs) + ")"
	if e.Outputs != nil {
		s += ":(" + joinExpressions(e.Outputs) + ")"
	}
	return s
}
func (e *Assign) String() string { return e.Target.String() + " = " + e.Value.String() }
func (e *Branch) String() string {
	s := fmt.Sprintf("if %s { s%d }", e.Condition, e.Body)
	if e.Else != NoScope {
		s += fmt.Sprintf(" else { s%d }", e.Else)
	}
	return s
}
func (e *WhileLoop) String() string {
	return fmt.Sprintf("while %s { s%d }", e.Condition, e.Body)
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
