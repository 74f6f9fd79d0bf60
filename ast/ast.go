package ast

import (
	"bytes"
	"strings"

	"github.com/thiremani/waveguide/token"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// All statement nodes implement this
type Statement interface {
	Node
	statementNode()
}

// All expression nodes implement this
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr is a type written in source, e.g. Int or [3][2]Float.
type TypeExpr interface {
	Node
	typeNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Tok() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].Tok()
	}
	return token.Token{Type: token.EOF}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func printVec[T Node](a []T) string {
	strs := make([]string, 0, len(a))
	for _, n := range a {
		strs = append(strs, n.String())
	}
	return strings.Join(strs, ", ")
}

// Statements
type FuncStatement struct {
	Token     token.Token // the fn token
	Name      *Identifier
	Templates []*Identifier
	Inputs    []*Param
	Outputs   []*Param
	Body      *BlockStatement
}

func (fs *FuncStatement) statementNode()   {}
func (fs *FuncStatement) Tok() token.Token { return fs.Token }
func (fs *FuncStatement) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(fs.Name.String())
	if len(fs.Templates) > 0 {
		out.WriteString("<" + printVec(fs.Templates) + ">")
	}
	out.WriteString("(" + printVec(fs.Inputs) + ")")
	if len(fs.Outputs) > 0 {
		out.WriteString(":(" + printVec(fs.Outputs) + ")")
	}
	out.WriteString(" ")
	out.WriteString(fs.Body.String())
	return out.String()
}

type Param struct {
	Type TypeExpr
	Name *Identifier
}

func (p *Param) Tok() token.Token { return p.Name.Token }
func (p *Param) String() string   { return p.Type.String() + " " + p.Name.String() }

// VarStatement declares one or more variables of the same type. Values holds
// one entry per name; an entry is nil when the name has no initializer.
type VarStatement struct {
	Token  token.Token // first token of the type
	Type   TypeExpr
	Names  []*Identifier
	Values []Expression
}

func (vs *VarStatement) statementNode()   {}
func (vs *VarStatement) Tok() token.Token { return vs.Token }
func (vs *VarStatement) String() string {
	parts := make([]string, 0, len(vs.Names))
	for i, name := range vs.Names {
		if vs.Values[i] == nil {
			parts = append(parts, name.String())
			continue
		}
		parts = append(parts, name.String()+" = "+vs.Values[i].String())
	}
	return vs.Type.String() + " " + strings.Join(parts, ", ") + ";"
}

// IOStatement declares program inputs or outputs.
type IOStatement struct {
	Token token.Token // the input or output token
	Type  TypeExpr
	Names []*Identifier
}

func (is *IOStatement) statementNode()   {}
func (is *IOStatement) Tok() token.Token { return is.Token }
func (is *IOStatement) IsInput() bool    { return is.Token.Type == token.INPUT }
func (is *IOStatement) String() string {
	return is.Token.Literal + " " + is.Type.String() + " " + printVec(is.Names) + ";"
}

type AssignStatement struct {
	Token  token.Token // the = token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()   {}
func (as *AssignStatement) Tok() token.Token { return as.Token }
func (as *AssignStatement) String() string {
	return as.Target.String() + " = " + as.Value.String() + ";"
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()   {}
func (es *ExpressionStatement) Tok() token.Token { return es.Token }
func (es *ExpressionStatement) String() string   { return es.Expression.String() + ";" }

type ReturnStatement struct {
	Token token.Token
}

func (rs *ReturnStatement) statementNode()   {}
func (rs *ReturnStatement) Tok() token.Token { return rs.Token }
func (rs *ReturnStatement) String() string   { return "return;" }

type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil without an else
}

func (is *IfStatement) statementNode()   {}
func (is *IfStatement) Tok() token.Token { return is.Token }
func (is *IfStatement) String() string {
	s := "if " + is.Condition.String() + " " + is.Consequence.String()
	if is.Alternative != nil {
		s += " else " + is.Alternative.String()
	}
	return s
}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()   {}
func (ws *WhileStatement) Tok() token.Token { return ws.Token }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

type BlockStatement struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()   {}
func (bs *BlockStatement) Tok() token.Token { return bs.Token }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// Types
type NamedType struct {
	Token token.Token // the token.IDENT token
	Name  string
}

func (nt *NamedType) typeNode()        {}
func (nt *NamedType) Tok() token.Token { return nt.Token }
func (nt *NamedType) String() string   { return nt.Name }

type ArrayType struct {
	Token token.Token // the [ token
	Size  Expression
	Elem  TypeExpr
}

func (at *ArrayType) typeNode()        {}
func (at *ArrayType) Tok() token.Token { return at.Token }
func (at *ArrayType) String() string   { return "[" + at.Size.String() + "]" + at.Elem.String() }

// Expressions
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()  {}
func (i *Identifier) Tok() token.Token { return i.Token }
func (i *Identifier) String() string   { return i.Value }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()  {}
func (il *IntegerLiteral) Tok() token.Token { return il.Token }
func (il *IntegerLiteral) String() string   { return il.Token.Literal }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()  {}
func (fl *FloatLiteral) Tok() token.Token { return fl.Token }
func (fl *FloatLiteral) String() string   { return fl.Token.Literal }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()  {}
func (bl *BooleanLiteral) Tok() token.Token { return bl.Token }
func (bl *BooleanLiteral) String() string   { return bl.Token.Literal }

type ArrayLiteral struct {
	Token    token.Token // the [ token
	Elements []Expression
	End      token.Token // the ] token
}

func (al *ArrayLiteral) expressionNode()  {}
func (al *ArrayLiteral) Tok() token.Token { return al.Token }
func (al *ArrayLiteral) String() string   { return "[" + printVec(al.Elements) + "]" }

type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()  {}
func (ie *InfixExpression) Tok() token.Token { return ie.Token }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

type IndexExpression struct {
	Token   token.Token // the [ token
	Left    Expression
	Indexes []Expression
	End     token.Token // the ] token
}

func (ie *IndexExpression) expressionNode()  {}
func (ie *IndexExpression) Tok() token.Token { return ie.Token }
func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + printVec(ie.Indexes) + "]"
}

// CallExpression is f(a, b):(c, inline). Outputs is nil when the output list
// is omitted entirely, which differs from an explicit empty list.
type CallExpression struct {
	Token    token.Token // The '(' token
	Function Expression
	Inputs   []Expression
	Outputs  []Expression
	End      token.Token // the closing ) token
}

func (ce *CallExpression) expressionNode()  {}
func (ce *CallExpression) Tok() token.Token { return ce.Token }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ce.Function.String())
	out.WriteString("(" + printVec(ce.Inputs) + ")")
	if ce.Outputs != nil {
		out.WriteString(":(" + printVec(ce.Outputs) + ")")
	}
	return out.String()
}

// InlineReturn is the inline placeholder in a call's output list.
type InlineReturn struct {
	Token token.Token
}

func (ir *InlineReturn) expressionNode()  {}
func (ir *InlineReturn) Tok() token.Token { return ir.Token }
func (ir *InlineReturn) String() string   { return "inline" }

// Span returns the source range covered by n and all of its children.
func Span(n Node) token.Position {
	pos := n.Tok().Pos
	switch n := n.(type) {
	case *InfixExpression:
		pos = pos.Include(Span(n.Left)).Include(Span(n.Right))
	case *IndexExpression:
		pos = pos.Include(Span(n.Left)).Include(n.End.Pos)
	case *CallExpression:
		pos = pos.Include(Span(n.Function)).Include(n.End.Pos)
	case *ArrayLiteral:
		pos = pos.Include(n.End.Pos)
	case *ArrayType:
		pos = pos.Include(Span(n.Elem))
	case *Param:
		pos = pos.Include(Span(n.Type))
	case *AssignStatement:
		pos = pos.Include(Span(n.Target)).Include(Span(n.Value))
	case *ExpressionStatement:
		pos = Span(n.Expression)
	}
	return pos
}
