package parser

import (
	"strconv"
	"strings"

	"github.com/thiremani/waveguide/ast"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/lexer"
	"github.com/thiremani/waveguide/token"
)

const (
	_ int = iota
	LOWEST
	LOR         // or
	LXOR        // xor
	LAND        // and
	BOR         // bor
	BXOR        // bxor
	BAND        // band
	EQUALS      // == !=
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	POWER       // **
	CALL        // myFunction(X)
	INDEX       // array[index]
)

var precedences = map[token.TokenType]int{
	token.OR:      LOR,
	token.XOR:     LXOR,
	token.AND:     LAND,
	token.BOR:     BOR,
	token.BXOR:    BXOR,
	token.BAND:    BAND,
	token.EQL:     EQUALS,
	token.NEQ:     EQUALS,
	token.LSS:     LESSGREATER,
	token.GTR:     LESSGREATER,
	token.LEQ:     LESSGREATER,
	token.GEQ:     LESSGREATER,
	token.ADD:     SUM,
	token.SUB:     SUM,
	token.MUL:     PRODUCT,
	token.QUO:     PRODUCT,
	token.INT_QUO: PRODUCT,
	token.REM:     PRODUCT,
	token.POW:     POWER,
	token.LPAREN:  CALL,
	token.LBRACK:  INDEX,
}

var rightAssociative = map[token.TokenType]bool{
	token.POW: true,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	toks   []token.Token
	pos    int
	errors []*diag.Problem

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		toks:   l.Tokenize(),
		pos:    -1,
		errors: []*diag.Problem{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.SUB, p.parseNegativeLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACK, p.parseArrayLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tok, prec := range precedences {
		if prec < CALL {
			p.registerInfix(tok, p.parseInfixExpression)
		}
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACK, p.parseIndexExpression)

	p.nextToken()

	return p
}

// Parse lexes and parses src, returning the first syntax error if any.
func Parse(file, src string) (*ast.Program, error) {
	p := New(lexer.New(file, src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return program, nil
}

func (p *Parser) nextToken() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.curToken = p.toks[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) Errors() []*diag.Problem {
	return p.errors
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, diag.Syntax(pos, format, args...))
}

func (p *Parser) peekError(t token.TokenType) {
	p.errorf(p.peekToken.Pos, "expected next token to be %s, got %s instead", t, p.peekToken)
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.errorf(tok.Pos, "unexpected %s at the start of an expression", tok)
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipStatement()
		}
		p.nextToken()
	}

	return program
}

// skipStatement moves past the rest of a malformed statement.
func (p *Parser) skipStatement() {
	for !p.curTokenIs(token.SEMI) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.FN:
		return p.parseFuncStatement()
	case token.INPUT, token.OUTPUT:
		return p.parseIOStatement()
	case token.RETURN:
		stmt := &ast.ReturnStatement{Token: p.curToken}
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		return stmt
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	}

	if p.isDeclaration() {
		return p.parseVarStatement()
	}
	return p.parseExpressionOrAssign()
}

// isDeclaration looks ahead for a type followed by a name: `Int a`,
// `[3][n]Float b`.
func (p *Parser) isDeclaration() bool {
	i := p.pos
	for p.tokenAt(i).Type == token.LBRACK {
		depth := 0
		for ; ; i++ {
			switch p.tokenAt(i).Type {
			case token.LBRACK:
				depth++
			case token.RBRACK:
				depth--
			case token.EOF:
				return false
			}
			if depth == 0 {
				break
			}
		}
		i++
	}
	return p.tokenAt(i).Type == token.IDENT && p.tokenAt(i+1).Type == token.IDENT
}

func (p *Parser) parseType() ast.TypeExpr {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Literal}
	case token.LBRACK:
		at := &ast.ArrayType{Token: p.curToken}
		p.nextToken()
		at.Size = p.parseExpression(LOWEST)
		if at.Size == nil || !p.expectPeek(token.RBRACK) {
			return nil
		}
		p.nextToken()
		at.Elem = p.parseType()
		if at.Elem == nil {
			return nil
		}
		return at
	}
	p.errorf(p.curToken.Pos, "expected a type, got %s instead", p.curToken)
	return nil
}

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.curToken}
	stmt.Type = p.parseType()
	if stmt.Type == nil {
		return nil
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Names = append(stmt.Names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

		var value ast.Expression
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			value = p.parseExpression(LOWEST)
			if value == nil {
				return nil
			}
		}
		stmt.Values = append(stmt.Values, value)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		return stmt
	}
}

func (p *Parser) parseIOStatement() ast.Statement {
	stmt := &ast.IOStatement{Token: p.curToken}
	p.nextToken()
	stmt.Type = p.parseType()
	if stmt.Type == nil {
		return nil
	}
	ids := p.parseIdentifierList()
	if ids == nil || !p.expectPeek(token.SEMI) {
		return nil
	}
	stmt.Names = ids
	return stmt
}

// parseIdentifierList reads `a, b, c` starting at the peek token.
func (p *Parser) parseIdentifierList() []*ast.Identifier {
	identifiers := []*ast.Identifier{}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
		if !p.peekTokenIs(token.COMMA) {
			return identifiers
		}
		p.nextToken()
	}
}

func (p *Parser) parseFuncStatement() ast.Statement {
	stmt := &ast.FuncStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(token.LSS) {
		p.nextToken()
		stmt.Templates = p.parseIdentifierList()
		if stmt.Templates == nil || !p.expectPeek(token.GTR) {
			return nil
		}
	}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		stmt.Inputs = p.parseParams()
		if stmt.Inputs == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		stmt.Outputs = p.parseParams()
		if stmt.Outputs == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseParams() []*ast.Param {
	params := []*ast.Param{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()
		typ := p.parseType()
		if typ == nil || !p.expectPeek(token.IDENT) {
			return nil
		}
		params = append(params, &ast.Param{
			Type: typ,
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return params
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.errorf(block.Token.Pos, "block is never closed")
			return nil
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.skipStatement()
			if p.curTokenIs(token.RBRACE) {
				break
			}
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if !p.peekTokenIs(token.ELSE) {
		return stmt
	}
	p.nextToken()
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		nested := p.parseIfStatement()
		if nested == nil {
			return nil
		}
		stmt.Alternative = &ast.BlockStatement{Token: nested.Tok(), Statements: []ast.Statement{nested}}
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Alternative = p.parseBlockStatement()
	if stmt.Alternative == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionOrAssign() ast.Statement {
	first := p.curToken
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.peekTokenIs(token.ASSIGN) {
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		return &ast.ExpressionStatement{Token: first, Expression: exp}
	}

	p.nextToken()
	stmt := &ast.AssignStatement{Token: p.curToken, Target: exp}
	if !isAssignable(exp) {
		p.errorf(ast.Span(exp), "cannot assign to %s", exp.String())
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil || !p.expectPeek(token.SEMI) {
		return nil
	}
	return stmt
}

func isAssignable(exp ast.Expression) bool {
	switch e := exp.(type) {
	case *ast.Identifier:
		return true
	case *ast.IndexExpression:
		return isAssignable(e.Left)
	}
	return false
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := parseInt(p.curToken.Literal)
	if err != nil {
		p.errorf(p.curToken.Pos, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	lit.Value = value
	return lit
}

func parseInt(literal string) (int64, error) {
	digits := strings.ReplaceAll(literal, "_", "")
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		return strconv.ParseInt(digits[2:], 16, 64)
	}
	return strconv.ParseInt(digits, 10, 64)
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}

	value, err := strconv.ParseFloat(strings.ReplaceAll(p.curToken.Literal, "_", ""), 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "could not parse %q as float", p.curToken.Literal)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

// parseNegativeLiteral folds a leading minus into a number literal.
func (p *Parser) parseNegativeLiteral() ast.Expression {
	minus := p.curToken
	if !p.peekTokenIs(token.INT) && !p.peekTokenIs(token.FLOAT) {
		p.errorf(minus.Pos, "negation is only supported on number literals")
		return nil
	}
	p.nextToken()
	tok := p.curToken
	tok.Literal = "-" + tok.Literal
	tok.Pos = minus.Pos.Include(tok.Pos)

	if tok.Type == token.INT {
		value, err := parseInt(tok.Literal[1:])
		if err != nil {
			p.errorf(tok.Pos, "could not parse %q as integer", tok.Literal)
			return nil
		}
		return &ast.IntegerLiteral{Token: tok, Value: -value}
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
	if err != nil {
		p.errorf(tok.Pos, "could not parse %q as float", tok.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: tok, Value: value}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	if rightAssociative[p.curToken.Type] {
		precedence--
	}
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curToken}
	elems, ok := p.parseExpressionList(token.RBRACK)
	if !ok {
		return nil
	}
	lit.Elements = elems
	lit.End = p.curToken
	return lit
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}
	indexes, ok := p.parseExpressionList(token.RBRACK)
	if !ok {
		return nil
	}
	if len(indexes) == 0 {
		p.errorf(exp.Token.Pos, "index expression needs at least one index")
		return nil
	}
	exp.Indexes = indexes
	exp.End = p.curToken
	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	inputs, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	exp.Inputs = inputs
	exp.End = p.curToken

	if !p.peekTokenIs(token.COLON) {
		return exp
	}
	p.nextToken()
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	outputs, ok := p.parseCallOutputs()
	if !ok {
		return nil
	}
	exp.Outputs = outputs
	exp.End = p.curToken
	return exp
}

// parseCallOutputs reads the output list of a call, where the inline keyword
// may stand in for one output.
func (p *Parser) parseCallOutputs() ([]ast.Expression, bool) {
	outputs := []ast.Expression{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return outputs, true
	}

	for {
		p.nextToken()
		var out ast.Expression
		if p.curTokenIs(token.INLINE) {
			out = &ast.InlineReturn{Token: p.curToken}
		} else {
			out = p.parseExpression(LOWEST)
			if out == nil {
				return nil, false
			}
			if !isAssignable(out) {
				p.errorf(ast.Span(out), "output argument %s is not assignable", out.String())
				return nil, false
			}
		}
		outputs = append(outputs, out)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return outputs, true
	}
}

// parseExpressionList reads comma separated expressions up to end. The
// current token is the opening delimiter; on success it is left on end.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, false
	}
	list = append(list, first)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil, false
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
