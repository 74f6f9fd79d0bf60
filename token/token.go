package token

import "strconv"

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT // add, foobar, x, y, ...
	INT   // 1_343_456
	FLOAT // 123.45e2
	literal_end

	operator_beg
	// Operators and delimiters
	ASSIGN // =

	ADD     // +
	SUB     // -
	MUL     // *
	QUO     // /
	INT_QUO // //
	REM     // %
	POW     // **

	LPAREN // (
	LBRACK // [
	LBRACE // {
	COMMA  // ,
	COLON  // :
	SEMI   // ;

	RPAREN // )
	RBRACK // ]
	RBRACE // }
	operator_end

	comparison_beg
	EQL // ==
	LSS // <
	GTR // >

	NEQ // !=
	LEQ // <=
	GEQ // >=
	comparison_end

	keyword_beg
	FN
	RETURN
	INLINE
	INPUT
	OUTPUT
	IF
	ELSE
	WHILE
	TRUE
	FALSE
	BAND
	BXOR
	BOR
	AND
	XOR
	OR
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT: "IDENT",
	INT:   "INT",
	FLOAT: "FLOAT",

	ASSIGN: "=",

	ADD:     "+",
	SUB:     "-",
	MUL:     "*",
	QUO:     "/",
	INT_QUO: "//",
	REM:     "%",
	POW:     "**",

	LPAREN: "(",
	LBRACK: "[",
	LBRACE: "{",
	COMMA:  ",",
	COLON:  ":",
	SEMI:   ";",

	RPAREN: ")",
	RBRACK: "]",
	RBRACE: "}",

	EQL: "==",
	LSS: "<",
	GTR: ">",

	NEQ: "!=",
	LEQ: "<=",
	GEQ: ">=",

	FN:     "fn",
	RETURN: "return",
	INLINE: "inline",
	INPUT:  "input",
	OUTPUT: "output",
	IF:     "if",
	ELSE:   "else",
	WHILE:  "while",
	TRUE:   "true",
	FALSE:  "false",
	BAND:   "band",
	BXOR:   "bxor",
	BOR:    "bor",
	AND:    "and",
	XOR:    "xor",
	OR:     "or",
}

var keywords map[string]TokenType

func init() {
	keywords = make(map[string]TokenType, keyword_end-keyword_beg)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		keywords[tokens[i]] = i
	}
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) IsComparison() bool {
	return comparison_beg < t.Type && comparison_end > t.Type
}

func (t Token) IsKeyword() bool {
	return keyword_beg < t.Type && keyword_end > t.Type
}

func (t Token) String() string {
	if t.Type == IDENT || t.Type == INT || t.Type == FLOAT {
		return strconv.Quote(t.Literal)
	}
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
