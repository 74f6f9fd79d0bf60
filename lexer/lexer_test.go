package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/token"
)

type Test struct {
	expectedType    token.TokenType
	expectedLiteral string
}

func checkInput(t *testing.T, input string, tests []Test) {
	l := New("lexer_test", input)

	for i, tt := range tests {
		tok := l.NextToken()
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d] - tokentype wrong", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d] - literal wrong", i)
	}
}

func TestNextToken(t *testing.T) {
	input := `# adds one
fn inc(Int x):(Int y) {
    y = x + 1;
}
[3]Int a = [1, 2_000, 3];
b = inc(a[0]):(inline) ** 2 // 3 % 4;
c = 1.5e3 <= 0x1F and true bxor false;
d != e == f >= g;
`

	tests := []Test{
		{token.FN, "fn"},
		{token.IDENT, "inc"},
		{token.LPAREN, "("},
		{token.IDENT, "Int"},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.IDENT, "Int"},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.ADD, "+"},
		{token.INT, "1"},
		{token.SEMI, ";"},
		{token.RBRACE, "}"},
		{token.LBRACK, "["},
		{token.INT, "3"},
		{token.RBRACK, "]"},
		{token.IDENT, "Int"},
		{token.IDENT, "a"},
		{token.ASSIGN, "="},
		{token.LBRACK, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2_000"},
		{token.COMMA, ","},
		{token.INT, "3"},
		{token.RBRACK, "]"},
		{token.SEMI, ";"},
		{token.IDENT, "b"},
		{token.ASSIGN, "="},
		{token.IDENT, "inc"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.LBRACK, "["},
		{token.INT, "0"},
		{token.RBRACK, "]"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.INLINE, "inline"},
		{token.RPAREN, ")"},
		{token.POW, "**"},
		{token.INT, "2"},
		{token.INT_QUO, "//"},
		{token.INT, "3"},
		{token.REM, "%"},
		{token.INT, "4"},
		{token.SEMI, ";"},
		{token.IDENT, "c"},
		{token.ASSIGN, "="},
		{token.FLOAT, "1.5e3"},
		{token.LEQ, "<="},
		{token.INT, "0x1F"},
		{token.AND, "and"},
		{token.TRUE, "true"},
		{token.BXOR, "bxor"},
		{token.FALSE, "false"},
		{token.SEMI, ";"},
		{token.IDENT, "d"},
		{token.NEQ, "!="},
		{token.IDENT, "e"},
		{token.EQL, "=="},
		{token.IDENT, "f"},
		{token.GEQ, ">="},
		{token.IDENT, "g"},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}

	checkInput(t, input, tests)
}

func TestPositions(t *testing.T) {
	l := New("pos.wg", "a = 1;\n  bb == 2.5;")
	toks := l.Tokenize()

	require.Len(t, toks, 9)
	require.Equal(t, token.Position{File: "pos.wg", Line: 1, Column: 1, Start: 0, End: 1}, toks[0].Pos)
	require.Equal(t, token.Position{File: "pos.wg", Line: 2, Column: 3, Start: 9, End: 11}, toks[4].Pos)
	require.Equal(t, token.Position{File: "pos.wg", Line: 2, Column: 6, Start: 12, End: 14}, toks[5].Pos)
	require.Equal(t, token.Position{File: "pos.wg", Line: 2, Column: 9, Start: 15, End: 18}, toks[6].Pos)
	require.Equal(t, token.EOF, toks[8].Type)
}

func TestIllegal(t *testing.T) {
	checkInput(t, "a ! b $", []Test{
		{token.IDENT, "a"},
		{token.ILLEGAL, "!"},
		{token.IDENT, "b"},
		{token.ILLEGAL, "$"},
		{token.EOF, ""},
	})
}
