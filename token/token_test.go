package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"fn", FN},
		{"inline", INLINE},
		{"band", BAND},
		{"xor", XOR},
		{"true", TRUE},
		{"Int", IDENT},
		{"fnord", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, LookupIdent(tt.input))
		})
	}
}

func TestPositionInclude(t *testing.T) {
	a := Position{File: "a.wg", Line: 1, Column: 5, Start: 4, End: 7}
	b := Position{File: "a.wg", Line: 2, Column: 1, Start: 10, End: 14}

	joined := a.Include(b)
	require.Equal(t, 4, joined.Start)
	require.Equal(t, 14, joined.End)
	require.Equal(t, 1, joined.Line)
	require.Equal(t, 5, joined.Column)

	joined = b.Include(a)
	require.Equal(t, 4, joined.Start)
	require.Equal(t, 1, joined.Line)

	require.Equal(t, a, a.Include(Position{}))
	require.Equal(t, a, Position{}.Include(a))
	require.Equal(t, "a.wg:1:5", a.String())
	require.Equal(t, "<builtin>", Position{}.String())
}
