package lexer

import "github.com/thiremani/waveguide/token"

type Lexer struct {
	file         string
	input        []rune
	offsets      []int // byte offset of each rune, plus one past the end
	position     int   // current position in input (points to current rune)
	readPosition int   // current reading position in input (after current rune)
	curr         rune  // current rune under examination
	line         int
	column       int
}

func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: []rune(input), line: 1}
	l.offsets = make([]int, 0, len(l.input)+1)
	off := 0
	for _, r := range input {
		l.offsets = append(l.offsets, off)
		off += len(string(r))
	}
	l.offsets = append(l.offsets, off)
	l.readRune()
	return l
}

// Tokenize reads the whole input. The last token is always EOF.
func (l *Lexer) Tokenize() []token.Token {
	toks := []token.Token{}
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespaceAndComments()
	start := l.mark()

	switch l.curr {
	case '=':
		tok = l.either('=', token.EQL, token.ASSIGN)
	case '!':
		tok = l.either('=', token.NEQ, token.ILLEGAL)
	case '<':
		tok = l.either('=', token.LEQ, token.LSS)
	case '>':
		tok = l.either('=', token.GEQ, token.GTR)
	case '*':
		tok = l.either('*', token.POW, token.MUL)
	case '/':
		tok = l.either('/', token.INT_QUO, token.QUO)
	case '+':
		tok = newToken(token.ADD, l.curr)
	case '-':
		tok = newToken(token.SUB, l.curr)
	case '%':
		tok = newToken(token.REM, l.curr)
	case ',':
		tok = newToken(token.COMMA, l.curr)
	case ':':
		tok = newToken(token.COLON, l.curr)
	case ';':
		tok = newToken(token.SEMI, l.curr)
	case '(':
		tok = newToken(token.LPAREN, l.curr)
	case ')':
		tok = newToken(token.RPAREN, l.curr)
	case '[':
		tok = newToken(token.LBRACK, l.curr)
	case ']':
		tok = newToken(token.RBRACK, l.curr)
	case '{':
		tok = newToken(token.LBRACE, l.curr)
	case '}':
		tok = newToken(token.RBRACE, l.curr)
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Pos = l.span(start)
		return tok
	default:
		if isLetter(l.curr) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Pos = l.span(start)
			return tok
		} else if isDigit(l.curr) {
			tok.Type, tok.Literal = l.readNumber()
			tok.Pos = l.span(start)
			return tok
		}
		tok = newToken(token.ILLEGAL, l.curr)
	}

	l.readRune()
	tok.Pos = l.span(start)
	return tok
}

// either consumes a second rune when it matches next.
func (l *Lexer) either(next rune, two, one token.TokenType) token.Token {
	if l.peekRune() == next {
		first := l.curr
		l.readRune()
		return token.Token{Type: two, Literal: string(first) + string(l.curr)}
	}
	return newToken(one, l.curr)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r':
			l.readRune()
		case l.curr == '#':
			for l.curr != '\n' && l.curr != 0 {
				l.readRune()
			}
		default:
			return
		}
	}
}

type mark struct {
	position, line, column int
}

func (l *Lexer) mark() mark {
	return mark{l.position, l.line, l.column}
}

// span builds the position from start up to the last consumed rune.
func (l *Lexer) span(start mark) token.Position {
	end := min(l.position, len(l.input))
	return token.Position{
		File:   l.file,
		Line:   start.line,
		Column: start.column,
		Start:  l.offsets[min(start.position, len(l.input))],
		End:    l.offsets[end],
	}
}

func (l *Lexer) readRune() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.curr) || isDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readNumber reads decimal and hex integers and decimal floats. Underscores
// are accepted as digit separators and kept in the literal.
func (l *Lexer) readNumber() (token.TokenType, string) {
	position := l.position
	if l.curr == '0' && (l.peekRune() == 'x' || l.peekRune() == 'X') {
		l.readRune()
		l.readRune()
		for isHexDigit(l.curr) || l.curr == '_' {
			l.readRune()
		}
		return token.INT, string(l.input[position:l.position])
	}

	kind := token.INT
	l.readDigits()
	if l.curr == '.' && isDigit(l.peekRune()) {
		kind = token.FLOAT
		l.readRune()
		l.readDigits()
	}
	if l.curr == 'e' || l.curr == 'E' {
		next := l.peekRune()
		if isDigit(next) || next == '-' || next == '+' {
			kind = token.FLOAT
			l.readRune()
			if l.curr == '-' || l.curr == '+' {
				l.readRune()
			}
			l.readDigits()
		}
	}
	return kind, string(l.input[position:l.position])
}

func (l *Lexer) readDigits() {
	for isDigit(l.curr) || l.curr == '_' {
		l.readRune()
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func newToken(tokenType token.TokenType, curr rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(curr)}
}
