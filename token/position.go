package token

import "fmt"

// Position is a span of source text. Offsets are byte offsets into the
// file; Line and Column are 1-based and describe the start of the span.
type Position struct {
	File   string
	Line   int
	Column int
	Start  int
	End    int
}

// IsValid reports whether the position points into a real file.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Include extends p so that it also covers other. Both must come from the
// same file.
func (p Position) Include(other Position) Position {
	if !other.IsValid() {
		return p
	}
	if !p.IsValid() {
		return other
	}
	if other.Start < p.Start {
		p.Start = other.Start
		p.Line = other.Line
		p.Column = other.Column
	}
	if other.End > p.End {
		p.End = other.End
	}
	return p
}

func (p Position) String() string {
	if !p.IsValid() {
		if p.File == "" {
			return "<builtin>"
		}
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
