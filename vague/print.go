package vague

import (
	"fmt"
	"strings"
)

// String dumps every scope reachable from the entry point, skipping the
// builtin scope.
func (p *Program) String() string {
	var b strings.Builder
	for id := range p.scopes {
		sid := ScopeID(id)
		if sid == p.BuiltinScope || p.isBuiltinBody(sid) {
			continue
		}
		p.writeScope(&b, sid)
	}
	return b.String()
}

func (p *Program) isBuiltinBody(id ScopeID) bool {
	for _, vid := range p.Scope(p.BuiltinScope).Symbols {
		if fn, ok := p.Variable(vid).InitialValue.(FunctionValue); ok && fn.Body == id {
			return fn.Builtin != OpNone
		}
	}
	return false
}

func (p *Program) writeScope(b *strings.Builder, id ScopeID) {
	s := p.Scope(id)
	fmt.Fprintf(b, "s%d", id)
	if s.Parent != NoScope {
		fmt.Fprintf(b, " (parent s%d)", s.Parent)
	}
	b.WriteString(":\n")
	writeIDs(b, "inputs", s.Inputs)
	writeIDs(b, "outputs", s.Outputs)
	for _, name := range s.SymbolNames() {
		p.writeVariable(b, s.Symbols[name])
	}
	for _, vid := range s.Intermediates {
		p.writeVariable(b, vid)
	}
	for _, stmt := range s.Body {
		fmt.Fprintf(b, "  %s\n", stmt)
	}
}

func (p *Program) writeVariable(b *strings.Builder, id VariableID) {
	v := p.Variable(id)
	fmt.Fprintf(b, "  v%d %s: %s", id, v.Name, v.DataType)
	if !IsUnknown(v.InitialValue) {
		fmt.Fprintf(b, " = %s", v.InitialValue)
	}
	b.WriteString("\n")
}

func writeIDs(b *strings.Builder, label string, ids []VariableID) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("v%d", id)
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(parts, ", "))
}
