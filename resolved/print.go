package resolved

import (
	"fmt"
	"strings"
)

// String dumps the entry point followed by every body it calls, in call
// order. Bodies whose calls were elided are not printed.
func (p *Program) String() string {
	var b strings.Builder
	seen := map[ScopeID]bool{}
	queue := []ScopeID{p.EntryPoint}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		queue = append(queue, p.writeScope(&b, id)...)
	}
	return b.String()
}

func (p *Program) writeScope(b *strings.Builder, id ScopeID) []ScopeID {
	s := p.Scope(id)
	fmt.Fprintf(b, "s%d %s:\n", id, s.Name)
	if id == p.EntryPoint {
		p.writeIDs(b, "inputs", p.Inputs)
		p.writeIDs(b, "outputs", p.Outputs)
	}
	for _, vid := range s.Variables {
		v := p.Variable(vid)
		fmt.Fprintf(b, "  v%d %s: %s\n", vid, v.Name, v.Type)
	}
	var calls []ScopeID
	for _, stmt := range s.Body {
		fmt.Fprintf(b, "  %s\n", stmt)
		if call, ok := stmt.(*FuncCall); ok {
			calls = append(calls, call.Body)
		}
	}
	return calls
}

func (p *Program) writeIDs(b *strings.Builder, label string, ids []VariableID) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("v%d", id)
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(parts, ", "))
}
