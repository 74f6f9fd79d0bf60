package resolver

import (
	"fmt"

	"github.com/thiremani/waveguide/vague"
)

// Table maps the variables of a scope being instantiated to their copies.
// A lookup that misses falls back to the parent table and then to the id
// itself, so ids from outside the instantiation pass through untouched.
type Table struct {
	parent *Table
	ids    map[vague.VariableID]vague.VariableID
}

func NewTable() *Table {
	return &Table{ids: map[vague.VariableID]vague.VariableID{}}
}

// Child returns an empty table layered over t. Entries added to the child
// are never visible through t.
func (t *Table) Child() *Table {
	return &Table{parent: t, ids: map[vague.VariableID]vague.VariableID{}}
}

// Add records that from was copied to to. Mapping the same id twice in one
// table is a bug in the caller.
func (t *Table) Add(from, to vague.VariableID) {
	if prev, ok := t.ids[from]; ok {
		panic(fmt.Sprintf("v%d is already mapped to v%d in this conversion table", from, prev))
	}
	t.ids[from] = to
}

func (t *Table) Convert(id vague.VariableID) vague.VariableID {
	for cur := t; cur != nil; cur = cur.parent {
		if to, ok := cur.ids[id]; ok {
			return to
		}
	}
	return id
}

func (t *Table) Len() int { return len(t.ids) }
