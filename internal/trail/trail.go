// Package trail holds the food positions of an ant world and the streaming
// parser for their textual form, e.g. ((1 0) (2 2) (3 5)).
package trail

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Position is a cell on the grid.
type Position struct {
	X, Y int
}

// Compare orders positions by X, then Y.
func (p Position) Compare(o Position) int {
	if c := cmp.Compare(p.X, o.X); c != 0 {
		return c
	}
	return cmp.Compare(p.Y, o.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d %d)", p.X, p.Y)
}

// Trail is a set of positions kept sorted and free of duplicates.
// The zero value is an empty trail ready to use.
type Trail struct {
	items []Position
}

// New returns a trail holding the given positions.
func New(ps ...Position) Trail {
	var t Trail
	for _, p := range ps {
		t.Add(p)
	}
	return t
}

func (t Trail) search(p Position) (int, bool) {
	return slices.BinarySearchFunc(t.items, p, Position.Compare)
}

// Add inserts p and reports whether it was not already present.
func (t *Trail) Add(p Position) bool {
	i, found := t.search(p)
	if found {
		return false
	}
	t.items = slices.Insert(t.items, i, p)
	return true
}

// Remove deletes p and reports whether it was present.
func (t *Trail) Remove(p Position) bool {
	i, found := t.search(p)
	if !found {
		return false
	}
	t.items = slices.Delete(t.items, i, i+1)
	return true
}

func (t Trail) Contains(p Position) bool {
	_, found := t.search(p)
	return found
}

func (t Trail) Len() int {
	return len(t.items)
}

// Positions returns the members in ascending order.
func (t Trail) Positions() []Position {
	return slices.Clone(t.items)
}

func (t Trail) Clone() Trail {
	return Trail{items: slices.Clone(t.items)}
}

func (t Trail) Equal(o Trail) bool {
	return slices.Equal(t.items, o.items)
}

func (t *Trail) clear() {
	t.items = t.items[:0]
}

// String renders the trail in the same grammar the parser accepts.
func (t Trail) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range t.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}
