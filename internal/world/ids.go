package world

import "strconv"

// DefaultIDBase is the first id assigned in a table with no declared base.
const DefaultIDBase = 1

// Allocator hands out the next record id for a table: one past the highest
// numeric id present, or the table's declared base when the table is empty.
// It is purely functional over the pre-state; a tool call is atomic, so a
// failed call consumes nothing.
type Allocator struct {
	bases map[string]int
}

// NewAllocator creates an allocator with per-table id bases. Tables absent
// from the map start at DefaultIDBase.
func NewAllocator(bases map[string]int) *Allocator {
	return &Allocator{bases: bases}
}

// Next returns the id the next created record in the named table will get.
// The id is not reserved; the caller stores the record under it in the same
// invocation.
func (a *Allocator) Next(w World, table string) string {
	next := DefaultIDBase
	if a.bases != nil {
		if base, ok := a.bases[table]; ok {
			next = base
		}
	}
	for id := range w[table] {
		if n, ok := parseNumericID(id); ok && n+1 > next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

func parseNumericID(id string) (int, bool) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}
