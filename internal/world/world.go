// Package world defines the shared in-memory world state every tool reads
// and writes: a mapping of table name to record map. The runtime owns the
// state and lends it mutably to one tool invocation at a time.
package world

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Record is a single row: field name to scalar or nested-JSON value.
type Record map[string]any

// Table maps record id (a stringified integer) to the record itself.
type Table map[string]Record

// World is the full simulation state. Tools mutate nested records in place
// but must never replace the top-level mapping.
type World map[string]Table

// Load parses a world state from its JSON table-of-tables encoding.
func Load(data []byte) (World, error) {
	var raw map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("world state is not valid JSON: %w", err)
	}
	w := make(World, len(raw))
	for table, rows := range raw {
		t := make(Table, len(rows))
		for id, fields := range rows {
			t[id] = Record(fields)
		}
		w[table] = t
	}
	return w, nil
}

// Dump serializes the world state back to its JSON encoding.
func (w World) Dump() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// Table returns the named table, creating an empty one on first write access.
// The created table is installed in the world so subsequent calls observe it.
func (w World) Table(name string) Table {
	t, ok := w[name]
	if !ok {
		t = make(Table)
		w[name] = t
	}
	return t
}

// Get returns the record with the given id, or nil when the table or record
// is absent.
func (w World) Get(table, id string) Record {
	t, ok := w[table]
	if !ok {
		return nil
	}
	return t[id]
}

// Clone deep-copies the world state. Used by tests to capture a pre-call
// snapshot for failure-atomicity checks; tools themselves validate before
// mutating and never need it.
func (w World) Clone() World {
	out := make(World, len(w))
	for table, rows := range w {
		t := make(Table, len(rows))
		for id, rec := range rows {
			t[id] = rec.Clone()
		}
		out[table] = t
	}
	return out
}

// Clone deep-copies a record, including nested maps and slices.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return val
	}
}

// IDs returns the table's record ids in ascending numeric order, with
// non-numeric ids (none are expected) sorted last lexically.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aok := parseNumericID(ids[i])
		b, bok := parseNumericID(ids[j])
		if aok && bok {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return ids[i] < ids[j]
	})
	return ids
}
