package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// EntityQuery declares one selectable table for a Discover family.
type EntityQuery struct {
	Table   string
	IDField string
	// RangeFields lists date fields that accept <field>_from / <field>_to
	// inclusive range filters.
	RangeFields []string
}

// QuerySpec is the whitelist of entity types one Discover tool serves.
type QuerySpec struct {
	Entities map[string]EntityQuery
}

// EntityTypes returns the selector whitelist, sorted, for schema enums and
// error prose.
func (s QuerySpec) EntityTypes() []string {
	types := make([]string, 0, len(s.Entities))
	for t := range s.Entities {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Discover runs the read-only query: exact-equality AND filters, optional
// inclusive date ranges, results in id order with the conventional id field
// injected. It never mutates and never raises; an empty result is a success.
func Discover(w world.World, spec QuerySpec, entityType string, filters map[string]any) string {
	eq, ok := spec.Entities[entityType]
	if !ok {
		return envelope.Failure(envelope.InvalidEnum("entity_type", entityType, spec.EntityTypes()))
	}

	table := w[eq.Table]
	results := make([]world.Record, 0, len(table))
	for _, id := range table.IDs() {
		rec := table[id]
		if !matches(rec, eq, filters) {
			continue
		}
		out := rec.Clone()
		out[eq.IDField] = id
		results = append(results, out)
	}

	fields := map[string]any{
		"entity_type": entityType,
		"count":       len(results),
		"results":     results,
	}
	if filters != nil {
		fields["filters_applied"] = filters
	}
	return envelope.Success(fields)
}

func matches(rec world.Record, eq EntityQuery, filters map[string]any) bool {
	for key, want := range filters {
		if field, bound, ok := rangeKey(key, eq.RangeFields); ok {
			if !matchRange(rec, field, bound, want) {
				return false
			}
			continue
		}
		if !matchEqual(rec[key], want) {
			return false
		}
	}
	return true
}

// rangeKey recognizes <field>_from / <field>_to for declared range fields.
func rangeKey(key string, rangeFields []string) (field, bound string, ok bool) {
	for _, suffix := range []string{"_from", "_to"} {
		if !strings.HasSuffix(key, suffix) {
			continue
		}
		base := strings.TrimSuffix(key, suffix)
		if validate.InEnum(base, rangeFields) {
			return base, suffix, true
		}
	}
	return "", "", false
}

// matchRange applies an inclusive date bound. A record whose field is absent
// or malformed fails the range filter.
func matchRange(rec world.Record, field, bound string, want any) bool {
	have, ok := rec[field].(string)
	if !ok {
		return false
	}
	limit, ok := want.(string)
	if !ok {
		return false
	}
	if bound == "_from" {
		return validate.DateOrder(limit, have)
	}
	return validate.DateOrder(have, limit)
}

// matchEqual compares a record value against a filter value. JSON numbers
// compare numerically so 7 matches 7.0; everything else compares by its
// canonical string form.
func matchEqual(have, want any) bool {
	if have == nil {
		return want == nil
	}
	hn, hok := validate.Number(have)
	wn, wok := validate.Number(want)
	if hok && wok {
		return hn == wn
	}
	return fmt.Sprintf("%v", have) == fmt.Sprintf("%v", want)
}
