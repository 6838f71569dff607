package validate

import (
	"strings"

	"github.com/atlas-sim/harness/internal/world"
)

// Exists reports whether the given id is present in the named table.
func Exists(w world.World, table, id string) bool {
	return w.Get(table, id) != nil
}

// ExistsWithStatus reports whether the record exists and its status is in
// the allowed set. An empty allowed set degenerates to Exists. The second
// return is the record's actual status for error prose.
func ExistsWithStatus(w world.World, table, id string, allowed []string) (bool, string) {
	rec := w.Get(table, id)
	if rec == nil {
		return false, ""
	}
	status, _ := rec["status"].(string)
	if len(allowed) == 0 {
		return true, status
	}
	return InEnum(status, allowed), status
}

// UniqueCaseInsensitive reports whether no record in the table (other than
// exceptID) already holds value in the named field, compared
// case-insensitively.
func UniqueCaseInsensitive(t world.Table, field, value, exceptID string) bool {
	want := strings.ToLower(strings.TrimSpace(value))
	for id, rec := range t {
		if id == exceptID {
			continue
		}
		have, ok := rec[field].(string)
		if ok && strings.ToLower(strings.TrimSpace(have)) == want {
			return false
		}
	}
	return true
}
