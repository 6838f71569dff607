package audit

import (
	"testing"

	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

func testWriter(table string, base int) *Writer {
	alloc := world.NewAllocator(map[string]int{table: base})
	return NewWriter(table, alloc, validate.DefaultClock(), nil)
}

func TestRecordAppendsEntry(t *testing.T) {
	w := world.World{}
	writer := testWriter(TrailsTable, 7001)

	id := writer.Record(w, Entry{
		ReferenceID:   "3",
		ReferenceType: "employee",
		Action:        "create",
		UserID:        "u1",
	})
	if id != "7001" {
		t.Fatalf("expected declared base id 7001, got %s", id)
	}

	rec := w.Get(TrailsTable, id)
	if rec == nil {
		t.Fatal("entry not stored")
	}
	if rec["audit_id"] != id || rec["reference_id"] != "3" || rec["action"] != "create" {
		t.Fatalf("unexpected entry: %v", rec)
	}
	if rec["created_at"] != validate.DefaultInstant {
		t.Fatalf("timestamp not pinned: %v", rec["created_at"])
	}
	if _, present := rec["field_name"]; present {
		t.Fatal("field_name must be absent for non-field entries")
	}
}

func TestRecordFieldChange(t *testing.T) {
	w := world.World{}
	writer := testWriter(AccessLogsTable, 8001)

	id := writer.Record(w, Entry{
		ReferenceID:   "12",
		ReferenceType: "incident",
		Action:        "close",
		UserID:        "u9",
		FieldName:     "status",
		OldValue:      "in_progress",
		NewValue:      "closed",
	})

	rec := w.Get(AccessLogsTable, id)
	if rec["field_name"] != "status" || rec["old_value"] != "in_progress" || rec["new_value"] != "closed" {
		t.Fatalf("field change not recorded: %v", rec)
	}
}

func TestSequentialIDs(t *testing.T) {
	w := world.World{}
	writer := testWriter(TrailsTable, 7001)
	first := writer.Record(w, Entry{ReferenceID: "1", ReferenceType: "employee", Action: "create"})
	second := writer.Record(w, Entry{ReferenceID: "2", ReferenceType: "employee", Action: "create"})
	if first != "7001" || second != "7002" {
		t.Fatalf("expected 7001 then 7002, got %s then %s", first, second)
	}
}
