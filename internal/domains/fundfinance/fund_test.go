package fundfinance

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

func fundWorld() world.World {
	return world.World{
		"users": {
			"7": world.Record{"user_id": "7", "email": "pat@funds.example", "role": "fund_manager", "status": "active"},
		},
		"funds": {},
	}
}

func catalog() *Catalog {
	return NewCatalog(validate.DefaultClock(), nil)
}

func get(t *testing.T, reg *tool.Registry, name string) tool.Tool {
	t.Helper()
	tl, ok := reg.Get(name)
	if !ok {
		t.Fatalf("tool %s not registered", name)
	}
	return tl
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("result is not valid JSON: %v\n%s", err, s)
	}
	return out
}

func TestCreateRequiresBothApprovals(t *testing.T) {
	w := fundWorld()
	before := w.Clone()
	manage := get(t, catalog().Interface1(), "manage_fund")

	env := decode(t, manage.Invoke(w, map[string]any{
		"action": "create",
		"fund_data": map[string]any{
			"name":                        "Apex Growth",
			"fund_type":                   "equity_funds",
			"manager_id":                  "7",
			"fund_manager_approval":       true,
			"compliance_officer_approval": false,
		},
	}))
	if env["success"] != false {
		t.Fatal("create without compliance approval accepted")
	}
	got := env["error"].(string)
	if !strings.Contains(got, "fund_manager_approval") || !strings.Contains(got, "compliance_officer_approval") {
		t.Fatalf("error must mention both required approvals: %q", got)
	}
	if diff := cmp.Diff(before, w); diff != "" {
		t.Fatalf("failed create mutated the world (-want +got):\n%s", diff)
	}
}

func TestCreateThenDiscover(t *testing.T) {
	w := fundWorld()
	reg := catalog().Interface1()
	manage := get(t, reg, "manage_fund")
	find := get(t, reg, "find_fund_entities")

	created := decode(t, manage.Invoke(w, map[string]any{
		"action": "create",
		"fund_data": map[string]any{
			"name":                        "Apex",
			"fund_type":                   "bond_funds",
			"manager_id":                  "7",
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	if created["success"] != true {
		t.Fatalf("create failed: %v", created["error"])
	}
	fundID := created["fund_id"].(string)

	found := decode(t, find.Invoke(w, map[string]any{
		"entity_type": "funds",
		"filters":     map[string]any{"name": "Apex"},
	}))
	if found["success"] != true || found["count"] != float64(1) {
		t.Fatalf("expected a single match: %v", found)
	}
	rec := found["results"].([]any)[0].(map[string]any)
	if rec["fund_id"] != fundID {
		t.Fatalf("expected fund_id %s, got %v", fundID, rec["fund_id"])
	}
	if rec["status"] != "open" || rec["base_currency"] != "USD" {
		t.Fatalf("defaults missing from discovered record: %v", rec)
	}

	// Round trip: the discovered record equals the created post-image.
	if diff := cmp.Diff(created["fund_data"], found["results"].([]any)[0]); diff != "" {
		t.Fatalf("create/discover round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestForbiddenStatusTransition(t *testing.T) {
	w := fundWorld()
	w["funds"]["42"] = world.Record{
		"fund_id": "42", "name": "Legacy", "fund_type": "bond_funds", "manager_id": "7",
		"status": "closed", "base_currency": "USD",
		"created_at": validate.DefaultInstant, "updated_at": validate.DefaultInstant,
	}
	manage := get(t, catalog().Interface1(), "manage_fund")

	env := decode(t, manage.Invoke(w, map[string]any{
		"action":  "update",
		"fund_id": "42",
		"fund_data": map[string]any{
			"status":                      "open",
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	if env["success"] != false {
		t.Fatal("closed fund reopened")
	}
	if env["error"] != "Invalid transition from closed to open" {
		t.Fatalf("unexpected prose: %q", env["error"])
	}
}

func TestDuplicateNameFailureAtomicity(t *testing.T) {
	w := fundWorld()
	manage := get(t, catalog().Interface1(), "manage_fund")

	create := func(name string) map[string]any {
		return decode(t, manage.Invoke(w, map[string]any{
			"action": "create",
			"fund_data": map[string]any{
				"name":                        name,
				"fund_type":                   "bond_funds",
				"manager_id":                  "7",
				"fund_manager_approval":       true,
				"compliance_officer_approval": true,
			},
		}))
	}

	first := create("Apex")
	if first["success"] != true {
		t.Fatalf("seed create failed: %v", first["error"])
	}

	before := w.Clone()
	dup := create("APEX")
	if dup["success"] != false || !strings.Contains(dup["error"].(string), "duplicate") {
		t.Fatalf("case-insensitive duplicate accepted: %v", dup)
	}
	if diff := cmp.Diff(before, w); diff != "" {
		t.Fatalf("failed create mutated the world (-want +got):\n%s", diff)
	}

	// The failed call consumed no id: the next create gets the id the failed
	// one would have used.
	next := create("Summit")
	if next["success"] != true {
		t.Fatalf("follow-up create failed: %v", next["error"])
	}
	if next["fund_id"] != "2" {
		t.Fatalf("failed create consumed an id: got %v", next["fund_id"])
	}
}

func TestApprovalBooleansNeverPersisted(t *testing.T) {
	w := fundWorld()
	manage := get(t, catalog().Interface1(), "manage_fund")
	env := decode(t, manage.Invoke(w, map[string]any{
		"action": "create",
		"fund_data": map[string]any{
			"name":                        "Apex",
			"fund_type":                   "bond_funds",
			"manager_id":                  "7",
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	id := env["fund_id"].(string)
	stored := w.Get("funds", id)
	for field := range stored {
		if strings.HasSuffix(field, "_approval") {
			t.Fatalf("approval boolean %s persisted", field)
		}
	}
	if stored["fund_id"] != id {
		t.Fatal("id field must equal the record's key")
	}
}

func TestUpdateIdentityTouchesOnlyUpdatedAt(t *testing.T) {
	w := fundWorld()
	manage := get(t, catalog().Interface1(), "manage_fund")
	env := decode(t, manage.Invoke(w, map[string]any{
		"action": "create",
		"fund_data": map[string]any{
			"name":                        "Apex",
			"fund_type":                   "bond_funds",
			"manager_id":                  "7",
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	id := env["fund_id"].(string)

	// Approvals only, no business field: rejected, world untouched.
	before := w.Clone()
	identity := decode(t, manage.Invoke(w, map[string]any{
		"action":  "update",
		"fund_id": id,
		"fund_data": map[string]any{
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	if identity["success"] != false || !strings.Contains(identity["error"].(string), "no updatable field") {
		t.Fatalf("identity update not rejected: %v", identity)
	}
	if diff := cmp.Diff(before, w); diff != "" {
		t.Fatalf("rejected update mutated the world (-want +got):\n%s", diff)
	}
}

func TestInterface2SharesSemantics(t *testing.T) {
	c := catalog()
	reg2 := c.Interface2()

	if _, ok := reg2.Get("administer_fund"); !ok {
		t.Fatal("interface_2 missing administer_fund")
	}
	if _, ok := reg2.Get("lookup_fund_entities"); !ok {
		t.Fatal("interface_2 missing lookup_fund_entities")
	}
	if _, ok := reg2.Get("manage_fund"); ok {
		t.Fatal("interface_2 leaked interface_1 names")
	}

	w := fundWorld()
	env := decode(t, get(t, reg2, "administer_fund").Invoke(w, map[string]any{
		"action": "create",
		"fund_data": map[string]any{
			"name":                        "Apex",
			"fund_type":                   "bond_funds",
			"manager_id":                  "7",
			"fund_manager_approval":       true,
			"compliance_officer_approval": true,
		},
	}))
	if env["success"] != true {
		t.Fatalf("renamed tool diverged: %v", env["error"])
	}
}
