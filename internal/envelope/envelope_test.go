package envelope

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("envelope is not valid JSON: %v\n%s", err, s)
	}
	return out
}

func TestSuccessInjectsFlag(t *testing.T) {
	env := decode(t, Success(map[string]any{
		"action":  "create",
		"fund_id": "1",
		"message": "Fund 1 created successfully",
	}))
	if env["success"] != true {
		t.Fatal("expected success:true")
	}
	if env["fund_id"] != "1" {
		t.Fatalf("payload field lost: %v", env)
	}
	if env["message"] == "" {
		t.Fatal("successes carry a non-empty message")
	}
}

func TestFailureCarriesHaltPrefix(t *testing.T) {
	env := decode(t, Failure(Haltf("user has no role")))
	if env["success"] != false {
		t.Fatal("expected success:false")
	}
	if got := env["error"].(string); !strings.HasPrefix(got, HaltPrefix) {
		t.Fatalf("expected Halt prefix, got %q", got)
	}
}

func TestFailureRetryableHasNoPrefix(t *testing.T) {
	env := decode(t, Failure(Failf("missing required field: name")))
	if got := env["error"].(string); strings.HasPrefix(got, HaltPrefix) {
		t.Fatalf("retryable failure must not halt: %q", got)
	}
}

func TestFailureMsgPassesProseThrough(t *testing.T) {
	env := decode(t, FailureMsg("Halt: role agent is not authorized for close_incident"))
	if got := env["error"].(string); got != "Halt: role agent is not authorized for close_incident" {
		t.Fatalf("prose altered: %q", got)
	}
}

func TestForbiddenTransitionProse(t *testing.T) {
	// Agents pattern-match this string; it is part of the contract.
	if got := ForbiddenTransition("closed", "open").Error(); got != "Invalid transition from closed to open" {
		t.Fatalf("unexpected prose: %q", got)
	}
}

func TestApprovalsRequiredNamesFullSet(t *testing.T) {
	err := ApprovalsRequired("create", []string{"fund_manager_approval", "compliance_officer_approval"})
	if !strings.Contains(err.Msg, "fund_manager_approval") ||
		!strings.Contains(err.Msg, "compliance_officer_approval") {
		t.Fatalf("error must name every required approval: %q", err.Msg)
	}
	if !err.Halt {
		t.Fatal("missing consent is not retryable")
	}
}

func TestTaxonomyConstructors(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
		halt bool
	}{
		{InvalidAction("action", "delete", []string{"create", "update"}), "invalid action", true},
		{MissingField("name"), "missing required field: name", false},
		{EmptyField("name"), "must not be empty", false},
		{UnknownFields([]string{"bogus"}), "unknown fields: bogus", false},
		{InvalidEnum("fund_type", "crypto", []string{"equity_funds"}), "invalid fund_type", false},
		{BadFormat("email", "an email address"), "invalid email format", false},
		{NotPositive("size"), "greater than 0", false},
		{Duplicate("fund", "name", "Apex"), "duplicate fund", false},
		{MissingReferent("users", "99"), `referenced user "99" does not exist`, false},
		{WrongReferentStatus("users", "7", "inactive", []string{"active"}), "has status", true},
		{AlreadyInState("fund 42", "closed"), "already closed", true},
		{NotAuthorized("role agent is not authorized for close_incident"), "not authorized", true},
	}
	for _, tc := range cases {
		if !strings.Contains(tc.err.Msg, tc.want) {
			t.Fatalf("expected %q in %q", tc.want, tc.err.Msg)
		}
		if tc.err.Halt != tc.halt {
			t.Fatalf("halt mismatch for %q: want %v", tc.err.Msg, tc.halt)
		}
	}
}
