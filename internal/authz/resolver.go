package authz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// Resolver answers authorized / not authorized for a caller and action. It
// is a pure function of the world state and emits no side effects.
type Resolver struct {
	policy *Policy
}

// NewResolver creates a resolver over the given policy.
func NewResolver(policy *Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Decision is the resolver's answer. Exactly one of Message (authorized) or
// Reason (denied) is set.
type Decision struct {
	Authorized bool
	Message    string
	Reason     string
}

// Envelope serializes the decision in the resolver's wire shape.
func (d Decision) Envelope() string {
	var out map[string]any
	if d.Authorized {
		out = map[string]any{"authorized": true, "message": d.Message}
	} else {
		out = map[string]any{"authorized": false, "error": d.Reason}
	}
	data, _ := json.Marshal(out)
	return string(data)
}

// Check resolves authorization for the caller, identified by user id or
// email, to perform the named action.
//
// Tier 1: the caller's user record must exist, be active, and carry a role
// in the action's authorized set.
//
// Tier 2: for actions with an approval label, an approvals record with
// requested_by == caller, requested_action == label, status == approved, and
// an approver whose role is in the authorized set also grants access.
func (r *Resolver) Check(w world.World, action, identity string) Decision {
	ap, ok := r.policy.Actions[action]
	if !ok {
		return Decision{Reason: fmt.Sprintf("unknown action %q", action)}
	}

	userID, user := r.lookupUser(w, identity)
	if user == nil {
		return Decision{Reason: fmt.Sprintf("no user found for %q", identity)}
	}
	if status, _ := user["status"].(string); status != "active" {
		return Decision{Reason: fmt.Sprintf("user %s is not active", userID)}
	}
	role, _ := user["role"].(string)
	if role == "" {
		return Decision{Reason: fmt.Sprintf("user %s has no role", userID)}
	}

	if validate.InEnum(role, ap.Roles) {
		return Decision{
			Authorized: true,
			Message:    fmt.Sprintf("role %s is authorized for %s", role, action),
		}
	}

	if ap.ApprovalLabel != "" && r.hasApprovedEscalation(w, ap, userID, user) {
		return Decision{
			Authorized: true,
			Message:    fmt.Sprintf("approved escalation found for %s", action),
		}
	}

	reason := fmt.Sprintf("role %s is not authorized for %s", role, action)
	if ap.ApprovalLabel != "" {
		reason += " and no approved escalation was found"
	}
	return Decision{Reason: reason}
}

// lookupUser finds the caller by table key or by email field.
func (r *Resolver) lookupUser(w world.World, identity string) (string, world.Record) {
	table := w[r.policy.usersTable()]
	if rec, ok := table[identity]; ok {
		return identity, rec
	}
	want := strings.ToLower(identity)
	for id, rec := range table {
		if email, ok := rec["email"].(string); ok && strings.ToLower(email) == want {
			return id, rec
		}
	}
	return "", nil
}

func (r *Resolver) hasApprovedEscalation(w world.World, ap ActionPolicy, userID string, user world.Record) bool {
	email, _ := user["email"].(string)
	for _, req := range w[r.policy.approvalsTable()] {
		if status, _ := req["status"].(string); status != "approved" {
			continue
		}
		if label, _ := req["requested_action"].(string); label != ap.ApprovalLabel {
			continue
		}
		by, _ := req["requested_by"].(string)
		if by != userID && (email == "" || !strings.EqualFold(by, email)) {
			continue
		}
		approverID, _ := req["approver"].(string)
		_, approver := r.lookupUser(w, approverID)
		if approver == nil {
			continue
		}
		if approverStatus, _ := approver["status"].(string); approverStatus != "active" {
			continue
		}
		approverRole, _ := approver["role"].(string)
		if validate.InEnum(approverRole, ap.Roles) {
			return true
		}
	}
	return false
}
