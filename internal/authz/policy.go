// Package authz resolves whether a caller may perform a write action:
// directly through their role, or through an approved escalation recorded in
// the world state. The per-domain policy is data, not code.
package authz

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default table names consulted by the resolver.
const (
	DefaultUsersTable     = "users"
	DefaultApprovalsTable = "approvals"
)

// ActionPolicy is the authorization rule for one action.
type ActionPolicy struct {
	// Roles that may perform the action directly.
	Roles []string `yaml:"roles"`
	// ApprovalLabel is the requested_action value an approval record must
	// carry to unlock tier-2 escalation. Empty means the action does not
	// support escalation.
	ApprovalLabel string `yaml:"approval_label,omitempty"`
}

// Policy maps action names to their authorization rules for one domain.
type Policy struct {
	UsersTable     string                  `yaml:"users_table,omitempty"`
	ApprovalsTable string                  `yaml:"approvals_table,omitempty"`
	Actions        map[string]ActionPolicy `yaml:"actions"`
}

// LoadPolicy parses a YAML policy document.
func LoadPolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid authorization policy: %w", err)
	}
	if len(p.Actions) == 0 {
		return nil, fmt.Errorf("authorization policy declares no actions")
	}
	return &p, nil
}

func (p *Policy) usersTable() string {
	if p.UsersTable != "" {
		return p.UsersTable
	}
	return DefaultUsersTable
}

func (p *Policy) approvalsTable() string {
	if p.ApprovalsTable != "" {
		return p.ApprovalsTable
	}
	return DefaultApprovalsTable
}
