// Package incidents is the incident-management catalog. Closing an incident
// is role-restricted with an approval-request fallback, and every write is
// logged to the access_logs table.
package incidents

import (
	"go.uber.org/zap"

	"github.com/atlas-sim/harness/internal/audit"
	"github.com/atlas-sim/harness/internal/authz"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// AccessLogIDBase is where the access_logs table starts numbering.
const AccessLogIDBase = 8001

// Admissible enumerations.
var (
	Severities       = []string{"low", "medium", "high", "critical"}
	IncidentStatuses = []string{"open", "in_progress", "resolved", "closed"}
)

// Authorized actions. Closing supports tier-2 escalation through an approved
// approval request.
const (
	ActionCloseIncident    = "close_incident"
	ActionEscalateIncident = "escalate_incident"
)

func incidentPolicy() *authz.Policy {
	return &authz.Policy{
		Actions: map[string]authz.ActionPolicy{
			ActionCloseIncident: {
				Roles:         []string{"incident_manager", "technical_support"},
				ApprovalLabel: "Incident Closure approval",
			},
			ActionEscalateIncident: {
				Roles: []string{"incident_manager"},
			},
		},
	}
}

func incidentSpec() ops.WriteSpec {
	return ops.WriteSpec{
		Table:   "incidents",
		Entity:  "incident",
		IDField: "incident_id",
		Fields: []ops.Field{
			{Name: "title", Required: true},
			{Name: "severity", Required: true, Enum: Severities},
			{Name: "reporter_id", Required: true, Ref: &ops.Ref{Table: "users"}},
			{Name: "assignee_id", Ref: &ops.Ref{Table: "users", Statuses: []string{"active"}}, Nullable: true},
			{Name: "description", Nullable: true},
			{Name: "status", Enum: IncidentStatuses},
		},
		Defaults: map[string]any{"status": "open"},
		ForbiddenTransitions: map[string][]string{
			"closed":   {"open", "in_progress"},
			"resolved": {"open"},
		},
	}
}

// Catalog builds the incident tools over shared collaborators.
type Catalog struct {
	clock    validate.Clock
	alloc    *world.Allocator
	audit    *audit.Writer
	resolver *authz.Resolver
	logger   *zap.Logger
}

// NewCatalog creates the catalog. A nil logger disables logging.
func NewCatalog(clock validate.Clock, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	alloc := world.NewAllocator(map[string]int{
		audit.AccessLogsTable: AccessLogIDBase,
	})
	return &Catalog{
		clock:    clock,
		alloc:    alloc,
		audit:    audit.NewWriter(audit.AccessLogsTable, alloc, clock, logger),
		resolver: authz.NewResolver(incidentPolicy()),
		logger:   logger,
	}
}

// Interface1 is the canonical incident-management vocabulary.
func (c *Catalog) Interface1() *tool.Registry {
	return tool.NewRegistry("interface_1",
		c.manageIncidentTool().WithLogger(c.logger),
		c.checkAuthorizationTool().WithLogger(c.logger),
		c.discoverIncidentEntitiesTool().WithLogger(c.logger),
	)
}

// Interface2 exposes the same semantics under renamed tools.
func (c *Catalog) Interface2() *tool.Registry {
	return c.Interface1().Derive("interface_2", map[string]string{
		"manage_incident":            "process_incident_operations",
		"check_authorization":        "verify_access_permissions",
		"discover_incident_entities": "find_incident_entities",
	})
}
