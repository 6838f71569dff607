// Package hr is the human-resources catalog: employee lifecycle tools with
// audit-trail emission. Employees are never deleted; offboarding is a status
// transition.
package hr

import (
	"go.uber.org/zap"

	"github.com/atlas-sim/harness/internal/audit"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// AuditIDBase is where the audit_trails table starts numbering.
const AuditIDBase = 7001

// Admissible enumerations.
var (
	Departments = []string{
		"engineering",
		"finance",
		"people_operations",
		"sales",
		"support",
	}
	EmployeeStatuses = []string{"active", "on_leave", "offboarded"}
)

func employeeSpec() ops.WriteSpec {
	return ops.WriteSpec{
		Table:   "employees",
		Entity:  "employee",
		IDField: "employee_id",
		Fields: []ops.Field{
			{Name: "first_name", Required: true},
			{Name: "last_name", Required: true},
			{Name: "email", Required: true, Format: ops.FormatEmail},
			{Name: "start_date", Required: true, Format: ops.FormatDate},
			{Name: "department", Enum: Departments},
			{Name: "position"},
			{Name: "phone", Format: ops.FormatPhone, Nullable: true},
			{Name: "manager_id", Ref: &ops.Ref{Table: "employees", Statuses: []string{"active"}}, Nullable: true},
			{Name: "status", Enum: EmployeeStatuses},
		},
		Unique:   []string{"email"},
		Defaults: map[string]any{"status": "active"},
		ForbiddenTransitions: map[string][]string{
			"offboarded": {"active", "on_leave"},
		},
	}
}

// Catalog builds the HR tools over shared collaborators.
type Catalog struct {
	clock  validate.Clock
	alloc  *world.Allocator
	audit  *audit.Writer
	logger *zap.Logger
}

// NewCatalog creates the catalog. A nil logger disables logging.
func NewCatalog(clock validate.Clock, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	alloc := world.NewAllocator(map[string]int{
		audit.TrailsTable: AuditIDBase,
	})
	return &Catalog{
		clock:  clock,
		alloc:  alloc,
		audit:  audit.NewWriter(audit.TrailsTable, alloc, clock, logger),
		logger: logger,
	}
}

// Interface1 is the canonical HR vocabulary.
func (c *Catalog) Interface1() *tool.Registry {
	return tool.NewRegistry("interface_1",
		c.manageEmployeeTool().WithLogger(c.logger),
		c.lookupEmployeeEntitiesTool().WithLogger(c.logger),
	)
}

// Interface2 exposes the same semantics under renamed tools.
func (c *Catalog) Interface2() *tool.Registry {
	return c.Interface1().Derive("interface_2", map[string]string{
		"manage_employee":          "process_employee_operations",
		"lookup_employee_entities": "discover_employee_entities",
	})
}
