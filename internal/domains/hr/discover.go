package hr

import (
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func employeeQuerySpec() ops.QuerySpec {
	return ops.QuerySpec{
		Entities: map[string]ops.EntityQuery{
			"employees": {
				Table:       "employees",
				IDField:     "employee_id",
				RangeFields: []string{"start_date"},
			},
			"users":        {Table: "users", IDField: "user_id"},
			"audit_trails": {Table: "audit_trails", IDField: "audit_id"},
		},
	}
}

func (c *Catalog) lookupEmployeeEntitiesTool() *tool.Unit {
	spec := employeeQuerySpec()
	return tool.New(
		"lookup_employee_entities",
		"Look up employees, users or audit trail entries. Filters match by exact equality; start_date supports start_date_from and start_date_to inclusive bounds.",
		[]tool.Param{
			{
				Name:        "entity_type",
				Type:        "string",
				Description: "Table to query",
				Required:    true,
				Enum:        spec.EntityTypes(),
			},
			{
				Name:        "filters",
				Type:        "object",
				Description: "Exact-equality filters, ANDed; date fields accept _from/_to range bounds",
			},
		},
		func(w world.World, args map[string]any) string {
			entityType, _ := args["entity_type"].(string)
			filters, _ := args["filters"].(map[string]any)
			return ops.Discover(w, spec, entityType, filters)
		},
	)
}
