package incidents

import (
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func incidentQuerySpec() ops.QuerySpec {
	return ops.QuerySpec{
		Entities: map[string]ops.EntityQuery{
			"incidents":   {Table: "incidents", IDField: "incident_id"},
			"users":       {Table: "users", IDField: "user_id"},
			"approvals":   {Table: "approvals", IDField: "approval_id"},
			"access_logs": {Table: "access_logs", IDField: "audit_id"},
		},
	}
}

func (c *Catalog) discoverIncidentEntitiesTool() *tool.Unit {
	spec := incidentQuerySpec()
	return tool.New(
		"discover_incident_entities",
		"Look up incidents, users, approval requests or access log entries. Filters match by exact equality across all keys.",
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
				Description: "Exact-equality filters, ANDed",
			},
		},
		func(w world.World, args map[string]any) string {
			entityType, _ := args["entity_type"].(string)
			filters, _ := args["filters"].(map[string]any)
			return ops.Discover(w, spec, entityType, filters)
		},
	)
}
