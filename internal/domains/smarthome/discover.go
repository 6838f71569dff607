package smarthome

import (
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func homeQuerySpec() ops.QuerySpec {
	return ops.QuerySpec{
		Entities: map[string]ops.EntityQuery{
			"devices": {Table: "devices", IDField: "device_id"},
			"guest_codes": {
				Table:       "guest_codes",
				IDField:     "code_id",
				RangeFields: []string{"expires_at"},
			},
			"users": {Table: "users", IDField: "user_id"},
		},
	}
}

func (c *Catalog) discoverHomeEntitiesTool() *tool.Unit {
	spec := homeQuerySpec()
	return tool.New(
		"discover_home_entities",
		"Look up devices, guest codes or users. Filters match by exact equality; expires_at supports _from/_to inclusive bounds.",
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
