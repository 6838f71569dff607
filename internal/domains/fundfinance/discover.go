package fundfinance

import (
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func fundQuerySpec() ops.QuerySpec {
	return ops.QuerySpec{
		Entities: map[string]ops.EntityQuery{
			"funds": {Table: "funds", IDField: "fund_id"},
			"users": {Table: "users", IDField: "user_id"},
		},
	}
}

func (c *Catalog) findFundEntitiesTool() *tool.Unit {
	spec := fundQuerySpec()
	return tool.New(
		"find_fund_entities",
		"Look up funds or users. Filters match by exact equality across all keys; omitted filters return the whole table.",
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
