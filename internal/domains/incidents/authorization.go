package incidents

import (
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) checkAuthorizationTool() *tool.Unit {
	return tool.New(
		"check_authorization",
		"Answer whether the requester may perform an incident action, either directly through their role or through an approved escalation. Read-only.",
		[]tool.Param{
			{
				Name:        "action",
				Type:        "string",
				Description: "Action to check",
				Required:    true,
				Enum:        []string{ActionCloseIncident, ActionEscalateIncident},
			},
			{
				Name:        "requester_email",
				Type:        "string",
				Description: "Email or id of the caller",
				Required:    true,
			},
		},
		func(w world.World, args map[string]any) string {
			action, _ := args["action"].(string)
			requester, _ := args["requester_email"].(string)
			return c.resolver.Check(w, action, requester).Envelope()
		},
	)
}
