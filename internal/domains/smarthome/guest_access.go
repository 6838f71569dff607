package smarthome

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) manageGuestAccessTool() *tool.Unit {
	return tool.New(
		"manage_guest_access",
		"Grant or revoke a guest access code. Granting generates a fresh 10-character code; revoking is a status transition.",
		[]tool.Param{
			{
				Name:          "action",
				Type:          "string",
				Description:   "Operation to perform",
				Required:      true,
				Enum:          []string{"grant", "revoke"},
				Discriminator: true,
			},
			{
				Name:        "guest_data",
				Type:        "object",
				Description: "Guest fields: guest_name, granted_by, expires_at",
			},
			{
				Name:        "code_id",
				Type:        "string",
				Description: "Guest code id (required for revoke)",
			},
		},
		c.manageGuestAccess,
	)
}

func (c *Catalog) manageGuestAccess(w world.World, args map[string]any) string {
	action, _ := args["action"].(string)

	switch action {
	case "grant":
		data, ok := args["guest_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("guest_data"))
		}
		// Generate the code before the write; taken() scans existing codes
		// so a collision retries instead of colliding.
		code, err := c.codes.Generate(func(candidate string) bool {
			for _, rec := range w["guest_codes"] {
				if existing, ok := rec["code"].(string); ok && existing == candidate {
					return true
				}
			}
			return false
		})
		if err != nil {
			return envelope.FailureMsg(err.Error())
		}
		id, rec, opErr := ops.Create(w, c.alloc, c.clock, guestCodeSpec(), data)
		if opErr != nil {
			return envelope.Failure(opErr)
		}
		// Attach the generated code to the published record.
		w["guest_codes"][id]["code"] = code
		rec["code"] = code
		return envelope.Success(map[string]any{
			"action":    "grant",
			"code_id":   id,
			"code_data": rec,
			"message":   fmt.Sprintf("Guest code %s granted to %v", id, data["guest_name"]),
		})

	case "revoke":
		id, _ := args["code_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("code_id"))
		}
		rec, err := ops.Transition(w, c.clock, guestCodeSpec(), id, "revoked")
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":    "revoke",
			"code_id":   id,
			"code_data": rec,
			"message":   fmt.Sprintf("Guest code %s revoked", id),
		})

	default:
		return envelope.Failure(envelope.InvalidAction("action", action, []string{"grant", "revoke"}))
	}
}
