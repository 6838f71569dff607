package incidents

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/audit"
	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) manageIncidentTool() *tool.Unit {
	return tool.New(
		"manage_incident",
		"Create, update or close an incident. Closing requires an incident manager or technical support role, or an approved escalation.",
		[]tool.Param{
			{
				Name:          "action",
				Type:          "string",
				Description:   "Operation to perform",
				Required:      true,
				Enum:          []string{"create", "update", "close"},
				Discriminator: true,
			},
			{
				Name:        "incident_data",
				Type:        "object",
				Description: "Incident fields: title, severity, reporter_id, assignee_id, description, status",
			},
			{
				Name:        "incident_id",
				Type:        "string",
				Description: "Incident id (required for update and close)",
			},
			{
				Name:        "requester_email",
				Type:        "string",
				Description: "Email or id of the caller; close is authorization-checked against it",
				Required:    true,
			},
		},
		c.manageIncident,
	)
}

func (c *Catalog) manageIncident(w world.World, args map[string]any) string {
	action, _ := args["action"].(string)
	requester, _ := args["requester_email"].(string)

	switch action {
	case "create":
		data, ok := args["incident_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("incident_data"))
		}
		id, rec, err := ops.Create(w, c.alloc, c.clock, incidentSpec(), data)
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "incident",
			Action:        "create",
			UserID:        requester,
		})
		return envelope.Success(map[string]any{
			"action":        "create",
			"incident_id":   id,
			"incident_data": rec,
			"message":       fmt.Sprintf("Incident %s created successfully", id),
		})

	case "update":
		id, _ := args["incident_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("incident_id"))
		}
		data, ok := args["incident_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("incident_data"))
		}
		rec, err := ops.Update(w, c.clock, incidentSpec(), id, data)
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "incident",
			Action:        "update",
			UserID:        requester,
		})
		return envelope.Success(map[string]any{
			"action":        "update",
			"incident_id":   id,
			"incident_data": rec,
			"message":       fmt.Sprintf("Incident %s updated successfully", id),
		})

	case "close":
		id, _ := args["incident_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("incident_id"))
		}
		// Authorization runs before any mutation; a denial leaves the world
		// untouched.
		decision := c.resolver.Check(w, ActionCloseIncident, requester)
		if !decision.Authorized {
			return envelope.Failure(envelope.NotAuthorized(decision.Reason))
		}
		var oldStatus any
		if current := w.Get("incidents", id); current != nil {
			oldStatus = current["status"]
		}
		rec, err := ops.Transition(w, c.clock, incidentSpec(), id, "closed")
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "incident",
			Action:        "close",
			UserID:        requester,
			FieldName:     "status",
			OldValue:      oldStatus,
			NewValue:      "closed",
		})
		return envelope.Success(map[string]any{
			"action":        "close",
			"incident_id":   id,
			"incident_data": rec,
			"message":       fmt.Sprintf("Incident %s closed", id),
		})

	default:
		return envelope.Failure(envelope.InvalidAction("action", action, []string{"create", "update", "close"}))
	}
}
