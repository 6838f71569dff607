package hr

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/audit"
	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) manageEmployeeTool() *tool.Unit {
	return tool.New(
		"manage_employee",
		"Create, update or offboard an employee record. Every write appends an audit trail entry.",
		[]tool.Param{
			{
				Name:          "action",
				Type:          "string",
				Description:   "Operation to perform",
				Required:      true,
				Enum:          []string{"create", "update", "offboard"},
				Discriminator: true,
			},
			{
				Name:        "employee_data",
				Type:        "object",
				Description: "Employee fields: first_name, last_name, email, start_date, department, position, phone, manager_id, status",
			},
			{
				Name:        "employee_id",
				Type:        "string",
				Description: "Employee id (required for update and offboard)",
			},
			{
				Name:        "user_id",
				Type:        "string",
				Description: "Id of the user performing the operation, recorded in the audit trail",
				Required:    true,
			},
		},
		c.manageEmployee,
	)
}

func (c *Catalog) manageEmployee(w world.World, args map[string]any) string {
	action, _ := args["action"].(string)
	userID, _ := args["user_id"].(string)

	switch action {
	case "create":
		data, ok := args["employee_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("employee_data"))
		}
		id, rec, err := ops.Create(w, c.alloc, c.clock, employeeSpec(), data)
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "employee",
			Action:        "create",
			UserID:        userID,
		})
		return envelope.Success(map[string]any{
			"action":        "create",
			"employee_id":   id,
			"employee_data": rec,
			"message":       fmt.Sprintf("Employee %s created successfully", id),
		})

	case "update":
		id, _ := args["employee_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("employee_id"))
		}
		data, ok := args["employee_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("employee_data"))
		}
		rec, err := ops.Update(w, c.clock, employeeSpec(), id, data)
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "employee",
			Action:        "update",
			UserID:        userID,
		})
		return envelope.Success(map[string]any{
			"action":        "update",
			"employee_id":   id,
			"employee_data": rec,
			"message":       fmt.Sprintf("Employee %s updated successfully", id),
		})

	case "offboard":
		id, _ := args["employee_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("employee_id"))
		}
		var oldStatus any
		if current := w.Get("employees", id); current != nil {
			oldStatus = current["status"]
		}
		rec, err := ops.Transition(w, c.clock, employeeSpec(), id, "offboarded")
		if err != nil {
			return envelope.Failure(err)
		}
		c.audit.Record(w, audit.Entry{
			ReferenceID:   id,
			ReferenceType: "employee",
			Action:        "offboard",
			UserID:        userID,
			FieldName:     "status",
			OldValue:      oldStatus,
			NewValue:      "offboarded",
		})
		return envelope.Success(map[string]any{
			"action":        "offboard",
			"employee_id":   id,
			"employee_data": rec,
			"message":       fmt.Sprintf("Employee %s offboarded", id),
		})

	default:
		return envelope.Failure(envelope.InvalidAction("action", action, []string{"create", "update", "offboard"}))
	}
}
