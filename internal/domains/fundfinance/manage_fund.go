package fundfinance

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) manageFundTool() *tool.Unit {
	return tool.New(
		"manage_fund",
		"Create or update an investment fund. Both the fund manager approval and the compliance officer approval must accompany every write.",
		[]tool.Param{
			{
				Name:          "action",
				Type:          "string",
				Description:   "Operation to perform",
				Required:      true,
				Enum:          []string{"create", "update"},
				Discriminator: true,
			},
			{
				Name:        "fund_data",
				Type:        "object",
				Description: "Fund fields: name, fund_type, manager_id, size, base_currency, status, plus fund_manager_approval and compliance_officer_approval",
				Required:    true,
			},
			{
				Name:        "fund_id",
				Type:        "string",
				Description: "Fund id (required for update)",
			},
		},
		c.manageFund,
	)
}

func (c *Catalog) manageFund(w world.World, args map[string]any) string {
	action, _ := args["action"].(string)
	data, ok := args["fund_data"].(map[string]any)
	if !ok {
		return envelope.Failure(envelope.MissingField("fund_data"))
	}

	switch action {
	case "create":
		id, rec, err := ops.Create(w, c.alloc, c.clock, fundSpec(), data)
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":    "create",
			"fund_id":   id,
			"fund_data": rec,
			"message":   fmt.Sprintf("Fund %s created successfully", id),
		})
	case "update":
		id, _ := args["fund_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("fund_id"))
		}
		rec, err := ops.Update(w, c.clock, fundSpec(), id, data)
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":    "update",
			"fund_id":   id,
			"fund_data": rec,
			"message":   fmt.Sprintf("Fund %s updated successfully", id),
		})
	default:
		// Unreachable: the discriminator enum is enforced by the pipeline.
		return envelope.Failure(envelope.InvalidAction("action", action, []string{"create", "update"}))
	}
}
