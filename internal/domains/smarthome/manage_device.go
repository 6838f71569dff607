package smarthome

import (
	"fmt"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/world"
)

func (c *Catalog) manageDeviceTool() *tool.Unit {
	return tool.New(
		"manage_device",
		"Register, update or retire a smart-home device. MAC addresses are validated and unique per home.",
		[]tool.Param{
			{
				Name:          "action",
				Type:          "string",
				Description:   "Operation to perform",
				Required:      true,
				Enum:          []string{"register", "update", "retire"},
				Discriminator: true,
			},
			{
				Name:        "device_data",
				Type:        "object",
				Description: "Device fields: name, device_type, mac_address, room, status",
			},
			{
				Name:        "device_id",
				Type:        "string",
				Description: "Device id (required for update and retire)",
			},
		},
		c.manageDevice,
	)
}

func (c *Catalog) manageDevice(w world.World, args map[string]any) string {
	action, _ := args["action"].(string)

	switch action {
	case "register":
		data, ok := args["device_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("device_data"))
		}
		id, rec, err := ops.Create(w, c.alloc, c.clock, deviceSpec(), data)
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":      "register",
			"device_id":   id,
			"device_data": rec,
			"message":     fmt.Sprintf("Device %s registered successfully", id),
		})

	case "update":
		id, _ := args["device_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("device_id"))
		}
		data, ok := args["device_data"].(map[string]any)
		if !ok {
			return envelope.Failure(envelope.MissingField("device_data"))
		}
		rec, err := ops.Update(w, c.clock, deviceSpec(), id, data)
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":      "update",
			"device_id":   id,
			"device_data": rec,
			"message":     fmt.Sprintf("Device %s updated successfully", id),
		})

	case "retire":
		id, _ := args["device_id"].(string)
		if id == "" {
			return envelope.Failure(envelope.MissingField("device_id"))
		}
		rec, err := ops.Transition(w, c.clock, deviceSpec(), id, "retired")
		if err != nil {
			return envelope.Failure(err)
		}
		return envelope.Success(map[string]any{
			"action":      "retire",
			"device_id":   id,
			"device_data": rec,
			"message":     fmt.Sprintf("Device %s retired", id),
		})

	default:
		return envelope.Failure(envelope.InvalidAction("action", action, []string{"register", "update", "retire"}))
	}
}
