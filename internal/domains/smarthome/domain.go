// Package smarthome is the smart-home catalog: device registration and guest
// access codes. Guest codes are random 10-character identifiers over an
// alphabet that excludes ambiguous characters; revocation is a status
// transition, never a delete.
package smarthome

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// Admissible enumerations.
var (
	DeviceTypes    = []string{"light", "thermostat", "camera", "lock", "speaker"}
	DeviceStatuses = []string{"active", "offline", "retired"}
	CodeStatuses   = []string{"active", "revoked", "expired"}
)

func deviceSpec() ops.WriteSpec {
	return ops.WriteSpec{
		Table:   "devices",
		Entity:  "device",
		IDField: "device_id",
		Fields: []ops.Field{
			{Name: "name", Required: true},
			{Name: "device_type", Required: true, Enum: DeviceTypes},
			{Name: "mac_address", Required: true, Format: ops.FormatMAC},
			{Name: "room", Nullable: true},
			{Name: "status", Enum: DeviceStatuses},
		},
		Unique:   []string{"mac_address"},
		Defaults: map[string]any{"status": "active"},
		ForbiddenTransitions: map[string][]string{
			"retired": {"active", "offline"},
		},
	}
}

func guestCodeSpec() ops.WriteSpec {
	return ops.WriteSpec{
		Table:   "guest_codes",
		Entity:  "guest code",
		IDField: "code_id",
		Fields: []ops.Field{
			{Name: "guest_name", Required: true},
			{Name: "granted_by", Required: true, Ref: &ops.Ref{Table: "users", Statuses: []string{"active"}}},
			{Name: "expires_at", Format: ops.FormatDate, Nullable: true},
			{Name: "status", Enum: CodeStatuses},
		},
		Defaults: map[string]any{"status": "active"},
		ForbiddenTransitions: map[string][]string{
			"revoked": {"active"},
			"expired": {"active"},
		},
	}
}

// Catalog builds the smart-home tools over shared collaborators. The random
// source for guest codes is injected so tests are deterministic.
type Catalog struct {
	clock  validate.Clock
	alloc  *world.Allocator
	codes  *world.CodeGenerator
	logger *zap.Logger
}

// NewCatalog creates the catalog. A nil logger disables logging.
func NewCatalog(clock validate.Clock, rng *rand.Rand, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		clock:  clock,
		alloc:  world.NewAllocator(nil),
		codes:  world.NewCodeGenerator(rng),
		logger: logger,
	}
}

// Interface1 is the canonical smart-home vocabulary.
func (c *Catalog) Interface1() *tool.Registry {
	return tool.NewRegistry("interface_1",
		c.manageDeviceTool().WithLogger(c.logger),
		c.manageGuestAccessTool().WithLogger(c.logger),
		c.discoverHomeEntitiesTool().WithLogger(c.logger),
	)
}

// Interface2 exposes the same semantics under renamed tools.
func (c *Catalog) Interface2() *tool.Registry {
	return c.Interface1().Derive("interface_2", map[string]string{
		"manage_device":          "administer_device",
		"manage_guest_access":    "process_guest_access_operations",
		"discover_home_entities": "search_home_entities",
	})
}
