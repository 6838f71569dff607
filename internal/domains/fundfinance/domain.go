// Package fundfinance is the fund-finance catalog: fund lifecycle tools over
// the shared core. Fund writes are approval-gated (fund manager plus
// compliance officer) and funds are never deleted, only closed.
package fundfinance

import (
	"go.uber.org/zap"

	"github.com/atlas-sim/harness/internal/ops"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

// Admissible enumerations.
var (
	FundTypes = []string{
		"equity_funds",
		"bond_funds",
		"money_market_funds",
		"real_estate_funds",
		"hedge_funds",
	}
	FundStatuses = []string{"open", "closed"}
	Currencies   = []string{"USD", "EUR", "GBP", "JPY"}
)

// Approval booleans consumed by fund writes.
var fundApprovals = []string{"fund_manager_approval", "compliance_officer_approval"}

func fundSpec() ops.WriteSpec {
	return ops.WriteSpec{
		Table:   "funds",
		Entity:  "fund",
		IDField: "fund_id",
		Fields: []ops.Field{
			{Name: "name", Required: true},
			{Name: "fund_type", Required: true, Enum: FundTypes},
			{Name: "manager_id", Required: true, Ref: &ops.Ref{Table: "users", Statuses: []string{"active"}}},
			{Name: "size", Positive: true, Nullable: true},
			{Name: "base_currency", Enum: Currencies},
			{Name: "status", Enum: FundStatuses},
		},
		Unique:    []string{"name"},
		Approvals: fundApprovals,
		Defaults: map[string]any{
			"status":        "open",
			"base_currency": "USD",
		},
		ForbiddenTransitions: map[string][]string{
			"closed": {"open"},
		},
	}
}

// Catalog builds the fund-finance tools over shared collaborators.
type Catalog struct {
	clock  validate.Clock
	alloc  *world.Allocator
	logger *zap.Logger
}

// NewCatalog creates the catalog. A nil logger disables logging.
func NewCatalog(clock validate.Clock, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		clock:  clock,
		alloc:  world.NewAllocator(nil),
		logger: logger,
	}
}

// Interface1 is the canonical fund-finance vocabulary.
func (c *Catalog) Interface1() *tool.Registry {
	return tool.NewRegistry("interface_1",
		c.manageFundTool().WithLogger(c.logger),
		c.findFundEntitiesTool().WithLogger(c.logger),
	)
}

// Interface2 exposes the same semantics under renamed tools.
func (c *Catalog) Interface2() *tool.Registry {
	return c.Interface1().Derive("interface_2", map[string]string{
		"manage_fund":        "administer_fund",
		"find_fund_entities": "lookup_fund_entities",
	})
}
