package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// IndustryKind classifies an industry by economic sector
type IndustryKind string

const (
	IndustryKindPrimary   IndustryKind = "Primary"
	IndustryKindSecondary IndustryKind = "Secondary"
	IndustryKindTertiary  IndustryKind = "Tertiary"
)

// IsValid reports whether the kind is one of the known sectors
func (k IndustryKind) IsValid() bool {
	return k == IndustryKindPrimary || k == IndustryKindSecondary || k == IndustryKindTertiary
}

// technologyStep is the per-level production multiplier adjustment: each
// technology level shaves 5% off input needs and adds 5% to output yield.
var technologyStep = decimal.NewFromFloat(0.05)

// ResourceFlow is one input or output row of an industry: the per-cycle
// quantity of a resource consumed or produced at production level 1.
type ResourceFlow struct {
	resource string
	quantity decimal.Decimal
}

func NewResourceFlow(resource string, quantity decimal.Decimal) *ResourceFlow {
	return &ResourceFlow{resource: resource, quantity: quantity}
}

func (f *ResourceFlow) Resource() string          { return f.resource }
func (f *ResourceFlow) Quantity() decimal.Decimal { return f.quantity }

// adjust moves the per-cycle quantity by delta, flooring at zero
func (f *ResourceFlow) adjust(delta decimal.Decimal) {
	f.quantity = f.quantity.Add(delta)
	if f.quantity.IsNegative() {
		f.quantity = decimal.Zero
	}
}

// Industry is one production unit owned by a country. It consumes its input
// rows and produces its output rows once per turn, scaled by production
// level and technology multipliers, and carries at most one in-flight
// technology upgrade and one in-flight expansion.
type Industry struct {
	industryID string
	kind       IndustryKind
	subType    string

	productionLevel int
	technologyLevel int

	skilledEmployed   int
	unskilledEmployed int

	inputs  []*ResourceFlow
	outputs []*ResourceFlow

	upgrade   *TechnologyUpgrade
	expansion *IndustryExpansion
}

// NewIndustry creates an industry with validation
func NewIndustry(
	industryID string,
	kind IndustryKind,
	subType string,
	productionLevel, technologyLevel int,
	skilledEmployed, unskilledEmployed int,
) (*Industry, error) {
	if industryID == "" {
		return nil, shared.NewDomainError("industry id cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("invalid industry kind: " + string(kind))
	}
	if productionLevel < 0 || technologyLevel < 0 {
		return nil, shared.NewDomainError("industry levels cannot be negative")
	}
	if skilledEmployed < 0 || unskilledEmployed < 0 {
		return nil, shared.NewDomainError("employed worker counts cannot be negative")
	}
	return &Industry{
		industryID:        industryID,
		kind:              kind,
		subType:           subType,
		productionLevel:   productionLevel,
		technologyLevel:   technologyLevel,
		skilledEmployed:   skilledEmployed,
		unskilledEmployed: unskilledEmployed,
	}, nil
}

// ReconstructIndustry restores an industry from persistence
func ReconstructIndustry(
	industryID string,
	kind IndustryKind,
	subType string,
	productionLevel, technologyLevel int,
	skilledEmployed, unskilledEmployed int,
	inputs, outputs []*ResourceFlow,
	upgrade *TechnologyUpgrade,
	expansion *IndustryExpansion,
) *Industry {
	return &Industry{
		industryID:        industryID,
		kind:              kind,
		subType:           subType,
		productionLevel:   productionLevel,
		technologyLevel:   technologyLevel,
		skilledEmployed:   skilledEmployed,
		unskilledEmployed: unskilledEmployed,
		inputs:            inputs,
		outputs:           outputs,
		upgrade:           upgrade,
		expansion:         expansion,
	}
}

func (i *Industry) IndustryID() string     { return i.industryID }
func (i *Industry) Kind() IndustryKind     { return i.kind }
func (i *Industry) SubType() string        { return i.subType }
func (i *Industry) ProductionLevel() int   { return i.productionLevel }
func (i *Industry) TechnologyLevel() int   { return i.technologyLevel }
func (i *Industry) SkilledEmployed() int   { return i.skilledEmployed }
func (i *Industry) UnskilledEmployed() int { return i.unskilledEmployed }

func (i *Industry) Inputs() []*ResourceFlow  { return i.inputs }
func (i *Industry) Outputs() []*ResourceFlow { return i.outputs }

func (i *Industry) Upgrade() *TechnologyUpgrade   { return i.upgrade }
func (i *Industry) Expansion() *IndustryExpansion { return i.expansion }

// AddInput appends an input row. Per-cycle quantities cannot be negative;
// the production feasibility pass trusts every row it measures.
func (i *Industry) AddInput(resource string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("inputs",
			fmt.Sprintf("input quantity for %s cannot be negative, got %s", resource, quantity))
	}
	i.inputs = append(i.inputs, NewResourceFlow(resource, quantity))
	return nil
}

// AddOutput appends an output row, rejecting negative per-cycle quantities
func (i *Industry) AddOutput(resource string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("outputs",
			fmt.Sprintf("output quantity for %s cannot be negative, got %s", resource, quantity))
	}
	i.outputs = append(i.outputs, NewResourceFlow(resource, quantity))
	return nil
}

// InputMultiplier returns 1 - 0.05 * technology_level. Technology levels are
// bounded upstream so this stays non-negative.
func (i *Industry) InputMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(technologyStep.Mul(decimal.NewFromInt(int64(i.technologyLevel))))
}

// OutputMultiplier returns 1 + 0.05 * technology_level
func (i *Industry) OutputMultiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Add(technologyStep.Mul(decimal.NewFromInt(int64(i.technologyLevel))))
}

// RequiredInput returns the quantity of one input row the industry needs to
// operate this turn: per-cycle quantity x production level x input multiplier
func (i *Industry) RequiredInput(f *ResourceFlow) decimal.Decimal {
	return f.Quantity().
		Mul(decimal.NewFromInt(int64(i.productionLevel))).
		Mul(i.InputMultiplier())
}

// ProducedOutput returns the quantity of one output row the industry yields
// when it operates: per-cycle quantity x production level x output multiplier
func (i *Industry) ProducedOutput(f *ResourceFlow) decimal.Decimal {
	return f.Quantity().
		Mul(decimal.NewFromInt(int64(i.productionLevel))).
		Mul(i.OutputMultiplier())
}

// BeginUpgrade attaches an in-flight technology upgrade.
// An industry runs at most one at a time.
func (i *Industry) BeginUpgrade(u *TechnologyUpgrade) error {
	if i.upgrade != nil && !i.upgrade.IsCompleted() {
		return shared.NewValidationError("upgrade", "industry "+i.industryID+" already has an upgrade in progress")
	}
	i.upgrade = u
	return nil
}

// BeginExpansion attaches an in-flight expansion.
// An industry runs at most one at a time.
func (i *Industry) BeginExpansion(e *IndustryExpansion) error {
	if i.expansion != nil && !i.expansion.IsCompleted() {
		return shared.NewValidationError("expansion", "industry "+i.industryID+" already has an expansion in progress")
	}
	i.expansion = e
	return nil
}

// EmployWorkers records workers joining the industry's payroll
func (i *Industry) EmployWorkers(skilled, unskilled int) {
	i.skilledEmployed += skilled
	i.unskilledEmployed += unskilled
}
