package economy

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// ProgressionState is the observable state of a multi-turn progression
type ProgressionState string

const (
	// ProgressionPending means the countdown still has turns to run
	ProgressionPending ProgressionState = "PENDING"

	// ProgressionCompleting means the countdown hit zero this turn but the
	// benefit has not been applied yet
	ProgressionCompleting ProgressionState = "COMPLETING"

	// ProgressionCompleted is terminal: the benefit has been applied exactly once
	ProgressionCompleted ProgressionState = "COMPLETED"
)

// countdown is the shared timer behind both progression kinds. It decrements
// by exactly one per turn and never moves again after completion.
type countdown struct {
	remainingTime     int
	totalTimeRequired int
	completed         bool
}

func (c *countdown) RemainingTime() int     { return c.remainingTime }
func (c *countdown) TotalTimeRequired() int { return c.totalTimeRequired }
func (c *countdown) IsCompleted() bool      { return c.completed }

// State derives the progression state from the timer
func (c *countdown) State() ProgressionState {
	switch {
	case c.completed:
		return ProgressionCompleted
	case c.remainingTime <= 0:
		return ProgressionCompleting
	default:
		return ProgressionPending
	}
}

// advance decrements the countdown by one turn. Returns true when the timer
// reached zero or below on this call, meaning the benefit is due.
func (c *countdown) advance(kind string) (bool, error) {
	if c.completed {
		return false, NewProgressionCompletedError(kind)
	}
	c.remainingTime--
	return c.remainingTime <= 0, nil
}

// markCompleted flips the terminal flag; callers apply the benefit in the
// same step so it can never run twice
func (c *countdown) markCompleted(kind string) error {
	if c.completed {
		return NewProgressionCompletedError(kind)
	}
	c.completed = true
	return nil
}

// UpgradeBenefits is the structured effect map of a technology upgrade.
// Percentages are expressed as 0-100 values.
type UpgradeBenefits struct {
	SkilledWorkerReductionPct   decimal.Decimal `json:"skilled_worker_reduction_pct"`
	UnskilledWorkerReductionPct decimal.Decimal `json:"unskilled_worker_reduction_pct"`
	InputDecreasePct            decimal.Decimal `json:"input_decrease_pct"`
	OutputIncreasePct           decimal.Decimal `json:"output_increase_pct"`
}

// validate rejects percentages outside [0, 100]. Offer payloads come from
// an external collaborator, so an out-of-range reduction must surface as a
// recoverable rejection before it can drive worker or flow counts negative.
func (b UpgradeBenefits) validate() error {
	hundred := decimal.NewFromInt(100)
	for _, pct := range []struct {
		field string
		value decimal.Decimal
	}{
		{"skilled_worker_reduction_pct", b.SkilledWorkerReductionPct},
		{"unskilled_worker_reduction_pct", b.UnskilledWorkerReductionPct},
		{"input_decrease_pct", b.InputDecreasePct},
		{"output_increase_pct", b.OutputIncreasePct},
	} {
		if pct.value.IsNegative() || pct.value.GreaterThan(hundred) {
			return shared.NewValidationError(pct.field,
				fmt.Sprintf("percentage must be between 0 and 100, got %s", pct.value))
		}
	}
	return nil
}

// TechnologyUpgrade is a delayed technology-level change on one industry,
// advanced by countdown and applied exactly once on completion.
type TechnologyUpgrade struct {
	countdown
	industryID         string
	newTechnologyLevel int
	benefits           UpgradeBenefits
}

// NewTechnologyUpgrade creates a pending upgrade with a countdown of
// timeToComplete turns
func NewTechnologyUpgrade(industryID string, newTechnologyLevel, timeToComplete int, benefits UpgradeBenefits) (*TechnologyUpgrade, error) {
	if industryID == "" {
		return nil, shared.NewDomainError("upgrade industry id cannot be empty")
	}
	if timeToComplete <= 0 {
		return nil, shared.NewDomainError("upgrade time to complete must be positive")
	}
	if newTechnologyLevel < 0 {
		return nil, shared.NewDomainError("new technology level cannot be negative")
	}
	if err := benefits.validate(); err != nil {
		return nil, err
	}
	return &TechnologyUpgrade{
		countdown:          countdown{remainingTime: timeToComplete, totalTimeRequired: timeToComplete},
		industryID:         industryID,
		newTechnologyLevel: newTechnologyLevel,
		benefits:           benefits,
	}, nil
}

// ReconstructTechnologyUpgrade restores an upgrade from persistence
func ReconstructTechnologyUpgrade(industryID string, newTechnologyLevel, remainingTime, totalTimeRequired int, benefits UpgradeBenefits, completed bool) *TechnologyUpgrade {
	return &TechnologyUpgrade{
		countdown:          countdown{remainingTime: remainingTime, totalTimeRequired: totalTimeRequired, completed: completed},
		industryID:         industryID,
		newTechnologyLevel: newTechnologyLevel,
		benefits:           benefits,
	}
}

func (u *TechnologyUpgrade) IndustryID() string         { return u.industryID }
func (u *TechnologyUpgrade) NewTechnologyLevel() int    { return u.newTechnologyLevel }
func (u *TechnologyUpgrade) Benefits() UpgradeBenefits  { return u.benefits }

// Advance decrements the countdown. Returns true when the upgrade is due to
// complete this turn.
func (u *TechnologyUpgrade) Advance() (bool, error) {
	return u.advance("technology upgrade")
}

// Complete applies the one-time benefit transform and marks the upgrade
// terminal in a single step:
//   - the industry jumps to the new technology level
//   - the configured percentages of employed workers (rounded down) return
//     to the country's unemployed pools
//   - input rows shrink by the input-decrease percentage (floored at zero)
//   - output rows grow by the output-increase percentage
func (u *TechnologyUpgrade) Complete(ind *Industry, c *Country) error {
	if err := u.markCompleted("technology upgrade"); err != nil {
		return err
	}

	ind.technologyLevel = u.newTechnologyLevel

	freedSkilled := pctOfWorkers(ind.skilledEmployed, u.benefits.SkilledWorkerReductionPct)
	freedUnskilled := pctOfWorkers(ind.unskilledEmployed, u.benefits.UnskilledWorkerReductionPct)
	ind.skilledEmployed -= freedSkilled
	ind.unskilledEmployed -= freedUnskilled
	c.ReleaseWorkers(freedSkilled, freedUnskilled)

	for _, f := range ind.inputs {
		f.adjust(pctOf(f.quantity, u.benefits.InputDecreasePct).Neg())
	}
	for _, f := range ind.outputs {
		f.adjust(pctOf(f.quantity, u.benefits.OutputIncreasePct))
	}
	return nil
}

// IndustryExpansion is a delayed capacity change on one industry: capital
// and workers are committed when the expansion starts, the new production
// level and flow deltas land when the countdown completes.
type IndustryExpansion struct {
	countdown
	industryID         string
	newProductionLevel int

	additionalSkilled   int
	additionalUnskilled int

	outputIncreases map[string]decimal.Decimal
	inputIncreases  map[string]decimal.Decimal
}

// NewIndustryExpansion creates a pending expansion with a countdown of
// timeToComplete turns
func NewIndustryExpansion(
	industryID string,
	newProductionLevel, timeToComplete int,
	additionalSkilled, additionalUnskilled int,
	outputIncreases, inputIncreases map[string]decimal.Decimal,
) (*IndustryExpansion, error) {
	if industryID == "" {
		return nil, shared.NewDomainError("expansion industry id cannot be empty")
	}
	if timeToComplete <= 0 {
		return nil, shared.NewDomainError("expansion time to complete must be positive")
	}
	if newProductionLevel < 0 {
		return nil, shared.NewDomainError("new production level cannot be negative")
	}
	if additionalSkilled < 0 || additionalUnskilled < 0 {
		return nil, shared.NewDomainError("additional worker counts cannot be negative")
	}
	return &IndustryExpansion{
		countdown:           countdown{remainingTime: timeToComplete, totalTimeRequired: timeToComplete},
		industryID:          industryID,
		newProductionLevel:  newProductionLevel,
		additionalSkilled:   additionalSkilled,
		additionalUnskilled: additionalUnskilled,
		outputIncreases:     outputIncreases,
		inputIncreases:      inputIncreases,
	}, nil
}

// ReconstructIndustryExpansion restores an expansion from persistence
func ReconstructIndustryExpansion(
	industryID string,
	newProductionLevel, remainingTime, totalTimeRequired int,
	additionalSkilled, additionalUnskilled int,
	outputIncreases, inputIncreases map[string]decimal.Decimal,
	completed bool,
) *IndustryExpansion {
	return &IndustryExpansion{
		countdown:           countdown{remainingTime: remainingTime, totalTimeRequired: totalTimeRequired, completed: completed},
		industryID:          industryID,
		newProductionLevel:  newProductionLevel,
		additionalSkilled:   additionalSkilled,
		additionalUnskilled: additionalUnskilled,
		outputIncreases:     outputIncreases,
		inputIncreases:      inputIncreases,
	}
}

func (e *IndustryExpansion) IndustryID() string      { return e.industryID }
func (e *IndustryExpansion) NewProductionLevel() int { return e.newProductionLevel }
func (e *IndustryExpansion) AdditionalSkilled() int  { return e.additionalSkilled }
func (e *IndustryExpansion) AdditionalUnskilled() int { return e.additionalUnskilled }

func (e *IndustryExpansion) OutputIncreases() map[string]decimal.Decimal { return e.outputIncreases }
func (e *IndustryExpansion) InputIncreases() map[string]decimal.Decimal  { return e.inputIncreases }

// Advance decrements the countdown. Returns true when the expansion is due
// to complete this turn.
func (e *IndustryExpansion) Advance() (bool, error) {
	return e.advance("industry expansion")
}

// Complete applies the one-time capacity transform and marks the expansion
// terminal: the industry jumps to the new production level and each named
// resource delta merges into the matching flow row, creating the row when
// the industry never carried that resource before.
func (e *IndustryExpansion) Complete(ind *Industry) error {
	if err := e.markCompleted("industry expansion"); err != nil {
		return err
	}

	ind.productionLevel = e.newProductionLevel
	mergeFlowDeltas(&ind.outputs, e.outputIncreases)
	mergeFlowDeltas(&ind.inputs, e.inputIncreases)
	return nil
}

// mergeFlowDeltas folds resource deltas into flow rows in resource-name
// order so repeated runs touch rows deterministically
func mergeFlowDeltas(rows *[]*ResourceFlow, deltas map[string]decimal.Decimal) {
	for _, resource := range sortedKeys(deltas) {
		delta := deltas[resource]
		var row *ResourceFlow
		for _, f := range *rows {
			if f.resource == resource {
				row = f
				break
			}
		}
		if row == nil {
			row = NewResourceFlow(resource, decimal.Zero)
			*rows = append(*rows, row)
		}
		row.adjust(delta)
	}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pctOf returns quantity * pct / 100
func pctOf(quantity, pct decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pct).Div(decimal.NewFromInt(100))
}

// pctOfWorkers returns floor(count * pct / 100)
func pctOfWorkers(count int, pct decimal.Decimal) int {
	return int(pctOf(decimal.NewFromInt(int64(count)), pct).Floor().IntPart())
}
