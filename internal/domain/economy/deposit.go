package economy

import (
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// Deposit is a country's finite, depleting source of one raw resource.
// Reserves only ever move down; there is no replenishment mechanism.
type Deposit struct {
	resource       string
	totalReserves  decimal.Decimal
	extractionRate decimal.Decimal
}

// NewDeposit creates a deposit with the given reserves and per-turn rate
func NewDeposit(resource string, totalReserves, extractionRate decimal.Decimal) (*Deposit, error) {
	if resource == "" {
		return nil, shared.NewDomainError("deposit resource cannot be empty")
	}
	if totalReserves.IsNegative() {
		return nil, shared.NewDomainError("deposit reserves cannot be negative")
	}
	if extractionRate.IsNegative() {
		return nil, shared.NewDomainError("extraction rate cannot be negative")
	}
	return &Deposit{resource: resource, totalReserves: totalReserves, extractionRate: extractionRate}, nil
}

func (d *Deposit) Resource() string               { return d.resource }
func (d *Deposit) TotalReserves() decimal.Decimal { return d.totalReserves }
func (d *Deposit) ExtractionRate() decimal.Decimal { return d.extractionRate }

// Depleted reports whether the deposit has nothing left to extract
func (d *Deposit) Depleted() bool {
	return !d.totalReserves.IsPositive()
}

// Extract advances depletion by one turn and returns the extracted quantity:
// min(extraction_rate, total_reserves), or zero once depleted.
func (d *Deposit) Extract() decimal.Decimal {
	if d.Depleted() {
		return decimal.Zero
	}
	extracted := d.extractionRate
	if d.totalReserves.LessThan(extracted) {
		extracted = d.totalReserves
	}
	d.totalReserves = d.totalReserves.Sub(extracted)
	shared.AssertInvariant(!d.totalReserves.IsNegative(),
		"reserves>=0", "deposit of %s went negative", d.resource)
	return extracted
}
