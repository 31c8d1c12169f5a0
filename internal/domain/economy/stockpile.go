package economy

import (
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// Stockpile is a country's on-hand quantity of one resource. Quantity can
// never go negative through this API; consumers must check availability
// before Consume.
type Stockpile struct {
	resource string
	quantity decimal.Decimal
}

// NewStockpile creates an empty stockpile for a resource
func NewStockpile(resource string) *Stockpile {
	return &Stockpile{resource: resource, quantity: decimal.Zero}
}

// ReconstructStockpile restores a stockpile from persistence
func ReconstructStockpile(resource string, quantity decimal.Decimal) *Stockpile {
	return &Stockpile{resource: resource, quantity: quantity}
}

func (s *Stockpile) Resource() string          { return s.resource }
func (s *Stockpile) Quantity() decimal.Decimal { return s.quantity }

// Covers reports whether the stockpile holds at least the given quantity
func (s *Stockpile) Covers(quantity decimal.Decimal) bool {
	return s.quantity.GreaterThanOrEqual(quantity)
}

// Add credits quantity into the stockpile
func (s *Stockpile) Add(quantity decimal.Decimal) {
	shared.AssertInvariant(!quantity.IsNegative(),
		"stockpile-credit>=0", "negative credit %s of %s", quantity, s.resource)
	s.quantity = s.quantity.Add(quantity)
}

// Consume debits quantity from the stockpile.
// Returns InsufficientStockpileError when the balance cannot cover it.
func (s *Stockpile) Consume(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("consumption quantity cannot be negative")
	}
	if !s.Covers(quantity) {
		return NewInsufficientStockpileError(s.resource, quantity, s.quantity)
	}
	s.quantity = s.quantity.Sub(quantity)
	shared.AssertInvariant(!s.quantity.IsNegative(),
		"stockpile>=0", "stockpile of %s went negative", s.resource)
	return nil
}
