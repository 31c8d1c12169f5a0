package market

import (
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultElasticity is the proportional price-adjustment factor: a trade of
// one full quantity threshold moves the price by 5%.
var DefaultElasticity = decimal.NewFromFloat(0.05)

// PricingEngine owns every price mutation in the system. Prices are shared
// across all countries, so the read-modify-write of a trade sits behind a
// single mutex; per-country phases may then run concurrently without racing
// on price state. Determinism of the final price still comes from the
// orchestrator feeding trades in its fixed order.
type PricingEngine struct {
	mu         sync.Mutex
	elasticity decimal.Decimal
}

// NewPricingEngine creates an engine with the given elasticity factor.
// Zero or negative elasticity falls back to the default.
func NewPricingEngine(elasticity decimal.Decimal) *PricingEngine {
	if !elasticity.IsPositive() {
		elasticity = DefaultElasticity
	}
	return &PricingEngine{elasticity: elasticity}
}

// ApplyTrade moves a resource's price in response to an executed trade and
// returns the new price:
//
//	pct = elasticity * quantity / quantity_threshold
//	Buy:  price * (1 + pct)    Sell: price * (1 - pct)
//
// clamped to the resource's [min, max] band. A resource without a positive
// quantity threshold rejects the trade outright.
func (e *PricingEngine) ApplyTrade(r *Resource, kind TransactionType, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, NewInvalidQuantityError(r.Name(), quantity)
	}
	if !r.Tradeable() {
		return decimal.Zero, NewUntradeableResourceError(r.Name())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pct := e.elasticity.Mul(quantity).Div(r.QuantityThreshold())
	one := decimal.NewFromInt(1)

	var factor decimal.Decimal
	switch kind {
	case TransactionBuy:
		factor = one.Add(pct)
	case TransactionSell:
		factor = one.Sub(pct)
	default:
		return decimal.Zero, NewInvalidQuantityError(r.Name(), quantity)
	}

	r.setPrice(r.CurrentPrice().Mul(factor))
	return r.CurrentPrice(), nil
}
