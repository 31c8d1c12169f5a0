package market

import (
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// Resource is one globally traded commodity: a single authoritative price
// shared by all countries, bounded to [min, max], plus the elasticity and
// per-turn trading parameters. Price mutation happens only through the
// PricingEngine.
type Resource struct {
	name string

	basePrice    decimal.Decimal
	currentPrice decimal.Decimal
	minPrice     decimal.Decimal
	maxPrice     decimal.Decimal

	quantityThreshold     decimal.Decimal
	maxTransactionPerTurn decimal.Decimal
}

// NewResource creates a fully initialized, tradeable resource
func NewResource(
	name string,
	basePrice, currentPrice, minPrice, maxPrice decimal.Decimal,
	quantityThreshold, maxTransactionPerTurn decimal.Decimal,
) (*Resource, error) {
	if name == "" {
		return nil, shared.NewDomainError("resource name cannot be empty")
	}
	if minPrice.GreaterThan(maxPrice) {
		return nil, shared.NewDomainError("resource min price cannot exceed max price")
	}
	if currentPrice.LessThan(minPrice) || currentPrice.GreaterThan(maxPrice) {
		return nil, shared.NewDomainError("resource current price must sit within [min, max]")
	}
	if quantityThreshold.IsNegative() || maxTransactionPerTurn.IsNegative() {
		return nil, shared.NewDomainError("resource market parameters cannot be negative")
	}
	return &Resource{
		name:                  name,
		basePrice:             basePrice,
		currentPrice:          currentPrice,
		minPrice:              minPrice,
		maxPrice:              maxPrice,
		quantityThreshold:     quantityThreshold,
		maxTransactionPerTurn: maxTransactionPerTurn,
	}, nil
}

// NewPlaceholderResource creates a resource with zeroed market parameters.
// Action payloads may name resources the market has never priced; the
// engine records them so production can flow, but they stay untradeable
// until the market-setup collaborator fills the real parameters in.
func NewPlaceholderResource(name string) (*Resource, error) {
	return NewResource(name, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
}

func (r *Resource) Name() string { return r.name }

func (r *Resource) BasePrice() decimal.Decimal    { return r.basePrice }
func (r *Resource) CurrentPrice() decimal.Decimal { return r.currentPrice }
func (r *Resource) MinPrice() decimal.Decimal     { return r.minPrice }
func (r *Resource) MaxPrice() decimal.Decimal     { return r.maxPrice }

func (r *Resource) QuantityThreshold() decimal.Decimal     { return r.quantityThreshold }
func (r *Resource) MaxTransactionPerTurn() decimal.Decimal { return r.maxTransactionPerTurn }

// Tradeable reports whether the resource's market parameters allow trading
func (r *Resource) Tradeable() bool {
	return r.quantityThreshold.IsPositive()
}

// setPrice clamps the price into [min, max] and stores it.
// Only the PricingEngine calls this.
func (r *Resource) setPrice(price decimal.Decimal) {
	if price.LessThan(r.minPrice) {
		price = r.minPrice
	}
	if price.GreaterThan(r.maxPrice) {
		price = r.maxPrice
	}
	r.currentPrice = price
	shared.AssertInvariant(
		r.currentPrice.GreaterThanOrEqual(r.minPrice) && r.currentPrice.LessThanOrEqual(r.maxPrice),
		"min<=price<=max", "price of %s escaped [%s, %s]", r.name, r.minPrice, r.maxPrice)
}

// InitializeMarketParameters replaces placeholder parameters with real
// market data. Owned by the market-setup collaborator, not the turn engine.
func (r *Resource) InitializeMarketParameters(
	basePrice, minPrice, maxPrice decimal.Decimal,
	quantityThreshold, maxTransactionPerTurn decimal.Decimal,
) error {
	if minPrice.GreaterThan(maxPrice) {
		return shared.NewDomainError("resource min price cannot exceed max price")
	}
	if basePrice.LessThan(minPrice) || basePrice.GreaterThan(maxPrice) {
		return shared.NewDomainError("resource base price must sit within [min, max]")
	}
	if !quantityThreshold.IsPositive() {
		return shared.NewDomainError("quantity threshold must be positive")
	}
	if maxTransactionPerTurn.IsNegative() {
		return shared.NewDomainError("max transaction per turn cannot be negative")
	}
	r.basePrice = basePrice
	r.currentPrice = basePrice
	r.minPrice = minPrice
	r.maxPrice = maxPrice
	r.quantityThreshold = quantityThreshold
	r.maxTransactionPerTurn = maxTransactionPerTurn
	return nil
}
