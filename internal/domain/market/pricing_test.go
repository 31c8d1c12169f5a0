package market_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

func newTestResource(t *testing.T) *market.Resource {
	t.Helper()
	resource, err := market.NewResource(
		"Iron",
		decimal.NewFromInt(100), // base
		decimal.NewFromInt(100), // current
		decimal.NewFromInt(50),  // min
		decimal.NewFromInt(200), // max
		decimal.NewFromInt(50),  // quantity threshold
		decimal.NewFromInt(100), // max transaction per turn
	)
	require.NoError(t, err)
	return resource
}

func TestPricingEngine_BuyRaisesPrice(t *testing.T) {
	resource := newTestResource(t)
	engine := market.NewPricingEngine(market.DefaultElasticity)

	// pct = 0.05 * 10 / 50 = 0.01, so 100 -> 101
	price, err := engine.ApplyTrade(resource, market.TransactionBuy, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(101)), "got %s", price)
	assert.True(t, resource.CurrentPrice().Equal(decimal.NewFromInt(101)))
}

func TestPricingEngine_SellLowersPrice(t *testing.T) {
	resource := newTestResource(t)
	engine := market.NewPricingEngine(market.DefaultElasticity)

	price, err := engine.ApplyTrade(resource, market.TransactionSell, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(99)), "got %s", price)
}

func TestPricingEngine_ClampsToPriceBand(t *testing.T) {
	resource := newTestResource(t)
	engine := market.NewPricingEngine(market.DefaultElasticity)

	// A huge sell would push the price far below min; it clamps instead
	price, err := engine.ApplyTrade(resource, market.TransactionSell, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(90)))

	for i := 0; i < 10; i++ {
		price, err = engine.ApplyTrade(resource, market.TransactionSell, decimal.NewFromInt(100))
		require.NoError(t, err)
	}
	assert.True(t, price.Equal(decimal.NewFromInt(50)), "price should bottom out at min, got %s", price)

	// And a run of buys tops out at max
	for i := 0; i < 30; i++ {
		price, err = engine.ApplyTrade(resource, market.TransactionBuy, decimal.NewFromInt(100))
		require.NoError(t, err)
	}
	assert.True(t, price.Equal(decimal.NewFromInt(200)), "price should top out at max, got %s", price)
}

func TestPricingEngine_RejectsNonPositiveQuantity(t *testing.T) {
	resource := newTestResource(t)
	engine := market.NewPricingEngine(market.DefaultElasticity)

	_, err := engine.ApplyTrade(resource, market.TransactionBuy, decimal.Zero)
	assert.Error(t, err)

	_, err = engine.ApplyTrade(resource, market.TransactionBuy, decimal.NewFromInt(-5))
	assert.Error(t, err)

	// Price never moved
	assert.True(t, resource.CurrentPrice().Equal(decimal.NewFromInt(100)))
}

func TestPricingEngine_RejectsUntradeableResource(t *testing.T) {
	placeholder, err := market.NewPlaceholderResource("Mystery")
	require.NoError(t, err)
	assert.False(t, placeholder.Tradeable())

	engine := market.NewPricingEngine(market.DefaultElasticity)
	_, err = engine.ApplyTrade(placeholder, market.TransactionBuy, decimal.NewFromInt(1))

	var untradeable *market.UntradeableResourceError
	assert.ErrorAs(t, err, &untradeable)
}

func TestSnapshotPrices(t *testing.T) {
	resource := newTestResource(t)
	points := market.SnapshotPrices(7, []*market.Resource{resource})

	require.Len(t, points, 1)
	assert.Equal(t, 7, points[0].Turn)
	assert.Equal(t, "Iron", points[0].Resource)
	assert.True(t, points[0].Price.Equal(decimal.NewFromInt(100)))
}
