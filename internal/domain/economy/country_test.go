package economy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

func newTestCountry(t *testing.T, capital int64, skilled, unskilled int) *economy.Country {
	t.Helper()
	country, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(capital), skilled, unskilled)
	require.NoError(t, err)
	return country
}

func TestNewCountry_Validation(t *testing.T) {
	_, err := economy.NewCountry(1, 1, "", decimal.NewFromInt(100), 10, 10)
	assert.Error(t, err)

	_, err = economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(-1), 10, 10)
	assert.Error(t, err)

	_, err = economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(100), -1, 10)
	assert.Error(t, err)
}

func TestCountry_DebitCapital(t *testing.T) {
	country := newTestCountry(t, 100, 0, 0)

	require.NoError(t, country.DebitCapital(decimal.NewFromInt(40)))
	assert.True(t, country.Capital().Equal(decimal.NewFromInt(60)))

	// Debit past the pool fails and leaves the balance untouched
	err := country.DebitCapital(decimal.NewFromInt(61))
	require.Error(t, err)
	var capitalErr *economy.InsufficientCapitalError
	assert.ErrorAs(t, err, &capitalErr)
	assert.True(t, country.Capital().Equal(decimal.NewFromInt(60)))

	// Exact balance is allowed
	require.NoError(t, country.DebitCapital(decimal.NewFromInt(60)))
	assert.True(t, country.Capital().IsZero())
}

func TestCountry_HireWorkers_ChecksBothPoolsBeforeMutating(t *testing.T) {
	country := newTestCountry(t, 0, 10, 3)

	// Unskilled pool cannot cover: nothing moves, including the skilled side
	err := country.HireWorkers(5, 4)
	require.Error(t, err)
	assert.Equal(t, 10, country.UnemployedSkilledWorkers())
	assert.Equal(t, 3, country.UnemployedUnskilledWorkers())

	require.NoError(t, country.HireWorkers(5, 3))
	assert.Equal(t, 5, country.UnemployedSkilledWorkers())
	assert.Equal(t, 0, country.UnemployedUnskilledWorkers())
}

func TestCountry_ReleaseWorkers(t *testing.T) {
	country := newTestCountry(t, 0, 10, 10)
	require.NoError(t, country.HireWorkers(6, 4))

	country.ReleaseWorkers(2, 1)
	assert.Equal(t, 6, country.UnemployedSkilledWorkers())
	assert.Equal(t, 7, country.UnemployedUnskilledWorkers())

	// Releasing past the total workforce breaks the invariant
	assert.Panics(t, func() {
		country.ReleaseWorkers(100, 0)
	})
}

func TestCountry_EnsureStockpile_LazyCreation(t *testing.T) {
	country := newTestCountry(t, 0, 0, 0)

	assert.Nil(t, country.StockpileOf("Iron"))

	stock := country.EnsureStockpile("Iron")
	require.NotNil(t, stock)
	assert.True(t, stock.Quantity().IsZero())

	// Second call returns the same stockpile
	stock.Add(decimal.NewFromInt(5))
	again := country.EnsureStockpile("Iron")
	assert.True(t, again.Quantity().Equal(decimal.NewFromInt(5)))
}

func TestCountry_AddDeposit_RejectsDuplicates(t *testing.T) {
	country := newTestCountry(t, 0, 0, 0)

	deposit, err := economy.NewDeposit("Coal", decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, country.AddDeposit(deposit))

	second, err := economy.NewDeposit("Coal", decimal.NewFromInt(50), decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Error(t, country.AddDeposit(second))
}

func TestStockpile_Consume(t *testing.T) {
	stock := economy.ReconstructStockpile("Iron", decimal.NewFromInt(3))

	// Over-consumption fails and leaves the balance untouched
	err := stock.Consume(decimal.NewFromInt(5))
	require.Error(t, err)
	var stockErr *economy.InsufficientStockpileError
	assert.ErrorAs(t, err, &stockErr)
	assert.True(t, stock.Quantity().Equal(decimal.NewFromInt(3)))

	require.NoError(t, stock.Consume(decimal.NewFromInt(3)))
	assert.True(t, stock.Quantity().IsZero())
}

func TestDeposit_ExtractionStopsAtReserves(t *testing.T) {
	deposit, err := economy.NewDeposit("Coal", decimal.NewFromInt(25), decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, deposit.Extract().Equal(decimal.NewFromInt(10)))
	assert.True(t, deposit.Extract().Equal(decimal.NewFromInt(10)))

	// Final turn yields only what is left
	assert.True(t, deposit.Extract().Equal(decimal.NewFromInt(5)))
	assert.True(t, deposit.Depleted())

	// Depleted deposits are permanent no-ops
	assert.True(t, deposit.Extract().IsZero())
}

func TestIndustry_TechnologyMultipliers(t *testing.T) {
	industry, err := economy.NewIndustry("steel-1", economy.IndustryKindSecondary, "Steel", 3, 2, 10, 20)
	require.NoError(t, err)

	// Level 2: inputs shrink to 0.9, outputs grow to 1.1
	assert.True(t, industry.InputMultiplier().Equal(decimal.NewFromFloat(0.9)))
	assert.True(t, industry.OutputMultiplier().Equal(decimal.NewFromFloat(1.1)))

	input := economy.NewResourceFlow("Iron", decimal.NewFromInt(10))
	// 10 * 3 * 0.9 = 27
	assert.True(t, industry.RequiredInput(input).Equal(decimal.NewFromInt(27)))

	output := economy.NewResourceFlow("Steel", decimal.NewFromInt(10))
	// 10 * 3 * 1.1 = 33
	assert.True(t, industry.ProducedOutput(output).Equal(decimal.NewFromInt(33)))
}

func TestGame_AdvanceTurn(t *testing.T) {
	game, err := economy.NewGame(1, 2)
	require.NoError(t, err)

	// Turns advance one at a time
	assert.Error(t, game.AdvanceTurn(2))
	require.NoError(t, game.AdvanceTurn(1))
	assert.True(t, game.IsActive())

	require.NoError(t, game.AdvanceTurn(2))
	assert.False(t, game.IsActive())

	// A finished game cannot advance
	assert.Error(t, game.AdvanceTurn(3))
}

func TestIndustry_RejectsNegativeFlowQuantities(t *testing.T) {
	industry, err := economy.NewIndustry("mill-1", economy.IndustryKindSecondary, "Steel Mill", 1, 0, 2, 8)
	require.NoError(t, err)

	// A negative input row would pass every coverage check and then fail
	// consumption halfway through a production cycle
	err = industry.AddInput("Coal", decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
	assert.Empty(t, industry.Inputs())

	err = industry.AddOutput("Steel", decimal.NewFromInt(-5))
	require.Error(t, err)
	assert.Empty(t, industry.Outputs())

	assert.NoError(t, industry.AddInput("Iron", decimal.NewFromInt(5)))
	assert.NoError(t, industry.AddOutput("Steel", decimal.Zero))
}
