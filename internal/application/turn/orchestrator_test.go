package turn_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/application/common"
	"github.com/lvaldes/statecraft/internal/application/turn"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/test/helpers"
)

// listProvider serves fixed decision lists keyed by country and turn
type listProvider struct {
	lists map[uint]map[int][]action.Decision
}

func (p *listProvider) DecisionsFor(ctx context.Context, gameID, countryID uint, turnNumber int) ([]action.Decision, error) {
	return p.lists[countryID][turnNumber], nil
}

func TestProcessTurn_FullTurnAcrossPhases(t *testing.T) {
	db := helpers.NewTestDB(t)
	ctx := context.Background()

	games := persistence.NewGormGameRepository(db)
	countries := persistence.NewGormCountryRepository(db)
	resources := persistence.NewGormResourceRepository(db)
	offers := persistence.NewGormOfferRepository(db)
	trades := persistence.NewGormTransactionRepository(db)
	history := persistence.NewGormPriceHistoryRepository(db)

	game, err := economy.NewGame(1, 2)
	require.NoError(t, err)
	require.NoError(t, games.Save(ctx, game))

	iron, err := market.NewResource("Iron",
		decimal.NewFromInt(100), decimal.NewFromInt(100),
		decimal.NewFromInt(50), decimal.NewFromInt(200),
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, resources.Save(ctx, iron))

	// Arcadia farms grain and mines coal from a deposit
	arcadia, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(5000), 50, 100)
	require.NoError(t, err)
	farm, err := economy.NewIndustry("farm-1", economy.IndustryKindPrimary, "Farm", 2, 0, 5, 20)
	require.NoError(t, err)
	farm.AddOutput("Grain", decimal.NewFromInt(10))
	require.NoError(t, arcadia.HireWorkers(5, 20))
	arcadia.AddIndustry(farm)
	deposit, err := economy.NewDeposit("Coal", decimal.NewFromInt(15), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, arcadia.AddDeposit(deposit))
	require.NoError(t, countries.Save(ctx, arcadia))

	// Borduria only trades
	borduria, err := economy.NewCountry(2, 1, "Borduria", decimal.NewFromInt(3000), 10, 10)
	require.NoError(t, err)
	require.NoError(t, countries.Save(ctx, borduria))

	provider := &listProvider{lists: map[uint]map[int][]action.Decision{
		2: {1: {{
			Kind: action.TypeBuySellResource,
			Trade: &action.TradeDetails{
				Transaction: market.TransactionBuy,
				Resource:    "Iron",
				Quantity:    decimal.NewFromInt(10),
			},
		}}},
	}}

	handler := turn.NewProcessTurnHandler(games, countries, resources, history, offers, trades, provider, market.NewPricingEngine(market.DefaultElasticity))
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*turn.ProcessTurnCommand](m, handler))

	// Turn 1
	response, err := m.Send(ctx, &turn.ProcessTurnCommand{GameID: 1})
	require.NoError(t, err)
	result := response.(*turn.ProcessTurnResponse)

	assert.Equal(t, 1, result.Turn)
	assert.False(t, result.GameOver)
	require.Len(t, result.Countries, 2)
	assert.Equal(t, "Arcadia", result.Countries[0].CountryName)
	assert.Empty(t, result.Countries[0].PhaseErrors)
	require.Len(t, result.Countries[1].Actions, 1)
	assert.True(t, result.Countries[1].Actions[0].Applied)

	// Production and extraction landed for Arcadia
	savedArcadia, err := countries.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, savedArcadia.StockpileOf("Grain").Quantity().Equal(decimal.NewFromInt(20)))
	assert.True(t, savedArcadia.StockpileOf("Coal").Quantity().Equal(decimal.NewFromInt(10)))

	// Borduria's trade settled at the pre-trade price and moved the market
	savedBorduria, err := countries.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, savedBorduria.Capital().Equal(decimal.NewFromInt(2000)))
	assert.True(t, savedBorduria.StockpileOf("Iron").Quantity().Equal(decimal.NewFromInt(10)))

	savedIron, err := resources.FindByName(ctx, "Iron")
	require.NoError(t, err)
	assert.True(t, savedIron.CurrentPrice().Equal(decimal.NewFromInt(101)))

	series, err := history.FindByResource(ctx, 1, "Iron")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, series[0].Price.Equal(decimal.NewFromInt(101)))

	ledger, err := trades.FindByTurn(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, uint(2), ledger[0].CountryID())

	// Turn 2 finishes the game: deposit yields only its remaining 5
	response, err = m.Send(ctx, &turn.ProcessTurnCommand{GameID: 1})
	require.NoError(t, err)
	result = response.(*turn.ProcessTurnResponse)
	assert.Equal(t, 2, result.Turn)
	assert.True(t, result.GameOver)

	savedArcadia, err = countries.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, savedArcadia.StockpileOf("Coal").Quantity().Equal(decimal.NewFromInt(15)))

	// Turn 3 must refuse to run
	_, err = m.Send(ctx, &turn.ProcessTurnCommand{GameID: 1})
	assert.Error(t, err)
}

func TestProcessTurn_OneCountrysFailureDoesNotAbortOthers(t *testing.T) {
	db := helpers.NewTestDB(t)
	ctx := context.Background()

	games := persistence.NewGormGameRepository(db)
	countries := persistence.NewGormCountryRepository(db)
	resources := persistence.NewGormResourceRepository(db)
	offers := persistence.NewGormOfferRepository(db)
	trades := persistence.NewGormTransactionRepository(db)
	history := persistence.NewGormPriceHistoryRepository(db)

	game, err := economy.NewGame(1, 5)
	require.NoError(t, err)
	require.NoError(t, games.Save(ctx, game))

	for i, name := range []string{"Arcadia", "Borduria"} {
		country, err := economy.NewCountry(uint(i+1), 1, name, decimal.NewFromInt(1000), 10, 10)
		require.NoError(t, err)
		require.NoError(t, countries.Save(ctx, country))
	}

	// Arcadia references an offer that does not exist; Borduria does nothing
	provider := &listProvider{lists: map[uint]map[int][]action.Decision{
		1: {1: {{Kind: action.TypeStartNewIndustry, OfferID: "no-such-offer"}}},
	}}

	handler := turn.NewProcessTurnHandler(games, countries, resources, history, offers, trades, provider, market.NewPricingEngine(market.DefaultElasticity))

	response, err := handler.Handle(ctx, &turn.ProcessTurnCommand{GameID: 1})
	require.NoError(t, err)
	result := response.(*turn.ProcessTurnResponse)

	require.Len(t, result.Countries, 2)
	require.Len(t, result.Countries[0].Actions, 1)
	assert.False(t, result.Countries[0].Actions[0].Applied)
	assert.Contains(t, result.Countries[0].Actions[0].Reason, "does not exist")

	// Borduria's turn ran normally and the game advanced
	assert.Empty(t, result.Countries[1].PhaseErrors)
	savedGame, err := games.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, savedGame.CurrentTurn())
}
