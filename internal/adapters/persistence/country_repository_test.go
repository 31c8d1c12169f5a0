package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/test/helpers"
)

func seedGame(t *testing.T, repo *persistence.GormGameRepository) *economy.Game {
	t.Helper()
	game, err := economy.NewGame(1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), game))
	return game
}

func TestCountryRepository_RoundTripsFullAggregate(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	seedGame(t, persistence.NewGormGameRepository(db))
	repo := persistence.NewGormCountryRepository(db)

	country, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(2500), 100, 200)
	require.NoError(t, err)
	require.NoError(t, country.HireWorkers(30, 60))

	industry, err := economy.NewIndustry("steel-1", economy.IndustryKindSecondary, "Steel Mill", 2, 1, 30, 60)
	require.NoError(t, err)
	industry.AddInput("Iron", decimal.NewFromInt(9))
	industry.AddInput("Coal", decimal.NewFromInt(3))
	industry.AddOutput("Steel", decimal.NewFromInt(5))

	upgrade, err := economy.NewTechnologyUpgrade("steel-1", 2, 3, economy.UpgradeBenefits{
		InputDecreasePct:  decimal.NewFromInt(10),
		OutputIncreasePct: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.NoError(t, industry.BeginUpgrade(upgrade))

	expansion, err := economy.NewIndustryExpansion("steel-1", 4, 2, 5, 10,
		map[string]decimal.Decimal{"Steel": decimal.NewFromInt(3)}, nil)
	require.NoError(t, err)
	require.NoError(t, industry.BeginExpansion(expansion))

	country.AddIndustry(industry)
	country.EnsureStockpile("Iron").Add(decimal.NewFromFloat(42.5))
	deposit, err := economy.NewDeposit("Coal", decimal.NewFromInt(500), decimal.NewFromInt(25))
	require.NoError(t, err)
	require.NoError(t, country.AddDeposit(deposit))

	// Act
	require.NoError(t, repo.Save(context.Background(), country))
	found, err := repo.FindByID(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Arcadia", found.Name())
	assert.True(t, found.Capital().Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 70, found.UnemployedSkilledWorkers())
	assert.Equal(t, 140, found.UnemployedUnskilledWorkers())

	foundIndustry := found.IndustryByID("steel-1")
	require.NotNil(t, foundIndustry)
	assert.Equal(t, economy.IndustryKindSecondary, foundIndustry.Kind())
	assert.Equal(t, 2, foundIndustry.ProductionLevel())
	assert.Equal(t, 1, foundIndustry.TechnologyLevel())
	assert.Len(t, foundIndustry.Inputs(), 2)
	assert.Len(t, foundIndustry.Outputs(), 1)

	require.NotNil(t, foundIndustry.Upgrade())
	assert.Equal(t, 3, foundIndustry.Upgrade().RemainingTime())
	assert.True(t, foundIndustry.Upgrade().Benefits().OutputIncreasePct.Equal(decimal.NewFromInt(20)))

	require.NotNil(t, foundIndustry.Expansion())
	assert.Equal(t, 4, foundIndustry.Expansion().NewProductionLevel())
	assert.True(t, foundIndustry.Expansion().OutputIncreases()["Steel"].Equal(decimal.NewFromInt(3)))

	require.NotNil(t, found.StockpileOf("Iron"))
	assert.True(t, found.StockpileOf("Iron").Quantity().Equal(decimal.NewFromFloat(42.5)))

	require.Len(t, found.Deposits(), 1)
	assert.True(t, found.Deposits()[0].TotalReserves().Equal(decimal.NewFromInt(500)))
}

func TestCountryRepository_SaveRewritesChildren(t *testing.T) {
	db := helpers.NewTestDB(t)
	seedGame(t, persistence.NewGormGameRepository(db))
	repo := persistence.NewGormCountryRepository(db)

	country, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(100), 10, 10)
	require.NoError(t, err)
	country.EnsureStockpile("Iron").Add(decimal.NewFromInt(5))
	require.NoError(t, repo.Save(context.Background(), country))

	// Mutate and save again: no duplicated child rows
	country.EnsureStockpile("Iron").Add(decimal.NewFromInt(5))
	country.EnsureStockpile("Coal").Add(decimal.NewFromInt(1))
	require.NoError(t, repo.Save(context.Background(), country))

	found, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, found.Stockpiles(), 2)
	assert.True(t, found.StockpileOf("Iron").Quantity().Equal(decimal.NewFromInt(10)))
}

func TestCountryRepository_FindByGameOrdersByID(t *testing.T) {
	db := helpers.NewTestDB(t)
	seedGame(t, persistence.NewGormGameRepository(db))
	repo := persistence.NewGormCountryRepository(db)

	for i, name := range []string{"Arcadia", "Borduria", "Carpathia"} {
		country, err := economy.NewCountry(uint(i+1), 1, name, decimal.NewFromInt(100), 0, 0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), country))
	}

	countries, err := repo.FindByGame(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, countries, 3)
	assert.Equal(t, "Arcadia", countries[0].Name())
	assert.Equal(t, "Borduria", countries[1].Name())
	assert.Equal(t, "Carpathia", countries[2].Name())
}

func TestCountryRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCountryRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	assert.Error(t, err)
}

func TestGameRepository_RoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormGameRepository(db)

	game := seedGame(t, repo)
	require.NoError(t, game.AdvanceTurn(1))
	require.NoError(t, repo.Save(context.Background(), game))

	found, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, found.CurrentTurn())
	assert.Equal(t, 10, found.TotalTurns())
	assert.True(t, found.IsActive())
}
