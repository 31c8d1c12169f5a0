package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/test/helpers"
)

func TestResourceRepository_RoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormResourceRepository(db)

	resource, err := market.NewResource("Iron",
		decimal.NewFromInt(100), decimal.NewFromFloat(101.5),
		decimal.NewFromInt(50), decimal.NewFromInt(200),
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), resource))

	found, err := repo.FindByName(context.Background(), "Iron")
	require.NoError(t, err)
	assert.True(t, found.CurrentPrice().Equal(decimal.NewFromFloat(101.5)))
	assert.True(t, found.QuantityThreshold().Equal(decimal.NewFromInt(50)))
	assert.True(t, found.Tradeable())
}

func TestResourceRepository_FindAllOrdersByName(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormResourceRepository(db)

	for _, name := range []string{"Steel", "Coal", "Iron"} {
		resource, err := market.NewResource(name,
			decimal.NewFromInt(10), decimal.NewFromInt(10),
			decimal.NewFromInt(1), decimal.NewFromInt(100),
			decimal.NewFromInt(20), decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), resource))
	}

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Coal", all[0].Name())
	assert.Equal(t, "Iron", all[1].Name())
	assert.Equal(t, "Steel", all[2].Name())
}

func TestTransactionRepository_LedgerKeepsExecutionOrder(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)

	executedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, kind := range []market.TransactionType{market.TransactionBuy, market.TransactionSell, market.TransactionBuy} {
		tx, err := market.NewTransaction(1, 4, uint(i+1), "Iron", kind,
			decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(1000), executedAt)
		require.NoError(t, err)
		require.NoError(t, repo.Record(context.Background(), tx))
	}

	txs, err := repo.FindByTurn(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, market.TransactionBuy, txs[0].Kind())
	assert.Equal(t, market.TransactionSell, txs[1].Kind())
	assert.Equal(t, uint(1), txs[0].CountryID())
	assert.Equal(t, uint(3), txs[2].CountryID())
	assert.True(t, txs[0].ExecutedAt().Equal(executedAt))

	// Other turns see nothing
	empty, err := repo.FindByTurn(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPriceHistoryRepository_UpsertsOnReplay(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPriceHistoryRepository(db)

	points := []market.PricePoint{
		{Turn: 1, Resource: "Iron", Price: decimal.NewFromInt(101)},
		{Turn: 1, Resource: "Coal", Price: decimal.NewFromInt(55)},
	}
	require.NoError(t, repo.SaveSnapshot(context.Background(), 1, points))

	// Replaying the same turn overwrites instead of duplicating
	points[0].Price = decimal.NewFromInt(102)
	require.NoError(t, repo.SaveSnapshot(context.Background(), 1, points))

	series, err := repo.FindByResource(context.Background(), 1, "Iron")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.True(t, series[0].Price.Equal(decimal.NewFromInt(102)))
}

func TestPriceHistoryRepository_SeriesInTurnOrder(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPriceHistoryRepository(db)

	for turn := 3; turn >= 1; turn-- {
		point := []market.PricePoint{{Turn: turn, Resource: "Iron", Price: decimal.NewFromInt(int64(100 + turn))}}
		require.NoError(t, repo.SaveSnapshot(context.Background(), 1, point))
	}

	series, err := repo.FindByResource(context.Background(), 1, "Iron")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, 1, series[0].Turn)
	assert.Equal(t, 3, series[2].Turn)
}
