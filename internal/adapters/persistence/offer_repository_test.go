package persistence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/test/helpers"
)

func TestOfferRepository_RoundTripsPayloadByKind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOfferRepository(db)

	details := &action.StartIndustryDetails{
		IndustryID:       "mine-1",
		Kind:             economy.IndustryKindPrimary,
		SubType:          "Coal Mine",
		SetupCost:        decimal.NewFromInt(500),
		ProductionLevel:  1,
		Inputs:           map[string]decimal.Decimal{"Timber": decimal.NewFromInt(2)},
		Outputs:          map[string]decimal.Decimal{"Coal": decimal.NewFromInt(8)},
		SkilledWorkers:   5,
		UnskilledWorkers: 20,
	}
	offer, err := action.NewStartIndustryOffer(1, 3, 2, details)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), offer))

	found, err := repo.FindByID(context.Background(), offer.ID(), 3)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, action.TypeStartNewIndustry, found.Kind())
	assert.Equal(t, 2, found.Turn())
	assert.False(t, found.Selected())

	payload := found.StartDetails()
	require.NotNil(t, payload)
	assert.Equal(t, "mine-1", payload.IndustryID)
	assert.True(t, payload.SetupCost.Equal(decimal.NewFromInt(500)))
	assert.True(t, payload.Outputs["Coal"].Equal(decimal.NewFromInt(8)))
	assert.Nil(t, found.ExpandDetails())
	assert.Nil(t, found.UpgradeDetails())
}

func TestOfferRepository_ScopesByCountry(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOfferRepository(db)

	offer, err := action.NewUpgradeTechnologyOffer(1, 3, 1, &action.UpgradeTechnologyDetails{
		IndustryID:         "mine-1",
		NewTechnologyLevel: 1,
		UpgradeCost:        decimal.NewFromInt(100),
		TimeToComplete:     2,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), offer))

	// Another country asking for the same id sees nothing
	found, err := repo.FindByID(context.Background(), offer.ID(), 99)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestOfferRepository_SelectedFlagPersists(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOfferRepository(db)

	offer, err := action.NewExpandIndustryOffer(1, 3, 1, &action.ExpandIndustryDetails{
		IndustryID:         "farm-1",
		NewProductionLevel: 2,
		ExpansionCost:      decimal.NewFromInt(200),
		TimeToComplete:     1,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), offer))

	open, err := repo.FindOpenByCountryTurn(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	require.NoError(t, offer.MarkSelected())
	require.NoError(t, repo.Save(context.Background(), offer))

	open, err = repo.FindOpenByCountryTurn(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Empty(t, open)

	found, err := repo.FindByID(context.Background(), offer.ID(), 3)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Selected())
}
