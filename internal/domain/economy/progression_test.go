package economy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

func TestTechnologyUpgrade_CompletesAfterExactlyTTurns(t *testing.T) {
	upgrade, err := economy.NewTechnologyUpgrade("mine-1", 1, 3, economy.UpgradeBenefits{})
	require.NoError(t, err)

	assert.Equal(t, economy.ProgressionPending, upgrade.State())

	due, err := upgrade.Advance()
	require.NoError(t, err)
	assert.False(t, due)

	due, err = upgrade.Advance()
	require.NoError(t, err)
	assert.False(t, due)

	due, err = upgrade.Advance()
	require.NoError(t, err)
	assert.True(t, due)
	assert.Equal(t, economy.ProgressionCompleting, upgrade.State())
}

func TestTechnologyUpgrade_BenefitAppliesExactlyOnce(t *testing.T) {
	country, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(1000), 100, 100)
	require.NoError(t, err)
	require.NoError(t, country.HireWorkers(20, 40))

	industry, err := economy.NewIndustry("mine-1", economy.IndustryKindPrimary, "Coal Mine", 2, 0, 20, 40)
	require.NoError(t, err)
	industry.AddInput("Timber", decimal.NewFromInt(10))
	industry.AddOutput("Coal", decimal.NewFromInt(20))
	country.AddIndustry(industry)

	benefits := economy.UpgradeBenefits{
		SkilledWorkerReductionPct:   decimal.NewFromInt(25),
		UnskilledWorkerReductionPct: decimal.NewFromInt(10),
		InputDecreasePct:            decimal.NewFromInt(20),
		OutputIncreasePct:           decimal.NewFromInt(50),
	}
	upgrade, err := economy.NewTechnologyUpgrade("mine-1", 3, 1, benefits)
	require.NoError(t, err)
	require.NoError(t, industry.BeginUpgrade(upgrade))

	due, err := upgrade.Advance()
	require.NoError(t, err)
	require.True(t, due)
	require.NoError(t, upgrade.Complete(industry, country))

	assert.Equal(t, 3, industry.TechnologyLevel())

	// 25% of 20 skilled and 10% of 40 unskilled return to the pools
	assert.Equal(t, 15, industry.SkilledEmployed())
	assert.Equal(t, 36, industry.UnskilledEmployed())
	assert.Equal(t, 85, country.UnemployedSkilledWorkers())
	assert.Equal(t, 64, country.UnemployedUnskilledWorkers())

	// Input row shrank 20%, output row grew 50%
	assert.True(t, industry.Inputs()[0].Quantity().Equal(decimal.NewFromInt(8)))
	assert.True(t, industry.Outputs()[0].Quantity().Equal(decimal.NewFromInt(30)))

	// Completion is terminal: neither the benefit nor the timer can run again
	assert.Error(t, upgrade.Complete(industry, country))
	_, err = upgrade.Advance()
	assert.Error(t, err)
	assert.Equal(t, economy.ProgressionCompleted, upgrade.State())
}

func TestWorkerReduction_RoundsDown(t *testing.T) {
	country, err := economy.NewCountry(1, 1, "Arcadia", decimal.NewFromInt(100), 10, 10)
	require.NoError(t, err)
	require.NoError(t, country.HireWorkers(7, 0))

	industry, err := economy.NewIndustry("mill-1", economy.IndustryKindSecondary, "Mill", 1, 0, 7, 0)
	require.NoError(t, err)
	country.AddIndustry(industry)

	benefits := economy.UpgradeBenefits{SkilledWorkerReductionPct: decimal.NewFromInt(25)}
	upgrade, err := economy.NewTechnologyUpgrade("mill-1", 1, 1, benefits)
	require.NoError(t, err)
	require.NoError(t, industry.BeginUpgrade(upgrade))

	_, err = upgrade.Advance()
	require.NoError(t, err)
	require.NoError(t, upgrade.Complete(industry, country))

	// floor(7 * 0.25) = 1 worker freed
	assert.Equal(t, 6, industry.SkilledEmployed())
	assert.Equal(t, 4, country.UnemployedSkilledWorkers())
}

func TestIndustryExpansion_AppliesLevelAndFlowDeltas(t *testing.T) {
	industry, err := economy.NewIndustry("farm-1", economy.IndustryKindPrimary, "Farm", 2, 0, 5, 10)
	require.NoError(t, err)
	industry.AddOutput("Grain", decimal.NewFromInt(30))

	expansion, err := economy.NewIndustryExpansion(
		"farm-1", 4, 2, 3, 6,
		map[string]decimal.Decimal{
			"Grain": decimal.NewFromInt(15),
			"Hides": decimal.NewFromInt(2),
		},
		map[string]decimal.Decimal{
			"Water": decimal.NewFromInt(5),
		},
	)
	require.NoError(t, err)
	require.NoError(t, industry.BeginExpansion(expansion))

	due, err := expansion.Advance()
	require.NoError(t, err)
	require.False(t, due)
	assert.Equal(t, 2, industry.ProductionLevel())

	due, err = expansion.Advance()
	require.NoError(t, err)
	require.True(t, due)
	require.NoError(t, expansion.Complete(industry))

	assert.Equal(t, 4, industry.ProductionLevel())

	// Existing row grew, new rows were created
	outputs := map[string]decimal.Decimal{}
	for _, f := range industry.Outputs() {
		outputs[f.Resource()] = f.Quantity()
	}
	assert.True(t, outputs["Grain"].Equal(decimal.NewFromInt(45)))
	assert.True(t, outputs["Hides"].Equal(decimal.NewFromInt(2)))

	require.Len(t, industry.Inputs(), 1)
	assert.Equal(t, "Water", industry.Inputs()[0].Resource())
	assert.True(t, industry.Inputs()[0].Quantity().Equal(decimal.NewFromInt(5)))
}

func TestIndustry_RejectsSecondInFlightProgression(t *testing.T) {
	industry, err := economy.NewIndustry("mine-1", economy.IndustryKindPrimary, "Mine", 1, 0, 0, 0)
	require.NoError(t, err)

	first, err := economy.NewIndustryExpansion("mine-1", 2, 3, 0, 0, nil, nil)
	require.NoError(t, err)
	require.NoError(t, industry.BeginExpansion(first))

	second, err := economy.NewIndustryExpansion("mine-1", 3, 3, 0, 0, nil, nil)
	require.NoError(t, err)
	assert.Error(t, industry.BeginExpansion(second))

	// Upgrades track separately from expansions
	upgrade, err := economy.NewTechnologyUpgrade("mine-1", 1, 2, economy.UpgradeBenefits{})
	require.NoError(t, err)
	assert.NoError(t, industry.BeginUpgrade(upgrade))
}

func TestNewTechnologyUpgrade_RejectsOutOfRangePercentages(t *testing.T) {
	// A worker reduction above 100 would drive employed counts negative
	// when the benefit applies, so it must never get past construction
	_, err := economy.NewTechnologyUpgrade("mine-1", 1, 2, economy.UpgradeBenefits{
		SkilledWorkerReductionPct: decimal.NewFromInt(150),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 100")

	_, err = economy.NewTechnologyUpgrade("mine-1", 1, 2, economy.UpgradeBenefits{
		InputDecreasePct: decimal.NewFromInt(-10),
	})
	assert.Error(t, err)

	_, err = economy.NewTechnologyUpgrade("mine-1", 1, 2, economy.UpgradeBenefits{
		OutputIncreasePct: decimal.NewFromInt(101),
	})
	assert.Error(t, err)

	// The boundaries themselves are valid
	_, err = economy.NewTechnologyUpgrade("mine-1", 1, 2, economy.UpgradeBenefits{
		SkilledWorkerReductionPct:   decimal.NewFromInt(100),
		UnskilledWorkerReductionPct: decimal.Zero,
	})
	assert.NoError(t, err)
}
