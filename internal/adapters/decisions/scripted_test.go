package decisions_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvaldes/statecraft/internal/adapters/decisions"
	"github.com/lvaldes/statecraft/internal/domain/action"
)

const script = `{
  "decisions": [
    {
      "turn": 1,
      "country_id": 1,
      "actions": [
        {"kind": "StartNewIndustry", "offer_id": "offer-1"},
        {"kind": "BuySellResource", "trade": {"transaction": "Buy", "resource": "Iron", "quantity": "10"}}
      ]
    },
    {"turn": 2, "country_id": 1, "actions": []}
  ]
}`

func TestParseScript(t *testing.T) {
	provider, err := decisions.ParseScript([]byte(script))
	require.NoError(t, err)

	list, err := provider.DecisionsFor(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, action.TypeStartNewIndustry, list[0].Kind)
	assert.Equal(t, "offer-1", list[0].OfferID)

	require.NotNil(t, list[1].Trade)
	assert.Equal(t, "Iron", list[1].Trade.Resource)
	assert.True(t, list[1].Trade.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestParseScript_UnknownCountryOrTurnIsEmpty(t *testing.T) {
	provider, err := decisions.ParseScript([]byte(script))
	require.NoError(t, err)

	list, err := provider.DecisionsFor(context.Background(), 1, 9, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = provider.DecisionsFor(context.Background(), 1, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestParseScript_RejectsDuplicateEntries(t *testing.T) {
	duplicate := `{
  "decisions": [
    {"turn": 1, "country_id": 1, "actions": []},
    {"turn": 1, "country_id": 1, "actions": []}
  ]
}`
	_, err := decisions.ParseScript([]byte(duplicate))
	assert.Error(t, err)
}

func TestParseScript_RejectsInvalidEntries(t *testing.T) {
	invalid := `{"decisions": [{"turn": 0, "country_id": 1, "actions": []}]}`
	_, err := decisions.ParseScript([]byte(invalid))
	assert.Error(t, err)
}
