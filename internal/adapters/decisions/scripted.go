package decisions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/lvaldes/statecraft/internal/domain/action"
)

// scriptEntry is one country's decision list for one turn as it appears in
// the script file
type scriptEntry struct {
	Turn      int               `json:"turn" validate:"min=1"`
	CountryID uint              `json:"country_id" validate:"required"`
	Actions   []action.Decision `json:"actions"`
}

// scriptFile is the on-disk shape of a decision script
type scriptFile struct {
	Decisions []scriptEntry `json:"decisions"`
}

// ScriptedProvider serves pre-written decision lists from a JSON file. Used
// by the CLI runner and integration tests; the production driver sits
// behind the same DecisionProvider port.
type ScriptedProvider struct {
	byTurnCountry map[scriptKey][]action.Decision
}

type scriptKey struct {
	turn      int
	countryID uint
}

// NewScriptedProvider parses and validates a decision script file
func NewScriptedProvider(path string) (*ScriptedProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decision script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript builds a provider from raw script JSON
func ParseScript(data []byte) (*ScriptedProvider, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid decision script: %w", err)
	}

	validate := validator.New()
	provider := &ScriptedProvider{byTurnCountry: make(map[scriptKey][]action.Decision)}
	for i, entry := range file.Decisions {
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("invalid decision script entry %d: %w", i, err)
		}
		key := scriptKey{turn: entry.Turn, countryID: entry.CountryID}
		if _, exists := provider.byTurnCountry[key]; exists {
			return nil, fmt.Errorf("duplicate decision script entry for country %d turn %d", entry.CountryID, entry.Turn)
		}
		provider.byTurnCountry[key] = entry.Actions
	}
	return provider, nil
}

// DecisionsFor returns the scripted list for a country and turn. A country
// with no entry simply takes no actions that turn.
func (p *ScriptedProvider) DecisionsFor(ctx context.Context, gameID, countryID uint, turn int) ([]action.Decision, error) {
	return p.byTurnCountry[scriptKey{turn: turn, countryID: countryID}], nil
}
