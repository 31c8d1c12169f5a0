package decisions

import (
	"context"

	"github.com/lvaldes/statecraft/internal/domain/action"
)

// EmptyProvider serves no decisions: every country passes every turn.
// Useful for letting production and extraction run unattended.
type EmptyProvider struct{}

// DecisionsFor always returns an empty list
func (EmptyProvider) DecisionsFor(ctx context.Context, gameID, countryID uint, turn int) ([]action.Decision, error) {
	return nil, nil
}
