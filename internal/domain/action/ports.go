package action

import "context"

// OfferRepository defines persistence for pre-generated action offers
type OfferRepository interface {
	// FindByID retrieves an offer scoped to one country
	FindByID(ctx context.Context, id string, countryID uint) (*Offer, error)

	// FindOpenByCountryTurn retrieves a country's unselected offers for a turn
	FindOpenByCountryTurn(ctx context.Context, countryID uint, turn int) ([]*Offer, error)

	// Save persists an offer, including its selected flag
	Save(ctx context.Context, offer *Offer) error
}

// DecisionProvider supplies each country's ordered decision list for a
// turn. Implemented by external collaborators (the LLM driver in
// production, scripted lists in tests and the CLI).
type DecisionProvider interface {
	DecisionsFor(ctx context.Context, gameID, countryID uint, turn int) ([]Decision, error)
}
