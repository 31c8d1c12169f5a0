package economy

import "context"

// CountryRepository defines persistence for country aggregates, including
// their industries, stockpiles, deposits and in-flight progressions
type CountryRepository interface {
	// FindByID retrieves one country aggregate
	FindByID(ctx context.Context, id uint) (*Country, error)

	// FindByGame retrieves all countries of a game in ascending id order;
	// the orchestrator relies on this ordering for determinism
	FindByGame(ctx context.Context, gameID uint) ([]*Country, error)

	// Save persists the full aggregate state
	Save(ctx context.Context, country *Country) error
}

// GameRepository defines persistence for game turn bookkeeping
type GameRepository interface {
	FindByID(ctx context.Context, id uint) (*Game, error)
	Save(ctx context.Context, game *Game) error
}
