package market

import "context"

// ResourceRepository defines persistence for the global resource market
type ResourceRepository interface {
	// FindByName retrieves one resource by its unique name
	FindByName(ctx context.Context, name string) (*Resource, error)

	// FindAll retrieves every resource in ascending name order
	FindAll(ctx context.Context) ([]*Resource, error)

	// Save persists a resource's market state
	Save(ctx context.Context, resource *Resource) error
}

// TransactionRepository defines persistence for the immutable trade ledger
type TransactionRepository interface {
	// Record appends an executed trade to the ledger
	Record(ctx context.Context, tx *Transaction) error

	// FindByTurn retrieves the trades of one turn in execution order
	FindByTurn(ctx context.Context, gameID uint, turn int) ([]*Transaction, error)
}

// PriceHistoryRepository defines persistence for per-turn price snapshots
type PriceHistoryRepository interface {
	// SaveSnapshot records one turn's closing prices; (turn, resource) is unique
	SaveSnapshot(ctx context.Context, gameID uint, points []PricePoint) error

	// FindByResource retrieves a resource's price series in turn order
	FindByResource(ctx context.Context, gameID uint, resource string) ([]PricePoint, error)
}
