package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// The ledger is append-only; there is no update or delete path.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Record appends an executed trade to the ledger
func (r *GormTransactionRepository) Record(ctx context.Context, tx *market.Transaction) error {
	model := TransactionModel{
		GameID:       tx.GameID(),
		Turn:         tx.Turn(),
		CountryID:    tx.CountryID(),
		Resource:     tx.Resource(),
		Kind:         string(tx.Kind()),
		Quantity:     tx.Quantity(),
		PricePerUnit: tx.PricePerUnit(),
		TotalPrice:   tx.TotalPrice(),
		ExecutedAt:   tx.ExecutedAt(),
	}
	if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
		return fmt.Errorf("failed to record transaction: %w", result.Error)
	}
	return nil
}

// FindByTurn retrieves the trades of one turn in execution order
func (r *GormTransactionRepository) FindByTurn(ctx context.Context, gameID uint, turn int) ([]*market.Transaction, error) {
	var models []TransactionModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND turn = ?", gameID, turn).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", result.Error)
	}

	txs := make([]*market.Transaction, 0, len(models))
	for _, model := range models {
		tx, err := market.NewTransaction(
			model.GameID, model.Turn, model.CountryID,
			model.Resource, market.TransactionType(model.Kind),
			model.Quantity, model.PricePerUnit, model.TotalPrice,
			model.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction row %d: %w", model.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
