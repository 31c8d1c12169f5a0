package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

// GormGameRepository implements GameRepository using GORM
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// FindByID retrieves a game by ID
func (r *GormGameRepository) FindByID(ctx context.Context, id uint) (*economy.Game, error) {
	var model GameModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game not found: %d", id)
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}

	return economy.ReconstructGame(model.ID, model.CurrentTurn, model.TotalTurns, model.Active), nil
}

// Save upserts a game's turn bookkeeping
func (r *GormGameRepository) Save(ctx context.Context, game *economy.Game) error {
	model := GameModel{
		ID:          game.ID(),
		CurrentTurn: game.CurrentTurn(),
		TotalTurns:  game.TotalTurns(),
		Active:      game.IsActive(),
	}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	return nil
}
