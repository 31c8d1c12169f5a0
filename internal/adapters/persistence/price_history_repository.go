package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

// GormPriceHistoryRepository implements PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GORM price history repository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// SaveSnapshot records one turn's closing prices. Replaying a turn upserts
// on (game, turn, resource) instead of duplicating rows.
func (r *GormPriceHistoryRepository) SaveSnapshot(ctx context.Context, gameID uint, points []market.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	models := make([]PriceHistoryModel, 0, len(points))
	for _, p := range points {
		models = append(models, PriceHistoryModel{
			GameID:   gameID,
			Turn:     p.Turn,
			Resource: p.Resource,
			Price:    p.Price,
		})
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "turn"}, {Name: "resource"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to save price snapshot: %w", result.Error)
	}
	return nil
}

// FindByResource retrieves a resource's price series in turn order
func (r *GormPriceHistoryRepository) FindByResource(ctx context.Context, gameID uint, resource string) ([]market.PricePoint, error) {
	var models []PriceHistoryModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND resource = ?", gameID, resource).
		Order("turn ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load price history: %w", result.Error)
	}

	points := make([]market.PricePoint, 0, len(models))
	for _, model := range models {
		points = append(points, market.PricePoint{
			Turn:     model.Turn,
			Resource: model.Resource,
			Price:    model.Price,
		})
	}
	return points, nil
}
