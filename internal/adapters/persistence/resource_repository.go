package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

// GormResourceRepository implements ResourceRepository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GORM resource repository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// FindByName retrieves one resource by its unique name
func (r *GormResourceRepository) FindByName(ctx context.Context, name string) (*market.Resource, error) {
	var model ResourceModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resource not found: %s", name)
		}
		return nil, fmt.Errorf("failed to find resource: %w", result.Error)
	}
	return modelToResource(&model)
}

// FindAll retrieves every resource in ascending name order
func (r *GormResourceRepository) FindAll(ctx context.Context) ([]*market.Resource, error) {
	var models []ResourceModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list resources: %w", result.Error)
	}

	resources := make([]*market.Resource, 0, len(models))
	for i := range models {
		resource, err := modelToResource(&models[i])
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, nil
}

// Save upserts a resource's market state
func (r *GormResourceRepository) Save(ctx context.Context, resource *market.Resource) error {
	model := ResourceModel{
		Name:                  resource.Name(),
		BasePrice:             resource.BasePrice(),
		CurrentPrice:          resource.CurrentPrice(),
		MinPrice:              resource.MinPrice(),
		MaxPrice:              resource.MaxPrice(),
		QuantityThreshold:     resource.QuantityThreshold(),
		MaxTransactionPerTurn: resource.MaxTransactionPerTurn(),
	}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save resource %s: %w", resource.Name(), result.Error)
	}
	return nil
}

func modelToResource(model *ResourceModel) (*market.Resource, error) {
	resource, err := market.NewResource(
		model.Name,
		model.BasePrice, model.CurrentPrice, model.MinPrice, model.MaxPrice,
		model.QuantityThreshold, model.MaxTransactionPerTurn,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid resource row %s: %w", model.Name, err)
	}
	return resource, nil
}
