package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

// GormCountryRepository implements CountryRepository using GORM. A country
// row owns its industries, flows, progressions, stockpiles and deposits;
// Save rewrites the child rows inside one transaction so the aggregate is
// always stored whole.
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GORM country repository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID retrieves one country aggregate
func (r *GormCountryRepository) FindByID(ctx context.Context, id uint) (*economy.Country, error) {
	var model CountryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("country not found: %d", id)
		}
		return nil, fmt.Errorf("failed to find country: %w", result.Error)
	}

	return r.modelToCountry(ctx, &model)
}

// FindByGame retrieves all countries of a game ordered by ascending id.
// The turn engine relies on this ordering.
func (r *GormCountryRepository) FindByGame(ctx context.Context, gameID uint) ([]*economy.Country, error) {
	var models []CountryModel
	result := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list countries: %w", result.Error)
	}

	countries := make([]*economy.Country, 0, len(models))
	for i := range models {
		country, err := r.modelToCountry(ctx, &models[i])
		if err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, nil
}

// Save persists the full aggregate: the country row is upserted and every
// child row is rewritten
func (r *GormCountryRepository) Save(ctx context.Context, country *economy.Country) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := CountryModel{
			ID:                  country.ID(),
			GameID:              country.GameID(),
			Name:                country.Name(),
			Capital:             country.Capital(),
			TotalSkilled:        country.TotalSkilledWorkers(),
			TotalUnskilled:      country.TotalUnskilledWorkers(),
			UnemployedSkilled:   country.UnemployedSkilledWorkers(),
			UnemployedUnskilled: country.UnemployedUnskilledWorkers(),
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to save country: %w", err)
		}

		if err := r.deleteChildren(tx, country.ID()); err != nil {
			return err
		}

		for _, industry := range country.Industries() {
			if err := r.insertIndustry(tx, country.ID(), industry); err != nil {
				return err
			}
		}

		for _, stock := range country.Stockpiles() {
			row := StockpileModel{
				CountryID: country.ID(),
				Resource:  stock.Resource(),
				Quantity:  stock.Quantity(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save stockpile %s: %w", stock.Resource(), err)
			}
		}

		for _, deposit := range country.Deposits() {
			row := DepositModel{
				CountryID:      country.ID(),
				Resource:       deposit.Resource(),
				TotalReserves:  deposit.TotalReserves(),
				ExtractionRate: deposit.ExtractionRate(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save deposit %s: %w", deposit.Resource(), err)
			}
		}

		return nil
	})
}

func (r *GormCountryRepository) deleteChildren(tx *gorm.DB, countryID uint) error {
	var industryIDs []uint
	if err := tx.Model(&IndustryModel{}).Where("country_id = ?", countryID).Pluck("id", &industryIDs).Error; err != nil {
		return fmt.Errorf("failed to list industries for rewrite: %w", err)
	}
	if len(industryIDs) > 0 {
		for _, child := range []interface{}{&ResourceFlowModel{}, &TechnologyUpgradeModel{}, &IndustryExpansionModel{}} {
			if err := tx.Where("industry_id IN ?", industryIDs).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to clear industry children: %w", err)
			}
		}
	}
	for _, child := range []interface{}{&IndustryModel{}, &StockpileModel{}, &DepositModel{}} {
		if err := tx.Where("country_id = ?", countryID).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to clear country children: %w", err)
		}
	}
	return nil
}

func (r *GormCountryRepository) insertIndustry(tx *gorm.DB, countryID uint, industry *economy.Industry) error {
	row := IndustryModel{
		CountryID:         countryID,
		IndustryID:        industry.IndustryID(),
		Kind:              string(industry.Kind()),
		SubType:           industry.SubType(),
		ProductionLevel:   industry.ProductionLevel(),
		TechnologyLevel:   industry.TechnologyLevel(),
		SkilledEmployed:   industry.SkilledEmployed(),
		UnskilledEmployed: industry.UnskilledEmployed(),
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save industry %s: %w", industry.IndustryID(), err)
	}

	for _, flow := range industry.Inputs() {
		if err := r.insertFlow(tx, row.ID, "input", flow); err != nil {
			return err
		}
	}
	for _, flow := range industry.Outputs() {
		if err := r.insertFlow(tx, row.ID, "output", flow); err != nil {
			return err
		}
	}

	if upgrade := industry.Upgrade(); upgrade != nil {
		benefits, err := json.Marshal(upgrade.Benefits())
		if err != nil {
			return fmt.Errorf("failed to marshal upgrade benefits: %w", err)
		}
		child := TechnologyUpgradeModel{
			IndustryID:         row.ID,
			NewTechnologyLevel: upgrade.NewTechnologyLevel(),
			RemainingTime:      upgrade.RemainingTime(),
			TotalTimeRequired:  upgrade.TotalTimeRequired(),
			Completed:          upgrade.IsCompleted(),
			BenefitsJSON:       string(benefits),
		}
		if err := tx.Create(&child).Error; err != nil {
			return fmt.Errorf("failed to save technology upgrade: %w", err)
		}
	}

	if expansion := industry.Expansion(); expansion != nil {
		outputs, err := json.Marshal(expansion.OutputIncreases())
		if err != nil {
			return fmt.Errorf("failed to marshal expansion outputs: %w", err)
		}
		inputs, err := json.Marshal(expansion.InputIncreases())
		if err != nil {
			return fmt.Errorf("failed to marshal expansion inputs: %w", err)
		}
		child := IndustryExpansionModel{
			IndustryID:          row.ID,
			NewProductionLevel:  expansion.NewProductionLevel(),
			RemainingTime:       expansion.RemainingTime(),
			TotalTimeRequired:   expansion.TotalTimeRequired(),
			Completed:           expansion.IsCompleted(),
			AdditionalSkilled:   expansion.AdditionalSkilled(),
			AdditionalUnskilled: expansion.AdditionalUnskilled(),
			OutputIncreasesJSON: string(outputs),
			InputIncreasesJSON:  string(inputs),
		}
		if err := tx.Create(&child).Error; err != nil {
			return fmt.Errorf("failed to save industry expansion: %w", err)
		}
	}

	return nil
}

func (r *GormCountryRepository) insertFlow(tx *gorm.DB, industryRowID uint, direction string, flow *economy.ResourceFlow) error {
	row := ResourceFlowModel{
		IndustryID: industryRowID,
		Direction:  direction,
		Resource:   flow.Resource(),
		Quantity:   flow.Quantity(),
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save %s flow %s: %w", direction, flow.Resource(), err)
	}
	return nil
}

func (r *GormCountryRepository) modelToCountry(ctx context.Context, model *CountryModel) (*economy.Country, error) {
	industries, err := r.loadIndustries(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	var stockRows []StockpileModel
	if err := r.db.WithContext(ctx).Where("country_id = ?", model.ID).Order("resource ASC").Find(&stockRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load stockpiles: %w", err)
	}
	stockpiles := make([]*economy.Stockpile, 0, len(stockRows))
	for _, row := range stockRows {
		stockpiles = append(stockpiles, economy.ReconstructStockpile(row.Resource, row.Quantity))
	}

	var depositRows []DepositModel
	if err := r.db.WithContext(ctx).Where("country_id = ?", model.ID).Order("resource ASC").Find(&depositRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load deposits: %w", err)
	}
	deposits := make([]*economy.Deposit, 0, len(depositRows))
	for _, row := range depositRows {
		deposit, err := economy.NewDeposit(row.Resource, row.TotalReserves, row.ExtractionRate)
		if err != nil {
			return nil, fmt.Errorf("invalid deposit row for %s: %w", row.Resource, err)
		}
		deposits = append(deposits, deposit)
	}

	return economy.ReconstructCountry(
		model.ID, model.GameID, model.Name, model.Capital,
		model.TotalSkilled, model.TotalUnskilled,
		model.UnemployedSkilled, model.UnemployedUnskilled,
		industries, stockpiles, deposits,
	), nil
}

func (r *GormCountryRepository) loadIndustries(ctx context.Context, countryID uint) ([]*economy.Industry, error) {
	var rows []IndustryModel
	if err := r.db.WithContext(ctx).Where("country_id = ?", countryID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load industries: %w", err)
	}

	industries := make([]*economy.Industry, 0, len(rows))
	for _, row := range rows {
		industry, err := r.modelToIndustry(ctx, &row)
		if err != nil {
			return nil, err
		}
		industries = append(industries, industry)
	}
	return industries, nil
}

func (r *GormCountryRepository) modelToIndustry(ctx context.Context, row *IndustryModel) (*economy.Industry, error) {
	var flowRows []ResourceFlowModel
	if err := r.db.WithContext(ctx).Where("industry_id = ?", row.ID).Order("id ASC").Find(&flowRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load flows: %w", err)
	}
	var inputs, outputs []*economy.ResourceFlow
	for _, f := range flowRows {
		flow := economy.NewResourceFlow(f.Resource, f.Quantity)
		if f.Direction == "input" {
			inputs = append(inputs, flow)
		} else {
			outputs = append(outputs, flow)
		}
	}

	upgrade, err := r.loadUpgrade(ctx, row)
	if err != nil {
		return nil, err
	}
	expansion, err := r.loadExpansion(ctx, row)
	if err != nil {
		return nil, err
	}

	return economy.ReconstructIndustry(
		row.IndustryID,
		economy.IndustryKind(row.Kind),
		row.SubType,
		row.ProductionLevel, row.TechnologyLevel,
		row.SkilledEmployed, row.UnskilledEmployed,
		inputs, outputs,
		upgrade, expansion,
	), nil
}

func (r *GormCountryRepository) loadUpgrade(ctx context.Context, row *IndustryModel) (*economy.TechnologyUpgrade, error) {
	var child TechnologyUpgradeModel
	err := r.db.WithContext(ctx).Where("industry_id = ?", row.ID).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load technology upgrade: %w", err)
	}

	var benefits economy.UpgradeBenefits
	if err := json.Unmarshal([]byte(child.BenefitsJSON), &benefits); err != nil {
		return nil, fmt.Errorf("invalid upgrade benefits for industry %s: %w", row.IndustryID, err)
	}

	return economy.ReconstructTechnologyUpgrade(
		row.IndustryID,
		child.NewTechnologyLevel,
		child.RemainingTime, child.TotalTimeRequired,
		benefits,
		child.Completed,
	), nil
}

func (r *GormCountryRepository) loadExpansion(ctx context.Context, row *IndustryModel) (*economy.IndustryExpansion, error) {
	var child IndustryExpansionModel
	err := r.db.WithContext(ctx).Where("industry_id = ?", row.ID).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load industry expansion: %w", err)
	}

	var outputIncreases, inputIncreases map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(child.OutputIncreasesJSON), &outputIncreases); err != nil {
		return nil, fmt.Errorf("invalid expansion outputs for industry %s: %w", row.IndustryID, err)
	}
	if err := json.Unmarshal([]byte(child.InputIncreasesJSON), &inputIncreases); err != nil {
		return nil, fmt.Errorf("invalid expansion inputs for industry %s: %w", row.IndustryID, err)
	}

	return economy.ReconstructIndustryExpansion(
		row.IndustryID,
		child.NewProductionLevel,
		child.RemainingTime, child.TotalTimeRequired,
		child.AdditionalSkilled, child.AdditionalUnskilled,
		outputIncreases, inputIncreases,
		child.Completed,
	), nil
}
