package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
)

// Seed is the on-disk shape of a game setup file: the resource market,
// the starting countries and any pre-generated offers
type Seed struct {
	TotalTurns int             `json:"total_turns"`
	Resources  []ResourceSeed  `json:"resources"`
	Countries  []CountrySeed   `json:"countries"`
	Offers     []OfferSeed     `json:"offers"`
}

// ResourceSeed is one market resource definition
type ResourceSeed struct {
	Name                  string          `json:"name"`
	BasePrice             decimal.Decimal `json:"base_price"`
	MinPrice              decimal.Decimal `json:"min_price"`
	MaxPrice              decimal.Decimal `json:"max_price"`
	QuantityThreshold     decimal.Decimal `json:"quantity_threshold"`
	MaxTransactionPerTurn decimal.Decimal `json:"max_transaction_per_turn"`
}

// CountrySeed is one starting country definition
type CountrySeed struct {
	Name             string                     `json:"name"`
	Capital          decimal.Decimal            `json:"capital"`
	SkilledWorkers   int                        `json:"skilled_workers"`
	UnskilledWorkers int                        `json:"unskilled_workers"`
	Stockpiles       map[string]decimal.Decimal `json:"stockpiles"`
	Deposits         []DepositSeed              `json:"deposits"`
	Industries       []IndustrySeed             `json:"industries"`
}

// DepositSeed is one natural deposit definition
type DepositSeed struct {
	Resource       string          `json:"resource"`
	TotalReserves  decimal.Decimal `json:"total_reserves"`
	ExtractionRate decimal.Decimal `json:"extraction_rate"`
}

// IndustrySeed is one starting industry definition
type IndustrySeed struct {
	IndustryID       string                     `json:"industry_id"`
	Kind             economy.IndustryKind       `json:"kind"`
	SubType          string                     `json:"sub_type"`
	ProductionLevel  int                        `json:"production_level"`
	TechnologyLevel  int                        `json:"technology_level"`
	SkilledWorkers   int                        `json:"skilled_workers"`
	UnskilledWorkers int                        `json:"unskilled_workers"`
	Inputs           map[string]decimal.Decimal `json:"inputs"`
	Outputs          map[string]decimal.Decimal `json:"outputs"`
}

// OfferSeed is one pre-generated offer, keyed by country name because the
// file is written before ids exist
type OfferSeed struct {
	Country string                           `json:"country"`
	Turn    int                              `json:"turn"`
	Kind    action.Type                      `json:"kind"`
	Start   *action.StartIndustryDetails     `json:"start,omitempty"`
	Expand  *action.ExpandIndustryDetails    `json:"expand,omitempty"`
	Upgrade *action.UpgradeTechnologyDetails `json:"upgrade,omitempty"`
}

// LoadFile parses a seed file
func LoadFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &seed, nil
}

// Apply creates a game with its market, countries and offers. Returns the
// new game's id.
func Apply(ctx context.Context, db *gorm.DB, seed *Seed, defaultTotalTurns int) (uint, error) {
	totalTurns := seed.TotalTurns
	if totalTurns == 0 {
		totalTurns = defaultTotalTurns
	}

	gameRow := persistence.GameModel{TotalTurns: totalTurns, Active: true}
	if err := db.WithContext(ctx).Create(&gameRow).Error; err != nil {
		return 0, fmt.Errorf("failed to create game: %w", err)
	}
	if _, err := economy.NewGame(gameRow.ID, totalTurns); err != nil {
		return 0, err
	}

	resources := persistence.NewGormResourceRepository(db)
	for _, rs := range seed.Resources {
		resource, err := market.NewResource(
			rs.Name,
			rs.BasePrice, rs.BasePrice, rs.MinPrice, rs.MaxPrice,
			rs.QuantityThreshold, rs.MaxTransactionPerTurn,
		)
		if err != nil {
			return 0, fmt.Errorf("invalid resource %s: %w", rs.Name, err)
		}
		if err := resources.Save(ctx, resource); err != nil {
			return 0, err
		}
	}

	countryIDs := make(map[string]uint, len(seed.Countries))
	countries := persistence.NewGormCountryRepository(db)
	for _, cs := range seed.Countries {
		id, err := applyCountry(ctx, db, countries, gameRow.ID, cs)
		if err != nil {
			return 0, err
		}
		countryIDs[cs.Name] = id
	}

	offers := persistence.NewGormOfferRepository(db)
	for _, ofs := range seed.Offers {
		countryID, ok := countryIDs[ofs.Country]
		if !ok {
			return 0, fmt.Errorf("offer references unknown country %q", ofs.Country)
		}
		offer, err := buildOffer(gameRow.ID, countryID, ofs)
		if err != nil {
			return 0, err
		}
		if err := offers.Save(ctx, offer); err != nil {
			return 0, err
		}
	}

	return gameRow.ID, nil
}

func applyCountry(ctx context.Context, db *gorm.DB, repo *persistence.GormCountryRepository, gameID uint, cs CountrySeed) (uint, error) {
	// Insert a bare row first so the database assigns the id the aggregate
	// needs
	row := persistence.CountryModel{
		GameID:              gameID,
		Name:                cs.Name,
		Capital:             cs.Capital,
		TotalSkilled:        cs.SkilledWorkers,
		TotalUnskilled:      cs.UnskilledWorkers,
		UnemployedSkilled:   cs.SkilledWorkers,
		UnemployedUnskilled: cs.UnskilledWorkers,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to create country %s: %w", cs.Name, err)
	}

	country, err := economy.NewCountry(row.ID, gameID, cs.Name, cs.Capital, cs.SkilledWorkers, cs.UnskilledWorkers)
	if err != nil {
		return 0, fmt.Errorf("invalid country %s: %w", cs.Name, err)
	}

	for resource, quantity := range cs.Stockpiles {
		country.EnsureStockpile(resource).Add(quantity)
	}

	for _, ds := range cs.Deposits {
		deposit, err := economy.NewDeposit(ds.Resource, ds.TotalReserves, ds.ExtractionRate)
		if err != nil {
			return 0, fmt.Errorf("invalid deposit for %s: %w", cs.Name, err)
		}
		if err := country.AddDeposit(deposit); err != nil {
			return 0, err
		}
	}

	for _, is := range cs.Industries {
		industry, err := economy.NewIndustry(
			is.IndustryID, is.Kind, is.SubType,
			is.ProductionLevel, is.TechnologyLevel,
			is.SkilledWorkers, is.UnskilledWorkers,
		)
		if err != nil {
			return 0, fmt.Errorf("invalid industry for %s: %w", cs.Name, err)
		}
		for resource, quantity := range is.Inputs {
			if err := industry.AddInput(resource, quantity); err != nil {
				return 0, fmt.Errorf("invalid industry for %s: %w", cs.Name, err)
			}
		}
		for resource, quantity := range is.Outputs {
			if err := industry.AddOutput(resource, quantity); err != nil {
				return 0, fmt.Errorf("invalid industry for %s: %w", cs.Name, err)
			}
		}
		if err := country.HireWorkers(is.SkilledWorkers, is.UnskilledWorkers); err != nil {
			return 0, fmt.Errorf("industry workers exceed workforce of %s: %w", cs.Name, err)
		}
		country.AddIndustry(industry)
	}

	if err := repo.Save(ctx, country); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func buildOffer(gameID, countryID uint, ofs OfferSeed) (*action.Offer, error) {
	switch ofs.Kind {
	case action.TypeStartNewIndustry:
		return action.NewStartIndustryOffer(gameID, countryID, ofs.Turn, ofs.Start)
	case action.TypeExpandIndustry:
		return action.NewExpandIndustryOffer(gameID, countryID, ofs.Turn, ofs.Expand)
	case action.TypeUpgradeTechnology:
		return action.NewUpgradeTechnologyOffer(gameID, countryID, ofs.Turn, ofs.Upgrade)
	default:
		return nil, fmt.Errorf("offer for %q has unsupported kind %s", ofs.Country, ofs.Kind)
	}
}
