package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameModel represents the games table
type GameModel struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	CurrentTurn int       `gorm:"column:current_turn;not null;default:0"`
	TotalTurns  int       `gorm:"column:total_turns;not null"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (GameModel) TableName() string {
	return "games"
}

// CountryModel represents the countries table
type CountryModel struct {
	ID     uint       `gorm:"column:id;primaryKey;autoIncrement"`
	GameID uint       `gorm:"column:game_id;not null;index"`
	Game   *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name   string     `gorm:"column:name;not null"`

	// Money and quantities use numeric columns everywhere; SQLite stores
	// them as text, which shopspring/decimal round-trips exactly.
	Capital decimal.Decimal `gorm:"column:capital;type:numeric;not null"`

	TotalSkilled        int `gorm:"column:total_skilled;not null;default:0"`
	TotalUnskilled      int `gorm:"column:total_unskilled;not null;default:0"`
	UnemployedSkilled   int `gorm:"column:unemployed_skilled;not null;default:0"`
	UnemployedUnskilled int `gorm:"column:unemployed_unskilled;not null;default:0"`
}

func (CountryModel) TableName() string {
	return "countries"
}

// IndustryModel represents the industries table
type IndustryModel struct {
	ID        uint          `gorm:"column:id;primaryKey;autoIncrement"`
	CountryID uint          `gorm:"column:country_id;not null;uniqueIndex:idx_country_industry"`
	Country   *CountryModel `gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	IndustryID string `gorm:"column:industry_id;not null;uniqueIndex:idx_country_industry"`
	Kind       string `gorm:"column:kind;not null"`
	SubType    string `gorm:"column:sub_type"`

	ProductionLevel int `gorm:"column:production_level;not null;default:1"`
	TechnologyLevel int `gorm:"column:technology_level;not null;default:0"`

	SkilledEmployed   int `gorm:"column:skilled_employed;not null;default:0"`
	UnskilledEmployed int `gorm:"column:unskilled_employed;not null;default:0"`
}

func (IndustryModel) TableName() string {
	return "industries"
}

// ResourceFlowModel represents the industry_flows table: one row per
// industry input or output, tagged by direction
type ResourceFlowModel struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	IndustryID uint           `gorm:"column:industry_id;not null;index"`
	Industry   *IndustryModel `gorm:"foreignKey:IndustryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Direction string          `gorm:"column:direction;not null"` // "input" or "output"
	Resource  string          `gorm:"column:resource;not null"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
}

func (ResourceFlowModel) TableName() string {
	return "industry_flows"
}

// TechnologyUpgradeModel represents the technology_upgrades table
type TechnologyUpgradeModel struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	IndustryID uint           `gorm:"column:industry_id;not null;index"`
	Industry   *IndustryModel `gorm:"foreignKey:IndustryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	NewTechnologyLevel int    `gorm:"column:new_technology_level;not null"`
	RemainingTime      int    `gorm:"column:remaining_time;not null"`
	TotalTimeRequired  int    `gorm:"column:total_time_required;not null"`
	Completed          bool   `gorm:"column:completed;not null;default:false"`
	BenefitsJSON       string `gorm:"column:benefits_json;type:text;not null"`
}

func (TechnologyUpgradeModel) TableName() string {
	return "technology_upgrades"
}

// IndustryExpansionModel represents the industry_expansions table
type IndustryExpansionModel struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	IndustryID uint           `gorm:"column:industry_id;not null;index"`
	Industry   *IndustryModel `gorm:"foreignKey:IndustryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	NewProductionLevel  int    `gorm:"column:new_production_level;not null"`
	RemainingTime       int    `gorm:"column:remaining_time;not null"`
	TotalTimeRequired   int    `gorm:"column:total_time_required;not null"`
	Completed           bool   `gorm:"column:completed;not null;default:false"`
	AdditionalSkilled   int    `gorm:"column:additional_skilled;not null;default:0"`
	AdditionalUnskilled int    `gorm:"column:additional_unskilled;not null;default:0"`
	OutputIncreasesJSON string `gorm:"column:output_increases_json;type:text;not null"`
	InputIncreasesJSON  string `gorm:"column:input_increases_json;type:text;not null"`
}

func (IndustryExpansionModel) TableName() string {
	return "industry_expansions"
}

// StockpileModel represents the stockpiles table
type StockpileModel struct {
	ID        uint          `gorm:"column:id;primaryKey;autoIncrement"`
	CountryID uint          `gorm:"column:country_id;not null;uniqueIndex:idx_country_resource"`
	Country   *CountryModel `gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Resource string          `gorm:"column:resource;not null;uniqueIndex:idx_country_resource"`
	Quantity decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
}

func (StockpileModel) TableName() string {
	return "stockpiles"
}

// DepositModel represents the natural_deposits table
type DepositModel struct {
	ID        uint          `gorm:"column:id;primaryKey;autoIncrement"`
	CountryID uint          `gorm:"column:country_id;not null;uniqueIndex:idx_country_deposit"`
	Country   *CountryModel `gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Resource       string          `gorm:"column:resource;not null;uniqueIndex:idx_country_deposit"`
	TotalReserves  decimal.Decimal `gorm:"column:total_reserves;type:numeric;not null"`
	ExtractionRate decimal.Decimal `gorm:"column:extraction_rate;type:numeric;not null"`
}

func (DepositModel) TableName() string {
	return "natural_deposits"
}

// ResourceModel represents the resources table: the global market state
type ResourceModel struct {
	Name string `gorm:"column:name;primaryKey"`

	BasePrice    decimal.Decimal `gorm:"column:base_price;type:numeric;not null"`
	CurrentPrice decimal.Decimal `gorm:"column:current_price;type:numeric;not null"`
	MinPrice     decimal.Decimal `gorm:"column:min_price;type:numeric;not null"`
	MaxPrice     decimal.Decimal `gorm:"column:max_price;type:numeric;not null"`

	QuantityThreshold     decimal.Decimal `gorm:"column:quantity_threshold;type:numeric;not null"`
	MaxTransactionPerTurn decimal.Decimal `gorm:"column:max_transaction_per_turn;type:numeric;not null"`
}

func (ResourceModel) TableName() string {
	return "resources"
}

// OfferModel represents the action_offers table. The kind-specific payload
// is stored as JSON text; the kind column says which details type it holds.
type OfferModel struct {
	ID        string        `gorm:"column:id;primaryKey"`
	GameID    uint          `gorm:"column:game_id;not null;index"`
	CountryID uint          `gorm:"column:country_id;not null;index:idx_offer_country_turn"`
	Country   *CountryModel `gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Turn        int    `gorm:"column:turn;not null;index:idx_offer_country_turn"`
	Kind        string `gorm:"column:kind;not null"`
	Selected    bool   `gorm:"column:selected;not null;default:false"`
	DetailsJSON string `gorm:"column:details_json;type:text;not null"`
}

func (OfferModel) TableName() string {
	return "action_offers"
}

// TransactionModel represents the market_transactions table, the append-only
// trade ledger
type TransactionModel struct {
	ID        uint          `gorm:"column:id;primaryKey;autoIncrement"`
	GameID    uint          `gorm:"column:game_id;not null;index:idx_tx_game_turn"`
	Turn      int           `gorm:"column:turn;not null;index:idx_tx_game_turn"`
	CountryID uint          `gorm:"column:country_id;not null"`
	Country   *CountryModel `gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Resource     string          `gorm:"column:resource;not null"`
	Kind         string          `gorm:"column:kind;not null"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:numeric;not null"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric;not null"`
	ExecutedAt   time.Time       `gorm:"column:executed_at;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null;autoCreateTime"`
}

func (TransactionModel) TableName() string {
	return "market_transactions"
}

// PriceHistoryModel represents the market_price_history table: one row per
// (game, turn, resource)
type PriceHistoryModel struct {
	ID       uint            `gorm:"column:id;primaryKey;autoIncrement"`
	GameID   uint            `gorm:"column:game_id;not null;uniqueIndex:idx_price_point"`
	Turn     int             `gorm:"column:turn;not null;uniqueIndex:idx_price_point"`
	Resource string          `gorm:"column:resource;not null;uniqueIndex:idx_price_point"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric;not null"`
}

func (PriceHistoryModel) TableName() string {
	return "market_price_history"
}

// AllModels lists every model for AutoMigrate, ordered so foreign key
// targets migrate before their dependents
func AllModels() []interface{} {
	return []interface{}{
		&GameModel{},
		&CountryModel{},
		&IndustryModel{},
		&ResourceFlowModel{},
		&TechnologyUpgradeModel{},
		&IndustryExpansionModel{},
		&StockpileModel{},
		&DepositModel{},
		&ResourceModel{},
		&OfferModel{},
		&TransactionModel{},
		&PriceHistoryModel{},
	}
}
