package action

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// Type tags the four action variants a country can take in a turn
type Type string

const (
	TypeStartNewIndustry  Type = "StartNewIndustry"
	TypeExpandIndustry    Type = "ExpandIndustry"
	TypeUpgradeTechnology Type = "UpgradeTechnology"
	TypeBuySellResource   Type = "BuySellResource"
)

// IsValid reports whether the type is one of the four known variants
func (t Type) IsValid() bool {
	switch t {
	case TypeStartNewIndustry, TypeExpandIndustry, TypeUpgradeTechnology, TypeBuySellResource:
		return true
	}
	return false
}

// StartIndustryDetails carries the payload of a pre-generated
// StartNewIndustry offer
type StartIndustryDetails struct {
	IndustryID      string                     `json:"industry_id"`
	Kind            economy.IndustryKind       `json:"kind"`
	SubType         string                     `json:"sub_type"`
	SetupCost       decimal.Decimal            `json:"setup_cost"`
	ProductionLevel int                        `json:"production_level"`
	TechnologyLevel int                        `json:"technology_level"`
	Inputs          map[string]decimal.Decimal `json:"inputs"`
	Outputs         map[string]decimal.Decimal `json:"outputs"`
	SkilledWorkers  int                        `json:"skilled_workers"`
	UnskilledWorkers int                       `json:"unskilled_workers"`
}

// ExpandIndustryDetails carries the payload of a pre-generated
// ExpandIndustry offer
type ExpandIndustryDetails struct {
	IndustryID          string                     `json:"industry_id"`
	NewProductionLevel  int                        `json:"new_production_level"`
	ExpansionCost       decimal.Decimal            `json:"expansion_cost"`
	TimeToComplete      int                        `json:"time_to_complete"`
	AdditionalSkilled   int                        `json:"additional_skilled"`
	AdditionalUnskilled int                        `json:"additional_unskilled"`
	OutputIncreases     map[string]decimal.Decimal `json:"output_increases"`
	InputIncreases      map[string]decimal.Decimal `json:"input_increases"`
}

// UpgradeTechnologyDetails carries the payload of a pre-generated
// UpgradeTechnology offer
type UpgradeTechnologyDetails struct {
	IndustryID         string                  `json:"industry_id"`
	NewTechnologyLevel int                     `json:"new_technology_level"`
	UpgradeCost        decimal.Decimal         `json:"upgrade_cost"`
	TimeToComplete     int                     `json:"time_to_complete"`
	Benefits           economy.UpgradeBenefits `json:"benefits"`
}

// Offer is a pre-generated candidate action of one of the three non-trade
// kinds, keyed by id and consumed at most once: the selected flag is
// write-once false-to-true. Exactly one payload pointer matching the tag is
// non-nil.
type Offer struct {
	id        string
	gameID    uint
	countryID uint
	turn      int
	kind      Type
	selected  bool

	start   *StartIndustryDetails
	expand  *ExpandIndustryDetails
	upgrade *UpgradeTechnologyDetails
}

// NewStartIndustryOffer creates an unselected StartNewIndustry offer
func NewStartIndustryOffer(gameID, countryID uint, turn int, details *StartIndustryDetails) (*Offer, error) {
	if details == nil {
		return nil, shared.NewDomainError("offer details cannot be nil")
	}
	return &Offer{
		id:        uuid.NewString(),
		gameID:    gameID,
		countryID: countryID,
		turn:      turn,
		kind:      TypeStartNewIndustry,
		start:     details,
	}, nil
}

// NewExpandIndustryOffer creates an unselected ExpandIndustry offer
func NewExpandIndustryOffer(gameID, countryID uint, turn int, details *ExpandIndustryDetails) (*Offer, error) {
	if details == nil {
		return nil, shared.NewDomainError("offer details cannot be nil")
	}
	return &Offer{
		id:        uuid.NewString(),
		gameID:    gameID,
		countryID: countryID,
		turn:      turn,
		kind:      TypeExpandIndustry,
		expand:    details,
	}, nil
}

// NewUpgradeTechnologyOffer creates an unselected UpgradeTechnology offer
func NewUpgradeTechnologyOffer(gameID, countryID uint, turn int, details *UpgradeTechnologyDetails) (*Offer, error) {
	if details == nil {
		return nil, shared.NewDomainError("offer details cannot be nil")
	}
	return &Offer{
		id:        uuid.NewString(),
		gameID:    gameID,
		countryID: countryID,
		turn:      turn,
		kind:      TypeUpgradeTechnology,
		upgrade:   details,
	}, nil
}

// ReconstructOffer restores an offer from persistence
func ReconstructOffer(
	id string,
	gameID, countryID uint,
	turn int,
	kind Type,
	selected bool,
	start *StartIndustryDetails,
	expand *ExpandIndustryDetails,
	upgrade *UpgradeTechnologyDetails,
) *Offer {
	return &Offer{
		id:        id,
		gameID:    gameID,
		countryID: countryID,
		turn:      turn,
		kind:      kind,
		selected:  selected,
		start:     start,
		expand:    expand,
		upgrade:   upgrade,
	}
}

func (o *Offer) ID() string      { return o.id }
func (o *Offer) GameID() uint    { return o.gameID }
func (o *Offer) CountryID() uint { return o.countryID }
func (o *Offer) Turn() int       { return o.turn }
func (o *Offer) Kind() Type      { return o.kind }
func (o *Offer) Selected() bool  { return o.selected }

func (o *Offer) StartDetails() *StartIndustryDetails       { return o.start }
func (o *Offer) ExpandDetails() *ExpandIndustryDetails     { return o.expand }
func (o *Offer) UpgradeDetails() *UpgradeTechnologyDetails { return o.upgrade }

// MarkSelected flips the write-once selected flag.
// A selected offer can never be applied a second time.
func (o *Offer) MarkSelected() error {
	if o.selected {
		return NewAlreadySelectedError(o.id)
	}
	o.selected = true
	return nil
}

// TradeDetails carries an ad-hoc BuySellResource request; trades have no
// pre-generated offer
type TradeDetails struct {
	Transaction market.TransactionType `json:"transaction" validate:"required,oneof=Buy Sell"`
	Resource    string                 `json:"resource" validate:"required"`
	Quantity    decimal.Decimal        `json:"quantity" validate:"required"`
	TotalPrice  decimal.Decimal        `json:"total_price"`
}

// Decision is one entry of a country's ordered decision list for a turn:
// either an offer reference or inline trade details, tagged by Kind
type Decision struct {
	Kind    Type          `json:"kind"`
	OfferID string        `json:"offer_id,omitempty"`
	Trade   *TradeDetails `json:"trade,omitempty"`
}
