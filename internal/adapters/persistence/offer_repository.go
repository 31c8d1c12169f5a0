package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/domain/action"
)

// GormOfferRepository implements OfferRepository using GORM. The
// kind-specific payload travels as JSON text in a single column; the kind
// tag decides which details struct it unmarshals into.
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GORM offer repository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID retrieves an offer scoped to one country. An offer belonging to
// a different country is reported as not found, never leaked.
func (r *GormOfferRepository) FindByID(ctx context.Context, id string, countryID uint) (*action.Offer, error) {
	var model OfferModel
	result := r.db.WithContext(ctx).Where("id = ? AND country_id = ?", id, countryID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find offer: %w", result.Error)
	}
	return modelToOffer(&model)
}

// FindOpenByCountryTurn retrieves a country's unselected offers for a turn
func (r *GormOfferRepository) FindOpenByCountryTurn(ctx context.Context, countryID uint, turn int) ([]*action.Offer, error) {
	var models []OfferModel
	result := r.db.WithContext(ctx).
		Where("country_id = ? AND turn = ? AND selected = ?", countryID, turn, false).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list offers: %w", result.Error)
	}

	offers := make([]*action.Offer, 0, len(models))
	for i := range models {
		offer, err := modelToOffer(&models[i])
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// Save upserts an offer, including its selected flag
func (r *GormOfferRepository) Save(ctx context.Context, offer *action.Offer) error {
	details, err := offerDetailsJSON(offer)
	if err != nil {
		return err
	}

	model := OfferModel{
		ID:          offer.ID(),
		GameID:      offer.GameID(),
		CountryID:   offer.CountryID(),
		Turn:        offer.Turn(),
		Kind:        string(offer.Kind()),
		Selected:    offer.Selected(),
		DetailsJSON: details,
	}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save offer %s: %w", offer.ID(), result.Error)
	}
	return nil
}

func offerDetailsJSON(offer *action.Offer) (string, error) {
	var payload interface{}
	switch offer.Kind() {
	case action.TypeStartNewIndustry:
		payload = offer.StartDetails()
	case action.TypeExpandIndustry:
		payload = offer.ExpandDetails()
	case action.TypeUpgradeTechnology:
		payload = offer.UpgradeDetails()
	default:
		return "", fmt.Errorf("offer %s has unexpected kind %s", offer.ID(), offer.Kind())
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal offer details: %w", err)
	}
	return string(bytes), nil
}

func modelToOffer(model *OfferModel) (*action.Offer, error) {
	var (
		start   *action.StartIndustryDetails
		expand  *action.ExpandIndustryDetails
		upgrade *action.UpgradeTechnologyDetails
	)

	kind := action.Type(model.Kind)
	switch kind {
	case action.TypeStartNewIndustry:
		start = &action.StartIndustryDetails{}
		if err := json.Unmarshal([]byte(model.DetailsJSON), start); err != nil {
			return nil, fmt.Errorf("invalid offer payload %s: %w", model.ID, err)
		}
	case action.TypeExpandIndustry:
		expand = &action.ExpandIndustryDetails{}
		if err := json.Unmarshal([]byte(model.DetailsJSON), expand); err != nil {
			return nil, fmt.Errorf("invalid offer payload %s: %w", model.ID, err)
		}
	case action.TypeUpgradeTechnology:
		upgrade = &action.UpgradeTechnologyDetails{}
		if err := json.Unmarshal([]byte(model.DetailsJSON), upgrade); err != nil {
			return nil, fmt.Errorf("invalid offer payload %s: %w", model.ID, err)
		}
	default:
		return nil, fmt.Errorf("offer %s has unexpected kind %s", model.ID, model.Kind)
	}

	return action.ReconstructOffer(
		model.ID,
		model.GameID, model.CountryID,
		model.Turn,
		kind,
		model.Selected,
		start, expand, upgrade,
	), nil
}
