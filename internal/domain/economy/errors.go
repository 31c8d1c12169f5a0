package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// InsufficientCapitalError is returned when a country cannot pay for an action
type InsufficientCapitalError struct {
	*shared.ValidationError
	Required  decimal.Decimal
	Available decimal.Decimal
}

func NewInsufficientCapitalError(required, available decimal.Decimal) *InsufficientCapitalError {
	return &InsufficientCapitalError{
		ValidationError: shared.NewValidationError(
			"capital",
			fmt.Sprintf("insufficient capital: need %s, have %s", required, available),
		),
		Required:  required,
		Available: available,
	}
}

// InsufficientWorkforceError is returned when the unemployed pools cannot
// cover an action's worker requirements
type InsufficientWorkforceError struct {
	*shared.ValidationError
	Skilled            bool
	Required           int
	Available          int
}

func NewInsufficientWorkforceError(skilled bool, required, available int) *InsufficientWorkforceError {
	pool := "unskilled"
	if skilled {
		pool = "skilled"
	}
	return &InsufficientWorkforceError{
		ValidationError: shared.NewValidationError(
			"workforce",
			fmt.Sprintf("insufficient unemployed %s workers: need %d, have %d", pool, required, available),
		),
		Skilled:   skilled,
		Required:  required,
		Available: available,
	}
}

// InsufficientStockpileError is returned when a sell or consumption would
// drive a stockpile negative
type InsufficientStockpileError struct {
	*shared.ValidationError
	Resource  string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func NewInsufficientStockpileError(resource string, required, available decimal.Decimal) *InsufficientStockpileError {
	return &InsufficientStockpileError{
		ValidationError: shared.NewValidationError(
			"stockpile",
			fmt.Sprintf("insufficient stockpile of %s: need %s, have %s", resource, required, available),
		),
		Resource:  resource,
		Required:  required,
		Available: available,
	}
}

// UnknownIndustryError is returned when an action references an industry
// the country does not own
type UnknownIndustryError struct {
	*shared.ReferentialError
}

func NewUnknownIndustryError(industryID string) *UnknownIndustryError {
	return &UnknownIndustryError{ReferentialError: shared.NewReferentialError("industry", industryID)}
}

// ProgressionInFlightError is returned when an industry already has a
// non-completed upgrade or expansion and another one is requested
type ProgressionInFlightError struct {
	*shared.ValidationError
	IndustryID string
}

func NewProgressionInFlightError(kind, industryID string) *ProgressionInFlightError {
	return &ProgressionInFlightError{
		ValidationError: shared.NewValidationError(
			kind,
			fmt.Sprintf("industry %s already has a %s in progress", industryID, kind),
		),
		IndustryID: industryID,
	}
}

// ProgressionCompletedError is returned when a completed progression is
// asked to advance or apply its benefit again
type ProgressionCompletedError struct {
	*shared.DomainError
}

func NewProgressionCompletedError(kind string) *ProgressionCompletedError {
	return &ProgressionCompletedError{
		DomainError: shared.NewDomainError(fmt.Sprintf("%s progression already completed", kind)),
	}
}
