package action

import (
	"fmt"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// AlreadySelectedError is returned when a decision references an offer that
// has already been consumed
type AlreadySelectedError struct {
	*shared.ValidationError
	OfferID string
}

func NewAlreadySelectedError(offerID string) *AlreadySelectedError {
	return &AlreadySelectedError{
		ValidationError: shared.NewValidationError(
			"selected",
			fmt.Sprintf("offer %s has already been selected", offerID),
		),
		OfferID: offerID,
	}
}

// UnknownOfferError is returned when a decision references an offer id that
// does not exist for the country and turn
type UnknownOfferError struct {
	*shared.ReferentialError
}

func NewUnknownOfferError(offerID string) *UnknownOfferError {
	return &UnknownOfferError{ReferentialError: shared.NewReferentialError("offer", offerID)}
}

// MalformedDecisionError is returned when a decision entry is internally
// inconsistent (bad kind tag, missing offer id or trade details)
type MalformedDecisionError struct {
	*shared.ValidationError
}

func NewMalformedDecisionError(reason string) *MalformedDecisionError {
	return &MalformedDecisionError{
		ValidationError: shared.NewValidationError("decision", reason),
	}
}
