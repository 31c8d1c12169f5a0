package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// UnknownResourceError is returned when a trade names a resource the market
// has never seen
type UnknownResourceError struct {
	*shared.ReferentialError
}

func NewUnknownResourceError(name string) *UnknownResourceError {
	return &UnknownResourceError{ReferentialError: shared.NewReferentialError("resource", name)}
}

// UntradeableResourceError is returned when a resource carries a zero
// quantity threshold. That is a configuration defect of the market setup,
// and the trade is rejected rather than dividing by zero.
type UntradeableResourceError struct {
	*shared.ValidationError
	Resource string
}

func NewUntradeableResourceError(resource string) *UntradeableResourceError {
	return &UntradeableResourceError{
		ValidationError: shared.NewValidationError(
			"quantity_threshold",
			fmt.Sprintf("resource %s has no quantity threshold and cannot be traded", resource),
		),
		Resource: resource,
	}
}

// TransactionLimitError is returned when a trade exceeds a resource's
// per-turn transaction cap
type TransactionLimitError struct {
	*shared.ValidationError
	Resource string
	Quantity decimal.Decimal
	Limit    decimal.Decimal
}

func NewTransactionLimitError(resource string, quantity, limit decimal.Decimal) *TransactionLimitError {
	return &TransactionLimitError{
		ValidationError: shared.NewValidationError(
			"quantity",
			fmt.Sprintf("trade of %s %s exceeds per-turn cap of %s", quantity, resource, limit),
		),
		Resource: resource,
		Quantity: quantity,
		Limit:    limit,
	}
}

// InvalidQuantityError is returned for zero or negative trade quantities
type InvalidQuantityError struct {
	*shared.ValidationError
}

func NewInvalidQuantityError(resource string, quantity decimal.Decimal) *InvalidQuantityError {
	return &InvalidQuantityError{
		ValidationError: shared.NewValidationError(
			"quantity",
			fmt.Sprintf("trade quantity for %s must be positive, got %s", resource, quantity),
		),
	}
}
