package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// TransactionType distinguishes market buys from sells
type TransactionType string

const (
	TransactionBuy  TransactionType = "Buy"
	TransactionSell TransactionType = "Sell"
)

// IsValid reports whether the type is Buy or Sell
func (t TransactionType) IsValid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction is the immutable audit record of one executed trade
type Transaction struct {
	gameID       uint
	turn         int
	countryID    uint
	resource     string
	kind         TransactionType
	quantity     decimal.Decimal
	pricePerUnit decimal.Decimal
	totalPrice   decimal.Decimal
	executedAt   time.Time
}

// NewTransaction creates an audit record with validation
func NewTransaction(
	gameID uint,
	turn int,
	countryID uint,
	resource string,
	kind TransactionType,
	quantity, pricePerUnit, totalPrice decimal.Decimal,
	executedAt time.Time,
) (*Transaction, error) {
	if resource == "" {
		return nil, shared.NewDomainError("transaction resource cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("invalid transaction type: " + string(kind))
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("transaction quantity must be positive")
	}
	return &Transaction{
		gameID:       gameID,
		turn:         turn,
		countryID:    countryID,
		resource:     resource,
		kind:         kind,
		quantity:     quantity,
		pricePerUnit: pricePerUnit,
		totalPrice:   totalPrice,
		executedAt:   executedAt,
	}, nil
}

func (t *Transaction) GameID() uint                  { return t.gameID }
func (t *Transaction) Turn() int                     { return t.turn }
func (t *Transaction) CountryID() uint               { return t.countryID }
func (t *Transaction) Resource() string              { return t.resource }
func (t *Transaction) Kind() TransactionType         { return t.kind }
func (t *Transaction) Quantity() decimal.Decimal     { return t.quantity }
func (t *Transaction) PricePerUnit() decimal.Decimal { return t.pricePerUnit }
func (t *Transaction) TotalPrice() decimal.Decimal   { return t.totalPrice }
func (t *Transaction) ExecutedAt() time.Time         { return t.executedAt }
