package turn

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// actionApplier validates and applies one country's decision batch for a
// turn. The batch is atomic in the fail-fast sense: the first rejection
// aborts every remaining entry, while effects of earlier successful entries
// are retained. Validation always runs to completion before any mutation
// for the action being applied.
type actionApplier struct {
	offers  action.OfferRepository
	trades  market.TransactionRepository
	pricing *market.PricingEngine
	clock   shared.Clock
}

func newActionApplier(
	offers action.OfferRepository,
	trades market.TransactionRepository,
	pricing *market.PricingEngine,
) *actionApplier {
	return &actionApplier{offers: offers, trades: trades, pricing: pricing, clock: shared.NewRealClock()}
}

// ApplyBatch processes the ordered decision list and returns one outcome
// per entry
func (a *actionApplier) ApplyBatch(
	ctx context.Context,
	gameID uint,
	country *economy.Country,
	turnNumber int,
	decisions []action.Decision,
	reg *resourceRegistry,
) []ActionOutcome {
	outcomes := make([]ActionOutcome, 0, len(decisions))
	aborted := false

	for _, d := range decisions {
		ref := decisionReference(d)
		if aborted {
			outcomes = append(outcomes, ActionOutcome{
				Kind:      string(d.Kind),
				Reference: ref,
				Applied:   false,
				Reason:    "batch aborted: an earlier action in this turn was rejected",
			})
			continue
		}

		if err := a.applyDecision(ctx, gameID, country, turnNumber, d, reg); err != nil {
			outcomes = append(outcomes, ActionOutcome{
				Kind:      string(d.Kind),
				Reference: ref,
				Applied:   false,
				Reason:    err.Error(),
			})
			aborted = true
			continue
		}

		outcomes = append(outcomes, ActionOutcome{
			Kind:      string(d.Kind),
			Reference: ref,
			Applied:   true,
		})
	}

	return outcomes
}

func decisionReference(d action.Decision) string {
	if d.Trade != nil {
		return fmt.Sprintf("%s:%s", d.Trade.Transaction, d.Trade.Resource)
	}
	return d.OfferID
}

func (a *actionApplier) applyDecision(
	ctx context.Context,
	gameID uint,
	country *economy.Country,
	turnNumber int,
	d action.Decision,
	reg *resourceRegistry,
) error {
	switch d.Kind {
	case action.TypeStartNewIndustry, action.TypeExpandIndustry, action.TypeUpgradeTechnology:
		offer, err := a.loadOffer(ctx, country, turnNumber, d)
		if err != nil {
			return err
		}
		switch d.Kind {
		case action.TypeStartNewIndustry:
			if err := a.applyStartIndustry(country, offer, reg); err != nil {
				return err
			}
		case action.TypeExpandIndustry:
			if err := a.applyExpandIndustry(country, offer); err != nil {
				return err
			}
		case action.TypeUpgradeTechnology:
			if err := a.applyUpgradeTechnology(country, offer); err != nil {
				return err
			}
		}
		return a.offers.Save(ctx, offer)

	case action.TypeBuySellResource:
		if d.Trade == nil {
			return action.NewMalformedDecisionError("BuySellResource decision carries no trade details")
		}
		return a.applyTrade(ctx, gameID, country, turnNumber, d.Trade, reg)

	default:
		return action.NewMalformedDecisionError("unknown action type: " + string(d.Kind))
	}
}

func (a *actionApplier) loadOffer(
	ctx context.Context,
	country *economy.Country,
	turnNumber int,
	d action.Decision,
) (*action.Offer, error) {
	if d.OfferID == "" {
		return nil, action.NewMalformedDecisionError(string(d.Kind) + " decision carries no offer id")
	}

	offer, err := a.offers.FindByID(ctx, d.OfferID, country.ID())
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, action.NewUnknownOfferError(d.OfferID)
	}
	if offer.Kind() != d.Kind {
		return nil, action.NewMalformedDecisionError(
			fmt.Sprintf("offer %s is a %s offer, decision says %s", offer.ID(), offer.Kind(), d.Kind))
	}
	if offer.Turn() != turnNumber {
		return nil, action.NewMalformedDecisionError(
			fmt.Sprintf("offer %s was generated for turn %d, not %d", offer.ID(), offer.Turn(), turnNumber))
	}
	if offer.Selected() {
		return nil, action.NewAlreadySelectedError(offer.ID())
	}
	return offer, nil
}

// applyStartIndustry debits capital and workforce, then creates the
// industry with its input and output rows. Unknown resources named in the
// payload become market placeholders.
func (a *actionApplier) applyStartIndustry(
	country *economy.Country,
	offer *action.Offer,
	reg *resourceRegistry,
) error {
	details := offer.StartDetails()
	if details == nil {
		return action.NewMalformedDecisionError("StartNewIndustry offer carries no details")
	}

	if !country.CanAfford(details.SetupCost) {
		return economy.NewInsufficientCapitalError(details.SetupCost, country.Capital())
	}
	if country.UnemployedSkilledWorkers() < details.SkilledWorkers {
		return economy.NewInsufficientWorkforceError(true, details.SkilledWorkers, country.UnemployedSkilledWorkers())
	}
	if country.UnemployedUnskilledWorkers() < details.UnskilledWorkers {
		return economy.NewInsufficientWorkforceError(false, details.UnskilledWorkers, country.UnemployedUnskilledWorkers())
	}

	industry, err := economy.NewIndustry(
		details.IndustryID,
		details.Kind,
		details.SubType,
		details.ProductionLevel,
		details.TechnologyLevel,
		details.SkilledWorkers,
		details.UnskilledWorkers,
	)
	if err != nil {
		return err
	}

	if err := offer.MarkSelected(); err != nil {
		return err
	}
	if err := country.DebitCapital(details.SetupCost); err != nil {
		return err
	}
	if err := country.HireWorkers(details.SkilledWorkers, details.UnskilledWorkers); err != nil {
		return err
	}

	for _, resource := range sortedFlowKeys(details.Inputs) {
		if _, err := reg.Ensure(resource); err != nil {
			return err
		}
		if err := industry.AddInput(resource, details.Inputs[resource]); err != nil {
			return err
		}
	}
	for _, resource := range sortedFlowKeys(details.Outputs) {
		if _, err := reg.Ensure(resource); err != nil {
			return err
		}
		if err := industry.AddOutput(resource, details.Outputs[resource]); err != nil {
			return err
		}
	}

	country.AddIndustry(industry)
	return nil
}

// applyExpandIndustry commits capital and workers now and queues the
// capacity change as a progression; the new production level lands when
// the countdown completes
func (a *actionApplier) applyExpandIndustry(country *economy.Country, offer *action.Offer) error {
	details := offer.ExpandDetails()
	if details == nil {
		return action.NewMalformedDecisionError("ExpandIndustry offer carries no details")
	}

	industry := country.IndustryByID(details.IndustryID)
	if industry == nil {
		return economy.NewUnknownIndustryError(details.IndustryID)
	}
	if exp := industry.Expansion(); exp != nil && !exp.IsCompleted() {
		return economy.NewProgressionInFlightError("expansion", details.IndustryID)
	}
	if !country.CanAfford(details.ExpansionCost) {
		return economy.NewInsufficientCapitalError(details.ExpansionCost, country.Capital())
	}
	if country.UnemployedSkilledWorkers() < details.AdditionalSkilled {
		return economy.NewInsufficientWorkforceError(true, details.AdditionalSkilled, country.UnemployedSkilledWorkers())
	}
	if country.UnemployedUnskilledWorkers() < details.AdditionalUnskilled {
		return economy.NewInsufficientWorkforceError(false, details.AdditionalUnskilled, country.UnemployedUnskilledWorkers())
	}

	expansion, err := economy.NewIndustryExpansion(
		details.IndustryID,
		details.NewProductionLevel,
		details.TimeToComplete,
		details.AdditionalSkilled,
		details.AdditionalUnskilled,
		details.OutputIncreases,
		details.InputIncreases,
	)
	if err != nil {
		return err
	}

	if err := offer.MarkSelected(); err != nil {
		return err
	}
	if err := country.DebitCapital(details.ExpansionCost); err != nil {
		return err
	}
	if err := country.HireWorkers(details.AdditionalSkilled, details.AdditionalUnskilled); err != nil {
		return err
	}
	industry.EmployWorkers(details.AdditionalSkilled, details.AdditionalUnskilled)

	return industry.BeginExpansion(expansion)
}

// applyUpgradeTechnology debits capital and queues the upgrade as a
// progression; there is no immediate effect
func (a *actionApplier) applyUpgradeTechnology(country *economy.Country, offer *action.Offer) error {
	details := offer.UpgradeDetails()
	if details == nil {
		return action.NewMalformedDecisionError("UpgradeTechnology offer carries no details")
	}

	industry := country.IndustryByID(details.IndustryID)
	if industry == nil {
		return economy.NewUnknownIndustryError(details.IndustryID)
	}
	if upg := industry.Upgrade(); upg != nil && !upg.IsCompleted() {
		return economy.NewProgressionInFlightError("upgrade", details.IndustryID)
	}
	if !country.CanAfford(details.UpgradeCost) {
		return economy.NewInsufficientCapitalError(details.UpgradeCost, country.Capital())
	}

	upgrade, err := economy.NewTechnologyUpgrade(
		details.IndustryID,
		details.NewTechnologyLevel,
		details.TimeToComplete,
		details.Benefits,
	)
	if err != nil {
		return err
	}

	if err := offer.MarkSelected(); err != nil {
		return err
	}
	if err := country.DebitCapital(details.UpgradeCost); err != nil {
		return err
	}

	return industry.BeginUpgrade(upgrade)
}

// applyTrade executes a buy or sell against the shared market: stockpile
// and capital move in opposite directions, the trade is appended to the
// audit ledger, and only then does the pricing engine move the price
func (a *actionApplier) applyTrade(
	ctx context.Context,
	gameID uint,
	country *economy.Country,
	turnNumber int,
	trade *action.TradeDetails,
	reg *resourceRegistry,
) error {
	if !trade.Transaction.IsValid() {
		return action.NewMalformedDecisionError("unknown transaction type: " + string(trade.Transaction))
	}

	resource := reg.Lookup(trade.Resource)
	if resource == nil {
		return market.NewUnknownResourceError(trade.Resource)
	}
	if !resource.Tradeable() {
		return market.NewUntradeableResourceError(trade.Resource)
	}
	if !trade.Quantity.IsPositive() {
		return market.NewInvalidQuantityError(trade.Resource, trade.Quantity)
	}
	if trade.Quantity.GreaterThan(resource.MaxTransactionPerTurn()) {
		return market.NewTransactionLimitError(trade.Resource, trade.Quantity, resource.MaxTransactionPerTurn())
	}

	// The engine prices the trade from the authoritative current price;
	// the total carried in the request is advisory only.
	pricePerUnit := resource.CurrentPrice()
	total := pricePerUnit.Mul(trade.Quantity)

	switch trade.Transaction {
	case market.TransactionBuy:
		if !country.CanAfford(total) {
			return economy.NewInsufficientCapitalError(total, country.Capital())
		}
	case market.TransactionSell:
		stock := country.StockpileOf(trade.Resource)
		if stock == nil || !stock.Covers(trade.Quantity) {
			available := decimal.Zero
			if stock != nil {
				available = stock.Quantity()
			}
			return economy.NewInsufficientStockpileError(trade.Resource, trade.Quantity, available)
		}
	}

	// Append to the ledger before touching country state; a failed append
	// rejects the trade with nothing to undo.
	tx, err := market.NewTransaction(
		gameID, turnNumber, country.ID(),
		trade.Resource, trade.Transaction,
		trade.Quantity, pricePerUnit, total,
		a.clock.Now(),
	)
	if err != nil {
		return err
	}
	if err := a.trades.Record(ctx, tx); err != nil {
		return err
	}

	switch trade.Transaction {
	case market.TransactionBuy:
		if err := country.DebitCapital(total); err != nil {
			return err
		}
		country.EnsureStockpile(trade.Resource).Add(trade.Quantity)

	case market.TransactionSell:
		// Coverage was checked above; Consume cannot fail here.
		if err := country.StockpileOf(trade.Resource).Consume(trade.Quantity); err != nil {
			return err
		}
		if err := country.CreditCapital(total); err != nil {
			return err
		}
	}

	_, err = a.pricing.ApplyTrade(resource, trade.Transaction, trade.Quantity)
	return err
}

func sortedFlowKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
