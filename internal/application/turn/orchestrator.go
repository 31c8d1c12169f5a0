package turn

import (
	"context"
	"fmt"

	"github.com/lvaldes/statecraft/internal/application/common"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
)

// ProcessTurnHandler advances one game by one turn. Countries run through
// the four phases (actions, progressions, production, extraction) in
// ascending country-id order, so trade actions hit the shared pricing
// engine in a single deterministic order: replaying the same decision
// lists always yields the same prices. One country's failure is recorded
// in its result and never aborts the other countries.
type ProcessTurnHandler struct {
	games     economy.GameRepository
	countries economy.CountryRepository
	resources market.ResourceRepository
	history   market.PriceHistoryRepository
	decisions action.DecisionProvider
	applier   *actionApplier
}

// NewProcessTurnHandler wires the orchestrator and its action applier
func NewProcessTurnHandler(
	games economy.GameRepository,
	countries economy.CountryRepository,
	resources market.ResourceRepository,
	history market.PriceHistoryRepository,
	offers action.OfferRepository,
	trades market.TransactionRepository,
	decisions action.DecisionProvider,
	pricing *market.PricingEngine,
) *ProcessTurnHandler {
	return &ProcessTurnHandler{
		games:     games,
		countries: countries,
		resources: resources,
		history:   history,
		decisions: decisions,
		applier:   newActionApplier(offers, trades, pricing),
	}
}

// Handle executes a ProcessTurnCommand
func (h *ProcessTurnHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)

	game, err := h.games.FindByID(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	if !game.IsActive() {
		return nil, fmt.Errorf("game %d is no longer active", game.ID())
	}
	turnNumber := game.CurrentTurn() + 1

	allResources, err := h.resources.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	reg := newResourceRegistry(allResources)

	// FindByGame returns countries in ascending id order; the shared
	// market makes that ordering part of the engine's contract.
	countries, err := h.countries.FindByGame(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	results := make([]CountryResult, 0, len(countries))
	for _, country := range countries {
		result := h.processCountry(ctx, game, country, turnNumber, reg)

		if err := h.countries.Save(ctx, country); err != nil {
			// The country's in-memory phase results stand; persisting
			// them failed, which the caller needs to see.
			result.PhaseErrors = append(result.PhaseErrors, PhaseError{
				Phase:   "persist",
				Message: err.Error(),
			})
			logger.Log("ERROR", "failed to persist country after turn", map[string]interface{}{
				"country": country.Name(),
				"turn":    turnNumber,
				"error":   err.Error(),
			})
		}

		results = append(results, result)
	}

	for _, resource := range reg.All() {
		if err := h.resources.Save(ctx, resource); err != nil {
			return nil, fmt.Errorf("failed to persist resource %s: %w", resource.Name(), err)
		}
	}
	if err := h.history.SaveSnapshot(ctx, game.ID(), market.SnapshotPrices(turnNumber, reg.All())); err != nil {
		return nil, fmt.Errorf("failed to snapshot prices: %w", err)
	}

	if err := game.AdvanceTurn(turnNumber); err != nil {
		return nil, err
	}
	if err := h.games.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to persist game: %w", err)
	}

	return &ProcessTurnResponse{
		Turn:      turnNumber,
		GameOver:  !game.IsActive(),
		Countries: results,
	}, nil
}

// processCountry runs the four phases for one country. Phases two through
// four touch only the country's own data; phase one also moves shared
// market state through the applier.
func (h *ProcessTurnHandler) processCountry(
	ctx context.Context,
	game *economy.Game,
	country *economy.Country,
	turnNumber int,
	reg *resourceRegistry,
) CountryResult {
	logger := common.LoggerFromContext(ctx)
	result := CountryResult{
		CountryID:   country.ID(),
		CountryName: country.Name(),
	}

	decisions, err := h.decisions.DecisionsFor(ctx, game.ID(), country.ID(), turnNumber)
	if err != nil {
		result.PhaseErrors = append(result.PhaseErrors, PhaseError{
			Phase:   "actions",
			Message: "decision provider failed: " + err.Error(),
		})
		logger.Log("WARN", "no decisions for country this turn", map[string]interface{}{
			"country": country.Name(),
			"turn":    turnNumber,
			"error":   err.Error(),
		})
	} else {
		result.Actions = h.applier.ApplyBatch(ctx, game.ID(), country, turnNumber, decisions, reg)
	}

	result.PhaseErrors = append(result.PhaseErrors, resolveProgressions(country, reg)...)
	resolveProduction(country)
	resolveExtraction(country)

	result.Snapshot = BuildCountrySnapshot(country)
	return result
}
