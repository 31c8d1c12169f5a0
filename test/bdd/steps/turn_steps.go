package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/application/turn"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/economy"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/internal/infrastructure/database"
)

const turnGameID = 1

type turnContext struct {
	db *gorm.DB

	games     *persistence.GormGameRepository
	countries *persistence.GormCountryRepository
	resources *persistence.GormResourceRepository
	offers    *persistence.GormOfferRepository
	trades    *persistence.GormTransactionRepository
	history   *persistence.GormPriceHistoryRepository

	built   map[string]*economy.Country
	ids     map[string]uint
	nextID  uint
	scripts map[uint]map[int][]action.Decision

	response *turn.ProcessTurnResponse
	err      error
}

func (ctx *turnContext) reset() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to create scenario database: %w", err)
	}
	ctx.db = db
	ctx.games = persistence.NewGormGameRepository(db)
	ctx.countries = persistence.NewGormCountryRepository(db)
	ctx.resources = persistence.NewGormResourceRepository(db)
	ctx.offers = persistence.NewGormOfferRepository(db)
	ctx.trades = persistence.NewGormTransactionRepository(db)
	ctx.history = persistence.NewGormPriceHistoryRepository(db)

	ctx.built = make(map[string]*economy.Country)
	ctx.ids = make(map[string]uint)
	ctx.nextID = 0
	ctx.scripts = make(map[uint]map[int][]action.Decision)
	ctx.response = nil
	ctx.err = nil
	return nil
}

// DecisionsFor serves the decisions queued by the scenario's Given steps
func (ctx *turnContext) DecisionsFor(_ context.Context, _, countryID uint, turnNumber int) ([]action.Decision, error) {
	return ctx.scripts[countryID][turnNumber], nil
}

func (ctx *turnContext) country(name string) (*economy.Country, error) {
	country, ok := ctx.built[name]
	if !ok {
		return nil, fmt.Errorf("no country %q in scenario", name)
	}
	return country, nil
}

func (ctx *turnContext) saveCountry(country *economy.Country) error {
	return ctx.countries.Save(context.Background(), country)
}

// Given steps

func (ctx *turnContext) aGameLastingTurns(totalTurns int) error {
	game, err := economy.NewGame(turnGameID, totalTurns)
	if err != nil {
		return err
	}
	return ctx.games.Save(context.Background(), game)
}

func (ctx *turnContext) aMarketResourcePricedAt(name string, price, threshold int) error {
	resource, err := market.NewResource(name,
		decimal.NewFromInt(int64(price)), decimal.NewFromInt(int64(price)),
		decimal.NewFromInt(1), decimal.NewFromInt(10000),
		decimal.NewFromInt(int64(threshold)), decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	return ctx.resources.Save(context.Background(), resource)
}

func (ctx *turnContext) aCountryWithCapitalAndWorkers(name string, capital, skilled, unskilled int) error {
	ctx.nextID++
	country, err := economy.NewCountry(ctx.nextID, turnGameID, name,
		decimal.NewFromInt(int64(capital)), skilled, unskilled)
	if err != nil {
		return err
	}
	ctx.built[name] = country
	ctx.ids[name] = ctx.nextID
	return ctx.saveCountry(country)
}

func (ctx *turnContext) runsIndustryProducing(countryName, industryID string, output int, resource string) error {
	country, err := ctx.country(countryName)
	if err != nil {
		return err
	}
	industry, err := economy.NewIndustry(industryID, economy.IndustryKindPrimary, "Producer", 1, 0, 2, 8)
	if err != nil {
		return err
	}
	if err := industry.AddOutput(resource, decimal.NewFromInt(int64(output))); err != nil {
		return err
	}
	if err := country.HireWorkers(2, 8); err != nil {
		return err
	}
	country.AddIndustry(industry)
	return ctx.saveCountry(country)
}

func (ctx *turnContext) runsIndustryConsumingToProduce(countryName, industryID string, input int, inResource string, output int, outResource string) error {
	country, err := ctx.country(countryName)
	if err != nil {
		return err
	}
	industry, err := economy.NewIndustry(industryID, economy.IndustryKindSecondary, "Processor", 1, 0, 2, 8)
	if err != nil {
		return err
	}
	if err := industry.AddInput(inResource, decimal.NewFromInt(int64(input))); err != nil {
		return err
	}
	if err := industry.AddOutput(outResource, decimal.NewFromInt(int64(output))); err != nil {
		return err
	}
	if err := country.HireWorkers(2, 8); err != nil {
		return err
	}
	country.AddIndustry(industry)
	return ctx.saveCountry(country)
}

func (ctx *turnContext) hasStockpiled(countryName, quantity, resource string) error {
	country, err := ctx.country(countryName)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(quantity)
	if err != nil {
		return err
	}
	country.EnsureStockpile(resource).Add(amount)
	return ctx.saveCountry(country)
}

func (ctx *turnContext) hasDeposit(countryName, resource string, reserves, rate int) error {
	country, err := ctx.country(countryName)
	if err != nil {
		return err
	}
	deposit, err := economy.NewDeposit(resource,
		decimal.NewFromInt(int64(reserves)), decimal.NewFromInt(int64(rate)))
	if err != nil {
		return err
	}
	if err := country.AddDeposit(deposit); err != nil {
		return err
	}
	return ctx.saveCountry(country)
}

func (ctx *turnContext) hasTechnologyUpgrade(countryName, industryID string, level, timeToComplete, outputBonusPct int) error {
	country, err := ctx.country(countryName)
	if err != nil {
		return err
	}
	industry := country.IndustryByID(industryID)
	if industry == nil {
		return fmt.Errorf("no industry %q on country %q", industryID, countryName)
	}
	upgrade, err := economy.NewTechnologyUpgrade(industryID, level, timeToComplete, economy.UpgradeBenefits{
		OutputIncreasePct: decimal.NewFromInt(int64(outputBonusPct)),
	})
	if err != nil {
		return err
	}
	if err := industry.BeginUpgrade(upgrade); err != nil {
		return err
	}
	return ctx.saveCountry(country)
}

func (ctx *turnContext) willBuyUnitsOnTurn(countryName string, quantity int, resource string, turnNumber int) error {
	return ctx.queueTrade(countryName, market.TransactionBuy, quantity, resource, turnNumber)
}

func (ctx *turnContext) willSellUnitsOnTurn(countryName string, quantity int, resource string, turnNumber int) error {
	return ctx.queueTrade(countryName, market.TransactionSell, quantity, resource, turnNumber)
}

func (ctx *turnContext) queueTrade(countryName string, kind market.TransactionType, quantity int, resource string, turnNumber int) error {
	id, ok := ctx.ids[countryName]
	if !ok {
		return fmt.Errorf("no country %q in scenario", countryName)
	}
	if ctx.scripts[id] == nil {
		ctx.scripts[id] = make(map[int][]action.Decision)
	}
	ctx.scripts[id][turnNumber] = append(ctx.scripts[id][turnNumber], action.Decision{
		Kind: action.TypeBuySellResource,
		Trade: &action.TradeDetails{
			Transaction: kind,
			Resource:    resource,
			Quantity:    decimal.NewFromInt(int64(quantity)),
		},
	})
	return nil
}

// When steps

func (ctx *turnContext) theTurnIsResolved() error {
	return ctx.turnsAreResolved(1)
}

func (ctx *turnContext) turnsAreResolved(count int) error {
	handler := turn.NewProcessTurnHandler(
		ctx.games, ctx.countries, ctx.resources, ctx.history,
		ctx.offers, ctx.trades, ctx,
		market.NewPricingEngine(market.DefaultElasticity))

	for i := 0; i < count; i++ {
		response, err := handler.Handle(context.Background(), &turn.ProcessTurnCommand{GameID: turnGameID})
		ctx.err = err
		if err != nil {
			return nil
		}
		ctx.response = response.(*turn.ProcessTurnResponse)
	}
	return nil
}

// Then steps

func (ctx *turnContext) shouldHaveStockpiled(countryName, expected, resource string) error {
	id, ok := ctx.ids[countryName]
	if !ok {
		return fmt.Errorf("no country %q in scenario", countryName)
	}
	country, err := ctx.countries.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	got := decimal.Zero
	if stock := country.StockpileOf(resource); stock != nil {
		got = stock.Quantity()
	}
	if !got.Equal(want) {
		return fmt.Errorf("expected %s to hold %s %s but found %s", countryName, want, resource, got)
	}
	return nil
}

func (ctx *turnContext) shouldHaveCapital(countryName string, expected int) error {
	id, ok := ctx.ids[countryName]
	if !ok {
		return fmt.Errorf("no country %q in scenario", countryName)
	}
	country, err := ctx.countries.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	want := decimal.NewFromInt(int64(expected))
	if !country.Capital().Equal(want) {
		return fmt.Errorf("expected %s capital %s but found %s", countryName, want, country.Capital())
	}
	return nil
}

func (ctx *turnContext) theMarketPriceShouldBe(resource, expected string) error {
	found, err := ctx.resources.FindByName(context.Background(), resource)
	if err != nil {
		return err
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !found.CurrentPrice().Equal(want) {
		return fmt.Errorf("expected %s price %s but found %s", resource, want, found.CurrentPrice())
	}
	return nil
}

func (ctx *turnContext) theTurnShouldResolveWithoutErrors() error {
	if ctx.err != nil {
		return fmt.Errorf("turn resolution failed: %v", ctx.err)
	}
	if ctx.response == nil {
		return fmt.Errorf("no turn has been resolved yet")
	}
	for _, country := range ctx.response.Countries {
		if len(country.PhaseErrors) > 0 {
			return fmt.Errorf("country %s reported phase errors: %+v", country.CountryName, country.PhaseErrors)
		}
		for _, outcome := range country.Actions {
			if !outcome.Applied {
				return fmt.Errorf("country %s had a rejected action: %s", country.CountryName, outcome.Reason)
			}
		}
	}
	return nil
}

func (ctx *turnContext) theGameShouldBeOver() error {
	if ctx.response == nil {
		return fmt.Errorf("no turn has been resolved yet")
	}
	if !ctx.response.GameOver {
		return fmt.Errorf("expected the game to be over after turn %d", ctx.response.Turn)
	}
	return nil
}

func (ctx *turnContext) resolvingAnotherTurnShouldFail() error {
	handler := turn.NewProcessTurnHandler(
		ctx.games, ctx.countries, ctx.resources, ctx.history,
		ctx.offers, ctx.trades, ctx,
		market.NewPricingEngine(market.DefaultElasticity))

	if _, err := handler.Handle(context.Background(), &turn.ProcessTurnCommand{GameID: turnGameID}); err == nil {
		return fmt.Errorf("expected resolving a turn on a finished game to fail")
	}
	return nil
}

// Register steps

func InitializeTurnScenario(ctx *godog.ScenarioContext) {
	tCtx := &turnContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tCtx.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tCtx.db != nil {
			_ = database.Close(tCtx.db)
		}
		return ctx, nil
	})

	ctx.Step(`^a game lasting (\d+) turns$`, tCtx.aGameLastingTurns)
	ctx.Step(`^a market resource "([^"]*)" priced at (\d+) with quantity threshold (\d+)$`, tCtx.aMarketResourcePricedAt)
	ctx.Step(`^a country "([^"]*)" with capital (\d+), (\d+) skilled and (\d+) unskilled workers$`, tCtx.aCountryWithCapitalAndWorkers)
	ctx.Step(`^"([^"]*)" runs industry "([^"]*)" producing (\d+) "([^"]*)" per turn$`, tCtx.runsIndustryProducing)
	ctx.Step(`^"([^"]*)" runs industry "([^"]*)" consuming (\d+) "([^"]*)" to produce (\d+) "([^"]*)" per turn$`, tCtx.runsIndustryConsumingToProduce)
	ctx.Step(`^"([^"]*)" has ([0-9.]+) "([^"]*)" stockpiled$`, tCtx.hasStockpiled)
	ctx.Step(`^"([^"]*)" has a "([^"]*)" deposit of (\d+) with extraction rate (\d+)$`, tCtx.hasDeposit)
	ctx.Step(`^"([^"]*)" has a technology upgrade on "([^"]*)" to level (\d+) completing in (\d+) turns with a (\d+) percent output bonus$`, tCtx.hasTechnologyUpgrade)
	ctx.Step(`^"([^"]*)" will buy (\d+) units of "([^"]*)" on turn (\d+)$`, tCtx.willBuyUnitsOnTurn)
	ctx.Step(`^"([^"]*)" will sell (\d+) units of "([^"]*)" on turn (\d+)$`, tCtx.willSellUnitsOnTurn)

	ctx.Step(`^the turn is resolved$`, tCtx.theTurnIsResolved)
	ctx.Step(`^(\d+) turns are resolved$`, tCtx.turnsAreResolved)

	ctx.Step(`^"([^"]*)" should have ([0-9.]+) "([^"]*)" stockpiled$`, tCtx.shouldHaveStockpiled)
	ctx.Step(`^"([^"]*)" should have capital (\d+)$`, tCtx.shouldHaveCapital)
	ctx.Step(`^the market price of "([^"]*)" should be ([0-9.]+)$`, tCtx.theMarketPriceShouldBe)
	ctx.Step(`^the turn should resolve without errors$`, tCtx.theTurnShouldResolveWithoutErrors)
	ctx.Step(`^the game should be over$`, tCtx.theGameShouldBeOver)
	ctx.Step(`^resolving another turn should fail$`, tCtx.resolvingAnotherTurnShouldFail)
}
