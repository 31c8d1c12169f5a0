package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/market"
)

type pricingContext struct {
	resources map[string]*market.Resource
	engine    *market.PricingEngine
	newPrice  decimal.Decimal
	err       error
}

func (ctx *pricingContext) reset() {
	ctx.resources = make(map[string]*market.Resource)
	ctx.engine = market.NewPricingEngine(market.DefaultElasticity)
	ctx.newPrice = decimal.Zero
	ctx.err = nil
}

func (ctx *pricingContext) aTradeableResourcePricedAt(name string, price int) error {
	resource, err := market.NewResource(name,
		decimal.NewFromInt(int64(price)), decimal.NewFromInt(int64(price)),
		decimal.NewFromInt(1), decimal.NewFromInt(10000),
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	ctx.resources[name] = resource
	return nil
}

func (ctx *pricingContext) aResourceWithPriceBand(name string, price, min, max int) error {
	resource, err := market.NewResource(name,
		decimal.NewFromInt(int64(price)), decimal.NewFromInt(int64(price)),
		decimal.NewFromInt(int64(min)), decimal.NewFromInt(int64(max)),
		decimal.NewFromInt(50), decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	ctx.resources[name] = resource
	return nil
}

func (ctx *pricingContext) aResourceWithNoQuantityThreshold(name string) error {
	resource, err := market.NewPlaceholderResource(name)
	if err != nil {
		return err
	}
	ctx.resources[name] = resource
	return nil
}

func (ctx *pricingContext) aCountryBuysUnitsOf(quantity int, name string) error {
	return ctx.applyTrade(market.TransactionBuy, quantity, name)
}

func (ctx *pricingContext) aCountrySellsUnitsOf(quantity int, name string) error {
	return ctx.applyTrade(market.TransactionSell, quantity, name)
}

func (ctx *pricingContext) applyTrade(kind market.TransactionType, quantity int, name string) error {
	resource, ok := ctx.resources[name]
	if !ok {
		return fmt.Errorf("no resource %q in scenario", name)
	}
	ctx.newPrice, ctx.err = ctx.engine.ApplyTrade(resource, kind, decimal.NewFromInt(int64(quantity)))
	return nil
}

func (ctx *pricingContext) thePriceOfShouldBe(name string, expected string) error {
	resource, ok := ctx.resources[name]
	if !ok {
		return fmt.Errorf("no resource %q in scenario", name)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !resource.CurrentPrice().Equal(want) {
		return fmt.Errorf("expected price %s but got %s", want, resource.CurrentPrice())
	}
	return nil
}

func (ctx *pricingContext) theTradeShouldBeRejectedWith(expectedText string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected an error containing '%s' but the trade succeeded", expectedText)
	}
	if !strings.Contains(ctx.err.Error(), expectedText) {
		return fmt.Errorf("expected error to contain '%s' but got: %v", expectedText, ctx.err)
	}
	return nil
}

func (ctx *pricingContext) theTradeShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected trade to succeed but got: %v", ctx.err)
	}
	return nil
}

// Register steps

func InitializePricingScenario(ctx *godog.ScenarioContext) {
	pCtx := &pricingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pCtx.reset()
		return ctx, nil
	})

	ctx.Step(`^a tradeable resource "([^"]*)" priced at (\d+)$`, pCtx.aTradeableResourcePricedAt)
	ctx.Step(`^a resource "([^"]*)" priced at (\d+) with price band (\d+) to (\d+)$`, pCtx.aResourceWithPriceBand)
	ctx.Step(`^a resource "([^"]*)" with no quantity threshold$`, pCtx.aResourceWithNoQuantityThreshold)

	ctx.Step(`^a country buys (\d+) units of "([^"]*)"$`, pCtx.aCountryBuysUnitsOf)
	ctx.Step(`^a country sells (\d+) units of "([^"]*)"$`, pCtx.aCountrySellsUnitsOf)

	ctx.Step(`^the trade should succeed$`, pCtx.theTradeShouldSucceed)
	ctx.Step(`^the trade should be rejected with "([^"]*)"$`, pCtx.theTradeShouldBeRejectedWith)
	ctx.Step(`^the price of "([^"]*)" should be ([0-9.]+)$`, pCtx.thePriceOfShouldBe)
}
