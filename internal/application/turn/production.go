package turn

import (
	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

// resolveProduction runs every industry of a country for one turn. The
// feasibility check is all-or-nothing: every required input is measured
// against its stockpile before anything is consumed, and an industry that
// cannot cover all of them produces nothing and consumes nothing.
func resolveProduction(country *economy.Country) {
	for _, industry := range country.Industries() {
		runIndustry(country, industry)
	}
}

func runIndustry(country *economy.Country, industry *economy.Industry) {
	type demand struct {
		stock    *economy.Stockpile
		required decimal.Decimal
	}

	demands := make([]demand, 0, len(industry.Inputs()))
	for _, input := range industry.Inputs() {
		required := industry.RequiredInput(input)
		stock := country.StockpileOf(input.Resource())
		if stock == nil || !stock.Covers(required) {
			// Insufficient input: the industry sits the turn out.
			return
		}
		demands = append(demands, demand{stock: stock, required: required})
	}

	for _, d := range demands {
		// Covers was checked above; Consume cannot fail here.
		if err := d.stock.Consume(d.required); err != nil {
			return
		}
	}

	for _, output := range industry.Outputs() {
		produced := industry.ProducedOutput(output)
		country.EnsureStockpile(output.Resource()).Add(produced)
	}
}
