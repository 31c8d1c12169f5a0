package turn

import "github.com/lvaldes/statecraft/internal/domain/economy"

// resolveExtraction advances every deposit of a country by one turn,
// crediting the extracted quantity into the matching stockpile. Depleted
// deposits are permanent no-ops.
func resolveExtraction(country *economy.Country) {
	for _, deposit := range country.Deposits() {
		extracted := deposit.Extract()
		if extracted.IsPositive() {
			country.EnsureStockpile(deposit.Resource()).Add(extracted)
		}
	}
}
