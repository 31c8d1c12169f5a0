package turn

import "github.com/lvaldes/statecraft/internal/domain/economy"

// BuildCountrySnapshot renders a country as the nested name-keyed maps
// consumed by the reporting and winner-adjudication collaborators. The key
// names are part of that contract.
func BuildCountrySnapshot(country *economy.Country) map[string]interface{} {
	industries := make([]map[string]interface{}, 0, len(country.Industries()))
	for _, industry := range country.Industries() {
		inputs := make(map[string]string, len(industry.Inputs()))
		for _, f := range industry.Inputs() {
			inputs[f.Resource()] = f.Quantity().String()
		}
		outputs := make(map[string]string, len(industry.Outputs()))
		for _, f := range industry.Outputs() {
			outputs[f.Resource()] = f.Quantity().String()
		}

		industries = append(industries, map[string]interface{}{
			"Industry ID":                industry.IndustryID(),
			"Type":                       string(industry.Kind()),
			"Sub-Type":                   industry.SubType(),
			"Production Level":           industry.ProductionLevel(),
			"Technology Level":           industry.TechnologyLevel(),
			"Inputs":                     inputs,
			"Outputs":                    outputs,
			"Skilled Workers Employed":   industry.SkilledEmployed(),
			"Unskilled Workers Employed": industry.UnskilledEmployed(),
		})
	}

	stockpiles := make(map[string]string, len(country.Stockpiles()))
	for _, s := range country.Stockpiles() {
		stockpiles[s.Resource()] = s.Quantity().String()
	}

	deposits := make(map[string]interface{}, len(country.Deposits()))
	for _, d := range country.Deposits() {
		deposits[d.Resource()] = map[string]interface{}{
			"Total Reserves":  d.TotalReserves().String(),
			"Extraction Rate": d.ExtractionRate().String(),
		}
	}

	return map[string]interface{}{
		"Country Name":            country.Name(),
		"Government Capital Pool": country.Capital().String(),
		"Industries":              industries,
		"Workforce": map[string]interface{}{
			"Unemployed Skilled Workers":   country.UnemployedSkilledWorkers(),
			"Unemployed Unskilled Workers": country.UnemployedUnskilledWorkers(),
		},
		"Stockpiles":        stockpiles,
		"Natural Resources": deposits,
	}
}
