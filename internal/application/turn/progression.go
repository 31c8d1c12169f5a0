package turn

import (
	"fmt"

	"github.com/lvaldes/statecraft/internal/domain/economy"
)

// resolveProgressions advances every non-completed upgrade and expansion of
// a country by one turn. A progression whose countdown reaches zero applies
// its one-time benefit atomically with the completion flag, so the
// transform can never run twice. Expansion deltas may name resources the
// market has never priced; those become placeholders like any other
// unknown resource.
func resolveProgressions(country *economy.Country, reg *resourceRegistry) []PhaseError {
	var errs []PhaseError

	for _, industry := range country.Industries() {
		if upgrade := industry.Upgrade(); upgrade != nil && !upgrade.IsCompleted() {
			due, err := upgrade.Advance()
			if err != nil {
				errs = append(errs, progressionError("upgrade", industry, err))
				continue
			}
			if due {
				if err := upgrade.Complete(industry, country); err != nil {
					errs = append(errs, progressionError("upgrade", industry, err))
				}
			}
		}

		if expansion := industry.Expansion(); expansion != nil && !expansion.IsCompleted() {
			due, err := expansion.Advance()
			if err != nil {
				errs = append(errs, progressionError("expansion", industry, err))
				continue
			}
			if due {
				for resource := range expansion.OutputIncreases() {
					if _, err := reg.Ensure(resource); err != nil {
						errs = append(errs, progressionError("expansion", industry, err))
					}
				}
				for resource := range expansion.InputIncreases() {
					if _, err := reg.Ensure(resource); err != nil {
						errs = append(errs, progressionError("expansion", industry, err))
					}
				}
				if err := expansion.Complete(industry); err != nil {
					errs = append(errs, progressionError("expansion", industry, err))
				}
			}
		}
	}

	return errs
}

func progressionError(kind string, industry *economy.Industry, err error) PhaseError {
	return PhaseError{
		Phase:   "progression",
		Message: fmt.Sprintf("%s on industry %s: %v", kind, industry.IndustryID(), err),
	}
}
