package turn

// ProcessTurnCommand advances one game by exactly one turn
type ProcessTurnCommand struct {
	GameID uint
}

// ActionOutcome is the per-action result surfaced to the decision provider:
// the offer id or trade key, whether it applied, and the rejection reason
// when it did not
type ActionOutcome struct {
	Kind      string
	Reference string
	Applied   bool
	Reason    string
}

// PhaseError records a non-fatal failure in one of a country's phases
type PhaseError struct {
	Phase   string
	Message string
}

// CountryResult is one country's full outcome for a turn
type CountryResult struct {
	CountryID   uint
	CountryName string
	Actions     []ActionOutcome
	PhaseErrors []PhaseError

	// Snapshot is the nested name-keyed view consumed by reporting and
	// winner-adjudication collaborators
	Snapshot map[string]interface{}
}

// ProcessTurnResponse is the turn-completion signal: the turn number and
// every country's outcome once all four phases have run everywhere
type ProcessTurnResponse struct {
	Turn      int
	GameOver  bool
	Countries []CountryResult
}
