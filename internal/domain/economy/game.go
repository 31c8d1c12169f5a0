package economy

import "github.com/lvaldes/statecraft/internal/domain/shared"

// Game tracks one playthrough: how many turns it runs and which turn the
// engine is on. The orchestrator advances CurrentTurn after every country
// has passed all four phases.
type Game struct {
	id          uint
	currentTurn int
	totalTurns  int
	active      bool
}

// NewGame creates a game positioned before its first turn
func NewGame(id uint, totalTurns int) (*Game, error) {
	if totalTurns <= 0 {
		return nil, shared.NewDomainError("total turns must be positive")
	}
	return &Game{id: id, currentTurn: 0, totalTurns: totalTurns, active: true}, nil
}

// ReconstructGame restores a game from persistence
func ReconstructGame(id uint, currentTurn, totalTurns int, active bool) *Game {
	return &Game{id: id, currentTurn: currentTurn, totalTurns: totalTurns, active: active}
}

func (g *Game) ID() uint         { return g.id }
func (g *Game) CurrentTurn() int { return g.currentTurn }
func (g *Game) TotalTurns() int  { return g.totalTurns }
func (g *Game) IsActive() bool   { return g.active }

// AdvanceTurn records completion of a turn. The game deactivates once the
// final turn has run.
func (g *Game) AdvanceTurn(turn int) error {
	if !g.active {
		return shared.NewDomainError("game is no longer active")
	}
	if turn != g.currentTurn+1 {
		return shared.NewDomainError("turns must advance one at a time")
	}
	g.currentTurn = turn
	if g.currentTurn >= g.totalTurns {
		g.active = false
	}
	return nil
}
