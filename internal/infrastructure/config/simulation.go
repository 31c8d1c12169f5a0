package config

// SimulationConfig holds the turn engine's tunables
type SimulationConfig struct {
	// Total number of turns a new game runs
	TotalTurns int `mapstructure:"total_turns" validate:"min=1"`

	// Price elasticity coefficient applied to every trade
	Elasticity float64 `mapstructure:"elasticity" validate:"gt=0"`

	// Path to the scripted decision file consumed by the CLI runner
	DecisionFile string `mapstructure:"decision_file"`
}
