package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lvaldes/statecraft/internal/adapters/decisions"
	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/application/common"
	"github.com/lvaldes/statecraft/internal/application/turn"
	"github.com/lvaldes/statecraft/internal/domain/action"
	"github.com/lvaldes/statecraft/internal/domain/market"
	"github.com/lvaldes/statecraft/internal/infrastructure/database"
	"github.com/lvaldes/statecraft/internal/infrastructure/logging"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		gameID     uint
		turns      int
		scriptPath string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one or more turns of a game",
		Long: `Simulate advances a game turn by turn, reading each country's decisions
from a script file. A country without a script entry for a turn simply
takes no actions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			var provider action.DecisionProvider
			if scriptPath != "" {
				provider, err = decisions.NewScriptedProvider(scriptPath)
				if err != nil {
					return err
				}
			} else {
				provider = decisions.EmptyProvider{}
			}

			elasticity := decimal.NewFromFloat(cfg.Simulation.Elasticity)
			handler := turn.NewProcessTurnHandler(
				persistence.NewGormGameRepository(db),
				persistence.NewGormCountryRepository(db),
				persistence.NewGormResourceRepository(db),
				persistence.NewGormPriceHistoryRepository(db),
				persistence.NewGormOfferRepository(db),
				persistence.NewGormTransactionRepository(db),
				provider,
				market.NewPricingEngine(elasticity),
			)

			m := common.NewMediator()
			if err := common.RegisterHandler[*turn.ProcessTurnCommand](m, handler); err != nil {
				return err
			}

			logger, err := logging.NewLogger(&cfg.Logging)
			if err != nil {
				return err
			}
			ctx := common.WithLogger(context.Background(), logger)
			for i := 0; i < turns; i++ {
				response, err := m.Send(ctx, &turn.ProcessTurnCommand{GameID: gameID})
				if err != nil {
					return fmt.Errorf("turn failed: %w", err)
				}
				result := response.(*turn.ProcessTurnResponse)

				if verbose {
					if err := printJSON(result); err != nil {
						return err
					}
				} else {
					printTurnSummary(result)
				}

				if result.GameOver {
					fmt.Println("Game over")
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&gameID, "game", 0, "Game id (required)")
	cmd.Flags().IntVar(&turns, "turns", 1, "Number of turns to run")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to a decision script file")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

func printTurnSummary(result *turn.ProcessTurnResponse) {
	fmt.Printf("Turn %d\n", result.Turn)
	for _, country := range result.Countries {
		applied, rejected := 0, 0
		for _, outcome := range country.Actions {
			if outcome.Applied {
				applied++
			} else {
				rejected++
			}
		}
		fmt.Printf("  %-20s actions: %d applied, %d rejected", country.CountryName, applied, rejected)
		if len(country.PhaseErrors) > 0 {
			fmt.Printf(", %d phase errors", len(country.PhaseErrors))
		}
		fmt.Println()
	}
}
