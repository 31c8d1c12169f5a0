package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/adapters/seed"
	"github.com/lvaldes/statecraft/internal/infrastructure/database"
)

// NewGameCommand creates the game command group
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create and inspect games",
	}
	cmd.AddCommand(newGameNewCommand())
	cmd.AddCommand(newGameStatusCommand())
	cmd.AddCommand(newGameOffersCommand())
	return cmd
}

// offerView is the printable shape of one open offer
type offerView struct {
	ID      string      `json:"id"`
	Kind    string      `json:"kind"`
	Turn    int         `json:"turn"`
	Details interface{} `json:"details"`
}

func newGameOffersCommand() *cobra.Command {
	var (
		gameID     uint
		countryID  uint
		turnNumber int
	)

	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List a country's open offers for a turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := context.Background()
			if turnNumber == 0 {
				game, err := persistence.NewGormGameRepository(db).FindByID(ctx, gameID)
				if err != nil {
					return err
				}
				turnNumber = game.CurrentTurn() + 1
			}

			offers, err := persistence.NewGormOfferRepository(db).FindOpenByCountryTurn(ctx, countryID, turnNumber)
			if err != nil {
				return err
			}

			views := make([]offerView, 0, len(offers))
			for _, offer := range offers {
				view := offerView{ID: offer.ID(), Kind: string(offer.Kind()), Turn: offer.Turn()}
				switch {
				case offer.StartDetails() != nil:
					view.Details = offer.StartDetails()
				case offer.ExpandDetails() != nil:
					view.Details = offer.ExpandDetails()
				case offer.UpgradeDetails() != nil:
					view.Details = offer.UpgradeDetails()
				}
				views = append(views, view)
			}
			return printJSON(views)
		},
	}

	cmd.Flags().UintVar(&gameID, "game", 0, "Game id (required)")
	cmd.Flags().UintVar(&countryID, "country", 0, "Country id (required)")
	cmd.Flags().IntVar(&turnNumber, "turn", 0, "Turn number (defaults to the game's next turn)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("country")
	return cmd
}

func newGameNewCommand() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a game from a seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			s, err := seed.LoadFile(seedPath)
			if err != nil {
				return err
			}

			gameID, err := seed.Apply(context.Background(), db, s, cfg.Simulation.TotalTurns)
			if err != nil {
				return err
			}

			fmt.Printf("Created game %d with %d countries and %d resources\n",
				gameID, len(s.Countries), len(s.Resources))
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "Path to the seed file (required)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func newGameStatusCommand() *cobra.Command {
	var gameID uint

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a game's turn position and countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := context.Background()
			game, err := persistence.NewGormGameRepository(db).FindByID(ctx, gameID)
			if err != nil {
				return err
			}
			countries, err := persistence.NewGormCountryRepository(db).FindByGame(ctx, gameID)
			if err != nil {
				return err
			}

			fmt.Printf("Game %d: turn %d of %d", game.ID(), game.CurrentTurn(), game.TotalTurns())
			if !game.IsActive() {
				fmt.Print(" (finished)")
			}
			fmt.Println()
			for _, country := range countries {
				fmt.Printf("  [%d] %-20s capital=%s industries=%d\n",
					country.ID(), country.Name(), country.Capital().StringFixed(2), len(country.Industries()))
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&gameID, "game", 0, "Game id (required)")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}
