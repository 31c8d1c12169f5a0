package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvaldes/statecraft/internal/adapters/persistence"
	"github.com/lvaldes/statecraft/internal/infrastructure/database"
)

// NewMarketCommand creates the market command group
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Inspect the global resource market",
	}
	cmd.AddCommand(newMarketPricesCommand())
	cmd.AddCommand(newMarketHistoryCommand())
	return cmd
}

func newMarketPricesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "List every resource's current price and trading parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			resources, err := persistence.NewGormResourceRepository(db).FindAll(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("%-20s %12s %12s %12s %12s %10s\n",
				"RESOURCE", "PRICE", "BASE", "MIN", "MAX", "TRADEABLE")
			for _, r := range resources {
				fmt.Printf("%-20s %12s %12s %12s %12s %10v\n",
					r.Name(),
					r.CurrentPrice().StringFixed(2),
					r.BasePrice().StringFixed(2),
					r.MinPrice().StringFixed(2),
					r.MaxPrice().StringFixed(2),
					r.Tradeable())
			}
			return nil
		},
	}
}

func newMarketHistoryCommand() *cobra.Command {
	var (
		gameID   uint
		resource string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a resource's per-turn closing prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			points, err := persistence.NewGormPriceHistoryRepository(db).
				FindByResource(context.Background(), gameID, resource)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				fmt.Printf("No price history for %s in game %d\n", resource, gameID)
				return nil
			}

			fmt.Printf("%-6s %12s\n", "TURN", "PRICE")
			for _, p := range points {
				fmt.Printf("%-6d %12s\n", p.Turn, p.Price.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&gameID, "game", 0, "Game id (required)")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource name (required)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("resource")
	return cmd
}
