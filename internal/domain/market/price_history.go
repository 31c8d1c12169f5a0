package market

import "github.com/shopspring/decimal"

// PricePoint is one resource's price at the end of one turn, kept so
// downstream reporting can chart price movement over a game
type PricePoint struct {
	Turn     int
	Resource string
	Price    decimal.Decimal
}

// SnapshotPrices captures every resource's current price for one turn
func SnapshotPrices(turn int, resources []*Resource) []PricePoint {
	points := make([]PricePoint, 0, len(resources))
	for _, r := range resources {
		points = append(points, PricePoint{Turn: turn, Resource: r.Name(), Price: r.CurrentPrice()})
	}
	return points
}
