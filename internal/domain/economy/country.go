package economy

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lvaldes/statecraft/internal/domain/shared"
)

// Country is the aggregate root for one nation's economy: its capital pool,
// workforce, industries, stockpiles and natural deposits. All mutation goes
// through invariant-enforcing methods; capital and the unemployed pools can
// never go negative through this API.
type Country struct {
	id      uint
	gameID  uint
	name    string
	capital decimal.Decimal

	totalSkilled       int
	totalUnskilled     int
	unemployedSkilled  int
	unemployedUnskilled int

	industries []*Industry
	stockpiles map[string]*Stockpile
	deposits   map[string]*Deposit
}

// NewCountry creates a country with its full workforce unemployed
func NewCountry(id, gameID uint, name string, capital decimal.Decimal, totalSkilled, totalUnskilled int) (*Country, error) {
	if name == "" {
		return nil, shared.NewDomainError("country name cannot be empty")
	}
	if capital.IsNegative() {
		return nil, shared.NewDomainError("starting capital cannot be negative")
	}
	if totalSkilled < 0 || totalUnskilled < 0 {
		return nil, shared.NewDomainError("workforce counts cannot be negative")
	}

	return &Country{
		id:                  id,
		gameID:              gameID,
		name:                name,
		capital:             capital,
		totalSkilled:        totalSkilled,
		totalUnskilled:      totalUnskilled,
		unemployedSkilled:   totalSkilled,
		unemployedUnskilled: totalUnskilled,
		stockpiles:          make(map[string]*Stockpile),
		deposits:            make(map[string]*Deposit),
	}, nil
}

// ReconstructCountry restores a country from persistence, bypassing the
// fresh-start workforce assumption of NewCountry
func ReconstructCountry(
	id, gameID uint,
	name string,
	capital decimal.Decimal,
	totalSkilled, totalUnskilled, unemployedSkilled, unemployedUnskilled int,
	industries []*Industry,
	stockpiles []*Stockpile,
	deposits []*Deposit,
) *Country {
	c := &Country{
		id:                  id,
		gameID:              gameID,
		name:                name,
		capital:             capital,
		totalSkilled:        totalSkilled,
		totalUnskilled:      totalUnskilled,
		unemployedSkilled:   unemployedSkilled,
		unemployedUnskilled: unemployedUnskilled,
		industries:          industries,
		stockpiles:          make(map[string]*Stockpile),
		deposits:            make(map[string]*Deposit),
	}
	for _, s := range stockpiles {
		c.stockpiles[s.Resource()] = s
	}
	for _, d := range deposits {
		c.deposits[d.Resource()] = d
	}
	return c
}

func (c *Country) ID() uint                 { return c.id }
func (c *Country) GameID() uint             { return c.gameID }
func (c *Country) Name() string             { return c.name }
func (c *Country) Capital() decimal.Decimal { return c.capital }

func (c *Country) TotalSkilledWorkers() int       { return c.totalSkilled }
func (c *Country) TotalUnskilledWorkers() int     { return c.totalUnskilled }
func (c *Country) UnemployedSkilledWorkers() int  { return c.unemployedSkilled }
func (c *Country) UnemployedUnskilledWorkers() int { return c.unemployedUnskilled }

// CanAfford reports whether the capital pool covers the given amount
func (c *Country) CanAfford(amount decimal.Decimal) bool {
	return c.capital.GreaterThanOrEqual(amount)
}

// DebitCapital removes amount from the capital pool.
// Returns InsufficientCapitalError if the pool cannot cover it.
func (c *Country) DebitCapital(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("debit amount cannot be negative")
	}
	if !c.CanAfford(amount) {
		return NewInsufficientCapitalError(amount, c.capital)
	}
	c.capital = c.capital.Sub(amount)
	return nil
}

// CreditCapital adds amount to the capital pool
func (c *Country) CreditCapital(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("credit amount cannot be negative")
	}
	c.capital = c.capital.Add(amount)
	return nil
}

// HireWorkers moves workers from the unemployed pools into employment.
// Both pools are checked before either is touched.
func (c *Country) HireWorkers(skilled, unskilled int) error {
	if skilled < 0 || unskilled < 0 {
		return shared.NewDomainError("worker counts cannot be negative")
	}
	if c.unemployedSkilled < skilled {
		return NewInsufficientWorkforceError(true, skilled, c.unemployedSkilled)
	}
	if c.unemployedUnskilled < unskilled {
		return NewInsufficientWorkforceError(false, unskilled, c.unemployedUnskilled)
	}
	c.unemployedSkilled -= skilled
	c.unemployedUnskilled -= unskilled
	return nil
}

// ReleaseWorkers returns workers to the unemployed pools
func (c *Country) ReleaseWorkers(skilled, unskilled int) {
	c.unemployedSkilled += skilled
	c.unemployedUnskilled += unskilled
	shared.AssertInvariant(c.unemployedSkilled <= c.totalSkilled,
		"unemployed<=total", "country %s released %d skilled workers past its total of %d",
		c.name, skilled, c.totalSkilled)
	shared.AssertInvariant(c.unemployedUnskilled <= c.totalUnskilled,
		"unemployed<=total", "country %s released %d unskilled workers past its total of %d",
		c.name, unskilled, c.totalUnskilled)
}

// Industries returns the country's industries in their stored order
func (c *Country) Industries() []*Industry {
	return c.industries
}

// IndustryByID finds an industry by its external identifier
func (c *Country) IndustryByID(industryID string) *Industry {
	for _, ind := range c.industries {
		if ind.IndustryID() == industryID {
			return ind
		}
	}
	return nil
}

// AddIndustry appends a newly created industry to the country
func (c *Country) AddIndustry(ind *Industry) {
	c.industries = append(c.industries, ind)
}

// StockpileOf returns the stockpile for a resource, or nil if the country
// has never held it
func (c *Country) StockpileOf(resource string) *Stockpile {
	return c.stockpiles[resource]
}

// EnsureStockpile returns the stockpile for a resource, creating a
// zero-quantity row the first time the country receives or needs it
func (c *Country) EnsureStockpile(resource string) *Stockpile {
	if s, ok := c.stockpiles[resource]; ok {
		return s
	}
	s := NewStockpile(resource)
	c.stockpiles[resource] = s
	return s
}

// Stockpiles returns the country's stockpiles sorted by resource name
func (c *Country) Stockpiles() []*Stockpile {
	out := make([]*Stockpile, 0, len(c.stockpiles))
	for _, s := range c.stockpiles {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource() < out[j].Resource() })
	return out
}

// Deposits returns the country's natural deposits sorted by resource name
func (c *Country) Deposits() []*Deposit {
	out := make([]*Deposit, 0, len(c.deposits))
	for _, d := range c.deposits {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource() < out[j].Resource() })
	return out
}

// AddDeposit registers a natural deposit; one per resource per country
func (c *Country) AddDeposit(d *Deposit) error {
	if _, exists := c.deposits[d.Resource()]; exists {
		return shared.NewDomainError("country already has a deposit for " + d.Resource())
	}
	c.deposits[d.Resource()] = d
	return nil
}
