package domain

import (
	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

// Kind distinguishes two-leg verticals from three-leg butterflies.
type Kind string

const (
	KindVertical  Kind = "vertical"
	KindButterfly Kind = "butterfly"
)

// Portfolio is a static replicating position whose payoff proves an arbitrage.
type Portfolio struct {
	Kind        Kind
	Class       pricingDomain.OptionClass
	Legs        []Leg
	Breakpoints []decimal.Decimal
}

// Credit is the net cash received when opening the position (negative if paid).
func (p Portfolio) Credit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Legs {
		total = total.Add(l.Cost())
	}
	return total
}

// Payoff is the realized P&L at expiry price s: credit plus each leg's
// intrinsic value, signed by side.
func (p Portfolio) Payoff(s decimal.Decimal) decimal.Decimal {
	total := p.Credit()
	for _, l := range p.Legs {
		total = total.Add(l.Payoff(s))
	}
	return total
}

// Curve evaluates Payoff at every price, preserving order and length.
func (p Portfolio) Curve(prices []decimal.Decimal) Curve {
	payoffs := make([]decimal.Decimal, len(prices))
	for i, s := range prices {
		payoffs[i] = p.Payoff(s)
	}
	return Curve{Prices: prices, Payoffs: payoffs}
}

// Regions returns the payoff regions split at the breakpoints.
func (p Portfolio) Regions() []Region {
	return Regions(p.Breakpoints)
}

// Table renders the portfolio as a payoff table. Leg rows carry each leg's
// cost now and its expiry payoff per region; the total row carries the net
// credit and credit plus the leg payoffs per region.
func (p Portfolio) Table(title string) PayoffTable {
	regions := p.Regions()
	credit := p.Credit()

	table := PayoffTable{
		Title:   title,
		Regions: regions,
		Rows:    make([]PayoffRow, 0, len(p.Legs)),
	}

	totals := make([]Linear, len(regions))
	for i := range totals {
		totals[i] = Constant(credit)
	}

	for _, l := range p.Legs {
		row := PayoffRow{
			Transaction: l.Description(),
			Now:         l.Cost(),
			Cells:       make([]Linear, len(regions)),
		}
		for i, r := range regions {
			row.Cells[i] = l.PayoffIn(r)
			totals[i] = totals[i].Add(row.Cells[i])
		}
		table.Rows = append(table.Rows, row)
	}

	table.Total = PayoffRow{
		Transaction: TotalLabel,
		Now:         credit,
		Cells:       totals,
	}
	return table
}
