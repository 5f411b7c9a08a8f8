package server

import (
	"time"

	"github.com/shopspring/decimal"

	arbDomain "github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

// EvaluationResponse is the wire form of an evaluation.
type EvaluationResponse struct {
	ID            string                `json:"id"`
	CreatedAt     time.Time             `json:"created_at"`
	Request       pricingDomain.Request `json:"request"`
	Flags         []string              `json:"flags"`
	Arbitrage     bool                  `json:"arbitrage"`
	Opportunities []OpportunityResponse `json:"opportunities"`
}

// OpportunityResponse describes one arbitrage and the portfolio exploiting it.
type OpportunityResponse struct {
	Flag        string               `json:"flag"`
	Class       string               `json:"class"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Weighting   *arbDomain.Weighting `json:"weighting,omitempty"`
	Credit      decimal.Decimal      `json:"credit"`
	Legs        []LegResponse        `json:"legs"`
	Table       TableResponse        `json:"table"`
	Summary     payoffDomain.Summary `json:"summary"`
	Curve       []payoffDomain.Point `json:"curve"`
}

// LegResponse is one position of a portfolio.
type LegResponse struct {
	Description string          `json:"description"`
	Class       string          `json:"class"`
	Side        string          `json:"side"`
	Quantity    int64           `json:"quantity"`
	Strike      decimal.Decimal `json:"strike"`
	Premium     decimal.Decimal `json:"premium"`
	Cost        decimal.Decimal `json:"cost"`
}

// TableResponse is a payoff table rendered to strings, total row last.
type TableResponse struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CurveRequest asks for a flag's portfolio payoff over explicit prices.
type CurveRequest struct {
	Request pricingDomain.Request `json:"request"`
	Flag    string                `json:"flag"`
	Prices  []decimal.Decimal     `json:"prices"`
}

// CurveResponse is the payoff of a portfolio at each requested price.
type CurveResponse struct {
	Flag    string               `json:"flag"`
	Points  []payoffDomain.Point `json:"points"`
	Summary payoffDomain.Summary `json:"summary"`
}

// FlagResponse documents one arbitrage flag.
type FlagResponse struct {
	Flag        string `json:"flag"`
	Class       string `json:"class"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toEvaluationResponse(eval *arbDomain.Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:            eval.ID.String(),
		CreatedAt:     eval.CreatedAt,
		Request:       eval.Request,
		Flags:         arbDomain.Tags(eval.Flags),
		Arbitrage:     eval.HasArbitrage(),
		Opportunities: make([]OpportunityResponse, 0, len(eval.Opportunities)),
	}
	for _, o := range eval.Opportunities {
		resp.Opportunities = append(resp.Opportunities, toOpportunityResponse(o))
	}
	return resp
}

func toOpportunityResponse(o arbDomain.Opportunity) OpportunityResponse {
	legs := make([]LegResponse, 0, len(o.Portfolio.Legs))
	for _, l := range o.Portfolio.Legs {
		legs = append(legs, LegResponse{
			Description: l.Description(),
			Class:       l.Class.String(),
			Side:        string(l.Side),
			Quantity:    l.Quantity,
			Strike:      l.Strike,
			Premium:     l.Premium,
			Cost:        l.Cost(),
		})
	}

	return OpportunityResponse{
		Flag:        o.Flag.String(),
		Class:       o.Class().String(),
		Title:       o.Title,
		Description: o.Flag.Description(),
		Weighting:   o.Weighting,
		Credit:      o.Portfolio.Credit(),
		Legs:        legs,
		Table: TableResponse{
			Title:   o.Table.Title,
			Headers: o.Table.Headers(),
			Rows:    o.Table.Records(),
		},
		Summary: o.Summary,
		Curve:   o.Curve.Points(),
	}
}

func flagCatalog() []FlagResponse {
	out := make([]FlagResponse, 0, len(arbDomain.AllFlags))
	for _, f := range arbDomain.AllFlags {
		out = append(out, FlagResponse{
			Flag:        f.String(),
			Class:       f.Class().String(),
			Title:       f.Title(),
			Description: f.Description(),
		})
	}
	return out
}
