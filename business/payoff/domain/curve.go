package domain

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Curve is a payoff function sampled over an ordered price grid.
type Curve struct {
	Prices  []decimal.Decimal
	Payoffs []decimal.Decimal
}

// Point is one sample of a curve.
type Point struct {
	Underlying float64 `csv:"underlying" json:"underlying"`
	Payoff     float64 `csv:"payoff" json:"payoff"`
}

// Len returns the number of samples.
func (c Curve) Len() int {
	return len(c.Prices)
}

// Points converts the curve to float samples for plotting and export.
func (c Curve) Points() []Point {
	pts := make([]Point, len(c.Prices))
	for i := range c.Prices {
		pts[i] = Point{
			Underlying: c.Prices[i].InexactFloat64(),
			Payoff:     c.Payoffs[i].InexactFloat64(),
		}
	}
	return pts
}

// PayoffFloats returns the payoffs as float64.
func (c Curve) PayoffFloats() []float64 {
	out := make([]float64, len(c.Payoffs))
	for i, p := range c.Payoffs {
		out[i] = p.InexactFloat64()
	}
	return out
}

// Summary describes a curve's range. A riskless arbitrage has Min >= 0.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// RiskFree reports whether the payoff never goes negative on the grid.
func (s Summary) RiskFree() bool {
	return s.Min >= 0
}

// Summarize computes min, max and mean payoff over the grid.
func Summarize(c Curve) (Summary, error) {
	data := stats.Float64Data(c.PayoffFloats())

	lo, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	hi, err := data.Max()
	if err != nil {
		return Summary{}, err
	}
	mean, err := data.Mean()
	if err != nil {
		return Summary{}, err
	}
	return Summary{Min: lo, Max: hi, Mean: mean}, nil
}
