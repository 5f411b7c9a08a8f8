package domain

import (
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// Flag identifies one violated static no-arbitrage rule.
type Flag string

const (
	// FlagCallVerticalHigh fires when C(X1) < C(X2): the X2 call is overpriced.
	FlagCallVerticalHigh Flag = "cx2_overpriced"

	// FlagCallVerticalLow fires when C(X1) - C(X2) > X2 - X1: the X1 call is overpriced.
	FlagCallVerticalLow Flag = "cx1_overpriced"

	// FlagCallButterfly fires when call prices are not convex in strike.
	FlagCallButterfly Flag = "butterfly"

	// FlagPutVerticalLow fires when P(X1) > P(X2): the X1 put is overpriced.
	FlagPutVerticalLow Flag = "px1_overpriced"

	// FlagPutVerticalHigh fires when P(X2) - P(X1) > X2 - X1: the X2 put is overpriced.
	FlagPutVerticalHigh Flag = "px2_overpriced"

	// FlagPutButterfly fires when put prices are not convex in strike.
	FlagPutButterfly Flag = "butterfly_put"
)

// AllFlags lists every flag in rule evaluation order.
var AllFlags = []Flag{
	FlagCallVerticalHigh,
	FlagCallVerticalLow,
	FlagCallButterfly,
	FlagPutVerticalLow,
	FlagPutVerticalHigh,
	FlagPutButterfly,
}

// ParseFlag converts a string tag to a Flag.
func ParseFlag(s string) (Flag, error) {
	for _, f := range AllFlags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", apperror.Validationf(apperror.CodeUnsupportedFlag, "flag=%q", s)
}

func (f Flag) String() string {
	return string(f)
}

// Class returns the option class the flag's rule inspects.
func (f Flag) Class() pricingDomain.OptionClass {
	switch f {
	case FlagPutVerticalLow, FlagPutVerticalHigh, FlagPutButterfly:
		return pricingDomain.Put
	default:
		return pricingDomain.Call
	}
}

// IsButterfly reports whether the flag is a convexity violation.
func (f Flag) IsButterfly() bool {
	return f == FlagCallButterfly || f == FlagPutButterfly
}

// IsVertical reports whether the flag is a vertical spread violation.
func (f Flag) IsVertical() bool {
	switch f {
	case FlagCallVerticalHigh, FlagCallVerticalLow, FlagPutVerticalLow, FlagPutVerticalHigh:
		return true
	}
	return false
}

// Title is the heading used when presenting the flag's portfolio.
func (f Flag) Title() string {
	switch f {
	case FlagCallVerticalHigh, FlagCallVerticalLow:
		return "Vertical Call Arbitrage"
	case FlagPutVerticalLow, FlagPutVerticalHigh:
		return "Vertical Put Arbitrage"
	case FlagCallButterfly:
		return "Call Butterfly Arbitrage"
	case FlagPutButterfly:
		return "Put Butterfly Arbitrage"
	default:
		return "Unknown"
	}
}

// Description explains the mispricing in one line.
func (f Flag) Description() string {
	switch f {
	case FlagCallVerticalHigh:
		return "X2 call is overpriced relative to the X1 call"
	case FlagCallVerticalLow:
		return "X1 call is overpriced: C1 - C2 exceeds X2 - X1"
	case FlagCallButterfly:
		return "call prices are not convex in strike"
	case FlagPutVerticalLow:
		return "X1 put is overpriced relative to the X2 put"
	case FlagPutVerticalHigh:
		return "X2 put is overpriced: P2 - P1 exceeds X2 - X1"
	case FlagPutButterfly:
		return "put prices are not convex in strike"
	default:
		return "unknown flag"
	}
}

// Contains reports whether flags includes f.
func Contains(flags []Flag, f Flag) bool {
	for _, x := range flags {
		if x == f {
			return true
		}
	}
	return false
}

// FirstVertical returns the vertical flag of class that takes precedence:
// the first one in rule order. Only that flag gets a portfolio.
func FirstVertical(flags []Flag, class pricingDomain.OptionClass) (Flag, bool) {
	for _, f := range flags {
		if f.IsVertical() && f.Class() == class {
			return f, true
		}
	}
	return "", false
}

// ButterflyFor returns the butterfly flag of class.
func ButterflyFor(class pricingDomain.OptionClass) Flag {
	if class == pricingDomain.Put {
		return FlagPutButterfly
	}
	return FlagCallButterfly
}

// Tags converts flags to their string form.
func Tags(flags []Flag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}
