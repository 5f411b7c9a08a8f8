package domain

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fd1az/options-arbitrage/internal/apperror"
)

// Request is the input record of one evaluation. Call prices C1..C3 are
// present iff the mode includes calls, put prices P1..P3 iff it includes puts.
type Request struct {
	Mode Mode             `json:"mode" yaml:"mode"`
	X1   decimal.Decimal  `json:"x1" yaml:"x1"`
	X2   decimal.Decimal  `json:"x2" yaml:"x2"`
	X3   decimal.Decimal  `json:"x3" yaml:"x3"`
	C1   *decimal.Decimal `json:"c1,omitempty" yaml:"c1,omitempty"`
	C2   *decimal.Decimal `json:"c2,omitempty" yaml:"c2,omitempty"`
	C3   *decimal.Decimal `json:"c3,omitempty" yaml:"c3,omitempty"`
	P1   *decimal.Decimal `json:"p1,omitempty" yaml:"p1,omitempty"`
	P2   *decimal.Decimal `json:"p2,omitempty" yaml:"p2,omitempty"`
	P3   *decimal.Decimal `json:"p3,omitempty" yaml:"p3,omitempty"`
}

// NewRequest builds a Request from a strike set and any number of quotes.
// Quotes for classes outside the mode are dropped.
func NewRequest(mode Mode, strikes StrikeSet, quotes ...PriceQuote) Request {
	r := Request{Mode: mode, X1: strikes.X1, X2: strikes.X2, X3: strikes.X3}
	for _, q := range quotes {
		if !mode.Includes(q.Class) {
			continue
		}
		p1, p2, p3 := q.P1, q.P2, q.P3
		if q.Class == Call {
			r.C1, r.C2, r.C3 = &p1, &p2, &p3
		} else {
			r.P1, r.P2, r.P3 = &p1, &p2, &p3
		}
	}
	return r
}

// Strikes returns the request's strike set.
func (r Request) Strikes() StrikeSet {
	return NewStrikeSet(r.X1, r.X2, r.X3)
}

// Quote returns the quote for class, or false when any of its prices is absent.
func (r Request) Quote(class OptionClass) (PriceQuote, bool) {
	a, b, c := r.C1, r.C2, r.C3
	if class == Put {
		a, b, c = r.P1, r.P2, r.P3
	}
	if a == nil || b == nil || c == nil {
		return PriceQuote{}, false
	}
	return NewPriceQuote(class, *a, *b, *c), true
}

// Validate enforces the request contract: a known mode, positive strictly
// increasing strikes, and non-negative prices for every class the mode requires.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return apperror.Validationf(apperror.CodeInvalidMode, "mode=%q", r.Mode)
	}

	strikes := r.Strikes()
	if !strikes.X1.IsPositive() {
		return apperror.Validationf(apperror.CodeInvalidStrikes, "X1=%s must be positive", strikes.X1)
	}
	if !strikes.Increasing() {
		return apperror.Validationf(apperror.CodeInvalidStrikes, "X1=%s X2=%s X3=%s", strikes.X1, strikes.X2, strikes.X3)
	}

	for _, class := range r.Mode.Classes() {
		q, ok := r.Quote(class)
		if !ok {
			return apperror.Validationf(apperror.CodeMissingQuote, "%s prices required by mode %s", class, r.Mode)
		}
		for i, p := range q.Slice() {
			if p.IsNegative() {
				return apperror.Validationf(apperror.CodeInvalidPrice, "%s price at X%d is negative: %s", class, i+1, p)
			}
		}
	}
	return nil
}

// DecodeRequest reads a Request from YAML or JSON (JSON is valid YAML).
func DecodeRequest(r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}

	var req Request
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return Request{}, apperror.New(apperror.CodeInvalidFormat,
			apperror.WithContext(err.Error()), apperror.WithCause(err))
	}
	return req, nil
}
