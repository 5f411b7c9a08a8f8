// Package app turns user input into validated evaluation requests.
package app

import (
	"context"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apperror"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

// InlineInput is a request typed as text: comma separated strikes and prices,
// the way command-line flags and the terminal form collect it.
type InlineInput struct {
	Mode    string
	Strikes string
	Calls   string
	Puts    string
}

// RequestService loads requests from files or inline input.
type RequestService struct {
	logger logger.LoggerInterface
}

// NewRequestService creates a new RequestService.
func NewRequestService(log logger.LoggerInterface) *RequestService {
	return &RequestService{logger: log}
}

// Load reads the request file at path when path is set, otherwise parses in.
// The result is validated either way.
func (s *RequestService) Load(ctx context.Context, path string, in InlineInput) (domain.Request, error) {
	var (
		req domain.Request
		err error
	)
	if path != "" {
		req, err = s.LoadFile(path)
	} else {
		req, err = ParseInline(in)
	}
	if err != nil {
		return domain.Request{}, err
	}

	if err := req.Validate(); err != nil {
		return domain.Request{}, err
	}

	s.logger.Debug(ctx, "request loaded", "mode", req.Mode, "file", path)
	return req, nil
}

// LoadFile decodes a YAML or JSON request file. It does not validate.
func (s *RequestService) LoadFile(path string) (domain.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Request{}, apperror.New(apperror.CodeNotFound,
			apperror.WithContext(path), apperror.WithCause(err))
	}
	defer f.Close()

	return domain.DecodeRequest(f)
}

// ParseInline builds a request from text fields. Prices for classes the mode
// does not quote are ignored; missing ones are left for Validate to report.
func ParseInline(in InlineInput) (domain.Request, error) {
	mode, err := domain.ParseMode(in.Mode)
	if err != nil {
		return domain.Request{}, apperror.Validation(apperror.CodeInvalidMode, err.Error())
	}

	x, err := ParseDecimals("strikes", in.Strikes)
	if err != nil {
		return domain.Request{}, err
	}
	if len(x) != 3 {
		return domain.Request{}, apperror.Validationf(apperror.CodeInvalidStrikes,
			"need 3 strikes, got %d", len(x))
	}

	var quotes []domain.PriceQuote
	for _, class := range mode.Classes() {
		raw := in.Calls
		if class == domain.Put {
			raw = in.Puts
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		p, err := ParseDecimals(class.String()+" prices", raw)
		if err != nil {
			return domain.Request{}, err
		}
		if len(p) != 3 {
			return domain.Request{}, apperror.Validationf(apperror.CodeMissingQuote,
				"need 3 %s prices, got %d", class, len(p))
		}
		quotes = append(quotes, domain.NewPriceQuote(class, p[0], p[1], p[2]))
	}

	return domain.NewRequest(mode, domain.NewStrikeSet(x[0], x[1], x[2]), quotes...), nil
}

// ParseDecimals splits a comma or space separated list of numbers.
func ParseDecimals(field, s string) ([]decimal.Decimal, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})

	out := make([]decimal.Decimal, 0, len(parts))
	for _, p := range parts {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return nil, apperror.Validationf(apperror.CodeInvalidInput, "%s: %q is not a number", field, p)
		}
		out = append(out, d)
	}
	return out, nil
}
