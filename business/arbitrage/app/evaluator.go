package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	payoffApp "github.com/fd1az/options-arbitrage/business/payoff/app"
	payoffDomain "github.com/fd1az/options-arbitrage/business/payoff/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
	"github.com/fd1az/options-arbitrage/internal/apm"
	"github.com/fd1az/options-arbitrage/internal/logger"
)

const (
	tracerName = "arbitrage"
	meterName  = "arbitrage"
)

// EvaluatorConfig sets the price grid curves are sampled on.
type EvaluatorConfig struct {
	GridPoints  int
	LowerFactor decimal.Decimal
	UpperFactor decimal.Decimal
}

// DefaultEvaluatorConfig samples 300 points from 0.5*X1 to 1.5*X3.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		GridPoints:  300,
		LowerFactor: decimal.NewFromFloat(0.5),
		UpperFactor: decimal.NewFromFloat(1.5),
	}
}

// evaluatorMetrics holds OTEL metric instruments.
type evaluatorMetrics struct {
	evaluations metric.Int64Counter
	flags       metric.Int64Counter
	duration    metric.Float64Histogram
	errors      metric.Int64Counter
}

// Evaluator runs detection and builds a portfolio, table and curve for
// every opportunity found. It holds no per-request state and is safe for
// concurrent use.
type Evaluator struct {
	detector    *Detector
	constructor *payoffApp.Constructor
	config      EvaluatorConfig
	logger      logger.LoggerInterface

	tracer  apm.Tracer
	metrics *evaluatorMetrics
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(
	detector *Detector,
	constructor *payoffApp.Constructor,
	config EvaluatorConfig,
	log logger.LoggerInterface,
) (*Evaluator, error) {
	e := &Evaluator{
		detector:    detector,
		constructor: constructor,
		config:      config,
		logger:      log,
		tracer:      apm.NewTracer(tracerName),
	}

	if err := e.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}
	return e, nil
}

func (e *Evaluator) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	e.metrics = &evaluatorMetrics{}

	e.metrics.evaluations, err = meter.Int64Counter(
		"optarb.evaluations",
		metric.WithDescription("Total evaluations"),
	)
	if err != nil {
		return err
	}

	e.metrics.flags, err = meter.Int64Counter(
		"optarb.flags",
		metric.WithDescription("Detected arbitrage flags"),
	)
	if err != nil {
		return err
	}

	e.metrics.duration, err = meter.Float64Histogram(
		"optarb.evaluation.duration",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	e.metrics.errors, err = meter.Int64Counter(
		"optarb.evaluation.errors",
		metric.WithDescription("Rejected or failed evaluations"),
	)
	return err
}

// Evaluate detects flags for req and, per option class, builds the
// opportunity for the first vertical flag and for the butterfly flag.
// Call opportunities come before put opportunities.
func (e *Evaluator) Evaluate(ctx context.Context, req pricingDomain.Request) (*domain.Evaluation, error) {
	ctx, span := e.tracer.StartSpanFromContext(ctx, "arbitrage.Evaluate")
	defer span.End()

	start := time.Now()
	modeAttr := metric.WithAttributes(attribute.String("mode", string(req.Mode)))
	e.metrics.evaluations.Add(ctx, 1, modeAttr)
	defer func() {
		e.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, modeAttr)
	}()

	flags, err := e.detector.Detect(ctx, req)
	if err != nil {
		return nil, e.fail(ctx, span, err)
	}

	eval := domain.NewEvaluation(req, flags)
	span.SetAttribute(attribute.String("evaluation_id", eval.ID.String()))

	for _, f := range flags {
		e.metrics.flags.Add(ctx, 1, metric.WithAttributes(attribute.String("flag", f.String())))
	}

	if eval.HasArbitrage() {
		grid, err := payoffApp.PriceGrid(req.Strikes(), e.config.GridPoints, e.config.LowerFactor, e.config.UpperFactor)
		if err != nil {
			return nil, e.fail(ctx, span, err)
		}

		for _, class := range req.Mode.Classes() {
			for _, f := range selectFlags(flags, class) {
				opp, err := e.opportunity(ctx, f, req, grid)
				if err != nil {
					return nil, e.fail(ctx, span, err)
				}
				eval.Opportunities = append(eval.Opportunities, opp)
			}
		}
	}

	span.SetStatus(codes.Ok, "evaluated")
	e.logger.Debug(ctx, "evaluation complete",
		"id", eval.ID.String(),
		"mode", req.Mode,
		"flags", domain.Tags(flags),
		"opportunities", len(eval.Opportunities),
	)
	return eval, nil
}

// Curve evaluates the portfolio for flag over caller supplied prices.
// The flag does not have to be detected for req.
func (e *Evaluator) Curve(
	ctx context.Context,
	req pricingDomain.Request,
	flag domain.Flag,
	prices []decimal.Decimal,
) (payoffDomain.Curve, error) {
	ctx, span := e.tracer.StartSpanFromContext(ctx, "arbitrage.Curve")
	defer span.End()

	if err := req.Validate(); err != nil {
		return payoffDomain.Curve{}, e.fail(ctx, span, err)
	}
	if err := payoffApp.ValidatePrices(prices); err != nil {
		return payoffDomain.Curve{}, e.fail(ctx, span, err)
	}

	p, _, err := e.constructor.Build(ctx, flag, req)
	if err != nil {
		return payoffDomain.Curve{}, e.fail(ctx, span, err)
	}
	return p.Curve(prices), nil
}

// Grid returns the default price grid for strikes.
func (e *Evaluator) Grid(strikes pricingDomain.StrikeSet) ([]decimal.Decimal, error) {
	return payoffApp.PriceGrid(strikes, e.config.GridPoints, e.config.LowerFactor, e.config.UpperFactor)
}

func (e *Evaluator) opportunity(
	ctx context.Context,
	flag domain.Flag,
	req pricingDomain.Request,
	grid []decimal.Decimal,
) (domain.Opportunity, error) {
	p, w, err := e.constructor.Build(ctx, flag, req)
	if err != nil {
		return domain.Opportunity{}, err
	}

	curve := p.Curve(grid)
	summary, err := payoffDomain.Summarize(curve)
	if err != nil {
		return domain.Opportunity{}, err
	}

	return domain.Opportunity{
		Flag:      flag,
		Title:     flag.Title(),
		Portfolio: p,
		Weighting: w,
		Table:     p.Table(flag.Title()),
		Curve:     curve,
		Summary:   summary,
	}, nil
}

func (e *Evaluator) fail(ctx context.Context, span apm.Span, err error) error {
	e.metrics.errors.Add(ctx, 1)
	span.NoticeError(err)
	e.logger.Debug(ctx, "evaluation rejected", "error", err)
	return err
}

// selectFlags picks the flags of class that get a portfolio: the vertical
// flag with precedence, then the butterfly.
func selectFlags(flags []domain.Flag, class pricingDomain.OptionClass) []domain.Flag {
	var out []domain.Flag
	if v, ok := domain.FirstVertical(flags, class); ok {
		out = append(out, v)
	}
	if b := domain.ButterflyFor(class); domain.Contains(flags, b) {
		out = append(out, b)
	}
	return out
}
