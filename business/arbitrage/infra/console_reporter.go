// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/fd1az/options-arbitrage/business/arbitrage/app"
	"github.com/fd1az/options-arbitrage/business/arbitrage/domain"
	pricingDomain "github.com/fd1az/options-arbitrage/business/pricing/domain"
)

var _ app.Reporter = (*ConsoleReporter)(nil)

const (
	heavyRule = "================================================================================"
	lightRule = "--------------------------------------------------------------------------------"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Report writes the evaluation: inputs, then per option class the flags,
// payoff tables and curve summaries.
func (r *ConsoleReporter) Report(ctx context.Context, eval *domain.Evaluation) error {
	req := eval.Request
	strikes := req.Strikes()

	fmt.Fprintln(r.out, heavyRule)
	fmt.Fprintln(r.out, "OPTION ARBITRAGE EVALUATION")
	fmt.Fprintln(r.out, heavyRule)
	fmt.Fprintf(r.out, "ID:        %s\n", eval.ID)
	fmt.Fprintf(r.out, "Timestamp: %s\n", eval.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Mode:      %s\n", req.Mode)
	fmt.Fprintf(r.out, "Strikes:   %s\n", joinDecimals(strikes.Slice()))

	for _, class := range req.Mode.Classes() {
		if q, ok := req.Quote(class); ok {
			fmt.Fprintf(r.out, "%-10s %s\n", classHeading(class)+":", joinDecimals(q.Slice()))
		}
	}

	for _, class := range req.Mode.Classes() {
		fmt.Fprintln(r.out, lightRule)
		fmt.Fprintln(r.out, strings.ToUpper(classHeading(class)))

		flags := eval.FlagsFor(class)
		if len(flags) == 0 {
			fmt.Fprintln(r.out, "  No arbitrage detected")
			continue
		}
		for _, f := range flags {
			fmt.Fprintf(r.out, "  [%s] %s\n", f, f.Description())
		}

		for _, opp := range eval.OpportunitiesFor(class) {
			r.writeOpportunity(opp)
		}
	}

	fmt.Fprintln(r.out, heavyRule)
	return nil
}

func (r *ConsoleReporter) writeOpportunity(opp domain.Opportunity) {
	fmt.Fprintln(r.out)
	title := opp.Title
	if opp.Weighting != nil {
		title = fmt.Sprintf("%s (weights %s)", title, opp.Weighting)
	}
	fmt.Fprintln(r.out, title)

	table := tablewriter.NewWriter(r.out)
	table.SetHeader(opp.Table.Headers())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(opp.Table.Records())
	table.Render()

	if n := opp.Curve.Len(); n > 0 {
		fmt.Fprintf(r.out, "Payoff on [%s, %s] (%d points): min %.4f  max %.4f  mean %.4f\n",
			opp.Curve.Prices[0].Round(4), opp.Curve.Prices[n-1].Round(4), n,
			opp.Summary.Min, opp.Summary.Max, opp.Summary.Mean)
	}
}

func classHeading(class pricingDomain.OptionClass) string {
	if class == pricingDomain.Put {
		return "Puts"
	}
	return "Calls"
}

func joinDecimals(values []decimal.Decimal) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " / ")
}
