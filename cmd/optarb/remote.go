package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	pricingApp "github.com/fd1az/options-arbitrage/business/pricing/app"
	pricingDI "github.com/fd1az/options-arbitrage/business/pricing/di"
	"github.com/fd1az/options-arbitrage/internal/server"
)

type remoteOptions struct {
	url     string
	file    string
	input   pricingApp.InlineInput
	timeout time.Duration
}

func newRemoteCmd(root *rootOptions) *cobra.Command {
	o := &remoteOptions{}

	cmd := &cobra.Command{
		Use:     "remote",
		Short:   "Evaluate a request against a running API",
		Example: `  optarb remote --url http://localhost:8080 --mode puts --strikes 50,60,70 --puts 8,5,3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mono, err := bootstrap(ctx, root, os.Stderr)
			if err != nil {
				return err
			}
			defer mono.Close()

			req, err := pricingDI.GetRequestService(mono.Services()).Load(ctx, o.file, o.input)
			if err != nil {
				return err
			}

			client, err := server.NewClient(o.url, o.timeout, mono.Logger())
			if err != nil {
				return err
			}
			resp, err := client.Evaluate(ctx, req)
			if err != nil {
				return err
			}

			writeRemote(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.url, "url", "http://localhost:8080", "base URL of the API")
	f.DurationVar(&o.timeout, "timeout", 10*time.Second, "request timeout")
	f.StringVarP(&o.file, "file", "f", "", "YAML or JSON request file (overrides inline flags)")
	f.StringVar(&o.input.Mode, "mode", "calls", "calls, puts or both")
	f.StringVar(&o.input.Strikes, "strikes", "", "three increasing strikes, e.g. 90,100,110")
	f.StringVar(&o.input.Calls, "calls", "", "call prices at the three strikes")
	f.StringVar(&o.input.Puts, "puts", "", "put prices at the three strikes")
	return cmd
}

// writeRemote prints an API evaluation: flags, then a table and summary per opportunity.
func writeRemote(w io.Writer, resp *server.EvaluationResponse) {
	fmt.Fprintf(w, "Evaluation %s (%s)\n", resp.ID, resp.CreatedAt.Format(time.RFC3339))
	if !resp.Arbitrage {
		fmt.Fprintln(w, "No arbitrage detected")
		return
	}
	fmt.Fprintf(w, "Flags: %s\n", strings.Join(resp.Flags, ", "))

	for _, opp := range resp.Opportunities {
		fmt.Fprintln(w)
		title := opp.Title
		if opp.Weighting != nil {
			title = fmt.Sprintf("%s (weights %s)", title, opp.Weighting)
		}
		fmt.Fprintf(w, "%s [%s]\n", title, opp.Flag)

		table := tablewriter.NewWriter(w)
		table.SetHeader(opp.Table.Headers)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.AppendBulk(opp.Table.Rows)
		table.Render()

		fmt.Fprintf(w, "Credit %s  min %.4f  max %.4f  mean %.4f\n",
			opp.Credit, opp.Summary.Min, opp.Summary.Max, opp.Summary.Mean)
	}
}
