package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	arbitrageApp "github.com/fd1az/options-arbitrage/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/options-arbitrage/business/arbitrage/di"
	payoffInfra "github.com/fd1az/options-arbitrage/business/payoff/infra"
	pricingApp "github.com/fd1az/options-arbitrage/business/pricing/app"
	pricingDI "github.com/fd1az/options-arbitrage/business/pricing/di"
)

type evaluateOptions struct {
	file   string
	input  pricingApp.InlineInput
	csvDir string
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	o := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one request and print flags, payoff tables and curve summaries",
		Example: `  optarb evaluate --mode calls --strikes 90,100,110 --calls 12,7,1
  optarb evaluate --file request.yaml --csv-dir ./curves`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mono, err := bootstrap(ctx, root, os.Stderr)
			if err != nil {
				return err
			}
			defer mono.Close()

			sr := mono.Services()
			req, err := pricingDI.GetRequestService(sr).Load(ctx, o.file, o.input)
			if err != nil {
				return err
			}

			eval, err := arbitrageDI.GetEvaluator(sr).Evaluate(ctx, req)
			if err != nil {
				return err
			}
			if err := arbitrageDI.GetReporter(sr).Report(ctx, eval); err != nil {
				return err
			}

			if o.csvDir == "" {
				return nil
			}
			paths, err := arbitrageApp.ExportCurves(eval, payoffInfra.NewCSVExporter(o.csvDir))
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "curve written to %s\n", p)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.file, "file", "f", "", "YAML or JSON request file (overrides inline flags)")
	f.StringVar(&o.input.Mode, "mode", "calls", "calls, puts or both")
	f.StringVar(&o.input.Strikes, "strikes", "", "three increasing strikes, e.g. 90,100,110")
	f.StringVar(&o.input.Calls, "calls", "", "call prices at the three strikes")
	f.StringVar(&o.input.Puts, "puts", "", "put prices at the three strikes")
	f.StringVar(&o.csvDir, "csv-dir", "", "write each payoff curve as CSV into this directory")
	return cmd
}
