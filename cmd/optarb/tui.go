package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	arbitrageDI "github.com/fd1az/options-arbitrage/business/arbitrage/di"
	"github.com/fd1az/options-arbitrage/pkg/ui"
)

func newTUICmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Enter quotes in an interactive terminal form",
		RunE: func(cmd *cobra.Command, args []string) error {
			// logs would draw over the alternate screen
			mono, err := bootstrap(cmd.Context(), root, io.Discard)
			if err != nil {
				return err
			}
			defer mono.Close()

			if err := ui.Run(arbitrageDI.GetEvaluator(mono.Services())); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}
}
