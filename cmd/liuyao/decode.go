package main

import (
	"context"

	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	var (
		asJSON    bool
		reasoning bool
	)

	cmd := &cobra.Command{
		Use:   "decode <share-code>",
		Short: "Replay the casting a share code encodes",
		Long: `Replay the casting a share code encodes and print the reading.

Share codes carry the complete casting input, so the replayed reading is
identical to the original.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newCastingService().DecodeShare(context.Background(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			printResult(cmd.OutOrStdout(), result, reasoning)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result document as JSON")
	cmd.Flags().BoolVar(&reasoning, "reasoning", false, "include the full reasoning chain")

	return cmd
}
