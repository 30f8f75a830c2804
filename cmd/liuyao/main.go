// Package main provides the liuyao developer CLI: cast hexagrams, decode
// share codes and inspect calendar pillars from the terminal, against the
// same engine the API server uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liuyao",
		Short: "Six-line divination engine CLI",
		Long: `Cast and interpret six-line (liuyao) hexagram readings.

The CLI runs the same deterministic calculation pipeline as the API server:
identical draws, cast moment and category always produce the identical
reading.

Examples:
  liuyao cast --category career                       # coin cast, now
  liuyao cast --category career --seed 42             # reproducible coin cast
  liuyao cast --method manual --draws 7,8,7,8,7,9 \
      --category marriage --at 2024-03-15T10:30:00Z   # explicit draws
  liuyao decode <share-code>                          # replay a shared cast
  liuyao calendar 2024-03-15T10:30:00Z                # pillars and voids`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		castCmd(),
		decodeCmd(),
		calendarCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
