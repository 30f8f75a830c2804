package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaolab/liuyao-api/internal/domain"
	"github.com/yaolab/liuyao-api/internal/domain/liuyao"
	"github.com/yaolab/liuyao-api/internal/service"
)

// newCastingService builds the same casting service the API server uses,
// with logging silenced so command output stays clean.
func newCastingService() service.CastingService {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewCastingService(liuyao.NewDefaultService(), quiet)
}

func castCmd() *cobra.Command {
	var (
		method    string
		drawsFlag string
		seed      int64
		at        string
		category  string
		subtype   string
		seeker    string
		asJSON    bool
		reasoning bool
	)

	cmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a hexagram and print the reading",
		Long: `Cast a hexagram and print the full reading.

Methods:
  coin    six simulated three-coin throws (default); --seed makes the
          cast reproducible
  time    derive the lines from the cast moment itself
  manual  take the six draw values from --draws (6, 7, 8 or 9 per line,
          bottom line first)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.CastRequest{
				Method:   domain.CastingMethod(method),
				Category: domain.Category(category),
				Subtype:  subtype,
				Seeker:   domain.Seeker(seeker),
			}

			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at value %q: %w", at, err)
				}
				req.CastAt = parsed
			}

			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			if drawsFlag != "" {
				draws, err := parseDraws(drawsFlag)
				if err != nil {
					return err
				}
				req.Draws = draws
			}

			result, err := newCastingService().Cast(context.Background(), req)
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

	cmd.Flags().StringVar(&method, "method", "coin", "casting method: coin, time or manual")
	cmd.Flags().StringVar(&drawsFlag, "draws", "",
		"six comma-separated draw values for the manual method, bottom line first")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the coin simulation")
	cmd.Flags().StringVar(&at, "at", "", "cast moment as RFC 3339, defaults to now")
	cmd.Flags().StringVar(&category, "category", "", "question category, e.g. career or marriage")
	cmd.Flags().StringVar(&subtype, "subtype", "", "category refinement, e.g. interview")
	cmd.Flags().StringVar(&seeker, "seeker", "", "asker's stated gender, used by some categories")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result document as JSON")
	cmd.Flags().BoolVar(&reasoning, "reasoning", false, "include the full reasoning chain")

	return cmd
}

// parseDraws parses a comma-separated draw list like "7,8,7,8,7,9".
func parseDraws(s string) ([]domain.DrawValue, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return nil, fmt.Errorf("--draws needs exactly six values, got %d", len(parts))
	}

	draws := make([]domain.DrawValue, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid draw value %q: %w", part, err)
		}
		draws[i] = domain.DrawValue(n)
	}

	return draws, nil
}

// writeJSON prints a value as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
