package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaolab/liuyao-api/internal/domain/liuyao"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [timestamp]",
		Short: "Print the four pillars for a moment",
		Long: `Print the four stem-branch pillars and the void branches for a moment.

The timestamp is RFC 3339 and defaults to now.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if len(args) == 1 {
				parsed, err := time.Parse(time.RFC3339, args[0])
				if err != nil {
					return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
				}
				at = parsed
			}

			calendar := liuyao.NewDefaultService().Calendar(at)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, calendar.Moment.Format("2006-01-02 15:04 -07:00"))
			fmt.Fprintf(out, "四柱: %s\n", calendar)
			fmt.Fprintf(out, "月建: %s%s  日辰: %s%s\n",
				calendar.Month.Branch, calendar.MonthElement().ChineseName(),
				calendar.Day.Branch, calendar.DayElement().ChineseName())
			fmt.Fprintf(out, "旬空: %s%s\n", calendar.Voids[0], calendar.Voids[1])
			return nil
		},
	}

	return cmd
}
