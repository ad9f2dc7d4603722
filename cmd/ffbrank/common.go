// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ffbrank/internal/season"
)

// addPeriodFlags registers --year and, when weekly, --week on cmd.
func addPeriodFlags(cmd *cobra.Command, weekly bool) {
	cmd.Flags().Int("year", 0, "season year (default: current season)")
	if weekly {
		cmd.Flags().Int("week", 0, "week number, 0 for draft (default: current week)")
	}
}

// resolveYear returns --year or the current season.
func resolveYear(cmd *cobra.Command) int {
	year, _ := cmd.Flags().GetInt("year")
	if year <= 0 {
		year = season.CurrentSeason(time.Now())
	}
	return year
}

// resolveWeek returns --week when given, otherwise the current week read
// from FantasyPros.
func resolveWeek(ctx context.Context, cmd *cobra.Command, fetcher season.DocumentFetcher) (int, error) {
	if cmd.Flags().Changed("week") {
		return cmd.Flags().GetInt("week")
	}
	week, err := season.CurrentWeek(ctx, fetcher)
	if errors.Is(err, season.ErrNoCurrentWeek) {
		return 0, fmt.Errorf("%w: pass --week (0 for draft)", err)
	}
	if err != nil {
		return 0, err
	}
	logger.Debug("resolved current week", "week", week)
	return week, nil
}
