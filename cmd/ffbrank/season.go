// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ffbrank/internal/season"
)

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Print the current season and week",
	Long: `Season prints the season the experts and rankings commands default to and
the current week read from the FantasyPros weekly rankings page. Outside the
regular season there is no current week.`,
	RunE: runSeason,
}

func runSeason(cmd *cobra.Command, args []string) error {
	year := season.CurrentSeason(time.Now())
	fmt.Printf("season: %d\n", year)

	week, err := season.CurrentWeek(cmd.Context(), newClient())
	if errors.Is(err, season.ErrNoCurrentWeek) {
		fmt.Println("week: none")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("week: %d\n", week)
	return nil
}

func init() {
	rootCmd.AddCommand(seasonCmd)
}
