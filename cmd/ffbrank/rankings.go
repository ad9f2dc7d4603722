// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ffbrank/internal/rankings"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Download each expert's rankings",
	Long: `Rankings downloads the rankings of every expert in the master expert list
from the FantasyPros partners API and writes one CSV per expert, position,
and scoring format under rankings/{year}/.

Run "ffbrank experts draft" or "ffbrank experts weekly" first to build the
master expert list.`,
}

// --- draft subcommand ---

var rankingsDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Write every expert's draft rankings",
	Long: `Draft writes the overall rankings for each scoring format, then the rankings
of every draft position, to
rankings/{year}/draft/{year}_draft_{id}_{name}_{site}_{POS}_{SCORING}.csv.
Experts without rankings for a list get no file.`,
	RunE: runRankingsDraft,
}

func runRankingsDraft(cmd *cobra.Command, args []string) error {
	year := resolveYear(cmd)
	start, _ := cmd.Flags().GetInt("start-expert")

	s := rankings.New(newClient(), cfg, logger)
	summary, err := s.WriteDraftRankings(cmd.Context(), year, start)
	printRankingsSummary(os.Stdout, summary)
	return err
}

// --- weekly subcommand ---

var rankingsWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Write every expert's weekly rankings",
	Long: `Weekly writes the rankings of every weekly position to
rankings/{year}/weekly/week{w}/{year}_week{w}_{id}_{name}_{site}_{POS}_{SCORING}.csv.
Week 0 writes draft rankings instead.`,
	RunE: runRankingsWeekly,
}

func runRankingsWeekly(cmd *cobra.Command, args []string) error {
	client := newClient()
	year := resolveYear(cmd)
	week, err := resolveWeek(cmd.Context(), cmd, client)
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetInt("start-expert")

	s := rankings.New(client, cfg, logger)
	summary, err := s.WriteWeeklyRankings(cmd.Context(), year, week, start)
	printRankingsSummary(os.Stdout, summary)
	return err
}

func printRankingsSummary(w io.Writer, summary rankings.WriteSummary) {
	fmt.Fprintf(w, "experts: %d, files: %d, rows: %d, empty lists: %d\n",
		summary.Experts, summary.Files, summary.Rows, summary.Empty)
}

func init() {
	addPeriodFlags(rankingsDraftCmd, false)
	rankingsDraftCmd.Flags().Int("start-expert", 0, "skip experts with a lower id (resume a run)")

	addPeriodFlags(rankingsWeeklyCmd, true)
	rankingsWeeklyCmd.Flags().Int("start-expert", 0, "skip experts with a lower id (resume a run)")

	rankingsCmd.AddCommand(rankingsDraftCmd)
	rankingsCmd.AddCommand(rankingsWeeklyCmd)

	rootCmd.AddCommand(rankingsCmd)
}
