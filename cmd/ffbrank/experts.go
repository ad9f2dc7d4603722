// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ffbrank/internal/experts"
	"github.com/pdiddy/ffbrank/internal/master"
	"github.com/pdiddy/ffbrank/pkg/types"
)

var expertsCmd = &cobra.Command{
	Use:   "experts",
	Short: "Scrape the experts offering rankings",
	Long: `Experts scrapes the FantasyPros rankings pages for the experts offering
draft or weekly rankings, writes one CSV per position and scoring format, and
keeps the master expert list (experts/master_expert_list.csv) that the
rankings command reads.`,
}

// --- draft subcommand ---

var expertsDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Write the experts offering draft rankings",
	Long: `Draft writes experts/{year}/draft/{year}_expert_list_draft_{POS}_{SCORING}.csv
for the overall cheatsheets and every draft position.

Check marks (consensus inclusion) are only accurate for the current season.`,
	RunE: runExpertsDraft,
}

func runExpertsDraft(cmd *cobra.Command, args []string) error {
	year := resolveYear(cmd)
	noMaster, _ := cmd.Flags().GetBool("no-master")

	s := experts.New(newClient(), cfg, logger)
	summary, err := s.WriteDraftExperts(cmd.Context(), year, !noMaster)
	printExpertsSummary(os.Stdout, summary, !noMaster)
	return err
}

// --- weekly subcommand ---

var expertsWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Write the experts offering weekly rankings",
	Long: `Weekly writes experts/{year}/weekly/week{w}/{year}_expert_list_week{w}_{POS}_{SCORING}.csv
for every weekly position. Week 0 writes the draft experts instead.`,
	RunE: runExpertsWeekly,
}

func runExpertsWeekly(cmd *cobra.Command, args []string) error {
	client := newClient()
	year := resolveYear(cmd)
	week, err := resolveWeek(cmd.Context(), cmd, client)
	if err != nil {
		return err
	}
	noMaster, _ := cmd.Flags().GetBool("no-master")

	s := experts.New(client, cfg, logger)
	summary, err := s.WriteWeeklyExperts(cmd.Context(), year, week, !noMaster)
	printExpertsSummary(os.Stdout, summary, !noMaster)
	return err
}

func printExpertsSummary(w io.Writer, summary experts.WriteSummary, updatedMaster bool) {
	fmt.Fprintf(w, "files: %d, rows: %d", summary.Files, summary.Rows)
	if updatedMaster {
		fmt.Fprintf(w, ", master experts: %d", summary.Experts)
	}
	fmt.Fprintln(w)
}

// --- list subcommand ---

var expertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the master expert list",
	Long: `List prints every expert in the master expert list with the first and
latest time and ranking period it was seen.`,
	RunE: runExpertsList,
}

func runExpertsList(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s := experts.New(nil, cfg, logger)
	list, err := master.Load(s.MasterPath())
	if err != nil {
		return err
	}
	return formatMasterList(os.Stdout, list, format)
}

func formatMasterList(w io.Writer, list []types.MasterExpert, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No experts found. Run \"ffbrank experts draft\" or \"ffbrank experts weekly\" first.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Expert", "Site", "First Seen", "Latest Seen", "First", "Latest"})
	for _, m := range list {
		tw.AppendRow(table.Row{
			m.ID, m.Name, m.Site,
			types.FormatTimestamp(m.FirstTimestamp),
			types.FormatTimestamp(m.LatestTimestamp),
			m.FirstAppearance.String(),
			m.LatestAppearance.String(),
		})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d experts", len(list))})
	tw.Render()
	return nil
}

func init() {
	addPeriodFlags(expertsDraftCmd, false)
	expertsDraftCmd.Flags().Bool("no-master", false, "do not update the master expert list")

	addPeriodFlags(expertsWeeklyCmd, true)
	expertsWeeklyCmd.Flags().Bool("no-master", false, "do not update the master expert list")

	expertsListCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	expertsCmd.AddCommand(expertsDraftCmd)
	expertsCmd.AddCommand(expertsWeeklyCmd)
	expertsCmd.AddCommand(expertsListCmd)

	rootCmd.AddCommand(expertsCmd)
}
