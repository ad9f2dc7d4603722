// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rankings downloads each expert's draft and weekly rankings from the
// FantasyPros partners API and writes one CSV per expert, position, and
// scoring format under rankings/{year}/.
//
// Experts come from the master expert list written by package experts.
package rankings

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/ffbrank/internal/csvfile"
	"github.com/pdiddy/ffbrank/internal/experts"
	"github.com/pdiddy/ffbrank/internal/master"
	"github.com/pdiddy/ffbrank/pkg/types"
)

// Dir is the rankings directory inside the base directory.
const Dir = "rankings"

// JSONFetcher fetches and decodes a JSON document.
type JSONFetcher interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error
}

// Scraper downloads expert rankings.
type Scraper struct {
	client     JSONFetcher
	dir        string
	masterPath string
	logger     *slog.Logger
	now        func() time.Time
}

// New returns a Scraper writing under cfg.BaseDir/rankings and reading
// experts from the master list under cfg.BaseDir/experts.
func New(client JSONFetcher, cfg types.ScraperConfig, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		client:     client,
		dir:        filepath.Join(cfg.BaseDir, Dir),
		masterPath: filepath.Join(cfg.BaseDir, experts.Dir, master.FileName),
		logger:     logger,
		now:        time.Now,
	}
}

// WriteSummary holds counts from a write run.
type WriteSummary struct {
	Experts int
	Files   int
	Rows    int
	// Empty counts requests that returned no players; no file is written.
	Empty int
}

// GetDraftRankings returns one expert's draft rankings for a position and
// scoring format. PosAll returns the overall list.
func (s *Scraper) GetDraftRankings(ctx context.Context, expertID int, scoring types.Scoring, pos types.Position, year int) ([]types.PlayerRanking, error) {
	if err := types.ValidateScoring(pos, scoring); err != nil {
		return nil, err
	}
	return s.fetch(ctx, expertID, scoring, pos, year, 0)
}

// GetWeeklyRankings returns one expert's weekly rankings for a position and
// scoring format. Week 0 returns the draft rankings. Overall rankings exist
// only for the draft, so PosAll is rejected for other weeks.
func (s *Scraper) GetWeeklyRankings(ctx context.Context, expertID int, scoring types.Scoring, pos types.Position, year, week int) ([]types.PlayerRanking, error) {
	if week == 0 {
		s.logger.Info("returning draft rankings because week is 0")
		return s.GetDraftRankings(ctx, expertID, scoring, pos, year)
	}
	if pos == types.PosAll {
		return nil, fmt.Errorf("%w: ALL is not valid for weekly rankings, overall rankings are only available for the draft", types.ErrInvalidPosition)
	}
	if err := types.ValidateScoring(pos, scoring); err != nil {
		return nil, err
	}
	return s.fetch(ctx, expertID, scoring, pos, year, week)
}

func (s *Scraper) fetch(ctx context.Context, expertID int, scoring types.Scoring, pos types.Position, year, week int) ([]types.PlayerRanking, error) {
	var resp consensusResponse
	if err := s.client.GetJSON(ctx, consensusURL, query(expertID, scoring, pos, year, week), &resp); err != nil {
		return nil, fmt.Errorf("fetching rankings for expert %d: %w", expertID, err)
	}
	return buildRankings(expertID, resp.Players, s.now().Truncate(time.Second)), nil
}

// buildRankings keeps players with a name, numbers them in list order, and
// assigns each its rank within its position.
func buildRankings(expertID int, players []apiPlayer, timestamp time.Time) []types.PlayerRanking {
	var out []types.PlayerRanking
	posCounts := make(map[string]int)

	for _, p := range players {
		if p.Name == nil {
			continue
		}
		pos := string(p.PositionID)
		key := strings.ToUpper(pos)
		posCounts[key]++

		out = append(out, types.PlayerRanking{
			ExpertID:   expertID,
			PlayerID:   string(p.ID),
			PlayerName: *p.Name,
			Team:       string(p.TeamID),
			Pos:        pos,
			Rank:       len(out) + 1,
			PosRank:    key + strconv.Itoa(posCounts[key]),
			Timestamp:  timestamp,
		})
	}
	return out
}

// WriteDraftRankings writes draft rankings for every master-list expert with
// an id of at least startExpert: the overall list per scoring format, then
// each draft position and its scoring formats. Files go to
// rankings/{year}/draft/{year}_draft_{id}_{name}_{site}_{POS}_{S}.csv with
// OVERALL for the overall list. Lists with no players write no file.
func (s *Scraper) WriteDraftRankings(ctx context.Context, year, startExpert int) (WriteSummary, error) {
	list, err := master.Experts(s.masterPath)
	if err != nil {
		return WriteSummary{}, err
	}

	dir := filepath.Join(s.dir, strconv.Itoa(year), "draft")
	var summary WriteSummary

	for _, e := range list {
		if e.ID < startExpert {
			continue
		}
		summary.Experts++

		write := func(pos types.Position, label string, scoring types.Scoring) error {
			ranks, err := s.GetDraftRankings(ctx, e.ID, scoring, pos, year)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%d_draft_%d_%s_%s_%s_%s.csv",
				year, e.ID, pathSafe(e.Name), pathSafe(e.Site), label, scoring)
			return s.writeFile(filepath.Join(dir, name), ranks, &summary)
		}

		for _, scoring := range types.ScoringOptions {
			if err := write(types.PosAll, "OVERALL", scoring); err != nil {
				return summary, err
			}
		}
		for _, pos := range types.DraftPositions {
			for _, scoring := range pos.ScoringFor() {
				if err := write(pos, string(pos), scoring); err != nil {
					return summary, err
				}
			}
		}
	}
	return summary, nil
}

// WriteWeeklyRankings writes weekly rankings for every master-list expert
// with an id of at least startExpert, for every weekly position and scoring
// format, to rankings/{year}/weekly/week{w}/. Week 0 writes draft rankings.
func (s *Scraper) WriteWeeklyRankings(ctx context.Context, year, week, startExpert int) (WriteSummary, error) {
	if week == 0 {
		s.logger.Info("writing draft rankings because week is 0")
		return s.WriteDraftRankings(ctx, year, startExpert)
	}

	list, err := master.Experts(s.masterPath)
	if err != nil {
		return WriteSummary{}, err
	}

	dir := filepath.Join(s.dir, strconv.Itoa(year), "weekly", fmt.Sprintf("week%d", week))
	var summary WriteSummary

	for _, e := range list {
		if e.ID < startExpert {
			continue
		}
		summary.Experts++

		for _, pos := range types.WeeklyPositions {
			for _, scoring := range pos.ScoringFor() {
				ranks, err := s.GetWeeklyRankings(ctx, e.ID, scoring, pos, year, week)
				if err != nil {
					return summary, err
				}
				name := fmt.Sprintf("%d_week%d_%d_%s_%s_%s_%s.csv",
					year, week, e.ID, pathSafe(e.Name), pathSafe(e.Site), pos, scoring)
				if err := s.writeFile(filepath.Join(dir, name), ranks, &summary); err != nil {
					return summary, err
				}
			}
		}
	}
	return summary, nil
}

func (s *Scraper) writeFile(path string, ranks []types.PlayerRanking, summary *WriteSummary) error {
	if len(ranks) == 0 {
		summary.Empty++
		s.logger.Debug("no rankings, skipping file", "path", path)
		return nil
	}
	written, err := csvfile.Write(path, types.RankingHeader, ranks)
	if err != nil {
		return err
	}
	s.logger.Debug("writing file", "path", written, "rows", len(ranks))
	summary.Files++
	summary.Rows += len(ranks)
	return nil
}

var pathReplacer = strings.NewReplacer("/", "-", "\\", "-")

// pathSafe keeps expert names and sites from introducing directories.
func pathSafe(s string) string {
	return pathReplacer.Replace(s)
}
