// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experts scrapes the experts offering rankings on FantasyPros and
// writes one CSV per position and scoring format under experts/{year}/.
//
// Experts are read from the rankings pages themselves, not an API, so the
// consensus check marks are only accurate for the current season.
package experts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ffbrank/internal/csvfile"
	"github.com/pdiddy/ffbrank/internal/master"
	"github.com/pdiddy/ffbrank/pkg/types"
)

// Dir is the experts directory inside the base directory.
const Dir = "experts"

// rankingsBase is the FantasyPros NFL rankings root. Declared as a var so
// tests can substitute an httptest server.
var rankingsBase = "https://www.fantasypros.com/nfl/rankings/"

// Page name templates per scoring format; %s is the lowercased position.
var (
	draftOverallPages = map[types.Scoring]string{
		types.ScoringStandard: "consensus-cheatsheets.php",
		types.ScoringHalfPPR:  "half-point-ppr-cheatsheets.php",
		types.ScoringPPR:      "ppr-cheatsheets.php",
	}
	draftPositionPages = map[types.Scoring]string{
		types.ScoringStandard: "%s-cheatsheets.php",
		types.ScoringHalfPPR:  "half-point-ppr-%s-cheatsheets.php",
		types.ScoringPPR:      "ppr-%s-cheatsheets.php",
	}
	weeklyPages = map[types.Scoring]string{
		types.ScoringStandard: "%s.php",
		types.ScoringHalfPPR:  "half-point-ppr-%s.php",
		types.ScoringPPR:      "ppr-%s.php",
	}
)

// DocumentFetcher fetches and parses an HTML page.
type DocumentFetcher interface {
	GetDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error)
}

// Scraper scrapes expert lists and maintains the master expert list.
type Scraper struct {
	client     DocumentFetcher
	dir        string
	masterPath string
	logger     *slog.Logger
	now        func() time.Time
}

// New returns a Scraper writing under cfg.BaseDir/experts.
func New(client DocumentFetcher, cfg types.ScraperConfig, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(cfg.BaseDir, Dir)
	return &Scraper{
		client:     client,
		dir:        dir,
		masterPath: filepath.Join(dir, master.FileName),
		logger:     logger,
		now:        time.Now,
	}
}

// MasterPath returns the path of the master expert list.
func (s *Scraper) MasterPath() string {
	return s.masterPath
}

// WriteSummary holds counts from a write run.
type WriteSummary struct {
	Files   int
	Rows    int
	Experts int
}

// GetDraftExperts scrapes the draft experts for one position and scoring
// format. PosAll selects the overall cheatsheet.
func (s *Scraper) GetDraftExperts(ctx context.Context, pos types.Position, scoring types.Scoring, year int) ([]types.Expert, error) {
	var page string
	switch {
	case pos == types.PosAll:
		if err := types.ValidateScoring(pos, scoring); err != nil {
			return nil, err
		}
		page = draftOverallPages[scoring]
	case pos.IsDraft():
		if err := types.ValidateScoring(pos, scoring); err != nil {
			return nil, err
		}
		page = fmt.Sprintf(draftPositionPages[scoring], pos.Lower())
	default:
		return nil, fmt.Errorf("%w for draft rankings: %q should be one of %v",
			types.ErrInvalidPosition, pos, append([]types.Position{types.PosAll}, types.DraftPositions...))
	}

	params := url.Values{"year": {strconv.Itoa(year)}}
	return s.scrape(ctx, rankingsBase+page, params)
}

// GetWeeklyExperts scrapes the weekly experts for one position and scoring
// format. Week 0 returns the draft experts instead.
func (s *Scraper) GetWeeklyExperts(ctx context.Context, pos types.Position, scoring types.Scoring, year, week int) ([]types.Expert, error) {
	if week == 0 {
		s.logger.Info("returning draft experts because week is 0")
		return s.GetDraftExperts(ctx, pos, scoring, year)
	}
	if pos == types.PosAll {
		return nil, fmt.Errorf("%w: ALL is only available for draft rankings", types.ErrInvalidPosition)
	}
	if err := types.ValidateScoring(pos, scoring); err != nil {
		return nil, err
	}

	page := fmt.Sprintf(weeklyPages[scoring], pos.Lower())
	params := url.Values{
		"year": {strconv.Itoa(year)},
		"week": {strconv.Itoa(week)},
	}
	return s.scrape(ctx, rankingsBase+page, params)
}

func (s *Scraper) scrape(ctx context.Context, pageURL string, params url.Values) ([]types.Expert, error) {
	doc, err := s.client.GetDocument(ctx, pageURL, params)
	if err != nil {
		return nil, fmt.Errorf("scraping experts: %w", err)
	}
	return parseExperts(doc, s.now().Truncate(time.Second)), nil
}

// WriteDraftExperts writes the draft expert lists for year: first the overall
// list per scoring format, then each draft position and its scoring formats.
// Files are named experts/{year}/draft/{year}_expert_list_draft_{POS}_{S}.csv
// with OVERALL for the overall list. When updateMaster is set every scraped
// expert is merged into the master list under "{year}_draft".
func (s *Scraper) WriteDraftExperts(ctx context.Context, year int, updateMaster bool) (WriteSummary, error) {
	dir := filepath.Join(s.dir, strconv.Itoa(year), "draft")

	var summary WriteSummary
	var all []types.Expert

	write := func(pos types.Position, label string, scoring types.Scoring) error {
		experts, err := s.GetDraftExperts(ctx, pos, scoring, year)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%d_expert_list_draft_%s_%s.csv", year, label, scoring)
		if err := s.writeFile(filepath.Join(dir, name), experts, &summary); err != nil {
			return err
		}
		all = append(all, experts...)
		return nil
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

	if updateMaster {
		if err := s.updateMaster(all, types.DraftAppearance(year), &summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// WriteWeeklyExperts writes the weekly expert lists for every position and
// scoring format to experts/{year}/weekly/week{w}/. Week 0 writes the draft
// lists instead. When updateMaster is set every scraped expert is merged into
// the master list under "{year}_week{w}".
func (s *Scraper) WriteWeeklyExperts(ctx context.Context, year, week int, updateMaster bool) (WriteSummary, error) {
	if week == 0 {
		s.logger.Info("writing draft experts because week is 0")
		return s.WriteDraftExperts(ctx, year, updateMaster)
	}

	dir := filepath.Join(s.dir, strconv.Itoa(year), "weekly", fmt.Sprintf("week%d", week))

	var summary WriteSummary
	var all []types.Expert

	for _, pos := range types.WeeklyPositions {
		for _, scoring := range pos.ScoringFor() {
			experts, err := s.GetWeeklyExperts(ctx, pos, scoring, year, week)
			if err != nil {
				return summary, err
			}
			name := fmt.Sprintf("%d_expert_list_week%d_%s_%s.csv", year, week, pos, scoring)
			if err := s.writeFile(filepath.Join(dir, name), experts, &summary); err != nil {
				return summary, err
			}
			all = append(all, experts...)
		}
	}

	if updateMaster {
		if err := s.updateMaster(all, types.WeekAppearance(year, week), &summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (s *Scraper) writeFile(path string, experts []types.Expert, summary *WriteSummary) error {
	written, err := csvfile.Write(path, types.ExpertHeader, experts)
	if err != nil {
		return err
	}
	s.logger.Debug("writing file", "path", written, "rows", len(experts))
	summary.Files++
	summary.Rows += len(experts)
	return nil
}

func (s *Scraper) updateMaster(all []types.Expert, appearance types.Appearance, summary *WriteSummary) error {
	merged, err := master.Update(s.masterPath, master.Combine(all), appearance)
	if err != nil {
		return fmt.Errorf("updating master expert list: %w", err)
	}
	s.logger.Debug("writing file", "path", s.masterPath, "rows", len(merged))
	summary.Experts = len(merged)
	return nil
}
