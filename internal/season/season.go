// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package season resolves the current fantasy football season and week.
package season

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoCurrentWeek is returned when the weekly rankings page does not name a
// week, which happens before week 1 is published.
var ErrNoCurrentWeek = errors.New("no current week on weekly rankings page")

// weekPageURL is the weekly QB rankings page whose title carries the current
// week. Declared as a var so tests can substitute an httptest server.
var weekPageURL = "https://www.fantasypros.com/nfl/rankings/qb.php"

// DocumentFetcher fetches and parses an HTML page.
type DocumentFetcher interface {
	GetDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error)
}

// CurrentSeason returns the season in progress at now. Seasons roll over in
// March; January and February belong to the previous year's season.
func CurrentSeason(now time.Time) int {
	if now.Month() > time.February {
		return now.Year()
	}
	return now.Year() - 1
}

var titleWeek = regexp.MustCompile(`(?i)^\s*week\s+(\d+)\b`)

// CurrentWeek reads the current week from the weekly rankings page title,
// e.g. "Week 1 QB Rankings ...".
func CurrentWeek(ctx context.Context, fetcher DocumentFetcher) (int, error) {
	doc, err := fetcher.GetDocument(ctx, weekPageURL, nil)
	if err != nil {
		return 0, fmt.Errorf("fetching current week: %w", err)
	}
	return WeekFromTitle(doc.Find("title").First().Text())
}

// WeekFromTitle parses the week number from a rankings page title.
func WeekFromTitle(title string) (int, error) {
	m := titleWeek.FindStringSubmatch(title)
	if m == nil {
		return 0, fmt.Errorf("%w: title %q", ErrNoCurrentWeek, strings.TrimSpace(title))
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: title %q", ErrNoCurrentWeek, title)
	}
	return week, nil
}
