// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records ffbrank scrapes and writes.
//
// Every record maps to one CSV row. Header and Record return the column names
// and values in the order the files are written.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampFormat is the layout of every timestamp column.
const TimestampFormat = "2006-01-02 15:04:05"

// FormatTimestamp renders t for a CSV column.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseTimestamp reads a CSV timestamp column in local time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampFormat, strings.TrimSpace(s), time.Local)
}

// Expert is one row of an expert list page: an expert offering rankings for
// a position and scoring format.
type Expert struct {
	ID   int    `json:"expert_id" yaml:"expert_id"`
	Name string `json:"expert_name" yaml:"expert_name"`
	Site string `json:"site" yaml:"site"`

	// Checked reports whether the expert is selected for the FantasyPros
	// consensus. Only meaningful for the current season.
	Checked bool `json:"checked" yaml:"checked"`

	// UpdatedDate is the last-updated text shown on the page.
	UpdatedDate string `json:"updated_date" yaml:"updated_date"`

	// Timestamp is when the page was scraped.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ExpertHeader is the column order of expert list files.
var ExpertHeader = []string{"expert_id", "expert_name", "site", "checked", "updated_date", "timestamp"}

// Record returns the CSV values for e in ExpertHeader order.
func (e Expert) Record() []string {
	return []string{
		strconv.Itoa(e.ID),
		e.Name,
		e.Site,
		formatBool(e.Checked),
		e.UpdatedDate,
		FormatTimestamp(e.Timestamp),
	}
}

// formatBool writes True/False, matching existing expert list files.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// MasterExpert tracks an expert across every scrape: when it was first and
// last seen, and for which ranking periods.
type MasterExpert struct {
	ID               int        `json:"expert_id" yaml:"expert_id"`
	Name             string     `json:"expert_name" yaml:"expert_name"`
	Site             string     `json:"site" yaml:"site"`
	FirstTimestamp   time.Time  `json:"first_timestamp" yaml:"first_timestamp"`
	LatestTimestamp  time.Time  `json:"latest_timestamp" yaml:"latest_timestamp"`
	FirstAppearance  Appearance `json:"first_appearance" yaml:"first_appearance"`
	LatestAppearance Appearance `json:"latest_appearance" yaml:"latest_appearance"`
}

// MasterHeader is the column order of the master expert list.
var MasterHeader = []string{
	"expert_id", "expert_name", "site",
	"first_timestamp", "latest_timestamp",
	"first_appearance", "latest_appearance",
}

// Record returns the CSV values for m in MasterHeader order.
func (m MasterExpert) Record() []string {
	return []string{
		strconv.Itoa(m.ID),
		m.Name,
		m.Site,
		FormatTimestamp(m.FirstTimestamp),
		FormatTimestamp(m.LatestTimestamp),
		m.FirstAppearance.String(),
		m.LatestAppearance.String(),
	}
}

// Appearance identifies a ranking period. Week 0 is the draft.
type Appearance struct {
	Year int
	Week int
}

// DraftAppearance returns the draft period of year.
func DraftAppearance(year int) Appearance {
	return Appearance{Year: year}
}

// WeekAppearance returns the weekly period of year and week.
func WeekAppearance(year, week int) Appearance {
	return Appearance{Year: year, Week: week}
}

// String renders the period as "2019_draft" or "2019_week3".
func (a Appearance) String() string {
	if a.Week == 0 {
		return fmt.Sprintf("%d_draft", a.Year)
	}
	return fmt.Sprintf("%d_week%d", a.Year, a.Week)
}

// Before reports whether a comes earlier in the calendar than b. The draft
// precedes week 1 of the same season.
func (a Appearance) Before(b Appearance) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Week < b.Week
}

// IsZero reports whether a is unset.
func (a Appearance) IsZero() bool {
	return a == Appearance{}
}

// ParseAppearance reads a period written by Appearance.String.
func ParseAppearance(s string) (Appearance, error) {
	s = strings.TrimSpace(s)
	yearText, period, ok := strings.Cut(s, "_")
	if !ok {
		return Appearance{}, fmt.Errorf("malformed appearance %q", s)
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return Appearance{}, fmt.Errorf("malformed appearance year %q: %w", s, err)
	}
	if period == "draft" {
		return DraftAppearance(year), nil
	}
	weekText, ok := strings.CutPrefix(period, "week")
	if !ok {
		return Appearance{}, fmt.Errorf("malformed appearance period %q", s)
	}
	week, err := strconv.Atoi(weekText)
	if err != nil || week < 1 {
		return Appearance{}, fmt.Errorf("malformed appearance week %q", s)
	}
	return WeekAppearance(year, week), nil
}

// MarshalText implements encoding.TextMarshaler so appearances export as
// their string form.
func (a Appearance) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Appearance) UnmarshalText(b []byte) error {
	parsed, err := ParseAppearance(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
