// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package master maintains the master expert list: every expert id, name, and
// site combination ever scraped, with the first and latest time and ranking
// period it was seen.
package master

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pdiddy/ffbrank/internal/csvfile"
	"github.com/pdiddy/ffbrank/pkg/types"
)

// FileName is the master list file name inside the experts directory.
const FileName = "master_expert_list.csv"

// ErrNoMasterList is returned when the ranking scraper has no master list to
// read experts from.
var ErrNoMasterList = errors.New("master expert list does not exist")

// key identifies one master row.
type key struct {
	id   int
	name string
	site string
}

func keyOf(id int, name, site string) key {
	return key{id: id, name: name, site: site}
}

// Combine groups scraped rows by expert id, name, and site, keeping the
// earliest timestamp for each group. Output is sorted by expert id.
func Combine(experts []types.Expert) []types.Expert {
	groups := lo.GroupBy(experts, func(e types.Expert) key {
		return keyOf(e.ID, e.Name, e.Site)
	})

	combined := make([]types.Expert, 0, len(groups))
	for k, rows := range groups {
		earliest := lo.MinBy(rows, func(a, b types.Expert) bool {
			return a.Timestamp.Before(b.Timestamp)
		})
		combined = append(combined, types.Expert{
			ID:        k.id,
			Name:      k.name,
			Site:      k.site,
			Timestamp: earliest.Timestamp,
		})
	}
	sortExperts(combined)
	return combined
}

// Merge folds combined experts seen in the appearance period into the
// existing master list. New experts are appended; known experts have their
// first/latest timestamps and appearances widened. The result is
// de-duplicated and sorted by expert id.
func Merge(existing []types.MasterExpert, combined []types.Expert, appearance types.Appearance) []types.MasterExpert {
	merged := lo.Uniq(existing)
	index := make(map[key]int, len(merged))
	for i, m := range merged {
		index[keyOf(m.ID, m.Name, m.Site)] = i
	}

	for _, e := range combined {
		k := keyOf(e.ID, e.Name, e.Site)
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			merged = append(merged, types.MasterExpert{
				ID:               e.ID,
				Name:             e.Name,
				Site:             e.Site,
				FirstTimestamp:   e.Timestamp,
				LatestTimestamp:  e.Timestamp,
				FirstAppearance:  appearance,
				LatestAppearance: appearance,
			})
			continue
		}

		m := &merged[i]
		if e.Timestamp.Before(m.FirstTimestamp) {
			m.FirstTimestamp = e.Timestamp
		}
		if e.Timestamp.After(m.LatestTimestamp) {
			m.LatestTimestamp = e.Timestamp
		}
		if appearance.Before(m.FirstAppearance) {
			m.FirstAppearance = appearance
		}
		if m.LatestAppearance.Before(appearance) {
			m.LatestAppearance = appearance
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ID < merged[j].ID
	})
	return merged
}

// Load reads the master list at path. A missing file yields an empty list.
func Load(path string) ([]types.MasterExpert, error) {
	rows, err := csvfile.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading master expert list: %w", err)
	}

	experts := make([]types.MasterExpert, 0, len(rows))
	for i, row := range rows {
		m, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		experts = append(experts, m)
	}
	return experts, nil
}

// Save writes the master list to path.
func Save(path string, experts []types.MasterExpert) error {
	_, err := csvfile.Write(path, types.MasterHeader, experts)
	return err
}

// Update loads the master list at path, merges combined under appearance,
// and writes the result back.
func Update(path string, combined []types.Expert, appearance types.Appearance) ([]types.MasterExpert, error) {
	existing, err := Load(path)
	if err != nil {
		return nil, err
	}
	merged := Merge(existing, combined, appearance)
	if err := Save(path, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Experts returns one master row per expert id, choosing the row with the
// most recent latest timestamp when an id appears under several names or
// sites. A missing file is ErrNoMasterList.
func Experts(path string) ([]types.MasterExpert, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoMasterList, path)
		}
		return nil, err
	}

	all, err := Load(path)
	if err != nil {
		return nil, err
	}

	latest := make(map[int]types.MasterExpert)
	for _, m := range all {
		cur, ok := latest[m.ID]
		if !ok || m.LatestTimestamp.After(cur.LatestTimestamp) {
			latest[m.ID] = m
		}
	}

	experts := lo.Values(latest)
	sort.Slice(experts, func(i, j int) bool {
		return experts[i].ID < experts[j].ID
	})
	return experts, nil
}

func parseRow(row csvfile.Row) (types.MasterExpert, error) {
	var m types.MasterExpert
	var err error

	if m.ID, err = parseID(row["expert_id"]); err != nil {
		return m, err
	}
	m.Name = row["expert_name"]
	m.Site = row["site"]

	if m.FirstTimestamp, err = parseTime(row, "first_timestamp"); err != nil {
		return m, err
	}
	if m.LatestTimestamp, err = parseTime(row, "latest_timestamp"); err != nil {
		return m, err
	}
	if m.FirstAppearance, err = types.ParseAppearance(row["first_appearance"]); err != nil {
		return m, err
	}
	if m.LatestAppearance, err = types.ParseAppearance(row["latest_appearance"]); err != nil {
		return m, err
	}
	return m, nil
}

// parseID accepts integer ids, including the "12.0" form spreadsheets leave
// behind.
func parseID(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".0")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid expert_id %q", s)
	}
	return id, nil
}

func parseTime(row csvfile.Row, col string) (time.Time, error) {
	t, err := types.ParseTimestamp(row[col])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", col, row[col], err)
	}
	return t, nil
}

func sortExperts(experts []types.Expert) {
	sort.Slice(experts, func(i, j int) bool {
		a, b := experts[i], experts[j]
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Site < b.Site
	})
}
