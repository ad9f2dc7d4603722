// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"time"
)

// PlayerRanking is one player in an expert's ranking list.
type PlayerRanking struct {
	ExpertID   int    `json:"expert_id" yaml:"expert_id"`
	PlayerID   string `json:"player_id" yaml:"player_id"`
	PlayerName string `json:"player_name" yaml:"player_name"`
	Team       string `json:"team" yaml:"team"`
	Pos        string `json:"pos" yaml:"pos"`

	// Rank is the 1-based position in the expert's overall list.
	Rank int `json:"rank" yaml:"rank"`

	// PosRank is the position plus the 1-based order within that position
	// (e.g. "RB3").
	PosRank string `json:"pos_rank" yaml:"pos_rank"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// RankingHeader is the column order of ranking files.
var RankingHeader = []string{"expert_id", "player_id", "player_name", "team", "pos", "rank", "pos_rank", "timestamp"}

// Record returns the CSV values for r in RankingHeader order.
func (r PlayerRanking) Record() []string {
	return []string{
		strconv.Itoa(r.ExpertID),
		r.PlayerID,
		r.PlayerName,
		r.Team,
		r.Pos,
		strconv.Itoa(r.Rank),
		r.PosRank,
		FormatTimestamp(r.Timestamp),
	}
}
