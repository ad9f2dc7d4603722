// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rankings

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pdiddy/ffbrank/pkg/types"
)

// consensusURL is the FantasyPros partners rankings endpoint. Declared as a
// var so tests can substitute an httptest server.
var consensusURL = "https://partners.fantasypros.com/api/v1/consensus-rankings.php"

const (
	// partnerID and rankingType are fixed values the partners endpoint
	// expects from embedded rankings widgets.
	partnerID   = "1054"
	rankingType = "ST"
)

// apiPositions maps positions to the endpoint's position codes.
var apiPositions = map[types.Position]string{
	types.PosAll:    "ALL",
	types.PosQB:     "QB",
	types.PosRB:     "RB",
	types.PosWR:     "WR",
	types.PosTE:     "TE",
	types.PosFlex:   "FLX",
	types.PosQBFlex: "OP",
	types.PosDST:    "DST",
	types.PosK:      "K",
}

// query builds the endpoint parameters for one expert's list. Week 0
// requests draft rankings.
func query(expertID int, scoring types.Scoring, pos types.Position, year, week int) url.Values {
	return url.Values{
		"sport":    {"NFL"},
		"year":     {strconv.Itoa(year)},
		"week":     {strconv.Itoa(week)},
		"id":       {partnerID},
		"position": {apiPositions[pos]},
		"type":     {rankingType},
		"scoring":  {string(scoring)},
		"filters":  {strconv.Itoa(expertID)},
		"export":   {"json"},
	}
}

type consensusResponse struct {
	Players []apiPlayer `json:"players"`
}

type apiPlayer struct {
	ID         flexString `json:"player_id"`
	Name       *string    `json:"player_name"`
	TeamID     flexString `json:"player_team_id"`
	PositionID flexString `json:"player_position_id"`
}

// flexString decodes a JSON string or number as text. The endpoint is not
// consistent about quoting ids.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
