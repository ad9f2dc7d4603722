// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rankings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ffbrank/internal/experts"
	"github.com/pdiddy/ffbrank/internal/httputil"
	"github.com/pdiddy/ffbrank/internal/master"
	"github.com/pdiddy/ffbrank/pkg/types"
)

const samplePlayersJSON = `{
  "sport": "NFL",
  "players": [
    {"player_id": 16393, "player_name": "Christian McCaffrey", "player_team_id": "CAR", "player_position_id": "RB"},
    {"player_id": "17298", "player_name": "Saquon Barkley", "player_team_id": "NYG", "player_position_id": "RB"},
    {"player_id": 11180, "player_name": "DeAndre Hopkins", "player_team_id": "HOU", "player_position_id": "WR"},
    {"player_id": 9999, "player_team_id": "FA", "player_position_id": "WR"},
    {"player_id": 15802, "player_name": "Travis Kelce", "player_team_id": "KC", "player_position_id": "te"},
    {"player_id": 16413, "player_name": "Ezekiel Elliott", "player_team_id": "DAL", "player_position_id": "RB"}
  ]
}`

func TestBuildRankings(t *testing.T) {
	var resp consensusResponse
	require.NoError(t, json.Unmarshal([]byte(samplePlayersJSON), &resp))

	stamp := time.Date(2019, 8, 30, 12, 0, 0, 0, time.Local)
	got := buildRankings(9, resp.Players, stamp)
	require.Len(t, got, 5)

	tests := []struct {
		id, name, team, pos, posRank string
		rank                         int
	}{
		{"16393", "Christian McCaffrey", "CAR", "RB", "RB1", 1},
		{"17298", "Saquon Barkley", "NYG", "RB", "RB2", 2},
		{"11180", "DeAndre Hopkins", "HOU", "WR", "WR1", 3},
		{"15802", "Travis Kelce", "KC", "te", "TE1", 4},
		{"16413", "Ezekiel Elliott", "DAL", "RB", "RB3", 5},
	}
	for i, tt := range tests {
		assert.Equal(t, types.PlayerRanking{
			ExpertID: 9, PlayerID: tt.id, PlayerName: tt.name, Team: tt.team,
			Pos: tt.pos, Rank: tt.rank, PosRank: tt.posRank, Timestamp: stamp,
		}, got[i])
	}
}

func TestBuildRankings_Empty(t *testing.T) {
	assert.Empty(t, buildRankings(9, nil, time.Now()))
}

func TestQuery(t *testing.T) {
	q := query(9, types.ScoringHalfPPR, types.PosQBFlex, 2019, 4)
	assert.Equal(t, url.Values{
		"sport":    {"NFL"},
		"year":     {"2019"},
		"week":     {"4"},
		"id":       {"1054"},
		"position": {"OP"},
		"type":     {"ST"},
		"scoring":  {"HALF"},
		"filters":  {"9"},
		"export":   {"json"},
	}, q)

	assert.Equal(t, "FLX", query(9, types.ScoringPPR, types.PosFlex, 2019, 4).Get("position"))
	assert.Equal(t, "ALL", query(9, types.ScoringPPR, types.PosAll, 2019, 0).Get("position"))
}

// fakeAPI answers every request with players for expert 9 and an empty list
// for everyone else.
type fakeAPI struct {
	mu      sync.Mutex
	queries []url.Values
}

func (f *fakeAPI) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.Query())
	f.mu.Unlock()

	if r.URL.Query().Get("filters") == "9" {
		w.Write([]byte(samplePlayersJSON))
		return
	}
	w.Write([]byte(`{"players": []}`))
}

func writeMaster(t *testing.T, base string, rows ...types.MasterExpert) {
	t.Helper()
	path := filepath.Join(base, experts.Dir, master.FileName)
	require.NoError(t, master.Save(path, rows))
}

func masterRow(id int, name, site string) types.MasterExpert {
	stamp := time.Date(2019, 8, 1, 10, 0, 0, 0, time.Local)
	return types.MasterExpert{
		ID: id, Name: name, Site: site,
		FirstTimestamp: stamp, LatestTimestamp: stamp,
		FirstAppearance: types.DraftAppearance(2019), LatestAppearance: types.DraftAppearance(2019),
	}
}

func newTestScraper(t *testing.T) (*Scraper, *fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{}
	ts := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(ts.Close)

	old := consensusURL
	consensusURL = ts.URL + "/api/v1/consensus-rankings.php"
	t.Cleanup(func() { consensusURL = old })

	base := t.TempDir()
	s := New(httputil.NewClient(types.HTTPConfig{RequestDelay: -1}), types.ScraperConfig{BaseDir: base}, nil)
	s.now = func() time.Time { return time.Date(2019, 8, 30, 12, 0, 0, 0, time.Local) }
	return s, api, base
}

func TestGetDraftRankings(t *testing.T) {
	s, api, _ := newTestScraper(t)

	got, err := s.GetDraftRankings(context.Background(), 9, types.ScoringPPR, types.PosAll, 2019)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	require.Len(t, api.queries, 1)
	assert.Equal(t, "0", api.queries[0].Get("week"))
	assert.Equal(t, "PPR", api.queries[0].Get("scoring"))
}

func TestGetDraftRankings_InvalidScoring(t *testing.T) {
	s, api, _ := newTestScraper(t)
	_, err := s.GetDraftRankings(context.Background(), 9, types.ScoringHalfPPR, types.PosQB, 2019)
	assert.ErrorIs(t, err, types.ErrInvalidScoring)
	assert.Empty(t, api.queries)
}

func TestGetWeeklyRankings(t *testing.T) {
	s, api, _ := newTestScraper(t)

	_, err := s.GetWeeklyRankings(context.Background(), 9, types.ScoringStandard, types.PosAll, 2019, 3)
	assert.ErrorIs(t, err, types.ErrInvalidPosition)

	got, err := s.GetWeeklyRankings(context.Background(), 9, types.ScoringStandard, types.PosRB, 2019, 3)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	require.Len(t, api.queries, 1)
	assert.Equal(t, "3", api.queries[0].Get("week"))
	assert.Equal(t, "RB", api.queries[0].Get("position"))
}

func TestGetWeeklyRankings_WeekZeroIsDraft(t *testing.T) {
	s, api, _ := newTestScraper(t)

	_, err := s.GetWeeklyRankings(context.Background(), 9, types.ScoringStandard, types.PosAll, 2019, 0)
	require.NoError(t, err)
	require.Len(t, api.queries, 1)
	assert.Equal(t, "0", api.queries[0].Get("week"))
}

func TestGetRankings_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := consensusURL
	consensusURL = ts.URL
	defer func() { consensusURL = old }()

	s := New(httputil.NewClient(types.HTTPConfig{RequestDelay: -1}), types.ScraperConfig{BaseDir: t.TempDir()}, nil)
	_, err := s.GetDraftRankings(context.Background(), 9, types.ScoringStandard, types.PosQB, 2019)

	var statusErr *httputil.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestWriteDraftRankings(t *testing.T) {
	s, api, base := newTestScraper(t)
	writeMaster(t, base,
		masterRow(3, "Empty Expert", "Nowhere"),
		masterRow(9, "Scott Pianowski", "Yahoo! Sports"),
	)

	summary, err := s.WriteDraftRankings(context.Background(), 2019, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Experts)
	assert.Equal(t, 15, summary.Files)
	assert.Equal(t, 15, summary.Empty)
	assert.Equal(t, 75, summary.Rows)
	assert.Len(t, api.queries, 30)

	dir := filepath.Join(base, Dir, "2019", "draft")
	path := filepath.Join(dir, "2019_draft_9_Scott Pianowski_Yahoo! Sports_OVERALL_STD.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"expert_id,player_id,player_name,team,pos,rank,pos_rank,timestamp\n"+
			"9,16393,Christian McCaffrey,CAR,RB,1,RB1,2019-08-30 12:00:00\n"+
			"9,17298,Saquon Barkley,NYG,RB,2,RB2,2019-08-30 12:00:00\n"+
			"9,11180,DeAndre Hopkins,HOU,WR,3,WR1,2019-08-30 12:00:00\n"+
			"9,15802,Travis Kelce,KC,te,4,TE1,2019-08-30 12:00:00\n"+
			"9,16413,Ezekiel Elliott,DAL,RB,5,RB3,2019-08-30 12:00:00\n",
		string(data))

	_, err = os.Stat(filepath.Join(dir, "2019_draft_9_Scott Pianowski_Yahoo! Sports_TE_HALF.csv"))
	assert.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "2019_draft_3_*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "experts with no rankings write no files")
}

func TestWriteDraftRankings_StartExpert(t *testing.T) {
	s, api, _ := newTestScraper(t)
	writeMaster(t, filepath.Dir(filepath.Dir(s.masterPath)),
		masterRow(3, "Empty Expert", "Nowhere"),
		masterRow(9, "Scott Pianowski", "Yahoo! Sports"),
	)

	summary, err := s.WriteDraftRankings(context.Background(), 2019, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Experts)
	for _, q := range api.queries {
		assert.Equal(t, "9", q.Get("filters"))
	}
}

func TestWriteWeeklyRankings(t *testing.T) {
	s, _, base := newTestScraper(t)
	writeMaster(t, base, masterRow(9, "Rotoworld/NBC", "NBC Sports"))

	summary, err := s.WriteWeeklyRankings(context.Background(), 2019, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 18, summary.Files)

	dir := filepath.Join(base, Dir, "2019", "weekly", "week6")
	_, err = os.Stat(filepath.Join(dir, "2019_week6_9_Rotoworld-NBC_NBC Sports_QB-FLEX_PPR.csv"))
	assert.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*_OVERALL_*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestWriteWeeklyRankings_WeekZeroWritesDraft(t *testing.T) {
	s, _, base := newTestScraper(t)
	writeMaster(t, base, masterRow(9, "Scott Pianowski", "Yahoo! Sports"))

	summary, err := s.WriteWeeklyRankings(context.Background(), 2019, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, summary.Files)

	_, err = os.Stat(filepath.Join(base, Dir, "2019", "draft"))
	assert.NoError(t, err)
}

func TestWriteRankings_NoMasterList(t *testing.T) {
	s, _, _ := newTestScraper(t)

	_, err := s.WriteDraftRankings(context.Background(), 2019, 0)
	assert.ErrorIs(t, err, master.ErrNoMasterList)

	_, err = s.WriteWeeklyRankings(context.Background(), 2019, 2, 0)
	assert.ErrorIs(t, err, master.ErrNoMasterList)
}

func TestFlexString(t *testing.T) {
	var v struct {
		A flexString `json:"a"`
		B flexString `json:"b"`
		C flexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "KC", "c": null}`), &v))
	assert.Equal(t, flexString("12"), v.A)
	assert.Equal(t, flexString("KC"), v.B)
	assert.Equal(t, flexString(""), v.C)
}
