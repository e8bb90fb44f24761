package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tanayv/lila/internal/adapters/http/api"
	"github.com/tanayv/lila/internal/adapters/repository"
	"github.com/tanayv/lila/internal/domain/model"
	"github.com/tanayv/lila/internal/domain/rating"
)

// stubDeps implements api.Dependencies and api.StatsProvider with canned
// behavior for handler tests.
type stubDeps struct {
	accepted   bool
	duplicate  bool
	submitted  []model.GameResult
	ratings    map[string]rating.Perf
	ratingsErr error
	entries    []repository.Entry
	boardErr   error
}

func (s *stubDeps) Submit(_ context.Context, result model.GameResult) (bool, bool) {
	s.submitted = append(s.submitted, result)
	return s.accepted, s.duplicate
}

func (s *stubDeps) PlayerRatings(_ context.Context, _ string) (map[string]rating.Perf, error) {
	return s.ratings, s.ratingsErr
}

func (s *stubDeps) Leaderboard(_ context.Context, _ rating.Category, _ int) ([]repository.Entry, error) {
	return s.entries, s.boardErr
}

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *stubDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validGame = `{
	"game_id": "abc-123",
	"white_id": "alice",
	"black_id": "bob",
	"variant": "standard",
	"speed": "blitz",
	"winner": "white",
	"rated": true
}`

func TestHandlePostGame(t *testing.T) {
	Convey("Given the POST /games endpoint", t, func() {
		deps := &stubDeps{accepted: true}
		mux := newTestMux(deps)

		Convey("A valid submission is acknowledged with 202", func() {
			rec := postJSON(mux, "/games", validGame)
			So(rec.Code, ShouldEqual, http.StatusAccepted)

			var ack struct {
				Status string `json:"status"`
				GameID string `json:"game_id"`
			}
			So(json.NewDecoder(rec.Body).Decode(&ack), ShouldBeNil)
			So(ack.Status, ShouldEqual, "queued")
			So(ack.GameID, ShouldEqual, "abc-123")

			So(deps.submitted, ShouldHaveLength, 1)
			g := deps.submitted[0].Game
			So(g.Variant, ShouldEqual, rating.VariantStandard)
			So(g.Speed, ShouldEqual, rating.SpeedBlitz)
			So(g.Outcome, ShouldEqual, rating.OutcomeWhiteWins)
			So(g.Rated, ShouldBeTrue)
			So(g.Finished, ShouldBeTrue)
			So(g.Accountable, ShouldBeTrue)
		})

		Convey("A submission without a game id gets one minted", func() {
			body := strings.Replace(validGame, `"game_id": "abc-123",`, "", 1)
			rec := postJSON(mux, "/games", body)
			So(rec.Code, ShouldEqual, http.StatusAccepted)
			So(deps.submitted, ShouldHaveLength, 1)
			So(deps.submitted[0].Game.ID, ShouldNotBeEmpty)
		})

		Convey("An aborted game is submitted as unaccountable", func() {
			body := strings.Replace(validGame, `"rated": true`, `"rated": true, "aborted": true`, 1)
			rec := postJSON(mux, "/games", body)
			So(rec.Code, ShouldEqual, http.StatusAccepted)
			So(deps.submitted[0].Game.Accountable, ShouldBeFalse)
		})

		Convey("Malformed JSON is rejected with 400", func() {
			rec := postJSON(mux, "/games", "{not json")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(deps.submitted, ShouldBeEmpty)
		})

		Convey("Validation failures are rejected with 400", func() {
			cases := map[string]string{
				"missing white_id":  strings.Replace(validGame, `"white_id": "alice",`, "", 1),
				"identical players": strings.Replace(validGame, `"black_id": "bob"`, `"black_id": "alice"`, 1),
				"unknown variant":   strings.Replace(validGame, `"variant": "standard"`, `"variant": "bughouse"`, 1),
				"unknown speed":     strings.Replace(validGame, `"speed": "blitz"`, `"speed": "hyperbullet"`, 1),
				"unknown winner":    strings.Replace(validGame, `"winner": "white"`, `"winner": "nobody"`, 1),
				"invalid played_at": strings.Replace(validGame, `"rated": true`, `"rated": true, "played_at": "yesterday"`, 1),
			}
			for name, body := range cases {
				rec := postJSON(mux, "/games", body)
				So(name+": "+http.StatusText(rec.Code), ShouldEqual, name+": "+http.StatusText(http.StatusBadRequest))
			}
			So(deps.submitted, ShouldBeEmpty)
		})

		Convey("A duplicate game id is acknowledged with 200", func() {
			deps.duplicate = true
			deps.accepted = false
			rec := postJSON(mux, "/games", validGame)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var ack struct {
				Status    string `json:"status"`
				Duplicate bool   `json:"duplicate"`
			}
			So(json.NewDecoder(rec.Body).Decode(&ack), ShouldBeNil)
			So(ack.Status, ShouldEqual, "duplicate")
			So(ack.Duplicate, ShouldBeTrue)
		})

		Convey("Backpressure is reported with 503", func() {
			deps.accepted = false
			rec := postJSON(mux, "/games", validGame)
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Other methods are not found", func() {
			rec := get(mux, "/games")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandleGetRatings(t *testing.T) {
	Convey("Given the GET /players/{id}/ratings endpoint", t, func() {
		deps := &stubDeps{ratings: rating.NewPerfSet().Map()}
		mux := newTestMux(deps)

		Convey("A known player's full record set is returned", func() {
			rec := get(mux, "/players/alice/ratings")
			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				PlayerID string                 `json:"player_id"`
				Ratings  map[string]rating.Perf `json:"ratings"`
			}
			So(json.NewDecoder(rec.Body).Decode(&resp), ShouldBeNil)
			So(resp.PlayerID, ShouldEqual, "alice")
			So(resp.Ratings, ShouldHaveLength, rating.CategoryCount)
			So(resp.Ratings["blitz"].Glicko.Value, ShouldEqual, 1500)
		})

		Convey("An unknown player yields 404", func() {
			deps.ratings = nil
			deps.ratingsErr = repository.ErrNotFound
			rec := get(mux, "/players/ghost/ratings")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Malformed paths yield 400", func() {
			So(get(mux, "/players//ratings").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/players/alice").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/players/alice/bob/ratings").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHandleGetLeaderboard(t *testing.T) {
	Convey("Given the GET /leaderboard endpoint", t, func() {
		deps := &stubDeps{entries: []repository.Entry{
			{Rank: 1, PlayerID: "alice", Rating: 2100, Games: 50},
			{Rank: 2, PlayerID: "bob", Rating: 1900, Games: 20},
		}}
		mux := newTestMux(deps)

		Convey("A valid category returns its ranking", func() {
			rec := get(mux, "/leaderboard?category=blitz")
			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Category string             `json:"category"`
				Entries  []repository.Entry `json:"entries"`
			}
			So(json.NewDecoder(rec.Body).Decode(&resp), ShouldBeNil)
			So(resp.Category, ShouldEqual, "blitz")
			So(resp.Entries, ShouldResemble, deps.entries)
		})

		Convey("An unknown category yields 400", func() {
			So(get(mux, "/leaderboard?category=bughouse").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/leaderboard").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A non-positive limit yields 400", func() {
			So(get(mux, "/leaderboard?category=blitz&limit=0").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/leaderboard?category=blitz&limit=nope").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		deps := &stubDeps{}
		mux := newTestMux(deps)

		Convey("GET /healthz reports ok", func() {
			rec := get(mux, "/healthz")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("GET /stats relays the provider's view", func() {
			rec := get(mux, "/stats")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
		})
	})
}
