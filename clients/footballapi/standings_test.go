package footballapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const standingsFixture = `{
	"get": "standings",
	"parameters": {"league": "39", "season": "2023"},
	"errors": [],
	"results": 1,
	"response": [{
		"league": {
			"id": 39,
			"name": "Premier League",
			"country": "England",
			"season": 2023,
			"standings": [[
				{"rank": 1, "team": {"id": 50, "name": "Manchester City", "logo": "https://media.api-sports.io/football/teams/50.png"}, "points": 91, "goalsDiff": 62},
				{"rank": 2, "team": {"id": 42, "name": "Arsenal", "logo": "https://media.api-sports.io/football/teams/42.png"}, "points": 89, "goalsDiff": 62}
			]]
		}
	}]
}`

func TestGetStandings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/standings", r.URL.Path)
		require.Equal(t, "39", r.URL.Query().Get("league"))
		require.Equal(t, "2023", r.URL.Query().Get("season"))
		require.Equal(t, "test-key", r.Header.Get(APIKeyHeader))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(standingsFixture))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.SetBaseURL(server.URL)

	rows, leagueName, err := client.GetStandings(context.Background(), 39, 2023)
	require.NoError(t, err)

	require.Equal(t, "Premier League", leagueName)
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, "Manchester City", rows[0].Team.Name)
	require.Equal(t, 89, rows[1].Points)
}

func TestGetStandingsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get": "standings", "errors": {"token": "Error/Missing application key"}, "results": 0, "response": []}`))
	}))
	defer server.Close()

	client := NewClient("")
	client.SetBaseURL(server.URL)

	_, _, err := client.GetStandings(context.Background(), 39, 2023)
	require.Error(t, err)
}

func TestGetStandingsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"get": "standings", "errors": [], "results": 0, "response": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.SetBaseURL(server.URL)

	_, _, err := client.GetStandings(context.Background(), 39, 2023)
	require.Error(t, err)
}

func TestGetTeamsByCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams", r.URL.Path)
		require.Equal(t, "England", r.URL.Query().Get("country"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"get": "teams",
			"errors": [],
			"results": 2,
			"response": [
				{"team": {"id": 42, "name": "Arsenal", "country": "England", "logo": "https://media.api-sports.io/football/teams/42.png"}},
				{"team": {"id": 33, "name": "Manchester United", "country": "England", "logo": "https://media.api-sports.io/football/teams/33.png"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.SetBaseURL(server.URL)

	teams, err := client.GetTeamsByCountry(context.Background(), "England")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "Arsenal", teams[0].Name)
}
