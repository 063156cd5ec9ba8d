package footballapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Team is one entry from the /teams endpoint.
type Team struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country string `json:"country"`
	Founded int    `json:"founded"`
	Logo    string `json:"logo"`
}

type teamsResponse struct {
	Get        string                 `json:"get"`
	Parameters map[string]interface{} `json:"parameters"`
	Errors     interface{}            `json:"errors"`
	Results    int                    `json:"results"`
	Response   []struct {
		Team Team `json:"team"`
	} `json:"response"`
}

// GetTeamsByCountry fetches every club registered in a country, used to
// build the autocomplete directory.
func (c *Client) GetTeamsByCountry(ctx context.Context, country string) ([]Team, error) {
	endpoint := fmt.Sprintf("%s?country=%s", TeamsEndpoint, url.QueryEscape(country))
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	var response teamsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if err := envelopeError(response.Errors); err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(response.Response))
	for _, entry := range response.Response {
		teams = append(teams, entry.Team)
	}
	return teams, nil
}
