package footballapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

type standingsResponse struct {
	Get        string                 `json:"get"`
	Parameters map[string]interface{} `json:"parameters"`
	Errors     interface{}            `json:"errors"`
	Results    int                    `json:"results"`
	Response   []struct {
		League struct {
			ID        int                    `json:"id"`
			Name      string                 `json:"name"`
			Country   string                 `json:"country"`
			Season    int                    `json:"season"`
			Standings [][]models.StandingRow `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

// GetStandings fetches the league table for a league and season. Returns the
// ordered rows (rank 1..N) and the league's display name.
func (c *Client) GetStandings(ctx context.Context, league, season int) ([]models.StandingRow, string, error) {
	endpoint := fmt.Sprintf("%s?league=%d&season=%d", StandingsEndpoint, league, season)
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get standings: %w", err)
	}

	var response standingsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if err := envelopeError(response.Errors); err != nil {
		return nil, "", err
	}

	if len(response.Response) == 0 || len(response.Response[0].League.Standings) == 0 {
		return nil, "", fmt.Errorf("no standings in response for league %d season %d", league, season)
	}

	entry := response.Response[0].League
	return entry.Standings[0], entry.Name, nil
}

// envelopeError surfaces API-level errors that arrive with a 200 status.
// API-Football reports them as an empty array when fine, or an object/array
// of messages otherwise.
func envelopeError(raw interface{}) error {
	switch errs := raw.(type) {
	case map[string]interface{}:
		if len(errs) > 0 {
			return fmt.Errorf("API returned errors: %v", errs)
		}
	case []interface{}:
		if len(errs) > 0 {
			return fmt.Errorf("API returned errors: %v", errs)
		}
	}
	return nil
}
