package footballapi

import (
	"github.com/a-nahaitsev/vibe-server/clients"
)

// Client talks to API-Football v3 (api-sports.io).
type Client struct {
	*clients.BaseClient
}

func NewClient(apiKey string) *Client {
	client := &Client{
		BaseClient: clients.NewBaseClient(BaseURL),
	}

	client.SetHeader(APIKeyHeader, apiKey)

	return client
}
