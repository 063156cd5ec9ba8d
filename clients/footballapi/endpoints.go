package footballapi

const (
	// Base URL
	BaseURL = "https://v3.football.api-sports.io"

	// API endpoints
	StandingsEndpoint = "/standings"
	TeamsEndpoint     = "/teams"

	// League IDs
	PremierLeagueID = 39
	LaLigaID        = 140
	Ligue1ID        = 61
	BundesligaID    = 78
	SerieAID        = 135

	// Seasons
	SeasonMin = 2022
	SeasonMax = 2024

	// Headers
	APIKeyHeader = "x-apisports-key"
)
