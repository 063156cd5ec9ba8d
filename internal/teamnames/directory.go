package teamnames

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/clients/footballapi"
)

// LeagueToCountry maps API-Football league ids to the country whose club
// directory feeds the autocomplete.
var LeagueToCountry = map[int]string{
	39:  "England",
	140: "Spain",
	61:  "France",
	78:  "Germany",
	135: "Italy",
}

// cacheTTL matches the client-side standings cache: tables and club lists
// barely move within a week.
const cacheTTL = 7 * 24 * time.Hour

// TeamsClient defines what the directory needs from the football API.
type TeamsClient interface {
	GetTeamsByCountry(ctx context.Context, country string) ([]footballapi.Team, error)
}

type cachedNames struct {
	names     []string
	fetchedAt time.Time
}

// Directory serves per-country team-name lists for autocomplete, with an
// in-process TTL cache in front of the football API.
type Directory struct {
	client TeamsClient
	clock  clockwork.Clock

	mu    sync.Mutex
	cache map[string]cachedNames
}

func NewDirectory(client TeamsClient, clock clockwork.Clock) *Directory {
	return &Directory{
		client: client,
		clock:  clock,
		cache:  make(map[string]cachedNames),
	}
}

// KnownCountry reports whether a country has a league in the catalogue.
func KnownCountry(country string) bool {
	for _, c := range LeagueToCountry {
		if c == country {
			return true
		}
	}
	return false
}

// Names returns the sorted club names for a country, fetching from the API
// on a cache miss or expiry.
func (d *Directory) Names(ctx context.Context, country string) ([]string, error) {
	if !KnownCountry(country) {
		return nil, fmt.Errorf("unknown country %q", country)
	}

	d.mu.Lock()
	entry, ok := d.cache[country]
	d.mu.Unlock()
	if ok && d.clock.Now().Sub(entry.fetchedAt) < cacheTTL {
		return entry.names, nil
	}

	teams, err := d.client.GetTeamsByCountry(ctx, country)
	if err != nil {
		// Serve a stale list over an error when we have one.
		if ok {
			log.Warn().Err(err).Str("country", country).Msg("team directory refresh failed, serving stale names")
			return entry.names, nil
		}
		return nil, fmt.Errorf("failed to load team names for %s: %w", country, err)
	}

	names := make([]string, 0, len(teams))
	for _, team := range teams {
		if team.Name != "" {
			names = append(names, team.Name)
		}
	}
	sort.Strings(names)

	d.mu.Lock()
	d.cache[country] = cachedNames{names: names, fetchedAt: d.clock.Now()}
	d.mu.Unlock()
	return names, nil
}
