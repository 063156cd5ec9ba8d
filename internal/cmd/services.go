package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/clients/footballapi"
	"github.com/a-nahaitsev/vibe-server/internal/badge"
	"github.com/a-nahaitsev/vibe-server/internal/events"
	"github.com/a-nahaitsev/vibe-server/internal/gateway"
	"github.com/a-nahaitsev/vibe-server/internal/models"
	"github.com/a-nahaitsev/vibe-server/internal/room"
	"github.com/a-nahaitsev/vibe-server/internal/roomstore"
	"github.com/a-nahaitsev/vibe-server/internal/teamnames"
	"github.com/a-nahaitsev/vibe-server/internal/whoami"
)

// Services bundles every wired component plus a teardown hook.
type Services struct {
	Gateway *gateway.Gateway
	close   []func()
}

func (s *Services) Close() {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i]()
	}
}

// standingsProvider adapts the football API client to what the room state
// machine needs on game start.
type standingsProvider struct {
	client *footballapi.Client
}

func (p *standingsProvider) Standings(ctx context.Context, league, season int) ([]models.StandingRow, string, error) {
	return p.client.GetStandings(ctx, league, season)
}

func setupServices(ctx context.Context, config *Config) (*Services, error) {
	services := &Services{}
	clock := clockwork.NewRealClock()

	store, err := setupStore(ctx, config, services)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("FOOTBALL_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("FOOTBALL_API_KEY not set, game start requires client-supplied standings")
	}
	apiClient := footballapi.NewClient(apiKey)

	publisher, err := setupEvents(config, services)
	if err != nil {
		return nil, err
	}

	rooms := room.NewApp(store, &standingsProvider{client: apiClient}, publisher, clock)
	whoamiApp := whoami.NewApp(clock)
	badges := badge.NewProxy()
	teams := teamnames.NewDirectory(apiClient, clock)

	services.Gateway = gateway.New(rooms, whoamiApp, badges, teams, clock)
	return services, nil
}

func setupStore(ctx context.Context, config *Config, services *Services) (roomstore.Store, error) {
	switch config.Store.Backend {
	case "", "memory":
		log.Info().Msg("using in-memory room store")
		return roomstore.NewMemoryStore(), nil
	case "redis":
		store, err := roomstore.NewRedisStore(ctx, roomstore.RedisConfig{
			Addr:     config.Store.Redis.Addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       config.Store.Redis.DB,
			RoomTTL:  config.redisRoomTTL(),
		})
		if err != nil {
			return nil, err
		}
		services.close = append(services.close, func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis store")
			}
		})
		return store, nil
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store backend")
		}
		store, err := roomstore.NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		services.close = append(services.close, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}
}

func setupEvents(config *Config, services *Services) (room.EventPublisher, error) {
	if !config.Events.Enabled {
		return events.NoopPublisher{}, nil
	}

	natsURL := getEnv("NATS_URL", "nats://localhost:4222")
	publisher, err := events.NewNATSPublisher(natsURL, config.Events.SubjectPrefix)
	if err != nil {
		return nil, err
	}
	services.close = append(services.close, publisher.Close)
	return publisher, nil
}
