package roomstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

const roomKeyPrefix = "sdraft:room:"

// RedisStore persists rooms as JSON values in Redis, for multi-instance
// deployments where every instance must see the same room record.
type RedisStore struct {
	client *redis.Client
	// ttl is applied on every Set; zero means no expiry. Room cleanup is a
	// store-level concern, the state machine never deletes rooms itself.
	ttl time.Duration
}

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	RoomTTL  time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to redis room store")
	return &RedisStore{client: client, ttl: cfg.RoomTTL}, nil
}

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

func (s *RedisStore) Get(ctx context.Context, roomID string) (*models.Room, error) {
	raw, err := s.client.Get(ctx, roomKey(roomID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		return nil, fmt.Errorf("failed to decode room %s: %w", roomID, err)
	}
	return &room, nil
}

func (s *RedisStore) Set(ctx context.Context, room *models.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to encode room %s: %w", room.RoomID, err)
	}

	if err := s.client.Set(ctx, roomKey(room.RoomID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set room %s: %w", room.RoomID, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
