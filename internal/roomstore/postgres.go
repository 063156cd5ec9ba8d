package roomstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/a-nahaitsev/vibe-server/internal/models"
)

// PostgresStore keeps each room as one JSONB row. It trades Redis's expiry
// for durability; the get/set contract (last-writer-wins) is identical.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const createRoomsTable = `
CREATE TABLE IF NOT EXISTS standings_draft_rooms (
	room_id    TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresStore connects to Postgres and ensures the rooms table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createRoomsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure rooms table: %w", err)
	}

	log.Info().Msg("connected to postgres room store")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, roomID string) (*models.Room, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM standings_draft_rooms WHERE room_id = $1`, roomID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", roomID, err)
	}

	var room models.Room
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, fmt.Errorf("failed to decode room %s: %w", roomID, err)
	}
	return &room, nil
}

func (s *PostgresStore) Set(ctx context.Context, room *models.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to encode room %s: %w", room.RoomID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO standings_draft_rooms (room_id, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (room_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		room.RoomID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to set room %s: %w", room.RoomID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
